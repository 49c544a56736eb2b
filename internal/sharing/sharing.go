// Package sharing writes shareable text and CSV exports to the export
// directory. The terminal has no share sheet, so "sharing" means rendering
// the content, confirming, and leaving a file the user can send on.
package sharing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/dharmalog/dharmalog/internal/constants"
	"github.com/dharmalog/dharmalog/internal/models"
)

// Options configures a share operation.
type Options struct {
	// Title names the share in the confirmation prompt and the filename.
	Title string
	// Message is the content written to the export file.
	Message string
	// ExportDir overrides the destination directory. Empty means the
	// exports directory next to the config file.
	ExportDir string
	// Yes skips the confirmation prompt.
	Yes bool
}

// Result reports where the share landed, or that the user dismissed it.
// A dismissal is not an error.
type Result struct {
	Dismissed bool
	Path      string
}

// Share shows the content, asks for confirmation unless pre-approved, and
// writes it to a timestamped file in the export directory.
func Share(configPath string, opts Options) (Result, error) {
	if opts.Message == "" {
		return Result{}, fmt.Errorf("nothing to share")
	}

	if !opts.Yes {
		fmt.Println(opts.Message)
		fmt.Println()

		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Share %s?", opts.Title)).
			Value(&confirmed).
			Run()
		if err != nil {
			return Result{}, fmt.Errorf("confirmation prompt failed: %w", err)
		}
		if !confirmed {
			return Result{Dismissed: true}, nil
		}
	}

	dir := opts.ExportDir
	if dir == "" {
		dir = DefaultExportDir(configPath)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return Result{}, fmt.Errorf("failed to create export directory: %w", err)
	}

	name := fmt.Sprintf("%s-%s.txt", Slug(opts.Title), time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(opts.Message+"\n"), 0600); err != nil {
		return Result{}, fmt.Errorf("failed to write share file: %w", err)
	}

	return Result{Path: path}, nil
}

// DefaultExportDir is the exports directory next to the store file.
func DefaultExportDir(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), constants.ExportDirName)
}

// Slug turns a title into a filename-safe fragment.
func Slug(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "share"
	}
	return out
}

// StatsShareText mirrors the share card the app renders for statistics: the
// streak, the overall total, and per-practice progress toward the lifetime
// target.
func StatsShareText(streakDays, totalCount int, practices []models.Practice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I have practiced %d days in a row, with %d recitations in total.\n\n", streakDays, totalCount)

	if len(practices) > 0 {
		b.WriteString("Practice progress:\n")
		for _, p := range practices {
			progress := 100 * float64(p.Completed) / float64(p.TotalTarget)
			fmt.Fprintf(&b, "%s: %d/%d (%.1f%%)\n", p.Name, p.Completed, p.TotalTarget, progress)
		}
	}

	b.WriteString("\nshared from dharmalog")
	return b.String()
}

// ReminderShareText formats a reminder for sharing.
func ReminderShareText(r models.Reminder) string {
	var b strings.Builder
	title := r.Title
	if title == "" {
		title = constants.DefaultReminderTitle
	}
	fmt.Fprintf(&b, "%s\n\n%s\n\n", title, r.Message)
	if r.Time != "" {
		fmt.Fprintf(&b, "Time: %s\n", r.Time)
	}
	fmt.Fprintf(&b, "Schedule: %s\n", r.FormatRepeat())
	b.WriteString("\nshared from dharmalog")
	return b.String()
}
