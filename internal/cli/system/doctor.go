package system

import (
	"fmt"
	"time"

	"github.com/dharmalog/dharmalog/internal/backup"
	"github.com/dharmalog/dharmalog/internal/cli"
	"github.com/dharmalog/dharmalog/internal/engine"
	"github.com/dharmalog/dharmalog/internal/models"
	"github.com/dharmalog/dharmalog/internal/utils"
)

type DoctorCmd struct {
	Fix bool `help:"Repair the problems the checks find."`
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: store reachable
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Store reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Printf("✓ Store reachable: OK\n")

	// Check 2: settings sanity
	if err := cmd.checkSettings(ctx); err != nil {
		fmt.Printf("❌ Settings: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Settings: OK\n")
	}

	// Check 3: entity validation
	if err := cmd.checkEntities(ctx); err != nil {
		fmt.Printf("❌ Entity validation: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Entity validation: OK\n")
	}

	// Check 4: orphaned records
	orphans, err := cmd.checkOrphanedRecords(ctx)
	if err != nil {
		return err
	}
	if len(orphans) > 0 {
		fmt.Printf("❌ Record ownership: FAIL\n")
		fmt.Printf("   %d records reference deleted practices\n", len(orphans))
		if cmd.Fix {
			if err := cmd.removeOrphans(ctx, orphans); err != nil {
				return err
			}
			fmt.Printf("   Fixed: removed %d orphaned records\n", len(orphans))
		} else {
			hasError = true
		}
	} else {
		fmt.Printf("✓ Record ownership: OK\n")
	}

	// Check 5: completed totals match records
	drifted, err := cmd.checkCompletedTotals(ctx)
	if err != nil {
		return err
	}
	if len(drifted) > 0 {
		fmt.Printf("❌ Completed totals: FAIL\n")
		for _, p := range drifted {
			fmt.Printf("   %s: completed=%d, records sum=%d\n", p.practice.Name, p.practice.Completed, p.sum)
		}
		if cmd.Fix {
			for _, p := range drifted {
				fixed := p.practice
				fixed.Completed = p.sum
				fixed.LastUpdated = time.Now()
				if err := ctx.Store.UpdatePractice(fixed); err != nil {
					return err
				}
			}
			fmt.Printf("   Fixed: recomputed %d practice totals from records\n", len(drifted))
		} else {
			hasError = true
		}
	} else {
		fmt.Printf("✓ Completed totals: OK\n")
	}

	// Check 6: backups present (warning only)
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil || len(backups) == 0 {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   No backups found. Run 'dharmalog backup create'.\n")
	} else {
		fmt.Printf("✓ Backups present: OK (%d)\n", len(backups))
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems (re-run with --fix to repair)")
	}
	fmt.Println("All checks passed.")
	return nil
}

func (cmd *DoctorCmd) checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone %q", settings.Timezone)
	}
	if settings.NotificationTime != "" && !utils.ValidateTimeFormat(settings.NotificationTime) {
		return fmt.Errorf("invalid notification time %q", settings.NotificationTime)
	}
	return nil
}

func (cmd *DoctorCmd) checkEntities(ctx *cli.Context) error {
	practices, err := ctx.Store.GetAllPractices()
	if err != nil {
		return err
	}
	for _, p := range practices {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("practice %q: %w", p.Name, err)
		}
	}
	reminders, err := ctx.Store.GetAllReminders()
	if err != nil {
		return err
	}
	for _, r := range reminders {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("reminder %q: %w", r.Message, err)
		}
	}
	return nil
}

func (cmd *DoctorCmd) checkOrphanedRecords(ctx *cli.Context) ([]models.Record, error) {
	practices, err := ctx.Store.GetAllPractices()
	if err != nil {
		return nil, err
	}
	records, err := ctx.Store.GetAllRecords()
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(practices))
	for _, p := range practices {
		known[p.ID] = true
	}

	var orphans []models.Record
	for _, r := range records {
		if !known[r.PracticeID] {
			orphans = append(orphans, r)
		}
	}
	return orphans, nil
}

func (cmd *DoctorCmd) removeOrphans(ctx *cli.Context, orphans []models.Record) error {
	// The cascade path needs a live practice row, which orphans by
	// definition lack. Rewrite the record collection wholesale instead.
	data, err := ctx.Store.ExportAll()
	if err != nil {
		return err
	}
	orphaned := make(map[string]bool, len(orphans))
	for _, r := range orphans {
		orphaned[r.ID] = true
	}
	kept := make([]models.Record, 0, len(data.Records))
	for _, r := range data.Records {
		if !orphaned[r.ID] {
			kept = append(kept, r)
		}
	}
	data.Records = kept
	return ctx.Store.ImportAll(data)
}

type driftedPractice struct {
	practice models.Practice
	sum      int
}

func (cmd *DoctorCmd) checkCompletedTotals(ctx *cli.Context) ([]driftedPractice, error) {
	practices, err := ctx.Store.GetAllPractices()
	if err != nil {
		return nil, err
	}

	var drifted []driftedPractice
	for _, p := range practices {
		records, err := ctx.Store.GetRecordsForPractice(p.ID)
		if err != nil {
			return nil, err
		}
		sum := engine.TotalCount(records)
		if sum != p.Completed {
			drifted = append(drifted, driftedPractice{practice: p, sum: sum})
		}
	}
	return drifted, nil
}
