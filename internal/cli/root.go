package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dharmalog/dharmalog/internal/backup"
	apperrors "github.com/dharmalog/dharmalog/internal/errors"
	"github.com/dharmalog/dharmalog/internal/logger"
	"github.com/dharmalog/dharmalog/internal/models"
	"github.com/dharmalog/dharmalog/internal/storage"
	"github.com/dharmalog/dharmalog/internal/utils"
)

type Context struct {
	Store storage.Provider
	// Yes suppresses interactive confirmation prompts.
	Yes bool
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Today returns today's date string in the user's configured timezone.
func (c *Context) Today() (string, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return "", err
	}
	return utils.GetTodayFromSettings(settings)
}

// Now returns the current time in the user's configured timezone.
func (c *Context) Now() (time.Time, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return time.Time{}, err
	}
	return utils.NowInTimezone(settings.Timezone)
}

// ResolvePractice finds a practice by ID or, failing that, by exact name.
func (c *Context) ResolvePractice(ref string) (models.Practice, error) {
	if p, err := c.Store.GetPractice(ref); err == nil {
		return p, nil
	}
	practices, err := c.Store.GetAllPractices()
	if err != nil {
		return models.Practice{}, err
	}
	for _, p := range practices {
		if p.Name == ref {
			return p, nil
		}
	}
	return models.Practice{}, apperrors.NotFoundf("practice %q", ref)
}

// ResolveReminder finds a reminder by ID or by a unique message prefix.
func (c *Context) ResolveReminder(ref string) (models.Reminder, error) {
	if r, err := c.Store.GetReminder(ref); err == nil {
		return r, nil
	}
	reminders, err := c.Store.GetAllReminders()
	if err != nil {
		return models.Reminder{}, err
	}
	var matches []models.Reminder
	for _, r := range reminders {
		if strings.HasPrefix(r.Message, ref) {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Reminder{}, apperrors.NotFoundf("reminder %q", ref)
	default:
		return models.Reminder{}, fmt.Errorf("reminder %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
		} else {
			// Try parsing as number (0=Sunday, 6=Saturday)
			num, err := strconv.Atoi(part)
			if err == nil && num >= 0 && num <= 6 {
				weekdays = append(weekdays, time.Weekday(num))
			} else {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
		}
	}

	return weekdays, nil
}
