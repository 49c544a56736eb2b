// Package scheduler decides which reminders are due at a given moment.
// It is pure over reminder snapshots; dispatch and persistence belong to
// the caller.
package scheduler

import (
	"time"

	"github.com/dharmalog/dharmalog/internal/models"
	"github.com/dharmalog/dharmalog/internal/utils"
)

// DueReminders returns the active reminders whose scheduled time has passed
// at now and that have not already been sent today. One-shot reminders match
// their date exactly; repeating reminders match by rule.
func DueReminders(reminders []models.Reminder, now time.Time) []models.Reminder {
	var due []models.Reminder
	for _, r := range reminders {
		if !r.Active {
			continue
		}
		if !r.IsDueToday(now) {
			continue
		}
		if r.SentOn(now) {
			continue
		}
		fireAt, err := fireTime(r, now)
		if err != nil {
			continue
		}
		if !now.Before(fireAt) {
			due = append(due, r)
		}
	}
	return due
}

// NextFire returns the next moment the reminder will fire at or after now,
// or false when it never will (inactive, or a one-shot already in the past).
func NextFire(r models.Reminder, now time.Time) (time.Time, bool) {
	if !r.Active {
		return time.Time{}, false
	}

	if r.IsOneShot() {
		at, err := utils.CombineDateAndTime(r.Date, r.Time, now.Location())
		if err != nil || at.Before(now) {
			return time.Time{}, false
		}
		return at, true
	}

	// Walk forward at most a week; daily fires tomorrow at the latest and a
	// weekly mask repeats within seven days.
	for i := 0; i <= 7; i++ {
		day := now.AddDate(0, 0, i)
		if !r.IsDueToday(day) {
			continue
		}
		at, err := fireTime(r, day)
		if err != nil {
			return time.Time{}, false
		}
		if !at.Before(now) {
			return at, true
		}
	}
	return time.Time{}, false
}

func fireTime(r models.Reminder, day time.Time) (time.Time, error) {
	t, err := utils.ParseTime(r.Time)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

// MarkSent stamps the reminder as dispatched at now. One-shot reminders are
// also deactivated, since they never fire again.
func MarkSent(r models.Reminder, now time.Time) models.Reminder {
	sent := now
	r.LastSent = &sent
	if r.IsOneShot() {
		r.Active = false
	}
	return r
}

// Deactivate returns the reminder switched off. A deactivated reminder is
// never due; reactivating it resumes the schedule unchanged.
func Deactivate(r models.Reminder) models.Reminder {
	r.Active = false
	return r
}

// DeactivateAll switches off every reminder in the snapshot, returning the
// ones that changed.
func DeactivateAll(reminders []models.Reminder) []models.Reminder {
	var changed []models.Reminder
	for _, r := range reminders {
		if r.Active {
			changed = append(changed, Deactivate(r))
		}
	}
	return changed
}
