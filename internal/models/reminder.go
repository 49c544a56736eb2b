package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dharmalog/dharmalog/internal/constants"
)

// Reminder is a local notification: one-shot (Date set) or repeating
// (daily, or weekly on a weekday mask).
type Reminder struct {
	ID        string               `json:"id"`
	Title     string               `json:"title,omitempty"`
	Message   string               `json:"message"`
	Time      string               `json:"time"`           // HH:MM format
	Date      string               `json:"date,omitempty"` // YYYY-MM-DD (for one-shot reminders)
	Repeat    constants.RepeatType `json:"repeat"`
	Weekdays  []time.Weekday       `json:"weekdays,omitempty"`
	Active    bool                 `json:"active"`
	LastSent  *time.Time           `json:"last_sent,omitempty"` // RFC3339 timestamp
	CreatedAt time.Time            `json:"created_at"`
}

func (r *Reminder) Validate() error {
	if r.Message == "" {
		return fmt.Errorf("reminder message cannot be empty")
	}

	if r.Time == "" {
		return fmt.Errorf("reminder time cannot be empty")
	}

	if _, err := time.Parse(constants.TimeFormat, r.Time); err != nil {
		return fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}

	if r.Date != "" {
		if _, err := time.Parse(constants.DateFormat, r.Date); err != nil {
			return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
		}
		if r.Repeat != "" && r.Repeat != constants.RepeatNone {
			return fmt.Errorf("one-shot reminders cannot repeat")
		}
		return nil
	}

	switch r.Repeat {
	case constants.RepeatDaily:
	case constants.RepeatWeekly:
		if len(r.Weekdays) == 0 {
			return fmt.Errorf("weekdays must be specified for weekly reminders")
		}
	case constants.RepeatNone, "":
		return fmt.Errorf("a reminder needs either a date or a repeat rule")
	default:
		return fmt.Errorf("unknown repeat type: %s", r.Repeat)
	}

	return nil
}

// IsOneShot returns true if this reminder fires once on a specific date.
func (r *Reminder) IsOneShot() bool {
	return r.Date != ""
}

// IsDueToday checks whether the reminder should fire on the given day.
func (r *Reminder) IsDueToday(today time.Time) bool {
	if r.IsOneShot() {
		return r.Date == today.Format(constants.DateFormat)
	}

	switch r.Repeat {
	case constants.RepeatDaily:
		return true
	case constants.RepeatWeekly:
		for _, wd := range r.Weekdays {
			if wd == today.Weekday() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// SentOn reports whether the reminder was already dispatched on the given day.
func (r *Reminder) SentOn(day time.Time) bool {
	if r.LastSent == nil {
		return false
	}
	y1, m1, d1 := r.LastSent.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// FormatRepeat returns a human-readable description of the schedule.
func (r *Reminder) FormatRepeat() string {
	if r.IsOneShot() {
		return fmt.Sprintf("Once on %s", r.Date)
	}

	switch r.Repeat {
	case constants.RepeatDaily:
		return "Daily"
	case constants.RepeatWeekly:
		days := make([]string, len(r.Weekdays))
		for i, wd := range r.Weekdays {
			days[i] = wd.String()[:3]
		}
		return fmt.Sprintf("Weekly: %s", strings.Join(days, ", "))
	default:
		return "One-time"
	}
}
