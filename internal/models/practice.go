package models

import (
	"fmt"
	"time"
)

// Practice is a user-defined repetition goal (e.g. a mantra recited daily).
// Completed is a denormalized running total of all record counts for this
// practice; every mutation must go through the engine's delta functions so
// the invariant Completed == sum(records.Count) has a single code path.
type Practice struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DailyTarget int       `json:"daily_target"`
	TotalTarget int       `json:"total_target"`
	Completed   int       `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
}

func (p *Practice) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("practice name cannot be empty")
	}
	if p.DailyTarget <= 0 {
		return fmt.Errorf("daily target must be a positive integer")
	}
	if p.TotalTarget <= 0 {
		return fmt.Errorf("total target must be a positive integer")
	}
	if p.Completed < 0 {
		return fmt.Errorf("completed count cannot be negative")
	}
	return nil
}

// Record is one logged batch of counts against a practice on a calendar day.
// Date is day-granular local time; Timestamp is used only for ordering
// within a day.
type Record struct {
	ID         string    `json:"id"`
	PracticeID string    `json:"practice_id"`
	Date       string    `json:"date"` // YYYY-MM-DD
	Count      int       `json:"count"`
	Timestamp  time.Time `json:"timestamp"`
}

func (r *Record) Validate() error {
	if r.PracticeID == "" {
		return fmt.Errorf("record practice id cannot be empty")
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return fmt.Errorf("invalid record date (expected YYYY-MM-DD): %w", err)
	}
	if r.Count <= 0 {
		return fmt.Errorf("record count must be a positive integer")
	}
	return nil
}
