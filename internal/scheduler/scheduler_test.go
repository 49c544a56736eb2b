package scheduler

import (
	"testing"
	"time"

	"github.com/dharmalog/dharmalog/internal/constants"
	"github.com/dharmalog/dharmalog/internal/models"
)

// 2025-06-02 is a Monday.
var monday = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func TestDueReminders(t *testing.T) {
	tests := []struct {
		name     string
		reminder models.Reminder
		now      time.Time
		wantDue  bool
	}{
		{
			name:     "daily due after time",
			reminder: models.Reminder{ID: "a", Message: "sit", Time: "08:00", Repeat: constants.RepeatDaily, Active: true},
			now:      monday,
			wantDue:  true,
		},
		{
			name:     "daily not yet due",
			reminder: models.Reminder{ID: "a", Message: "sit", Time: "10:00", Repeat: constants.RepeatDaily, Active: true},
			now:      monday,
			wantDue:  false,
		},
		{
			name:     "inactive skipped",
			reminder: models.Reminder{ID: "a", Message: "sit", Time: "08:00", Repeat: constants.RepeatDaily, Active: false},
			now:      monday,
			wantDue:  false,
		},
		{
			name:     "weekly matching weekday",
			reminder: models.Reminder{ID: "a", Message: "sit", Time: "08:00", Repeat: constants.RepeatWeekly, Weekdays: []time.Weekday{time.Monday}, Active: true},
			now:      monday,
			wantDue:  true,
		},
		{
			name:     "weekly wrong weekday",
			reminder: models.Reminder{ID: "a", Message: "sit", Time: "08:00", Repeat: constants.RepeatWeekly, Weekdays: []time.Weekday{time.Friday}, Active: true},
			now:      monday,
			wantDue:  false,
		},
		{
			name:     "one-shot on its date",
			reminder: models.Reminder{ID: "a", Message: "retreat", Time: "08:00", Date: "2025-06-02", Active: true},
			now:      monday,
			wantDue:  true,
		},
		{
			name:     "one-shot other date",
			reminder: models.Reminder{ID: "a", Message: "retreat", Time: "08:00", Date: "2025-06-03", Active: true},
			now:      monday,
			wantDue:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due := DueReminders([]models.Reminder{tt.reminder}, tt.now)
			if got := len(due) == 1; got != tt.wantDue {
				t.Errorf("due = %v, want %v", got, tt.wantDue)
			}
		})
	}
}

func TestDueRemindersSkipsAlreadySent(t *testing.T) {
	sent := monday.Add(-30 * time.Minute)
	r := models.Reminder{
		ID: "a", Message: "sit", Time: "08:00",
		Repeat: constants.RepeatDaily, Active: true, LastSent: &sent,
	}
	if due := DueReminders([]models.Reminder{r}, monday); len(due) != 0 {
		t.Errorf("expected no due reminders, got %d", len(due))
	}

	// Sent yesterday does not suppress today.
	yesterday := monday.AddDate(0, 0, -1)
	r.LastSent = &yesterday
	if due := DueReminders([]models.Reminder{r}, monday); len(due) != 1 {
		t.Errorf("expected 1 due reminder, got %d", len(due))
	}
}

func TestNextFire(t *testing.T) {
	daily := models.Reminder{ID: "a", Message: "sit", Time: "10:00", Repeat: constants.RepeatDaily, Active: true}
	at, ok := NextFire(daily, monday)
	if !ok {
		t.Fatal("expected a next fire time")
	}
	want := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	if !at.Equal(want) {
		t.Errorf("NextFire = %v, want %v", at, want)
	}

	// Past today's time rolls to tomorrow.
	daily.Time = "08:00"
	at, _ = NextFire(daily, monday)
	want = time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)
	if !at.Equal(want) {
		t.Errorf("NextFire = %v, want %v", at, want)
	}

	weekly := models.Reminder{ID: "b", Message: "sit", Time: "08:00", Repeat: constants.RepeatWeekly, Weekdays: []time.Weekday{time.Friday}, Active: true}
	at, _ = NextFire(weekly, monday)
	want = time.Date(2025, 6, 6, 8, 0, 0, 0, time.UTC)
	if !at.Equal(want) {
		t.Errorf("NextFire = %v, want %v", at, want)
	}

	past := models.Reminder{ID: "c", Message: "retreat", Time: "08:00", Date: "2025-05-01", Active: true}
	if _, ok := NextFire(past, monday); ok {
		t.Error("expected no next fire for past one-shot")
	}
}

func TestMarkSent(t *testing.T) {
	daily := models.Reminder{ID: "a", Message: "sit", Time: "08:00", Repeat: constants.RepeatDaily, Active: true}
	got := MarkSent(daily, monday)
	if got.LastSent == nil || !got.LastSent.Equal(monday) {
		t.Errorf("LastSent = %v, want %v", got.LastSent, monday)
	}
	if !got.Active {
		t.Error("daily reminder should stay active")
	}

	oneShot := models.Reminder{ID: "b", Message: "retreat", Time: "08:00", Date: "2025-06-02", Active: true}
	got = MarkSent(oneShot, monday)
	if got.Active {
		t.Error("one-shot reminder should be deactivated after sending")
	}
}

func TestDeactivateAll(t *testing.T) {
	reminders := []models.Reminder{
		{ID: "a", Message: "sit", Time: "08:00", Repeat: constants.RepeatDaily, Active: true},
		{ID: "b", Message: "walk", Time: "12:00", Repeat: constants.RepeatDaily, Active: false},
		{ID: "c", Message: "study", Time: "20:00", Repeat: constants.RepeatDaily, Active: true},
	}

	changed := DeactivateAll(reminders)
	if len(changed) != 2 {
		t.Fatalf("expected 2 changed reminders, got %d", len(changed))
	}
	for _, r := range changed {
		if r.Active {
			t.Errorf("reminder %s still active", r.ID)
		}
	}

	// Input snapshot is untouched.
	if !reminders[0].Active {
		t.Error("DeactivateAll mutated its input")
	}

	if got := DeactivateAll(nil); len(got) != 0 {
		t.Errorf("expected no changes for empty input, got %d", len(got))
	}
}
