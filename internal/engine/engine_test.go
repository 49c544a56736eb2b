package engine

import (
	"errors"
	"reflect"
	"testing"
	"time"

	apperrors "github.com/dharmalog/dharmalog/internal/errors"
	"github.com/dharmalog/dharmalog/internal/models"
)

const testToday = "2024-03-15"

func testPractice(completed int) models.Practice {
	return models.Practice{
		ID:          "p1",
		Name:        "Morning recitation",
		DailyTarget: 108,
		TotalTarget: 100000,
		Completed:   completed,
	}
}

func applyDelta(records []models.Record, delta Delta) []models.Record {
	removed := make(map[string]bool)
	for _, id := range delta.RemovedRecordIDs {
		removed[id] = true
	}
	updated := make(map[string]models.Record)
	for _, r := range delta.UpdatedRecords {
		updated[r.ID] = r
	}

	var out []models.Record
	for _, r := range records {
		if removed[r.ID] {
			continue
		}
		if u, ok := updated[r.ID]; ok {
			out = append(out, u)
			continue
		}
		out = append(out, r)
	}
	if delta.NewRecord != nil {
		out = append(out, *delta.NewRecord)
	}
	return out
}

func TestTodayCount(t *testing.T) {
	records := []models.Record{
		{ID: "r1", PracticeID: "p1", Date: testToday, Count: 21},
		{ID: "r2", PracticeID: "p1", Date: "2024-03-14", Count: 50},
		{ID: "r3", PracticeID: "p2", Date: testToday, Count: 7},
	}

	if got := TodayCount(records, "p1", testToday); got != 21 {
		t.Errorf("expected today count 21, got %d", got)
	}
	if got := TodayCount(records, "p2", testToday); got != 7 {
		t.Errorf("expected today count 7, got %d", got)
	}
	if got := TodayCount(nil, "p1", testToday); got != 0 {
		t.Errorf("expected today count 0 for empty records, got %d", got)
	}
}

func TestIncrementDelta(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	practice := testPractice(500)

	delta, err := IncrementDelta(practice, testToday, 21, "r-new", now)
	if err != nil {
		t.Fatalf("failed to compute increment delta: %v", err)
	}

	if delta.NewRecord == nil {
		t.Fatal("expected a new record")
	}
	if delta.NewRecord.Count != 21 || delta.NewRecord.Date != testToday || delta.NewRecord.PracticeID != "p1" {
		t.Errorf("unexpected new record: %+v", delta.NewRecord)
	}
	if delta.UpdatedPractice.Completed != 521 {
		t.Errorf("expected completed 521, got %d", delta.UpdatedPractice.Completed)
	}
	if !delta.UpdatedPractice.LastUpdated.Equal(now) {
		t.Errorf("expected last updated %v, got %v", now, delta.UpdatedPractice.LastUpdated)
	}

	// today count rises by exactly the increment amount
	records := applyDelta(nil, delta)
	if got := TodayCount(records, "p1", testToday); got != 21 {
		t.Errorf("expected today count 21 after increment, got %d", got)
	}
}

func TestIncrementDeltaInvalidAmount(t *testing.T) {
	for _, amount := range []int{0, -5} {
		_, err := IncrementDelta(testPractice(0), testToday, amount, "r-new", time.Now())
		if !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Errorf("amount %d: expected ErrInvalidArgument, got %v", amount, err)
		}
	}
}

func TestIncrementDecrementRoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	practice := testPractice(300)
	records := []models.Record{
		{ID: "r1", PracticeID: "p1", Date: testToday, Count: 50, Timestamp: now.Add(-time.Hour)},
	}

	incDelta, err := IncrementDelta(practice, testToday, 25, "r2", now)
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	afterInc := applyDelta(records, incDelta)

	decDelta, ok, err := DecrementDelta(incDelta.UpdatedPractice, afterInc, testToday, 25, now)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if !ok {
		t.Fatal("expected decrement to apply")
	}
	afterDec := applyDelta(afterInc, decDelta)

	if decDelta.UpdatedPractice.Completed != practice.Completed {
		t.Errorf("expected completed restored to %d, got %d", practice.Completed, decDelta.UpdatedPractice.Completed)
	}
	if !reflect.DeepEqual(afterDec, records) {
		t.Errorf("expected record set restored, got %+v", afterDec)
	}
}

func TestDecrementDeltaMostRecentFirst(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	practice := testPractice(30)
	records := []models.Record{
		{ID: "old", PracticeID: "p1", Date: testToday, Count: 10, Timestamp: now.Add(-2 * time.Hour)},
		{ID: "new", PracticeID: "p1", Date: testToday, Count: 20, Timestamp: now.Add(-time.Hour)},
	}

	delta, ok, err := DecrementDelta(practice, records, testToday, 25, now)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if !ok {
		t.Fatal("expected decrement to apply")
	}

	// The newest record (20) is consumed whole, the older one trimmed by 5.
	if len(delta.RemovedRecordIDs) != 1 || delta.RemovedRecordIDs[0] != "new" {
		t.Errorf("expected record %q removed, got %v", "new", delta.RemovedRecordIDs)
	}
	if len(delta.UpdatedRecords) != 1 || delta.UpdatedRecords[0].ID != "old" || delta.UpdatedRecords[0].Count != 5 {
		t.Errorf("unexpected updated records: %+v", delta.UpdatedRecords)
	}
	if delta.UpdatedPractice.Completed != 5 {
		t.Errorf("expected completed 5, got %d", delta.UpdatedPractice.Completed)
	}
}

func TestDecrementDeltaPartial(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	practice := testPractice(10)
	records := []models.Record{
		{ID: "r1", PracticeID: "p1", Date: testToday, Count: 10, Timestamp: now.Add(-time.Hour)},
	}

	// Request more than today's total: only the actual amount is removed.
	delta, ok, err := DecrementDelta(practice, records, testToday, 50, now)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if !ok {
		t.Fatal("expected decrement to apply")
	}
	if delta.UpdatedPractice.Completed != 0 {
		t.Errorf("expected completed 0, got %d", delta.UpdatedPractice.Completed)
	}
	after := applyDelta(records, delta)
	if got := TodayCount(after, "p1", testToday); got != 0 {
		t.Errorf("expected today count 0 after full decrement, got %d", got)
	}
}

func TestDecrementDeltaNeverNegative(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	// Completed is already out of sync (lower than today's records): the
	// floor still holds.
	practice := testPractice(3)
	records := []models.Record{
		{ID: "r1", PracticeID: "p1", Date: testToday, Count: 10, Timestamp: now},
	}

	delta, ok, err := DecrementDelta(practice, records, testToday, 10, now)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if !ok {
		t.Fatal("expected decrement to apply")
	}
	if delta.UpdatedPractice.Completed != 0 {
		t.Errorf("expected completed floored at 0, got %d", delta.UpdatedPractice.Completed)
	}
}

func TestDecrementDeltaNoOp(t *testing.T) {
	records := []models.Record{
		{ID: "r1", PracticeID: "p1", Date: "2024-03-10", Count: 10},
		{ID: "r2", PracticeID: "p2", Date: testToday, Count: 10},
	}

	_, ok, err := DecrementDelta(testPractice(20), records, testToday, 5, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected no-op when there are no records for today")
	}
}

func TestDecrementDeltaInvalidAmount(t *testing.T) {
	_, _, err := DecrementDelta(testPractice(0), nil, testToday, 0, time.Now())
	if !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestCompleteDailyDelta(t *testing.T) {
	now := time.Date(2024, 3, 15, 20, 0, 0, 0, time.UTC)
	practice := testPractice(1000)
	records := []models.Record{
		{ID: "r1", PracticeID: "p1", Date: testToday, Count: 30, Timestamp: now.Add(-time.Hour)},
	}

	delta, ok, err := CompleteDailyDelta(practice, records, testToday, "r-done", now)
	if err != nil {
		t.Fatalf("complete daily failed: %v", err)
	}
	if !ok {
		t.Fatal("expected completion to apply")
	}
	if delta.NewRecord.Count != 78 {
		t.Errorf("expected remaining 78, got %d", delta.NewRecord.Count)
	}
	if delta.UpdatedPractice.Completed != 1078 {
		t.Errorf("expected completed 1078, got %d", delta.UpdatedPractice.Completed)
	}

	after := applyDelta(records, delta)
	if got := TodayCount(after, "p1", testToday); got != practice.DailyTarget {
		t.Errorf("expected today count %d, got %d", practice.DailyTarget, got)
	}
}

func TestCompleteDailyDeltaAlreadyMet(t *testing.T) {
	now := time.Now()
	practice := testPractice(500)
	records := []models.Record{
		{ID: "r1", PracticeID: "p1", Date: testToday, Count: 200, Timestamp: now},
	}

	_, ok, err := CompleteDailyDelta(practice, records, testToday, "r-done", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected no-op when today's target is already exceeded")
	}
}

func TestCascadeDeleteRecords(t *testing.T) {
	records := []models.Record{
		{ID: "r1", PracticeID: "p1", Date: testToday, Count: 1},
		{ID: "r2", PracticeID: "p2", Date: testToday, Count: 2},
		{ID: "r3", PracticeID: "p1", Date: "2024-03-01", Count: 3},
	}

	remaining := CascadeDeleteRecords(records, "p1")
	if len(remaining) != 1 {
		t.Fatalf("expected 1 remaining record, got %d", len(remaining))
	}
	if remaining[0].ID != "r2" {
		t.Errorf("expected record r2 to survive, got %s", remaining[0].ID)
	}

	// Original slice is untouched.
	if len(records) != 3 {
		t.Errorf("expected input slice unchanged, got %d records", len(records))
	}
}

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name    string
		dates   []string
		today   string
		want    int
	}{
		{"empty records", nil, testToday, 0},
		{"three consecutive days ending today", []string{"2024-03-15", "2024-03-14", "2024-03-13"}, testToday, 3},
		{"lapsed single day", []string{"2024-03-10"}, testToday, 1},
		{"lapsed run keeps its length", []string{"2024-03-10", "2024-03-09", "2024-03-08"}, testToday, 3},
		{"gap breaks the streak", []string{"2024-03-15", "2024-03-13"}, testToday, 1},
		{"duplicate dates count once", []string{"2024-03-15", "2024-03-15", "2024-03-14"}, testToday, 2},
		{"only today", []string{"2024-03-15"}, testToday, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []models.Record
			for i, d := range tt.dates {
				records = append(records, models.Record{ID: string(rune('a' + i)), PracticeID: "p1", Date: d, Count: 1})
			}
			if got := ComputeStreak(records, tt.today); got != tt.want {
				t.Errorf("expected streak %d, got %d", tt.want, got)
			}
		})
	}
}

func TestProgressData(t *testing.T) {
	practices := []models.Practice{
		{ID: "p1", Name: "A", DailyTarget: 100, TotalTarget: 1000, Completed: 250},
		{ID: "p2", Name: "B", DailyTarget: 10, TotalTarget: 100, Completed: 120},
	}
	records := []models.Record{
		{ID: "r1", PracticeID: "p1", Date: testToday, Count: 50},
		{ID: "r2", PracticeID: "p2", Date: testToday, Count: 15},
	}

	progress := ProgressData(practices, records, testToday)
	if len(progress) != 2 {
		t.Fatalf("expected 2 progress entries, got %d", len(progress))
	}

	if progress[0].TodayCount != 50 || progress[0].DailyProgressPct != 50 || progress[0].TotalProgressPct != 25 {
		t.Errorf("unexpected progress for p1: %+v", progress[0])
	}
	// Over-completion is reported as >100%, not capped.
	if progress[1].DailyProgressPct != 150 || progress[1].TotalProgressPct != 120 {
		t.Errorf("unexpected progress for p2: %+v", progress[1])
	}

	// Pure function: identical snapshot yields identical output.
	again := ProgressData(practices, records, testToday)
	if !reflect.DeepEqual(progress, again) {
		t.Error("expected identical output for identical input")
	}
}

func TestDateRangeStats(t *testing.T) {
	records := []models.Record{
		{ID: "r1", PracticeID: "p1", Date: "2024-01-01", Count: 5},
		{ID: "r2", PracticeID: "p2", Date: "2024-01-01", Count: 3},
		{ID: "r3", PracticeID: "p1", Date: "2024-01-02", Count: 2},
		{ID: "r4", PracticeID: "p1", Date: "2024-01-05", Count: 9}, // outside range
	}

	stats := DateRangeStats(records, "2024-01-01", "2024-01-02")
	want := []DayStats{
		{Date: "2024-01-01", TotalCount: 8, PerPracticeCount: map[string]int{"p1": 5, "p2": 3}},
		{Date: "2024-01-02", TotalCount: 2, PerPracticeCount: map[string]int{"p1": 2}},
	}
	if !reflect.DeepEqual(stats, want) {
		t.Errorf("unexpected stats:\n got %+v\nwant %+v", stats, want)
	}
}

func TestDateRangeStatsEmpty(t *testing.T) {
	if stats := DateRangeStats(nil, "2024-01-01", "2024-01-31"); len(stats) != 0 {
		t.Errorf("expected empty stats, got %+v", stats)
	}
}
