// Package engine holds the pure aggregation logic over practice and record
// snapshots: today counts, counting deltas, streaks, progress, and
// date-range rollups.
//
// Every function takes all of its inputs explicitly, including "today" and
// "now" when relevant; nothing here reads a clock, touches storage, or
// mutates its arguments. Mutations are expressed as Delta values for the
// caller to apply atomically.
package engine

import (
	"sort"
	"time"

	"github.com/dharmalog/dharmalog/internal/constants"
	apperrors "github.com/dharmalog/dharmalog/internal/errors"
	"github.com/dharmalog/dharmalog/internal/models"
)

// Delta is a computed set of entity changes for the caller to apply as one
// atomic unit, so Practice.Completed always equals the sum of its records.
type Delta struct {
	NewRecord        *models.Record
	UpdatedRecords   []models.Record
	RemovedRecordIDs []string
	UpdatedPractice  models.Practice
}

// Progress is the derived per-practice view for progress displays.
type Progress struct {
	Practice         models.Practice
	TodayCount       int
	DailyProgressPct float64
	TotalProgressPct float64
}

// DayStats is one day's rollup within a date range.
type DayStats struct {
	Date             string
	TotalCount       int
	PerPracticeCount map[string]int
}

// TodayCount sums the counts of the practice's records for the given day.
func TodayCount(records []models.Record, practiceID, today string) int {
	sum := 0
	for _, r := range records {
		if r.PracticeID == practiceID && r.Date == today {
			sum += r.Count
		}
	}
	return sum
}

// TotalCount sums the counts of all records.
func TotalCount(records []models.Record) int {
	sum := 0
	for _, r := range records {
		sum += r.Count
	}
	return sum
}

// IncrementDelta constructs a new record of the given amount for today plus
// the matching practice update. Over-completion past the daily or total
// target is permitted. The caller supplies the new record's ID so the
// function stays deterministic.
func IncrementDelta(practice models.Practice, today string, amount int, recordID string, now time.Time) (Delta, error) {
	if amount <= 0 {
		return Delta{}, apperrors.InvalidArgumentf("increment amount must be positive, got %d", amount)
	}

	updated := practice
	updated.Completed += amount
	updated.LastUpdated = now

	return Delta{
		NewRecord: &models.Record{
			ID:         recordID,
			PracticeID: practice.ID,
			Date:       today,
			Count:      amount,
			Timestamp:  now,
		},
		UpdatedPractice: updated,
	}, nil
}

// DecrementDelta removes up to amount from today's records, most recent
// first. Records are consumed whole when their count fits in the remainder
// and trimmed otherwise. The practice's completed total drops by the amount
// actually removed, floored at zero. The second return value is false when
// there is nothing to decrement (a no-op, not an error).
func DecrementDelta(practice models.Practice, records []models.Record, today string, amount int, now time.Time) (Delta, bool, error) {
	if amount <= 0 {
		return Delta{}, false, apperrors.InvalidArgumentf("decrement amount must be positive, got %d", amount)
	}

	var todayRecords []models.Record
	for _, r := range records {
		if r.PracticeID == practice.ID && r.Date == today {
			todayRecords = append(todayRecords, r)
		}
	}
	if len(todayRecords) == 0 {
		return Delta{}, false, nil
	}

	// Most recent first; the stable sort keeps insertion order for equal
	// timestamps, which makes the result deterministic for a given snapshot.
	sort.SliceStable(todayRecords, func(i, j int) bool {
		return todayRecords[i].Timestamp.After(todayRecords[j].Timestamp)
	})

	delta := Delta{}
	remaining := amount
	for _, r := range todayRecords {
		if remaining <= 0 {
			break
		}
		if r.Count <= remaining {
			delta.RemovedRecordIDs = append(delta.RemovedRecordIDs, r.ID)
			remaining -= r.Count
		} else {
			trimmed := r
			trimmed.Count -= remaining
			delta.UpdatedRecords = append(delta.UpdatedRecords, trimmed)
			remaining = 0
		}
	}

	actual := amount - remaining
	updated := practice
	updated.Completed -= actual
	if updated.Completed < 0 {
		updated.Completed = 0
	}
	updated.LastUpdated = now
	delta.UpdatedPractice = updated

	return delta, true, nil
}

// CompleteDailyDelta tops today up to the practice's daily target. Returns
// ok=false when the target is already met or exceeded.
func CompleteDailyDelta(practice models.Practice, records []models.Record, today string, recordID string, now time.Time) (Delta, bool, error) {
	remaining := practice.DailyTarget - TodayCount(records, practice.ID, today)
	if remaining <= 0 {
		return Delta{}, false, nil
	}

	delta, err := IncrementDelta(practice, today, remaining, recordID, now)
	if err != nil {
		return Delta{}, false, err
	}
	return delta, true, nil
}

// CascadeDeleteRecords returns the records that do not belong to the given
// practice. Used when a practice is deleted, so no orphaned records remain.
func CascadeDeleteRecords(records []models.Record, practiceID string) []models.Record {
	remaining := make([]models.Record, 0, len(records))
	for _, r := range records {
		if r.PracticeID != practiceID {
			remaining = append(remaining, r)
		}
	}
	return remaining
}

// ComputeStreak counts consecutive recorded calendar days walking backward.
// The walk starts at today when today has a record, otherwise at the most
// recent recorded day, so a lapsed streak reports its last-active length
// rather than resetting to zero. The walk is bounded by
// constants.StreakLookbackDays.
func ComputeStreak(records []models.Record, today string) int {
	if len(records) == 0 {
		return 0
	}

	dates := make(map[string]bool, len(records))
	latest := ""
	for _, r := range records {
		dates[r.Date] = true
		if r.Date > latest {
			latest = r.Date
		}
	}

	start := latest
	if dates[today] {
		start = today
	}

	cursor, err := time.Parse(constants.DateFormat, start)
	if err != nil {
		return 0
	}

	streak := 1
	for i := 1; i <= constants.StreakLookbackDays; i++ {
		prev := cursor.AddDate(0, 0, -1)
		if !dates[prev.Format(constants.DateFormat)] {
			break
		}
		streak++
		cursor = prev
	}

	return streak
}

// ProgressData derives the per-practice progress view for the given day.
// Targets are validated to be positive at creation time, so no division
// guard is needed here.
func ProgressData(practices []models.Practice, records []models.Record, today string) []Progress {
	out := make([]Progress, 0, len(practices))
	for _, p := range practices {
		todayCount := TodayCount(records, p.ID, today)
		out = append(out, Progress{
			Practice:         p,
			TodayCount:       todayCount,
			DailyProgressPct: 100 * float64(todayCount) / float64(p.DailyTarget),
			TotalProgressPct: 100 * float64(p.Completed) / float64(p.TotalTarget),
		})
	}
	return out
}

// DateRangeStats groups the records falling inside [startDate, endDate]
// (inclusive) by day, summing counts overall and per practice, sorted
// ascending by date. Days without records are not synthesized; a caller
// that needs a dense series fills the gaps itself.
func DateRangeStats(records []models.Record, startDate, endDate string) []DayStats {
	byDate := make(map[string]*DayStats)
	for _, r := range records {
		// YYYY-MM-DD sorts lexicographically in chronological order.
		if r.Date < startDate || r.Date > endDate {
			continue
		}
		day, ok := byDate[r.Date]
		if !ok {
			day = &DayStats{Date: r.Date, PerPracticeCount: make(map[string]int)}
			byDate[r.Date] = day
		}
		day.TotalCount += r.Count
		day.PerPracticeCount[r.PracticeID] += r.Count
	}

	out := make([]DayStats, 0, len(byDate))
	for _, day := range byDate {
		out = append(out, *day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
