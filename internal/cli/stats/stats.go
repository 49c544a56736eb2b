package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/dharmalog/dharmalog/internal/cli"
	"github.com/dharmalog/dharmalog/internal/constants"
	"github.com/dharmalog/dharmalog/internal/engine"
	"github.com/dharmalog/dharmalog/internal/models"
	"github.com/dharmalog/dharmalog/internal/sharing"
)

type StatsCmd struct {
	Period string `help:"Window: week, month, or all." enum:"week,month,all" default:"week"`
	Share  bool   `help:"Share the stats summary as text."`
	Yes    bool   `help:"Skip the share confirmation prompt."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	practices, err := ctx.Store.GetAllPractices()
	if err != nil {
		return err
	}
	records, err := ctx.Store.GetAllRecords()
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	now, err := ctx.Now()
	if err != nil {
		return err
	}

	streak := engine.ComputeStreak(records, today)
	total := engine.TotalCount(records)

	fmt.Printf("Streak: %d days\nTotal:  %d repetitions\n\n", streak, total)

	if len(practices) > 0 {
		fmt.Println("Progress:")
		for _, p := range engine.ProgressData(practices, records, today) {
			fmt.Printf("  %-24s today %d/%d  lifetime %d/%d (%.1f%%)\n",
				p.Practice.Name, p.TodayCount, p.Practice.DailyTarget,
				p.Practice.Completed, p.Practice.TotalTarget, p.TotalProgressPct)
		}
		fmt.Println()
	}

	start, end := periodRange(constants.StatsPeriod(c.Period), now, records)
	days := engine.DateRangeStats(records, start, end)
	renderChart(days, start, end, now.Location())

	if c.Share {
		result, err := sharing.Share(ctx.Store.GetConfigPath(), sharing.Options{
			Title:   "practice stats",
			Message: sharing.StatsShareText(streak, total, practices),
			Yes:     c.Yes || ctx.Yes,
		})
		if err != nil {
			return err
		}
		if result.Dismissed {
			fmt.Println("Share dismissed.")
			return nil
		}
		fmt.Printf("Stats written to %s\n", result.Path)
	}
	return nil
}

func periodRange(period constants.StatsPeriod, now time.Time, records []models.Record) (string, string) {
	end := now.Format(constants.DateFormat)
	switch period {
	case constants.PeriodMonth:
		return now.AddDate(0, 0, -29).Format(constants.DateFormat), end
	case constants.PeriodAll:
		start := end
		for _, r := range records {
			if r.Date < start {
				start = r.Date
			}
		}
		return start, end
	default:
		return now.AddDate(0, 0, -6).Format(constants.DateFormat), end
	}
}

// renderChart prints a horizontal bar per day, dense over the range so gaps
// in practice show as empty days.
func renderChart(days []engine.DayStats, start, end string, loc *time.Location) {
	counts := make(map[string]int, len(days))
	max := 0
	for _, d := range days {
		counts[d.Date] = d.TotalCount
		if d.TotalCount > max {
			max = d.TotalCount
		}
	}
	if max == 0 {
		fmt.Println("No records in this period.")
		return
	}

	startDay, err := time.ParseInLocation(constants.DateFormat, start, loc)
	if err != nil {
		return
	}
	endDay, err := time.ParseInLocation(constants.DateFormat, end, loc)
	if err != nil {
		return
	}

	const barWidth = 40
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		date := day.Format(constants.DateFormat)
		count := counts[date]
		width := count * barWidth / max
		fmt.Printf("%s %-*s %d\n", date, barWidth, strings.Repeat("█", width), count)
	}
}
