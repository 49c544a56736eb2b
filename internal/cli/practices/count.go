package practices

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dharmalog/dharmalog/internal/cli"
	"github.com/dharmalog/dharmalog/internal/engine"
)

type CountCmd struct {
	Add   CountAddCmd   `cmd:"" help:"Record completed repetitions."`
	Undo  CountUndoCmd  `cmd:"" help:"Remove repetitions recorded today."`
	Done  CountDoneCmd  `cmd:"" help:"Top today up to the daily target."`
	Today CountTodayCmd `cmd:"" help:"Show today's progress."`
}

type CountAddCmd struct {
	Practice string `arg:"" help:"Practice name or ID."`
	Amount   int    `arg:"" optional:"" help:"Repetitions to add." default:"1"`
}

func (c *CountAddCmd) Run(ctx *cli.Context) error {
	practice, err := ctx.ResolvePractice(c.Practice)
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

	delta, err := engine.IncrementDelta(practice, today, c.Amount, uuid.New().String(), now)
	if err != nil {
		return err
	}
	if err := ctx.Store.ApplyDelta(delta); err != nil {
		return err
	}

	records, err := ctx.Store.GetAllRecords()
	if err != nil {
		return err
	}
	todayCount := engine.TodayCount(records, practice.ID, today)
	fmt.Printf("%s: +%d (today %d/%d)\n", practice.Name, c.Amount, todayCount, practice.DailyTarget)
	if todayCount >= practice.DailyTarget {
		fmt.Println("Daily target reached.")
	}
	return nil
}

type CountUndoCmd struct {
	Practice string `arg:"" help:"Practice name or ID."`
	Amount   int    `arg:"" optional:"" help:"Repetitions to remove." default:"1"`
}

func (c *CountUndoCmd) Run(ctx *cli.Context) error {
	practice, err := ctx.ResolvePractice(c.Practice)
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
	records, err := ctx.Store.GetRecordsForPractice(practice.ID)
	if err != nil {
		return err
	}

	delta, ok, err := engine.DecrementDelta(practice, records, today, c.Amount, now)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Printf("%s has no recorded repetitions today, nothing to undo.\n", practice.Name)
		return nil
	}
	if err := ctx.Store.ApplyDelta(delta); err != nil {
		return err
	}

	all, err := ctx.Store.GetAllRecords()
	if err != nil {
		return err
	}
	fmt.Printf("%s: -%d (today %d/%d)\n", practice.Name, c.Amount,
		engine.TodayCount(all, practice.ID, today), practice.DailyTarget)
	return nil
}

type CountDoneCmd struct {
	Practice string `arg:"" help:"Practice name or ID."`
}

func (c *CountDoneCmd) Run(ctx *cli.Context) error {
	practice, err := ctx.ResolvePractice(c.Practice)
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
	records, err := ctx.Store.GetRecordsForPractice(practice.ID)
	if err != nil {
		return err
	}

	delta, ok, err := engine.CompleteDailyDelta(practice, records, today, uuid.New().String(), now)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Printf("%s already met its daily target.\n", practice.Name)
		return nil
	}
	if err := ctx.Store.ApplyDelta(delta); err != nil {
		return err
	}

	fmt.Printf("%s: daily target of %d reached.\n", practice.Name, practice.DailyTarget)
	return nil
}

type CountTodayCmd struct{}

func (c *CountTodayCmd) Run(ctx *cli.Context) error {
	practices, err := ctx.Store.GetAllPractices()
	if err != nil {
		return err
	}
	if len(practices) == 0 {
		fmt.Println("No practices found.")
		return nil
	}

	records, err := ctx.Store.GetAllRecords()
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	fmt.Printf("Practice for %s:\n\n", today)
	for _, p := range engine.ProgressData(practices, records, today) {
		marker := "[ ]"
		if p.TodayCount >= p.Practice.DailyTarget {
			marker = "[x]"
		}
		fmt.Printf("%s %-24s %d/%d (%.0f%%)\n", marker, p.Practice.Name, p.TodayCount, p.Practice.DailyTarget, p.DailyProgressPct)
	}

	fmt.Printf("\nStreak: %d days\n", engine.ComputeStreak(records, today))
	return nil
}
