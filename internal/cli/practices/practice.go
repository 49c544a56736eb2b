package practices

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/dharmalog/dharmalog/internal/cli"
	"github.com/dharmalog/dharmalog/internal/models"
)

type PracticeCmd struct {
	Add    PracticeAddCmd    `cmd:"" help:"Add a new practice."`
	List   PracticeListCmd   `cmd:"" help:"List practices."`
	Edit   PracticeEditCmd   `cmd:"" help:"Edit a practice."`
	Delete PracticeDeleteCmd `cmd:"" help:"Delete a practice and its records."`
}

type PracticeAddCmd struct {
	Name  string `arg:"" help:"Practice name."`
	Daily int    `help:"Daily target count." default:"108"`
	Total int    `help:"Lifetime target count." default:"100000"`
}

func (c *PracticeAddCmd) Run(ctx *cli.Context) error {
	now := time.Now()
	practice := models.Practice{
		ID:          uuid.New().String(),
		Name:        c.Name,
		DailyTarget: c.Daily,
		TotalTarget: c.Total,
		CreatedAt:   now,
		LastUpdated: now,
	}
	if err := practice.Validate(); err != nil {
		return err
	}

	// Reject duplicate names so name-based references stay unambiguous.
	existing, err := ctx.Store.GetAllPractices()
	if err != nil {
		return err
	}
	for _, p := range existing {
		if p.Name == c.Name {
			return fmt.Errorf("practice %q already exists", c.Name)
		}
	}

	if err := ctx.Store.AddPractice(practice); err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()
	fmt.Printf("Added practice: %s (daily %d, total %d)\n", c.Name, c.Daily, c.Total)
	return nil
}

type PracticeListCmd struct{}

func (c *PracticeListCmd) Run(ctx *cli.Context) error {
	practices, err := ctx.Store.GetAllPractices()
	if err != nil {
		return err
	}

	if len(practices) == 0 {
		fmt.Println("No practices found. Add one with 'dharmalog practice add'.")
		return nil
	}

	for _, p := range practices {
		progress := 100 * float64(p.Completed) / float64(p.TotalTarget)
		fmt.Printf("%-24s daily %-6d total %d/%d (%.1f%%)\n", p.Name, p.DailyTarget, p.Completed, p.TotalTarget, progress)
	}
	return nil
}

type PracticeEditCmd struct {
	Practice string `arg:"" help:"Practice name or ID."`
	Name     string `help:"New name."`
	Daily    int    `help:"New daily target."`
	Total    int    `help:"New lifetime target."`
}

func (c *PracticeEditCmd) Run(ctx *cli.Context) error {
	practice, err := ctx.ResolvePractice(c.Practice)
	if err != nil {
		return err
	}

	if c.Name == "" && c.Daily == 0 && c.Total == 0 {
		return fmt.Errorf("nothing to change, pass --name, --daily, or --total")
	}

	if c.Name != "" {
		practice.Name = c.Name
	}
	if c.Daily != 0 {
		practice.DailyTarget = c.Daily
	}
	if c.Total != 0 {
		practice.TotalTarget = c.Total
	}
	practice.LastUpdated = time.Now()

	if err := practice.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.UpdatePractice(practice); err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()
	fmt.Printf("Updated practice: %s\n", practice.Name)
	return nil
}

type PracticeDeleteCmd struct {
	Practice string `arg:"" help:"Practice name or ID."`
	Yes      bool   `help:"Skip the confirmation prompt."`
}

func (c *PracticeDeleteCmd) Run(ctx *cli.Context) error {
	practice, err := ctx.ResolvePractice(c.Practice)
	if err != nil {
		return err
	}

	if !c.Yes && !ctx.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q and all of its records?", practice.Name)).
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.DeletePractice(practice.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted practice: %s\n", practice.Name)
	return nil
}
