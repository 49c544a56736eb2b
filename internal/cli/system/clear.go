package system

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/dharmalog/dharmalog/internal/cli"
)

type ClearCmd struct {
	Yes bool `help:"Skip the confirmation prompt."`
}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	if !c.Yes && !ctx.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title("Erase all practices, records, reminders, and cards?").
			Description("Default teachings and card frames are reseeded. A backup is created first.").
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

	if err := ctx.Store.Clear(); err != nil {
		return err
	}

	fmt.Println("Store cleared.")
	return nil
}
