package stats

import (
	"fmt"
	"os"

	"github.com/dharmalog/dharmalog/internal/cli"
	"github.com/dharmalog/dharmalog/internal/sharing"
)

type ExportCmd struct {
	CSV ExportCSVCmd `cmd:"" name:"csv" help:"Export all records as CSV."`
}

type ExportCSVCmd struct {
	Output string `help:"Write to this file instead of the exports directory. Use - for stdout." short:"o"`
}

func (c *ExportCSVCmd) Run(ctx *cli.Context) error {
	practices, err := ctx.Store.GetAllPractices()
	if err != nil {
		return err
	}
	records, err := ctx.Store.GetAllRecords()
	if err != nil {
		return err
	}

	switch c.Output {
	case "":
		path, err := sharing.ExportRecordsCSV(ctx.Store.GetConfigPath(), practices, records)
		if err != nil {
			return err
		}
		fmt.Printf("Exported %d records to %s\n", len(records), path)
	case "-":
		return sharing.WriteRecordsCSV(os.Stdout, practices, records)
	default:
		f, err := os.Create(c.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := sharing.WriteRecordsCSV(f, practices, records); err != nil {
			return err
		}
		fmt.Printf("Exported %d records to %s\n", len(records), c.Output)
	}
	return nil
}
