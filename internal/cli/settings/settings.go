package settings

import (
	"fmt"
	"strconv"

	"github.com/dharmalog/dharmalog/internal/cli"
	"github.com/dharmalog/dharmalog/internal/utils"
)

type SettingsCmd struct {
	Show ShowCmd `cmd:"" help:"Show current settings." default:"1"`
	Set  SetCmd  `cmd:"" help:"Change a setting."`
}

type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	fmt.Printf("theme:              %s\n", settings.Theme)
	fmt.Printf("language:           %s\n", settings.Language)
	fmt.Printf("daily-notification: %t\n", settings.DailyNotification)
	fmt.Printf("notification-time:  %s\n", settings.NotificationTime)
	fmt.Printf("timezone:           %s\n", settings.Timezone)
	return nil
}

type SetCmd struct {
	Key   string `arg:"" help:"Setting name." enum:"theme,language,daily-notification,notification-time,timezone"`
	Value string `arg:"" help:"New value."`
}

func (c *SetCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	switch c.Key {
	case "theme":
		if c.Value != "light" && c.Value != "dark" {
			return fmt.Errorf("theme must be light or dark")
		}
		settings.Theme = c.Value
	case "language":
		settings.Language = c.Value
	case "daily-notification":
		enabled, err := strconv.ParseBool(c.Value)
		if err != nil {
			return fmt.Errorf("daily-notification must be true or false")
		}
		settings.DailyNotification = enabled
	case "notification-time":
		if !utils.ValidateTimeFormat(c.Value) {
			return fmt.Errorf("notification-time must be HH:MM")
		}
		settings.NotificationTime = c.Value
	case "timezone":
		if !utils.ValidateTimezone(c.Value) {
			return fmt.Errorf("unknown timezone %q", c.Value)
		}
		settings.Timezone = c.Value
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}

	fmt.Printf("Set %s = %s\n", c.Key, c.Value)
	return nil
}
