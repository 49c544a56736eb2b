package system

import (
	"fmt"
	"time"

	"github.com/dharmalog/dharmalog/internal/cli"
	"github.com/dharmalog/dharmalog/internal/constants"
	"github.com/dharmalog/dharmalog/internal/notifier"
	"github.com/dharmalog/dharmalog/internal/scheduler"
	"github.com/dharmalog/dharmalog/internal/utils"
)

func timeOn(day time.Time, timeStr string) (time.Time, error) {
	t, err := utils.ParseTime(timeStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

// NotifyCmd is invoked by the tray app or a cron entry; it fires the daily
// practice nudge plus any due user reminders.
type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	now, err := ctx.Now()
	if err != nil {
		return err
	}

	type pending struct {
		title   string
		message string
	}
	var queue []pending

	if settings.DailyNotification && settings.NotificationTime != "" {
		fireAt, err := timeOn(now, settings.NotificationTime)
		if err == nil && !now.Before(fireAt) {
			queue = append(queue, pending{
				title:   constants.DefaultReminderTitle,
				message: constants.DefaultDailyReminderMessage,
			})
		}
	}

	reminders, err := ctx.Store.GetAllReminders()
	if err != nil {
		return err
	}
	due := scheduler.DueReminders(reminders, now)

	for _, r := range due {
		title := r.Title
		if title == "" {
			title = constants.DefaultReminderTitle
		}
		queue = append(queue, pending{title: title, message: r.Message})
	}

	if len(queue) == 0 {
		if c.DryRun {
			fmt.Println("Nothing due.")
		}
		return nil
	}

	if c.DryRun {
		for _, p := range queue {
			fmt.Printf("[%s] %s\n", p.title, p.message)
		}
		return nil
	}

	n := notifier.New()
	for _, p := range queue {
		if err := n.Notify(p.title, p.message); err != nil {
			return err
		}
	}
	for _, r := range due {
		if err := ctx.Store.UpdateReminder(scheduler.MarkSent(r, now)); err != nil {
			return err
		}
	}
	return nil
}
