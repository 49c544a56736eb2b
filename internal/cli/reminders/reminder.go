package reminders

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dharmalog/dharmalog/internal/cli"
	"github.com/dharmalog/dharmalog/internal/constants"
	"github.com/dharmalog/dharmalog/internal/logger"
	"github.com/dharmalog/dharmalog/internal/models"
	"github.com/dharmalog/dharmalog/internal/notifier"
	"github.com/dharmalog/dharmalog/internal/scheduler"
	"github.com/dharmalog/dharmalog/internal/sharing"
)

type RemindCmd struct {
	Add     RemindAddCmd     `cmd:"" help:"Add a reminder."`
	List    RemindListCmd    `cmd:"" help:"List reminders."`
	Toggle  RemindToggleCmd  `cmd:"" help:"Activate or deactivate a reminder."`
	Silence RemindSilenceCmd `cmd:"" help:"Deactivate every reminder at once."`
	Share   RemindShareCmd   `cmd:"" help:"Share a reminder as a text card."`
	Delete  RemindDeleteCmd  `cmd:"" help:"Delete a reminder."`
	Check   RemindCheckCmd   `cmd:"" help:"Dispatch any reminders that are due."`
}

type RemindAddCmd struct {
	Message  string `arg:"" help:"Reminder message."`
	Time     string `help:"Time of day (HH:MM)." default:"08:00"`
	Title    string `help:"Notification title."`
	Date     string `help:"One-shot date (YYYY-MM-DD). Mutually exclusive with --repeat."`
	Repeat   string `help:"Repeat rule: daily or weekly." enum:"daily,weekly,none," default:""`
	Weekdays string `help:"Comma-separated weekdays for weekly reminders (e.g. mon,wed,fri)."`
}

func (c *RemindAddCmd) Run(ctx *cli.Context) error {
	reminder := models.Reminder{
		ID:        uuid.New().String(),
		Title:     c.Title,
		Message:   c.Message,
		Time:      c.Time,
		Date:      c.Date,
		Repeat:    constants.RepeatType(c.Repeat),
		Active:    true,
		CreatedAt: time.Now(),
	}

	if c.Date == "" && c.Repeat == "" {
		// A bare reminder defaults to daily, matching the app's daily
		// practice nudge.
		reminder.Repeat = constants.RepeatDaily
	}

	if c.Weekdays != "" {
		weekdays, err := cli.ParseWeekdays(c.Weekdays)
		if err != nil {
			return err
		}
		reminder.Weekdays = weekdays
	}

	if err := reminder.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddReminder(reminder); err != nil {
		return err
	}

	fmt.Printf("Added reminder %q at %s (%s)\n", c.Message, reminder.Time, reminder.FormatRepeat())
	return nil
}

type RemindListCmd struct{}

func (c *RemindListCmd) Run(ctx *cli.Context) error {
	reminders, err := ctx.Store.GetAllReminders()
	if err != nil {
		return err
	}
	if len(reminders) == 0 {
		fmt.Println("No reminders found.")
		return nil
	}

	now, err := ctx.Now()
	if err != nil {
		return err
	}

	for _, r := range reminders {
		status := "off"
		if r.Active {
			status = "on "
		}
		next := "-"
		if at, ok := scheduler.NextFire(r, now); ok {
			next = at.Format("2006-01-02 15:04")
		}
		fmt.Printf("[%s] %-32s %s  %-24s next: %s\n", status, r.Message, r.Time, r.FormatRepeat(), next)
	}
	return nil
}

type RemindToggleCmd struct {
	Reminder string `arg:"" help:"Reminder ID or message prefix."`
}

func (c *RemindToggleCmd) Run(ctx *cli.Context) error {
	reminder, err := ctx.ResolveReminder(c.Reminder)
	if err != nil {
		return err
	}

	reminder.Active = !reminder.Active
	if err := ctx.Store.UpdateReminder(reminder); err != nil {
		return err
	}

	state := "deactivated"
	if reminder.Active {
		state = "activated"
	}
	fmt.Printf("Reminder %q %s.\n", reminder.Message, state)
	return nil
}

type RemindSilenceCmd struct{}

func (c *RemindSilenceCmd) Run(ctx *cli.Context) error {
	reminders, err := ctx.Store.GetAllReminders()
	if err != nil {
		return err
	}

	changed := scheduler.DeactivateAll(reminders)
	for _, r := range changed {
		if err := ctx.Store.UpdateReminder(r); err != nil {
			return err
		}
	}

	if len(changed) == 0 {
		fmt.Println("No active reminders.")
		return nil
	}
	fmt.Printf("Deactivated %d reminders.\n", len(changed))
	return nil
}

type RemindShareCmd struct {
	Reminder string `arg:"" help:"Reminder ID or message prefix."`
	Yes      bool   `help:"Skip the confirmation prompt."`
}

func (c *RemindShareCmd) Run(ctx *cli.Context) error {
	reminder, err := ctx.ResolveReminder(c.Reminder)
	if err != nil {
		return err
	}

	result, err := sharing.Share(ctx.Store.GetConfigPath(), sharing.Options{
		Title:   "reminder",
		Message: sharing.ReminderShareText(reminder),
		Yes:     c.Yes || ctx.Yes,
	})
	if err != nil {
		return err
	}
	if result.Dismissed {
		fmt.Println("Share dismissed.")
		return nil
	}
	fmt.Printf("Reminder written to %s\n", result.Path)
	return nil
}

type RemindDeleteCmd struct {
	Reminder string `arg:"" help:"Reminder ID or message prefix."`
}

func (c *RemindDeleteCmd) Run(ctx *cli.Context) error {
	reminder, err := ctx.ResolveReminder(c.Reminder)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteReminder(reminder.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted reminder %q.\n", reminder.Message)
	return nil
}

type RemindCheckCmd struct{}

// Run dispatches due reminders. Delivery failures are logged and skipped so
// one unreachable tray app never blocks the rest, and a reminder that fails
// to send stays unsent for the next check.
func (c *RemindCheckCmd) Run(ctx *cli.Context) error {
	reminders, err := ctx.Store.GetAllReminders()
	if err != nil {
		return err
	}
	now, err := ctx.Now()
	if err != nil {
		return err
	}

	due := scheduler.DueReminders(reminders, now)
	if len(due) == 0 {
		fmt.Println("No reminders due.")
		return nil
	}

	n := notifier.New()
	sent := 0
	for _, r := range due {
		title := r.Title
		if title == "" {
			title = constants.DefaultReminderTitle
		}
		if err := n.Notify(title, r.Message); err != nil {
			logger.Warn("Failed to deliver reminder", "id", r.ID, "error", err)
			fmt.Printf("Could not deliver %q: %v\n", r.Message, err)
			continue
		}
		updated := scheduler.MarkSent(r, now)
		if err := ctx.Store.UpdateReminder(updated); err != nil {
			return err
		}
		sent++
	}

	fmt.Printf("Dispatched %d of %d due reminders.\n", sent, len(due))
	return nil
}
