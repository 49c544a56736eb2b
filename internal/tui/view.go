package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dharmalog/dharmalog/internal/constants"
	"github.com/dharmalog/dharmalog/internal/engine"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case stateCounter:
		content = m.viewCounter()
	case stateStats:
		content = m.viewStats()
	case stateReminders:
		content = m.viewReminders()
	}

	var errLine string
	if m.err != nil {
		errLine = errorStyle.Render("Error: " + m.err.Error())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(content),
		errLine,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Counter", "Stats", "Reminders"} {
		if m.state == sessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewCounter() string {
	if len(m.practices) == 0 {
		return mutedStyle.Render("No practices yet. Add one with 'dharmalog practice add'.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Practice for %s\n\n", m.today)

	for i, p := range engine.ProgressData(m.practices, m.records, m.today) {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%-24s %4d/%-4d %s", cursor, p.Practice.Name,
			p.TodayCount, p.Practice.DailyTarget, progressBar(p.DailyProgressPct, 20))

		switch {
		case i == m.cursor:
			line = selectedStyle.Render(line)
		case p.TodayCount >= p.Practice.DailyTarget:
			line = doneStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}

func (m Model) viewStats() string {
	streak := engine.ComputeStreak(m.records, m.today)
	total := engine.TotalCount(m.records)

	var b strings.Builder
	fmt.Fprintf(&b, "Streak: %d days\nTotal:  %d repetitions\n\n", streak, total)

	if len(m.practices) > 0 {
		b.WriteString("Lifetime progress\n")
		for _, p := range engine.ProgressData(m.practices, m.records, m.today) {
			fmt.Fprintf(&b, "  %-24s %d/%d %s\n", p.Practice.Name,
				p.Practice.Completed, p.Practice.TotalTarget, progressBar(p.TotalProgressPct, 20))
		}
		b.WriteString("\n")
	}

	b.WriteString("Last 7 days\n")
	end, err := time.Parse(constants.DateFormat, m.today)
	if err != nil {
		return b.String()
	}
	start := end.AddDate(0, 0, -6)
	days := engine.DateRangeStats(m.records, start.Format(constants.DateFormat), m.today)

	counts := make(map[string]int, len(days))
	max := 1
	for _, d := range days {
		counts[d.Date] = d.TotalCount
		if d.TotalCount > max {
			max = d.TotalCount
		}
	}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format(constants.DateFormat)
		count := counts[date]
		fmt.Fprintf(&b, "  %s %-20s %d\n", date, strings.Repeat("█", count*20/max), count)
	}

	return b.String()
}

func (m Model) viewReminders() string {
	if len(m.reminders) == 0 {
		return mutedStyle.Render("No reminders yet. Add one with 'dharmalog remind add'.")
	}

	var b strings.Builder
	for i, r := range m.reminders {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		status := "[ ]"
		if r.Active {
			status = "[x]"
		}
		line := fmt.Sprintf("%s%s %s  %-32s %s", cursor, status, r.Time, r.Message, r.FormatRepeat())
		if i == m.cursor {
			line = selectedStyle.Render(line)
		} else if !r.Active {
			line = mutedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func progressBar(pct float64, width int) string {
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	filled := int(pct) * width / 100
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}
