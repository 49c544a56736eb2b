package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/dharmalog/dharmalog/internal/engine"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			m.state = (m.state + 1) % 3
			m.cursor = 0
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.state = (m.state + 2) % 3
			m.cursor = 0
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < m.listLen()-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Increment):
			if m.state == stateCounter {
				m.countSelected(1)
			}
			return m, nil

		case key.Matches(msg, m.keys.Decrement):
			if m.state == stateCounter {
				m.undoSelected(1)
			}
			return m, nil

		case key.Matches(msg, m.keys.Done):
			if m.state == stateCounter {
				m.completeSelected()
			}
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			if m.state == stateReminders {
				m.toggleSelectedReminder()
			}
			return m, nil
		}
	}

	return m, nil
}

func (m *Model) listLen() int {
	if m.state == stateReminders {
		return len(m.reminders)
	}
	return len(m.practices)
}

func (m *Model) countSelected(amount int) {
	if m.cursor >= len(m.practices) {
		return
	}
	practice := m.practices[m.cursor]

	delta, err := engine.IncrementDelta(practice, m.today, amount, uuid.New().String(), time.Now())
	if err != nil {
		m.err = err
		return
	}
	if err := m.store.ApplyDelta(delta); err != nil {
		m.err = err
		return
	}
	m.reload()
}

func (m *Model) undoSelected(amount int) {
	if m.cursor >= len(m.practices) {
		return
	}
	practice := m.practices[m.cursor]

	delta, ok, err := engine.DecrementDelta(practice, m.records, m.today, amount, time.Now())
	if err != nil {
		m.err = err
		return
	}
	if !ok {
		return
	}
	if err := m.store.ApplyDelta(delta); err != nil {
		m.err = err
		return
	}
	m.reload()
}

func (m *Model) completeSelected() {
	if m.cursor >= len(m.practices) {
		return
	}
	practice := m.practices[m.cursor]

	delta, ok, err := engine.CompleteDailyDelta(practice, m.records, m.today, uuid.New().String(), time.Now())
	if err != nil {
		m.err = err
		return
	}
	if !ok {
		return
	}
	if err := m.store.ApplyDelta(delta); err != nil {
		m.err = err
		return
	}
	m.reload()
}

func (m *Model) toggleSelectedReminder() {
	if m.cursor >= len(m.reminders) {
		return
	}
	reminder := m.reminders[m.cursor]
	reminder.Active = !reminder.Active
	if err := m.store.UpdateReminder(reminder); err != nil {
		m.err = err
		return
	}
	m.reload()
}
