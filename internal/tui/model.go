package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dharmalog/dharmalog/internal/models"
	"github.com/dharmalog/dharmalog/internal/storage"
	"github.com/dharmalog/dharmalog/internal/utils"
)

type sessionState int

const (
	stateCounter sessionState = iota
	stateStats
	stateReminders
)

type KeyMap struct {
	NextTab   key.Binding
	PrevTab   key.Binding
	Up        key.Binding
	Down      key.Binding
	Increment key.Binding
	Decrement key.Binding
	Done      key.Binding
	Toggle    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var keys = KeyMap{
	NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	PrevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Increment: key.NewBinding(key.WithKeys("+", " ", "enter"), key.WithHelp("space/+", "count one")),
	Decrement: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "undo one")),
	Done:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "complete daily")),
	Toggle:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle reminder")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp and FullHelp satisfy help.KeyMap.
func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{keys.NextTab, keys.Increment, keys.Decrement, keys.Done, keys.Quit}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.NextTab, keys.PrevTab, keys.Up, keys.Down},
		{keys.Increment, keys.Decrement, keys.Done, keys.Toggle},
		{keys.Help, keys.Quit},
	}
}

type Model struct {
	store storage.Provider
	state sessionState
	keys  KeyMap
	help  help.Model

	practices []models.Practice
	records   []models.Record
	reminders []models.Reminder
	today     string

	cursor   int
	err      error
	quitting bool
	width    int
	height   int
}

func NewModel(store storage.Provider) Model {
	m := Model{
		store: store,
		state: stateCounter,
		keys:  keys,
		help:  help.New(),
	}
	m.reload()
	return m
}

// reload refreshes the model's snapshot from the store.
func (m *Model) reload() {
	practices, err := m.store.GetAllPractices()
	if err != nil {
		m.err = err
		return
	}
	records, err := m.store.GetAllRecords()
	if err != nil {
		m.err = err
		return
	}
	reminders, err := m.store.GetAllReminders()
	if err != nil {
		m.err = err
		return
	}

	settings, err := m.store.GetSettings()
	if err != nil {
		m.err = err
		return
	}
	today, err := utils.GetTodayFromSettings(settings)
	if err != nil {
		m.err = err
		return
	}

	m.practices = practices
	m.records = records
	m.reminders = reminders
	m.today = today
	m.err = nil

	if m.cursor >= len(m.practices) {
		m.cursor = 0
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}
