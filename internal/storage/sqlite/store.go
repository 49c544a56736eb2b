package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/dharmalog/dharmalog/internal/models"
	"github.com/dharmalog/dharmalog/internal/storage/seed"
)

type Store struct {
	path string
	db   *sql.DB
}

// execer is satisfied by both *sql.DB and *sql.Tx, so the insert helpers
// can serve normal writes and transactional imports alike.
type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS practices (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		daily_target INTEGER NOT NULL,
		total_target INTEGER NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		last_updated TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS records (
		id TEXT PRIMARY KEY,
		practice_id TEXT NOT NULL,
		date TEXT NOT NULL,
		count INTEGER NOT NULL,
		timestamp TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_records_practice_date ON records(practice_id, date)`,
	`CREATE TABLE IF NOT EXISTS reminders (
		id TEXT PRIMARY KEY,
		title TEXT,
		message TEXT NOT NULL,
		time TEXT NOT NULL,
		date TEXT,
		repeat TEXT,
		weekdays TEXT,
		active INTEGER NOT NULL DEFAULT 1,
		last_sent TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS cards (
		id TEXT PRIMARY KEY,
		text TEXT NOT NULL,
		source TEXT,
		image_id TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS teachings (
		id TEXT PRIMARY KEY,
		content TEXT NOT NULL,
		source TEXT,
		category TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS images (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		style TEXT NOT NULL,
		builtin INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		theme TEXT NOT NULL,
		language TEXT NOT NULL,
		daily_notification INTEGER NOT NULL,
		notification_time TEXT NOT NULL,
		timezone TEXT NOT NULL
	)`,
}

// Init creates the database, bootstraps the schema, and seeds defaults
// (settings, the teaching library, and the card frames), matching what a
// fresh JSON store starts with.
func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.bootstrap(); err != nil {
		return err
	}

	return s.seedDefaults()
}

// seedDefaults writes the seed data in one transaction.
func (s *Store) seedDefaults() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := seedCollections(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func seedCollections(tx *sql.Tx) error {
	for _, t := range seed.Teachings() {
		if err := insertTeaching(tx, t); err != nil {
			return err
		}
	}
	for _, img := range seed.Images() {
		if err := insertImage(tx, img); err != nil {
			return err
		}
	}
	return saveSettings(tx, seed.Settings())
}

func (s *Store) bootstrap() error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to bootstrap schema: %w", err)
		}
	}
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'dharmalog init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Bootstrap is idempotent; running it on load picks up tables added
	// after the database was first created.
	return s.bootstrap()
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

func (s *Store) GetSettings() (models.Settings, error) {
	row := s.db.QueryRow(`
		SELECT theme, language, daily_notification, notification_time, timezone
		FROM settings WHERE id = 1`)

	var settings models.Settings
	var dailyNotification int
	err := row.Scan(&settings.Theme, &settings.Language, &dailyNotification, &settings.NotificationTime, &settings.Timezone)
	if err == sql.ErrNoRows {
		return models.Settings{}, nil
	}
	if err != nil {
		return models.Settings{}, err
	}
	settings.DailyNotification = dailyNotification != 0
	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	return saveSettings(s.db, settings)
}

func saveSettings(e execer, settings models.Settings) error {
	dailyNotification := 0
	if settings.DailyNotification {
		dailyNotification = 1
	}
	_, err := e.Exec(`
		INSERT INTO settings (id, theme, language, daily_notification, notification_time, timezone)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			theme = excluded.theme,
			language = excluded.language,
			daily_notification = excluded.daily_notification,
			notification_time = excluded.notification_time,
			timezone = excluded.timezone`,
		settings.Theme, settings.Language, dailyNotification, settings.NotificationTime, settings.Timezone)
	return err
}
