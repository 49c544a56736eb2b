package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dharmalog/dharmalog/internal/engine"
	"github.com/dharmalog/dharmalog/internal/models"
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Practices
	AddPractice(models.Practice) error
	GetPractice(id string) (models.Practice, error)
	GetAllPractices() ([]models.Practice, error)
	UpdatePractice(models.Practice) error
	// DeletePractice removes the practice and all of its records in a single
	// write, so no orphaned records can survive a partial failure.
	DeletePractice(id string) error

	// Records
	AddRecord(models.Record) error
	GetAllRecords() ([]models.Record, error)
	GetRecordsForPractice(practiceID string) ([]models.Record, error)
	// ApplyDelta applies an engine delta (new/updated/removed records plus
	// the practice update) as one atomic unit.
	ApplyDelta(engine.Delta) error

	// Reminders
	AddReminder(models.Reminder) error
	GetReminder(id string) (models.Reminder, error)
	GetAllReminders() ([]models.Reminder, error)
	UpdateReminder(models.Reminder) error
	DeleteReminder(id string) error

	// Cards
	AddCard(models.Card) error
	GetCard(id string) (models.Card, error)
	GetAllCards() ([]models.Card, error)
	DeleteCard(id string) error

	// Teachings
	AddTeaching(models.Teaching) error
	GetTeaching(id string) (models.Teaching, error)
	GetAllTeachings() ([]models.Teaching, error)
	DeleteTeaching(id string) error

	// Images
	AddImage(models.Image) error
	GetImage(id string) (models.Image, error)
	GetAllImages() ([]models.Image, error)

	// Backup
	ExportAll() (models.Backup, error)
	// ImportAll replaces every collection with the backup's contents in a
	// single write; it must not partially apply.
	ImportAll(models.Backup) error
	Clear() error

	// Utils
	GetConfigPath() string
}

// NewStore picks a provider for the given config path: paths ending in .db
// get the SQLite store, everything else the JSON flat-file store.
func NewStore(path string) Provider {
	path = ExpandPath(path)
	if strings.HasSuffix(path, ".db") {
		return NewSQLiteStore(path)
	}
	return NewJSONStore(path)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
