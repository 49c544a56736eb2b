package sqlite

import (
	"database/sql"

	"github.com/dharmalog/dharmalog/internal/models"
)

func (s *Store) ExportAll() (models.Backup, error) {
	var backup models.Backup
	var err error

	if backup.Reminders, err = s.GetAllReminders(); err != nil {
		return models.Backup{}, err
	}
	if backup.Cards, err = s.GetAllCards(); err != nil {
		return models.Backup{}, err
	}
	if backup.Practices, err = s.GetAllPractices(); err != nil {
		return models.Backup{}, err
	}
	if backup.Records, err = s.GetAllRecords(); err != nil {
		return models.Backup{}, err
	}
	if backup.Teachings, err = s.GetAllTeachings(); err != nil {
		return models.Backup{}, err
	}
	if backup.Images, err = s.GetAllImages(); err != nil {
		return models.Backup{}, err
	}
	if backup.Settings, err = s.GetSettings(); err != nil {
		return models.Backup{}, err
	}

	return backup, nil
}

var collectionTables = []string{"reminders", "cards", "practices", "records", "teachings", "images", "settings"}

// ImportAll replaces every collection inside one transaction; a failure
// rolls the whole import back.
func (s *Store) ImportAll(backup models.Backup) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range collectionTables {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	if err := importCollections(tx, backup); err != nil {
		return err
	}

	return tx.Commit()
}

// Clear erases every collection and reseeds the defaults, leaving the
// store in the same state as a fresh Init.
func (s *Store) Clear() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range collectionTables {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	if err := seedCollections(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func importCollections(tx *sql.Tx, backup models.Backup) error {
	for _, r := range backup.Reminders {
		if err := insertReminder(tx, r); err != nil {
			return err
		}
	}
	for _, c := range backup.Cards {
		if err := insertCard(tx, c); err != nil {
			return err
		}
	}
	for _, p := range backup.Practices {
		if err := insertPractice(tx, p); err != nil {
			return err
		}
	}
	for _, r := range backup.Records {
		if err := insertRecord(tx, r); err != nil {
			return err
		}
	}
	for _, t := range backup.Teachings {
		if err := insertTeaching(tx, t); err != nil {
			return err
		}
	}
	for _, img := range backup.Images {
		if err := insertImage(tx, img); err != nil {
			return err
		}
	}

	return saveSettings(tx, backup.Settings)
}
