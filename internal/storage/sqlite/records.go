package sqlite

import (
	"fmt"
	"time"

	"github.com/dharmalog/dharmalog/internal/engine"
	"github.com/dharmalog/dharmalog/internal/models"
)

func (s *Store) AddRecord(record models.Record) error {
	return insertRecord(s.db, record)
}

func insertRecord(e execer, record models.Record) error {
	_, err := e.Exec(`
		INSERT INTO records (id, practice_id, date, count, timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		record.ID, record.PracticeID, record.Date, record.Count, record.Timestamp.Format(time.RFC3339Nano))
	return err
}

func (s *Store) queryRecords(query string, args ...interface{}) ([]models.Record, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var r models.Record
		var timestamp string
		if err := rows.Scan(&r.ID, &r.PracticeID, &r.Date, &r.Count, &timestamp); err != nil {
			return nil, err
		}
		r.Timestamp, err = time.Parse(time.RFC3339Nano, timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) GetAllRecords() ([]models.Record, error) {
	return s.queryRecords(`
		SELECT id, practice_id, date, count, timestamp
		FROM records ORDER BY date, timestamp`)
}

func (s *Store) GetRecordsForPractice(practiceID string) ([]models.Record, error) {
	return s.queryRecords(`
		SELECT id, practice_id, date, count, timestamp
		FROM records WHERE practice_id = ? ORDER BY date, timestamp`, practiceID)
}

// ApplyDelta applies an engine delta in a single transaction so the
// practice's completed total and its records never diverge.
func (s *Store) ApplyDelta(delta engine.Delta) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, id := range delta.RemovedRecordIDs {
		if _, err := tx.Exec(`DELETE FROM records WHERE id = ?`, id); err != nil {
			return err
		}
	}

	for _, r := range delta.UpdatedRecords {
		if _, err := tx.Exec(`UPDATE records SET count = ? WHERE id = ?`, r.Count, r.ID); err != nil {
			return err
		}
	}

	if delta.NewRecord != nil {
		r := delta.NewRecord
		if _, err := tx.Exec(`
			INSERT INTO records (id, practice_id, date, count, timestamp)
			VALUES (?, ?, ?, ?, ?)`,
			r.ID, r.PracticeID, r.Date, r.Count, r.Timestamp.Format(time.RFC3339Nano)); err != nil {
			return err
		}
	}

	p := delta.UpdatedPractice
	if _, err := tx.Exec(`
		UPDATE practices
		SET name = ?, daily_target = ?, total_target = ?, completed = ?, last_updated = ?
		WHERE id = ?`,
		p.Name, p.DailyTarget, p.TotalTarget, p.Completed, p.LastUpdated.Format(time.RFC3339), p.ID); err != nil {
		return err
	}

	return tx.Commit()
}
