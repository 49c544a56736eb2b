package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	apperrors "github.com/dharmalog/dharmalog/internal/errors"
	"github.com/dharmalog/dharmalog/internal/models"
)

func (s *Store) AddPractice(practice models.Practice) error {
	return insertPractice(s.db, practice)
}

func insertPractice(e execer, practice models.Practice) error {
	_, err := e.Exec(`
		INSERT INTO practices (id, name, daily_target, total_target, completed, created_at, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		practice.ID, practice.Name, practice.DailyTarget, practice.TotalTarget,
		practice.Completed, practice.CreatedAt.Format(time.RFC3339), practice.LastUpdated.Format(time.RFC3339))
	return err
}

func scanPractice(row interface{ Scan(...interface{}) error }) (models.Practice, error) {
	var p models.Practice
	var createdAt, lastUpdated string

	if err := row.Scan(&p.ID, &p.Name, &p.DailyTarget, &p.TotalTarget, &p.Completed, &createdAt, &lastUpdated); err != nil {
		return models.Practice{}, err
	}

	var err error
	p.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Practice{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	p.LastUpdated, err = time.Parse(time.RFC3339, lastUpdated)
	if err != nil {
		return models.Practice{}, fmt.Errorf("failed to parse last_updated: %w", err)
	}

	return p, nil
}

func (s *Store) GetPractice(id string) (models.Practice, error) {
	row := s.db.QueryRow(`
		SELECT id, name, daily_target, total_target, completed, created_at, last_updated
		FROM practices WHERE id = ?`, id)

	p, err := scanPractice(row)
	if err == sql.ErrNoRows {
		return models.Practice{}, apperrors.NotFoundf("practice %s", id)
	}
	return p, err
}

func (s *Store) GetAllPractices() ([]models.Practice, error) {
	rows, err := s.db.Query(`
		SELECT id, name, daily_target, total_target, completed, created_at, last_updated
		FROM practices ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var practices []models.Practice
	for rows.Next() {
		p, err := scanPractice(rows)
		if err != nil {
			return nil, err
		}
		practices = append(practices, p)
	}
	return practices, rows.Err()
}

func (s *Store) UpdatePractice(practice models.Practice) error {
	res, err := s.db.Exec(`
		UPDATE practices
		SET name = ?, daily_target = ?, total_target = ?, completed = ?, last_updated = ?
		WHERE id = ?`,
		practice.Name, practice.DailyTarget, practice.TotalTarget,
		practice.Completed, practice.LastUpdated.Format(time.RFC3339), practice.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFoundf("practice %s", practice.ID)
	}
	return nil
}

// DeletePractice removes the practice and cascades to its records in one
// transaction.
func (s *Store) DeletePractice(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM practices WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFoundf("practice %s", id)
	}

	if _, err := tx.Exec(`DELETE FROM records WHERE practice_id = ?`, id); err != nil {
		return err
	}

	return tx.Commit()
}
