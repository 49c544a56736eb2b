package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	apperrors "github.com/dharmalog/dharmalog/internal/errors"
	"github.com/dharmalog/dharmalog/internal/models"
)

func (s *Store) AddCard(card models.Card) error {
	return insertCard(s.db, card)
}

func insertCard(e execer, card models.Card) error {
	_, err := e.Exec(`
		INSERT INTO cards (id, text, source, image_id, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		card.ID, card.Text, card.Source, card.ImageID, card.CreatedAt.Format(time.RFC3339))
	return err
}

func scanCard(row interface{ Scan(...interface{}) error }) (models.Card, error) {
	var c models.Card
	var source, imageID sql.NullString
	var createdAt string

	if err := row.Scan(&c.ID, &c.Text, &source, &imageID, &createdAt); err != nil {
		return models.Card{}, err
	}

	c.Source = source.String
	c.ImageID = imageID.String

	var err error
	c.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Card{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return c, nil
}

func (s *Store) GetCard(id string) (models.Card, error) {
	row := s.db.QueryRow(`SELECT id, text, source, image_id, created_at FROM cards WHERE id = ?`, id)
	c, err := scanCard(row)
	if err == sql.ErrNoRows {
		return models.Card{}, apperrors.NotFoundf("card %s", id)
	}
	return c, err
}

func (s *Store) GetAllCards() ([]models.Card, error) {
	rows, err := s.db.Query(`SELECT id, text, source, image_id, created_at FROM cards ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (s *Store) DeleteCard(id string) error {
	res, err := s.db.Exec(`DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFoundf("card %s", id)
	}
	return nil
}

func (s *Store) AddTeaching(teaching models.Teaching) error {
	return insertTeaching(s.db, teaching)
}

func insertTeaching(e execer, teaching models.Teaching) error {
	_, err := e.Exec(`
		INSERT INTO teachings (id, content, source, category, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		teaching.ID, teaching.Content, teaching.Source, teaching.Category, teaching.CreatedAt.Format(time.RFC3339))
	return err
}

func scanTeaching(row interface{ Scan(...interface{}) error }) (models.Teaching, error) {
	var t models.Teaching
	var source, category sql.NullString
	var createdAt string

	if err := row.Scan(&t.ID, &t.Content, &source, &category, &createdAt); err != nil {
		return models.Teaching{}, err
	}

	t.Source = source.String
	t.Category = category.String

	var err error
	t.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Teaching{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return t, nil
}

func (s *Store) GetTeaching(id string) (models.Teaching, error) {
	row := s.db.QueryRow(`SELECT id, content, source, category, created_at FROM teachings WHERE id = ?`, id)
	t, err := scanTeaching(row)
	if err == sql.ErrNoRows {
		return models.Teaching{}, apperrors.NotFoundf("teaching %s", id)
	}
	return t, err
}

func (s *Store) GetAllTeachings() ([]models.Teaching, error) {
	rows, err := s.db.Query(`SELECT id, content, source, category, created_at FROM teachings ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teachings []models.Teaching
	for rows.Next() {
		t, err := scanTeaching(rows)
		if err != nil {
			return nil, err
		}
		teachings = append(teachings, t)
	}
	return teachings, rows.Err()
}

func (s *Store) DeleteTeaching(id string) error {
	res, err := s.db.Exec(`DELETE FROM teachings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFoundf("teaching %s", id)
	}
	return nil
}

func (s *Store) AddImage(image models.Image) error {
	return insertImage(s.db, image)
}

func insertImage(e execer, image models.Image) error {
	builtin := 0
	if image.Builtin {
		builtin = 1
	}
	_, err := e.Exec(`
		INSERT INTO images (id, name, style, builtin)
		VALUES (?, ?, ?, ?)`,
		image.ID, image.Name, image.Style, builtin)
	return err
}

func (s *Store) GetImage(id string) (models.Image, error) {
	row := s.db.QueryRow(`SELECT id, name, style, builtin FROM images WHERE id = ?`, id)

	var img models.Image
	var builtin int
	err := row.Scan(&img.ID, &img.Name, &img.Style, &builtin)
	if err == sql.ErrNoRows {
		return models.Image{}, apperrors.NotFoundf("image %s", id)
	}
	if err != nil {
		return models.Image{}, err
	}
	img.Builtin = builtin != 0
	return img, nil
}

func (s *Store) GetAllImages() ([]models.Image, error) {
	rows, err := s.db.Query(`SELECT id, name, style, builtin FROM images ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []models.Image
	for rows.Next() {
		var img models.Image
		var builtin int
		if err := rows.Scan(&img.ID, &img.Name, &img.Style, &builtin); err != nil {
			return nil, err
		}
		img.Builtin = builtin != 0
		images = append(images, img)
	}
	return images, rows.Err()
}
