package sqlite

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dharmalog/dharmalog/internal/constants"
	apperrors "github.com/dharmalog/dharmalog/internal/errors"
	"github.com/dharmalog/dharmalog/internal/models"
)

func encodeWeekdays(weekdays []time.Weekday) string {
	if len(weekdays) == 0 {
		return ""
	}
	parts := make([]string, len(weekdays))
	for i, wd := range weekdays {
		parts[i] = strconv.Itoa(int(wd))
	}
	return strings.Join(parts, ",")
}

func decodeWeekdays(encoded string) ([]time.Weekday, error) {
	if encoded == "" {
		return nil, nil
	}
	parts := strings.Split(encoded, ",")
	weekdays := make([]time.Weekday, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 6 {
			return nil, fmt.Errorf("invalid weekday value: %s", part)
		}
		weekdays = append(weekdays, time.Weekday(n))
	}
	return weekdays, nil
}

func (s *Store) AddReminder(reminder models.Reminder) error {
	return insertReminder(s.db, reminder)
}

func insertReminder(e execer, reminder models.Reminder) error {
	var lastSent interface{}
	if reminder.LastSent != nil {
		lastSent = reminder.LastSent.Format(time.RFC3339)
	}
	active := 0
	if reminder.Active {
		active = 1
	}
	_, err := e.Exec(`
		INSERT INTO reminders (id, title, message, time, date, repeat, weekdays, active, last_sent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		reminder.ID, reminder.Title, reminder.Message, reminder.Time, reminder.Date,
		string(reminder.Repeat), encodeWeekdays(reminder.Weekdays), active, lastSent,
		reminder.CreatedAt.Format(time.RFC3339))
	return err
}

func scanReminder(row interface{ Scan(...interface{}) error }) (models.Reminder, error) {
	var r models.Reminder
	var repeat, weekdays, createdAt string
	var title, date, lastSent sql.NullString
	var active int

	if err := row.Scan(&r.ID, &title, &r.Message, &r.Time, &date, &repeat, &weekdays, &active, &lastSent, &createdAt); err != nil {
		return models.Reminder{}, err
	}

	r.Title = title.String
	r.Date = date.String
	r.Repeat = constants.RepeatType(repeat)
	r.Active = active != 0

	var err error
	r.Weekdays, err = decodeWeekdays(weekdays)
	if err != nil {
		return models.Reminder{}, err
	}
	if lastSent.Valid && lastSent.String != "" {
		t, err := time.Parse(time.RFC3339, lastSent.String)
		if err != nil {
			return models.Reminder{}, fmt.Errorf("failed to parse last_sent: %w", err)
		}
		r.LastSent = &t
	}
	r.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return r, nil
}

func (s *Store) GetReminder(id string) (models.Reminder, error) {
	row := s.db.QueryRow(`
		SELECT id, title, message, time, date, repeat, weekdays, active, last_sent, created_at
		FROM reminders WHERE id = ?`, id)

	r, err := scanReminder(row)
	if err == sql.ErrNoRows {
		return models.Reminder{}, apperrors.NotFoundf("reminder %s", id)
	}
	return r, err
}

func (s *Store) GetAllReminders() ([]models.Reminder, error) {
	rows, err := s.db.Query(`
		SELECT id, title, message, time, date, repeat, weekdays, active, last_sent, created_at
		FROM reminders ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

func (s *Store) UpdateReminder(reminder models.Reminder) error {
	var lastSent interface{}
	if reminder.LastSent != nil {
		lastSent = reminder.LastSent.Format(time.RFC3339)
	}
	active := 0
	if reminder.Active {
		active = 1
	}
	res, err := s.db.Exec(`
		UPDATE reminders
		SET title = ?, message = ?, time = ?, date = ?, repeat = ?, weekdays = ?, active = ?, last_sent = ?
		WHERE id = ?`,
		reminder.Title, reminder.Message, reminder.Time, reminder.Date,
		string(reminder.Repeat), encodeWeekdays(reminder.Weekdays), active, lastSent, reminder.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFoundf("reminder %s", reminder.ID)
	}
	return nil
}

func (s *Store) DeleteReminder(id string) error {
	res, err := s.db.Exec(`DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFoundf("reminder %s", id)
	}
	return nil
}
