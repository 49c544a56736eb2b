package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dharmalog/dharmalog/internal/engine"
	apperrors "github.com/dharmalog/dharmalog/internal/errors"
	"github.com/dharmalog/dharmalog/internal/models"
	"github.com/dharmalog/dharmalog/internal/storage/seed"
)

// Store is the on-disk shape of the JSON provider: every collection under
// its fixed key, matching the portable backup format.
type Store struct {
	Version   int                `json:"version"`
	Settings  models.Settings    `json:"settings"`
	Reminders []models.Reminder  `json:"reminders"`
	Cards     []models.Card      `json:"cards"`
	Practices []models.Practice  `json:"practices"`
	Records   []models.Record    `json:"records"`
	Teachings []models.Teaching  `json:"teachings"`
	Images    []models.Image     `json:"images"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:   1,
		Settings:  seed.Settings(),
		Teachings: seed.Teachings(),
		Images:    seed.Images(),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	if s.store != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'dharmalog init' first")
		}
		return fmt.Errorf("%w: failed to read storage: %v", apperrors.ErrStorage, err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("%w: failed to parse storage: %v", apperrors.ErrStorage, err)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("%w: failed to write storage: %v", apperrors.ErrStorage, err)
	}

	return nil
}

func (s *JSONStore) loaded() error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if err := s.loaded(); err != nil {
		return models.Settings{}, err
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) AddPractice(practice models.Practice) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Practices = append(s.store.Practices, practice)
	return s.save()
}

func (s *JSONStore) GetPractice(id string) (models.Practice, error) {
	if err := s.loaded(); err != nil {
		return models.Practice{}, err
	}
	for _, p := range s.store.Practices {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Practice{}, apperrors.NotFoundf("practice %s", id)
}

func (s *JSONStore) GetAllPractices() ([]models.Practice, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	out := make([]models.Practice, len(s.store.Practices))
	copy(out, s.store.Practices)
	return out, nil
}

func (s *JSONStore) UpdatePractice(practice models.Practice) error {
	if err := s.loaded(); err != nil {
		return err
	}
	for i, p := range s.store.Practices {
		if p.ID == practice.ID {
			s.store.Practices[i] = practice
			return s.save()
		}
	}
	return apperrors.NotFoundf("practice %s", practice.ID)
}

func (s *JSONStore) DeletePractice(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	found := false
	practices := s.store.Practices[:0]
	for _, p := range s.store.Practices {
		if p.ID == id {
			found = true
			continue
		}
		practices = append(practices, p)
	}
	if !found {
		return apperrors.NotFoundf("practice %s", id)
	}
	s.store.Practices = practices
	s.store.Records = engine.CascadeDeleteRecords(s.store.Records, id)
	return s.save()
}

func (s *JSONStore) AddRecord(record models.Record) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Records = append(s.store.Records, record)
	return s.save()
}

func (s *JSONStore) GetAllRecords() ([]models.Record, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	out := make([]models.Record, len(s.store.Records))
	copy(out, s.store.Records)
	return out, nil
}

func (s *JSONStore) GetRecordsForPractice(practiceID string) ([]models.Record, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	var out []models.Record
	for _, r := range s.store.Records {
		if r.PracticeID == practiceID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *JSONStore) ApplyDelta(delta engine.Delta) error {
	if err := s.loaded(); err != nil {
		return err
	}

	// Resolve the practice before touching anything, so a failed delta
	// leaves the in-memory collections exactly as they were.
	practiceIdx := -1
	for i, p := range s.store.Practices {
		if p.ID == delta.UpdatedPractice.ID {
			practiceIdx = i
			break
		}
	}
	if practiceIdx < 0 {
		return apperrors.NotFoundf("practice %s", delta.UpdatedPractice.ID)
	}

	removed := make(map[string]bool, len(delta.RemovedRecordIDs))
	for _, id := range delta.RemovedRecordIDs {
		removed[id] = true
	}
	updated := make(map[string]models.Record, len(delta.UpdatedRecords))
	for _, r := range delta.UpdatedRecords {
		updated[r.ID] = r
	}

	records := make([]models.Record, 0, len(s.store.Records)+1)
	for _, r := range s.store.Records {
		if removed[r.ID] {
			continue
		}
		if u, ok := updated[r.ID]; ok {
			records = append(records, u)
			continue
		}
		records = append(records, r)
	}
	if delta.NewRecord != nil {
		records = append(records, *delta.NewRecord)
	}

	s.store.Records = records
	s.store.Practices[practiceIdx] = delta.UpdatedPractice
	return s.save()
}

func (s *JSONStore) AddReminder(reminder models.Reminder) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Reminders = append(s.store.Reminders, reminder)
	return s.save()
}

func (s *JSONStore) GetReminder(id string) (models.Reminder, error) {
	if err := s.loaded(); err != nil {
		return models.Reminder{}, err
	}
	for _, r := range s.store.Reminders {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Reminder{}, apperrors.NotFoundf("reminder %s", id)
}

func (s *JSONStore) GetAllReminders() ([]models.Reminder, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	out := make([]models.Reminder, len(s.store.Reminders))
	copy(out, s.store.Reminders)
	return out, nil
}

func (s *JSONStore) UpdateReminder(reminder models.Reminder) error {
	if err := s.loaded(); err != nil {
		return err
	}
	for i, r := range s.store.Reminders {
		if r.ID == reminder.ID {
			s.store.Reminders[i] = reminder
			return s.save()
		}
	}
	return apperrors.NotFoundf("reminder %s", reminder.ID)
}

func (s *JSONStore) DeleteReminder(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	for i, r := range s.store.Reminders {
		if r.ID == id {
			s.store.Reminders = append(s.store.Reminders[:i], s.store.Reminders[i+1:]...)
			return s.save()
		}
	}
	return apperrors.NotFoundf("reminder %s", id)
}

func (s *JSONStore) AddCard(card models.Card) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Cards = append(s.store.Cards, card)
	return s.save()
}

func (s *JSONStore) GetCard(id string) (models.Card, error) {
	if err := s.loaded(); err != nil {
		return models.Card{}, err
	}
	for _, c := range s.store.Cards {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Card{}, apperrors.NotFoundf("card %s", id)
}

func (s *JSONStore) GetAllCards() ([]models.Card, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	out := make([]models.Card, len(s.store.Cards))
	copy(out, s.store.Cards)
	return out, nil
}

func (s *JSONStore) DeleteCard(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	for i, c := range s.store.Cards {
		if c.ID == id {
			s.store.Cards = append(s.store.Cards[:i], s.store.Cards[i+1:]...)
			return s.save()
		}
	}
	return apperrors.NotFoundf("card %s", id)
}

func (s *JSONStore) AddTeaching(teaching models.Teaching) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Teachings = append(s.store.Teachings, teaching)
	return s.save()
}

func (s *JSONStore) GetTeaching(id string) (models.Teaching, error) {
	if err := s.loaded(); err != nil {
		return models.Teaching{}, err
	}
	for _, t := range s.store.Teachings {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Teaching{}, apperrors.NotFoundf("teaching %s", id)
}

func (s *JSONStore) GetAllTeachings() ([]models.Teaching, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	out := make([]models.Teaching, len(s.store.Teachings))
	copy(out, s.store.Teachings)
	return out, nil
}

func (s *JSONStore) DeleteTeaching(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	for i, t := range s.store.Teachings {
		if t.ID == id {
			s.store.Teachings = append(s.store.Teachings[:i], s.store.Teachings[i+1:]...)
			return s.save()
		}
	}
	return apperrors.NotFoundf("teaching %s", id)
}

func (s *JSONStore) AddImage(image models.Image) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Images = append(s.store.Images, image)
	return s.save()
}

func (s *JSONStore) GetImage(id string) (models.Image, error) {
	if err := s.loaded(); err != nil {
		return models.Image{}, err
	}
	for _, img := range s.store.Images {
		if img.ID == id {
			return img, nil
		}
	}
	return models.Image{}, apperrors.NotFoundf("image %s", id)
}

func (s *JSONStore) GetAllImages() ([]models.Image, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	out := make([]models.Image, len(s.store.Images))
	copy(out, s.store.Images)
	return out, nil
}

func (s *JSONStore) ExportAll() (models.Backup, error) {
	if err := s.loaded(); err != nil {
		return models.Backup{}, err
	}
	return models.Backup{
		Reminders: s.store.Reminders,
		Cards:     s.store.Cards,
		Practices: s.store.Practices,
		Records:   s.store.Records,
		Teachings: s.store.Teachings,
		Images:    s.store.Images,
		Settings:  s.store.Settings,
	}, nil
}

func (s *JSONStore) ImportAll(backup models.Backup) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Reminders = backup.Reminders
	s.store.Cards = backup.Cards
	s.store.Practices = backup.Practices
	s.store.Records = backup.Records
	s.store.Teachings = backup.Teachings
	s.store.Images = backup.Images
	s.store.Settings = backup.Settings
	return s.save()
}

func (s *JSONStore) Clear() error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store = &Store{
		Version:   1,
		Settings:  seed.Settings(),
		Teachings: seed.Teachings(),
		Images:    seed.Images(),
	}
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
