package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dharmalog/dharmalog/internal/engine"
	apperrors "github.com/dharmalog/dharmalog/internal/errors"
	"github.com/dharmalog/dharmalog/internal/models"
)

func newTestStore(t *testing.T) *JSONStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dharmalog.json")
	s := NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return s
}

func testPractice(id, name string) models.Practice {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	return models.Practice{
		ID:          id,
		Name:        name,
		DailyTarget: 108,
		TotalTarget: 10000,
		CreatedAt:   now,
		LastUpdated: now,
	}
}

func TestInitSeedsDefaults(t *testing.T) {
	s := newTestStore(t)

	settings, err := s.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if settings.NotificationTime == "" {
		t.Error("expected seeded notification time")
	}

	teachings, err := s.GetAllTeachings()
	if err != nil {
		t.Fatalf("GetAllTeachings() error = %v", err)
	}
	if len(teachings) == 0 {
		t.Error("expected seeded teachings")
	}

	images, err := s.GetAllImages()
	if err != nil {
		t.Fatalf("GetAllImages() error = %v", err)
	}
	if len(images) == 0 {
		t.Error("expected seeded images")
	}
}

func TestInitTwiceFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dharmalog.json")
	s := NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := s.Init(); err == nil {
		t.Error("expected error on second Init()")
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := s.Load(); err == nil {
		t.Error("expected error loading uninitialized storage")
	}
}

func TestPracticeCRUD(t *testing.T) {
	s := newTestStore(t)
	p := testPractice("p1", "Mantra recitation")

	if err := s.AddPractice(p); err != nil {
		t.Fatalf("AddPractice() error = %v", err)
	}

	got, err := s.GetPractice("p1")
	if err != nil {
		t.Fatalf("GetPractice() error = %v", err)
	}
	if got.Name != "Mantra recitation" {
		t.Errorf("Name = %q, want %q", got.Name, "Mantra recitation")
	}

	got.Name = "Prostrations"
	if err := s.UpdatePractice(got); err != nil {
		t.Fatalf("UpdatePractice() error = %v", err)
	}
	got, _ = s.GetPractice("p1")
	if got.Name != "Prostrations" {
		t.Errorf("Name after update = %q, want %q", got.Name, "Prostrations")
	}

	if err := s.DeletePractice("p1"); err != nil {
		t.Fatalf("DeletePractice() error = %v", err)
	}
	if _, err := s.GetPractice("p1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("GetPractice() after delete error = %v, want ErrNotFound", err)
	}
}

func TestGetPracticeNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetPractice("nope"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDeletePracticeCascadesRecords(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	if err := s.AddPractice(testPractice("p1", "Mantra")); err != nil {
		t.Fatal(err)
	}
	if err := s.AddPractice(testPractice("p2", "Bows")); err != nil {
		t.Fatal(err)
	}
	s.AddRecord(models.Record{ID: "r1", PracticeID: "p1", Date: "2025-06-01", Count: 10, Timestamp: now})
	s.AddRecord(models.Record{ID: "r2", PracticeID: "p2", Date: "2025-06-01", Count: 5, Timestamp: now})

	if err := s.DeletePractice("p1"); err != nil {
		t.Fatalf("DeletePractice() error = %v", err)
	}

	records, err := s.GetAllRecords()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ID != "r2" {
		t.Errorf("records after cascade = %+v, want only r2", records)
	}
}

func TestApplyDelta(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	p := testPractice("p1", "Mantra")
	if err := s.AddPractice(p); err != nil {
		t.Fatal(err)
	}
	s.AddRecord(models.Record{ID: "r1", PracticeID: "p1", Date: "2025-06-01", Count: 10, Timestamp: now})
	s.AddRecord(models.Record{ID: "r2", PracticeID: "p1", Date: "2025-06-01", Count: 5, Timestamp: now})

	updated := p
	updated.Completed = 12
	delta := engine.Delta{
		NewRecord:        &models.Record{ID: "r3", PracticeID: "p1", Date: "2025-06-01", Count: 4, Timestamp: now},
		UpdatedRecords:   []models.Record{{ID: "r1", PracticeID: "p1", Date: "2025-06-01", Count: 8, Timestamp: now}},
		RemovedRecordIDs: []string{"r2"},
		UpdatedPractice:  updated,
	}
	if err := s.ApplyDelta(delta); err != nil {
		t.Fatalf("ApplyDelta() error = %v", err)
	}

	records, _ := s.GetRecordsForPractice("p1")
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.ID] = r.Count
	}
	if len(records) != 2 || counts["r1"] != 8 || counts["r3"] != 4 {
		t.Errorf("records after delta = %+v", records)
	}

	got, _ := s.GetPractice("p1")
	if got.Completed != 12 {
		t.Errorf("Completed = %d, want 12", got.Completed)
	}
}

func TestApplyDeltaUnknownPractice(t *testing.T) {
	s := newTestStore(t)
	delta := engine.Delta{UpdatedPractice: testPractice("ghost", "Ghost")}
	if err := s.ApplyDelta(delta); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestApplyDeltaUnknownPracticeLeavesRecordsUntouched(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	if err := s.AddPractice(testPractice("p1", "Mantra")); err != nil {
		t.Fatal(err)
	}
	s.AddRecord(models.Record{ID: "r1", PracticeID: "p1", Date: "2025-06-01", Count: 10, Timestamp: now})

	delta := engine.Delta{
		RemovedRecordIDs: []string{"r1"},
		UpdatedPractice:  testPractice("ghost", "Ghost"),
	}
	if err := s.ApplyDelta(delta); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}

	// The failed delta must not change the in-memory snapshot.
	records, err := s.GetAllRecords()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ID != "r1" || records[0].Count != 10 {
		t.Errorf("records after failed delta = %+v, want r1 unchanged", records)
	}
}

func TestReminderCRUD(t *testing.T) {
	s := newTestStore(t)
	r := models.Reminder{
		ID:      "rem1",
		Message: "Evening sit",
		Time:    "19:30",
		Repeat:  "daily",
		Active:  true,
	}
	if err := s.AddReminder(r); err != nil {
		t.Fatalf("AddReminder() error = %v", err)
	}

	got, err := s.GetReminder("rem1")
	if err != nil {
		t.Fatalf("GetReminder() error = %v", err)
	}
	if got.Message != "Evening sit" {
		t.Errorf("Message = %q", got.Message)
	}

	got.Active = false
	if err := s.UpdateReminder(got); err != nil {
		t.Fatalf("UpdateReminder() error = %v", err)
	}
	got, _ = s.GetReminder("rem1")
	if got.Active {
		t.Error("expected reminder deactivated")
	}

	if err := s.DeleteReminder("rem1"); err != nil {
		t.Fatalf("DeleteReminder() error = %v", err)
	}
	if _, err := s.GetReminder("rem1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestPersistenceAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dharmalog.json")
	s := NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	if err := s.AddPractice(testPractice("p1", "Mantra")); err != nil {
		t.Fatal(err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := reopened.GetPractice("p1"); err != nil {
		t.Errorf("GetPractice() after reopen error = %v", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	s := newTestStore(t)
	if err := s.AddPractice(testPractice("p1", "Mantra")); err != nil {
		t.Fatal(err)
	}
	s.AddRecord(models.Record{ID: "r1", PracticeID: "p1", Date: "2025-06-01", Count: 10, Timestamp: time.Now()})

	backup, err := s.ExportAll()
	if err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}

	dest := newTestStore(t)
	if err := dest.ImportAll(backup); err != nil {
		t.Fatalf("ImportAll() error = %v", err)
	}

	practices, _ := dest.GetAllPractices()
	records, _ := dest.GetAllRecords()
	if len(practices) != 1 || len(records) != 1 {
		t.Errorf("imported practices=%d records=%d, want 1 and 1", len(practices), len(records))
	}
}

func TestClearReseedsDefaults(t *testing.T) {
	s := newTestStore(t)
	if err := s.AddPractice(testPractice("p1", "Mantra")); err != nil {
		t.Fatal(err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	practices, _ := s.GetAllPractices()
	if len(practices) != 0 {
		t.Errorf("practices after clear = %d, want 0", len(practices))
	}
	teachings, _ := s.GetAllTeachings()
	if len(teachings) == 0 {
		t.Error("expected teachings reseeded after clear")
	}
}

func TestNewStoreSelectsBackend(t *testing.T) {
	if _, ok := NewStore("/tmp/x/dharmalog.db").(*JSONStore); ok {
		t.Error("expected SQLite store for .db path")
	}
	if _, ok := NewStore("/tmp/x/dharmalog.json").(*JSONStore); !ok {
		t.Error("expected JSON store for .json path")
	}
}
