package sharing

import (
	"strings"
	"testing"
	"time"

	"github.com/dharmalog/dharmalog/internal/constants"
	"github.com/dharmalog/dharmalog/internal/models"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Practice stats", "practice-stats"},
		{"  Week 7 / summary  ", "week-7-summary"},
		{"日本語", "share"},
		{"", "share"},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStatsShareText(t *testing.T) {
	practices := []models.Practice{
		{ID: "p1", Name: "Mantra", Completed: 500, TotalTarget: 10000},
	}
	got := StatsShareText(7, 500, practices)
	if !strings.Contains(got, "7 days in a row") {
		t.Errorf("share text missing streak: %q", got)
	}
	if !strings.Contains(got, "Mantra: 500/10000 (5.0%)") {
		t.Errorf("share text missing practice progress: %q", got)
	}
}

func TestWriteRecordsCSV(t *testing.T) {
	now := time.Now()
	practices := []models.Practice{
		{ID: "p1", Name: "Mantra"},
	}
	records := []models.Record{
		{ID: "r2", PracticeID: "p1", Date: "2025-06-02", Count: 20, Timestamp: now},
		{ID: "r1", PracticeID: "p1", Date: "2025-06-01", Count: 10, Timestamp: now},
		{ID: "r3", PracticeID: "ghost", Date: "2025-06-03", Count: 5, Timestamp: now},
	}

	var sb strings.Builder
	if err := WriteRecordsCSV(&sb, practices, records); err != nil {
		t.Fatalf("WriteRecordsCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	want := []string{
		"Date,Practice,Count",
		"2025-06-01,Mantra,10",
		"2025-06-02,Mantra,20",
		"2025-06-03," + constants.DeletedPracticeName + ",5",
	}
	if len(lines) != len(want) {
		t.Fatalf("lines = %d, want %d:\n%s", len(lines), len(want), sb.String())
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestWriteRecordsCSVEmpty(t *testing.T) {
	var sb strings.Builder
	if err := WriteRecordsCSV(&sb, nil, nil); err != nil {
		t.Fatalf("WriteRecordsCSV() error = %v", err)
	}
	if strings.TrimSpace(sb.String()) != "Date,Practice,Count" {
		t.Errorf("empty export = %q, want header only", sb.String())
	}
}
