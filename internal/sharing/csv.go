package sharing

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/dharmalog/dharmalog/internal/constants"
	"github.com/dharmalog/dharmalog/internal/models"
)

// WriteRecordsCSV writes one row per record with a header line, sorted
// ascending by date. Records whose practice has been deleted keep their row
// under a placeholder name.
func WriteRecordsCSV(w io.Writer, practices []models.Practice, records []models.Record) error {
	names := make(map[string]string, len(practices))
	for _, p := range practices {
		names[p.ID] = p.Name
	}

	sorted := make([]models.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Practice", "Count"}); err != nil {
		return err
	}
	for _, r := range sorted {
		name, ok := names[r.PracticeID]
		if !ok {
			name = constants.DeletedPracticeName
		}
		if err := cw.Write([]string{r.Date, name, strconv.Itoa(r.Count)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportRecordsCSV writes the CSV into the export directory and returns the
// file path.
func ExportRecordsCSV(configPath string, practices []models.Practice, records []models.Record) (string, error) {
	dir := DefaultExportDir(configPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("records-%s.csv", time.Now().Format("20060102-150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := WriteRecordsCSV(f, practices, records); err != nil {
		return "", fmt.Errorf("failed to write CSV: %w", err)
	}
	return path, nil
}
