package storage

import (
	"github.com/dharmalog/dharmalog/internal/storage/sqlite"
)

// NewSQLiteStore returns the SQLite-backed provider for the given database
// path.
func NewSQLiteStore(path string) Provider {
	return sqlite.NewStore(path)
}
