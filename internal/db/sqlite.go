package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS courses (
    id            TEXT PRIMARY KEY,
    course_name   TEXT NOT NULL DEFAULT '',
    subject_name  TEXT NOT NULL DEFAULT '',
    description   TEXT,
    prerequisites TEXT NOT NULL DEFAULT '',
    satisfies     TEXT NOT NULL DEFAULT '',
    credits       INTEGER NOT NULL DEFAULT 0,
    position      INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_courses_position ON courses (position);
`

// SQLiteDB is an embedded catalog database
type SQLiteDB struct {
	DB *sql.DB
}

// NewSQLiteDB opens (creating if needed) the SQLite database at path and
// ensures the catalog schema exists
func NewSQLiteDB(ctx context.Context, path string) (*SQLiteDB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// a single connection keeps :memory: databases coherent and avoids
	// SQLITE_BUSY between writers
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{`PRAGMA journal_mode = WAL`, `PRAGMA busy_timeout = 5000`, sqliteSchema} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to initialise sqlite database: %w", err)
		}
	}

	return &SQLiteDB{DB: db}, nil
}

// Close closes the database
func (s *SQLiteDB) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
