package artifact

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the three artifacts as rows of a single table, so a
// save either replaces all of them or none.
type SQLiteStore struct {
	db *sql.DB
}

const artifactsTable = `CREATE TABLE IF NOT EXISTS artifacts (
	name       TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// OpenSQLite opens (or creates) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("artifact: sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("artifact: open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("artifact: ping sqlite db: %w", err)
	}
	if _, err := db.Exec(artifactsTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("artifact: create table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Save replaces all artifacts in one transaction.
func (s *SQLiteStore) Save(b *Bundle) error {
	blobs, err := encode(b)
	if err != nil {
		return err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("artifact: begin: %w", err)
	}
	now := time.Now().UTC().UnixMilli()
	for _, name := range names {
		_, err := tx.Exec(
			`INSERT INTO artifacts (name, body, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
			name, blobs[name], now,
		)
		if err != nil {
			_ = tx.Rollback()
			return &Error{Artifact: name, Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("artifact: commit: %w", err)
	}
	return nil
}

// Load reads the three artifacts back.
func (s *SQLiteStore) Load() (*Bundle, error) {
	blobs := make(map[string][]byte, len(names))
	for _, name := range names {
		var body []byte
		err := s.db.QueryRow(`SELECT body FROM artifacts WHERE name = ?`, name).Scan(&body)
		if err != nil {
			return nil, &Error{Artifact: name, Err: err}
		}
		blobs[name] = body
	}
	return decode(blobs)
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
