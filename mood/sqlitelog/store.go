package sqlitelog

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/theimaginaryfoundation/mood-assistant/mood"
	"github.com/theimaginaryfoundation/mood-assistant/mood/fileutils"
)

// Store is a SQLite-backed append-only mood history with the same contract as mood.CSVLog.
type Store struct {
	db *sql.DB
}

// Ensure Store implements mood.History
var _ mood.History = (*Store)(nil)

// Open opens (creating if needed) the database at path and migrates the schema.
// Use ":memory:" for a throwaway database.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("open database: empty path")
	}
	if path != ":memory:" {
		if err := fileutils.EnsureParentDir(path); err != nil {
			return nil, fmt.Errorf("open database: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and matches the single-writer model.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// New wraps an existing handle. The schema must already be migrated.
func New(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Append inserts one entry at the end of the history.
func (s *Store) Append(e mood.Entry) error {
	if !e.Category.Valid() {
		return fmt.Errorf("append entry: %w: %d", mood.ErrUnknownCategory, int(e.Category))
	}
	_, err := s.db.Exec(`INSERT INTO mood_log (timestamp, mood) VALUES (?, ?)`,
		mood.FormatTimestamp(e.Timestamp), e.Category.Label())
	if err != nil {
		return fmt.Errorf("append entry: insert: %w", err)
	}
	return nil
}

// ReadAll returns every entry in insertion order. An empty table reports mood.ErrNotFound,
// the same signal the CSV log gives for a missing file.
func (s *Store) ReadAll() ([]mood.Entry, error) {
	rows, err := s.db.Query(`SELECT id, timestamp, mood FROM mood_log ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query mood_log: %w", err)
	}
	defer rows.Close()

	var out []mood.Entry
	for rows.Next() {
		var id int64
		var ts, label string
		if err := rows.Scan(&id, &ts, &label); err != nil {
			return nil, fmt.Errorf("scan mood_log: %w", err)
		}
		at, err := mood.ParseTimestamp(ts)
		if err != nil {
			return nil, fmt.Errorf("row %d: timestamp: %w", id, err)
		}
		cat, err := mood.ParseCategory(label)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", id, err)
		}
		out = append(out, mood.Entry{Timestamp: at, Category: cat})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mood_log: %w", err)
	}
	if len(out) == 0 {
		return nil, mood.ErrNotFound
	}
	return out, nil
}

// Reset deletes every entry.
func (s *Store) Reset() error {
	if _, err := s.db.Exec(`DELETE FROM mood_log`); err != nil {
		return fmt.Errorf("reset mood_log: %w", err)
	}
	return nil
}
