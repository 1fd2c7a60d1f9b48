package mood

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/theimaginaryfoundation/mood-assistant/mood/fileutils"
)

// ErrNotFound signals that no history has been recorded yet. It is an expected condition.
var ErrNotFound = errors.New("mood log not found")

// Entry is one persisted classification result.
type Entry struct {
	Timestamp time.Time
	Category  Category
}

// NewEntry converts the timestamp to local time and truncates it to the second so it
// round-trips through the log unchanged.
func NewEntry(at time.Time, c Category) Entry {
	return Entry{Timestamp: at.In(time.Local).Truncate(time.Second), Category: c}
}

// History is an append-only store of entries.
type History interface {
	Append(e Entry) error
	// ReadAll returns every entry in insertion order, or an error matching ErrNotFound when
	// nothing has been stored yet.
	ReadAll() ([]Entry, error)
}

var csvHeader = []string{"timestamp", "mood"}

// CSVLog is a comma-separated append-only log with header "timestamp,mood".
// The file is opened and closed on every operation; there is no locking.
type CSVLog struct {
	Path string
}

func NewCSVLog(path string) *CSVLog {
	return &CSVLog{Path: path}
}

// Ensure CSVLog implements History
var _ History = (*CSVLog)(nil)

func (l *CSVLog) Append(e Entry) error {
	if l.Path == "" {
		return errors.New("csv log: empty path")
	}
	if !e.Category.Valid() {
		return fmt.Errorf("csv log: append: %w: %d", ErrUnknownCategory, int(e.Category))
	}

	needHeader, err := fileutils.MissingOrEmpty(l.Path)
	if err != nil {
		return fmt.Errorf("csv log: stat %s: %w", l.Path, err)
	}
	if err := fileutils.EnsureParentDir(l.Path); err != nil {
		return fmt.Errorf("csv log: mkdir: %w", err)
	}

	f, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("csv log: open %s: %w", l.Path, err)
	}

	w := csv.NewWriter(f)
	if needHeader {
		if err := w.Write(csvHeader); err != nil {
			_ = f.Close()
			return fmt.Errorf("csv log: write header: %w", err)
		}
	}
	if err := w.Write([]string{FormatTimestamp(e.Timestamp), e.Category.Label()}); err != nil {
		_ = f.Close()
		return fmt.Errorf("csv log: write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("csv log: flush: %w", err)
	}
	return f.Close()
}

func (l *CSVLog) ReadAll() ([]Entry, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, l.Path, err)
		}
		return nil, fmt.Errorf("csv log: open %s: %w", l.Path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var out []Entry
	for row := 1; ; row++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv log: row %d: %w", row, err)
		}
		if isHeader(rec) {
			continue
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("csv log: row %d: want 2 fields, got %d", row, len(rec))
		}
		ts, err := ParseTimestamp(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("csv log: row %d: timestamp: %w", row, err)
		}
		cat, err := ParseCategory(rec[1])
		if err != nil {
			return nil, fmt.Errorf("csv log: row %d: %w", row, err)
		}
		out = append(out, Entry{Timestamp: ts, Category: cat})
	}
	return out, nil
}

// Reset deletes the log file. A missing file is not an error.
func (l *CSVLog) Reset() error {
	if err := os.Remove(l.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("csv log: remove %s: %w", l.Path, err)
	}
	return nil
}

func isHeader(rec []string) bool {
	return len(rec) >= 2 &&
		strings.TrimSpace(strings.TrimPrefix(rec[0], "\ufeff")) == csvHeader[0] &&
		strings.TrimSpace(rec[1]) == csvHeader[1]
}
