// Package journal keeps the dashboard's mood-tagged weather journal as a
// flat CSV file next to the observation log.
package journal

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

var header = []string{"DateTime", "Entry", "Mood"}

// Entry is one journal note: free text plus the mood it was written in.
type Entry struct {
	Time time.Time `json:"time"`
	Text string    `json:"text"`
	Mood string    `json:"mood"`
}

// Log is an append-only CSV journal. Appends are serialized; the file is
// opened, written and closed within a single call.
type Log struct {
	mu   sync.Mutex
	path string
}

// NewLog creates the journal's parent directory if needed. The file itself
// is created lazily on first append.
func NewLog(path string) (*Log, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &Log{path: path}, nil
}

// Append writes one journal row, prepending the header when the file is new.
func (l *Log) Append(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, statErr := os.Stat(l.path)
	isNew := errors.Is(statErr, os.ErrNotExist)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(header); err != nil {
			return err
		}
	}

	row := []string{
		e.Time.Format(timeLayout),
		e.Text,
		e.Mood,
	}
	if err := w.Write(row); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

// Recent returns up to limit most recent entries, oldest first. Rows that do
// not parse are skipped rather than failing the read.
func (l *Log) Recent(limit int) ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == header[0] {
			continue
		}
		e, ok := parseRow(row)
		if !ok {
			continue
		}
		entries = append(entries, e)
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

func parseRow(row []string) (Entry, bool) {
	if len(row) < 3 {
		return Entry{}, false
	}

	ts, err := time.Parse(timeLayout, row[0])
	if err != nil {
		return Entry{}, false
	}

	return Entry{
		Time: ts,
		Text: row[1],
		Mood: row[2],
	}, true
}
