// Package history keeps the flat-file observation log the dashboard charts
// read from. Every successful live fetch appends one CSV row; reads return
// the trailing window in chronological order.
package history

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

var header = []string{"DateTime", "City", "Temperature", "Description", "Unit", "Humidity", "WindSpeed"}

// Entry is one logged observation. Humidity and WindSpeed are optional for
// the same reason the canonical record's fields are: older log rows may not
// carry them.
type Entry struct {
	Time        time.Time `json:"time"`
	City        string    `json:"city"`
	Temperature float64   `json:"temperature"`
	Description string    `json:"description"`
	Unit        string    `json:"unit"`
	Humidity    *float64  `json:"humidity,omitempty"`
	WindSpeed   *float64  `json:"wind_speed,omitempty"`
}

// Log is an append-only CSV observation log. Appends are serialized; the
// file is opened, written and closed within a single call.
type Log struct {
	mu   sync.Mutex
	path string
}

// NewLog creates the log's parent directory if needed. The file itself is
// created lazily on first append.
func NewLog(path string) (*Log, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &Log{path: path}, nil
}

// Append writes one observation row, prepending the header when the file is
// new.
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
		e.City,
		strconv.FormatFloat(e.Temperature, 'f', -1, 64),
		e.Description,
		e.Unit,
		formatOptional(e.Humidity),
		formatOptional(e.WindSpeed),
	}
	if err := w.Write(row); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

// Recent returns up to limit most recent entries, oldest first. When city is
// non-empty only that city's rows count. Rows that do not parse (truncated
// writes, hand-edited files) are skipped rather than failing the read.
func (l *Log) Recent(city string, limit int) ([]Entry, error) {
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
		if city != "" && e.City != city {
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
	if len(row) < 4 {
		return Entry{}, false
	}

	ts, err := time.Parse(timeLayout, row[0])
	if err != nil {
		return Entry{}, false
	}
	temp, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		return Entry{}, false
	}

	e := Entry{
		Time:        ts,
		City:        row[1],
		Temperature: temp,
		Description: row[3],
	}
	if len(row) > 4 {
		e.Unit = row[4]
	}
	if len(row) > 5 {
		e.Humidity = parseOptional(row[5])
	}
	if len(row) > 6 {
		e.WindSpeed = parseOptional(row[6])
	}
	return e, true
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func parseOptional(s string) *float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
