package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestLog(t *testing.T) *Log {
	t.Helper()
	l, err := NewLog(filepath.Join(t.TempDir(), "journal_log.csv"))
	if err != nil {
		t.Fatalf("NewLog: %v", err)
	}
	return l
}

func TestJournalRoundTrip(t *testing.T) {
	l := newTestLog(t)

	entries := []Entry{
		{Time: time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC), Text: "Grey morning, rain on the window", Mood: "calm"},
		{Time: time.Date(2026, 8, 25, 18, 0, 0, 0, time.UTC), Text: "Cleared up for the evening walk", Mood: "happy"},
	}
	for _, e := range entries {
		if err := l.Append(e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := l.Recent(0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("entries = %+v, want 2", got)
	}
	if got[0].Mood != "calm" || got[1].Text != "Cleared up for the evening walk" {
		t.Errorf("entries = %+v", got)
	}

	got, err = l.Recent(1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 || got[0].Mood != "happy" {
		t.Errorf("trailing window = %+v, want only the newest entry", got)
	}
}

func TestJournalMissingFile(t *testing.T) {
	l := newTestLog(t)

	entries, err := l.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if entries != nil {
		t.Fatalf("entries = %+v, want none before the first append", entries)
	}
}

func TestJournalSkipsUnparsableRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal_log.csv")
	raw := strings.Join([]string{
		"DateTime,Entry,Mood",
		"not-a-time,broken row,sad",
		"2026-08-25 09:00:00,kept row,calm",
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l, err := NewLog(path)
	if err != nil {
		t.Fatalf("NewLog: %v", err)
	}
	entries, err := l.Recent(0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].Text != "kept row" {
		t.Errorf("entries = %+v", entries)
	}
}
