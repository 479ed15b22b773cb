package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetJSONRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	c := newResilientClient(srv.Client(), "test")
	c.initialInterval = time.Millisecond
	c.maxInterval = 2 * time.Millisecond

	var out struct {
		OK bool `json:"ok"`
	}
	if err := c.getJSON(context.Background(), srv.URL, &out); err != nil {
		t.Fatalf("getJSON: %v", err)
	}
	if !out.OK {
		t.Error("expected decoded payload")
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("server called %d times, want 3", got)
	}
}

func TestGetJSONGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newResilientClient(srv.Client(), "test")
	c.maxRetries = 1
	c.initialInterval = time.Millisecond

	var out struct{}
	if err := c.getJSON(context.Background(), srv.URL, &out); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("server called %d times, want 2 (initial + 1 retry)", got)
	}
}

func TestGetJSONUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newResilientClient(srv.Client(), "test")
	c.maxRetries = 0

	var out struct{}
	if err := c.getJSON(context.Background(), srv.URL, &out); err == nil {
		t.Fatal("expected error for 404 response")
	}
}
