// ABOUTME: Tests for the stream health checker
// ABOUTME: Uses httptest servers to simulate live, moved, and dead streams

package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"streams-editor/sii"
)

func newTestChecker() *Checker {
	return NewChecker(2*time.Second, 4)
}

func makeRecords(urls ...string) []sii.Record {
	records := make([]sii.Record, len(urls))
	for i, u := range urls {
		rec := sii.NewRecord(u, "Station", "Rock", "EN", "128", "0")
		rec.Index = i
		records[i] = rec
	}
	return records
}

func TestProbeHeadOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestChecker()
	results := c.CheckAll(context.Background(), makeRecords(srv.URL), nil)

	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if !results[0].OK {
		t.Errorf("Expected OK result, got status %d err %v", results[0].StatusCode, results[0].Err)
	}
	if results[0].StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", results[0].StatusCode)
	}
}

func TestProbeRedirectCountsAsAlive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "http://elsewhere.invalid/stream")
		w.WriteHeader(http.StatusFound)
	}))
	defer srv.Close()

	c := newTestChecker()
	results := c.CheckAll(context.Background(), makeRecords(srv.URL), nil)

	if !results[0].OK {
		t.Errorf("Expected redirect to count as alive, got err %v", results[0].Err)
	}
	if results[0].StatusCode != http.StatusFound {
		t.Errorf("Expected status 302, got %d", results[0].StatusCode)
	}
}

func TestProbeFallsBackToRangedGet(t *testing.T) {
	var sawRange atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			// Shoutcast-style server that rejects HEAD
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("Range") == "bytes=0-100" {
			sawRange.Store(true)
		}
		w.WriteHeader(http.StatusPartialContent)
	}))
	defer srv.Close()

	c := newTestChecker()
	results := c.CheckAll(context.Background(), makeRecords(srv.URL), nil)

	if !results[0].OK {
		t.Errorf("Expected GET fallback to succeed, got status %d err %v", results[0].StatusCode, results[0].Err)
	}
	if !sawRange.Load() {
		t.Error("Expected fallback GET to carry a Range header")
	}
}

func TestProbeDeadStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestChecker()
	results := c.CheckAll(context.Background(), makeRecords(srv.URL), nil)

	if results[0].OK {
		t.Error("Expected dead stream to report not OK")
	}
	if results[0].Err == nil {
		t.Error("Expected an error for dead stream")
	}
}

func TestProbeUnreachableHost(t *testing.T) {
	c := NewChecker(500*time.Millisecond, 2)
	results := c.CheckAll(context.Background(), makeRecords("http://127.0.0.1:1/stream"), nil)

	if results[0].OK {
		t.Error("Expected unreachable host to report not OK")
	}
	if results[0].Err == nil {
		t.Error("Expected a transport error")
	}
}

func TestCheckAllPreservesOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	records := makeRecords(srv.URL, srv.URL+"/a", srv.URL+"/b", srv.URL+"/c")

	var callbacks atomic.Int64
	c := newTestChecker()
	results := c.CheckAll(context.Background(), records, func(Result) {
		callbacks.Add(1)
	})

	if len(results) != len(records) {
		t.Fatalf("Expected %d results, got %d", len(records), len(results))
	}
	for i, res := range results {
		if res.Record.URL != records[i].URL {
			t.Errorf("Result %d out of order: got %q, want %q", i, res.Record.URL, records[i].URL)
		}
	}
	if callbacks.Load() != int64(len(records)) {
		t.Errorf("Expected %d callbacks, got %d", len(records), callbacks.Load())
	}
}

func TestProbeUserAgent(t *testing.T) {
	var ua atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua.Store(r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestChecker()
	c.CheckAll(context.Background(), makeRecords(srv.URL), nil)

	if got, _ := ua.Load().(string); got != "Mozilla/5.0" {
		t.Errorf("Expected browser user agent, got %q", got)
	}
}
