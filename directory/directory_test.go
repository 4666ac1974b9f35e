// ABOUTME: Tests for the radio directory client
// ABOUTME: Uses httptest to verify query building and response mapping

package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchBuildsQuery(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Search(context.Background(), Filters{
		Genre:  "rock",
		Lang:   "german",
		Search: "fm",
		Limit:  25,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	checks := map[string]string{
		"tag":        "rock",
		"language":   "german",
		"name":       "fm",
		"limit":      "25",
		"hidebroken": "true",
	}
	for key, want := range checks {
		if got := gotQuery[key]; len(got) != 1 || got[0] != want {
			t.Errorf("Query param %s: got %v, want %q", key, got, want)
		}
	}
}

func TestSearchOmitsEmptyFilters(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.Search(context.Background(), Filters{}); err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	for _, key := range []string{"tag", "language", "name", "limit"} {
		if _, ok := gotQuery[key]; ok {
			t.Errorf("Expected %s to be omitted, got %v", key, gotQuery[key])
		}
	}
}

func TestSearchDecodesStations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"name":"Radio One","url_resolved":"http://one.example/stream","tags":"rock,classic rock","language":"english","countrycode":"GB","bitrate":128},
			{"name":"Zwei FM","url_resolved":"http://zwei.example/stream","tags":"","language":"german","countrycode":"","bitrate":0}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	stations, err := c.Search(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(stations) != 2 {
		t.Fatalf("Expected 2 stations, got %d", len(stations))
	}
	if stations[0].Name != "Radio One" || stations[0].URL != "http://one.example/stream" {
		t.Errorf("Unexpected first station: %+v", stations[0])
	}
	if stations[0].Bitrate != 128 {
		t.Errorf("Expected bitrate 128, got %d", stations[0].Bitrate)
	}
}

func TestSearchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.Search(context.Background(), Filters{}); err == nil {
		t.Error("Expected error for non-200 response")
	}
}

func TestToRecord(t *testing.T) {
	st := Station{
		Name:        "Radio One",
		URL:         "http://one.example/stream",
		Tags:        "rock,classic rock",
		CountryCode: "GB",
		Bitrate:     128,
	}

	rec := ToRecord(st, "EN")

	if rec.URL != st.URL {
		t.Errorf("URL: got %q, want %q", rec.URL, st.URL)
	}
	if rec.Genre != "rock" {
		t.Errorf("Genre: got %q, want leading tag %q", rec.Genre, "rock")
	}
	if rec.Lang != "GB" {
		t.Errorf("Lang: got %q, want %q", rec.Lang, "GB")
	}
	if rec.Bitrate != "128" {
		t.Errorf("Bitrate: got %q, want %q", rec.Bitrate, "128")
	}
	if rec.Favorite != "0" {
		t.Errorf("Favorite: got %q, want %q", rec.Favorite, "0")
	}
	if rec.ID == "" {
		t.Error("Expected record to get an identity")
	}
}

func TestToRecordDefaults(t *testing.T) {
	st := Station{Name: "Zwei FM", URL: "http://zwei.example/stream"}

	rec := ToRecord(st, "EN")

	if rec.Lang != "EN" {
		t.Errorf("Lang: got %q, want default %q", rec.Lang, "EN")
	}
	if rec.Bitrate != "" {
		t.Errorf("Bitrate: got %q, want empty", rec.Bitrate)
	}
	if rec.Genre != "" {
		t.Errorf("Genre: got %q, want empty", rec.Genre)
	}
}

func TestToRecordScrubsDirectoryText(t *testing.T) {
	st := Station{
		Name:        "  Rock | Pop Mix ",
		URL:         "http://mix.example/stream",
		Tags:        " synth|wave ,retro",
		CountryCode: " GB ",
	}

	rec := ToRecord(st, "EN")

	if rec.Name != "Rock / Pop Mix" {
		t.Errorf("Name not scrubbed: got %q", rec.Name)
	}
	if rec.Genre != "synth/wave" {
		t.Errorf("Genre not scrubbed: got %q", rec.Genre)
	}
	if rec.Lang != "GB" {
		t.Errorf("Lang not trimmed: got %q", rec.Lang)
	}
}
