// ABOUTME: Client for the radio-browser.info public station directory
// ABOUTME: Searches stations by genre/language/name and maps them to records

// Package directory fetches stations from a public radio directory.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"streams-editor/sii"
)

// Filters narrows a directory search
type Filters struct {
	Genre  string // matched against station tags
	Lang   string
	Search string // free-text name search
	Limit  int
}

// Station is one entry in the directory's search response
type Station struct {
	Name        string `json:"name"`
	URL         string `json:"url_resolved"`
	Tags        string `json:"tags"`
	Language    string `json:"language"`
	CountryCode string `json:"countrycode"`
	Bitrate     int    `json:"bitrate"`
}

// Client queries a radio-browser compatible directory endpoint
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a directory client for the given search endpoint
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Search queries the directory and returns matching stations
func (c *Client) Search(ctx context.Context, filters Filters) ([]Station, error) {
	q := url.Values{}
	if filters.Genre != "" {
		q.Set("tag", filters.Genre)
	}
	if filters.Lang != "" {
		q.Set("language", filters.Lang)
	}
	if filters.Search != "" {
		q.Set("name", filters.Search)
	}
	if filters.Limit > 0 {
		q.Set("limit", strconv.Itoa(filters.Limit))
	}
	q.Set("hidebroken", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build directory request: %w", err)
	}
	req.Header.Set("User-Agent", "streams-editor")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory returned status %d", resp.StatusCode)
	}

	var stations []Station
	if err := json.NewDecoder(resp.Body).Decode(&stations); err != nil {
		return nil, fmt.Errorf("failed to decode directory response: %w", err)
	}

	return stations, nil
}

// ToRecord converts a directory station into an editable record.
// Stations with no usable language fall back to defaultLang. Directory
// text is free-form, so name and genre are scrubbed of anything that
// would break the pipe-delimited payload.
func ToRecord(st Station, defaultLang string) sii.Record {
	lang := cleanField(st.CountryCode)
	if lang == "" {
		lang = defaultLang
	}

	bitrate := ""
	if st.Bitrate > 0 {
		bitrate = strconv.Itoa(st.Bitrate)
	}

	genre := cleanField(firstTag(st.Tags))

	return sii.NewRecord(st.URL, cleanField(st.Name), genre, lang, bitrate, "0")
}

// cleanField trims surrounding whitespace and replaces the payload
// delimiter, which cannot be escaped
func cleanField(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "|", "/"))
}

// firstTag picks the leading tag from the directory's comma-joined tag list
func firstTag(tags string) string {
	for i := range len(tags) {
		if tags[i] == ',' {
			return tags[:i]
		}
	}
	return tags
}
