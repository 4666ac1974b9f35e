// ABOUTME: Defines the Record type for one radio station entry
// ABOUTME: Provides named field access and a stable identity independent of the serialized index

// Package sii handles live_streams.sii documents: decoding and encoding
// stream_data records, validating raw payloads, and merging edited record
// lists back into the document while preserving unmanaged lines.
package sii

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Defaults applied when a payload carries fewer than six fields
const (
	DefaultLang     = "EN"
	DefaultFavorite = "0"
)

// Field names a record field for patching and sorting
type Field string

// Record fields in serialized payload order
const (
	FieldURL      Field = "url"
	FieldName     Field = "name"
	FieldGenre    Field = "genre"
	FieldLang     Field = "lang"
	FieldBitrate  Field = "bitrate"
	FieldFavorite Field = "favorite"
)

// Fields lists all record fields in payload order
var Fields = []Field{FieldURL, FieldName, FieldGenre, FieldLang, FieldBitrate, FieldFavorite}

// ParseField resolves a user-supplied field name
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}

	return "", fmt.Errorf("unknown field %q (valid: url, name, genre, lang, bitrate, favorite)", s)
}

// Record represents one radio station entry.
// Index is the serialized position; it is renumbered to a contiguous
// 0..N-1 range on every encode. ID is the stable identity that survives
// reorders and reindexing, and is never written to disk.
type Record struct {
	ID       string // opaque identity, assigned at decode/creation
	Index    int    // position in the canonical (serialized) list
	URL      string // stream URL, required
	Name     string // station name, required
	Genre    string // free text, may hold comma-separated tags
	Lang     string // language code, defaults to "EN"
	Bitrate  string // numeric string or empty
	Favorite string // "0" or "1"
}

// NewRecord creates a record with a fresh identity and defaulted fields
func NewRecord(url, name, genre, lang, bitrate, favorite string) Record {
	if lang == "" {
		lang = DefaultLang
	}

	if favorite == "" {
		favorite = DefaultFavorite
	}

	return Record{
		ID:       uuid.NewString(),
		URL:      url,
		Name:     name,
		Genre:    genre,
		Lang:     lang,
		Bitrate:  bitrate,
		Favorite: favorite,
	}
}

// Payload returns the six fields joined with '|', the serialized form.
// Fields must not contain '|'; the codec does no escaping.
func (r Record) Payload() string {
	return strings.Join([]string{r.URL, r.Name, r.Genre, r.Lang, r.Bitrate, r.Favorite}, "|")
}

// FieldValue returns the named field's current value
func (r Record) FieldValue(f Field) string {
	switch f {
	case FieldURL:
		return r.URL
	case FieldName:
		return r.Name
	case FieldGenre:
		return r.Genre
	case FieldLang:
		return r.Lang
	case FieldBitrate:
		return r.Bitrate
	case FieldFavorite:
		return r.Favorite
	}

	return ""
}

// WithField returns a copy of the record with the named field replaced
func (r Record) WithField(f Field, value string) Record {
	switch f {
	case FieldURL:
		r.URL = value
	case FieldName:
		r.Name = value
	case FieldGenre:
		r.Genre = value
	case FieldLang:
		r.Lang = value
	case FieldBitrate:
		r.Bitrate = value
	case FieldFavorite:
		r.Favorite = value
	}

	return r
}

// IsFavorite reports whether the favorite flag is set
func (r Record) IsFavorite() bool {
	return r.Favorite == "1"
}

// String returns a formatted string representation of the record
func (r Record) String() string {
	return fmt.Sprintf("[%d] %-30s %s", r.Index, r.Name, r.URL)
}
