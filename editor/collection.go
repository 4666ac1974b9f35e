// ABOUTME: Pure list operations over station records
// ABOUTME: Every operation returns a fresh slice and keeps indices contiguous from zero

// Package editor provides in-memory editing of station record lists and
// the editing session that ties a record list to its backing document.
// Operations never mutate their input; callers keep the returned slice.
// Index arithmetic assumes the input list is already contiguous 0..N-1;
// reindex first when in doubt.
package editor

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"

	"streams-editor/sii"
)

// Operation errors
var (
	// ErrNotFound means no record carries the requested index.
	ErrNotFound = errors.New("no record at index")

	// ErrInvalidValue means a field value failed validation; the list
	// is returned unchanged alongside it.
	ErrInvalidValue = errors.New("invalid field value")
)

// Direction selects sort order
type Direction int

// Sort directions
const (
	Ascending Direction = iota
	Descending
)

// ParseDirection resolves "asc" or "desc"
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "asc":
		return Ascending, nil
	case "desc":
		return Descending, nil
	}

	return Ascending, fmt.Errorf("unknown sort direction %q (valid: asc, desc)", s)
}

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}

	return "asc"
}

var bitrateValueRe = regexp.MustCompile(`^[0-9]+$`)

// InsertAt places rec at targetIndex, shifting every record at or above
// that index up by one. targetIndex is clamped to [0, len(list)], so an
// out-of-range target appends.
func InsertAt(list []sii.Record, rec sii.Record, targetIndex int) []sii.Record {
	if targetIndex < 0 {
		targetIndex = 0
	}

	if targetIndex > len(list) {
		targetIndex = len(list)
	}

	out := make([]sii.Record, 0, len(list)+1)

	for _, r := range list {
		if r.Index >= targetIndex {
			r.Index++
		}

		out = append(out, r)
	}

	rec.Index = targetIndex
	out = append(out, rec)
	sortByIndex(out)

	return out
}

// RemoveAt drops the record whose index equals targetIndex and shifts
// higher indices down by one. Returns the original list and ErrNotFound
// when no record has that index.
func RemoveAt(list []sii.Record, targetIndex int) ([]sii.Record, error) {
	found := false
	out := make([]sii.Record, 0, len(list))

	for _, r := range list {
		if r.Index == targetIndex {
			found = true
			continue
		}

		if r.Index > targetIndex {
			r.Index--
		}

		out = append(out, r)
	}

	if !found {
		return list, fmt.Errorf("%w %d", ErrNotFound, targetIndex)
	}

	return out, nil
}

// ReindexSequential reassigns indices 0..N-1 by current ascending-index
// order. Identities are untouched; only the serialized position changes.
// Idempotent.
func ReindexSequential(list []sii.Record) []sii.Record {
	out := slices.Clone(list)
	sortByIndex(out)

	for i := range out {
		out[i].Index = i
	}

	return out
}

// PatchField replaces one field on the record at targetIndex after
// field-specific validation. On any failure the original list is
// returned unchanged with the error.
func PatchField(list []sii.Record, targetIndex int, field sii.Field, value string) ([]sii.Record, error) {
	if err := CheckFieldValue(field, value); err != nil {
		return list, err
	}

	out := slices.Clone(list)

	for i := range out {
		if out[i].Index == targetIndex {
			out[i] = out[i].WithField(field, value)
			return out, nil
		}
	}

	return list, fmt.Errorf("%w %d", ErrNotFound, targetIndex)
}

// CheckFieldValue applies per-field validation rules. Values that would
// corrupt the pipe-delimited payload are rejected for every field.
func CheckFieldValue(field sii.Field, value string) error {
	if strings.Contains(value, "|") {
		return fmt.Errorf("%w: %s must not contain '|'", ErrInvalidValue, field)
	}

	if value != strings.TrimSpace(value) {
		return fmt.Errorf("%w: %s must not have leading or trailing whitespace", ErrInvalidValue, field)
	}

	switch field {
	case sii.FieldURL:
		if value == "" {
			return fmt.Errorf("%w: url must not be empty", ErrInvalidValue)
		}
	case sii.FieldName:
		if value == "" {
			return fmt.Errorf("%w: name must not be empty", ErrInvalidValue)
		}
	case sii.FieldBitrate:
		if value != "" && !bitrateValueRe.MatchString(value) {
			return fmt.Errorf("%w: bitrate must be numeric or empty", ErrInvalidValue)
		}
	case sii.FieldFavorite:
		if value != "0" && value != "1" {
			return fmt.Errorf("%w: favorite must be \"0\" or \"1\"", ErrInvalidValue)
		}
	case sii.FieldGenre, sii.FieldLang:
		// Free text
	default:
		return fmt.Errorf("%w: unknown field %q", ErrInvalidValue, field)
	}

	return nil
}

// CheckRecord applies CheckFieldValue to every field of a record.
// Records built from external sources (playlists, directory responses)
// must pass before they are allowed into a session.
func CheckRecord(rec sii.Record) error {
	for _, f := range sii.Fields {
		if err := CheckFieldValue(f, rec.FieldValue(f)); err != nil {
			return err
		}
	}

	return nil
}

// SortBy stably sorts the list by case-insensitive comparison of the
// named field, ties keeping their prior relative order, then renumbers
// indices to match the new positions.
func SortBy(list []sii.Record, field sii.Field, dir Direction) []sii.Record {
	out := slices.Clone(list)

	sort.SliceStable(out, func(i, j int) bool {
		a := strings.ToLower(out[i].FieldValue(field))
		b := strings.ToLower(out[j].FieldValue(field))

		if dir == Descending {
			return a > b
		}

		return a < b
	})

	for i := range out {
		out[i].Index = i
	}

	return out
}

// MoveRecord swaps the record at index with its neighbor (delta -1 or
// +1), renumbering both. No-op at the list boundaries.
func MoveRecord(list []sii.Record, index, delta int) []sii.Record {
	target := index + delta
	if index < 0 || index >= len(list) || target < 0 || target >= len(list) {
		return list
	}

	out := ReindexSequential(list)
	out[index], out[target] = out[target], out[index]
	out[index].Index = index
	out[target].Index = target

	return out
}

func sortByIndex(list []sii.Record) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Index < list[j].Index
	})
}
