// ABOUTME: Parses stream_data record lines and serializes record lists back to line blocks
// ABOUTME: Decode orders entries by index; Encode renumbers positionally from zero

package sii

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Structural errors. Per-record malformation never surfaces here; the
// validator reports those as diagnostics.
var (
	// ErrNoRecords means no stream_data[N] line matched at all,
	// distinguishing a wrong-format file from an empty record list.
	ErrNoRecords = errors.New("no stream_data entries found")

	// ErrNoHeader means the document has no stream_data count header.
	ErrNoHeader = errors.New("no stream_data count header found")
)

// Record line: arbitrary leading whitespace, index in brackets, then the
// shortest run up to the next '"'. Embedded quotes terminate the payload
// early; that is a limitation of the file format itself.
var recordLineRe = regexp.MustCompile(`^\s*stream_data\[(\d+)\]: "(.*?)"`)

// Header line: stream_data: <count>. Must not match record lines.
var headerLineRe = regexp.MustCompile(`^(\s*stream_data:\s*)(\d+)`)

// RawEntry is one matched record line before field splitting
type RawEntry struct {
	LineNumber int // 1-based position in the document
	Index      int // index from the brackets, as written in the file
	Payload    string
}

// splitLines splits document text on line boundaries, normalizing CRLF
func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// RawEntries extracts every record line as a (lineNumber, index, payload)
// triple, sorted ascending by index. Index order is the canonical record
// order even when the file lists entries out of sequence.
func RawEntries(documentText string) []RawEntry {
	var entries []RawEntry

	for i, line := range splitLines(documentText) {
		m := recordLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		index, err := strconv.Atoi(m[1])
		if err != nil {
			// Digits matched but overflow int; treat as unmanaged
			continue
		}

		entries = append(entries, RawEntry{LineNumber: i + 1, Index: index, Payload: m[2]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Index < entries[j].Index
	})

	return entries
}

// Decode parses document text into records in canonical index order.
// Malformed payloads decode best-effort; only a document with zero
// record lines fails, with ErrNoRecords.
func Decode(documentText string) ([]Record, error) {
	entries := RawEntries(documentText)
	if len(entries) == 0 {
		return nil, fmt.Errorf("decode: %w", ErrNoRecords)
	}

	records := make([]Record, 0, len(entries))

	for _, e := range entries {
		r := recordFromPayload(e.Payload)
		r.Index = e.Index
		records = append(records, r)
	}

	return records, nil
}

// recordFromPayload maps payload tokens positionally onto the six fields,
// applying defaults for missing trailing tokens
func recordFromPayload(payload string) Record {
	parts := strings.Split(payload, "|")

	field := func(i int, def string) string {
		if i < len(parts) {
			return parts[i]
		}

		return def
	}

	return Record{
		ID:       uuid.NewString(),
		URL:      field(0, ""),
		Name:     field(1, ""),
		Genre:    field(2, ""),
		Lang:     field(3, DefaultLang),
		Bitrate:  field(4, ""),
		Favorite: field(5, DefaultFavorite),
	}
}

// EncodeLines serializes records in slice order as record lines, one per
// record, renumbering indices 0..N-1. Whatever transient index values
// the records carried are discarded.
func EncodeLines(records []Record) []string {
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = " stream_data[" + strconv.Itoa(i) + `]: "` + r.Payload() + `"`
	}

	return lines
}
