// ABOUTME: Tests for merging edited record lists back into document text
// ABOUTME: Verifies header sync, unmanaged line preservation, and structural errors

package sii

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

func TestMergeHeaderCountSync(t *testing.T) {
	tests := []struct {
		name        string
		recordCount int
	}{
		{name: "fewer records", recordCount: 1},
		{name: "same count", recordCount: 2},
		{name: "more records", recordCount: 5},
		{name: "empty list", recordCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]Record, tt.recordCount)
			for i := range records {
				records[i] = NewRecord("http://s", "S", "", "", "", "")
				records[i].Index = i
			}

			merged, err := Merge(sampleDocument, records)
			if err != nil {
				t.Fatalf("Merge failed: %v", err)
			}

			if !strings.Contains(merged, " stream_data: "+strconv.Itoa(tt.recordCount)+"\n") {
				t.Errorf("Header count not updated to %d:\n%s", tt.recordCount, merged)
			}

			entries := RawEntries(merged)
			if len(entries) != tt.recordCount {
				t.Errorf("Expected %d record lines after merge, got %d", tt.recordCount, len(entries))
			}
		})
	}
}

func TestMergePreservesUnmanagedLines(t *testing.T) {
	records := []Record{NewRecord("http://new", "New", "Rock", "EN", "192", "1")}

	merged, err := Merge(sampleDocument, records)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	for _, line := range []string{"SiiNunit", "live_stream_def : _nameless.27AF.8C60 {", "}"} {
		if !strings.Contains(merged, line) {
			t.Errorf("Unmanaged line %q lost in merge:\n%s", line, merged)
		}
	}

	if !strings.Contains(merged, ` stream_data[0]: "http://new|New|Rock|EN|192|1"`) {
		t.Errorf("New record block missing:\n%s", merged)
	}

	if strings.Contains(merged, "http://a") {
		t.Errorf("Old record lines should be replaced:\n%s", merged)
	}
}

func TestMergeBlockPosition(t *testing.T) {
	records := []Record{NewRecord("http://new", "New", "", "", "", "")}

	merged, err := Merge(sampleDocument, records)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	lines := strings.Split(merged, "\n")

	// The record block must sit where the original block started:
	// directly after the header line.
	headerAt := -1

	for i, line := range lines {
		if strings.HasPrefix(line, " stream_data: ") {
			headerAt = i
			break
		}
	}

	if headerAt == -1 {
		t.Fatalf("Header line missing:\n%s", merged)
	}

	if !strings.HasPrefix(lines[headerAt+1], " stream_data[0]: ") {
		t.Errorf("Record block not at original position, line after header is %q", lines[headerAt+1])
	}
}

func TestMergeStructuralErrors(t *testing.T) {
	records := []Record{NewRecord("http://a", "A", "", "", "", "")}

	t.Run("missing header", func(t *testing.T) {
		doc := ` stream_data[0]: "http://a|A|Rock|EN|128|0"`

		_, err := Merge(doc, records)
		if !errors.Is(err, ErrNoHeader) {
			t.Errorf("Expected ErrNoHeader, got %v", err)
		}
	})

	t.Run("no record lines", func(t *testing.T) {
		doc := `SiiNunit
 stream_data: 0
}`

		_, err := Merge(doc, records)
		if !errors.Is(err, ErrNoRecords) {
			t.Errorf("Expected ErrNoRecords, got %v", err)
		}
	})
}

func TestMergeNormalizesCRLF(t *testing.T) {
	doc := strings.ReplaceAll(sampleDocument, "\n", "\r\n")
	records := []Record{NewRecord("http://a", "A", "", "", "", "")}

	merged, err := Merge(doc, records)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	if strings.Contains(merged, "\r") {
		t.Error("Merged document still contains carriage returns")
	}
}

func TestMergeRenumbersIndices(t *testing.T) {
	// In-memory indices may be sparse; the serialized block is always
	// contiguous from zero.
	records := []Record{
		NewRecord("http://a", "A", "", "", "", ""),
		NewRecord("http://b", "B", "", "", "", ""),
	}
	records[0].Index = 4
	records[1].Index = 9

	merged, err := Merge(sampleDocument, records)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	entries := RawEntries(merged)
	for i, e := range entries {
		if e.Index != i {
			t.Errorf("Entry %d: expected index %d, got %d", i, i, e.Index)
		}
	}
}

func TestMergePreservesTrailingNewline(t *testing.T) {
	records := []Record{NewRecord("http://a", "A", "", "", "", "")}

	merged, err := Merge(sampleDocument, records)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	if !strings.HasSuffix(merged, "}\n") {
		t.Errorf("Trailing newline not preserved, document ends with %q", merged[len(merged)-2:])
	}
}
