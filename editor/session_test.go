// ABOUTME: Tests for the editing session lifecycle
// ABOUTME: Verifies change detection, discard, and merge-backed saves with backups

package editor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"streams-editor/sii"
)

const sessionDocument = `SiiNunit
{
live_stream_def : _nameless.27AF.8C60 {
 stream_data: 2
 stream_data[0]: "http://a|A|Rock|EN|128|0"
 stream_data[1]: "http://b|B|Pop|EN|64|1"
}

}
`

func writeSessionFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "live_streams.sii")
	if err := os.WriteFile(path, []byte(sessionDocument), 0o600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	return path
}

func TestOpen(t *testing.T) {
	s, err := Open(writeSessionFile(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	records := s.Records()
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	if s.HasChanges() {
		t.Error("Fresh session should have no changes")
	}
}

func TestOpenWrongFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("not a streams file"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(path); err == nil {
		t.Error("Expected error for file without stream_data entries")
	}
}

func TestHasChangesAndDiscard(t *testing.T) {
	s, err := Open(writeSessionFile(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	records := s.Records()

	patched, err := PatchField(records, 0, sii.FieldName, "Renamed")
	if err != nil {
		t.Fatalf("PatchField failed: %v", err)
	}

	s.Replace(patched)

	if !s.HasChanges() {
		t.Error("Expected changes after patch")
	}

	s.Discard()

	if s.HasChanges() {
		t.Error("Expected no changes after discard")
	}

	if s.Records()[0].Name != "A" {
		t.Errorf("Discard did not restore snapshot, name is %q", s.Records()[0].Name)
	}
}

func TestSave(t *testing.T) {
	path := writeSessionFile(t)

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	records := InsertAt(s.Records(), sii.NewRecord("http://c", "C", "Jazz", "EN", "160", "0"), 1)
	s.Replace(records)

	if err := s.Save(10); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if s.HasChanges() {
		t.Error("Expected no changes after save")
	}

	// Written document: header updated, block rewritten, shell preserved
	text, err := sii.LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}

	if !strings.Contains(text, " stream_data: 3") {
		t.Errorf("Header count not updated:\n%s", text)
	}

	if !strings.Contains(text, ` stream_data[1]: "http://c|C|Jazz|EN|160|0"`) {
		t.Errorf("Inserted record missing:\n%s", text)
	}

	if !strings.Contains(text, "SiiNunit") || !strings.Contains(text, "live_stream_def") {
		t.Errorf("Unmanaged lines lost:\n%s", text)
	}

	backups, err := sii.Backups(path)
	if err != nil {
		t.Fatalf("Backups failed: %v", err)
	}

	if len(backups) != 1 {
		t.Errorf("Expected 1 backup after save, got %d", len(backups))
	}
}

func TestSaveRefusesCorruptingValues(t *testing.T) {
	path := writeSessionFile(t)

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	// A pipe smuggled into a field would shift every following field on
	// the next load; the save must be refused, not written
	records := s.Records()
	records[0].Name = "Rock | Pop Mix"
	s.Replace(records)

	err = s.Save(0)
	if err == nil {
		t.Fatal("Expected save of a corrupting value to fail")
	}

	if !strings.Contains(err.Error(), "PIPE_COUNT") {
		t.Errorf("Expected diagnostics in error, got %v", err)
	}

	// Nothing may have touched the disk
	text, readErr := sii.LoadDocument(path)
	if readErr != nil {
		t.Fatalf("Failed to reload document: %v", readErr)
	}

	if text != sessionDocument {
		t.Errorf("Refused save still modified the file:\n%s", text)
	}
}

func TestSaveEmptyThenRefill(t *testing.T) {
	path := writeSessionFile(t)

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	// Remove everything and save: block disappears, count drops to 0
	s.Replace(nil)

	if err := s.Save(0); err != nil {
		t.Fatalf("Save of empty list failed: %v", err)
	}

	text, _ := sii.LoadDocument(path)
	if !strings.Contains(text, " stream_data: 0") {
		t.Errorf("Header not zeroed:\n%s", text)
	}

	// Adding a record afterwards must still save, re-anchoring the block
	s.Replace([]sii.Record{sii.NewRecord("http://z", "Z", "", "", "", "")})

	if err := s.Save(0); err != nil {
		t.Fatalf("Save after refill failed: %v", err)
	}

	text, _ = sii.LoadDocument(path)
	if !strings.Contains(text, ` stream_data[0]: "http://z|Z||EN||0"`) {
		t.Errorf("Refilled record missing:\n%s", text)
	}

	if !strings.Contains(text, " stream_data: 1") {
		t.Errorf("Header not updated after refill:\n%s", text)
	}
}
