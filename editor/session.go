// ABOUTME: Editing session holding the current record list and the last-saved snapshot
// ABOUTME: Supports atomic replace, change detection, discard, and merge-backed saves

package editor

import (
	"errors"
	"fmt"
	"slices"

	"streams-editor/sii"
)

// Session is the single source of truth for one open document: the
// current record list, the last-saved snapshot, and the document text
// whose unmanaged lines must survive every save. There is no ambient
// global; callers thread the session through their operations.
type Session struct {
	Path string

	document string
	current  []sii.Record
	snapshot []sii.Record
}

// Open loads and decodes the document at path into a new session
func Open(path string) (*Session, error) {
	text, err := sii.LoadDocument(path)
	if err != nil {
		return nil, err
	}

	records, err := sii.Decode(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	records = ReindexSequential(records)

	return &Session{
		Path:     path,
		document: text,
		current:  records,
		snapshot: slices.Clone(records),
	}, nil
}

// NewSession builds a session from already-loaded document text,
// primarily for tests and import flows
func NewSession(path, document string, records []sii.Record) *Session {
	records = ReindexSequential(records)

	return &Session{
		Path:     path,
		document: document,
		current:  records,
		snapshot: slices.Clone(records),
	}
}

// Records returns a copy of the current record list
func (s *Session) Records() []sii.Record {
	return slices.Clone(s.current)
}

// Document returns the backing document text as of the last load or save
func (s *Session) Document() string {
	return s.document
}

// Replace atomically swaps in a new current record list
func (s *Session) Replace(records []sii.Record) {
	s.current = slices.Clone(records)
}

// HasChanges reports whether the current list differs from the snapshot.
// Comparison is by serialized payload and order; identities are ignored
// so a reload never counts as an edit.
func (s *Session) HasChanges() bool {
	if len(s.current) != len(s.snapshot) {
		return true
	}

	for i := range s.current {
		if s.current[i].Payload() != s.snapshot[i].Payload() {
			return true
		}
	}

	return false
}

// Discard restores the last-saved snapshot as the current list
func (s *Session) Discard() {
	s.current = slices.Clone(s.snapshot)
}

// maxSaveDiagnostics caps the findings listed when a save is refused
const maxSaveDiagnostics = 5

// Save merges the current records into the document, writes it out with
// backup rotation, and promotes the current list to the new snapshot.
// Structural merge errors abort before anything touches the disk, and
// the merged text must pass the same validation applied when opening a
// file; a document this editor writes is always one it can open again.
func (s *Session) Save(keepBackups int) error {
	s.current = ReindexSequential(s.current)

	merged, err := sii.Merge(s.document, s.current)
	if errors.Is(err, sii.ErrNoRecords) && len(s.current) > 0 {
		// A previous save emptied the record block; re-anchor it
		// directly after the header.
		merged, err = sii.AppendBlock(s.document, s.current)
	}

	if err != nil {
		return err
	}

	if report := sii.Validate(merged); !report.OK {
		return fmt.Errorf("refusing to save %d invalid records:\n%s",
			len(report.Invalid), sii.FormatDiagnostics(report.Invalid, maxSaveDiagnostics))
	}

	if err := sii.SaveDocument(s.Path, merged, keepBackups); err != nil {
		return err
	}

	s.document = merged
	s.snapshot = slices.Clone(s.current)

	return nil
}
