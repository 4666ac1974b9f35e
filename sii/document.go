// ABOUTME: Merges an edited record list back into the original document text
// ABOUTME: Bulk-replaces the record block and keeps the header count in sync

package sii

import (
	"fmt"
	"strconv"
	"strings"
)

// Merge produces updated document text from the original text and a new
// record list. The header count is rewritten to len(records), every
// original record line is removed, and the freshly encoded block is
// spliced in where the original block began. All other lines pass
// through unchanged apart from CRLF normalization to '\n'.
//
// This is deliberate bulk block replacement rather than positional
// overwrite: the whole block is rebuilt every save, so record lines
// never drift out of step with their indices.
func Merge(originalText string, records []Record) (string, error) {
	lines := splitLines(originalText)

	headerAt := -1

	for i, line := range lines {
		if headerLineRe.MatchString(line) {
			headerAt = i
			break
		}
	}

	if headerAt == -1 {
		return "", fmt.Errorf("merge: %w", ErrNoHeader)
	}

	lines[headerAt] = headerLineRe.ReplaceAllString(lines[headerAt], "${1}"+strconv.Itoa(len(records)))

	// Drop every record line, remembering where the block started
	blockStart := -1
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		if recordLineRe.MatchString(line) {
			if blockStart == -1 {
				blockStart = len(kept)
			}

			continue
		}

		kept = append(kept, line)
	}

	if blockStart == -1 {
		return "", fmt.Errorf("merge: %w", ErrNoRecords)
	}

	out := make([]string, 0, len(kept)+len(records))
	out = append(out, kept[:blockStart]...)
	out = append(out, EncodeLines(records)...)
	out = append(out, kept[blockStart:]...)

	return strings.Join(out, "\n"), nil
}

// AppendBlock inserts a freshly encoded record block directly after the
// header line and updates the count. Used when the document's record
// block was previously emptied out, leaving Merge nothing to anchor on.
func AppendBlock(originalText string, records []Record) (string, error) {
	lines := splitLines(originalText)

	headerAt := -1

	for i, line := range lines {
		if headerLineRe.MatchString(line) {
			headerAt = i
			break
		}
	}

	if headerAt == -1 {
		return "", fmt.Errorf("append: %w", ErrNoHeader)
	}

	lines[headerAt] = headerLineRe.ReplaceAllString(lines[headerAt], "${1}"+strconv.Itoa(len(records)))

	out := make([]string, 0, len(lines)+len(records))
	out = append(out, lines[:headerAt+1]...)
	out = append(out, EncodeLines(records)...)
	out = append(out, lines[headerAt+1:]...)

	return strings.Join(out, "\n"), nil
}
