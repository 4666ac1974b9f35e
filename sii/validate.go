// ABOUTME: Structural validation of raw stream_data payloads
// ABOUTME: Reports per-entry diagnostics with machine-readable issue codes

package sii

import (
	"fmt"
	"regexp"
	"strings"
)

// IssueCode identifies one validation failure on a payload
type IssueCode string

// Validation issue codes
const (
	IssuePipeCount       IssueCode = "PIPE_COUNT"
	IssuePipeWhitespace  IssueCode = "PIPE_WHITESPACE"
	IssueURLEmpty        IssueCode = "URL_EMPTY"
	IssueNameEmpty       IssueCode = "NAME_EMPTY"
	IssueBitrateInvalid  IssueCode = "BITRATE_INVALID"
	IssueFavoriteInvalid IssueCode = "FAVORITE_INVALID"
)

// payloadFieldCount is the fixed number of pipe-delimited fields
const payloadFieldCount = 6

// Diagnostic is one validation finding for a record line
type Diagnostic struct {
	LineNumber  int
	RecordIndex int
	Issues      []IssueCode
}

// Report is the result of validating a whole document
type Report struct {
	OK      bool       // true iff no entry has any issue
	Entries []RawEntry // all matched entries in canonical index order
	Invalid []Diagnostic
}

var bitrateFieldRe = regexp.MustCompile(`^[0-9]*$`)

// Validate extracts raw entries and checks each payload against the
// structural rules. Checks run on the raw payload string rather than the
// decoded record so that a wrong pipe count is diagnosable even when
// positional splitting would misassign values.
func Validate(documentText string) Report {
	entries := RawEntries(documentText)
	report := Report{OK: true, Entries: entries}

	for _, e := range entries {
		issues := checkPayload(e.Payload)
		if len(issues) == 0 {
			continue
		}

		report.OK = false
		report.Invalid = append(report.Invalid, Diagnostic{
			LineNumber:  e.LineNumber,
			RecordIndex: e.Index,
			Issues:      issues,
		})
	}

	return report
}

// checkPayload runs the five structural checks against one raw payload
func checkPayload(payload string) []IssueCode {
	var issues []IssueCode

	if strings.Count(payload, "|") != payloadFieldCount-1 {
		issues = append(issues, IssuePipeCount)
	}

	if pipeTouchesWhitespace(payload) {
		issues = append(issues, IssuePipeWhitespace)
	}

	// Field-level checks only make sense once all six fields exist;
	// with fewer tokens the positional assignment is already suspect
	// and PIPE_COUNT covers it.
	parts := strings.Split(payload, "|")
	if len(parts) >= payloadFieldCount {
		if parts[0] == "" {
			issues = append(issues, IssueURLEmpty)
		}

		if parts[1] == "" {
			issues = append(issues, IssueNameEmpty)
		}

		if !bitrateFieldRe.MatchString(parts[4]) {
			issues = append(issues, IssueBitrateInvalid)
		}

		if parts[5] != "0" && parts[5] != "1" {
			issues = append(issues, IssueFavoriteInvalid)
		}
	}

	return issues
}

// pipeTouchesWhitespace reports whether any '|' has a whitespace byte
// immediately on either side
func pipeTouchesWhitespace(payload string) bool {
	for i := 0; i < len(payload); i++ {
		if payload[i] != '|' {
			continue
		}

		if i > 0 && isSpaceByte(payload[i-1]) {
			return true
		}

		if i+1 < len(payload) && isSpaceByte(payload[i+1]) {
			return true
		}
	}

	return false
}

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	}

	return false
}

// FormatDiagnostics renders up to max diagnostics for humans, one per
// line, with line number, record index and joined issue codes. Surplus
// findings collapse into a trailing count.
func FormatDiagnostics(diags []Diagnostic, max int) string {
	var b strings.Builder

	shown := len(diags)
	if max > 0 && shown > max {
		shown = max
	}

	for _, d := range diags[:shown] {
		codes := make([]string, len(d.Issues))
		for i, c := range d.Issues {
			codes[i] = string(c)
		}

		fmt.Fprintf(&b, "line %d, stream_data[%d]: %s\n", d.LineNumber, d.RecordIndex, strings.Join(codes, ", "))
	}

	if rest := len(diags) - shown; rest > 0 {
		fmt.Fprintf(&b, "... and %d more\n", rest)
	}

	return b.String()
}
