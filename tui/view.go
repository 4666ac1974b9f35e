// ABOUTME: Rendering and display functions for the TUI
// ABOUTME: Implements the Bubble Tea View() function and all render helpers

package tui

import (
	"fmt"
	"runtime/debug"
	"time"

	"streams-editor/sii"
)

// Column widths for the station table
const (
	colIndexWidth   = 3
	colFavWidth     = 3
	colNameWidth    = 28
	colGenreWidth   = 16
	colLangWidth    = 4
	colBitrateWidth = 7
	colURLWidth     = 48
)

// View renders the TUI
func (m model) View() string {
	defer func() {
		if r := recover(); r != nil {
			m.debugf("[PANIC] View panic: %v", r)
			m.debugf("[PANIC] Stack trace: %s", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	if m.quitting {
		return "Saving config and exiting...\n"
	}

	s := m.renderTitle() + "\n\n"
	s += m.renderTableHeader() + "\n"
	s += m.viewport.View() + "\n"
	s += m.renderStatus() + "\n"
	s += m.renderHelp()

	return s
}

// renderTitle renders the title bar with file path and modified flag
func (m model) renderTitle() string {
	title := m.session.Path
	if m.session.HasChanges() {
		title += " [MODIFIED]"
	}

	return titleStyle.Render(title)
}

// renderTableHeader renders the column header row, highlighting the
// column targeted by edit and sort keys
func (m model) renderTableHeader() string {
	cols := []struct {
		field sii.Field
		label string
		width int
	}{
		{"", "#", colIndexWidth},
		{sii.FieldFavorite, "Fav", colFavWidth},
		{sii.FieldName, "Name", colNameWidth},
		{sii.FieldGenre, "Genre", colGenreWidth},
		{sii.FieldLang, "Lang", colLangWidth},
		{sii.FieldBitrate, "Bitrate", colBitrateWidth},
		{sii.FieldURL, "URL", colURLWidth},
	}

	header := ""
	for _, col := range cols {
		cell := fmt.Sprintf("%-*s ", col.width, col.label)
		if col.field != "" && col.field == m.selectedField {
			cell = selectedColStyle.Render(cell)
		}
		header += cell
	}

	return tableHeaderStyle.Render(header)
}

// updateViewportContent builds and sets the viewport content
// Renders ALL records - let viewport handle scrolling
func (m *model) updateViewportContent() {
	var content string

	for i, rec := range m.records {
		fav := " "
		if rec.IsFavorite() {
			fav = "*"
		}

		line := fmt.Sprintf("%-*d %-*s %-*s %-*s %-*s %-*s %-*s",
			colIndexWidth, rec.Index,
			colFavWidth, fav,
			colNameWidth, truncate(rec.Name, colNameWidth),
			colGenreWidth, truncate(rec.Genre, colGenreWidth),
			colLangWidth, truncate(rec.Lang, colLangWidth),
			colBitrateWidth, truncate(rec.Bitrate, colBitrateWidth),
			colURLWidth, truncate(rec.URL, colURLWidth),
		)

		switch {
		case i == m.cursorPos && m.editing:
			line = cursorStyle.Render(fmt.Sprintf("%-*d edit %s: %s",
				colIndexWidth, rec.Index, m.selectedField, m.editInput.View()))
		case i == m.cursorPos:
			line = cursorStyle.Render(line)
		case rec.IsFavorite():
			line = favoriteStyle.Render(line)
		}

		content += line + "\n"
	}

	if len(m.records) == 0 {
		content = helpStyle.Render(" no stations - press 'a' to add one") + "\n"
	}

	m.viewport.SetContent(content)
}

// renderStatus renders the status bar
func (m model) renderStatus() string {
	// Show status message if recent
	if m.statusMsg != "" && time.Since(m.statusMsgAge) < statusMessageDuration {
		if m.lastSaveErr != nil {
			return errorStyle.Width(m.width).Render(m.statusMsg)
		}
		return statusStyle.Width(m.width).Render(m.statusMsg)
	}

	favorites := 0
	for _, rec := range m.records {
		if rec.IsFavorite() {
			favorites++
		}
	}

	position := "-"
	if len(m.records) > 0 {
		position = fmt.Sprintf("%d/%d", m.cursorPos+1, len(m.records))
	}

	status := fmt.Sprintf("%d stations (%d favorites) | %s | column: %s | U:%d R:%d",
		len(m.records),
		favorites,
		position,
		m.selectedField,
		m.undoMgr.UndoSize(),
		m.undoMgr.RedoSize(),
	)

	return statusStyle.Width(m.width).Render(status)
}

// renderHelp renders the help text
func (m model) renderHelp() string {
	if m.editing {
		return helpStyle.Render(" enter: apply | esc: cancel")
	}

	return helpStyle.Render(" ↑/↓: navigate | ←/→: column | enter: edit | a: add | d: delete | f: favorite | s/S: sort | shift+↑/↓: move | w: write | u: undo | ctrl+r: redo | q: quit")
}
