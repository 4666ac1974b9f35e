// ABOUTME: Event handling and state updates for the TUI
// ABOUTME: Implements the Bubble Tea Update() function and message handlers

package tui

import (
	"fmt"
	"runtime/debug"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"streams-editor/config"
	"streams-editor/editor"
	"streams-editor/sii"
)

// Update handles messages and updates the model
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.debugf("[PANIC] Update panic: %v", r)
			m.debugf("[PANIC] Stack trace: %s", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		viewportWidth := msg.Width
		if viewportWidth < minViewportWidth {
			viewportWidth = minViewportWidth
		}

		// Height: total height minus all UI chrome (title, header, status, help, spacing)
		viewportHeight := msg.Height - totalUIChrome
		if viewportHeight < minViewportHeight {
			viewportHeight = minViewportHeight
		}

		m.viewport.Width = viewportWidth
		m.viewport.Height = viewportHeight

		// Ensure viewport starts at top
		m.viewport.YOffset = 0
		m.ensureCursorVisible()
		m.updateViewportContent()

		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.handleEditKey(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return m.handleQuitKey()

		case key.Matches(msg, keys.MoveUp):
			m.moveRecord(-1)

		case key.Matches(msg, keys.MoveDown):
			m.moveRecord(1)

		case key.Matches(msg, keys.Up):
			m.handleUpKey()

		case key.Matches(msg, keys.Down):
			m.handleDownKey()

		case key.Matches(msg, keys.Left):
			m.handleColumnKey(-1)

		case key.Matches(msg, keys.Right):
			m.handleColumnKey(1)

		case key.Matches(msg, keys.PageUp):
			m.handlePageUpKey()

		case key.Matches(msg, keys.PageDown):
			m.handlePageDownKey()

		case key.Matches(msg, keys.Home):
			m.handleHomeKey()

		case key.Matches(msg, keys.End):
			m.handleEndKey()

		case key.Matches(msg, keys.Edit):
			m.startEditing()

		case key.Matches(msg, keys.Add):
			m.addRecord()

		case key.Matches(msg, keys.Delete):
			m.deleteRecord()

		case key.Matches(msg, keys.Favorite):
			m.toggleFavorite()

		case key.Matches(msg, keys.SortDesc):
			m.sortRecords(editor.Descending)

		case key.Matches(msg, keys.SortAsc):
			m.sortRecords(editor.Ascending)

		case key.Matches(msg, keys.Save):
			m.saveFile()

		case key.Matches(msg, keys.Undo):
			m.undo()

		case key.Matches(msg, keys.Redo):
			m.redo()
		}
	}

	return m, nil
}

// handleQuitKey handles the quit key press
func (m *model) handleQuitKey() (model, tea.Cmd) {
	m.quitting = true
	// Save config on quit
	if err := config.SaveConfig(m.configPath, m.sharedConfig.Get()); err != nil {
		m.debugf("[TUI] Failed to save config on quit: %v", err)
		// Continue anyway - don't block quit on config save failure
	}
	return *m, tea.Quit
}

// handleEditKey routes key presses to the field edit overlay
func (m model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.commitEdit()
		return m, nil
	case tea.KeyEsc:
		m.editing = false
		m.editInput.Blur()

		if m.adding {
			// The new record never got a URL; roll the add back so no
			// blank record survives to a save
			m.adding = false
			m.applyRecords(m.preAdd.Records)
			m.cursorPos = m.preAdd.CursorPos
			m.clampCursor()
			m.ensureCursorVisible()
			m.setStatusMsg("Add cancelled")
		} else {
			m.setStatusMsg("Edit cancelled")
		}

		m.updateViewportContent()
		return m, nil
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

// handleUpKey handles Up/k key press
func (m *model) handleUpKey() {
	if m.cursorPos > 0 {
		m.cursorPos--
		m.ensureCursorVisible()
		m.updateViewportContent()
	}
}

// handleDownKey handles Down/j key press
func (m *model) handleDownKey() {
	if m.cursorPos < len(m.records)-1 {
		m.cursorPos++
		m.ensureCursorVisible()
		m.updateViewportContent()
	}
}

// handleColumnKey moves the selected column left or right
func (m *model) handleColumnKey(delta int) {
	for i, f := range sii.Fields {
		if f == m.selectedField {
			next := i + delta
			if next >= 0 && next < len(sii.Fields) {
				m.selectedField = sii.Fields[next]
			}
			break
		}
	}
	m.updateViewportContent()
}

// handlePageUpKey handles PageUp key press
func (m *model) handlePageUpKey() {
	m.cursorPos -= pageJumpSize
	if m.cursorPos < 0 {
		m.cursorPos = 0
	}
	m.ensureCursorVisible()
	m.updateViewportContent()
}

// handlePageDownKey handles PageDown key press
func (m *model) handlePageDownKey() {
	m.cursorPos += pageJumpSize
	if m.cursorPos >= len(m.records) {
		m.cursorPos = len(m.records) - 1
	}
	m.ensureCursorVisible()
	m.updateViewportContent()
}

// handleHomeKey handles Home/g key press
func (m *model) handleHomeKey() {
	m.cursorPos = 0
	m.ensureCursorVisible()
	m.updateViewportContent()
}

// handleEndKey handles End/G key press
func (m *model) handleEndKey() {
	if len(m.records) > 0 {
		m.cursorPos = len(m.records) - 1
	}
	m.ensureCursorVisible()
	m.updateViewportContent()
}

// startEditing opens the field edit overlay seeded with the current value
func (m *model) startEditing() {
	if len(m.records) == 0 {
		return
	}

	m.editing = true
	m.editInput.SetValue(m.records[m.cursorPos].FieldValue(m.selectedField))
	m.editInput.CursorEnd()
	m.editInput.Focus()
	m.updateViewportContent()
}

// commitEdit validates the typed value and patches it into the record
func (m *model) commitEdit() {
	value := m.editInput.Value()
	target := m.records[m.cursorPos].Index

	patched, err := editor.PatchField(m.records, target, m.selectedField, value)
	if err != nil {
		m.setStatusMsg(fmt.Sprintf("Invalid %s: %v", m.selectedField, err))
		m.updateViewportContent()
		return
	}

	if m.adding {
		// One undo entry for the whole add: undoing goes back to the
		// list before the record appeared, not to a blank record
		m.adding = false
		m.undoMgr.Push(m.preAdd)
	} else {
		m.pushUndo()
	}

	m.editing = false
	m.editInput.Blur()
	m.applyRecords(patched)
	m.setStatusMsg(fmt.Sprintf("Set %s", m.selectedField))
}

// addRecord inserts a blank record after the cursor and opens the URL
// editor. The undo entry is pushed only when the URL commits; until
// then preAdd holds the state a cancel rolls back to.
func (m *model) addRecord() {
	m.preAdd = EditorState{Records: m.records, CursorPos: m.cursorPos}
	m.adding = true

	rec := sii.NewRecord("", "New Station", "", "", "", "")
	target := 0
	if len(m.records) > 0 {
		target = m.cursorPos + 1
	}

	m.applyRecords(editor.InsertAt(m.records, rec, target))
	m.cursorPos = target
	m.ensureCursorVisible()
	m.updateViewportContent()

	// Jump straight into URL entry; a blank URL won't survive validation
	m.selectedField = sii.FieldURL
	m.startEditing()
}

// deleteRecord removes the record at cursor position
func (m *model) deleteRecord() {
	if len(m.records) == 0 {
		return
	}

	updated, err := editor.RemoveAt(m.records, m.records[m.cursorPos].Index)
	if err != nil {
		m.setStatusMsg(fmt.Sprintf("Delete failed: %v", err))
		return
	}

	m.pushUndo()
	m.applyRecords(updated)
	m.setStatusMsg(fmt.Sprintf("Deleted record (Undo: %d, Redo: %d)", m.undoMgr.UndoSize(), m.undoMgr.RedoSize()))
}

// toggleFavorite flips the favorite flag on the record under the cursor
func (m *model) toggleFavorite() {
	if len(m.records) == 0 {
		return
	}

	rec := m.records[m.cursorPos]
	value := "1"
	if rec.IsFavorite() {
		value = "0"
	}

	patched, err := editor.PatchField(m.records, rec.Index, sii.FieldFavorite, value)
	if err != nil {
		m.setStatusMsg(fmt.Sprintf("Favorite toggle failed: %v", err))
		return
	}

	m.pushUndo()
	m.applyRecords(patched)
}

// moveRecord swaps the record under the cursor with its neighbor
func (m *model) moveRecord(delta int) {
	if len(m.records) == 0 {
		return
	}

	target := m.cursorPos + delta
	if target < 0 || target >= len(m.records) {
		return
	}

	m.pushUndo()
	m.applyRecords(editor.MoveRecord(m.records, m.cursorPos, delta))
	m.cursorPos = target
	m.ensureCursorVisible()
	m.updateViewportContent()
}

// sortRecords sorts the full list by the selected column
func (m *model) sortRecords(dir editor.Direction) {
	if len(m.records) == 0 {
		return
	}

	m.pushUndo()
	m.applyRecords(editor.SortBy(m.records, m.selectedField, dir))
	m.cursorPos = 0
	m.ensureCursorVisible()
	m.updateViewportContent()
	m.setStatusMsg(fmt.Sprintf("Sorted by %s (%s)", m.selectedField, dir))
}

// saveFile writes the session back to disk with rotated backups
func (m *model) saveFile() {
	keep := m.sharedConfig.Get().BackupCount

	if err := m.session.Save(keep); err != nil {
		m.lastSaveErr = err
		m.setStatusMsg(fmt.Sprintf("Save failed: %v", err))
		m.debugf("[TUI] Save failed: %v", err)
		return
	}

	m.lastSaveErr = nil
	// Reload: saving renumbers indices
	m.records = m.session.Records()
	m.clampCursor()
	m.updateViewportContent()
	m.setStatusMsg(fmt.Sprintf("Saved %d records to %s", len(m.records), m.session.Path))
	m.debugf("[TUI] Saved %d records to %s", len(m.records), m.session.Path)
}

// undo restores previous state from undo history using UndoManager
func (m *model) undo() {
	state, ok := m.undoMgr.Undo(EditorState{Records: m.records, CursorPos: m.cursorPos})
	if !ok {
		m.setStatusMsg("Nothing to undo")
		return
	}

	m.applyRecords(state.Records)
	m.cursorPos = state.CursorPos
	m.clampCursor()
	m.ensureCursorVisible()
	m.updateViewportContent()
	m.setStatusMsg(fmt.Sprintf("Undo (Undo: %d, Redo: %d)", m.undoMgr.UndoSize(), m.undoMgr.RedoSize()))
}

// redo restores next state from redo history using UndoManager
func (m *model) redo() {
	state, ok := m.undoMgr.Redo(EditorState{Records: m.records, CursorPos: m.cursorPos})
	if !ok {
		m.setStatusMsg("Nothing to redo")
		return
	}

	m.applyRecords(state.Records)
	m.cursorPos = state.CursorPos
	m.clampCursor()
	m.ensureCursorVisible()
	m.updateViewportContent()
	m.setStatusMsg(fmt.Sprintf("Redo (Undo: %d, Redo: %d)", m.undoMgr.UndoSize(), m.undoMgr.RedoSize()))
}
