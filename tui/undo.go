// ABOUTME: Undo/redo history manager for station list editing
// ABOUTME: Single history slice with a cursor, bounded by a maximum size

package tui

import "streams-editor/sii"

// EditorState captures a snapshot of the record list for undo/redo
type EditorState struct {
	Records   []sii.Record
	CursorPos int
}

// UndoManager manages undo/redo history with maximum size limit
type UndoManager struct {
	history []EditorState
	cursor  int // Number of states we can undo to (index of current checkpoint + 1)
	maxSize int
}

// NewUndoManager creates a new undo manager with the specified max history size
func NewUndoManager(maxSize int) *UndoManager {
	return &UndoManager{
		history: []EditorState{},
		cursor:  0,
		maxSize: maxSize,
	}
}

// Push saves a new state as a checkpoint
func (um *UndoManager) Push(state EditorState) {
	// Make a deep copy of records
	stateCopy := EditorState{
		Records:   append([]sii.Record{}, state.Records...),
		CursorPos: state.CursorPos,
	}

	// Truncate history at cursor (clears redo states)
	um.history = um.history[:um.cursor]

	// Append new state
	um.history = append(um.history, stateCopy)
	um.cursor++

	// Enforce max size
	if len(um.history) > um.maxSize {
		um.history = um.history[1:]
		um.cursor--
	}
}

// Undo restores the previous state
// Returns the state and true if undo was successful, or zero value and false if nothing to undo
func (um *UndoManager) Undo(currentState EditorState) (EditorState, bool) {
	if um.cursor == 0 {
		return EditorState{}, false
	}

	// Save current state after cursor position
	stateCopy := EditorState{
		Records:   append([]sii.Record{}, currentState.Records...),
		CursorPos: currentState.CursorPos,
	}

	// Extend history if needed to store current state
	if um.cursor >= len(um.history) {
		um.history = append(um.history, stateCopy)
	} else {
		um.history[um.cursor] = stateCopy
	}

	// Move cursor back
	um.cursor--

	// Return previous state
	return um.history[um.cursor], true
}

// Redo restores the next state
// Returns the state and true if redo was successful, or zero value and false if nothing to redo
func (um *UndoManager) Redo(currentState EditorState) (EditorState, bool) {
	if um.cursor >= len(um.history)-1 {
		return EditorState{}, false
	}

	// Save current state at cursor position
	stateCopy := EditorState{
		Records:   append([]sii.Record{}, currentState.Records...),
		CursorPos: currentState.CursorPos,
	}
	um.history[um.cursor] = stateCopy

	// Move cursor forward
	um.cursor++

	// Return next state
	return um.history[um.cursor], true
}

// UndoSize returns the number of states we can undo to
func (um *UndoManager) UndoSize() int {
	return um.cursor
}

// RedoSize returns the number of states we can redo to
func (um *UndoManager) RedoSize() int {
	// After undo, history[cursor] is current state, history[cursor+1..] are redo states
	available := len(um.history) - um.cursor - 1
	if available < 0 {
		return 0
	}

	return available
}

// Clear clears the history
func (um *UndoManager) Clear() {
	um.history = []EditorState{}
	um.cursor = 0
}
