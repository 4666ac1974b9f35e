// ABOUTME: Terminal UI model and core state management
// ABOUTME: Bubble Tea model implementation for interactive station editing

// Package tui provides an interactive terminal UI for editing station lists.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"streams-editor/config"
	"streams-editor/editor"
	"streams-editor/sii"
)

// Layout constants for UI dimensions
const (
	// UI chrome heights (elements that reduce available viewport space)
	titleHeight     = 2 // Title bar
	headerHeight    = 1 // Column headers for the station table
	statusBarHeight = 1 // Bottom status bar
	helpHeight      = 1 // Help text line
	spacingHeight   = 1 // Vertical spacing between elements
	totalUIChrome   = titleHeight + headerHeight + statusBarHeight + helpHeight + spacingHeight

	// Minimum viewport dimensions to ensure usability
	minViewportWidth  = 20
	minViewportHeight = 5
)

// Navigation and interaction constants
const (
	pageJumpSize          = 10              // Number of records to jump on PageUp/PageDown
	statusMessageDuration = 5 * time.Second // How long to show transient status messages
	maxUndoStackSize      = 50              // Maximum undo/redo history items
)

// model holds the TUI state
type model struct {
	// Dependencies (concrete types following Go philosophy)
	session      *editor.Session
	sharedConfig *config.SharedConfig
	debugf       func(string, ...interface{})
	configPath   string

	// Record list state
	records       []sii.Record
	cursorPos     int       // Current cursor position in record list
	selectedField sii.Field // Column targeted by edit/sort keys
	lastSaveErr   error

	// Field editing overlay
	editing   bool
	editInput textinput.Model

	// Set while a freshly added record awaits its URL; preAdd holds the
	// list as it was before the add so a cancel leaves no blank record
	adding bool
	preAdd EditorState

	// UI state
	width        int
	height       int
	quitting     bool
	statusMsg    string    // Temporary status message (e.g., "Saved")
	statusMsgAge time.Time // When status message was set

	viewport viewport.Model
	undoMgr  *UndoManager
}

// Key bindings
type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Quit  key.Binding
	// Record navigation
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	// Record editing
	Edit     key.Binding
	Add      key.Binding
	Delete   key.Binding
	Favorite key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	SortAsc  key.Binding
	SortDesc key.Binding
	Save     key.Binding
	Undo     key.Binding
	Redo     key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "navigate"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "prev column"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next column"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("home/g", "first record"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("end/G", "last record"),
	),
	Edit: key.NewBinding(
		key.WithKeys("enter", "e"),
		key.WithHelp("enter", "edit field"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add record"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete record"),
	),
	Favorite: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "toggle favorite"),
	),
	MoveUp: key.NewBinding(
		key.WithKeys("shift+up", "K"),
		key.WithHelp("shift+↑", "move up"),
	),
	MoveDown: key.NewBinding(
		key.WithKeys("shift+down", "J"),
		key.WithHelp("shift+↓", "move down"),
	),
	SortAsc: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort by column"),
	),
	SortDesc: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "sort desc"),
	),
	Save: key.NewBinding(
		key.WithKeys("w", "ctrl+s"),
		key.WithHelp("w", "write file"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "undo"),
	),
	Redo: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "redo"),
	),
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("10"))

	selectedColStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("11"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("52")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("240")).
			Foreground(lipgloss.Color("15"))

	favoriteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("13"))
)

// Options contains configuration for running the TUI
type Options struct {
	ConfigPath string // Config file path, saved on quit
	DebugLog   bool   // Enable debug logging to file
}

// Run starts the TUI mode with injected dependencies
func Run(opts Options, session *editor.Session, sharedConfig *config.SharedConfig, debugf func(string, ...interface{})) error {
	m := initModel(opts, session, sharedConfig, debugf)

	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// initModel creates the initial model with injected dependencies
func initModel(opts Options, session *editor.Session, sharedConfig *config.SharedConfig, debugf func(string, ...interface{})) model {
	input := textinput.New()
	input.CharLimit = 256

	return model{
		session:      session,
		sharedConfig: sharedConfig,
		debugf:       debugf,
		configPath:   opts.ConfigPath,

		records:       session.Records(),
		cursorPos:     0,
		selectedField: sii.FieldURL,
		editInput:     input,

		viewport: viewport.New(0, 0), // Width and height set on first WindowSizeMsg
		undoMgr:  NewUndoManager(maxUndoStackSize),
	}
}

// Init initializes the model
func (m model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// ========== Helpers ==========

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return s[:maxLen]
	}

	return s[:maxLen-3] + "..."
}

// setStatusMsg sets a transient status message with current timestamp
func (m *model) setStatusMsg(msg string) {
	m.statusMsg = msg
	m.statusMsgAge = time.Now()
}

// ensureCursorVisible adjusts viewport offset to keep cursor visible with middle-of-screen scrolling
// Implements vim/less style scrolling using ViewportManager
func (m *model) ensureCursorVisible() {
	vm := NewViewportManager(m.viewport.Height, m.cursorPos, len(m.records))
	offset := vm.CalculateOffset()
	m.viewport.SetYOffset(offset)
}

// clampCursor keeps the cursor inside the record list after edits
func (m *model) clampCursor() {
	if m.cursorPos >= len(m.records) {
		m.cursorPos = len(m.records) - 1
	}
	if m.cursorPos < 0 {
		m.cursorPos = 0
	}
}

// pushUndo saves current state to undo history using UndoManager
func (m *model) pushUndo() {
	m.undoMgr.Push(EditorState{
		Records:   m.records,
		CursorPos: m.cursorPos,
	})
}

// applyRecords replaces the working record list and syncs it to the session
func (m *model) applyRecords(records []sii.Record) {
	m.records = records
	m.session.Replace(records)
	m.clampCursor()
	m.ensureCursorVisible()
	m.updateViewportContent()
}
