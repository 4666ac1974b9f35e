// ABOUTME: Read-only station list viewer with live file watching
// ABOUTME: Monitors the sii file for changes and redisplays with viewport scrolling

package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"streams-editor/sii"
)

var watchCmd = &cobra.Command{
	Use:   "watch <live_streams.sii>",
	Short: "Watch the station list and redisplay on file changes",
	Long: `Watch shows the station list read-only and reloads it whenever the
file changes on disk, e.g. while the game or another tool rewrites it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatchMode(args[0])
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// watchModel holds the state for the read-only station viewer
type watchModel struct {
	path        string
	records     []sii.Record
	viewport    viewport.Model
	width       int
	height      int
	fileWatcher *fsnotify.Watcher
	lastReload  time.Time
	errorMsg    string
	ready       bool
	cursorPos   int
}

// Key bindings for watch mode
type watchKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Reload   key.Binding
	Quit     key.Binding
}

var watchKeys = watchKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "go to top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "go to bottom"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Styles for watch mode
var (
	watchTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	watchHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("10"))

	watchStatusStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("236")).
				Foreground(lipgloss.Color("15")).
				Padding(0, 1)

	watchHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	watchErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	watchCursorStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("240")).
				Foreground(lipgloss.Color("15")).
				Bold(true)
)

// fileChangeMsg is sent when the watched file changes
type fileChangeMsg struct{}

// reloadCompleteMsg is sent after a document reload completes
type reloadCompleteMsg struct {
	records []sii.Record
	err     error
}

// runWatchMode starts the read-only mode with file watching
func runWatchMode(path string) error {
	records, err := loadRecords(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(path); err != nil {
		watcher.Close()

		return fmt.Errorf("failed to watch file: %w", err)
	}

	m := watchModel{
		path:        path,
		records:     records,
		fileWatcher: watcher,
		lastReload:  time.Now(),
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		watcher.Close()

		return fmt.Errorf("watch mode error: %w", err)
	}

	watcher.Close()

	return nil
}

// loadRecords reads and decodes the station list
func loadRecords(path string) ([]sii.Record, error) {
	document, err := sii.LoadDocument(path)
	if err != nil {
		return nil, err
	}

	return sii.Decode(document)
}

// Init initializes the watch model
func (m watchModel) Init() tea.Cmd {
	return tea.Batch(
		waitForFileChange(m.fileWatcher),
		tea.EnterAltScreen,
	)
}

// waitForFileChange returns a command that waits for file system events
func waitForFileChange(watcher *fsnotify.Watcher) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				// Only react to write events
				if event.Op&fsnotify.Write == fsnotify.Write {
					// Debounce: wait a bit for atomic writes to complete
					time.Sleep(100 * time.Millisecond)

					return fileChangeMsg{}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				// Log error but continue watching
				debugf("[WATCHER] Error: %v", err)
			}
		}
	}
}

// reloadDocument loads the station list in the background
func reloadDocument(path string) tea.Cmd {
	return func() tea.Msg {
		records, err := loadRecords(path)
		if err != nil {
			return reloadCompleteMsg{err: err}
		}

		return reloadCompleteMsg{records: records}
	}
}

// ensureCursorVisible scrolls viewport to keep cursor in view
func (m *watchModel) ensureCursorVisible() {
	viewportTop := m.viewport.YOffset
	viewportBottom := m.viewport.YOffset + m.viewport.Height - 1

	if m.cursorPos < viewportTop {
		m.viewport.SetYOffset(m.cursorPos)
	} else if m.cursorPos > viewportBottom {
		m.viewport.SetYOffset(m.cursorPos - m.viewport.Height + 1)
	}
}

// Update handles messages and updates the model
func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3 // Title + header row + separator
		footerHeight := 2 // Status + help

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.viewport.SetContent(m.renderStationContent())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}

		return m, nil

	case fileChangeMsg:
		// File changed, reload the list
		return m, tea.Batch(
			reloadDocument(m.path),
			waitForFileChange(m.fileWatcher), // Continue watching
		)

	case reloadCompleteMsg:
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("Error reloading: %v", msg.err)
		} else {
			m.records = msg.records
			m.lastReload = time.Now()
			m.errorMsg = ""

			if m.cursorPos >= len(m.records) && len(m.records) > 0 {
				m.cursorPos = len(m.records) - 1
			}

			m.viewport.SetContent(m.renderStationContent())
		}

		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, watchKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, watchKeys.Up):
			if m.cursorPos > 0 {
				m.cursorPos--
				m.ensureCursorVisible()
				m.viewport.SetContent(m.renderStationContent())
			}

		case key.Matches(msg, watchKeys.Down):
			if m.cursorPos < len(m.records)-1 {
				m.cursorPos++
				m.ensureCursorVisible()
				m.viewport.SetContent(m.renderStationContent())
			}

		case key.Matches(msg, watchKeys.PageUp):
			m.cursorPos -= m.viewport.Height
			if m.cursorPos < 0 {
				m.cursorPos = 0
			}
			m.ensureCursorVisible()
			m.viewport.SetContent(m.renderStationContent())

		case key.Matches(msg, watchKeys.PageDown):
			m.cursorPos += m.viewport.Height
			if m.cursorPos >= len(m.records) {
				m.cursorPos = len(m.records) - 1
			}
			if m.cursorPos < 0 {
				m.cursorPos = 0
			}
			m.ensureCursorVisible()
			m.viewport.SetContent(m.renderStationContent())

		case key.Matches(msg, watchKeys.Top):
			m.cursorPos = 0
			m.viewport.GotoTop()
			m.viewport.SetContent(m.renderStationContent())

		case key.Matches(msg, watchKeys.Bottom):
			if len(m.records) > 0 {
				m.cursorPos = len(m.records) - 1
			}
			m.viewport.GotoBottom()
			m.viewport.SetContent(m.renderStationContent())

		case key.Matches(msg, watchKeys.Reload):
			return m, reloadDocument(m.path)
		}
	}

	// Update viewport
	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

// View renders the view
func (m watchModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	title := watchTitleStyle.Render(fmt.Sprintf("Station Viewer: %s", m.path))

	header := watchHeaderStyle.Render(fmt.Sprintf("%-3s %-3s %-30s %-16s %-4s %-7s %s",
		"#", "Fav", "Name", "Genre", "Lang", "Bitrate", "URL"))

	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s",
		title, header, m.viewport.View(), m.renderWatchStatus(), m.renderWatchHelp())
}

// renderStationContent renders the full station list for the viewport
func (m watchModel) renderStationContent() string {
	var content string

	for i, rec := range m.records {
		fav := " "
		if rec.IsFavorite() {
			fav = "*"
		}

		line := fmt.Sprintf("%-3d %-3s %-30s %-16s %-4s %-7s %s",
			rec.Index,
			fav,
			truncate(rec.Name, 30),
			truncate(rec.Genre, 16),
			truncate(rec.Lang, 4),
			truncate(rec.Bitrate, 7),
			truncate(rec.URL, 60),
		)

		// Highlight cursor line
		if i == m.cursorPos {
			line = watchCursorStyle.Render(line)
		}

		if i < len(m.records)-1 {
			content += line + "\n"
		} else {
			content += line // No trailing newline on last record
		}
	}

	return content
}

// renderWatchStatus renders the status bar
func (m watchModel) renderWatchStatus() string {
	reloadTime := m.lastReload.Format("15:04:05")

	var statusText string
	if m.errorMsg != "" {
		statusText = fmt.Sprintf("%d stations | Cursor: %d | %s",
			len(m.records),
			m.cursorPos+1,
			watchErrorStyle.Render(m.errorMsg),
		)
	} else {
		statusText = fmt.Sprintf("%d stations | Cursor: %d | Last reload: %s",
			len(m.records),
			m.cursorPos+1,
			reloadTime,
		)
	}

	return watchStatusStyle.Width(m.width).Render(statusText)
}

// renderWatchHelp renders the help text
func (m watchModel) renderWatchHelp() string {
	return watchHelpStyle.Render("↑/↓: move cursor | r: reload | q: quit")
}
