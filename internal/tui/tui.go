// Package tui provides a Bubble Tea terminal user interface for liqgen.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/handiism/liquidsoap-conf-gen/internal/config"
	"github.com/handiism/liquidsoap-conf-gen/internal/generate"
	"github.com/handiism/liquidsoap-conf-gen/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	playlistStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateScanning
	StateWriting
	StateComplete
	StateError
)

// modes is the cycle order of the m key.
var modes = []model.Mode{model.ModeRandom, model.ModeRotation, model.ModeFallback}

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   generate.ProgressLevel
}

// eventBuffer collects generator events between ticks.
type eventBuffer struct {
	mu     sync.Mutex
	events []generate.ProgressEvent
}

func (b *eventBuffer) push(e generate.ProgressEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *eventBuffer) drain() []generate.ProgressEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	events := b.events
	b.events = nil
	return events
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	playlists []string
	err       error

	// Generation context
	ctx    context.Context
	cancel context.CancelFunc

	generator *generate.Generator
	events    *eventBuffer

	// run numbers generations so results of a cancelled run are dropped
	run int

	// Inspection progress
	inspected int32
	total     int32
	written   int

	// Options
	mode        int
	telnet      bool
	metadataLog bool
	verbose     bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel() Model {
	settings := config.DefaultSettings()
	settings.ApplyEnv()

	ti := textinput.New()
	ti.Placeholder = settings.PlaylistDir
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	mode := 0
	if m, ok := model.ParseMode(settings.Mode); ok {
		for i := range modes {
			if modes[i] == m {
				mode = i
			}
		}
	}

	return Model{
		state:       StateInput,
		textInput:   ti,
		spinner:     sp,
		progress:    prog,
		settings:    settings,
		logs:        make([]LogEntry, 0),
		ctx:         ctx,
		cancel:      cancel,
		mode:        mode,
		telnet:      settings.Telnet,
		metadataLog: settings.MetadataLog,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ScanDoneMsg is sent when discovery and inspection complete.
	ScanDoneMsg struct {
		Run       int
		Playlists []string
		Err       error
	}

	// WriteDoneMsg is sent when the script has been written.
	WriteDoneMsg struct {
		Run   int
		Bytes int
		Err   error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateScanning || m.state == StateWriting {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "tab":
			// Switch between the directory field and the option keys
			if m.state == StateInput {
				if m.textInput.Focused() {
					m.textInput.Blur()
				} else {
					cmds = append(cmds, m.textInput.Focus())
				}
				return m, tea.Batch(cmds...)
			}

		case "enter":
			if m.state == StateInput {
				m.startGeneration()
				return m, tea.Batch(m.scan(), m.spinner.Tick, m.tickProgress())
			}

		case "m":
			if m.optionKeys() {
				m.mode = (m.mode + 1) % len(modes)
			}

		case "t":
			if m.optionKeys() {
				m.telnet = !m.telnet
			}

		case "l":
			if m.optionKeys() {
				m.metadataLog = !m.metadataLog
			}

		case "v":
			if m.optionKeys() {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError || m.optionKeys() {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new run
				m.state = StateInput
				m.logs = nil
				m.playlists = nil
				m.err = nil
				m.inspected = 0
				m.total = 0
				m.written = 0
				m.generator = nil
				m.events = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.SetValue("")
				cmds = append(cmds, m.textInput.Focus())
				return m, tea.Batch(cmds...)
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ScanDoneMsg:
		if msg.Run != m.run {
			break
		}
		m.drainEvents()
		switch {
		case m.state != StateScanning:
			// Cancelled while scanning
		case errors.Is(msg.Err, generate.ErrNoPlaylists):
			m.state = StateError
			m.err = fmt.Errorf("no %s playlists found in %s", m.settings.Extension, m.settings.PlaylistDir)
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.playlists = msg.Playlists
			m.state = StateWriting
			cmds = append(cmds, m.write())
		}

	case WriteDoneMsg:
		if msg.Run != m.run {
			break
		}
		m.drainEvents()
		if m.state != StateWriting {
			break
		}
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.written = msg.Bytes
			m.state = StateComplete
		}

	case TickMsg:
		m.drainEvents()
		if m.generator != nil && m.state == StateScanning {
			m.inspected, m.total = m.generator.GetProgress()

			var percent float64
			if m.total > 0 {
				percent = float64(m.inspected) / float64(m.total)
			}
			progressCmd := m.progress.SetPercent(percent)
			cmds = append(cmds, progressCmd, m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput && m.textInput.Focused() {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// optionKeys reports whether letter keys toggle options rather than type.
func (m Model) optionKeys() bool {
	return m.state == StateInput && !m.textInput.Focused()
}

// startGeneration applies the options and creates the generator.
func (m *Model) startGeneration() {
	if dir := strings.TrimSpace(m.textInput.Value()); dir != "" {
		m.settings.PlaylistDir = dir
	}
	m.settings.Mode = modes[m.mode].String()
	m.settings.Telnet = m.telnet
	m.settings.MetadataLog = m.metadataLog

	m.run++
	m.events = &eventBuffer{}
	m.generator = generate.NewGenerator(m.settings, m.events.push)
	m.state = StateScanning
}

// drainEvents moves buffered generator events into the log view.
func (m *Model) drainEvents() {
	if m.events == nil {
		return
	}
	for _, e := range m.events.drain() {
		// Filter verbose messages if not in verbose mode
		if e.Level == generate.LevelVerbose && !m.verbose {
			continue
		}
		m.logs = append(m.logs, LogEntry{Message: e.Message, Level: e.Level})
	}
	// Keep only last 10 logs
	if len(m.logs) > 10 {
		m.logs = m.logs[len(m.logs)-10:]
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("📻 Liquidsoap Config Generator"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Turn a folder of playlists into a radio station"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateScanning:
		b.WriteString(m.viewScanning())
	case StateWriting:
		b.WriteString(m.viewWriting())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func check(on bool) string {
	if on {
		return "[×]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Playlist directory:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Mode: %-8s (m)\n", modes[m.mode]))
	b.WriteString(fmt.Sprintf("  %s Telnet commands on port %d (t)\n", check(m.telnet), m.settings.TelnetPort))
	b.WriteString(fmt.Sprintf("  %s Now-playing log (l)\n", check(m.metadataLog)))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (v)\n", check(m.verbose)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Output: %s", m.settings.OutputFile)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewScanning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Scanning %s...", m.settings.PlaylistDir)))
	b.WriteString("\n\n")

	if m.total > 0 {
		b.WriteString(m.progress.ViewAs(float64(m.inspected) / float64(m.total)))
		b.WriteString("\n")
		b.WriteString(infoStyle.Render(fmt.Sprintf("Inspected: %d/%d playlists", m.inspected, m.total)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewWriting() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Writing %s...", m.settings.OutputFile)))
	b.WriteString("\n\n")
	b.WriteString(m.renderPlaylists())
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	p := m.generator.Params()
	box := boxStyle.Render(fmt.Sprintf(
		"✨ Script Generated!\n\n"+
			"Playlists: %d\n"+
			"Output: %s (%s)\n"+
			"Stream: http://%s:%d/%s at %s\n"+
			"Mode: %s\n\n"+
			"Run: liquidsoap %s",
		len(m.playlists),
		m.settings.OutputFile,
		humanize.Bytes(uint64(m.written)),
		p.Sink.Host, p.Sink.Port, p.Sink.Mount, p.Sink.Bitrate,
		m.generator.Mode(),
		m.settings.OutputFile,
	))
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderPlaylists() string {
	if len(m.playlists) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(successStyle.Render(fmt.Sprintf("Found %d playlist(s):", len(m.playlists))))
	b.WriteString("\n")
	for _, name := range m.playlists {
		b.WriteString(playlistStyle.Render(fmt.Sprintf("  ♪ %s", name)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case generate.LevelError:
			style = errorStyle
			prefix = "✗"
		case generate.LevelWarning:
			style = warningStyle
			prefix = "!"
		case generate.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case generate.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		if m.textInput.Focused() {
			return "enter: generate • tab: options • esc: quit"
		}
		return "enter: generate • m: mode • t: telnet • l: log • v: verbose • tab: edit directory • q: quit"
	case StateScanning, StateWriting:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new run • q: quit"
	}
	return ""
}

// scan discovers and inspects playlists in the background.
func (m Model) scan() tea.Cmd {
	g, ctx, run := m.generator, m.ctx, m.run
	return func() tea.Msg {
		if err := g.Initialize(ctx); err != nil {
			return ScanDoneMsg{Run: run, Err: err}
		}
		return ScanDoneMsg{Run: run, Playlists: g.GetPlaylistNames()}
	}
}

// write renders and writes the script in the background.
func (m Model) write() tea.Cmd {
	g, ctx, run := m.generator, m.ctx, m.run
	return func() tea.Msg {
		n, err := g.Write(ctx)
		return WriteDoneMsg{Run: run, Bytes: n, Err: err}
	}
}

// Run starts the TUI application.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
