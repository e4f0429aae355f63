package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/skipper/internal/prefs"
	"github.com/five82/skipper/internal/skips"
	"github.com/five82/skipper/internal/state"
)

// focusArea is the component receiving keys in the ready view.
type focusArea int

const (
	focusGrid focusArea = iota
	focusSearch
)

const (
	headerHeight = 3 // title, subtitle, search input
	statusHeight = 1
)

// LoadFunc fetches the skip options for one picker instance.
type LoadFunc func(ctx context.Context) ([]skips.Skip, error)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Load       LoadFunc
	Location   skips.Location
	ThemeName  string
	PrefsPath  string
	Logger     *slog.Logger
	LogHandler *TUILogHandler

	// OnContinue is called with the selected skip each time the user
	// continues.
	OnContinue func(skips.Skip)
}

// statusLine is the transient log message shown in place of the key help.
type statusLine struct {
	text  string
	level slog.Level
	seq   int
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	load       LoadFunc
	location   skips.Location
	prefsPath  string
	logger     *slog.Logger
	onContinue func(skips.Skip)

	// Data state. A reload swaps in a new controller and bumps
	// generation so results from the previous one are dropped.
	controller *state.Controller
	generation int

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	search   textinput.Model
	viewport viewport.Model
	width    int
	height   int
	ready    bool
	focus    focusArea
	cursor   int

	// Overlays
	showHelp bool
	modal    Modal

	status statusLine
}

// New creates a new Bubble Tea model. The controller stays idle until
// Init runs.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	load := opts.Load
	if load == nil {
		load = func(context.Context) ([]skips.Skip, error) {
			return nil, errors.New("no skip data source configured")
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:        ctx,
		load:       load,
		location:   opts.Location,
		prefsPath:  prefsPath,
		logger:     logger,
		onContinue: opts.OnContinue,
		controller: state.NewController(),
		keys:       DefaultKeyMap(),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		search:     textinput.New(),
		viewport:   viewport.New(0, 0),
	}
	m.search.Prompt = "/ "
	m.search.Placeholder = "Search skip size..."
	m.search.CharLimit = 20
	m.applyTheme(GetTheme(themeName))
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.startLoad()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.syncViewport()
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.search.Width = maxInt(msg.Width-len(m.search.Prompt)-1, 1)
		m.ready = true
		return nil

	case spinner.TickMsg:
		if m.controller.Phase() != state.PhaseLoading {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case skipsLoadedMsg:
		return m.handleLoaded(msg)

	case logRecordMsg:
		m.status = statusLine{text: msg.Summary, level: msg.Level, seq: m.status.seq + 1}
		seq := m.status.seq
		return tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{seq: seq}
		})

	case logRecordFadeMsg:
		if msg.seq == m.status.seq {
			m.status.text = ""
		}
		return nil
	}

	// Cursor blink and friends.
	if m.focus == focusSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return cmd
	}
	return nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	if m.showHelp {
		return m.renderHelp()
	}

	switch m.controller.Phase() {
	case state.PhaseReady:
		return m.renderReady()
	case state.PhaseFailed:
		return m.renderFailed()
	default:
		return m.renderLoading()
	}
}

// startLoad moves the current controller to loading and fetches.
func (m *Model) startLoad() tea.Cmd {
	if err := m.controller.BeginLoad(); err != nil {
		return nil
	}
	return tea.Batch(loadSkipsCmd(m.ctx, m.load, m.generation), m.spinner.Tick)
}

// reload replaces the controller with a fresh one and fetches again.
func (m *Model) reload() tea.Cmd {
	m.controller = state.NewController()
	m.generation++
	m.cursor = 0
	m.search.SetValue("")
	m.blurSearch()
	return m.startLoad()
}

func (m *Model) handleLoaded(msg skipsLoadedMsg) tea.Cmd {
	if msg.generation != m.generation {
		return nil
	}
	if err := m.controller.Complete(msg.records, msg.err); err != nil {
		return nil
	}
	m.cursor = 0
	m.logger.Debug("picker load finished",
		"generation", msg.generation,
		"phase", m.controller.Phase().String(),
		"count", len(msg.records),
	)
	return nil
}

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return cmd
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return nil
	}

	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if m.focus == focusSearch {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return nil
	case key.Matches(msg, m.keys.CycleTheme):
		return m.cycleTheme()
	}

	switch m.controller.Phase() {
	case state.PhaseReady:
		return m.handleGridKey(msg)
	case state.PhaseFailed:
		if key.Matches(msg, m.keys.Reload) {
			return m.reload()
		}
	}
	return nil
}

// handleGridKey processes keyboard input for the card grid.
func (m *Model) handleGridKey(msg tea.KeyMsg) tea.Cmd {
	visible := m.controller.Visible()
	cols := gridColumns(m.width)

	switch {
	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		return m.search.Focus()

	case key.Matches(msg, m.keys.Back):
		m.controller.Deselect()
		return nil

	case key.Matches(msg, m.keys.Continue):
		return m.continueWithSelection()

	case key.Matches(msg, m.keys.Select):
		if m.cursor >= len(visible) {
			return nil
		}
		id := visible[m.cursor].ID
		if err := m.controller.Select(id); err != nil {
			return logCmd(m.logger, slog.LevelError, "select skip", "id", id, "error", err)
		}
		return nil
	}

	if len(visible) == 0 {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor+cols < len(visible) {
			m.cursor += cols
		}
	case key.Matches(msg, m.keys.Left):
		if m.cursor%cols > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor%cols < cols-1 && m.cursor+1 < len(visible) {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(visible) - 1
	}
	return nil
}

// handleSearchKey processes keyboard input while the search input has
// focus. Every edit updates the query immediately.
func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Escape):
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.applyQuery()
			return nil
		}
		m.blurSearch()
		return nil
	case key.Matches(msg, m.keys.Confirm):
		m.blurSearch()
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyQuery()
	return cmd
}

func (m *Model) applyQuery() {
	query := m.search.Value()
	if query == m.controller.Query() {
		return
	}
	m.controller.SetQuery(query)
	m.cursor = 0
}

func (m *Model) blurSearch() {
	m.search.Blur()
	m.focus = focusGrid
}

// continueWithSelection confirms the selected skip. Without a selection
// it does nothing.
func (m *Model) continueWithSelection() tea.Cmd {
	selected, ok := m.controller.Continue()
	if !ok {
		return nil
	}
	m.modal = newConfirmModal(selected)
	if m.onContinue != nil {
		m.onContinue(selected)
	}
	return nil
}

func (m *Model) cycleTheme() tea.Cmd {
	m.applyTheme(GetTheme(NextTheme(m.theme.Name)))
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
		return logCmd(m.logger, slog.LevelWarn, "save theme preference", "path", m.prefsPath, "error", err)
	}
	return nil
}

func (m *Model) applyTheme(theme Theme) {
	m.theme = theme
	m.help = newHelp(theme)
	m.help.Width = m.width

	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))
	m.search.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))
	m.search.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Text))
	m.search.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Faint))
}

// syncViewport sizes the grid viewport around the chrome, refreshes its
// content and scrolls the cursor row into view.
func (m *Model) syncViewport() {
	if !m.ready || m.controller.Phase() != state.PhaseReady {
		return
	}
	snap := m.controller.Snapshot()
	if m.cursor >= len(snap.Visible) {
		m.cursor = maxInt(len(snap.Visible)-1, 0)
	}

	height := m.height - headerHeight - statusHeight
	if snap.HasSelection() {
		height -= footerHeight
	}
	m.viewport.Width = m.width
	m.viewport.Height = maxInt(height, 1)
	m.viewport.SetContent(m.renderGrid(snap.Visible, snap.Selected, m.width))

	top, bottom := cursorRowBounds(m.cursor, gridColumns(m.width))
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(bottom - m.viewport.Height + 1)
	}
}

// renderLoading renders the spinner shown while the fetch is in flight.
func (m Model) renderLoading() string {
	styles := m.theme.Styles()
	content := m.spinner.View() + " " + styles.MutedText.Render("Loading skip options...")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderFailed renders the terminal error state.
func (m Model) renderFailed() string {
	styles := m.theme.Styles()
	message := "Error loading skip options"
	if err := m.controller.Err(); err != nil {
		message += ": " + err.Error()
	}
	hints := styles.KeyHint.Render("r") + styles.MutedText.Render(" Reload  ") +
		styles.KeyHint.Render("q") + styles.MutedText.Render(" Quit")
	content := lipgloss.JoinVertical(lipgloss.Center,
		styles.DangerText.Render(truncate(message, maxInt(m.width-2, 1))),
		"",
		hints,
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderReady renders the header, search input, card grid, footer and
// status line.
func (m Model) renderReady() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if selected, ok := m.controller.Selected(); ok {
		b.WriteString(m.renderFooter(selected))
		b.WriteString("\n")
	}
	b.WriteString(m.renderStatusLine())
	return b.String()
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	title := styles.Title.Render("Choose Your Skip Size")
	if loc := locationLabel(m.location); loc != "" {
		title += styles.FaintText.Render("  ·  ") + styles.MutedText.Render(loc)
	}
	subtitle := styles.MutedText.Render("Select the skip size that best suits your project")

	lines := []string{
		truncate(title, m.width),
		truncate(subtitle, m.width),
		m.search.View(),
	}
	return strings.Join(lines, "\n")
}

// renderStatusLine shows the latest log record, else key help with the
// match count on the right.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles()

	if m.status.text != "" {
		style := styles.WarningText
		if m.status.level >= slog.LevelError {
			style = styles.DangerText
		}
		return style.Render(truncate(m.status.text, m.width))
	}

	count := styles.FaintText.Render(fmt.Sprintf("%d of %d skips", len(m.controller.Visible()), len(m.controller.Records())))
	hints := m.help.ShortHelpView(m.keys.ShortHelp())
	gap := m.width - lipgloss.Width(hints) - lipgloss.Width(count)
	if gap < 1 {
		return truncate(hints, m.width)
	}
	return hints + strings.Repeat(" ", gap) + count
}

func locationLabel(loc skips.Location) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{loc.Postcode, loc.Area} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Messages

type skipsLoadedMsg struct {
	generation int
	records    []skips.Skip
	err        error
}

// Commands

func loadSkipsCmd(ctx context.Context, load LoadFunc, generation int) tea.Cmd {
	return func() tea.Msg {
		records, err := load(ctx)
		return skipsLoadedMsg{generation: generation, records: records, err: err}
	}
}

// logCmd logs off the update goroutine. The TUI handler sends records
// back into the program, which would block if done from Update.
func logCmd(logger *slog.Logger, level slog.Level, msg string, args ...any) tea.Cmd {
	return func() tea.Msg {
		logger.Log(context.Background(), level, msg, args...)
		return nil
	}
}

// Run starts the Bubble Tea program and blocks until it exits. A
// cancelled context ends the program without error.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	if opts.LogHandler != nil {
		opts.LogHandler.SetProgram(p)
	}
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
