// Package ui is the terminal front end: a Bubble Tea program that turns
// keys and mouse presses into trial inputs and renders machine changes.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	reactiontime "github.com/daiboyi110/ReactionTime"
	"github.com/daiboyi110/ReactionTime/internal/i18n"
	"github.com/daiboyi110/ReactionTime/stats"
)

// Game accepts inputs and describes the machine. In play mode inputs go
// through the realtime runtime.
type Game interface {
	Send(in reactiontime.Input) error
	Snapshot() reactiontime.Change
}

// Stats is the read side of the statistics store plus per-mode reset.
type Stats interface {
	Summary(mode reactiontime.Mode) stats.Summary
	ResetMode(ctx context.Context, mode reactiontime.Mode) error
}

// Options configures the UI model.
type Options struct {
	Game      Game
	Stats     Stats
	Changes   <-chan reactiontime.Change
	Localizer *i18n.Localizer
	Playfield reactiontime.Bounds
	NoColor   bool
}

// Model renders the game using Bubble Tea.
type Model struct {
	game    Game
	stats   Stats
	changes <-chan reactiontime.Change
	loc     *i18n.Localizer
	bounds  reactiontime.Bounds
	noColor bool

	last   reactiontime.Change
	table  table.Model
	width  int
	height int
	notice string
}

// layout: tabs, status, then the playfield box border.
const (
	playfieldTop  = 3
	playfieldLeft = 1
	chromeRows    = 11
)

// NewModel constructs the UI model.
func NewModel(opts Options) Model {
	loc := opts.Localizer
	if loc == nil {
		loc = i18n.New()
	}
	t := table.New(
		table.WithColumns(columns(loc, 80)),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
		table.WithHeight(len(reactiontime.Modes())),
	)
	t.SetStyles(tableStyles(opts.NoColor))

	m := Model{
		game:    opts.Game,
		stats:   opts.Stats,
		changes: opts.Changes,
		loc:     loc,
		bounds:  opts.Playfield,
		noColor: opts.NoColor,
		last:    opts.Game.Snapshot(),
		table:   t,
		width:   80,
		height:  24,
	}
	m.refreshStats()
	return m
}

// Init waits for the first change.
func (m Model) Init() tea.Cmd {
	return waitForChange(m.changes)
}

// Update consumes key presses, mouse presses and machine changes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = typed.Width, typed.Height
		m.table.SetWidth(typed.Width)
		m.table.SetColumns(columns(m.loc, typed.Width))
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.MouseMsg:
		return m.handleMouse(typed), nil
	case ChangeMsg:
		m.last = typed.Change
		m.refreshStats()
		return m, waitForChange(m.changes)
	}
	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	cols, rows := m.playfieldSize()
	return lipgloss.JoinVertical(lipgloss.Left,
		renderTabs(m.loc, m.last.Mode, m.noColor),
		renderStatus(m.loc, m.last, m.notice, m.noColor),
		renderPlayfield(m.last, cols, rows, m.bounds, m.noColor),
		m.table.View(),
		stylize(m.loc.Text(i18n.MsgHelp), m.noColor, lipgloss.Color("241")),
	)
}

// ChangeMsg wraps a machine change for Bubble Tea.
type ChangeMsg struct {
	Change reactiontime.Change
}

// waitForChange blocks until a change is available.
func waitForChange(changes <-chan reactiontime.Change) tea.Cmd {
	return func() tea.Msg {
		if changes == nil {
			return nil
		}
		c, ok := <-changes
		if !ok {
			return tea.Quit()
		}
		return ChangeMsg{Change: c}
	}
}

func (m Model) playfieldSize() (cols, rows int) {
	return max(m.width-2, 10), max(m.height-chromeRows, 3)
}

func (m *Model) refreshStats() {
	if m.stats == nil {
		return
	}
	m.table.SetRows(rowsForStats(m.loc, m.stats))
	m.table.SetCursor(int(m.last.Mode))
}
