package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	reactiontime "github.com/daiboyi110/ReactionTime"
	"github.com/daiboyi110/ReactionTime/internal/i18n"
)

var modeKeys = map[string]reactiontime.Mode{
	"1": reactiontime.ModeSimple,
	"2": reactiontime.ModeReach,
	"3": reactiontime.ModeChoice,
	"4": reactiontime.ModeGoNoGo,
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "space", "enter":
		m.send(reactiontime.Input{Kind: reactiontime.InputTrigger})
	case "x":
		m.send(reactiontime.Input{Kind: reactiontime.InputAlternate})
	case "esc":
		m.send(reactiontime.Input{Kind: reactiontime.InputReset})
	case "r":
		m.resetStats()
	default:
		if mode, ok := modeKeys[key]; ok {
			m.send(reactiontime.Input{Kind: reactiontime.InputSelectMode, Mode: mode})
		}
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if msg.Action != tea.MouseActionPress {
		return m
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		p, ok := m.toPlayfield(msg.X, msg.Y)
		if !ok {
			return m
		}
		if m.last.To == reactiontime.StateReach && m.last.Trial.Target.Contains(p) {
			m.send(reactiontime.Input{Kind: reactiontime.InputTargetHit})
			return m
		}
		m.send(reactiontime.Input{Kind: reactiontime.InputTrigger, Pos: &p})
	case tea.MouseButtonRight:
		m.send(reactiontime.Input{Kind: reactiontime.InputAlternate})
	}
	return m
}

// toPlayfield maps a terminal cell to the center of its playfield area.
func (m Model) toPlayfield(x, y int) (reactiontime.Point, bool) {
	cols, rows := m.playfieldSize()
	cx, cy := x-playfieldLeft, y-playfieldTop
	if cx < 0 || cy < 0 || cx >= cols || cy >= rows {
		return reactiontime.Point{}, false
	}
	return cellCenter(cx, cy, cols, rows, m.bounds), true
}

func cellCenter(cx, cy, cols, rows int, b reactiontime.Bounds) reactiontime.Point {
	return reactiontime.Point{
		X: (float64(cx) + 0.5) * b.Width / float64(cols),
		Y: (float64(cy) + 0.5) * b.Height / float64(rows),
	}
}

func (m *Model) send(in reactiontime.Input) {
	if err := m.game.Send(in); err != nil {
		m.notice = err.Error()
	}
}

func (m *Model) resetStats() {
	if m.stats == nil {
		return
	}
	if err := m.stats.ResetMode(context.Background(), m.last.Mode); err != nil {
		m.notice = m.loc.Textf(i18n.MsgStoreError, err)
		return
	}
	m.notice = m.loc.Text(i18n.MsgStatsReset)
	m.refreshStats()
}
