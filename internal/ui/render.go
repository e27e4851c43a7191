package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	reactiontime "github.com/daiboyi110/ReactionTime"
	"github.com/daiboyi110/ReactionTime/internal/i18n"
)

var stimulusColors = map[reactiontime.Color]lipgloss.Color{
	reactiontime.ColorGo:        lipgloss.Color("#2ecc71"),
	reactiontime.ColorAlternate: lipgloss.Color("#e74c3c"),
	reactiontime.ColorBlue:      lipgloss.Color("#3498db"),
	reactiontime.ColorYellow:    lipgloss.Color("#f1c40f"),
	reactiontime.ColorPurple:    lipgloss.Color("#9b59b6"),
	reactiontime.ColorOrange:    lipgloss.Color("#e67e22"),
}

const (
	waitingColor = lipgloss.Color("#34495e")
	errorColor   = lipgloss.Color("#7f2d2d")
	targetColor  = lipgloss.Color("#ffffff")
)

var modeNames = map[reactiontime.Mode]i18n.MessageID{
	reactiontime.ModeSimple: i18n.MsgModeSimple,
	reactiontime.ModeReach:  i18n.MsgModeReach,
	reactiontime.ModeChoice: i18n.MsgModeChoice,
	reactiontime.ModeGoNoGo: i18n.MsgModeGoNoGo,
}

// renderTabs renders the title and the mode selector.
func renderTabs(loc *i18n.Localizer, active reactiontime.Mode, noColor bool) string {
	parts := []string{stylize(loc.Text(i18n.MsgTitle), noColor, lipgloss.Color("33"))}
	for i, mode := range reactiontime.Modes() {
		label := string(rune('1'+i)) + " " + loc.Text(modeNames[mode])
		if mode == active {
			label = "[" + label + "]"
			if !noColor {
				label = lipgloss.NewStyle().Bold(true).Render(label)
			}
		} else {
			label = " " + label + " "
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

// renderStatus renders the one-line instruction for the current state.
func renderStatus(loc *i18n.Localizer, c reactiontime.Change, notice string, noColor bool) string {
	line := statusText(loc, c)
	if notice != "" {
		line += "  (" + notice + ")"
	}
	return stylize(line, noColor, lipgloss.Color("252"))
}

func statusText(loc *i18n.Localizer, c reactiontime.Change) string {
	switch c.To {
	case reactiontime.StateIdle:
		if c.Mode == reactiontime.ModeGoNoGo {
			return loc.Text(i18n.MsgIdleGoNoGo)
		}
		return loc.Text(i18n.MsgIdle)
	case reactiontime.StateWaiting:
		return loc.Text(i18n.MsgWaiting)
	case reactiontime.StateCycling:
		return loc.Text(i18n.MsgCycling)
	case reactiontime.StateReady:
		if c.Mode != reactiontime.ModeChoice {
			return loc.Text(i18n.MsgReady)
		}
		if c.Trial.StimulusColor == reactiontime.ColorAlternate {
			return loc.Text(i18n.MsgReadyAlternate)
		}
		return loc.Text(i18n.MsgReadyGo)
	case reactiontime.StateReach:
		return loc.Text(i18n.MsgReach)
	case reactiontime.StateResult:
		if c.Mode == reactiontime.ModeReach {
			return loc.Textf(i18n.MsgResultReach, c.Trial.ReactionMs, c.Trial.MovementMs)
		}
		return loc.Textf(i18n.MsgResult, c.Trial.ReactionMs)
	case reactiontime.StateTooSoon:
		return loc.Text(i18n.MsgTooSoon)
	case reactiontime.StateWrongButton:
		return loc.Text(i18n.MsgWrongButton)
	case reactiontime.StateWrongColor:
		return loc.Text(i18n.MsgWrongColor)
	}
	return ""
}

// background picks the playfield fill for a change; ok is false for no fill.
func background(c reactiontime.Change) (lipgloss.Color, bool) {
	switch c.To {
	case reactiontime.StateWaiting:
		return waitingColor, true
	case reactiontime.StateCycling, reactiontime.StateReady:
		col, ok := stimulusColors[c.Trial.StimulusColor]
		return col, ok
	case reactiontime.StateTooSoon, reactiontime.StateWrongButton, reactiontime.StateWrongColor:
		return errorColor, true
	}
	return "", false
}

// renderPlayfield draws the cols x rows playfield in a rounded box. In REACH
// the target's cells are drawn solid.
func renderPlayfield(c reactiontime.Change, cols, rows int, b reactiontime.Bounds, noColor bool) string {
	fill := " "
	if noColor && (c.To == reactiontime.StateCycling || c.To == reactiontime.StateReady) {
		fill = colorGlyph(c.Trial.StimulusColor)
	}

	lines := make([]string, rows)
	for y := 0; y < rows; y++ {
		var sb strings.Builder
		for x := 0; x < cols; x++ {
			if c.To == reactiontime.StateReach && c.Trial.Target.Contains(cellCenter(x, y, cols, rows, b)) {
				sb.WriteString("█")
				continue
			}
			sb.WriteString(fill)
		}
		lines[y] = sb.String()
	}

	body := strings.Join(lines, "\n")
	style := lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	if !noColor {
		if bg, ok := background(c); ok {
			body = lipgloss.NewStyle().Background(bg).Render(body)
		}
		if c.To == reactiontime.StateReach {
			body = lipgloss.NewStyle().Foreground(targetColor).Render(body)
		}
	}
	return style.Render(body)
}

// colorGlyph stands in for a color on terminals without one.
func colorGlyph(c reactiontime.Color) string {
	switch c {
	case reactiontime.ColorGo:
		return "+"
	case reactiontime.ColorAlternate:
		return "x"
	case reactiontime.ColorNone:
		return " "
	}
	return "."
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
