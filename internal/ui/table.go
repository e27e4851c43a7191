package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	reactiontime "github.com/daiboyi110/ReactionTime"
	"github.com/daiboyi110/ReactionTime/internal/i18n"
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	if noColor {
		styles.Selected = lipgloss.NewStyle()
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// columns sizes the stats columns for the terminal width.
func columns(loc *i18n.Localizer, width int) []table.Column {
	ids := []i18n.MessageID{
		i18n.MsgColMode, i18n.MsgColCount, i18n.MsgColMean, i18n.MsgColBest,
		i18n.MsgColStdDev, i18n.MsgColErrors, i18n.MsgColMovement,
	}
	w := max((width-2*len(ids))/len(ids), 6)
	cols := make([]table.Column, len(ids))
	for i, id := range ids {
		cols[i] = table.Column{Title: loc.Text(id), Width: w}
	}
	return cols
}

// rowsForStats converts per-mode summaries into table rows.
func rowsForStats(loc *i18n.Localizer, s Stats) []table.Row {
	none := loc.Text(i18n.MsgNoData)
	rows := make([]table.Row, 0, len(reactiontime.Modes()))
	for _, mode := range reactiontime.Modes() {
		sum := s.Summary(mode)
		row := table.Row{
			loc.Text(modeNames[mode]),
			fmt.Sprint(sum.Count),
			none, none, none,
			fmt.Sprint(sum.Errors),
			none,
		}
		if sum.Count > 0 {
			row[2] = formatMs(sum.Mean)
			row[3] = fmt.Sprintf("%d", sum.Min)
			row[4] = formatMs(sum.StdDev)
		}
		if sum.MeanMovement > 0 {
			row[6] = formatMs(sum.MeanMovement)
		}
		rows = append(rows, row)
	}
	return rows
}

func formatMs(v float64) string {
	return fmt.Sprintf("%.0f", v)
}
