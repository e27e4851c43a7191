// Tests for DefaultVisualizer DOT export.
package production

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	reactiontime "github.com/daiboyi110/ReactionTime"
	"github.com/daiboyi110/ReactionTime/builder"
	"github.com/daiboyi110/ReactionTime/statechart"
)

func TestDefaultVisualizer_ExportDOT_Simple(t *testing.T) {
	v := &DefaultVisualizer{}
	s1 := builder.New(1, "s1", builder.Initial(), builder.On(7, 2))
	s2 := builder.New(2, "s2", builder.Final())
	_, err := statechart.NewMachine(s1, s2)
	assert.NoError(t, err)

	dot := v.ExportDOT([]*statechart.State{s1, s2}, 2)

	assert.True(t, strings.HasPrefix(dot, "digraph Statechart {"))
	assert.Contains(t, dot, `"s1" [label="s1" shape=ellipse];`)
	assert.Contains(t, dot, `"s2" [label="s2" peripheries=2 style=filled fillcolor=lightgreen];`)
	assert.Contains(t, dot, `"s1" -> "s2" [label="7"];`)
}

func TestDefaultVisualizer_InternalTransitionIsSelfLoop(t *testing.T) {
	v := &DefaultVisualizer{EventName: func(statechart.EventID) string { return "tick" }}
	s := builder.New(1, "loop", builder.Internal(3), builder.Internal(3))

	dot := v.ExportDOT([]*statechart.State{s}, 0)
	assert.Equal(t, 1, strings.Count(dot, `"loop" -> "loop" [label="tick"];`))
	assert.NotContains(t, dot, "fillcolor")
}

func TestDefaultVisualizer_TrialChart(t *testing.T) {
	m, err := reactiontime.NewMachine(reactiontime.DefaultConfig())
	assert.NoError(t, err)

	states, current := m.Chart()
	v := &DefaultVisualizer{EventName: reactiontime.EventName}
	dot := v.ExportDOT(states, statechart.StateID(current))

	assert.Contains(t, dot, `"IDLE" [label="IDLE" shape=ellipse style=filled fillcolor=lightgreen];`)
	assert.Contains(t, dot, `"WAITING" -> "TOO_SOON" [label="trigger"];`)
	assert.Contains(t, dot, `"WAITING" -> "READY" [label="delay-elapsed"];`)
	assert.Contains(t, dot, `"CYCLING" -> "CYCLING" [label="cycle-tick"];`)
	assert.Contains(t, dot, `"REACH" -> "RESULT" [label="target-hit"];`)
	assert.Contains(t, dot, `"RESULT" -> "IDLE" [label="reset"];`)
	assert.Equal(t, 1, strings.Count(dot, `"READY" -> "RESULT" [label="trigger"];`))
}
