// Package production provides integrations around the trial machine:
// change publishing and chart visualization.
package production

import (
	"bytes"
	"fmt"

	"github.com/daiboyi110/ReactionTime/statechart"
)

// DefaultVisualizer renders a flat chart as Graphviz DOT.
type DefaultVisualizer struct {
	// EventName labels edges; the numeric ID is used when nil.
	EventName func(statechart.EventID) string
}

// ExportDOT generates Graphviz DOT source for the states, highlighting current.
func (v *DefaultVisualizer) ExportDOT(states []*statechart.State, current statechart.StateID) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph Statechart {
  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)

	for _, s := range states {
		renderState(&buf, s, s.ID == current)
	}

	for _, edge := range v.collectEdges(states) {
		buf.WriteString(fmt.Sprintf("  %q -> %q [label=%q];\n", edge.From, edge.To, edge.Label))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// Edge represents a transition edge.
type Edge struct {
	From  string
	To    string
	Label string
}

// collectEdges collects transitions in declaration order. Guarded variants
// of the same move collapse into one edge.
func (v *DefaultVisualizer) collectEdges(states []*statechart.State) []Edge {
	var edges []Edge
	seen := make(map[Edge]bool)
	for _, s := range states {
		for _, t := range s.Transitions {
			to := s
			if t.Target != nil {
				to = t.Target
			}
			e := Edge{From: stateLabel(s), To: stateLabel(to), Label: v.label(t.Event)}
			if !seen[e] {
				seen[e] = true
				edges = append(edges, e)
			}
		}
	}
	return edges
}

func (v *DefaultVisualizer) label(id statechart.EventID) string {
	if v.EventName != nil {
		return v.EventName(id)
	}
	return fmt.Sprint(int(id))
}

func stateLabel(s *statechart.State) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprint(int(s.ID))
}

func renderState(buf *bytes.Buffer, s *statechart.State, active bool) {
	attrs := ""
	switch {
	case s.Initial:
		attrs += " shape=ellipse"
	case s.Final:
		attrs += " peripheries=2"
	}
	if active {
		attrs += " style=filled fillcolor=lightgreen"
	}
	name := stateLabel(s)
	buf.WriteString(fmt.Sprintf("  %q [label=%q%s];\n", name, name, attrs))
}
