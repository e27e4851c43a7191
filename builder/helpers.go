// Package builder declares statechart states with option functions, so a
// chart can be written as data instead of a sequence of On calls.
package builder

import (
	"github.com/daiboyi110/ReactionTime/statechart"
)

// ID shortcut
type ID = statechart.StateID

// Option pattern for configuring states
type Option func(*statechart.State)

// TransOption configures a single transition.
type TransOption func(*statechart.Transition)

// New creates a state and applies opts in order.
func New(id ID, name string, opts ...Option) *statechart.State {
	s := &statechart.State{
		ID:          id,
		Name:        name,
		Transitions: []*statechart.Transition{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initial marks the state as the machine's initial state.
func Initial() Option {
	return func(s *statechart.State) { s.Initial = true }
}

// Final marks the state as terminal.
func Final() Option {
	return func(s *statechart.State) { s.Final = true }
}

// OnEntry sets the action executed when the state is entered.
func OnEntry(act statechart.Action) Option {
	return func(s *statechart.State) { s.EntryAction = act }
}

// OnExit sets the action executed when the state is exited.
func OnExit(act statechart.Action) Option {
	return func(s *statechart.State) { s.ExitAction = act }
}

// On adds an outbound transition. The target is a stub resolved by
// statechart.NewMachine.
func On(event statechart.EventID, target ID, opts ...TransOption) Option {
	return func(s *statechart.State) {
		t := &statechart.Transition{
			Event:  event,
			Source: s,
			Target: &statechart.State{ID: target},
		}
		for _, opt := range opts {
			opt(t)
		}
		s.Transitions = append(s.Transitions, t)
	}
}

// Internal adds a transition that runs its action without leaving the state.
func Internal(event statechart.EventID, opts ...TransOption) Option {
	return func(s *statechart.State) {
		t := &statechart.Transition{
			Event:  event,
			Source: s,
		}
		for _, opt := range opts {
			opt(t)
		}
		s.Transitions = append(s.Transitions, t)
	}
}

func WithGuard(g statechart.Guard) TransOption {
	return func(t *statechart.Transition) { t.Guard = g }
}

func WithAction(act statechart.Action) TransOption {
	return func(t *statechart.Transition) { t.Action = act }
}
