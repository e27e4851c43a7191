// Package statechart is a small flat state-machine engine.
//
// States own an ordered list of transitions. Send picks the first transition
// whose event matches and whose guard passes, so a slice of transitions reads
// like a dispatch table evaluated top to bottom.
package statechart

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type StateID int
type EventID int

type Event struct {
	ID      EventID
	At      time.Time
	Payload any
}

type Action func(ctx context.Context, evt *Event, from StateID, to StateID) error
type Guard func(ctx context.Context, evt *Event, from StateID, to StateID) (bool, error)

// Listener observes every fired transition, internal ones included.
type Listener func(from StateID, to StateID, evt *Event)

// ---

type State struct {
	ID          StateID
	Name        string
	Transitions []*Transition
	EntryAction Action
	ExitAction  Action
	Initial     bool
	Final       bool
}

type Transition struct {
	Event  EventID
	Source *State
	Target *State // nil --> internal transition
	Guard  Guard  // nil --> always passes
	Action Action // nil --> do nothing
}

var (
	ErrNoStates      = errors.New("no states provided")
	ErrNilState      = errors.New("nil state")
	ErrDuplicateID   = errors.New("duplicate state ID")
	ErrManyInitial   = errors.New("more than one initial state")
	ErrUnknownTarget = errors.New("unknown transition target")
	ErrNotStarted    = errors.New("machine not started")
)

type Machine struct {
	states    map[StateID]*State
	order     []*State
	initial   *State
	current   *State
	started   bool
	listeners []Listener
}

//
// Public API
//

func (s *State) OnEntry(action Action) {
	s.EntryAction = action
}

func (s *State) OnExit(action Action) {
	s.ExitAction = action
}

func (s *State) On(evt EventID, target *State, guard Guard, action Action) {
	s.Transitions = append(s.Transitions, &Transition{
		Event:  evt,
		Source: s,
		Target: target,
		Guard:  guard,
		Action: action,
	})
}

func (s *State) String() string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("state(%d)", s.ID)
}

// NewMachine registers states and resolves transition targets by ID, so a
// target may be declared as a bare &State{ID: x} stub.
func NewMachine(states ...*State) (*Machine, error) {
	if len(states) == 0 {
		return nil, ErrNoStates
	}
	m := &Machine{
		states: make(map[StateID]*State, len(states)),
		order:  make([]*State, 0, len(states)),
	}

	for _, s := range states {
		if s == nil {
			return nil, ErrNilState
		}
		if _, exists := m.states[s.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, s.ID)
		}
		m.states[s.ID] = s
		m.order = append(m.order, s)
		if s.Initial {
			if m.initial != nil {
				return nil, ErrManyInitial
			}
			m.initial = s
		}
	}
	if m.initial == nil {
		m.initial = states[0] // First state is assigned as initial.
	}

	for _, s := range states {
		for _, t := range s.Transitions {
			if t == nil {
				continue
			}
			t.Source = s
			if t.Target == nil {
				continue
			}
			target, ok := m.states[t.Target.ID]
			if !ok {
				return nil, fmt.Errorf("%w: %d from %s", ErrUnknownTarget, t.Target.ID, s)
			}
			t.Target = target
		}
	}

	m.current = m.initial
	return m, nil
}

// Start enters the initial state. Calling it again is a no-op.
func (m *Machine) Start(ctx context.Context) error {
	if m.started {
		return nil
	}
	if err := m.current.enterState(ctx, nil, m.current.ID, m.current.ID); err != nil {
		return err
	}
	m.started = true
	return nil
}

// Send evaluates evt against the current state. An event without a matching
// transition is ignored.
func (m *Machine) Send(ctx context.Context, evt Event) error {
	if !m.started {
		return ErrNotStarted
	}

	t, err := m.pickTransition(ctx, m.current, &evt)
	if err != nil {
		return err
	}
	if t == nil {
		return nil
	}

	from := m.current.ID
	next, err := t.doTransition(ctx, &evt)
	m.current = next
	if err != nil {
		return err
	}

	for _, l := range m.listeners {
		l(from, next.ID, &evt)
	}
	return nil
}

func (m *Machine) OnTransition(l Listener) {
	m.listeners = append(m.listeners, l)
}

func (m *Machine) Current() StateID {
	return m.current.ID
}

func (m *Machine) Started() bool {
	return m.started
}

// Lookup returns the registered state with the given ID.
func (m *Machine) Lookup(id StateID) (*State, bool) {
	s, ok := m.states[id]
	return s, ok
}

// States returns the states in registration order.
func (m *Machine) States() []*State {
	out := make([]*State, len(m.order))
	copy(out, m.order)
	return out
}

//
// Helper Functions (internal API)
//

func (s *State) enterState(ctx context.Context, evt *Event, from StateID, to StateID) error {
	if s.EntryAction != nil {
		return s.EntryAction(ctx, evt, from, to)
	}
	return nil
}

func (s *State) exitState(ctx context.Context, evt *Event, from StateID, to StateID) error {
	if s.ExitAction != nil {
		return s.ExitAction(ctx, evt, from, to)
	}
	return nil
}

// pickTransition grabs the first transition, in declaration order, whose event
// matches and whose guard passes.
func (m *Machine) pickTransition(ctx context.Context, s *State, evt *Event) (*Transition, error) {
	for _, t := range s.Transitions {
		if t == nil || t.Event != evt.ID {
			continue
		}
		pass, err := t.evaluateGuard(ctx, evt)
		if err != nil {
			return nil, err
		}
		if pass {
			return t, nil
		}
	}
	return nil, nil
}

func (t *Transition) targetID() StateID {
	if t.Target == nil {
		return t.Source.ID
	}
	return t.Target.ID
}

func (t *Transition) evaluateGuard(ctx context.Context, evt *Event) (bool, error) {
	if t.Guard != nil {
		return t.Guard(ctx, evt, t.Source.ID, t.targetID())
	}
	return true, nil
}

func (t *Transition) evaluateAction(ctx context.Context, evt *Event) error {
	if t.Action != nil {
		return t.Action(ctx, evt, t.Source.ID, t.targetID())
	}
	return nil
}

// doTransition runs a transition and returns the state the machine ends in.
func (t *Transition) doTransition(ctx context.Context, evt *Event) (*State, error) {
	// Internal transition: action only, no exit/entry.
	if t.Target == nil {
		return t.Source, t.evaluateAction(ctx, evt)
	}

	if err := t.Source.exitState(ctx, evt, t.Source.ID, t.Target.ID); err != nil {
		return t.Source, err
	}

	if err := t.evaluateAction(ctx, evt); err != nil {
		// Rewind into the source state.
		if rerr := t.Source.enterState(ctx, nil, t.Source.ID, t.Source.ID); rerr != nil {
			return t.Source, errors.Join(err, rerr)
		}
		return t.Source, err
	}

	if err := t.Target.enterState(ctx, evt, t.Source.ID, t.Target.ID); err != nil {
		return t.Target, err
	}

	return t.Target, nil
}
