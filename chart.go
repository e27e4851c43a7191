package reactiontime

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/daiboyi110/ReactionTime/builder"
	"github.com/daiboyi110/ReactionTime/statechart"
)

// Chart inputs. The first four come from the outside world, the last two
// from the trial's own timer lease.
const (
	evTrigger statechart.EventID = iota + 1
	evAlternate
	evTargetHit
	evReset
	evDelayElapsed
	evCycleTick
)

var eventNames = map[statechart.EventID]string{
	evTrigger:      "trigger",
	evAlternate:    "alternate",
	evTargetHit:    "target-hit",
	evReset:        "reset",
	evDelayElapsed: "delay-elapsed",
	evCycleTick:    "cycle-tick",
}

// EventName names a chart event for display.
func EventName(id statechart.EventID) string {
	if name, ok := eventNames[id]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(id))
}

var inputEvents = map[InputKind]statechart.EventID{
	InputTrigger:   evTrigger,
	InputAlternate: evAlternate,
	InputTargetHit: evTargetHit,
	InputReset:     evReset,
}

type effect func(m *Machine, ctx context.Context, evt *statechart.Event)

// row is one line of the transition table: (from, input, modes, when) -> (to, do).
// An empty modes list matches any mode. stay marks an internal transition.
type row struct {
	from  State
	on    statechart.EventID
	modes []Mode
	when  func(t *Trial) bool
	to    State
	stay  bool
	do    effect
}

var (
	armed     = []Mode{ModeSimple, ModeReach, ModeChoice}
	simple    = []Mode{ModeSimple}
	reach     = []Mode{ModeReach}
	choice    = []Mode{ModeChoice}
	goNoGo    = []Mode{ModeGoNoGo}
	allStates = []State{
		StateIdle, StateWaiting, StateCycling, StateReady, StateReach,
		StateResult, StateTooSoon, StateWrongButton, StateWrongColor,
	}
)

func showing(c Color) func(t *Trial) bool {
	return func(t *Trial) bool { return t.StimulusColor == c }
}

func cyclesRemaining(t *Trial) bool {
	return t.CyclesShown < t.CycleTarget
}

// Rows are evaluated top to bottom; the first enabled row wins.
var transitionTable = []row{
	{from: StateIdle, on: evTrigger, modes: armed, to: StateWaiting, do: (*Machine).beginTrial},
	{from: StateIdle, on: evTrigger, modes: goNoGo, to: StateCycling, do: (*Machine).beginTrial},

	{from: StateWaiting, on: evTrigger, to: StateTooSoon},
	{from: StateWaiting, on: evAlternate, modes: choice, to: StateTooSoon},
	{from: StateWaiting, on: evDelayElapsed, to: StateReady},

	{from: StateCycling, on: evCycleTick, when: cyclesRemaining, stay: true, do: (*Machine).showDistractor},
	{from: StateCycling, on: evCycleTick, to: StateReady},
	{from: StateCycling, on: evTrigger, to: StateWrongColor, do: (*Machine).countError},

	{from: StateReady, on: evTrigger, modes: simple, to: StateResult, do: (*Machine).recordReaction},
	{from: StateReady, on: evTrigger, modes: reach, to: StateReach, do: (*Machine).startReach},
	{from: StateReady, on: evTrigger, modes: choice, when: showing(ColorGo), to: StateResult, do: (*Machine).recordReaction},
	{from: StateReady, on: evAlternate, modes: choice, when: showing(ColorAlternate), to: StateResult, do: (*Machine).recordReaction},
	{from: StateReady, on: evTrigger, modes: choice, when: showing(ColorAlternate), to: StateWrongButton, do: (*Machine).countError},
	{from: StateReady, on: evAlternate, modes: choice, when: showing(ColorGo), to: StateWrongButton, do: (*Machine).countError},
	{from: StateReady, on: evTrigger, modes: goNoGo, when: showing(ColorGo), to: StateResult, do: (*Machine).recordReaction},

	{from: StateReach, on: evTargetHit, to: StateResult, do: (*Machine).recordMovement},

	{from: StateResult, on: evTrigger, to: StateIdle},
	{from: StateTooSoon, on: evTrigger, to: StateIdle},
	{from: StateWrongButton, on: evTrigger, to: StateIdle},
	{from: StateWrongColor, on: evTrigger, to: StateIdle},
}

// resetRows sends every state but IDLE back to IDLE on reset.
func resetRows() []row {
	rows := make([]row, 0, len(allStates)-1)
	for _, s := range allStates {
		if s != StateIdle {
			rows = append(rows, row{from: s, on: evReset, to: StateIdle})
		}
	}
	return rows
}

// entryHooks own the timer lease: states that need a timer acquire it on
// entry, everything else releases it.
var entryHooks = map[State]func(m *Machine, at time.Time){
	StateIdle:        (*Machine).enterIdle,
	StateWaiting:     (*Machine).armDelay,
	StateCycling:     (*Machine).startCycle,
	StateReady:       (*Machine).presentStimulus,
	StateReach:       (*Machine).presentTarget,
	StateResult:      (*Machine).endTrial,
	StateTooSoon:     (*Machine).endTrial,
	StateWrongButton: (*Machine).endTrial,
	StateWrongColor:  (*Machine).endTrial,
}

var exitHooks = map[State]func(m *Machine){
	StateWaiting: (*Machine).releaseTimer,
	StateCycling: (*Machine).releaseTimer,
}

func (m *Machine) buildChart() (*statechart.Machine, error) {
	perState := make(map[State][]builder.Option, len(allStates))
	for _, r := range append(slices.Clone(transitionTable), resetRows()...) {
		perState[r.from] = append(perState[r.from], m.compile(r))
	}

	states := make([]*statechart.State, 0, len(allStates))
	for _, s := range allStates {
		var opts []builder.Option
		if s == StateIdle {
			opts = append(opts, builder.Initial())
		}
		if s.Terminal() {
			opts = append(opts, builder.Final())
		}
		if hook, ok := entryHooks[s]; ok {
			opts = append(opts, builder.OnEntry(m.entryAction(hook)))
		}
		if hook, ok := exitHooks[s]; ok {
			opts = append(opts, builder.OnExit(func(context.Context, *statechart.Event, statechart.StateID, statechart.StateID) error {
				hook(m)
				return nil
			}))
		}
		opts = append(opts, perState[s]...)
		states = append(states, builder.New(s.id(), s.String(), opts...))
	}
	return statechart.NewMachine(states...)
}

func (m *Machine) compile(r row) builder.Option {
	guard := func(ctx context.Context, evt *statechart.Event, from, to statechart.StateID) (bool, error) {
		if len(r.modes) > 0 && !slices.Contains(r.modes, m.mode) {
			return false, nil
		}
		if r.when != nil && (m.trial == nil || !r.when(m.trial)) {
			return false, nil
		}
		return true, nil
	}

	var action statechart.Action
	if r.do != nil {
		do := r.do
		action = func(ctx context.Context, evt *statechart.Event, from, to statechart.StateID) error {
			do(m, ctx, evt)
			return nil
		}
	}

	if r.stay {
		return builder.Internal(r.on, builder.WithGuard(guard), builder.WithAction(action))
	}
	return builder.On(r.on, r.to.id(), builder.WithGuard(guard), builder.WithAction(action))
}

func (m *Machine) entryAction(hook func(*Machine, time.Time)) statechart.Action {
	return func(ctx context.Context, evt *statechart.Event, from, to statechart.StateID) error {
		at := m.clock.Now()
		if evt != nil && !evt.At.IsZero() {
			at = evt.At
		}
		hook(m, at)
		return nil
	}
}
