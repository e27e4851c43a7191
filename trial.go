package reactiontime

import (
	"context"
	"time"
)

// Trial is one attempt, from arming to a terminal outcome. It is discarded
// when the machine returns to IDLE.
type Trial struct {
	ID            string
	Mode          Mode
	StimulusOnset time.Time
	ReachOnset    time.Time
	StimulusColor Color
	ClickPosition Point
	Target        Rect
	ReactionMs    int64
	MovementMs    int64
	CycleTarget   int
	CyclesShown   int
}

// LatencyRecord is a completed measurement. MovementMs is only set in REACH mode.
type LatencyRecord struct {
	TrialID    string    `json:"trialId" yaml:"trialId"`
	ReactionMs int64     `json:"reactionMs" yaml:"reactionMs"`
	MovementMs int64     `json:"movementMs,omitempty" yaml:"movementMs,omitempty"`
	RecordedAt time.Time `json:"recordedAt" yaml:"recordedAt"`
}

// Recorder is the write side of the statistics store.
type Recorder interface {
	Append(ctx context.Context, mode Mode, rec LatencyRecord) error
	IncrementError(ctx context.Context, mode Mode) error
}

type discardRecorder struct{}

func (discardRecorder) Append(context.Context, Mode, LatencyRecord) error { return nil }
func (discardRecorder) IncrementError(context.Context, Mode) error        { return nil }

// InputKind enumerates external inputs.
type InputKind int

const (
	InputTrigger InputKind = iota + 1
	InputAlternate
	InputTargetHit
	InputReset
	InputSelectMode
)

func (k InputKind) String() string {
	switch k {
	case InputTrigger:
		return "trigger"
	case InputAlternate:
		return "alternate"
	case InputTargetHit:
		return "target-hit"
	case InputReset:
		return "reset"
	case InputSelectMode:
		return "select-mode"
	}
	return "unknown"
}

// Input is an external event. A zero At is stamped with the machine clock.
// Pos is only read for triggers; Mode only for InputSelectMode.
type Input struct {
	Kind InputKind
	At   time.Time
	Pos  *Point
	Mode Mode
}

// Change is published after every transition.
type Change struct {
	From     State
	To       State
	Mode     Mode
	Trial    Trial
	HasTrial bool
	At       time.Time
}

// Publisher receives state changes for the presentation layer.
type Publisher interface {
	Publish(ctx context.Context, change Change) error
}
