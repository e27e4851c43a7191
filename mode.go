package reactiontime

import (
	"errors"
	"fmt"
	"strings"

	"github.com/daiboyi110/ReactionTime/statechart"
)

var ErrInvalidMode = errors.New("invalid mode")

// Mode selects the trial variant.
type Mode int

const (
	ModeSimple Mode = iota
	ModeReach
	ModeChoice
	ModeGoNoGo
)

var modeNames = [...]string{
	ModeSimple: "simple",
	ModeReach:  "reach",
	ModeChoice: "choice",
	ModeGoNoGo: "go-no-go",
}

// Modes returns every mode in display order.
func Modes() []Mode {
	return []Mode{ModeSimple, ModeReach, ModeChoice, ModeGoNoGo}
}

func (m Mode) Valid() bool {
	return m >= ModeSimple && m <= ModeGoNoGo
}

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode accepts the String form, case-insensitively. "gonogo" and
// "go_no_go" are accepted as well.
func ParseMode(s string) (Mode, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	if norm == "gonogo" {
		norm = "go-no-go"
	}
	for _, m := range Modes() {
		if modeNames[m] == norm {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// State is the trial's position in the chart.
type State int

const (
	StateIdle State = iota
	StateWaiting
	StateCycling
	StateReady
	StateReach
	StateResult
	StateTooSoon
	StateWrongButton
	StateWrongColor
)

var stateNames = [...]string{
	StateIdle:        "IDLE",
	StateWaiting:     "WAITING",
	StateCycling:     "CYCLING",
	StateReady:       "READY",
	StateReach:       "REACH",
	StateResult:      "RESULT",
	StateTooSoon:     "TOO_SOON",
	StateWrongButton: "WRONG_BUTTON",
	StateWrongColor:  "WRONG_COLOR",
}

func (s State) String() string {
	if s < StateIdle || s > StateWrongColor {
		return "UNKNOWN"
	}
	return stateNames[s]
}

// Terminal reports whether the state ends a trial.
func (s State) Terminal() bool {
	switch s {
	case StateResult, StateTooSoon, StateWrongButton, StateWrongColor:
		return true
	}
	return false
}

func (s State) id() statechart.StateID {
	return statechart.StateID(s)
}

// Color is a symbolic stimulus identity; rendering decides what it looks like.
type Color int

const (
	ColorNone Color = iota
	ColorGo
	ColorAlternate
	ColorBlue
	ColorYellow
	ColorPurple
	ColorOrange
)

// distractors are the non-go colors shown while cycling.
var distractors = []Color{ColorAlternate, ColorBlue, ColorYellow, ColorPurple, ColorOrange}

func (c Color) String() string {
	switch c {
	case ColorNone:
		return "none"
	case ColorGo:
		return "go"
	case ColorAlternate:
		return "alternate"
	case ColorBlue:
		return "blue"
	case ColorYellow:
		return "yellow"
	case ColorPurple:
		return "purple"
	case ColorOrange:
		return "orange"
	}
	return fmt.Sprintf("color(%d)", int(c))
}
