package reactiontime

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidConfig = errors.New("invalid trial config")

// Config holds the timing and geometry of a trial.
type Config struct {
	// MinDelay and MaxDelay bound the pre-stimulus wait, drawn uniformly
	// from [MinDelay, MaxDelay).
	MinDelay time.Duration
	MaxDelay time.Duration

	// CycleInterval is the go/no-go color cycle period.
	CycleInterval time.Duration

	// MinCycles and MaxCycles bound the number of distractor colors shown
	// before the go color, inclusive.
	MinCycles int
	MaxCycles int

	ReachDistance float64
	TargetSize    float64
	Playfield     Bounds

	// AutoRestart re-arms a fresh trial on the trigger that leaves a
	// terminal state.
	AutoRestart bool

	Mode Mode
}

// DefaultConfig returns a Config with the classic game's values.
func DefaultConfig() Config {
	return Config{
		MinDelay:      1000 * time.Millisecond,
		MaxDelay:      4000 * time.Millisecond,
		CycleInterval: 500 * time.Millisecond,
		MinCycles:     3,
		MaxCycles:     8,
		ReachDistance: 200,
		TargetSize:    60,
		Playfield:     Bounds{Width: 800, Height: 480},
		Mode:          ModeSimple,
	}
}

// applyDefaults fills in zero-valued fields with defaults.
func (c Config) applyDefaults() Config {
	d := DefaultConfig()
	if c.MinDelay == 0 && c.MaxDelay == 0 {
		c.MinDelay, c.MaxDelay = d.MinDelay, d.MaxDelay
	}
	if c.CycleInterval == 0 {
		c.CycleInterval = d.CycleInterval
	}
	if c.MinCycles == 0 && c.MaxCycles == 0 {
		c.MinCycles, c.MaxCycles = d.MinCycles, d.MaxCycles
	}
	if c.ReachDistance == 0 {
		c.ReachDistance = d.ReachDistance
	}
	if c.TargetSize == 0 {
		c.TargetSize = d.TargetSize
	}
	if c.Playfield == (Bounds{}) {
		c.Playfield = d.Playfield
	}
	return c
}

func (c Config) Validate() error {
	switch {
	case c.MinDelay < 0:
		return fmt.Errorf("%w: negative min delay %v", ErrInvalidConfig, c.MinDelay)
	case c.MaxDelay <= c.MinDelay:
		return fmt.Errorf("%w: delay range [%v, %v) is empty", ErrInvalidConfig, c.MinDelay, c.MaxDelay)
	case c.CycleInterval <= 0:
		return fmt.Errorf("%w: cycle interval must be positive", ErrInvalidConfig)
	case c.MinCycles < 1 || c.MaxCycles < c.MinCycles:
		return fmt.Errorf("%w: cycle range [%d, %d]", ErrInvalidConfig, c.MinCycles, c.MaxCycles)
	case c.ReachDistance < 0:
		return fmt.Errorf("%w: negative reach distance", ErrInvalidConfig)
	case c.TargetSize <= 0:
		return fmt.Errorf("%w: target size must be positive", ErrInvalidConfig)
	case c.Playfield.Width <= 0 || c.Playfield.Height <= 0:
		return fmt.Errorf("%w: playfield %vx%v", ErrInvalidConfig, c.Playfield.Width, c.Playfield.Height)
	case !c.Mode.Valid():
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrInvalidMode)
	}
	return nil
}
