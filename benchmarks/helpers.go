// Package benchmarks provides end-to-end benchmarks for trials and the
// statistics backends.
package benchmarks

import (
	"fmt"
	"time"

	reactiontime "github.com/daiboyi110/ReactionTime"
)

// FastConfig is a trial config with delays short enough to run many
// trials on the realtime runtime.
func FastConfig(mode reactiontime.Mode) reactiontime.Config {
	cfg := reactiontime.DefaultConfig()
	cfg.Mode = mode
	cfg.MinDelay, cfg.MaxDelay = time.Millisecond, 2*time.Millisecond
	cfg.CycleInterval = time.Millisecond
	cfg.MinCycles, cfg.MaxCycles = 1, 1
	return cfg
}

// Record builds the i-th synthetic latency record.
func Record(i int) reactiontime.LatencyRecord {
	return reactiontime.LatencyRecord{
		TrialID:    fmt.Sprintf("bench-%d", i),
		ReactionMs: int64(150 + i%200),
		RecordedAt: time.Unix(0, int64(i)*int64(time.Millisecond)).UTC(),
	}
}
