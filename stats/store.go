// Package stats keeps per-mode latency records and error counters, and
// persists them through a Persister.
package stats

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	reactiontime "github.com/daiboyi110/ReactionTime"
)

// Store is the full statistics surface: the write side the trial machine
// records into plus the queries the presentation layer reads.
type Store interface {
	reactiontime.Recorder

	ResetMode(ctx context.Context, mode reactiontime.Mode) error
	Mean(mode reactiontime.Mode) (float64, bool)
	Min(mode reactiontime.Mode) (int64, bool)
	Count(mode reactiontime.Mode) int
	Errors(mode reactiontime.Mode) int
	Records(mode reactiontime.Mode) []reactiontime.LatencyRecord
	Summary(mode reactiontime.Mode) Summary
}

// Persister loads and saves whole snapshots.
type Persister interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
}

// Snapshot is the persisted form of a Memory store, keyed by mode name.
type Snapshot struct {
	Modes   map[string]ModeSnapshot `json:"modes" yaml:"modes"`
	SavedAt time.Time               `json:"savedAt" yaml:"savedAt"`
}

type ModeSnapshot struct {
	Records []reactiontime.LatencyRecord `json:"records" yaml:"records"`
	Errors  int                          `json:"errors" yaml:"errors"`
}

type modeStats struct {
	records []reactiontime.LatencyRecord
	errors  int
}

// Memory is an in-memory Store. With a persister attached, every mutation
// is saved before it returns; a failed save leaves the in-memory change in
// place and reports the error.
type Memory struct {
	mu        sync.RWMutex
	modes     map[reactiontime.Mode]*modeStats
	persister Persister
	now       func() time.Time
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty, unpersisted store.
func NewMemory() *Memory {
	return &Memory{
		modes: make(map[reactiontime.Mode]*modeStats),
		now:   time.Now,
	}
}

// Open loads a store from p and keeps saving to it.
func Open(ctx context.Context, p Persister) (*Memory, error) {
	snap, err := p.Load(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load stats")
	}
	m := NewMemory()
	if err := m.restore(snap); err != nil {
		return nil, err
	}
	m.persister = p
	return m, nil
}

func (m *Memory) Append(ctx context.Context, mode reactiontime.Mode, rec reactiontime.LatencyRecord) error {
	if !mode.Valid() {
		return goerr.Wrap(reactiontime.ErrInvalidMode, "append", goerr.V("mode", int(mode)))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.mode(mode)
	s.records = append(s.records, rec)
	return m.save(ctx)
}

func (m *Memory) IncrementError(ctx context.Context, mode reactiontime.Mode) error {
	if !mode.Valid() {
		return goerr.Wrap(reactiontime.ErrInvalidMode, "increment error", goerr.V("mode", int(mode)))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mode(mode).errors++
	return m.save(ctx)
}

// ResetMode clears the records and error counter of one mode.
func (m *Memory) ResetMode(ctx context.Context, mode reactiontime.Mode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.modes[mode]; !ok {
		return nil
	}
	delete(m.modes, mode)
	return m.save(ctx)
}

// Mean is the arithmetic mean reaction time; false when there are no records.
func (m *Memory) Mean(mode reactiontime.Mode) (float64, bool) {
	s := m.Summary(mode)
	return s.Mean, s.Count > 0
}

// Min is the fastest reaction time; false when there are no records.
func (m *Memory) Min(mode reactiontime.Mode) (int64, bool) {
	s := m.Summary(mode)
	return s.Min, s.Count > 0
}

func (m *Memory) Count(mode reactiontime.Mode) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.modes[mode]; ok {
		return len(s.records)
	}
	return 0
}

func (m *Memory) Errors(mode reactiontime.Mode) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.modes[mode]; ok {
		return s.errors
	}
	return 0
}

// Records returns a copy of the mode's records in insertion order.
func (m *Memory) Records(mode reactiontime.Mode) []reactiontime.LatencyRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.modes[mode]; ok {
		return slices.Clone(s.records)
	}
	return nil
}

func (m *Memory) Summary(mode reactiontime.Mode) Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.modes[mode]
	if !ok {
		return Summary{Mode: mode}
	}
	return summarize(mode, s.records, s.errors)
}

// Snapshot copies the store's contents.
func (m *Memory) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot()
}

func (m *Memory) mode(mode reactiontime.Mode) *modeStats {
	s, ok := m.modes[mode]
	if !ok {
		s = &modeStats{}
		m.modes[mode] = s
	}
	return s
}

func (m *Memory) snapshot() Snapshot {
	snap := Snapshot{
		Modes:   make(map[string]ModeSnapshot, len(m.modes)),
		SavedAt: m.now().UTC(),
	}
	for _, mode := range slices.Sorted(maps.Keys(m.modes)) {
		s := m.modes[mode]
		snap.Modes[mode.String()] = ModeSnapshot{
			Records: slices.Clone(s.records),
			Errors:  s.errors,
		}
	}
	return snap
}

func (m *Memory) restore(snap Snapshot) error {
	for name, ms := range snap.Modes {
		mode, err := reactiontime.ParseMode(name)
		if err != nil {
			return goerr.Wrap(err, "unknown mode in stats snapshot", goerr.V("mode", name))
		}
		m.modes[mode] = &modeStats{
			records: slices.Clone(ms.Records),
			errors:  ms.Errors,
		}
	}
	return nil
}

func (m *Memory) save(ctx context.Context) error {
	if m.persister == nil {
		return nil
	}
	if err := m.persister.Save(ctx, m.snapshot()); err != nil {
		return goerr.Wrap(err, "failed to save stats")
	}
	return nil
}
