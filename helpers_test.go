package reactiontime_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	reactiontime "github.com/daiboyi110/ReactionTime"
	"github.com/daiboyi110/ReactionTime/testutil"
)

type memRecorder struct {
	mu      sync.Mutex
	records map[reactiontime.Mode][]reactiontime.LatencyRecord
	errs    map[reactiontime.Mode]int
	fail    error
}

func newMemRecorder() *memRecorder {
	return &memRecorder{
		records: map[reactiontime.Mode][]reactiontime.LatencyRecord{},
		errs:    map[reactiontime.Mode]int{},
	}
}

func (r *memRecorder) Append(_ context.Context, mode reactiontime.Mode, rec reactiontime.LatencyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.records[mode] = append(r.records[mode], rec)
	return nil
}

func (r *memRecorder) IncrementError(_ context.Context, mode reactiontime.Mode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.errs[mode]++
	return nil
}

func (r *memRecorder) count(mode reactiontime.Mode) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records[mode])
}

func (r *memRecorder) errorCount(mode reactiontime.Mode) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errs[mode]
}

func (r *memRecorder) last(mode reactiontime.Mode) reactiontime.LatencyRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	recs := r.records[mode]
	return recs[len(recs)-1]
}

type changeLog struct {
	mu      sync.Mutex
	changes []reactiontime.Change
}

func (l *changeLog) Publish(_ context.Context, c reactiontime.Change) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.changes = append(l.changes, c)
	return nil
}

func (l *changeLog) all() []reactiontime.Change {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]reactiontime.Change(nil), l.changes...)
}

// scriptedRand hands out queued values first, then falls back to a seeded PCG.
type scriptedRand struct {
	ints     []int
	floats   []float64
	fallback *rand.Rand
}

func newScriptedRand(seed uint64, ints ...int) *scriptedRand {
	return &scriptedRand{ints: ints, fallback: rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15))}
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) > 0 {
		v := r.ints[0]
		r.ints = r.ints[1:]
		return v % n
	}
	return r.fallback.IntN(n)
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) > 0 {
		v := r.floats[0]
		r.floats = r.floats[1:]
		return v
	}
	return r.fallback.Float64()
}

type harness struct {
	m     *reactiontime.Machine
	sched *testutil.ManualScheduler
	rec   *memRecorder
	log   *changeLog
	rng   *scriptedRand
}

func newHarness(t *testing.T, cfg reactiontime.Config, ints ...int) *harness {
	t.Helper()
	h := &harness{
		sched: testutil.NewManualScheduler(),
		rec:   newMemRecorder(),
		log:   &changeLog{},
		rng:   newScriptedRand(1, ints...),
	}
	m, err := reactiontime.NewMachine(cfg,
		reactiontime.WithScheduler(h.sched),
		reactiontime.WithClock(h.sched.Clock),
		reactiontime.WithRand(h.rng),
		reactiontime.WithRecorder(h.rec),
		reactiontime.WithPublisher(h.log),
	)
	require.NoError(t, err)
	h.m = m
	return h
}

func modeConfig(mode reactiontime.Mode) reactiontime.Config {
	cfg := reactiontime.DefaultConfig()
	cfg.Mode = mode
	return cfg
}

var errStoreDown = errors.New("store down")
