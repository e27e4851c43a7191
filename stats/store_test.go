package stats_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reactiontime "github.com/daiboyi110/ReactionTime"
	"github.com/daiboyi110/ReactionTime/stats"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func rec(id string, reaction, movement int64) reactiontime.LatencyRecord {
	return reactiontime.LatencyRecord{TrialID: id, ReactionMs: reaction, MovementMs: movement, RecordedAt: t0}
}

func TestEmptyModeHasNoAggregates(t *testing.T) {
	s := stats.NewMemory()

	_, ok := s.Mean(reactiontime.ModeSimple)
	assert.False(t, ok)
	_, ok = s.Min(reactiontime.ModeSimple)
	assert.False(t, ok)
	assert.Zero(t, s.Count(reactiontime.ModeSimple))
	assert.Zero(t, s.Errors(reactiontime.ModeSimple))
	assert.Nil(t, s.Records(reactiontime.ModeSimple))
}

func TestMeanMinCount(t *testing.T) {
	ctx := context.Background()
	s := stats.NewMemory()

	for i, ms := range []int64{300, 200, 250} {
		require.NoError(t, s.Append(ctx, reactiontime.ModeChoice, rec(string(rune('a'+i)), ms, 0)))
	}

	mean, ok := s.Mean(reactiontime.ModeChoice)
	require.True(t, ok)
	assert.InDelta(t, 250, mean, 1e-9)

	lo, ok := s.Min(reactiontime.ModeChoice)
	require.True(t, ok)
	assert.EqualValues(t, 200, lo)
	assert.Equal(t, 3, s.Count(reactiontime.ModeChoice))

	ids := []string{}
	for _, r := range s.Records(reactiontime.ModeChoice) {
		ids = append(ids, r.TrialID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids, "insertion order")
}

func TestModesAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := stats.NewMemory()

	require.NoError(t, s.Append(ctx, reactiontime.ModeSimple, rec("x", 100, 0)))
	require.NoError(t, s.IncrementError(ctx, reactiontime.ModeGoNoGo))
	require.NoError(t, s.IncrementError(ctx, reactiontime.ModeGoNoGo))

	assert.Equal(t, 1, s.Count(reactiontime.ModeSimple))
	assert.Zero(t, s.Errors(reactiontime.ModeSimple))
	assert.Zero(t, s.Count(reactiontime.ModeGoNoGo))
	assert.Equal(t, 2, s.Errors(reactiontime.ModeGoNoGo))

	require.NoError(t, s.ResetMode(ctx, reactiontime.ModeGoNoGo))
	assert.Zero(t, s.Errors(reactiontime.ModeGoNoGo))
	assert.Equal(t, 1, s.Count(reactiontime.ModeSimple))
}

func TestRecordsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := stats.NewMemory()
	require.NoError(t, s.Append(ctx, reactiontime.ModeSimple, rec("x", 100, 0)))

	recs := s.Records(reactiontime.ModeSimple)
	recs[0].ReactionMs = 1

	lo, _ := s.Min(reactiontime.ModeSimple)
	assert.EqualValues(t, 100, lo)
}

func TestInvalidModeRejected(t *testing.T) {
	s := stats.NewMemory()
	err := s.Append(context.Background(), reactiontime.Mode(-1), rec("x", 1, 0))
	assert.ErrorIs(t, err, reactiontime.ErrInvalidMode)
	assert.ErrorIs(t, s.IncrementError(context.Background(), reactiontime.Mode(7)), reactiontime.ErrInvalidMode)
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	s := stats.NewMemory()

	require.NoError(t, s.Append(ctx, reactiontime.ModeReach, rec("a", 200, 400)))
	require.NoError(t, s.Append(ctx, reactiontime.ModeReach, rec("b", 400, 600)))
	require.NoError(t, s.IncrementError(ctx, reactiontime.ModeReach))

	sum := s.Summary(reactiontime.ModeReach)
	assert.Equal(t, 2, sum.Count)
	assert.Equal(t, 1, sum.Errors)
	assert.InDelta(t, 300, sum.Mean, 1e-9)
	assert.EqualValues(t, 200, sum.Min)
	assert.InDelta(t, 100, sum.StdDev, 1e-9)
	assert.InDelta(t, 500, sum.MeanMovement, 1e-9)
	assert.Equal(t, "b", sum.Last.TrialID)

	empty := s.Summary(reactiontime.ModeSimple)
	assert.Zero(t, empty.Count)
	assert.Equal(t, reactiontime.ModeSimple, empty.Mode)
}

func TestConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	s := stats.NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.Append(ctx, reactiontime.ModeSimple, rec("c", int64(j), 0))
				_, _ = s.Mean(reactiontime.ModeSimple)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800, s.Count(reactiontime.ModeSimple))
}

type failingPersister struct {
	saves int
}

var errDisk = errors.New("disk full")

func (p *failingPersister) Load(context.Context) (stats.Snapshot, error) { return stats.Snapshot{}, nil }
func (p *failingPersister) Save(context.Context, stats.Snapshot) error {
	p.saves++
	return errDisk
}

func TestSaveFailureKeepsMutation(t *testing.T) {
	p := &failingPersister{}
	s, err := stats.Open(context.Background(), p)
	require.NoError(t, err)

	err = s.Append(context.Background(), reactiontime.ModeSimple, rec("x", 10, 0))
	assert.ErrorIs(t, err, errDisk)
	assert.Equal(t, 1, s.Count(reactiontime.ModeSimple))
	assert.Equal(t, 1, p.saves)
}

func TestResetEmptyModeSkipsSave(t *testing.T) {
	p := &failingPersister{}
	s, err := stats.Open(context.Background(), p)
	require.NoError(t, err)

	require.NoError(t, s.ResetMode(context.Background(), reactiontime.ModeChoice))
	assert.Zero(t, p.saves)
}
