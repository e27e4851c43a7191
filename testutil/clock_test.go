package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualSchedulerFiresInOrder(t *testing.T) {
	s := NewManualScheduler()
	var got []string

	s.ScheduleOnce(30*time.Millisecond, func(time.Time) { got = append(got, "c") })
	s.ScheduleOnce(10*time.Millisecond, func(time.Time) { got = append(got, "a") })
	s.ScheduleOnce(10*time.Millisecond, func(time.Time) { got = append(got, "b") })

	s.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, Epoch.Add(20*time.Millisecond), s.Clock.Now())

	s.Advance(10 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Zero(t, s.Pending())
}

func TestManualSchedulerPassesDueTime(t *testing.T) {
	s := NewManualScheduler()
	var at, clockAt time.Time
	s.ScheduleOnce(15*time.Millisecond, func(ts time.Time) {
		at = ts
		clockAt = s.Clock.Now()
	})
	s.Advance(time.Second)

	assert.Equal(t, Epoch.Add(15*time.Millisecond), at)
	assert.Equal(t, at, clockAt)
}

func TestManualSchedulerRepeating(t *testing.T) {
	s := NewManualScheduler()
	n := 0
	h := s.ScheduleRepeating(100*time.Millisecond, func(time.Time) { n++ })

	s.Advance(350 * time.Millisecond)
	assert.Equal(t, 3, n)

	h.Cancel()
	h.Cancel()
	s.Advance(time.Second)
	assert.Equal(t, 3, n)
	assert.Zero(t, s.Pending())
}

func TestManualSchedulerCancelFromCallback(t *testing.T) {
	s := NewManualScheduler()
	n := 0
	var cancel func()
	h := s.ScheduleRepeating(10*time.Millisecond, func(time.Time) {
		n++
		if n == 2 {
			cancel()
		}
	})
	cancel = h.Cancel

	s.Advance(100 * time.Millisecond)
	require.Equal(t, 2, n)
}

func TestManualSchedulerScheduleFromCallback(t *testing.T) {
	s := NewManualScheduler()
	var fired []time.Time
	s.ScheduleOnce(10*time.Millisecond, func(at time.Time) {
		fired = append(fired, at)
		s.ScheduleOnce(10*time.Millisecond, func(at time.Time) { fired = append(fired, at) })
	})

	s.Advance(25 * time.Millisecond)
	require.Len(t, fired, 2)
	assert.Equal(t, Epoch.Add(20*time.Millisecond), fired[1])
}

func TestAdvanceToIgnoresPast(t *testing.T) {
	s := NewManualScheduler()
	s.Advance(time.Second)
	s.AdvanceTo(Epoch)
	assert.Equal(t, Epoch.Add(time.Second), s.Clock.Now())
}
