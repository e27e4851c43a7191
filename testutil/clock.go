// Package testutil provides a manually driven clock and scheduler for
// deterministic tests of timer-driven code.
package testutil

import (
	"cmp"
	"slices"
	"sync"
	"time"

	reactiontime "github.com/daiboyi110/ReactionTime"
)

// Epoch is where every ManualClock starts.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// ManualClock only moves when told to.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualClock() *ManualClock {
	return &ManualClock{now: Epoch}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// ManualScheduler queues callbacks against a ManualClock and runs them
// from Advance, on the caller's goroutine.
type ManualScheduler struct {
	Clock *ManualClock

	mu      sync.Mutex
	seq     uint64
	pending []*manualTimer
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{Clock: NewManualClock()}
}

type manualTimer struct {
	s        *ManualScheduler
	due      time.Time
	interval time.Duration
	seq      uint64
	fn       func(at time.Time)
	dead     bool
}

func (t *manualTimer) Cancel() {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.dead = true
}

func (s *ManualScheduler) ScheduleOnce(d time.Duration, fn func(at time.Time)) reactiontime.Handle {
	return s.add(d, 0, fn)
}

func (s *ManualScheduler) ScheduleRepeating(interval time.Duration, fn func(at time.Time)) reactiontime.Handle {
	return s.add(interval, interval, fn)
}

func (s *ManualScheduler) add(d, interval time.Duration, fn func(at time.Time)) *manualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTimer{
		s:        s,
		due:      s.Clock.Now().Add(d),
		interval: interval,
		seq:      s.seq,
		fn:       fn,
	}
	s.pending = append(s.pending, t)
	return t
}

// Pending counts live timers.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.pending {
		if !t.dead {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing every timer that comes due
// in order. The clock reads each timer's due time while it runs.
func (s *ManualScheduler) Advance(d time.Duration) {
	end := s.Clock.Now().Add(d)
	for {
		t := s.next(end)
		if t == nil {
			break
		}
		s.Clock.set(t.due)
		t.fn(t.due)
	}
	s.Clock.set(end)
}

// AdvanceTo moves the clock to the absolute time at.
func (s *ManualScheduler) AdvanceTo(at time.Time) {
	if d := at.Sub(s.Clock.Now()); d > 0 {
		s.Advance(d)
	}
}

// next pops the earliest live timer due at or before end. Repeating timers
// are re-armed before they run.
func (s *ManualScheduler) next(end time.Time) *manualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = slices.DeleteFunc(s.pending, func(t *manualTimer) bool { return t.dead })
	if len(s.pending) == 0 {
		return nil
	}
	slices.SortFunc(s.pending, func(a, b *manualTimer) int {
		if c := a.due.Compare(b.due); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})

	t := s.pending[0]
	if t.due.After(end) {
		return nil
	}

	fire := *t
	if t.interval > 0 {
		t.due = t.due.Add(t.interval)
	} else {
		t.dead = true
	}
	return &fire
}
