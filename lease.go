package reactiontime

import "time"

// timerSlot holds the one timer a trial may own at a time. Acquiring
// cancels the previous lease; every lease gets a fresh generation so a
// callback that outlives its lease can tell it no longer owns the slot.
type timerSlot struct {
	sched  Scheduler
	handle Handle
	gen    uint64
}

type leaseFunc func(gen uint64) func(at time.Time)

func (s *timerSlot) acquireOnce(d time.Duration, fire leaseFunc) {
	s.release()
	s.handle = mustHandle(s.sched.ScheduleOnce(d, fire(s.gen)))
}

func (s *timerSlot) acquireRepeating(interval time.Duration, fire leaseFunc) {
	s.release()
	s.handle = mustHandle(s.sched.ScheduleRepeating(interval, fire(s.gen)))
}

// release cancels the held timer, if any, and invalidates its generation.
func (s *timerSlot) release() {
	if s.handle != nil {
		s.handle.Cancel()
		s.handle = nil
	}
	s.gen++
}

func (s *timerSlot) owns(gen uint64) bool {
	return s.handle != nil && s.gen == gen
}

func (s *timerSlot) held() bool {
	return s.handle != nil
}

// The stale-timer guarantee depends on cancellable handles.
func mustHandle(h Handle) Handle {
	if h == nil {
		panic("reactiontime: scheduler returned a nil handle")
	}
	return h
}
