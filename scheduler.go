package reactiontime

import (
	"sync"
	"time"
)

// Handle cancels a scheduled callback. Cancel is idempotent and safe on a
// handle that already fired.
type Handle interface {
	Cancel()
}

// Scheduler is the timer service. Callbacks receive the instant the timer fired.
// A one-shot callback fires at most once; a repeating one fires until cancelled.
type Scheduler interface {
	ScheduleOnce(d time.Duration, fn func(at time.Time)) Handle
	ScheduleRepeating(interval time.Duration, fn func(at time.Time)) Handle
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemScheduler runs callbacks on their own goroutines via the time package.
type SystemScheduler struct{}

func NewSystemScheduler() *SystemScheduler {
	return &SystemScheduler{}
}

func (*SystemScheduler) ScheduleOnce(d time.Duration, fn func(at time.Time)) Handle {
	return afterFuncHandle{time.AfterFunc(d, func() { fn(time.Now()) })}
}

func (*SystemScheduler) ScheduleRepeating(interval time.Duration, fn func(at time.Time)) Handle {
	h := &tickerHandle{
		ticker: time.NewTicker(interval),
		stop:   make(chan struct{}),
	}
	go h.run(fn)
	return h
}

type afterFuncHandle struct {
	t *time.Timer
}

func (h afterFuncHandle) Cancel() {
	h.t.Stop()
}

type tickerHandle struct {
	ticker *time.Ticker
	stop   chan struct{}
	once   sync.Once
}

func (h *tickerHandle) run(fn func(at time.Time)) {
	for {
		select {
		case at := <-h.ticker.C:
			select {
			case <-h.stop:
				return
			default:
			}
			fn(at)
		case <-h.stop:
			return
		}
	}
}

func (h *tickerHandle) Cancel() {
	h.once.Do(func() {
		h.ticker.Stop()
		close(h.stop)
	})
}
