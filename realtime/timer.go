package realtime

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	reactiontime "github.com/daiboyi110/ReactionTime"
)

// timerHandle posts its callback into the tick batch instead of running it
// on the timer goroutine. A callback already queued when Cancel is called
// is skipped at processing time.
type timerHandle struct {
	rt   *Runtime
	fn   func(at time.Time)
	dead atomic.Bool

	mu     sync.Mutex
	timer  *time.Timer
	ticker *time.Ticker
	stop   chan struct{}
}

func (h *timerHandle) cancelled() bool {
	return h.dead.Load()
}

func (h *timerHandle) Cancel() {
	if h.dead.Swap(true) {
		return
	}
	h.mu.Lock()
	if h.timer != nil {
		h.timer.Stop()
	}
	if h.ticker != nil {
		h.ticker.Stop()
		close(h.stop)
	}
	h.mu.Unlock()

	h.rt.batchMu.Lock()
	delete(h.rt.timers, h)
	h.rt.batchMu.Unlock()
}

// post queues one firing, stamped with the enqueue time.
func (h *timerHandle) post() {
	if h.cancelled() {
		return
	}
	rt := h.rt
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()
	if err := rt.enqueue(EventWithMeta{timer: h, at: rt.clock.Now()}); errors.Is(err, ErrQueueFull) {
		rt.log.Warn("dropped timer callback", zap.Error(err))
	}
}

func (rt *Runtime) track(h *timerHandle) {
	rt.batchMu.Lock()
	rt.timers[h] = struct{}{}
	rt.batchMu.Unlock()
}

// ScheduleOnce runs fn on the tick goroutine after d.
func (rt *Runtime) ScheduleOnce(d time.Duration, fn func(at time.Time)) reactiontime.Handle {
	h := &timerHandle{rt: rt, fn: fn}
	rt.track(h)
	h.mu.Lock()
	h.timer = time.AfterFunc(d, func() {
		h.post()
		h.rt.untrackFired(h)
	})
	h.mu.Unlock()
	return h
}

// ScheduleRepeating runs fn on the tick goroutine every interval until cancelled.
func (rt *Runtime) ScheduleRepeating(interval time.Duration, fn func(at time.Time)) reactiontime.Handle {
	h := &timerHandle{
		rt:     rt,
		fn:     fn,
		ticker: time.NewTicker(interval),
		stop:   make(chan struct{}),
	}
	rt.track(h)
	go func() {
		for {
			select {
			case <-h.ticker.C:
				h.post()
			case <-h.stop:
				return
			}
		}
	}()
	return h
}

// untrackFired forgets a one-shot timer once it has posted; the queued
// event still honors Cancel.
func (rt *Runtime) untrackFired(h *timerHandle) {
	rt.batchMu.Lock()
	delete(rt.timers, h)
	rt.batchMu.Unlock()
}
