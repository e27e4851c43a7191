package realtime

import (
	"context"

	"go.uber.org/zap"
)

// processTick processes one complete tick
func (rt *Runtime) processTick(ctx context.Context) {
	// Phase 1: Collect events atomically
	events := rt.collectEvents()

	// Phase 2: Sort for deterministic order
	sortEvents(events)

	// Phase 3: Run each to completion
	for _, ev := range events {
		rt.processEvent(ctx, ev)
	}
}

// collectEvents atomically retrieves and clears the event batch
func (rt *Runtime) collectEvents() []EventWithMeta {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()

	events := rt.batch
	rt.batch = make([]EventWithMeta, 0, cap(rt.batch))
	return events
}

func (rt *Runtime) processEvent(ctx context.Context, ev EventWithMeta) {
	defer func() {
		if r := recover(); r != nil {
			rt.log.Error("panic while processing event",
				zap.Any("panic", r),
				zap.Uint64("seq", ev.SequenceNum))
		}
	}()

	switch {
	case ev.timer != nil:
		if ev.timer.cancelled() {
			return
		}
		ev.timer.fn(ev.at)
	case ev.Input != nil:
		if err := rt.target.Apply(ctx, *ev.Input); err != nil {
			rt.log.Warn("input failed",
				zap.Stringer("kind", ev.Input.Kind),
				zap.Error(err))
		}
	}
}
