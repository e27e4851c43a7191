package realtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	reactiontime "github.com/daiboyi110/ReactionTime"
)

var (
	ErrQueueFull = errors.New("event queue full")
	ErrStopped   = errors.New("runtime stopped")
)

// Target consumes inputs on the tick goroutine. *reactiontime.Machine
// satisfies it.
type Target interface {
	Apply(ctx context.Context, in reactiontime.Input) error
}

// Runtime provides tick-based serialized execution: inputs and timer
// callbacks queue in a batch and run in a fixed order on one goroutine.
type Runtime struct {
	target Target
	clock  reactiontime.Clock
	log    *zap.Logger

	tickRate time.Duration
	ticker   *time.Ticker
	tickNum  uint64

	// Event batching
	batch    []EventWithMeta
	batchMu  sync.Mutex
	seq      uint64
	timers   map[*timerHandle]struct{}
	finished bool

	tickCtx    context.Context
	tickCancel context.CancelFunc
	stopped    chan struct{}
	stopOnce   sync.Once
}

var _ reactiontime.Scheduler = (*Runtime)(nil)

// Config configures the runtime
type Config struct {
	TickRate         time.Duration // default 1ms
	MaxEventsPerTick int           // queue capacity (default: 1000)
	Clock            reactiontime.Clock
	Logger           *zap.Logger
}

func NewRuntime(cfg Config) *Runtime {
	if cfg.MaxEventsPerTick == 0 {
		cfg.MaxEventsPerTick = 1000
	}
	if cfg.TickRate == 0 {
		cfg.TickRate = time.Millisecond
	}
	if cfg.Clock == nil {
		cfg.Clock = reactiontime.SystemClock
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Runtime{
		clock:    cfg.Clock,
		log:      cfg.Logger.Named("realtime"),
		tickRate: cfg.TickRate,
		batch:    make([]EventWithMeta, 0, cfg.MaxEventsPerTick),
		timers:   make(map[*timerHandle]struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start begins tick-based execution against target. The loop ends when ctx
// is cancelled or Stop is called.
func (rt *Runtime) Start(ctx context.Context, target Target) error {
	rt.batchMu.Lock()
	if rt.finished {
		rt.batchMu.Unlock()
		return ErrStopped
	}
	if rt.target != nil {
		rt.batchMu.Unlock()
		return errors.New("runtime already started")
	}
	rt.target = target
	rt.batchMu.Unlock()

	rt.tickCtx, rt.tickCancel = context.WithCancel(ctx)
	rt.ticker = time.NewTicker(rt.tickRate)

	go rt.tickLoop()
	return nil
}

// Stop ends the tick loop, waits for it to exit and cancels every
// outstanding timer. Calling it again is a no-op.
func (rt *Runtime) Stop() error {
	rt.stopOnce.Do(func() {
		rt.batchMu.Lock()
		rt.finished = true
		started := rt.target != nil
		timers := make([]*timerHandle, 0, len(rt.timers))
		for h := range rt.timers {
			timers = append(timers, h)
		}
		rt.batchMu.Unlock()

		for _, h := range timers {
			h.Cancel()
		}
		if started {
			rt.tickCancel()
			rt.ticker.Stop()
			<-rt.stopped
		}
	})
	return nil
}

func (rt *Runtime) tickLoop() {
	defer close(rt.stopped)

	for {
		select {
		case <-rt.tickCtx.Done():
			return
		case <-rt.ticker.C:
			rt.processTick(rt.tickCtx)

			rt.batchMu.Lock()
			rt.tickNum++
			rt.batchMu.Unlock()
		}
	}
}

// Send queues an input for the next tick. A zero At is stamped with the
// enqueue time, so latency does not include the wait for the tick.
func (rt *Runtime) Send(in reactiontime.Input) error {
	return rt.SendWithPriority(in, 0)
}

// SendWithPriority queues an input; higher priorities run first within a tick.
func (rt *Runtime) SendWithPriority(in reactiontime.Input, priority int) error {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()

	if in.At.IsZero() {
		in.At = rt.clock.Now()
	}
	return rt.enqueue(EventWithMeta{Input: &in, Priority: priority})
}

// TickNumber returns the number of completed ticks.
func (rt *Runtime) TickNumber() uint64 {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()
	return rt.tickNum
}

// enqueue assigns the next sequence number. Callers hold batchMu.
func (rt *Runtime) enqueue(ev EventWithMeta) error {
	if rt.finished {
		return ErrStopped
	}
	if len(rt.batch) >= cap(rt.batch) {
		return ErrQueueFull
	}
	ev.SequenceNum = rt.seq
	rt.seq++
	rt.batch = append(rt.batch, ev)
	return nil
}
