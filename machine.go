package reactiontime

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/daiboyi110/ReactionTime/statechart"
)

// Rand is the randomness the trial draws from. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Option configures a Machine.
type Option func(*Machine)

func WithScheduler(s Scheduler) Option {
	return func(m *Machine) { m.timer.sched = s }
}

func WithClock(c Clock) Option {
	return func(m *Machine) { m.clock = c }
}

func WithRand(r Rand) Option {
	return func(m *Machine) { m.rng = r }
}

func WithRecorder(r Recorder) Option {
	return func(m *Machine) { m.rec = r }
}

func WithPublisher(p Publisher) Option {
	return func(m *Machine) { m.pub = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) { m.log = l }
}

// Machine runs reaction-time trials. It is safe for concurrent use: inputs
// and timer callbacks are serialized by an internal mutex, and each runs to
// completion before the next is handled.
type Machine struct {
	mu    sync.Mutex
	cfg   Config
	mode  Mode
	chart *statechart.Machine
	trial *Trial
	timer timerSlot

	clock Clock
	rng   Rand
	rec   Recorder
	pub   Publisher
	log   *zap.Logger

	deferred []error
}

// NewMachine builds the trial chart and enters IDLE.
func NewMachine(cfg Config, opts ...Option) (*Machine, error) {
	cfg = cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := uint64(time.Now().UnixNano())
	m := &Machine{
		cfg:   cfg,
		mode:  cfg.Mode,
		timer: timerSlot{sched: NewSystemScheduler()},
		clock: SystemClock,
		rng:   rand.New(rand.NewPCG(seed, seed>>1|1)),
		rec:   discardRecorder{},
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	chart, err := m.buildChart()
	if err != nil {
		return nil, fmt.Errorf("build chart: %w", err)
	}
	m.chart = chart
	chart.OnTransition(m.onTransition)

	if err := chart.Start(context.Background()); err != nil {
		return nil, err
	}
	return m, nil
}

//
// Presentation-layer API
//

func (m *Machine) DispatchTrigger() error {
	return m.Apply(context.Background(), Input{Kind: InputTrigger})
}

// DispatchTriggerAt is a trigger at a playfield position; REACH mode measures
// the secondary target from it.
func (m *Machine) DispatchTriggerAt(p Point) error {
	return m.Apply(context.Background(), Input{Kind: InputTrigger, Pos: &p})
}

func (m *Machine) DispatchAlternateTrigger() error {
	return m.Apply(context.Background(), Input{Kind: InputAlternate})
}

func (m *Machine) DispatchTargetHit() error {
	return m.Apply(context.Background(), Input{Kind: InputTargetHit})
}

// Reset abandons the current trial and returns to IDLE. It is a no-op in IDLE.
func (m *Machine) Reset() error {
	return m.Apply(context.Background(), Input{Kind: InputReset})
}

// SetMode resets the current trial and switches mode.
func (m *Machine) SetMode(mode Mode) error {
	return m.Apply(context.Background(), Input{Kind: InputSelectMode, Mode: mode})
}

// Apply feeds one input through the chart. Errors from the recorder are
// returned after the transition has completed; the transition itself is
// not undone.
func (m *Machine) Apply(ctx context.Context, in Input) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if in.At.IsZero() {
		in.At = m.clock.Now()
	}

	if in.Kind == InputSelectMode {
		return m.selectMode(ctx, in)
	}

	id, ok := inputEvents[in.Kind]
	if !ok {
		return nil
	}
	evt := statechart.Event{ID: id, At: in.At, Payload: in}

	from := m.current()
	if err := m.chart.Send(ctx, evt); err != nil {
		return err
	}
	if m.cfg.AutoRestart && in.Kind == InputTrigger && from.Terminal() && m.current() == StateIdle {
		if err := m.chart.Send(ctx, evt); err != nil {
			return err
		}
	}
	return m.takeDeferred()
}

func (m *Machine) CurrentState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current()
}

// CurrentStimulusColor reports the color on display while cycling or ready.
func (m *Machine) CurrentStimulusColor() (Color, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.current() {
	case StateCycling, StateReady:
		return m.trial.StimulusColor, true
	}
	return ColorNone, false
}

func (m *Machine) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

func (m *Machine) Config() Config {
	return m.cfg
}

// Trial returns a copy of the active trial.
func (m *Machine) Trial() (Trial, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.trial == nil {
		return Trial{}, false
	}
	return *m.trial, true
}

// Snapshot describes the machine as a Change from and to the current state.
func (m *Machine) Snapshot() Change {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := m.current()
	return m.change(cur, cur, m.clock.Now())
}

// Chart exposes the compiled states for visualization.
func (m *Machine) Chart() ([]*statechart.State, State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chart.States(), m.current()
}

//
// Internals. Everything below runs with m.mu held.
//

func (m *Machine) current() State {
	return State(m.chart.Current())
}

func (m *Machine) selectMode(ctx context.Context, in Input) error {
	if !in.Mode.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidMode, int(in.Mode))
	}
	if in.Mode == m.mode {
		return nil
	}
	if err := m.chart.Send(ctx, statechart.Event{ID: evReset, At: in.At}); err != nil {
		return err
	}
	prev := m.mode
	m.mode = in.Mode
	m.log.Debug("mode selected", zap.Stringer("from", prev), zap.Stringer("to", m.mode))
	m.publish(m.change(StateIdle, StateIdle, in.At))
	return m.takeDeferred()
}

func (m *Machine) timerEvent(id statechart.EventID) leaseFunc {
	return func(gen uint64) func(at time.Time) {
		return func(at time.Time) {
			m.mu.Lock()
			defer m.mu.Unlock()
			if !m.timer.owns(gen) {
				return
			}
			if err := m.chart.Send(context.Background(), statechart.Event{ID: id, At: at}); err != nil {
				m.log.Error("timer transition failed", zap.Error(err))
			}
			if err := m.takeDeferred(); err != nil {
				m.log.Error("recording failed", zap.Error(err))
			}
		}
	}
}

func (m *Machine) onTransition(from, to statechart.StateID, evt *statechart.Event) {
	m.log.Debug("transition",
		zap.Stringer("from", State(from)),
		zap.Stringer("to", State(to)),
		zap.Stringer("mode", m.mode))
	m.publish(m.change(State(from), State(to), evt.At))
}

func (m *Machine) change(from, to State, at time.Time) Change {
	c := Change{From: from, To: to, Mode: m.mode, At: at}
	if m.trial != nil {
		c.Trial = *m.trial
		c.HasTrial = true
	}
	return c
}

func (m *Machine) publish(c Change) {
	if m.pub == nil {
		return
	}
	if err := m.pub.Publish(context.Background(), c); err != nil {
		m.log.Warn("publish change", zap.Error(err))
	}
}

func (m *Machine) defer_(err error) {
	if err != nil {
		m.log.Error("recorder", zap.Error(err), zap.Stringer("mode", m.mode))
		m.deferred = append(m.deferred, err)
	}
}

func (m *Machine) takeDeferred() error {
	err := errors.Join(m.deferred...)
	m.deferred = nil
	return err
}

func latencyMs(from, to time.Time) int64 {
	return max(to.Sub(from).Milliseconds(), 0)
}

//
// Entry/exit hooks
//

func (m *Machine) enterIdle(time.Time) {
	m.timer.release()
	m.trial = nil
}

func (m *Machine) armDelay(time.Time) {
	delay := m.cfg.MinDelay
	if span := int((m.cfg.MaxDelay - m.cfg.MinDelay) / time.Millisecond); span > 0 {
		delay += time.Duration(m.rng.IntN(span)) * time.Millisecond
	}
	m.timer.acquireOnce(delay, m.timerEvent(evDelayElapsed))
}

func (m *Machine) startCycle(at time.Time) {
	t := m.trial
	t.CycleTarget = m.cfg.MinCycles + m.rng.IntN(m.cfg.MaxCycles-m.cfg.MinCycles+1)
	t.CyclesShown = 0
	m.showDistractor(context.Background(), nil)
	m.timer.acquireRepeating(m.cfg.CycleInterval, m.timerEvent(evCycleTick))
}

func (m *Machine) presentStimulus(at time.Time) {
	t := m.trial
	t.StimulusOnset = at
	t.StimulusColor = ColorGo
	if m.mode == ModeChoice && m.rng.IntN(2) == 1 {
		t.StimulusColor = ColorAlternate
	}
}

func (m *Machine) presentTarget(at time.Time) {
	m.trial.ReachOnset = at
}

func (m *Machine) endTrial(time.Time) {
	m.timer.release()
}

func (m *Machine) releaseTimer() {
	m.timer.release()
}

//
// Transition effects
//

func (m *Machine) beginTrial(context.Context, *statechart.Event) {
	m.trial = &Trial{ID: uuid.NewString(), Mode: m.mode}
}

// showDistractor displays a non-go color different from the one on screen.
func (m *Machine) showDistractor(context.Context, *statechart.Event) {
	t := m.trial
	pool := make([]Color, 0, len(distractors))
	for _, c := range distractors {
		if c != t.StimulusColor {
			pool = append(pool, c)
		}
	}
	t.StimulusColor = pool[m.rng.IntN(len(pool))]
	t.CyclesShown++
}

func (m *Machine) countError(ctx context.Context, _ *statechart.Event) {
	m.defer_(m.rec.IncrementError(ctx, m.mode))
}

func (m *Machine) recordReaction(ctx context.Context, evt *statechart.Event) {
	t := m.trial
	t.ReactionMs = latencyMs(t.StimulusOnset, evt.At)
	m.defer_(m.rec.Append(ctx, m.mode, LatencyRecord{
		TrialID:    t.ID,
		ReactionMs: t.ReactionMs,
		RecordedAt: evt.At,
	}))
}

func (m *Machine) startReach(_ context.Context, evt *statechart.Event) {
	t := m.trial
	t.ReactionMs = latencyMs(t.StimulusOnset, evt.At)
	t.ClickPosition = m.cfg.Playfield.Center()
	if in, ok := evt.Payload.(Input); ok && in.Pos != nil {
		t.ClickPosition = *in.Pos
	}
	angle := m.rng.Float64() * 2 * math.Pi
	t.Target = placeTarget(t.ClickPosition, m.cfg.ReachDistance, angle, m.cfg.TargetSize, m.cfg.Playfield)
}

func (m *Machine) recordMovement(ctx context.Context, evt *statechart.Event) {
	t := m.trial
	t.MovementMs = latencyMs(t.ReachOnset, evt.At)
	m.defer_(m.rec.Append(ctx, m.mode, LatencyRecord{
		TrialID:    t.ID,
		ReactionMs: t.ReactionMs,
		MovementMs: t.MovementMs,
		RecordedAt: evt.At,
	}))
}
