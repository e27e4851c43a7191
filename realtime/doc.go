// Package realtime provides a tick-based serialized runtime for the trial
// machine.
//
// The runtime differs from driving a Machine directly in how work is
// dispatched:
//   - Inputs and timer callbacks are batched and processed at tick boundaries
//   - Deterministic ordering via priority and sequence numbers
//   - Everything runs on one goroutine, so a timer never races an input
//
// # Example Usage
//
//	rt := realtime.NewRuntime(realtime.Config{TickRate: time.Millisecond})
//	m, _ := reactiontime.NewMachine(cfg, reactiontime.WithScheduler(rt))
//	rt.Start(ctx, m)
//	rt.Send(reactiontime.Input{Kind: reactiontime.InputTrigger})
//
// # Timestamps
//
// Inputs are stamped when they are queued and timer callbacks when their
// timer fires, not when the tick processes them. Measured latencies do not
// include the wait for the next tick.
//
// # Event Ordering Guarantees
//
// Events are ordered deterministically using:
//  1. Priority (higher priority processed first)
//  2. Sequence number (FIFO for same priority)
//  3. Stable sorting (preserves relative order)
//
// A timer callback queued before its handle is cancelled is dropped when
// its turn comes.
//
// # Performance Characteristics
//
// At the default 1ms tick:
//   - Latency: 0-1ms between Send and Apply
//   - Memory: O(MaxEventsPerTick) for event batching
package realtime
