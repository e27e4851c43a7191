package benchmarks

import (
	"context"
	"testing"
	"time"

	reactiontime "github.com/daiboyi110/ReactionTime"
	"github.com/daiboyi110/ReactionTime/internal/production"
	"github.com/daiboyi110/ReactionTime/realtime"
)

// Realtime trial benchmarks
//
// These drive complete trials through the tick runtime with real timers:
// - Trial: trigger, delay, response and acknowledgement for one trial
// - Response latency: time from Send of the response to the RESULT change

func startRuntime(b *testing.B, mode reactiontime.Mode) (*realtime.Runtime, <-chan reactiontime.Change) {
	b.Helper()
	rt := realtime.NewRuntime(realtime.Config{TickRate: 100 * time.Microsecond})
	changes := make(chan reactiontime.Change, 256)
	m, err := reactiontime.NewMachine(FastConfig(mode),
		reactiontime.WithScheduler(rt),
		reactiontime.WithPublisher(production.NewChannelPublisher(changes)),
	)
	if err != nil {
		b.Fatal(err)
	}
	if err := rt.Start(context.Background(), m); err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = rt.Stop() })
	return rt, changes
}

func awaitState(b *testing.B, changes <-chan reactiontime.Change, want reactiontime.State) {
	b.Helper()
	timeout := time.After(time.Second)
	for {
		select {
		case c := <-changes:
			if c.To == want {
				return
			}
		case <-timeout:
			b.Fatalf("timed out waiting for %s", want)
		}
	}
}

func benchmarkTrial(b *testing.B, mode reactiontime.Mode) {
	rt, changes := startRuntime(b, mode)
	trigger := reactiontime.Input{Kind: reactiontime.InputTrigger}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = rt.Send(trigger)
		awaitState(b, changes, reactiontime.StateReady)
		_ = rt.Send(trigger)
		awaitState(b, changes, reactiontime.StateResult)
		_ = rt.Send(trigger)
		awaitState(b, changes, reactiontime.StateIdle)
	}
}

func BenchmarkRealtimeSimpleTrial(b *testing.B) {
	benchmarkTrial(b, reactiontime.ModeSimple)
}

func BenchmarkRealtimeGoNoGoTrial(b *testing.B) {
	benchmarkTrial(b, reactiontime.ModeGoNoGo)
}

func BenchmarkRealtimeResponseLatency(b *testing.B) {
	rt, changes := startRuntime(b, reactiontime.ModeSimple)
	trigger := reactiontime.Input{Kind: reactiontime.InputTrigger}

	var total time.Duration
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		_ = rt.Send(trigger)
		awaitState(b, changes, reactiontime.StateReady)
		b.StartTimer()

		start := time.Now()
		_ = rt.Send(trigger)
		awaitState(b, changes, reactiontime.StateResult)
		total += time.Since(start)

		b.StopTimer()
		_ = rt.Send(trigger)
		awaitState(b, changes, reactiontime.StateIdle)
		b.StartTimer()
	}
	b.ReportMetric(float64(total.Microseconds())/float64(b.N), "µs/response")
}
