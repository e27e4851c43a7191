package realtime

import (
	"context"
	"testing"

	reactiontime "github.com/daiboyi110/ReactionTime"
)

type nopTarget struct{}

func (nopTarget) Apply(context.Context, reactiontime.Input) error { return nil }

// BenchmarkTickProcessing measures sorting and dispatching a batch of 100 inputs.
func BenchmarkTickProcessing(b *testing.B) {
	rt := NewRuntime(Config{})
	rt.target = nopTarget{}
	ctx := context.Background()
	in := reactiontime.Input{Kind: reactiontime.InputTrigger}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := 0; j < 100; j++ {
			_ = rt.SendWithPriority(in, j%3)
		}
		rt.processTick(ctx)
	}
}

// BenchmarkSend measures enqueueing an input.
func BenchmarkSend(b *testing.B) {
	rt := NewRuntime(Config{})
	rt.target = nopTarget{}
	ctx := context.Background()
	in := reactiontime.Input{Kind: reactiontime.InputTrigger}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := rt.Send(in); err != nil {
			rt.processTick(ctx)
		}
	}
}
