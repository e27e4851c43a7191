package benchmarks

import (
	"context"
	"path/filepath"
	"testing"

	reactiontime "github.com/daiboyi110/ReactionTime"
	"github.com/daiboyi110/ReactionTime/stats"
)

// Every Append saves the whole snapshot, so file backends slow down as
// history grows. The benchmarks start from an empty store each run.

func BenchmarkMemoryAppend(b *testing.B) {
	ctx := context.Background()
	s := stats.NewMemory()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Append(ctx, reactiontime.ModeSimple, Record(i)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkJSONAppend(b *testing.B) {
	ctx := context.Background()
	p, err := stats.NewJSONPersister(filepath.Join(b.TempDir(), "stats.json"))
	if err != nil {
		b.Fatal(err)
	}
	benchmarkPersistedAppend(b, ctx, p)
}

func BenchmarkYAMLAppend(b *testing.B) {
	ctx := context.Background()
	p, err := stats.NewYAMLPersister(filepath.Join(b.TempDir(), "stats.yaml"))
	if err != nil {
		b.Fatal(err)
	}
	benchmarkPersistedAppend(b, ctx, p)
}

func BenchmarkSQLiteAppend(b *testing.B) {
	ctx := context.Background()
	p, err := stats.OpenSQLite(ctx, filepath.Join(b.TempDir(), "stats.db"))
	if err != nil {
		b.Fatal(err)
	}
	defer p.Close()
	benchmarkPersistedAppend(b, ctx, p)
}

func benchmarkPersistedAppend(b *testing.B, ctx context.Context, p stats.Persister) {
	b.Helper()
	s, err := stats.Open(ctx, p)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Append(ctx, reactiontime.ModeSimple, Record(i%500)); err != nil {
			b.Fatal(err)
		}
		if i%500 == 499 {
			b.StopTimer()
			if err := s.ResetMode(ctx, reactiontime.ModeSimple); err != nil {
				b.Fatal(err)
			}
			b.StartTimer()
		}
	}
}

func BenchmarkSummary(b *testing.B) {
	ctx := context.Background()
	s := stats.NewMemory()
	for i := 0; i < 1000; i++ {
		_ = s.Append(ctx, reactiontime.ModeChoice, Record(i))
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Summary(reactiontime.ModeChoice)
	}
}
