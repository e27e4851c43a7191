package production

import (
	"context"
	"sync/atomic"

	reactiontime "github.com/daiboyi110/ReactionTime"
)

// ChannelPublisher forwards machine changes to a Go channel.
// Non-blocking publish with drop on backpressure.
type ChannelPublisher struct {
	ch      chan<- reactiontime.Change
	dropped atomic.Uint64
}

var _ reactiontime.Publisher = (*ChannelPublisher)(nil)

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- reactiontime.Change) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

func (p *ChannelPublisher) Publish(ctx context.Context, c reactiontime.Change) error {
	select {
	case p.ch <- c:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		p.dropped.Add(1)
		return nil // Non-blocking drop
	}
}

// Dropped counts changes discarded because the channel was full.
func (p *ChannelPublisher) Dropped() uint64 {
	return p.dropped.Load()
}

func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}
