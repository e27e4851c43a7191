// Tests for ChannelPublisher delivery and Machine integration.
package production

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reactiontime "github.com/daiboyi110/ReactionTime"
)

func TestChannelPublisher_Delivery(t *testing.T) {
	ch := make(chan reactiontime.Change, 10)
	p := NewChannelPublisher(ch)

	c := reactiontime.Change{From: reactiontime.StateIdle, To: reactiontime.StateWaiting, Mode: reactiontime.ModeChoice}
	require.NoError(t, p.Publish(context.Background(), c))

	select {
	case got := <-ch:
		assert.Equal(t, c, got)
	case <-time.After(100 * time.Millisecond):
		t.Error("No change delivered")
	}
}

func TestChannelPublisher_BackpressureDrop(t *testing.T) {
	ch := make(chan reactiontime.Change, 1)
	p := NewChannelPublisher(ch)
	ch <- reactiontime.Change{} // Fill buffer

	assert.NoError(t, p.Publish(context.Background(), reactiontime.Change{To: reactiontime.StateReady}))
	assert.EqualValues(t, 1, p.Dropped())
	assert.Len(t, ch, 1)
}

func TestChannelPublisher_Close(t *testing.T) {
	ch := make(chan reactiontime.Change, 1)
	p := NewChannelPublisher(ch)
	require.NoError(t, p.Close())

	_, ok := <-ch
	assert.False(t, ok)
}

func TestChannelPublisher_MachineIntegration(t *testing.T) {
	ch := make(chan reactiontime.Change, 10)
	m, err := reactiontime.NewMachine(reactiontime.DefaultConfig(), reactiontime.WithPublisher(NewChannelPublisher(ch)))
	require.NoError(t, err)

	require.NoError(t, m.DispatchTrigger())
	require.NoError(t, m.DispatchTrigger())

	var got []reactiontime.State
	for len(ch) > 0 {
		got = append(got, (<-ch).To)
	}
	assert.Equal(t, []reactiontime.State{reactiontime.StateWaiting, reactiontime.StateTooSoon}, got)
}
