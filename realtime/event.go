package realtime

import (
	"sort"
	"time"

	reactiontime "github.com/daiboyi110/ReactionTime"
)

// EventWithMeta is one queued unit of work: either an input for the target
// or a timer callback, with sequencing metadata for deterministic ordering.
type EventWithMeta struct {
	Input *reactiontime.Input

	timer *timerHandle
	at    time.Time

	SequenceNum uint64
	Priority    int
}

// sortEvents orders events deterministically
func sortEvents(events []EventWithMeta) {
	// Stable sort preserves insertion order for equal priorities
	sort.SliceStable(events, func(i, j int) bool {
		// Primary: Higher priority first
		if events[i].Priority != events[j].Priority {
			return events[i].Priority > events[j].Priority
		}

		// Secondary: Earlier sequence number first (FIFO)
		return events[i].SequenceNum < events[j].SequenceNum
	})
}

// Event ordering guarantees:
// 1. Events from same source processed in submission order (sequence number)
// 2. Higher priority events processed first
// 3. Timer callbacks take their place by the time they fired
