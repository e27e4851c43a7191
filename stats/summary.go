package stats

import (
	"math"

	reactiontime "github.com/daiboyi110/ReactionTime"
)

// Summary aggregates one mode's history. The numeric fields are zero when
// Count is zero.
type Summary struct {
	Mode   reactiontime.Mode
	Count  int
	Errors int
	Mean   float64
	Min    int64
	StdDev float64

	// MeanMovement averages the records that carry a movement time.
	MeanMovement float64
	Last         reactiontime.LatencyRecord
}

func summarize(mode reactiontime.Mode, recs []reactiontime.LatencyRecord, errors int) Summary {
	s := Summary{Mode: mode, Count: len(recs), Errors: errors}
	if len(recs) == 0 {
		return s
	}

	var sum, movementSum float64
	var moves int
	s.Min = recs[0].ReactionMs
	for _, r := range recs {
		sum += float64(r.ReactionMs)
		s.Min = min(s.Min, r.ReactionMs)
		if r.MovementMs > 0 {
			movementSum += float64(r.MovementMs)
			moves++
		}
	}
	s.Mean = sum / float64(len(recs))
	if moves > 0 {
		s.MeanMovement = movementSum / float64(moves)
	}

	var sq float64
	for _, r := range recs {
		d := float64(r.ReactionMs) - s.Mean
		sq += d * d
	}
	s.StdDev = math.Sqrt(sq / float64(len(recs)))
	s.Last = recs[len(recs)-1]
	return s
}
