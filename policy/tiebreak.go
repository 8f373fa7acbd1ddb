package policy

import (
	"math"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/rng"
	"github.com/katalvlaran/ucarp/solution"
	"github.com/katalvlaran/ucarp/state"
)

// SimpleTie prefers the smaller arc in natural (from, to) order.
func SimpleTie(a, b core.ArcID, _ *solution.NodeSeqRoute, s *state.State) int {
	return s.Graph().Compare(a, b)
}

// RandomTie returns a tie breaker that flips a fair coin.
//
// The coin is a SplitMix64 hash of seed and the decision context (the two
// arcs, the route's clock and the remaining task count), so the same run
// always flips the same way and concurrent runs share nothing.
func RandomTie(seed int64) TieBreaker {
	return func(a, b core.ArcID, r *solution.NodeSeqRoute, s *state.State) int {
		key := uint64(a)<<32 ^ uint64(b) ^ math.Float64bits(r.Cost()) ^ uint64(len(s.Remaining()))<<48
		if rng.DeriveSeed(seed, key)&1 == 0 {
			return -1
		}

		return 1
	}
}
