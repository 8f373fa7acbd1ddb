package policy

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/solution"
	"github.com/katalvlaran/ucarp/state"
)

// Combiner turns the members of an ensemble into one choice over an already
// filtered, non-empty pool.
type Combiner func(e *Ensemble, pool []core.ArcID, r *solution.NodeSeqRoute, s *state.State) core.ArcID

// Ensemble composes several policies. Its own filter runs first; members
// only see the filtered pool, and their own filters are not applied.
type Ensemble struct {
	name     string
	members  []Policy
	weights  []float64
	combiner Combiner
	filter   PoolFilter
	tie      TieBreaker
}

// NewEnsemble combines members with comb. A nil weights slice means unit
// weights. Default filter: Identity.
func NewEnsemble(members []Policy, weights []float64, comb Combiner, opts ...Option) (*Ensemble, error) {
	if len(members) == 0 {
		return nil, ErrEmptyEnsemble
	}
	if weights == nil {
		weights = make([]float64, len(members))
		for i := range weights {
			weights[i] = 1
		}
	}
	if len(weights) != len(members) {
		return nil, fmt.Errorf("%w: %d weights for %d members", ErrWeightCount, len(weights), len(members))
	}
	if comb == nil {
		comb = Aggregate
	}
	o := buildOptions(Identity, opts)
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name()
	}

	return &Ensemble{
		name:     "Ensemble(" + strings.Join(names, ", ") + ")",
		members:  append([]Policy(nil), members...),
		weights:  append([]float64(nil), weights...),
		combiner: comb,
		filter:   o.Filter,
		tie:      o.Tie,
	}, nil
}

// Name implements Policy.
func (e *Ensemble) Name() string { return e.name }

// Size returns the number of members.
func (e *Ensemble) Size() int { return len(e.members) }

// Member returns the i-th member and its weight.
func (e *Ensemble) Member(i int) (Policy, float64) { return e.members[i], e.weights[i] }

// Priority is the weighted sum of member priorities.
func (e *Ensemble) Priority(c core.ArcID, r *solution.NodeSeqRoute, s *state.State) float64 {
	var sum float64
	for i, m := range e.members {
		sum += e.weights[i] * m.Priority(c, r, s)
	}

	return sum
}

// Filter implements Policy.
func (e *Ensemble) Filter(pool []core.ArcID, r *solution.NodeSeqRoute, s *state.State) []core.ArcID {
	return e.filter(pool, r, s)
}

// Choose implements Policy.
func (e *Ensemble) Choose(pool []core.ArcID, r *solution.NodeSeqRoute, s *state.State) (core.ArcID, bool) {
	if len(pool) == 0 {
		return core.NoArc, false
	}

	return e.combiner(e, pool, r, s), true
}

// ContinueService implements Policy.
func (e *Ensemble) ContinueService(planned core.ArcID, r *solution.NodeSeqRoute, s *state.State) bool {
	return e.Priority(planned, r, s) >= 0
}

// Aggregate picks the minimum of the weighted sum of member priorities,
// with the ensemble's tie breaker.
func Aggregate(e *Ensemble, pool []core.ArcID, r *solution.NodeSeqRoute, s *state.State) core.ArcID {
	next, _ := argmin(pool, r, s, e.Priority, e.tie)

	return next
}

// Vote lets every member choose from the pool and returns the candidate with
// the largest total weight of votes. Equal totals go to the earlier
// candidate in pool order.
func Vote(e *Ensemble, pool []core.ArcID, r *solution.NodeSeqRoute, s *state.State) core.ArcID {
	votes := make(map[core.ArcID]float64, len(e.members))
	for i, m := range e.members {
		if c, ok := m.Choose(pool, r, s); ok {
			votes[c] += e.weights[i]
		}
	}
	best := pool[0]
	for _, c := range pool[1:] {
		if votes[c] > votes[best] {
			best = c
		}
	}

	return best
}
