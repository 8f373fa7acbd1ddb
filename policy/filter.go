package policy

import (
	"fmt"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/solution"
	"github.com/katalvlaran/ucarp/state"
)

// Identity keeps every candidate.
func Identity(pool []core.ArcID, _ *solution.NodeSeqRoute, _ *state.State) []core.ArcID {
	return pool
}

// ExpFeasible keeps the candidates whose expected demand fits the remaining
// capacity.
func ExpFeasible(pool []core.ArcID, r *solution.NodeSeqRoute, s *state.State) []core.ArcID {
	g := s.Graph()
	remCap := r.RemainingCapacity()
	res := make([]core.ArcID, 0, len(pool))
	for _, c := range pool {
		if g.Arc(c).ExpectedDemand > remCap {
			continue
		}
		res = append(res, c)
	}

	return res
}

// ActFeasible keeps the candidates whose realized demand fits the remaining
// capacity.
func ActFeasible(pool []core.ArcID, r *solution.NodeSeqRoute, s *state.State) []core.ArcID {
	rz := s.Realization()
	remCap := r.RemainingCapacity()
	res := make([]core.ArcID, 0, len(pool))
	for _, c := range pool {
		if rz.Demand(c) > remCap {
			continue
		}
		res = append(res, c)
	}

	return res
}

// ExpFeasibleNoRefill is ExpFeasible that also drops the candidates whose
// shortest approach passes through the depot. At the depot it keeps all.
func ExpFeasibleNoRefill(pool []core.ArcID, r *solution.NodeSeqRoute, s *state.State) []core.ArcID {
	if r.CurrNode() == s.Instance().Depot() {
		return pool
	}
	g := s.Graph()
	remCap := r.RemainingCapacity()
	res := make([]core.ArcID, 0, len(pool))
	for _, c := range pool {
		if g.Arc(c).ExpectedDemand > remCap || viaDepot(c, r, s) {
			continue
		}
		res = append(res, c)
	}

	return res
}

// ExpFeasibleWithRefill is ExpFeasible that also admits infeasible
// candidates whose shortest approach passes through the depot, where the
// vehicle would refill on the way. At the depot it keeps all.
func ExpFeasibleWithRefill(pool []core.ArcID, r *solution.NodeSeqRoute, s *state.State) []core.ArcID {
	if r.CurrNode() == s.Instance().Depot() {
		return pool
	}
	g := s.Graph()
	remCap := r.RemainingCapacity()
	res := make([]core.ArcID, 0, len(pool))
	for _, c := range pool {
		if g.Arc(c).ExpectedDemand <= remCap || viaDepot(c, r, s) {
			res = append(res, c)
		}
	}

	return res
}

// viaDepot reports whether the estimated shortest way from the route's
// position to the head of c goes through the depot.
func viaDepot(c core.ArcID, r *solution.NodeSeqRoute, s *state.State) bool {
	curr, depot, from := r.CurrNode(), s.Instance().Depot(), s.Graph().Arc(c).From

	return s.EstDistance(curr, from) == s.EstDistance(curr, depot)+s.EstDistance(depot, from)
}

var filters = map[string]PoolFilter{
	"identity":                 Identity,
	"exp-feasible":             ExpFeasible,
	"act-feasible":             ActFeasible,
	"exp-feasible-no-refill":   ExpFeasibleNoRefill,
	"exp-feasible-with-refill": ExpFeasibleWithRefill,
}

// FilterByName returns the registered filter with the given name.
func FilterByName(name string) (PoolFilter, error) {
	f, ok := filters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}

	return f, nil
}
