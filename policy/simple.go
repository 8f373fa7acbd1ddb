package policy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/solution"
	"github.com/katalvlaran/ucarp/state"
)

// Simple is a Policy defined by one priority function.
type Simple struct {
	name   string
	prio   PriorityFunc
	filter PoolFilter
	tie    TieBreaker
}

// NewSimple wraps prio. The default filter is Identity.
func NewSimple(name string, prio PriorityFunc, opts ...Option) *Simple {
	o := buildOptions(Identity, opts)

	return &Simple{name: name, prio: prio, filter: o.Filter, tie: o.Tie}
}

// Name implements Policy.
func (p *Simple) Name() string { return p.name }

// Priority implements Policy.
func (p *Simple) Priority(c core.ArcID, r *solution.NodeSeqRoute, s *state.State) float64 {
	return p.prio(c, r, s)
}

// Filter implements Policy.
func (p *Simple) Filter(pool []core.ArcID, r *solution.NodeSeqRoute, s *state.State) []core.ArcID {
	return p.filter(pool, r, s)
}

// Choose implements Policy.
func (p *Simple) Choose(pool []core.ArcID, r *solution.NodeSeqRoute, s *state.State) (core.ArcID, bool) {
	return argmin(pool, r, s, p.prio, p.tie)
}

// ContinueService implements Policy.
func (p *Simple) ContinueService(planned core.ArcID, r *solution.NodeSeqRoute, s *state.State) bool {
	return p.prio(planned, r, s) >= 0
}

// Next filters pool with p and chooses among the survivors. ok is false when
// nothing survives the filter.
func Next(p Policy, pool []core.ArcID, r *solution.NodeSeqRoute, s *state.State) (core.ArcID, bool) {
	return p.Choose(p.Filter(pool, r, s), r, s)
}

// Rank returns up to k candidates of an already filtered pool: the policy's
// own choice first, then the rest by ascending priority, natural order on
// equal priority.
func Rank(p Policy, pool []core.ArcID, r *solution.NodeSeqRoute, s *state.State, k int) []core.ArcID {
	first, ok := p.Choose(pool, r, s)
	if !ok || k < 1 {
		return nil
	}
	type scored struct {
		id   core.ArcID
		prio float64
	}
	rest := make([]scored, 0, len(pool))
	for _, c := range pool {
		if c != first {
			rest = append(rest, scored{id: c, prio: p.Priority(c, r, s)})
		}
	}
	g := s.Graph()
	sort.SliceStable(rest, func(i, j int) bool {
		if rest[i].prio != rest[j].prio {
			return rest[i].prio < rest[j].prio
		}

		return g.Compare(rest[i].id, rest[j].id) < 0
	})

	res := []core.ArcID{first}
	for i := 0; i < len(rest) && len(res) < k; i++ {
		res = append(res, rest[i].id)
	}

	return res
}

// argmin scans pool once keeping the lowest priority; on equal scores the
// tie breaker decides against the incumbent.
func argmin(pool []core.ArcID, r *solution.NodeSeqRoute, s *state.State, prio PriorityFunc, tie TieBreaker) (core.ArcID, bool) {
	if len(pool) == 0 {
		return core.NoArc, false
	}
	var (
		best  = pool[0]
		bestP = prio(best, r, s)
		p     float64
	)
	for _, c := range pool[1:] {
		p = prio(c, r, s)
		if p < bestP || (p == bestP && tie(c, best, r, s) < 0) {
			best, bestP = c, p
		}
	}

	return best, true
}

// NearestNeighbour prefers the candidate closest to the route's position.
// Default filter: ExpFeasible.
func NearestNeighbour(opts ...Option) *Simple {
	o := buildOptions(ExpFeasible, opts)

	return &Simple{name: "NN", prio: FeatureCostFromHere, filter: o.Filter, tie: o.Tie}
}

// Feasibility prefers the candidate that leaves the least expected spare
// capacity. A negative priority, i.e. an expected overflow, makes
// ContinueService send the vehicle to refill. Default filter: Identity.
func Feasibility(opts ...Option) *Simple {
	o := buildOptions(Identity, opts)
	prio := func(c core.ArcID, r *solution.NodeSeqRoute, s *state.State) float64 {
		return r.RemainingCapacity() - s.Graph().Arc(c).ExpectedDemand
	}

	return &Simple{name: "FSB", prio: prio, filter: o.Filter, tie: o.Tie}
}

// PathScanning2 prefers close candidates, then those closest to the depot.
// Default filter: ExpFeasible.
func PathScanning2(opts ...Option) *Simple {
	o := buildOptions(ExpFeasible, opts)
	prio := func(c core.ArcID, r *solution.NodeSeqRoute, s *state.State) float64 {
		return Alpha*FeatureCostFromHere(c, r, s) + FeatureCostToDepot(c, r, s)
	}

	return &Simple{name: "PS2", prio: prio, filter: o.Filter, tie: o.Tie}
}

// PathScanning3 prefers close candidates, then the highest realized yield
// (demand per unit of serve cost). Default filter: ExpFeasible.
func PathScanning3(opts ...Option) *Simple {
	o := buildOptions(ExpFeasible, opts)
	prio := func(c core.ArcID, r *solution.NodeSeqRoute, s *state.State) float64 {
		var yield float64
		if serve := s.Graph().Arc(c).ServeCost; serve > 0 {
			yield = s.Realization().Demand(c) / serve
		}

		return Alpha*FeatureCostFromHere(c, r, s) - yield
	}

	return &Simple{name: "PS3", prio: prio, filter: o.Filter, tie: o.Tie}
}

// PathScanning5 prefers close candidates, then moves away from the depot
// while the vehicle is less than half full and towards it afterwards.
// Default filter: ExpFeasible.
func PathScanning5(opts ...Option) *Simple {
	o := buildOptions(ExpFeasible, opts)
	prio := func(c core.ArcID, r *solution.NodeSeqRoute, s *state.State) float64 {
		coef := 1.0
		if r.Load()/r.Capacity() < 0.5 {
			coef = -1
		}

		return Alpha*FeatureCostFromHere(c, r, s) + coef*FeatureCostToDepot(c, r, s)
	}

	return &Simple{name: "PS5", prio: prio, filter: o.Filter, tie: o.Tie}
}

var constructors = map[string]func(...Option) *Simple{
	"NN":  NearestNeighbour,
	"FSB": Feasibility,
	"PS2": PathScanning2,
	"PS3": PathScanning3,
	"PS5": PathScanning5,
}

// ByName builds one of the named heuristic policies: NN, FSB, PS2, PS3 or
// PS5. Matching is case-insensitive.
func ByName(name string, opts ...Option) (*Simple, error) {
	ctor, ok := constructors[strings.ToUpper(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}

	return ctor(opts...), nil
}
