package instance

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/dijkstra"
	"github.com/katalvlaran/ucarp/rng"
)

// Realization is one sampled scenario of an instance: actual demands, actual
// deadheading costs and the actual-cost shortest paths. It is immutable.
type Realization struct {
	inst   *Instance
	seed   int64
	demand []float64 // per arc
	cost   []float64 // per arc, +Inf when unusable
	paths  *dijkstra.PathIndex
}

// Realize samples the instance with the given seed.
//
// Draw order is fixed: first one deadheading cost per edge in insertion
// order, then one demand per task edge in insertion order. Each draw is
// shared by both directions of its edge. Realize is a pure function of
// (instance, seed).
func (in *Instance) Realize(seed int64) (*Realization, error) {
	// 1) One stream per realization.
	r := rng.New(seed)
	g := in.graph
	rz := &Realization{
		inst:   in,
		seed:   seed,
		demand: make([]float64, g.NumArcs()),
		cost:   make([]float64, g.NumArcs()),
	}
	edges := g.Edges()

	// 2) Deadheading costs: negative draws make the edge unusable.
	var (
		a *core.Arc
		x float64
	)
	for _, id := range edges {
		a = g.Arc(id)
		x = rng.Normal(r, a.ExpectedCost, in.costLevel*a.ExpectedCost)
		if x < 0 {
			x = math.Inf(1)
		}
		rz.cost[id] = x
		rz.cost[a.Inverse] = x
	}

	// 3) Demands: negative draws clip to zero.
	for _, id := range edges {
		a = g.Arc(id)
		if !a.IsTask() {
			continue
		}
		x = rng.Normal(r, a.ExpectedDemand, in.demandLevel*a.ExpectedDemand)
		if x < 0 {
			x = 0
		}
		rz.demand[id] = x
		rz.demand[a.Inverse] = x
	}

	// 4) Actual-cost shortest paths.
	paths, err := dijkstra.Build(g, func(id core.ArcID) float64 { return rz.cost[id] })
	if err != nil {
		return nil, fmt.Errorf("instance: realize seed %d: %w", seed, err)
	}
	rz.paths = paths

	return rz, nil
}

// Instance returns the instance this realization belongs to.
func (r *Realization) Instance() *Instance { return r.inst }

// Seed returns the seed that produced this realization.
func (r *Realization) Seed() int64 { return r.seed }

// Demand returns the actual demand of an arc.
func (r *Realization) Demand(id core.ArcID) float64 { return r.demand[id] }

// Cost returns the actual deadheading cost of an arc (+Inf if unusable).
func (r *Realization) Cost(id core.ArcID) float64 { return r.cost[id] }

// Usable reports whether the arc can be deadheaded in this realization.
func (r *Realization) Usable(id core.ArcID) bool { return !math.IsInf(r.cost[id], 1) }

// Distance returns the actual shortest distance u→v.
func (r *Realization) Distance(u, v int) float64 { return r.paths.Distance(u, v) }

// Paths returns the actual-cost tables. They are shared and read-only.
func (r *Realization) Paths() *dijkstra.PathIndex { return r.paths }
