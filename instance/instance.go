package instance

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/dijkstra"
)

// New validates the inputs, installs the depot loop, computes the expected
// shortest-path tables and the static task indices.
//
// The graph gains a depot loop arc if it had none; after New returns the
// graph must not be mutated.
func New(g *core.Graph, depot int, capacity float64, vehicles int, opts ...Option) (*Instance, error) {
	// 1) Collect options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Structural validation (fail fast before any simulation).
	if g == nil {
		return nil, ErrNilGraph
	}
	if !g.HasNode(depot) {
		return nil, fmt.Errorf("%w: %d", ErrBadDepot, depot)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrBadCapacity, capacity)
	}
	if vehicles < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadFleet, vehicles)
	}
	if cfg.DemandLevel < 0 || cfg.CostLevel < 0 {
		return nil, fmt.Errorf("%w: demand=%g cost=%g", ErrBadUncertainty, cfg.DemandLevel, cfg.CostLevel)
	}
	tasks := g.Tasks()
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}

	// 3) Depot sentinel.
	loop, err := g.EnsureLoop(depot)
	if errors.Is(err, core.ErrLoopInUse) {
		return nil, fmt.Errorf("%w: %w", ErrDepotTask, err)
	}
	if err != nil {
		return nil, fmt.Errorf("instance: depot loop: %w", err)
	}

	// 4) Expected-cost tables.
	paths, err := dijkstra.Build(g, func(id core.ArcID) float64 { return g.Arc(id).ExpectedCost })
	if err != nil {
		return nil, fmt.Errorf("instance: expected paths: %w", err)
	}
	for _, id := range tasks {
		a := g.Arc(id)
		if math.IsInf(paths.Distance(depot, a.From), 1) || math.IsInf(paths.Distance(a.To, depot), 1) {
			return nil, fmt.Errorf("%w: %s", ErrUnreachableTask, a.String())
		}
	}

	in := &Instance{
		name:        cfg.Name,
		graph:       g,
		tasks:       tasks,
		depot:       depot,
		depotLoop:   loop,
		capacity:    capacity,
		vehicles:    vehicles,
		demandLevel: cfg.DemandLevel,
		costLevel:   cfg.CostLevel,
		paths:       paths,
	}

	// 5) Static indices.
	in.buildTaskToTask()
	in.buildFloods()

	return in, nil
}

// buildTaskToTask sorts, for the depot loop and each task, every other task
// by expected distance from its tail to the candidate's head. Ties keep the
// natural arc order.
func (in *Instance) buildTaskToTask() {
	in.taskToTask = make(map[core.ArcID][]core.ArcID, len(in.tasks)+1)
	in.taskToTask[in.depotLoop] = in.sortedFrom(in.depotLoop)
	for _, t := range in.tasks {
		in.taskToTask[t] = in.sortedFrom(t)
	}
}

func (in *Instance) sortedFrom(from core.ArcID) []core.ArcID {
	inv := in.graph.Arc(from).Inverse
	list := make([]core.ArcID, 0, len(in.tasks))
	for _, t := range in.tasks {
		if t == from || t == inv {
			continue
		}
		list = append(list, t)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return in.ArcDistance(from, list[i]) < in.ArcDistance(from, list[j])
	})

	return list
}

// buildFloods walks each task's expected shortest path from its tail back to
// the depot and records every task arc traversed on the way.
func (in *Instance) buildFloods() {
	in.floodedBy = make(map[core.ArcID][]core.ArcID, len(in.tasks))
	var (
		cur, nxt int
		on       core.ArcID
	)
	for _, a := range in.tasks {
		cur = in.graph.Arc(a).To
		for steps := 0; cur != in.depot && steps < in.graph.NumNodes(); steps++ {
			nxt = in.paths.NextHop(cur, in.depot)
			if nxt == 0 {
				break // depot unreachable from here
			}
			on = in.graph.Lookup(cur, nxt)
			if on != core.NoArc && on != a && in.graph.Arc(on).IsTask() {
				in.floodedBy[on] = append(in.floodedBy[on], a)
			}
			cur = nxt
		}
	}
}

// Name returns the instance label.
func (in *Instance) Name() string { return in.name }

// Graph returns the shared topology.
func (in *Instance) Graph() *core.Graph { return in.graph }

// Tasks returns all task arcs in natural order. The slice is shared.
func (in *Instance) Tasks() []core.ArcID { return in.tasks }

// NumTasks returns the number of task arcs (two per task edge).
func (in *Instance) NumTasks() int { return len(in.tasks) }

// Depot returns the depot node.
func (in *Instance) Depot() int { return in.depot }

// DepotLoop returns the depot self-loop sentinel.
func (in *Instance) DepotLoop() core.ArcID { return in.depotLoop }

// Capacity returns the vehicle capacity.
func (in *Instance) Capacity() float64 { return in.capacity }

// Vehicles returns the fleet size.
func (in *Instance) Vehicles() int { return in.vehicles }

// DemandLevel returns the demand uncertainty level.
func (in *Instance) DemandLevel() float64 { return in.demandLevel }

// CostLevel returns the deadheading-cost uncertainty level.
func (in *Instance) CostLevel() float64 { return in.costLevel }

// Paths returns the shared expected-cost tables. Callers that need to
// repair them must Clone first.
func (in *Instance) Paths() *dijkstra.PathIndex { return in.paths }

// Distance returns the expected shortest distance u→v.
func (in *Instance) Distance(u, v int) float64 { return in.paths.Distance(u, v) }

// ArcDistance returns the expected distance from the tail of a to the head of b.
func (in *Instance) ArcDistance(a, b core.ArcID) float64 {
	return in.paths.Distance(in.graph.Arc(a).To, in.graph.Arc(b).From)
}

// TaskNeighbours returns the static neighbour list of a task or the depot
// loop: all other tasks ordered by expected distance. The slice is shared.
func (in *Instance) TaskNeighbours(t core.ArcID) []core.ArcID { return in.taskToTask[t] }

// FloodedBy returns the tasks whose expected path back to the depot
// traverses t. The slice is shared.
func (in *Instance) FloodedBy(t core.ArcID) []core.ArcID { return in.floodedBy[t] }

// WithVehicles returns a shallow copy that differs only in fleet size.
// Shared tables are not duplicated.
func (in *Instance) WithVehicles(vehicles int) (*Instance, error) {
	if vehicles < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadFleet, vehicles)
	}
	c := *in
	c.vehicles = vehicles

	return &c, nil
}

// Demand returns the expected demand of an arc. Together with Distance it
// lets the instance stand in for a realization wherever expected values are
// wanted.
func (in *Instance) Demand(id core.ArcID) float64 { return in.graph.Arc(id).ExpectedDemand }

// Cost returns the expected deadheading cost of an arc.
func (in *Instance) Cost(id core.ArcID) float64 { return in.graph.Arc(id).ExpectedCost }
