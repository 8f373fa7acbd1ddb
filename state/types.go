package state

import (
	"errors"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/dijkstra"
	"github.com/katalvlaran/ucarp/instance"
	"github.com/katalvlaran/ucarp/solution"
)

// Sentinel errors.
var (
	ErrNilInstance  = errors.New("state: instance is nil")
	ErrNoRoutes     = errors.New("state: at least one route required")
	ErrDisconnected = errors.New("state: no usable path")
)

// NodeSolution is the solution type built during simulation.
type NodeSolution = solution.Solution[*solution.NodeSeqRoute]

// State is the per-run bookkeeping of a simulation.
type State struct {
	inst *instance.Instance
	real *instance.Realization

	remaining  []core.ArcID
	unassigned []core.ArcID
	fraction   map[core.ArcID]float64
	sol        *NodeSolution

	taskToTask  map[core.ArcID][]core.ArcID
	routeToTask map[core.ArcID][]int

	// Run-local expected distances; copy-on-write from the instance.
	paths    *dijkstra.PathIndex
	ownPaths bool
	estCost  []float64 // nil until the first observed failure
	failures int       // arcs marked unusable so far
	repaired []int     // failures count at the last repair of each pair
}
