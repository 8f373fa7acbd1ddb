package state

import (
	"fmt"
	"slices"
	"sort"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/instance"
	"github.com/katalvlaran/ucarp/solution"
)

// New returns a fresh State with numRoutes empty routes at the depot.
// The realization is required: a run without one is undefined.
func New(inst *instance.Instance, real *instance.Realization, numRoutes int) (*State, error) {
	if inst == nil {
		return nil, ErrNilInstance
	}
	if real == nil {
		return nil, fmt.Errorf("state: %w", instance.ErrNotRealized)
	}
	if numRoutes < 1 {
		return nil, fmt.Errorf("%w: %d", ErrNoRoutes, numRoutes)
	}
	routes := make([]*solution.NodeSeqRoute, numRoutes)
	for i := range routes {
		routes[i] = solution.NewNodeSeqRoute(inst.Depot(), inst.Capacity())
	}
	s := &State{
		inst:  inst,
		real:  real,
		sol:   solution.New(routes...),
		paths: inst.Paths(),
	}
	s.initTasks()

	return s, nil
}

// initTasks (re)builds every task-keyed structure from the instance.
func (s *State) initTasks() {
	tasks := s.inst.Tasks()
	s.remaining = append(s.remaining[:0], tasks...)
	s.unassigned = append(s.unassigned[:0], tasks...)

	s.fraction = make(map[core.ArcID]float64, len(tasks))
	s.taskToTask = make(map[core.ArcID][]core.ArcID, len(tasks)+1)
	s.routeToTask = make(map[core.ArcID][]int, len(tasks))
	for _, t := range tasks {
		s.fraction[t] = 1
		s.taskToTask[t] = slices.Clone(s.inst.TaskNeighbours(t))
		s.routeToTask[t] = nil
	}
	loop := s.inst.DepotLoop()
	s.taskToTask[loop] = slices.Clone(s.inst.TaskNeighbours(loop))
}

// Reset returns the State to its freshly created form, keeping the same
// instance, realization and route count.
func (s *State) Reset() {
	for _, r := range s.sol.Routes() {
		r.Reset(s.inst.Depot())
	}
	s.initTasks()
	s.paths = s.inst.Paths()
	s.ownPaths = false
	s.estCost = nil
	s.failures = 0
	s.repaired = nil
}

// Clone returns an independent deep copy. Shared read-only tables stay
// shared; run-local repaired tables are copied.
func (s *State) Clone() *State {
	c := &State{
		inst:        s.inst,
		real:        s.real,
		remaining:   slices.Clone(s.remaining),
		unassigned:  slices.Clone(s.unassigned),
		fraction:    make(map[core.ArcID]float64, len(s.fraction)),
		sol:         s.sol.Clone(),
		taskToTask:  make(map[core.ArcID][]core.ArcID, len(s.taskToTask)),
		routeToTask: make(map[core.ArcID][]int, len(s.routeToTask)),
		paths:       s.paths,
		ownPaths:    s.ownPaths,
		estCost:     slices.Clone(s.estCost),
		failures:    s.failures,
		repaired:    slices.Clone(s.repaired),
	}
	for k, v := range s.fraction {
		c.fraction[k] = v
	}
	for k, v := range s.taskToTask {
		c.taskToTask[k] = slices.Clone(v)
	}
	for k, v := range s.routeToTask {
		c.routeToTask[k] = slices.Clone(v)
	}
	if s.ownPaths {
		c.paths = s.paths.Clone()
	}

	return c
}

// Instance returns the instance of the run.
func (s *State) Instance() *instance.Instance { return s.inst }

// Realization returns the realization of the run.
func (s *State) Realization() *instance.Realization { return s.real }

// Graph is shorthand for Instance().Graph().
func (s *State) Graph() *core.Graph { return s.inst.Graph() }

// Solution returns the partial solution.
func (s *State) Solution() *NodeSolution { return s.sol }

// Route returns the i-th route.
func (s *State) Route(i int) *solution.NodeSeqRoute { return s.sol.Route(i) }

// Remaining returns the unserved tasks in natural order. The slice is shared.
func (s *State) Remaining() []core.ArcID { return s.remaining }

// Unassigned returns the unserved, untargeted tasks. The slice is shared.
func (s *State) Unassigned() []core.ArcID { return s.unassigned }

// IsRemaining reports whether t is still unserved.
func (s *State) IsRemaining(t core.ArcID) bool {
	_, ok := s.fraction[t]
	return ok
}

// IsUnassigned reports whether t is still in the unassigned pool.
func (s *State) IsUnassigned(t core.ArcID) bool { return s.indexOf(s.unassigned, t) >= 0 }

// Fraction returns the remaining-demand fraction of t: 1 untouched,
// 0 fully served (also for tasks no longer remaining).
func (s *State) Fraction(t core.ArcID) float64 { return s.fraction[t] }

// SetFraction records a partial service of t. The inverse arc shares the
// same physical demand and is updated with it.
func (s *State) SetFraction(t core.ArcID, f float64) {
	if !s.IsRemaining(t) {
		return
	}
	s.fraction[t] = f
	inv := s.Graph().Arc(t).Inverse
	if _, ok := s.fraction[inv]; ok {
		s.fraction[inv] = f
	}
}

// RemoveRemaining drops t and its inverse from the remaining set and the
// fraction map.
func (s *State) RemoveRemaining(t core.ArcID) {
	inv := s.Graph().Arc(t).Inverse
	s.remaining = s.remove(s.remaining, t)
	s.remaining = s.remove(s.remaining, inv)
	delete(s.fraction, t)
	delete(s.fraction, inv)
}

// RemoveUnassigned drops t and its inverse from the unassigned pool.
func (s *State) RemoveUnassigned(t core.ArcID) {
	inv := s.Graph().Arc(t).Inverse
	s.unassigned = s.remove(s.unassigned, t)
	s.unassigned = s.remove(s.unassigned, inv)
}

// CompleteTask removes t and its inverse from the task-to-task and
// route-to-task indices, including every neighbour list.
func (s *State) CompleteTask(t core.ArcID) {
	inv := s.Graph().Arc(t).Inverse
	delete(s.taskToTask, t)
	delete(s.taskToTask, inv)
	delete(s.routeToTask, t)
	delete(s.routeToTask, inv)
	for k, list := range s.taskToTask {
		list = s.remove(list, t)
		s.taskToTask[k] = s.remove(list, inv)
	}
}

// CalcRouteToTask recomputes, for every remaining task, the list of routes
// other than current ordered by expected distance from their current node
// to the task's head. Ties keep route index order.
func (s *State) CalcRouteToTask(current int) {
	g := s.Graph()
	for t := range s.routeToTask {
		from := g.Arc(t).From
		list := s.routeToTask[t][:0]
		for i := 0; i < s.sol.Len(); i++ {
			if i != current {
				list = append(list, i)
			}
		}
		sort.SliceStable(list, func(a, b int) bool {
			return s.paths.Distance(s.sol.Route(list[a]).CurrNode(), from) <
				s.paths.Distance(s.sol.Route(list[b]).CurrNode(), from)
		})
		s.routeToTask[t] = list
	}
}

// TaskNeighbours returns the remaining tasks ordered by expected distance
// from the tail of t. t may be the depot loop.
func (s *State) TaskNeighbours(t core.ArcID) []core.ArcID { return s.taskToTask[t] }

// RouteNeighbours returns the other routes ordered by distance to t, as of
// the last CalcRouteToTask.
func (s *State) RouteNeighbours(t core.ArcID) []int { return s.routeToTask[t] }

// OnFloods returns the remaining tasks whose expected way back to the depot
// passes over t.
func (s *State) OnFloods(t core.ArcID) []core.ArcID {
	var res []core.ArcID
	for _, a := range s.inst.FloodedBy(t) {
		if s.IsRemaining(a) {
			res = append(res, a)
		}
	}

	return res
}

func (s *State) indexOf(list []core.ArcID, t core.ArcID) int {
	g := s.Graph()
	i, ok := sort.Find(len(list), func(i int) int { return g.Compare(t, list[i]) })
	if !ok {
		return -1
	}

	return i
}

// remove deletes t from a naturally ordered list, if present.
func (s *State) remove(list []core.ArcID, t core.ArcID) []core.ArcID {
	if i := s.indexOf(list, t); i >= 0 {
		return slices.Delete(list, i, i+1)
	}

	return list
}
