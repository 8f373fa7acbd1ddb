package state

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/dijkstra"
)

// EstDistance returns the run's current estimate of the shortest distance
// u→v: expected costs, minus the arcs found unusable so far.
func (s *State) EstDistance(u, v int) float64 { return s.paths.Distance(u, v) }

// EstArcDistance is EstDistance from the tail of a to the head of b.
func (s *State) EstArcDistance(a, b core.ArcID) float64 {
	g := s.Graph()
	return s.paths.Distance(g.Arc(a).To, g.Arc(b).From)
}

// Failures returns the number of arcs marked unusable so far.
func (s *State) Failures() int { return s.failures }

// Unusable reports whether the run has marked id unusable.
func (s *State) Unusable(id core.ArcID) bool {
	return s.estCost != nil && math.IsInf(s.estCost[id], 1)
}

// ObserveFailures checks every arc leaving u against the realization and
// marks the unusable ones (both directions) in the run-local cost table.
// It returns the arcs newly marked.
func (s *State) ObserveFailures(u int) []core.ArcID {
	var marked []core.ArcID
	g := s.Graph()
	for _, id := range g.Out(u) {
		if s.real.Usable(id) || s.Unusable(id) {
			continue
		}
		s.own()
		s.estCost[id] = math.Inf(1)
		s.estCost[g.Arc(id).Inverse] = math.Inf(1)
		s.failures++
		marked = append(marked, id)
	}

	return marked
}

// Hop returns the next node on the estimated path u→target, after observing
// the arcs leaving u. failed reports that the hop planned before the
// observation used one of the arcs it newly marked, so the path was
// rerouted. A target that can no longer be reached yields ErrDisconnected.
func (s *State) Hop(u, target int) (next int, failed bool, err error) {
	// 1) Planned hop on the current tables.
	planned := s.paths.NextHop(u, target)

	// 2) Observe and repair.
	marked := s.ObserveFailures(u)
	if next, err = s.NextHop(u, target); err != nil {
		return 0, false, err
	}

	// 3) Was the plan broken by a newly found failure?
	if planned != 0 {
		failed = slices.Contains(marked, s.Graph().Lookup(u, planned))
	}

	return next, failed, nil
}

// NextHop returns the successor of u on the estimated path to v. If arcs
// were marked since the pair was last repaired, the path is first
// recomputed with Reroute.
func (s *State) NextHop(u, v int) (int, error) {
	if u == v {
		return u, nil
	}
	if s.failures > 0 && s.repaired[s.pair(u, v)] < s.failures {
		if err := s.Reroute(u, v); err != nil {
			return 0, err
		}
	}
	next := s.paths.NextHop(u, v)
	if next == 0 {
		return 0, fmt.Errorf("%w: %d→%d", ErrDisconnected, u, v)
	}

	return next, nil
}

// Reroute recomputes the estimated path u→v under the run-local costs.
func (s *State) Reroute(u, v int) error {
	s.own()
	err := s.paths.RecomputeBetween(s.Graph(), s.estWeight, u, v)
	if errors.Is(err, dijkstra.ErrUnreachable) {
		return fmt.Errorf("%w: %v", ErrDisconnected, err)
	}
	if err != nil {
		return err
	}
	s.repaired[s.pair(u, v)] = s.failures

	return nil
}

func (s *State) estWeight(id core.ArcID) float64 { return s.estCost[id] }

// own switches the run to private copies of the path tables.
func (s *State) own() {
	if s.ownPaths {
		return
	}
	g := s.Graph()
	s.paths = s.paths.Clone()
	s.ownPaths = true
	s.estCost = make([]float64, g.NumArcs())
	for id := range s.estCost {
		s.estCost[id] = g.Arc(core.ArcID(id)).ExpectedCost
	}
	n := g.NumNodes()
	s.repaired = make([]int, n*n)
}

func (s *State) pair(u, v int) int { return (u-1)*s.Graph().NumNodes() + (v - 1) }
