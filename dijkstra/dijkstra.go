package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/matrix"
)

// Build computes the full PathIndex of g under w, one Dijkstra run per node.
//
// Preconditions, checked in order:
//  1. g is non-nil (ErrNilGraph).
//  2. w is non-nil (ErrNilWeight).
//  3. No arc weight is negative (ErrNegativeWeight) or NaN (ErrNaNWeight).
//
// Unreachable pairs keep Distance = +Inf and no successor; that is not an
// error here, only RecomputeBetween reports it.
func Build(g *core.Graph, w Weight) (*PathIndex, error) {
	// 1) Validate inputs.
	if g == nil {
		return nil, ErrNilGraph
	}
	if w == nil {
		return nil, ErrNilWeight
	}
	if err := scanWeights(g, w); err != nil {
		return nil, err
	}

	// 2) Allocate the dense tables.
	n := g.NumNodes()
	dist, err := matrix.NewFilled(n, n, math.Inf(1))
	if err != nil {
		return nil, fmt.Errorf("dijkstra: distance table: %w", err)
	}
	p := &PathIndex{
		n:    n,
		dist: dist,
		pred: make([]int, n*n),
		next: make([]int, n*n),
	}

	// 3) One run per source, reusing a single runner.
	r := newRunner(g, w, n)
	for u := 1; u <= n; u++ {
		r.run(p, u, noNode)
	}

	return p, nil
}

// RecomputeFrom refreshes every entry of row u under w.
func (p *PathIndex) RecomputeFrom(g *core.Graph, w Weight, u int) error {
	if err := p.check(g, w); err != nil {
		return err
	}
	newRunner(g, w, p.n).run(p, u, noNode)

	return nil
}

// RecomputeBetween runs Dijkstra from u under w and stops as soon as v is
// settled. Only the settled entries of row u are rewritten.
// It returns ErrUnreachable if v cannot be reached through usable arcs.
func (p *PathIndex) RecomputeBetween(g *core.Graph, w Weight, u, v int) error {
	if err := p.check(g, w); err != nil {
		return err
	}
	if !newRunner(g, w, p.n).run(p, u, v) {
		return fmt.Errorf("%w: %d→%d", ErrUnreachable, u, v)
	}

	return nil
}

func (p *PathIndex) check(g *core.Graph, w Weight) error {
	if g == nil {
		return ErrNilGraph
	}
	if w == nil {
		return ErrNilWeight
	}
	if g.NumNodes() != p.n {
		return fmt.Errorf("%w: index=%d graph=%d", ErrSizeMismatch, p.n, g.NumNodes())
	}

	return nil
}

// scanWeights fails fast on negative or NaN weights.
func scanWeights(g *core.Graph, w Weight) error {
	var (
		id core.ArcID
		x  float64
	)
	for id = 0; int(id) < g.NumArcs(); id++ {
		x = w(id)
		if math.IsNaN(x) {
			return fmt.Errorf("%w: arc %s", ErrNaNWeight, g.Arc(id))
		}
		if x < 0 {
			return fmt.Errorf("%w: arc %s weight=%g", ErrNegativeWeight, g.Arc(id), x)
		}
	}

	return nil
}

// runner holds the scratch state of single-source runs. Buffers are reused
// across sources by Build.
type runner struct {
	g       *core.Graph
	w       Weight
	dist    []float64 // indexed by node id; slot 0 unused
	pred    []int
	visited []bool
	order   []int // settle order, drives successor derivation
	pq      nodePQ
}

func newRunner(g *core.Graph, w Weight, n int) *runner {
	return &runner{
		g:       g,
		w:       w,
		dist:    make([]float64, n+1),
		pred:    make([]int, n+1),
		visited: make([]bool, n+1),
		order:   make([]int, 0, n),
		pq:      make(nodePQ, 0, n),
	}
}

// run executes Dijkstra from src and writes settled results into row src of p.
// If stop != noNode the search ends once stop is settled; entries that were
// not settled are left untouched in that case. When the frontier empties
// first, the run was exhaustive and the whole row is rewritten.
// It reports whether stop was settled (always true for stop == noNode).
func (r *runner) run(p *PathIndex, src, stop int) bool {
	// 1) Reset scratch buffers.
	var v int
	for v = range r.dist {
		r.dist[v] = math.Inf(1)
		r.pred[v] = noNode
		r.visited[v] = false
	}
	r.order = r.order[:0]
	r.pq = r.pq[:0]

	// 2) Seed the heap with the source.
	r.dist[src] = 0
	heap.Push(&r.pq, nodeItem{node: src, dist: 0})

	// 3) Main loop: settle the closest node, relax its out-arcs.
	var (
		item nodeItem
		u    int
		id   core.ArcID
		a    *core.Arc
		nd   float64
		cost float64
	)
	early := false
	for r.pq.Len() > 0 {
		item = heap.Pop(&r.pq).(nodeItem)
		u = item.node
		if r.visited[u] {
			continue // stale entry
		}
		r.visited[u] = true
		r.order = append(r.order, u)
		if u == stop {
			early = true
			break
		}
		for _, id = range r.g.Out(u) {
			a = r.g.Arc(id)
			if a.To == u || r.visited[a.To] {
				continue
			}
			cost = r.w(id)
			if math.IsInf(cost, 1) {
				continue // unusable arc
			}
			nd = r.dist[u] + cost
			// Strictly shorter wins; on equal length the smaller predecessor
			// wins so that tables do not depend on heap internals.
			if nd < r.dist[a.To] || (nd == r.dist[a.To] && u < r.pred[a.To]) {
				r.dist[a.To] = nd
				r.pred[a.To] = u
				heap.Push(&r.pq, nodeItem{node: a.To, dist: nd})
			}
		}
	}

	// 4) Write back. An exhaustive run also clears unreachable entries.
	r.flush(p, src, !early)

	return stop == noNode || early
}

// flush copies the settled results of a run into row src of p and derives
// successors from predecessors in settle order.
func (r *runner) flush(p *PathIndex, src int, full bool) {
	var (
		v, k int
		row  = p.dist.Row(src - 1)
	)
	if full {
		for v = 1; v <= p.n; v++ {
			k = p.at(src, v)
			row[v-1] = math.Inf(1)
			p.pred[k] = noNode
			p.next[k] = noNode
		}
	}
	for _, v = range r.order {
		k = p.at(src, v)
		row[v-1] = r.dist[v]
		p.pred[k] = r.pred[v]
		switch {
		case v == src:
			p.next[k] = noNode
		case r.pred[v] == src:
			p.next[k] = v
		default:
			// pred[v] was settled before v, so its successor is already known.
			p.next[k] = p.next[p.at(src, r.pred[v])]
		}
	}
}
