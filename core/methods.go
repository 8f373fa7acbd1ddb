// File: methods.go
// Role: Graph construction and read-only queries.
// Determinism:
//   - Arc IDs are assigned in insertion order.
//   - Neighbour lists are kept sorted by the opposite endpoint.

package core

import (
	"fmt"
	"sort"
)

// NewGraph returns an empty graph over nodes 1..n.
//
// Complexity: O(n²) for the dense arc index.
func NewGraph(n int) (*Graph, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: n=%d", ErrTooFewNodes, n)
	}
	g := &Graph{
		n:     n,
		index: make([]ArcID, n*n),
		out:   make([][]ArcID, n+1),
		in:    make([][]ArcID, n+1),
	}
	for i := range g.index {
		g.index[i] = NoArc
	}

	return g, nil
}

// AddEdge inserts the undirected edge {u,v} as two inverse arcs sharing the
// same serve cost, expected deadheading cost and expected demand.
// For u == v a single self-inverse loop arc is created and returned twice.
//
// Complexity: O(deg(u) + deg(v)).
func (g *Graph) AddEdge(u, v int, serveCost, deadheadCost, demand float64) (ArcID, ArcID, error) {
	// 1) Validate endpoints and values before touching the arena.
	if err := g.checkNode(u); err != nil {
		return NoArc, NoArc, err
	}
	if err := g.checkNode(v); err != nil {
		return NoArc, NoArc, err
	}
	if serveCost < 0 || deadheadCost < 0 || demand < 0 {
		return NoArc, NoArc, fmt.Errorf("%w: edge (%d,%d) serve=%g cost=%g demand=%g",
			ErrNegativeValue, u, v, serveCost, deadheadCost, demand)
	}
	if g.index[g.slot(u, v)] != NoArc || g.index[g.slot(v, u)] != NoArc {
		return NoArc, NoArc, fmt.Errorf("%w: (%d,%d)", ErrDuplicateArc, u, v)
	}

	// 2) Append the forward arc; loops are their own inverse.
	fwd := g.push(u, v, serveCost, deadheadCost, demand)
	g.edges++
	if u == v {
		g.arcs[fwd].Inverse = fwd

		return fwd, fwd, nil
	}

	// 3) Append the backward arc and link the pair.
	bwd := g.push(v, u, serveCost, deadheadCost, demand)
	g.arcs[fwd].Inverse = bwd
	g.arcs[bwd].Inverse = fwd

	return fwd, bwd, nil
}

// EnsureLoop returns the zero-cost, zero-demand loop at node, creating it if
// needed. It is used for the depot sentinel task. An existing loop with any
// cost or demand is a real edge and yields ErrLoopInUse.
func (g *Graph) EnsureLoop(node int) (ArcID, error) {
	if err := g.checkNode(node); err != nil {
		return NoArc, err
	}
	if id := g.index[g.slot(node, node)]; id != NoArc {
		a := &g.arcs[id]
		if a.ServeCost != 0 || a.ExpectedCost != 0 || a.ExpectedDemand != 0 {
			return NoArc, fmt.Errorf("%w: %s", ErrLoopInUse, a)
		}

		return id, nil
	}
	id, _, err := g.AddEdge(node, node, 0, 0, 0)

	return id, err
}

// push appends one arc and registers it in the index and neighbour lists.
func (g *Graph) push(u, v int, serveCost, deadheadCost, demand float64) ArcID {
	id := ArcID(len(g.arcs))
	g.arcs = append(g.arcs, Arc{
		ID:             id,
		From:           u,
		To:             v,
		Inverse:        NoArc,
		ServeCost:      serveCost,
		ExpectedDemand: demand,
		ExpectedCost:   deadheadCost,
	})
	g.index[g.slot(u, v)] = id
	g.out[u] = g.insertSorted(g.out[u], id, func(a *Arc) int { return a.To })
	g.in[v] = g.insertSorted(g.in[v], id, func(a *Arc) int { return a.From })

	return id
}

// insertSorted places id into list keeping key order ascending.
func (g *Graph) insertSorted(list []ArcID, id ArcID, key func(*Arc) int) []ArcID {
	k := key(&g.arcs[id])
	pos := sort.Search(len(list), func(i int) bool { return key(&g.arcs[list[i]]) > k })
	list = append(list, NoArc)
	copy(list[pos+1:], list[pos:])
	list[pos] = id

	return list
}

func (g *Graph) slot(u, v int) int { return (u-1)*g.n + (v - 1) }

func (g *Graph) checkNode(u int) error {
	if u < 1 || u > g.n {
		return fmt.Errorf("%w: %d not in 1..%d", ErrNodeOutOfRange, u, g.n)
	}

	return nil
}

// NumNodes returns N.
func (g *Graph) NumNodes() int { return g.n }

// NumArcs returns the arena size.
func (g *Graph) NumArcs() int { return len(g.arcs) }

// NumEdges returns the number of undirected edges (loops count once).
func (g *Graph) NumEdges() int { return g.edges }

// HasNode reports whether u is a valid node id.
func (g *Graph) HasNode(u int) bool { return u >= 1 && u <= g.n }

// Arc returns the arc with the given id. The pointer aliases the arena and
// must be treated as read-only.
func (g *Graph) Arc(id ArcID) *Arc { return &g.arcs[id] }

// ArcBetween returns the arc u→v.
func (g *Graph) ArcBetween(u, v int) (ArcID, error) {
	if !g.HasNode(u) || !g.HasNode(v) {
		return NoArc, fmt.Errorf("%w: (%d,%d)", ErrArcNotFound, u, v)
	}
	id := g.index[g.slot(u, v)]
	if id == NoArc {
		return NoArc, fmt.Errorf("%w: (%d,%d)", ErrArcNotFound, u, v)
	}

	return id, nil
}

// Lookup is ArcBetween without the error, for hot paths that already know
// the arc exists. It returns NoArc otherwise.
func (g *Graph) Lookup(u, v int) ArcID {
	if !g.HasNode(u) || !g.HasNode(v) {
		return NoArc
	}

	return g.index[g.slot(u, v)]
}

// Out returns the arcs leaving u ordered by target node.
func (g *Graph) Out(u int) []ArcID { return g.out[u] }

// In returns the arcs entering v ordered by source node.
func (g *Graph) In(v int) []ArcID { return g.in[v] }

// Edges returns one representative ArcID per undirected edge, in insertion
// order. Realizations draw one sample per edge in exactly this order.
func (g *Graph) Edges() []ArcID {
	res := make([]ArcID, 0, g.edges)
	for i := range g.arcs {
		a := &g.arcs[i]
		if a.Inverse >= a.ID {
			res = append(res, a.ID)
		}
	}

	return res
}

// Compare orders two arcs by (From, To).
func (g *Graph) Compare(a, b ArcID) int { return g.arcs[a].Compare(&g.arcs[b]) }

// SortArcs sorts ids in natural arc order in place.
func (g *Graph) SortArcs(ids []ArcID) {
	sort.Slice(ids, func(i, j int) bool { return g.Compare(ids[i], ids[j]) < 0 })
}

// Tasks returns every arc with positive expected demand in natural order.
func (g *Graph) Tasks() []ArcID {
	res := make([]ArcID, 0, len(g.arcs))
	for i := range g.arcs {
		if g.arcs[i].IsTask() {
			res = append(res, g.arcs[i].ID)
		}
	}
	g.SortArcs(res)

	return res
}
