package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph construction and lookup.
var (
	// ErrTooFewNodes indicates a graph with no nodes was requested.
	ErrTooFewNodes = errors.New("core: graph needs at least one node")

	// ErrNodeOutOfRange indicates a node id outside 1..N.
	ErrNodeOutOfRange = errors.New("core: node id out of range")

	// ErrNegativeValue indicates a negative cost or demand on a new edge.
	ErrNegativeValue = errors.New("core: negative cost or demand")

	// ErrDuplicateArc indicates an arc between the same ordered pair already exists.
	ErrDuplicateArc = errors.New("core: duplicate arc")

	// ErrLoopInUse indicates an existing loop with a cost or demand where a
	// zero sentinel loop was expected.
	ErrLoopInUse = errors.New("core: loop carries cost or demand")

	// ErrArcNotFound indicates no arc joins the requested ordered pair.
	ErrArcNotFound = errors.New("core: arc not found")
)

// ArcID addresses an Arc inside its Graph's arena.
type ArcID int

// NoArc is the zero-information ArcID returned when a lookup fails.
const NoArc ArcID = -1

// Arc is one direction of an edge.
//
// Arcs are immutable once added to a Graph. ExpectedDemand and
// ExpectedCost are the means of the demand and deadheading-cost
// distributions; the spread is owned by the instance (uncertainty level
// times mean).
type Arc struct {
	ID      ArcID // position in the arena
	From    int   // head node
	To      int   // tail node
	Inverse ArcID // the opposite direction; ID itself for loops

	ServeCost      float64 // cost of traversing while serving
	ExpectedDemand float64 // mean demand, > 0 for tasks
	ExpectedCost   float64 // mean deadheading cost
}

// IsTask reports whether the arc carries demand.
func (a *Arc) IsTask() bool { return a.ExpectedDemand > 0 }

// IsLoop reports whether the arc starts and ends at the same node.
func (a *Arc) IsLoop() bool { return a.From == a.To }

// Compare orders arcs lexicographically on (From, To).
// It returns -1, 0 or +1.
func (a *Arc) Compare(b *Arc) int {
	switch {
	case a.From < b.From:
		return -1
	case a.From > b.From:
		return 1
	case a.To < b.To:
		return -1
	case a.To > b.To:
		return 1
	}

	return 0
}

// String renders the arc as "(from,to)".
func (a *Arc) String() string { return fmt.Sprintf("(%d,%d)", a.From, a.To) }

// Graph is the static road network: dense node ids 1..N and an arc arena.
//
// index[(u-1)*n+(v-1)] holds the ArcID for u→v or NoArc.
// out[u] and in[v] keep ArcIDs ordered by the opposite endpoint so that
// every scan over neighbours is deterministic.
type Graph struct {
	n     int
	arcs  []Arc
	index []ArcID
	out   [][]ArcID
	in    [][]ArcID
	edges int
}
