// Package core defines the Arc arena and the static Graph topology on which
// every UCARP simulation runs.
//
// Overview:
//
//   - Nodes are dense integer ids 1..N.
//   - Every undirected edge {u,v} is stored as two inverse Arcs (u→v, v→u);
//     a self-loop (u,u) is a single Arc that is its own inverse.
//   - Arcs live in one slice and are addressed by ArcID. Everything that
//     changes during a simulation run (remaining demand, priorities, failed
//     edges) is kept by the run, keyed by ArcID, never on the Arc itself.
//   - An Arc with positive expected demand is a task. The depot self-loop is a
//     zero-demand sentinel meaning "at the depot, no pending task".
//   - Natural arc order is lexicographic on (From, To); it is the default
//     tie-break everywhere in this module.
//
// Lifecycle:
//
//	g, _ := core.NewGraph(4)
//	a, inv, _ := g.AddEdge(1, 2, 3, 3, 10) // serve cost, deadheading cost, demand
//	loop := g.EnsureLoop(1)                // depot loop sentinel
//
// A Graph is built by a single goroutine and is read-only afterwards; once
// built it may be shared freely by concurrent simulation runs.
//
// Complexity:
//
//   - AddEdge:    O(deg) to keep neighbour lists ordered.
//   - ArcBetween: O(1) via the dense N×N index.
//   - Out / In:   O(1), returned slices are shared and must not be mutated.
//
// Errors:
//
//	ErrTooFewNodes    - NewGraph called with n < 1.
//	ErrNodeOutOfRange - node id outside 1..N.
//	ErrNegativeValue  - negative serve cost, deadheading cost or demand.
//	ErrDuplicateArc   - an arc between the same ordered pair already exists.
//	ErrLoopInUse      - EnsureLoop found a loop with a cost or demand.
//	ErrArcNotFound    - lookup by (from, to) failed.
package core
