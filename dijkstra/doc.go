// Package dijkstra maintains all-pairs shortest-path tables over a core.Graph
// with float64 arc weights.
//
// A PathIndex stores, for every ordered node pair (u, v):
//
//   - Distance(u, v):    the shortest known distance from u to v;
//   - Predecessor(u, v): the node right before v on that path;
//   - NextHop(u, v):     the node right after u on that path.
//
// Tables are built by one Dijkstra run per source. Ties are resolved by the
// smaller node id, so tables are identical across runs and platforms.
//
// Weights are supplied by a Weight function. A weight of +Inf marks an arc as
// unusable: Dijkstra never traverses it. This is how a simulation run marks
// edges that failed in its realization.
//
// Repair:
//
//   - RecomputeFrom(u) refreshes the whole row of u.
//   - RecomputeBetween(u, v) runs Dijkstra from u with early termination once
//     v is settled. It refreshes only the row entries it settles, which is
//     enough for the next hop toward v.
//
// A PathIndex is not safe for concurrent mutation. Share it read-only, or
// Clone it before repairing.
//
// Complexity:
//
//   - Build:            O(V·(V+E) log V)
//   - RecomputeFrom:    O((V+E) log V)
//   - RecomputeBetween: O((V+E) log V) worst case, usually far less.
//   - Queries:          O(1); Path is O(path length).
//
// Errors:
//
//	ErrNilGraph       - graph is nil.
//	ErrNilWeight      - weight function is nil.
//	ErrNegativeWeight - a weight below zero was found.
//	ErrNaNWeight      - a weight is NaN.
//	ErrSizeMismatch   - the index was built for a different node count.
//	ErrUnreachable    - no usable path joins the requested pair.
package dijkstra
