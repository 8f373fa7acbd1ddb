// Package tour implements the giant tour representation and the split
// procedure that turns it into a plan.
//
// Overview:
//
// A giant tour lists every task edge once, in a chosen direction, without
// trip delimiters. Split partitions it into trips by dynamic programming
// over prefixes: best[0] = 0 and, for every start s and every end e such
// that the demand of t[s..e] fits the capacity,
//
//	best[e+1] = min(best[e+1], best[s] + trip(s, e))
//
// where trip(s, e) runs depot → t[s] → … → t[e] → depot along shortest
// paths. Ties prefer fewer trips. Each trip becomes a TaskSeqRoute
// bracketed by the depot loop, ready for plan-following simulation.
//
// Split uses expected values; SplitRealized uses one realization.
//
// Complexity:
//
//	Validate      O(n)
//	Split         O(n·w), w the longest feasible trip
//	FromSolution  O(route steps)
//
// Errors:
//
//	ErrNilInstance    - no instance or realization.
//	ErrEmptyTour      - no tasks in the tour.
//	ErrUnknownTask    - an entry is not a task arc.
//	ErrDuplicateTask  - an edge appears twice, in either direction.
//	ErrIncompleteTour - a task edge is missing.
//	ErrInfeasibleTour - some task alone exceeds the capacity.
package tour
