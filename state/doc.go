// Package state holds the mutable bookkeeping of one simulation run.
//
// A State is created per run (or cloned from another run's State) and is
// never shared between goroutines. It owns:
//
//   - the remaining tasks (unserved) and the unassigned tasks (unserved and
//     not targeted by any vehicle), both in natural arc order;
//   - the remaining-demand fraction of every remaining task. Its key set
//     always equals the remaining set; a served task reads as 0;
//   - the partial solution, one NodeSeqRoute per vehicle;
//   - the task-to-task index (remaining tasks ordered by expected distance
//     from each task's tail), trimmed as tasks complete;
//   - the route-to-task index (for each task, the other routes ordered by
//     distance from their current node), recomputed once per decision;
//   - the run's view of expected distances. It starts as the instance's
//     shared tables and is copied on first write, when an edge failure is
//     observed.
//
// Completing a task removes it and its inverse from every index.
//
// Errors:
//
//	ErrNilInstance  - no instance supplied.
//	ErrNoRoutes     - fewer than one route requested.
//	ErrDisconnected - no usable path joins two nodes under the run's estimates.
package state
