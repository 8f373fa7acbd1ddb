// Package sim is the discrete-event simulation engine of the fleet.
//
// Every vehicle is driven by a chain of events ordered by a simulated clock,
// the vehicle's accumulated route cost. Ties are broken by insertion order.
// Each event handler runs to completion and enqueues at most one successor
// for its vehicle; the run ends when the queue drains.
//
// Event kinds:
//
//   - Refill: head for the depot. On arrival the vehicle empties; with no
//     unassigned work left the route closes, otherwise a new task is chosen.
//   - Serving: head for the head node of the target task. On arrival the
//     remaining demand is served. If it exceeds the remaining capacity, the
//     fitting share is served and the vehicle switches to RefillThenServe:
//     a route failure. Otherwise the task completes and the next one is
//     chosen.
//   - RefillThenServe: head for the depot, then resume the same task.
//
// Modes share these transitions and differ in how the next task is chosen:
//
//	Reactive  the routing policy picks from the unassigned pool.
//	Plan      the task comes from a precomputed TaskSeqRoute per vehicle;
//	          the policy only decides between continuing and refilling.
//	Pilot     the policy proposes its top candidates; each is committed on a
//	          cloned state and rolled out to completion with expected values,
//	          and the cheapest rollout wins.
//
// Every hop observes the arcs leaving the current node. Arcs unusable in the
// realization are marked in the run's estimated costs, and a broken planned
// path is rerouted. A target that becomes unreachable aborts the run with
// ErrDisconnected.
//
// Route failures, rerouted hops and empty candidate pools are modelled
// outcomes, never errors. A vehicle whose filtered pool is empty returns to
// the depot; at the depot it picks from the unfiltered pool instead so that
// it never idles while work remains.
//
// Complexity: every event advances one vehicle by one arc or completes one
// decision; a decision costs O(pool · priority). Pilot decisions add up to
// K full rollouts each.
//
// Errors:
//
//	ErrNilState     - no state supplied.
//	ErrNilPolicy    - no routing policy supplied.
//	ErrNilPlan      - plan mode without a plan.
//	ErrPlanSize     - plan route count differs from the state's route count.
//	ErrBadPilot     - pilot width below one.
//	ErrDisconnected - a target became unreachable (alias of state.ErrDisconnected).
package sim
