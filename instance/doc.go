// Package instance models a stochastic UCARP instance and its seeded
// realizations.
//
// Overview:
//
//   - An Instance couples a core.Graph with the task set, the depot, the
//     vehicle capacity, the fleet size and two uncertainty levels. Each arc's
//     demand and deadheading cost follow N(mean, level·mean).
//   - Realize(seed) samples one actual demand per task edge and one actual
//     deadheading cost per edge, applies each draw to both directions, and
//     recomputes the actual-cost shortest paths. Negative demand draws clip to
//     zero; negative cost draws mark the edge unusable (+Inf).
//   - A Realization is immutable and a pure function of (instance, seed), so
//     concurrent runs may share it.
//   - Samples holds the ordered seed list of one instance. Rotate advances
//     every seed by SeedGapRotation and invalidates cached realizations.
//
// The instance also precomputes two static indices over expected distances:
// the task-to-task neighbour lists used to seed every simulation state, and
// the flood relation (task A floods task B when B lies on A's shortest path
// back to the depot).
//
// Errors:
//
//	ErrNilGraph         - no graph supplied.
//	ErrBadDepot         - depot outside the graph.
//	ErrNoTasks          - the graph has no arc with positive demand.
//	ErrBadCapacity      - capacity is not positive.
//	ErrBadFleet         - fewer than one vehicle.
//	ErrBadUncertainty   - negative uncertainty level.
//	ErrUnreachableTask  - a task cannot be reached from the depot and back.
//	ErrDepotTask        - the graph already has a depot loop with a cost or demand.
//	ErrNotRealized      - a realization was requested before Realize ran.
//	ErrSampleOutOfRange - sample index outside the seed list.
package instance
