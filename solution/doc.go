// Package solution holds the route representations produced and consumed by
// the simulation: node-sequence routes recorded while vehicles move, and
// task-sequence routes used for plans and split giant tours.
//
// Costs and demands are read through a Scenario. An *instance.Realization is
// the actual scenario; an *instance.Instance is the expected one. The same
// route code therefore serves both realized simulation and expected-value
// lookahead.
//
// Invariants kept by both route kinds:
//
//   - the sequence starts at the depot, and a closed route ends there;
//   - load never exceeds capacity at any prefix when the caller respects
//     RemainingCapacity before serving (PeakLoad records the worst prefix).
package solution
