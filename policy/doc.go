// Package policy implements the decision strategies consulted by the
// simulation engine.
//
// Overview:
//
// A Policy assigns a priority to a candidate task as seen from a route and a
// simulation state; lower is better. Choosing the next task is a two-step
// affair:
//
//  1. Filter: a PoolFilter prunes the candidate pool (capacity feasibility,
//     optionally admitting tasks that are reached through the depot anyway).
//  2. Choose: every survivor is scored and the minimum wins; equal scores go
//     to the TieBreaker (natural arc order by default, or a seeded coin).
//
// ContinueService reuses the priority with a sign convention: a negative
// priority for the planned task means "go back to the depot first".
//
// Variants:
//
//   - Simple wraps a PriorityFunc. The classic constructive heuristics
//     (NearestNeighbour, Feasibility, PathScanning2/3/5) and Linear, a
//     weighted sum of named features, are all Simple policies.
//   - Ensemble composes member policies through a Combiner: Aggregate sums
//     weighted member priorities, Vote lets each member elect its top choice
//     and takes the weighted majority.
//
// Policies hold no per-run state and are safe to share between concurrent
// simulation runs. The Random tie breaker derives its coin from the decision
// context instead of a shared stream for the same reason.
//
// Features (see Features for the full table) mirror the terminals of learned
// routing formulas: CFH, CFD, CTD, CR, DEM, DC, SC, DR, FULL, FAS, FAS1, RQ,
// RQ1, FRT, FUT, CFR1, CTT1, FF.
//
// Errors:
//
//	ErrUnknownPolicy  - ByName got an unregistered policy name.
//	ErrUnknownFilter  - FilterByName got an unregistered filter name.
//	ErrUnknownFeature - a Linear term names no registered feature.
//	ErrEmptyEnsemble  - an ensemble needs at least one member.
//	ErrWeightCount    - ensemble weights and members differ in length.
package policy
