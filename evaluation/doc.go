// Package evaluation averages simulation objectives over a fixed set of
// instance samples.
//
// Overview:
//
// A Model holds, for every instance, an ordered list of seeds and the
// realizations they produce. One evaluation runs a simulation per
// (instance, seed) pair, called a process, on a fresh state and returns
// the arithmetic mean of every requested objective over all processes.
//
// Processes run in parallel on a bounded errgroup and write into indexed
// slots; the mean is taken in process order, so results do not depend on
// the worker count.
//
// Every process also carries a reference value: the objective reached by
// the PathScanning5 policy in reactive mode. EvaluateNormalised divides
// each value by its reference before averaging.
//
// RotateSeeds shifts every seed by instance.SeedGapRotation, realizes the
// new samples and recomputes the references.
//
// Errors:
//
//	ErrNoObjectives  - NewModel without objectives.
//	ErrNoSamples     - NewModel without instances, or an instance without seeds.
//	ErrNilSamples    - a nil entry in the sample list.
//	ErrNilPolicy     - an evaluation without policy.
//	ErrPlanCount     - EvaluatePlan needs one plan per instance.
//	ErrBadWorkers    - WithWorkers below one.
//
// Simulation and split errors are wrapped with the failing instance.
package evaluation
