// Package eda provides the edge histogram model of the estimation of
// distribution search over giant tours.
//
// Overview:
//
// The histogram holds a weight for every ordered pair of task arcs, with the
// depot loop standing for the depot. Update learns from promising tours:
//
//	w ← (1−lr)·w + lr·ε,  ε = popSize/(tourLen−1)·ratio
//	w(a,b) += lr and w(b⁻¹,a⁻¹) += lr for every adjacency, depot legs included
//
// Sample and Resample draw new tours by roulette-wheel selection over the
// weights that follow the last placed task, falling back to a uniform pick
// when every weight is zero.
//
// Concurrency: Update takes the write lock, Value, Sum, Sample and Resample
// the read lock. Updates between generations are therefore ordered before
// every later read.
//
// Complexity:
//
//	Update    O(m² + Σ len(tour)), m = tasks + 1
//	Sample    O(n²) for n task edges
//	Resample  O(k²) for a segment of k tasks
//
// Errors:
//
//	ErrNilInstance     - no instance.
//	ErrEmptyPopulation - Update without tours.
//	ErrBadRate         - learning rate outside (0,1].
//	ErrBadRatio        - negative floor ratio.
//
// Invalid tours are rejected with the errors of package tour.
package eda
