// Package localsearch improves giant tours with four histogram-filtered
// neighbourhoods and a stochastic local search driver.
//
// Overview:
//
// The tour is padded with the depot loop on both ends so that every task
// has a predecessor and a successor. The neighbourhoods are
//
//	Insertion        move one task, in either direction
//	DoubleInsertion  move two adjacent tasks as a block, as is or reversed
//	Swap             exchange two non-adjacent tasks, four orientations
//	TwoOpt           reverse a subsequence and invert its tasks
//
// Each candidate is scored first by its histogram gain: the weights of the
// adjacencies it forms minus those it breaks. Only candidates whose gain
// exceeds Eps (DefaultEps) are built and evaluated with the Fitness, and the
// first one that strictly improves is returned.
//
// Run asks every operator for its first improving move, accepts the best of
// them and repeats until none improves. Fitness strictly decreases along the
// accepted tours, so Run terminates.
//
// Complexity: one Move scans O(n²) candidates (O(n²) per position pair for
// Swap) at O(1) each before evaluation; evaluations dominate.
//
// Errors:
//
//	ErrNilInstance, ErrNilHistogram, ErrNilFitness - missing dependency.
//	ErrBadIters    - negative iteration limit.
//	ErrBadEps      - negative or NaN gain tolerance.
//	ErrBadOperator - unknown operator passed to Move.
//
// Fitness errors are wrapped and returned.
package localsearch
