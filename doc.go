// Package ucarp simulates fleets of capacitated vehicles serving street
// segments whose demands and travel costs are only known on arrival: the
// Uncertain Capacitated Arc Routing Problem.
//
// What is in the box?
//
//	A deterministic, seed-driven toolkit that brings together:
//		• Stochastic instances: expected values, seeded realizations, sample sets
//		• Routing policies: path scanning, nearest neighbour, feature-based and ensembles
//		• A discrete-event engine: reactive, plan-following and pilot modes
//		• Giant tours: validation, optimal split into capacity-feasible trips
//		• An edge histogram model for estimation-of-distribution search
//		• Local search over giant tours: insertion, double insertion, swap, 2-opt
//		• Parallel evaluation of policies, plans and tours over many samples
//
// Packages:
//
//	core/        - arc arena, nodes 1..N, inverse arcs and the depot loop
//	matrix/      - dense float64 tables
//	dijkstra/    - all-pairs shortest-path tables with local repair
//	rng/         - seeded streams and draws
//	instance/    - instances, realizations, samples, random generator
//	solution/    - node- and task-sequence routes, objectives
//	state/       - per-run bookkeeping of one simulation
//	policy/      - decision strategies and pool filters
//	sim/         - the event-driven simulation engine
//	tour/        - giant tours and Split
//	eda/         - edge histogram model
//	localsearch/ - histogram-guided local search
//	evaluation/  - averaged objectives over instance samples
//	config/      - YAML experiment settings
//	metrics/     - Prometheus collectors
//
// Quick ASCII example:
//
//	    1═══2───3
//	        ║   │
//	        4───5
//
//	depot 1; double lines are task edges to serve, single lines are
//	deadheading only. A vehicle leaves 1, serves (1,2) and (2,4), and may
//	discover on (2,4) that the demand exceeds what is left of its capacity.
//
// Every random draw derives from an explicit seed, so a run is repeatable
// bit for bit.
package ucarp
