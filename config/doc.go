// Package config loads experiment settings from YAML.
//
// A document overrides the fields of Default; absent keys keep their
// default values and unknown keys are rejected:
//
//	objectives: [total-cost, makespan]
//	seed: 1
//	workers: 4
//	policy: PS5
//	filter: exp-feasible
//	instances:
//	  count: 2
//	  nodes: 12
//	  samples: 10
//	histogram:
//	  ratio: 0.005
//	  learning_rate: 0.5
//	local_search:
//	  max_iters: 50
//	  eps: 1e-9
//
// The Build* helpers turn a validated Config into instances, an
// evaluation model and a routing policy.
package config
