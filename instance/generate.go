// generate.go — seeded random instance constructor.
//
// Contract:
//   • Nodes 1..Nodes, depot 1, complete simple graph.
//   • Every unordered pair {i,j}, i<j, becomes a task edge emitted in
//     lexicographic order, so ArcIDs are stable for a given Nodes.
//   • Cost and demand are drawn from U(1, 2·Capacity/Nodes) per edge.
//   • Deterministic for a fixed Seed.

package instance

import (
	"fmt"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/rng"
)

// File-local minima.
const (
	methodRandom   = "Random"
	minRandomNodes = 2
)

// Stream ids of the generator: costs and demands draw from separate
// streams derived from the config seed.
const (
	streamCost uint64 = iota
	streamDemand
)

// RandomConfig parameterizes Random.
type RandomConfig struct {
	Nodes       int
	Capacity    float64
	Vehicles    int
	DemandLevel float64
	CostLevel   float64
	Seed        int64
}

// DefaultRandomConfig returns the reference generator settings for n nodes:
// capacity 500, 10 vehicles, both uncertainty levels 0.2.
func DefaultRandomConfig(n int) RandomConfig {
	return RandomConfig{
		Nodes:       n,
		Capacity:    500,
		Vehicles:    10,
		DemandLevel: 0.2,
		CostLevel:   0.2,
	}
}

// Random builds a complete-graph instance in which every edge is a task.
// Pairs (i, j), i < j, are emitted in lexicographic order; their costs and
// demands are uniform on [1, 2·capacity/n) and come from two streams derived
// from cfg.Seed.
//
// Complexity: O(n²) edges plus the O(n³ log n) shortest-path build.
func Random(cfg RandomConfig) (*Instance, error) {
	// 1) Parameter validation.
	if cfg.Nodes < minRandomNodes {
		return nil, fmt.Errorf("%s: nodes=%d < min=%d: %w", methodRandom, cfg.Nodes, minRandomNodes, core.ErrTooFewNodes)
	}
	if cfg.Capacity <= 0 {
		return nil, fmt.Errorf("%s: %w", methodRandom, ErrBadCapacity)
	}

	g, err := core.NewGraph(cfg.Nodes)
	if err != nil {
		return nil, err
	}

	// 2) Emit each pair once with seeded cost and demand.
	costR := rng.Derive(rng.New(cfg.Seed), streamCost)
	demandR := rng.Derive(rng.New(cfg.Seed), streamDemand)
	maxValue := 2 * cfg.Capacity / float64(cfg.Nodes)
	var cost, demand float64
	for i := 1; i < cfg.Nodes; i++ {
		for j := i + 1; j <= cfg.Nodes; j++ {
			cost = rng.Uniform(costR, 1, maxValue)
			demand = rng.Uniform(demandR, 1, maxValue)
			if _, _, err = g.AddEdge(i, j, cost, cost, demand); err != nil {
				return nil, fmt.Errorf("%s: AddEdge(%d,%d): %w", methodRandom, i, j, err)
			}
		}
	}

	// 3) Wrap as an instance with depot 1.
	return New(g, 1, cfg.Capacity, cfg.Vehicles,
		WithName(fmt.Sprintf("random-%d-%d", cfg.Nodes, cfg.Seed)),
		WithUncertainty(cfg.DemandLevel, cfg.CostLevel),
	)
}
