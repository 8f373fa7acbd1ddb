package evaluation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/evaluation"
	"github.com/katalvlaran/ucarp/instance"
	"github.com/katalvlaran/ucarp/solution"
)

var bothObjectives = []solution.Objective{solution.TotalCost, solution.MaxRouteCost}

// streetInstance is the path 1—2—…—10 with unit deadheading costs and the
// tasks (2,3) demand 20 serve 2, (5,6) demand 20 serve 3, (8,9) demand 15
// serve 4. Depot 1, capacity 50, one vehicle, no uncertainty: every seed
// realizes the expected values.
func streetInstance(t testing.TB) *instance.Instance {
	t.Helper()
	g, err := core.NewGraph(10)
	require.NoError(t, err)
	tasks := map[int][2]float64{2: {2, 20}, 5: {3, 20}, 8: {4, 15}}
	for u := 1; u < 10; u++ {
		serve, demand := 1.0, 0.0
		if td, ok := tasks[u]; ok {
			serve, demand = td[0], td[1]
		}
		_, _, err = g.AddEdge(u, u+1, serve, 1, demand)
		require.NoError(t, err)
	}
	in, err := instance.New(g, 1, 50, 1, instance.WithName("street"))
	require.NoError(t, err)

	return in
}

// randomInstances generates n small complete-graph instances with the
// reference uncertainty levels.
func randomInstances(t testing.TB, n int) []*instance.Instance {
	t.Helper()
	out := make([]*instance.Instance, n)
	for i := range out {
		cfg := instance.DefaultRandomConfig(6)
		cfg.Vehicles = 2
		cfg.Seed = int64(100 + i)
		in, err := instance.Random(cfg)
		require.NoError(t, err)
		out[i] = in
	}

	return out
}

func randomModel(t testing.TB, opts ...evaluation.Option) *evaluation.Model {
	t.Helper()
	m, err := evaluation.FromInstances(bothObjectives, 1, 3, randomInstances(t, 2), opts...)
	require.NoError(t, err)

	return m
}
