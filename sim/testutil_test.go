package sim_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/instance"
	"github.com/katalvlaran/ucarp/state"
)

// streetInstance is the path 1—2—…—10 with unit deadheading costs and three
// tasks: (2,3) demand 20 serve 2, (5,6) demand 20 serve 3, (8,9) demand 15
// serve 4. Depot 1, capacity 50, one vehicle, no uncertainty.
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
	in, err := instance.New(g, 1, 50, 1)
	require.NoError(t, err)

	return in
}

// overflowInstance has the task (1,2) and the loop task (2,2), demand 60
// each, unit costs, capacity 100 and one vehicle: the loop cannot be served
// in one go after (1,2).
func overflowInstance(t testing.TB) *instance.Instance {
	t.Helper()
	g, err := core.NewGraph(2)
	require.NoError(t, err)
	_, _, err = g.AddEdge(1, 2, 1, 1, 60)
	require.NoError(t, err)
	_, _, err = g.AddEdge(2, 2, 1, 1, 60)
	require.NoError(t, err)
	in, err := instance.New(g, 1, 100, 1)
	require.NoError(t, err)

	return in
}

// squareInstance is the cycle 1—2—3—4—1 with unit costs and the task (2,3).
// Cost uncertainty is large so that some seeds make edges unusable.
func squareInstance(t testing.TB) *instance.Instance {
	t.Helper()
	g, err := core.NewGraph(4)
	require.NoError(t, err)
	for _, e := range [][3]float64{{1, 2, 0}, {2, 3, 4}, {3, 4, 0}, {4, 1, 0}} {
		_, _, err = g.AddEdge(int(e[0]), int(e[1]), 1, 1, e[2])
		require.NoError(t, err)
	}
	in, err := instance.New(g, 1, 10, 1, instance.WithUncertainty(0, 2))
	require.NoError(t, err)

	return in
}

// findSeed returns the first seed whose realization of in satisfies ok.
func findSeed(t testing.TB, in *instance.Instance, ok func(*instance.Realization) bool) int64 {
	t.Helper()
	for seed := int64(0); seed < 10000; seed++ {
		rz, err := in.Realize(seed)
		require.NoError(t, err)
		if ok(rz) {
			return seed
		}
	}
	t.Fatal("no seed found")

	return 0
}

func newState(t testing.TB, in *instance.Instance, seed int64) *state.State {
	t.Helper()
	rz, err := in.Realize(seed)
	require.NoError(t, err)
	s, err := state.New(in, rz, in.Vehicles())
	require.NoError(t, err)

	return s
}

func arc(t testing.TB, in *instance.Instance, u, v int) core.ArcID {
	t.Helper()
	id, err := in.Graph().ArcBetween(u, v)
	require.NoError(t, err)

	return id
}

// assertComplete checks that every task was served and no route was ever
// loaded beyond capacity.
func assertComplete(t testing.TB, s *state.State) {
	t.Helper()
	require.Empty(t, s.Remaining())
	require.Empty(t, s.Unassigned())
	for _, task := range s.Instance().Tasks() {
		require.Zero(t, s.Fraction(task), "task %s", s.Graph().Arc(task))
	}
	for i, r := range s.Solution().Routes() {
		require.LessOrEqual(t, r.PeakLoad(), r.Capacity()+1e-9, "route %d", i)
		require.Equal(t, s.Instance().Depot(), r.CurrNode(), "route %d ends at the depot", i)
	}
}
