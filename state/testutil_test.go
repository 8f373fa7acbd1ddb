package state_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/instance"
	"github.com/katalvlaran/ucarp/state"
)

// lineInstance builds the path 1—2—3—4 with unit deadheading costs;
// (2,3) and (3,4) are tasks with demands 5 and 7. Capacity 10, two vehicles.
func lineInstance(t testing.TB, opts ...instance.Option) *instance.Instance {
	t.Helper()
	g, err := core.NewGraph(4)
	require.NoError(t, err)
	_, _, err = g.AddEdge(1, 2, 1, 1, 0)
	require.NoError(t, err)
	_, _, err = g.AddEdge(2, 3, 2, 1, 5)
	require.NoError(t, err)
	_, _, err = g.AddEdge(3, 4, 2, 1, 7)
	require.NoError(t, err)
	in, err := instance.New(g, 1, 10, 2, opts...)
	require.NoError(t, err)

	return in
}

// newState realizes in with seed and wraps it in a State with routes routes.
func newState(t testing.TB, in *instance.Instance, seed int64, routes int) *state.State {
	t.Helper()
	rz, err := in.Realize(seed)
	require.NoError(t, err)
	s, err := state.New(in, rz, routes)
	require.NoError(t, err)

	return s
}

func arc(t testing.TB, in *instance.Instance, u, v int) core.ArcID {
	t.Helper()
	id, err := in.Graph().ArcBetween(u, v)
	require.NoError(t, err)

	return id
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
