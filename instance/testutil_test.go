package instance_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/instance"
)

// lineInstance builds the path 1—2—3—4 with unit costs; edges (2,3) and
// (3,4) are tasks with demands 5 and 7.
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

func arc(t testing.TB, in *instance.Instance, u, v int) core.ArcID {
	t.Helper()
	id, err := in.Graph().ArcBetween(u, v)
	require.NoError(t, err)

	return id
}
