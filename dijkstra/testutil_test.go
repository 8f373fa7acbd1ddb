package dijkstra_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ucarp/core"
)

// edge is a compact undirected edge literal for fixtures.
type edge struct {
	u, v int
	cost float64
}

// buildGraph creates a graph over 1..n with the given deadheading costs.
func buildGraph(t testing.TB, n int, edges []edge) *core.Graph {
	t.Helper()
	g, err := core.NewGraph(n)
	require.NoError(t, err)
	for _, e := range edges {
		_, _, err = g.AddEdge(e.u, e.v, e.cost, e.cost, 0)
		require.NoError(t, err)
	}

	return g
}

// expected is the Weight that reads the expected deadheading cost.
func expected(g *core.Graph) func(core.ArcID) float64 {
	return func(id core.ArcID) float64 { return g.Arc(id).ExpectedCost }
}
