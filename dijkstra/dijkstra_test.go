package dijkstra_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/dijkstra"
)

// ------------------------------------------------------------------------
// 1. Validation
// ------------------------------------------------------------------------

func TestBuild_Validation(t *testing.T) {
	_, err := dijkstra.Build(nil, nil)
	require.ErrorIs(t, err, dijkstra.ErrNilGraph)

	g := buildGraph(t, 2, []edge{{1, 2, 1}})
	_, err = dijkstra.Build(g, nil)
	require.ErrorIs(t, err, dijkstra.ErrNilWeight)

	_, err = dijkstra.Build(g, func(core.ArcID) float64 { return -1 })
	require.ErrorIs(t, err, dijkstra.ErrNegativeWeight)

	_, err = dijkstra.Build(g, func(core.ArcID) float64 { return math.NaN() })
	require.ErrorIs(t, err, dijkstra.ErrNaNWeight)
}

// ------------------------------------------------------------------------
// 2. Tables
// ------------------------------------------------------------------------

func TestBuild_TriangleDistancesAndHops(t *testing.T) {
	// 1—2 (1), 2—3 (2), 1—3 (5): 1→3 goes through 2.
	g := buildGraph(t, 3, []edge{{1, 2, 1}, {2, 3, 2}, {1, 3, 5}})
	p, err := dijkstra.Build(g, expected(g))
	require.NoError(t, err)

	assert.Equal(t, 0.0, p.Distance(1, 1))
	assert.Equal(t, 1.0, p.Distance(1, 2))
	assert.Equal(t, 3.0, p.Distance(1, 3))
	assert.Equal(t, 3.0, p.Distance(3, 1))
	assert.Equal(t, 2, p.NextHop(1, 3))
	assert.Equal(t, 2, p.Predecessor(1, 3))
	assert.Equal(t, 0, p.NextHop(2, 2))

	path, err := p.Path(1, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, path)
}

func TestBuild_TieBreaksBySmallerNode(t *testing.T) {
	// Square 1—2—4 and 1—3—4, all unit costs: 1→4 must go through 2.
	g := buildGraph(t, 4, []edge{{1, 3, 1}, {3, 4, 1}, {1, 2, 1}, {2, 4, 1}})
	p, err := dijkstra.Build(g, expected(g))
	require.NoError(t, err)
	assert.Equal(t, 2.0, p.Distance(1, 4))
	assert.Equal(t, 2, p.NextHop(1, 4))
	assert.Equal(t, 2, p.Predecessor(1, 4))
}

func TestBuild_UnreachableIsNotAnError(t *testing.T) {
	g := buildGraph(t, 3, []edge{{1, 2, 1}})
	p, err := dijkstra.Build(g, expected(g))
	require.NoError(t, err)
	assert.True(t, math.IsInf(p.Distance(1, 3), 1))
	_, err = p.Path(1, 3)
	assert.ErrorIs(t, err, dijkstra.ErrUnreachable)
}

// ------------------------------------------------------------------------
// 3. Repair
// ------------------------------------------------------------------------

func TestRecomputeBetween_AvoidsUnusableArc(t *testing.T) {
	g := buildGraph(t, 3, []edge{{1, 2, 1}, {2, 3, 2}, {1, 3, 5}})
	p, err := dijkstra.Build(g, expected(g))
	require.NoError(t, err)

	// Mark 1→2 unusable and repair the pair (1,3).
	broken := g.Lookup(1, 2)
	w := func(id core.ArcID) float64 {
		if id == broken {
			return math.Inf(1)
		}
		return g.Arc(id).ExpectedCost
	}
	require.NoError(t, p.RecomputeBetween(g, w, 1, 3))
	assert.Equal(t, 5.0, p.Distance(1, 3))
	assert.Equal(t, 3, p.NextHop(1, 3))
}

func TestRecomputeBetween_ReportsDisconnection(t *testing.T) {
	g := buildGraph(t, 2, []edge{{1, 2, 1}})
	p, err := dijkstra.Build(g, expected(g))
	require.NoError(t, err)

	w := func(core.ArcID) float64 { return math.Inf(1) }
	err = p.RecomputeBetween(g, w, 1, 2)
	assert.ErrorIs(t, err, dijkstra.ErrUnreachable)
}

func TestRecomputeFrom_MatchesBuild(t *testing.T) {
	g := buildGraph(t, 4, []edge{{1, 2, 3}, {2, 3, 1}, {3, 4, 1}, {1, 4, 7}})
	p, err := dijkstra.Build(g, expected(g))
	require.NoError(t, err)
	q := p.Clone()
	require.NoError(t, q.RecomputeFrom(g, expected(g), 1))
	for v := 1; v <= 4; v++ {
		assert.Equal(t, p.Distance(1, v), q.Distance(1, v))
		assert.Equal(t, p.NextHop(1, v), q.NextHop(1, v))
	}

	other := buildGraph(t, 5, nil)
	assert.ErrorIs(t, q.RecomputeFrom(other, expected(other), 1), dijkstra.ErrSizeMismatch)
}

func TestClone_IsIndependent(t *testing.T) {
	g := buildGraph(t, 3, []edge{{1, 2, 1}, {2, 3, 2}, {1, 3, 5}})
	p, err := dijkstra.Build(g, expected(g))
	require.NoError(t, err)
	c := p.Clone()

	inf := func(core.ArcID) float64 { return math.Inf(1) }
	_ = c.RecomputeBetween(g, inf, 1, 3)
	assert.Equal(t, 3.0, p.Distance(1, 3), "original must not see the repair")
	assert.True(t, math.IsInf(c.Distance(1, 3), 1))
}
