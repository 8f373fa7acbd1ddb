package policy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/instance"
	"github.com/katalvlaran/ucarp/solution"
	"github.com/katalvlaran/ucarp/state"
)

// fixture is the path 1—2—3—4 with unit deadheading costs; (2,3) and (3,4)
// are tasks with demands 5 and 7. Capacity 10, two vehicles, no uncertainty.
type fixture struct {
	in                 *instance.Instance
	s                  *state.State
	t23, t32, t34, t43 core.ArcID
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	g, err := core.NewGraph(4)
	require.NoError(t, err)
	_, _, err = g.AddEdge(1, 2, 1, 1, 0)
	require.NoError(t, err)
	t23, t32, err := g.AddEdge(2, 3, 2, 1, 5)
	require.NoError(t, err)
	t34, t43, err := g.AddEdge(3, 4, 2, 1, 7)
	require.NoError(t, err)
	in, err := instance.New(g, 1, 10, 2)
	require.NoError(t, err)
	rz, err := in.Realize(1)
	require.NoError(t, err)
	s, err := state.New(in, rz, 2)
	require.NoError(t, err)

	return &fixture{in: in, s: s, t23: t23, t32: t32, t34: t34, t43: t43}
}

// served moves route 0 to node 2 and serves (2,3): it stands at 3 with load 5.
func (f *fixture) served(t testing.TB) *solution.NodeSeqRoute {
	t.Helper()
	r := f.s.Route(0)
	g := f.in.Graph()
	require.NoError(t, r.Add(g, f.s.Realization(), 2, 0))
	require.NoError(t, r.Add(g, f.s.Realization(), 3, 1))

	return r
}

func (f *fixture) all() []core.ArcID { return []core.ArcID{f.t23, f.t32, f.t34, f.t43} }
