package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/policy"
)

func TestFilters(t *testing.T) {
	f := newFixture(t)
	depot := f.s.Route(1)
	r := f.served(t)

	// At node 3 with 5 of 10 used only the demand-5 edge fits.
	want := []core.ArcID{f.t23, f.t32}
	assert.Equal(t, f.all(), policy.Identity(f.all(), r, f.s))
	assert.Equal(t, want, policy.ExpFeasible(f.all(), r, f.s))
	assert.Equal(t, want, policy.ActFeasible(f.all(), r, f.s))
	assert.Equal(t, want, policy.ExpFeasibleNoRefill(f.all(), r, f.s))
	assert.Equal(t, want, policy.ExpFeasibleWithRefill(f.all(), r, f.s))

	// At the depot the refill-aware filters keep everything.
	assert.Equal(t, f.all(), policy.ExpFeasibleNoRefill(f.all(), depot, f.s))
	assert.Equal(t, f.all(), policy.ExpFeasibleWithRefill(f.all(), depot, f.s))
}

func TestFilterByName(t *testing.T) {
	_, err := policy.FilterByName("exp-feasible")
	assert.NoError(t, err)
	_, err = policy.FilterByName("nope")
	assert.ErrorIs(t, err, policy.ErrUnknownFilter)
}

func TestNearestNeighbour(t *testing.T) {
	f := newFixture(t)
	nn := policy.NearestNeighbour()

	// From the depot (2,3) is closest.
	next, ok := policy.Next(nn, f.all(), f.s.Route(1), f.s)
	require.True(t, ok)
	assert.Equal(t, f.t23, next)

	// From node 3, (3,2) starts right here.
	next, ok = policy.Next(nn, f.all(), f.served(t), f.s)
	require.True(t, ok)
	assert.Equal(t, f.t32, next)
}

func TestNext_EmptyPool(t *testing.T) {
	f := newFixture(t)
	r := f.served(t)

	// Only the demand-7 edge is offered and it does not fit.
	_, ok := policy.Next(policy.NearestNeighbour(), []core.ArcID{f.t34, f.t43}, r, f.s)
	assert.False(t, ok)
	_, ok = policy.NearestNeighbour().Choose(nil, r, f.s)
	assert.False(t, ok)
}

func TestSimpleTie(t *testing.T) {
	f := newFixture(t)
	// (3,2) and (3,4) both start at distance 2 from the depot.
	next, ok := policy.Next(policy.NearestNeighbour(), []core.ArcID{f.t34, f.t32}, f.s.Route(1), f.s)
	require.True(t, ok)
	assert.Equal(t, f.t32, next)
}

func TestRandomTie(t *testing.T) {
	f := newFixture(t)
	r := f.s.Route(0)
	tie := policy.RandomTie(7)

	assert.Equal(t, tie(f.t32, f.t34, r, f.s), tie(f.t32, f.t34, r, f.s), "deterministic")

	seen := map[int]bool{}
	for seed := int64(0); seed < 64; seed++ {
		seen[policy.RandomTie(seed)(f.t32, f.t34, r, f.s)] = true
	}
	assert.True(t, seen[-1])
	assert.True(t, seen[1])
}

func TestFeasibility_ContinueService(t *testing.T) {
	f := newFixture(t)
	fsb := policy.Feasibility()
	r := f.served(t)

	assert.True(t, fsb.ContinueService(f.t32, r, f.s), "exact fit")
	assert.False(t, fsb.ContinueService(f.t34, r, f.s), "expected overflow")
	assert.Equal(t, "FSB", fsb.Name())
}

func TestPathScanning(t *testing.T) {
	f := newFixture(t)
	r := f.s.Route(1)

	// PS2: equal distance from here (2) for (3,2) and (3,4); (3,2) is closer
	// to the depot on exit.
	ps2 := policy.PathScanning2()
	next, ok := policy.Next(ps2, []core.ArcID{f.t34, f.t32}, r, f.s)
	require.True(t, ok)
	assert.Equal(t, f.t32, next)
	assert.Equal(t, policy.Alpha*2+1, ps2.Priority(f.t32, r, f.s))

	// PS5 with an empty vehicle prefers moving away from the depot.
	ps5 := policy.PathScanning5()
	next, ok = policy.Next(ps5, []core.ArcID{f.t34, f.t32}, r, f.s)
	require.True(t, ok)
	assert.Equal(t, f.t34, next)

	// PS3 uses the realized yield: demand 7 / serve 2 beats 5 / 2.
	ps3 := policy.PathScanning3()
	next, ok = policy.Next(ps3, []core.ArcID{f.t34, f.t32}, r, f.s)
	require.True(t, ok)
	assert.Equal(t, f.t34, next)
}

func TestByName(t *testing.T) {
	for _, name := range []string{"NN", "fsb", "PS2", "ps3", "PS5"} {
		p, err := policy.ByName(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, p.Name())
	}
	_, err := policy.ByName("PS9")
	assert.ErrorIs(t, err, policy.ErrUnknownPolicy)
}

func TestRank(t *testing.T) {
	f := newFixture(t)
	nn := policy.NearestNeighbour()
	got := policy.Rank(nn, f.all(), f.s.Route(1), f.s, 3)
	assert.Equal(t, []core.ArcID{f.t23, f.t32, f.t34}, got)
	assert.Nil(t, policy.Rank(nn, nil, f.s.Route(1), f.s, 3))
}

func TestEnsemble(t *testing.T) {
	f := newFixture(t)
	r := f.served(t)
	members := []policy.Policy{policy.NearestNeighbour(), policy.Feasibility()}

	// Members do not filter: NN picks (3,2), FSB picks (3,4) (most overflow).
	heavy, err := policy.NewEnsemble(members, []float64{1, 2}, policy.Vote)
	require.NoError(t, err)
	next, ok := policy.Next(heavy, f.all(), r, f.s)
	require.True(t, ok)
	assert.Equal(t, f.t34, next)

	light, err := policy.NewEnsemble(members, []float64{2, 1}, policy.Vote)
	require.NoError(t, err)
	next, ok = policy.Next(light, f.all(), r, f.s)
	require.True(t, ok)
	assert.Equal(t, f.t32, next)

	// Aggregate of a single member equals the member.
	agg, err := policy.NewEnsemble(members[:1], nil, policy.Aggregate)
	require.NoError(t, err)
	next, ok = policy.Next(agg, f.all(), r, f.s)
	require.True(t, ok)
	assert.Equal(t, f.t32, next)
	assert.Equal(t, 1, agg.Size())

	// The ensemble filter runs before the members see the pool.
	filtered, err := policy.NewEnsemble(members, []float64{1, 2}, policy.Vote, policy.WithFilter(policy.ExpFeasible))
	require.NoError(t, err)
	next, ok = policy.Next(filtered, f.all(), r, f.s)
	require.True(t, ok)
	assert.Contains(t, []core.ArcID{f.t23, f.t32}, next)

	// Equal weights split the vote: the earlier candidate in pool order wins.
	tied, err := policy.NewEnsemble(members, nil, policy.Vote)
	require.NoError(t, err)
	next, ok = policy.Next(tied, f.all(), r, f.s)
	require.True(t, ok)
	assert.Equal(t, f.t32, next)
	next, ok = policy.Next(tied, []core.ArcID{f.t43, f.t34, f.t32, f.t23}, r, f.s)
	require.True(t, ok)
	assert.Equal(t, f.t34, next)

	_, err = policy.NewEnsemble(nil, nil, nil)
	assert.ErrorIs(t, err, policy.ErrEmptyEnsemble)
	_, err = policy.NewEnsemble(members, []float64{1}, nil)
	assert.ErrorIs(t, err, policy.ErrWeightCount)
}

func TestLinear(t *testing.T) {
	f := newFixture(t)
	r := f.s.Route(1)

	lin, err := policy.Linear([]policy.Term{{Feature: "cfh", Weight: 1}})
	require.NoError(t, err)
	nn := policy.NearestNeighbour()
	for _, c := range f.all() {
		assert.Equal(t, nn.Priority(c, r, f.s), lin.Priority(c, r, f.s))
	}

	_, err = policy.Linear([]policy.Term{{Feature: "XYZ", Weight: 1}})
	assert.ErrorIs(t, err, policy.ErrUnknownFeature)
}

func TestFeatures(t *testing.T) {
	f := newFixture(t)
	r := f.s.Route(1)
	feat := func(name string, c core.ArcID) float64 { return policy.Features[name](c, r, f.s) }

	assert.Equal(t, 3.0, feat("CTD", f.t34))
	assert.Equal(t, 2.0, feat("CFD", f.t34))
	assert.Equal(t, 0.0, feat("CR", f.t34))
	assert.Equal(t, 7.0, feat("DEM", f.t34))
	assert.Equal(t, 0.7, feat("DR", f.t34))
	assert.Equal(t, 2.0, feat("SC", f.t34))
	assert.Equal(t, 1.0, feat("DC", f.t34))
	assert.Equal(t, 1.0, feat("FRT", f.t34))
	assert.Equal(t, 1.0, feat("FUT", f.t34))
	assert.Equal(t, 10.0, feat("RQ", f.t34))
	assert.Equal(t, 0.0, feat("FULL", f.t34))
	assert.Equal(t, 0.7, feat("FAS", f.t34))
	// Tasks (2,3), (3,4) and (4,3) all head home over (3,2).
	assert.Equal(t, 3.0, feat("FF", f.t23))
	// Nearest remaining task after (2,3) is (3,4), right at its tail.
	assert.Equal(t, 0.0, feat("CTT1", f.t23))

	f.s.CalcRouteToTask(1)
	assert.Equal(t, 10.0, feat("RQ1", f.t34))
	assert.Equal(t, 2.0, feat("CFR1", f.t34))
	assert.Equal(t, 0.7, feat("FAS1", f.t34))
	assert.Equal(t, 0.0, feat("FAS1", f.in.DepotLoop()))

	assert.Len(t, policy.FeatureNames(), 18)
}
