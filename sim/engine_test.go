package sim_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/instance"
	"github.com/katalvlaran/ucarp/metrics"
	"github.com/katalvlaran/ucarp/policy"
	"github.com/katalvlaran/ucarp/sim"
	"github.com/katalvlaran/ucarp/solution"
)

// EngineSuite runs the three modes on small hand-checked instances.
type EngineSuite struct {
	suite.Suite
	street *instance.Instance
}

func (s *EngineSuite) SetupTest() {
	s.street = streetInstance(s.T())
}

// TestReactiveStreet: NN serves (2,3), (5,6), refills because (8,9) no
// longer fits, then serves (8,9) and returns.
//
//	1→2 (1) serve 2→3 (2) 3→5 (2) serve 5→6 (3)
//	6→1 (5) 1→8 (7) serve 8→9 (4) 9→1 (8)   total 32
func (s *EngineSuite) TestReactiveStreet() {
	st := newState(s.T(), s.street, 1)
	res, err := sim.Run(st, policy.NearestNeighbour())
	require.NoError(s.T(), err)

	require.Equal(s.T(), 1, res.Solution.Len())
	require.InDelta(s.T(), 32.0, res.TotalCost, 1e-9)
	require.InDelta(s.T(), 32.0, res.MaxRouteCost, 1e-9)
	require.Zero(s.T(), res.RouteFailures)
	require.Zero(s.T(), res.EdgeFailures)
	require.Zero(s.T(), res.RefillThenServe)
	require.Equal(s.T(), 3, res.Decisions)
	require.Equal(s.T(), sim.Reactive, res.Mode)
	assertComplete(s.T(), st)

	r := res.Solution.Route(0)
	require.Equal(s.T(),
		[]int{1, 2, 3, 4, 5, 6, 5, 4, 3, 2, 1, 2, 3, 4, 5, 6, 7, 8, 9, 8, 7, 6, 5, 4, 3, 2, 1},
		r.Nodes())
	require.InDelta(s.T(), 40.0, r.PeakLoad(), 1e-9)
}

// TestPlanStreet: the same tour as a plan; FSB refuses (8,9) at load 40 and
// the vehicle refills first.
func (s *EngineSuite) TestPlanStreet() {
	g := s.street.Graph()
	pr := solution.NewTaskSeqRoute(g, s.street.DepotLoop(), s.street.Capacity())
	for _, uv := range [][2]int{{2, 3}, {5, 6}, {8, 9}} {
		pr.Add(g, s.street, arc(s.T(), s.street, uv[0], uv[1]))
	}
	pr.Add(g, s.street, s.street.DepotLoop())
	plan := solution.New(pr)

	st := newState(s.T(), s.street, 1)
	res, err := sim.RunPlan(st, policy.Feasibility(), plan)
	require.NoError(s.T(), err)

	require.InDelta(s.T(), 32.0, res.TotalCost, 1e-9)
	require.Equal(s.T(), 1, res.RefillThenServe)
	require.Zero(s.T(), res.RouteFailures)
	require.Equal(s.T(), 3, res.Decisions)
	require.Equal(s.T(), sim.Plan, res.Mode)
	assertComplete(s.T(), st)
}

// TestPilotStreet: without uncertainty a pilot never does worse than the
// policy it is built on.
func (s *EngineSuite) TestPilotStreet() {
	st := newState(s.T(), s.street, 1)
	res, err := sim.RunPilot(st, policy.NearestNeighbour())
	require.NoError(s.T(), err)

	require.LessOrEqual(s.T(), res.TotalCost, 32.0+1e-9)
	require.Positive(s.T(), res.Decisions)
	require.Equal(s.T(), sim.Pilot, res.Mode)
	assertComplete(s.T(), st)

	// Width one degenerates to the policy itself.
	st = newState(s.T(), s.street, 1)
	res, err = sim.RunPilot(st, policy.NearestNeighbour(), sim.WithPilotWidth(1))
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 32.0, res.TotalCost, 1e-9)
}

// TestRouteFailure: after (1,2) only 40 units are left for the loop (2,2) of
// demand 60; two thirds are served, the vehicle refills and serves the rest.
func (s *EngineSuite) TestRouteFailure() {
	in := overflowInstance(s.T())
	st := newState(s.T(), in, 1)
	res, err := sim.Run(st, policy.NearestNeighbour(policy.WithFilter(policy.Identity)))
	require.NoError(s.T(), err)

	require.Equal(s.T(), 1, res.RouteFailures)
	require.Equal(s.T(), 1, res.RefillThenServe)
	require.InDelta(s.T(), 6.0, res.TotalCost, 1e-9)
	assertComplete(s.T(), st)

	r := res.Solution.Route(0)
	require.Equal(s.T(), []int{1, 2, 2, 1, 2, 2, 1}, r.Nodes())
	fr := r.Fracs()
	require.InDelta(s.T(), 1.0, fr[0], 1e-9)
	require.InDelta(s.T(), 2.0/3, fr[1], 1e-9)
	require.InDelta(s.T(), 1.0/3, fr[4], 1e-9)
	require.InDelta(s.T(), 1.0, fr[1]+fr[4], 1e-9, "loop served exactly once in total")
	require.InDelta(s.T(), 100.0, r.PeakLoad(), 1e-9)
}

// TestPlanRouteFailure: the plan (1,2), (2,2) is followed blindly by NN,
// which never asks for a refill. The loop overflows on service; the vehicle
// serves two thirds, refills at the depot and comes back for the rest.
//
//	serve 1→2 (1) serve 2→2 ⅔ (1) 2→1 (1) 1→2 (1) serve 2→2 ⅓ (1) 2→1 (1)
func (s *EngineSuite) TestPlanRouteFailure() {
	in := overflowInstance(s.T())
	g := in.Graph()
	pr := solution.NewTaskSeqRoute(g, in.DepotLoop(), in.Capacity())
	pr.Add(g, in, arc(s.T(), in, 1, 2))
	pr.Add(g, in, arc(s.T(), in, 2, 2))
	pr.Add(g, in, in.DepotLoop())
	require.InDelta(s.T(), 120.0, pr.PeakLoad(), 1e-9, "the plan itself overflows")

	st := newState(s.T(), in, 1)
	res, err := sim.RunPlan(st, policy.NearestNeighbour(), solution.New(pr))
	require.NoError(s.T(), err)

	require.Equal(s.T(), 1, res.RouteFailures)
	require.Equal(s.T(), 1, res.RefillThenServe)
	require.Equal(s.T(), 2, res.Decisions)
	require.InDelta(s.T(), 6.0, res.TotalCost, 1e-9)
	require.Equal(s.T(), sim.Plan, res.Mode)
	assertComplete(s.T(), st)

	r := res.Solution.Route(0)
	require.Equal(s.T(), []int{1, 2, 2, 1, 2, 2, 1}, r.Nodes())
	fr := r.Fracs()
	require.InDelta(s.T(), 2.0/3, fr[1], 1e-9)
	require.InDelta(s.T(), 1.0/3, fr[4], 1e-9)
	require.InDelta(s.T(), 100.0, r.PeakLoad(), 1e-9)
}

// TestEdgeFailure: (1,2) is unusable, so the first hop towards (2,3) is
// rerouted over 4 and 3; the way home avoids (2,1) as well.
func (s *EngineSuite) TestEdgeFailure() {
	in := squareInstance(s.T())
	e12, e14, e43, e32 := arc(s.T(), in, 1, 2), arc(s.T(), in, 1, 4), arc(s.T(), in, 4, 3), arc(s.T(), in, 3, 2)
	seed := findSeed(s.T(), in, func(rz *instance.Realization) bool {
		return !rz.Usable(e12) && rz.Usable(e14) && rz.Usable(e43) && rz.Usable(e32)
	})
	st := newState(s.T(), in, seed)
	res, err := sim.Run(st, policy.NearestNeighbour())
	require.NoError(s.T(), err)

	require.Equal(s.T(), 1, res.EdgeFailures)
	require.Equal(s.T(), []int{1, 4, 3, 2, 3, 4, 1}, res.Solution.Route(0).Nodes())
	require.True(s.T(), st.Unusable(e12))
	assertComplete(s.T(), st)
}

// TestDisconnected: both depot edges are unusable, the task cannot be reached.
func (s *EngineSuite) TestDisconnected() {
	in := squareInstance(s.T())
	e12, e14 := arc(s.T(), in, 1, 2), arc(s.T(), in, 1, 4)
	seed := findSeed(s.T(), in, func(rz *instance.Realization) bool {
		return !rz.Usable(e12) && !rz.Usable(e14)
	})
	_, err := sim.Run(newState(s.T(), in, seed), policy.NearestNeighbour())
	require.ErrorIs(s.T(), err, sim.ErrDisconnected)
}

func (s *EngineSuite) TestTrace() {
	st := newState(s.T(), s.street, 1)
	res, err := sim.Run(st, policy.NearestNeighbour(), sim.WithTrace())
	require.NoError(s.T(), err)
	require.NotEmpty(s.T(), res.Trace)

	first := res.Trace[0]
	require.Equal(s.T(), sim.Refill, first.Kind)
	require.Equal(s.T(), 1, first.Node)
	require.Equal(s.T(), core.NoArc, first.Task)

	// The clock never runs backwards for a single vehicle.
	for i := 1; i < len(res.Trace); i++ {
		require.GreaterOrEqual(s.T(), res.Trace[i].Time, res.Trace[i-1].Time)
	}

	quiet, err := sim.Run(newState(s.T(), s.street, 1), policy.NearestNeighbour())
	require.NoError(s.T(), err)
	require.Nil(s.T(), quiet.Trace)
}

func (s *EngineSuite) TestLoggingAndMetrics() {
	in := overflowInstance(s.T())
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m := metrics.New()

	_, err := sim.Run(newState(s.T(), in, 1), policy.NearestNeighbour(policy.WithFilter(policy.Identity)),
		sim.WithLogger(log), sim.WithMetrics(m))
	require.NoError(s.T(), err)
	require.Contains(s.T(), buf.String(), "route failure")
	require.Contains(s.T(), buf.String(), "simulation finished")

	mfs, err := m.Registry.Gather()
	require.NoError(s.T(), err)
	names := make(map[string]float64, len(mfs))
	for _, mf := range mfs {
		if len(mf.GetMetric()) == 0 {
			continue
		}
		if c := mf.GetMetric()[0].GetCounter(); c != nil {
			names[mf.GetName()] = c.GetValue()
		}
	}
	require.Equal(s.T(), 1.0, names["ucarp_simulations_total"])
	require.Equal(s.T(), 1.0, names["ucarp_route_failures_total"])
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func TestValidation(t *testing.T) {
	in := streetInstance(t)
	nn := policy.NearestNeighbour()

	_, err := sim.Run(nil, nn)
	assert.ErrorIs(t, err, sim.ErrNilState)

	_, err = sim.Run(newState(t, in, 1), nil)
	assert.ErrorIs(t, err, sim.ErrNilPolicy)

	_, err = sim.RunPlan(newState(t, in, 1), nn, nil)
	assert.ErrorIs(t, err, sim.ErrNilPlan)

	g := in.Graph()
	plan := solution.New(
		solution.NewTaskSeqRoute(g, in.DepotLoop(), in.Capacity()),
		solution.NewTaskSeqRoute(g, in.DepotLoop(), in.Capacity()),
	)
	_, err = sim.RunPlan(newState(t, in, 1), nn, plan)
	assert.ErrorIs(t, err, sim.ErrPlanSize)

	_, err = sim.RunPilot(newState(t, in, 1), nn, sim.WithPilotWidth(0))
	assert.ErrorIs(t, err, sim.ErrBadPilot)
}

// TestRandomInstances checks the run invariants on generated instances with
// uncertainty, for every mode-independent policy.
func TestRandomInstances(t *testing.T) {
	cfg := instance.DefaultRandomConfig(8)
	cfg.Seed = 7
	in, err := instance.Random(cfg)
	require.NoError(t, err)

	for _, p := range []policy.Policy{
		policy.NearestNeighbour(),
		policy.Feasibility(),
		policy.PathScanning2(),
		policy.PathScanning3(),
		policy.PathScanning5(),
	} {
		t.Run(p.Name(), func(t *testing.T) {
			for seed := int64(0); seed < 5; seed++ {
				st := newState(t, in, seed)
				res, err := sim.Run(st, p)
				require.NoError(t, err)
				assertComplete(t, st)
				require.InDelta(t, st.Solution().TotalCost(), res.TotalCost, 1e-9)

				// Same seed, same outcome.
				again, err := sim.Run(newState(t, in, seed), p)
				require.NoError(t, err)
				require.Equal(t, res.TotalCost, again.TotalCost)
				require.Equal(t, res.RouteFailures, again.RouteFailures)
			}
		})
	}
}

func TestRandomPilot(t *testing.T) {
	cfg := instance.DefaultRandomConfig(6)
	cfg.Seed = 3
	in, err := instance.Random(cfg)
	require.NoError(t, err)

	st := newState(t, in, 11)
	res, err := sim.RunPilot(st, policy.PathScanning5(), sim.WithPilotWidth(2))
	require.NoError(t, err)
	assertComplete(t, st)

	again, err := sim.RunPilot(newState(t, in, 11), policy.PathScanning5(), sim.WithPilotWidth(2))
	require.NoError(t, err)
	require.Equal(t, res.TotalCost, again.TotalCost)
}

func TestModeAndKindNames(t *testing.T) {
	assert.Equal(t, "reactive", sim.Reactive.String())
	assert.Equal(t, "plan", sim.Plan.String())
	assert.Equal(t, "pilot", sim.Pilot.String())
	assert.Equal(t, "RefillThenServe", sim.RefillThenServe.String())
	assert.Equal(t, "Serving", sim.Serving.String())
}
