package evaluation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/ucarp/instance"
	"github.com/katalvlaran/ucarp/policy"
	"github.com/katalvlaran/ucarp/sim"
	"github.com/katalvlaran/ucarp/solution"
	"github.com/katalvlaran/ucarp/state"
	"github.com/katalvlaran/ucarp/tour"
)

// Model evaluates routing policies, plans and giant tours over a fixed set
// of instance samples. Evaluations are deterministic: the same inputs give
// bit-identical averages whatever the worker count.
//
// Evaluate* methods may run concurrently with each other; RotateSeeds must
// not overlap any of them.
type Model struct {
	objectives []solution.Objective
	samples    []*instance.Samples
	opts       Options

	// refs[k][o] is the reference value of objective o on process k, the
	// processes being the (instance, seed) pairs in order.
	refs [][]float64
}

// job is one simulation of instance i on a fresh state with routes(i)
// routes.
type job struct {
	routes func(i int) int
	run    func(i int, st *state.State) (*sim.Result, error)
}

// NewModel realizes every sample and computes the reference values.
func NewModel(objectives []solution.Objective, samples []*instance.Samples, opts ...Option) (*Model, error) {
	// 1) Options and inputs.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(objectives) == 0 {
		return nil, ErrNoObjectives
	}
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	for i, s := range samples {
		if s == nil || s.Instance() == nil {
			return nil, fmt.Errorf("%w: index %d", ErrNilSamples, i)
		}
		if s.Len() == 0 {
			return nil, fmt.Errorf("%w: %q has no seeds", ErrNoSamples, s.Instance().Name())
		}
	}

	m := &Model{
		objectives: append([]solution.Objective(nil), objectives...),
		samples:    samples,
		opts:       cfg,
	}

	// 2) Realizations and reference values.
	if err := m.prepare(); err != nil {
		return nil, err
	}

	return m, nil
}

// FromInstances builds a Model with perInstance samples of every instance.
// Seeds start at base and advance by instance.SeedGapInstance across all
// samples of all instances.
func FromInstances(objectives []solution.Objective, base int64, perInstance int, instances []*instance.Instance, opts ...Option) (*Model, error) {
	samples := make([]*instance.Samples, len(instances))
	next := base

	var seeds []int64
	for i, in := range instances {
		seeds, next = instance.SeedSequence(next, perInstance)
		samples[i] = instance.NewSamples(in, seeds...)
	}

	return NewModel(objectives, samples, opts...)
}

// Objectives returns the evaluated objectives in output order.
func (m *Model) Objectives() []solution.Objective { return m.objectives }

// Samples returns the instance samples.
func (m *Model) Samples() []*instance.Samples { return m.samples }

// Processes returns the number of simulations one evaluation runs.
func (m *Model) Processes() int { return len(m.refs) }

// Reference returns the reference value of objective o on process k.
func (m *Model) Reference(k, o int) float64 { return m.refs[k][o] }

// RotateSeeds advances every seed by instance.SeedGapRotation, realizes the
// new samples and recomputes the reference values.
func (m *Model) RotateSeeds() error {
	for _, s := range m.samples {
		s.Rotate()
	}

	return m.prepare()
}

// EvaluatePolicy runs p reactively on every sample and returns the mean of
// every objective.
func (m *Model) EvaluatePolicy(ctx context.Context, p policy.Policy) ([]float64, error) {
	if p == nil {
		return nil, ErrNilPolicy
	}

	return m.evaluate(ctx, sim.Reactive, false, m.reactive(p))
}

// EvaluateNormalised is EvaluatePolicy with every value divided by the
// reference value of its process before averaging.
func (m *Model) EvaluateNormalised(ctx context.Context, p policy.Policy) ([]float64, error) {
	if p == nil {
		return nil, ErrNilPolicy
	}

	return m.evaluate(ctx, sim.Reactive, true, m.reactive(p))
}

// EvaluatePilot runs p in pilot mode on every sample.
func (m *Model) EvaluatePilot(ctx context.Context, p policy.Policy) ([]float64, error) {
	if p == nil {
		return nil, ErrNilPolicy
	}

	return m.evaluate(ctx, sim.Pilot, false, job{
		routes: m.vehicles,
		run: func(_ int, st *state.State) (*sim.Result, error) {
			return sim.RunPilot(st, p, m.simOptions(sim.WithPilotWidth(m.opts.PilotWidth))...)
		},
	})
}

// EvaluatePlan follows plans[i] on every sample of instance i, with p
// deciding between continuing and refilling.
func (m *Model) EvaluatePlan(ctx context.Context, p policy.Policy, plans []*tour.Plan) ([]float64, error) {
	if p == nil {
		return nil, ErrNilPolicy
	}
	if len(plans) != len(m.samples) {
		return nil, fmt.Errorf("%w: got %d for %d instances", ErrPlanCount, len(plans), len(m.samples))
	}
	for i, plan := range plans {
		if plan == nil {
			return nil, fmt.Errorf("%w: instance %d", sim.ErrNilPlan, i)
		}
	}

	return m.evaluate(ctx, sim.Plan, false, job{
		routes: func(i int) int { return plans[i].Len() },
		run: func(i int, st *state.State) (*sim.Result, error) {
			return sim.RunPlan(st, p, plans[i], m.simOptions()...)
		},
	})
}

// EvaluateTour splits t on every instance with expected values and follows
// the resulting plan under FeasibilityPolicy.
func (m *Model) EvaluateTour(ctx context.Context, t tour.GiantTour) ([]float64, error) {
	plans := make([]*tour.Plan, len(m.samples))
	for i, s := range m.samples {
		plan, err := tour.Split(s.Instance(), t)
		if err != nil {
			return nil, fmt.Errorf("evaluation: split on instance %d: %w", i, err)
		}
		plans[i] = plan
	}

	return m.EvaluatePlan(ctx, policy.Feasibility(), plans)
}

// TourFitness returns the first objective of EvaluateTour as a local search
// fitness.
func (m *Model) TourFitness(ctx context.Context) *TourFitness {
	return &TourFitness{m: m, ctx: ctx}
}

// TourFitness adapts a Model to the localsearch.Fitness contract.
type TourFitness struct {
	m   *Model
	ctx context.Context
}

// Fitness implements localsearch.Fitness.
func (f *TourFitness) Fitness(t tour.GiantTour) (float64, error) {
	vals, err := f.m.EvaluateTour(f.ctx, t)
	if err != nil {
		return 0, err
	}

	return vals[0], nil
}

func (m *Model) reactive(p policy.Policy) job {
	return job{
		routes: m.vehicles,
		run: func(_ int, st *state.State) (*sim.Result, error) {
			return sim.Run(st, p, m.simOptions()...)
		},
	}
}

func (m *Model) vehicles(i int) int { return m.samples[i].Instance().Vehicles() }

func (m *Model) simOptions(extra ...sim.Option) []sim.Option {
	return append([]sim.Option{sim.WithLogger(m.opts.Logger), sim.WithMetrics(m.opts.Metrics)}, extra...)
}

// prepare realizes every sample and recomputes the reference values with the
// reference policy.
func (m *Model) prepare() error {
	for _, s := range m.samples {
		if err := s.Realize(); err != nil {
			return fmt.Errorf("evaluation: realize %q: %w", s.Instance().Name(), err)
		}
	}
	vals, err := m.run(context.Background(), m.reactive(policy.PathScanning5()))
	if err != nil {
		return fmt.Errorf("evaluation: reference values: %w", err)
	}
	m.refs = vals

	return nil
}

// evaluate runs fn on every process and averages the objectives.
func (m *Model) evaluate(ctx context.Context, mode sim.Mode, normalise bool, fn job) ([]float64, error) {
	start := time.Now()
	runID := uuid.New().String()

	// 1) One simulation per process, in parallel.
	vals, err := m.run(ctx, fn)
	if err != nil {
		m.opts.Logger.Error("evaluation failed", "run_id", runID, "mode", mode.String(), "err", err)
		return nil, err
	}

	// 2) Per-objective mean in process order.
	col := make([]float64, len(vals))
	out := make([]float64, len(m.objectives))
	for o := range m.objectives {
		for k, row := range vals {
			col[k] = row[o]
			if normalise {
				col[k] /= reference(m.refs[k][o])
			}
		}
		out[o] = stat.Mean(col, nil)
	}

	m.opts.Metrics.Evaluation(start)
	m.opts.Logger.Info("evaluation finished",
		"run_id", runID,
		"mode", mode.String(),
		"normalised", normalise,
		"processes", len(vals),
		"values", out,
		"duration", time.Since(start),
	)

	return out, nil
}

// run executes fn once per (instance, sample) and returns the objective
// values of every process, indexed in order.
func (m *Model) run(ctx context.Context, fn job) ([][]float64, error) {
	type proc struct{ inst, sample int }
	var procs []proc
	for i, s := range m.samples {
		for j := 0; j < s.Len(); j++ {
			procs = append(procs, proc{i, j})
		}
	}
	vals := make([][]float64, len(procs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.Workers)
	for k, pr := range procs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s := m.samples[pr.inst]
			rz, err := s.Realization(pr.sample)
			if err != nil {
				return err
			}
			st, err := state.New(s.Instance(), rz, fn.routes(pr.inst))
			if err != nil {
				return err
			}
			res, err := fn.run(pr.inst, st)
			if err != nil {
				return fmt.Errorf("instance %d seed %d: %w", pr.inst, s.Seed(pr.sample), err)
			}
			row := make([]float64, len(m.objectives))
			for o, obj := range m.objectives {
				row[o] = res.Solution.Value(obj)
			}
			vals[k] = row

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return vals, nil
}

// reference guards the normalisation against a zero reference value.
func reference(v float64) float64 {
	if v == 0 {
		return 1
	}

	return v
}
