package sim

import (
	"container/heap"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/policy"
	"github.com/katalvlaran/ucarp/solution"
	"github.com/katalvlaran/ucarp/state"
)

// PlanSolution is the plan type followed in Plan mode.
type PlanSolution = solution.Solution[*solution.TaskSeqRoute]

// Run simulates s reactively: p chooses every next task.
func Run(s *state.State, p policy.Policy, opts ...Option) (*Result, error) {
	e, err := newEngine(s, Reactive, p, nil, opts)
	if err != nil {
		return nil, err
	}

	return e.execute()
}

// RunPlan simulates s following plan, one plan route per vehicle. p only
// decides whether to continue to the next planned task or refill first.
func RunPlan(s *state.State, p policy.Policy, plan *PlanSolution, opts ...Option) (*Result, error) {
	e, err := newEngine(s, Plan, p, plan, opts)
	if err != nil {
		return nil, err
	}

	return e.execute()
}

// RunPilot simulates s reactively, evaluating the top candidates of every
// decision by expected-value rollouts before committing.
func RunPilot(s *state.State, p policy.Policy, opts ...Option) (*Result, error) {
	e, err := newEngine(s, Pilot, p, nil, opts)
	if err != nil {
		return nil, err
	}

	return e.execute()
}

// engine drives one run. Rollout engines share the type with expected set.
type engine struct {
	s    *state.State
	g    *core.Graph
	mode Mode
	p    policy.Policy
	plan *PlanSolution

	sc       solution.Scenario // realization, or the instance in rollouts
	expected bool

	queue eventQueue
	seq   uint64
	opts  Options
	res   *Result
}

func newEngine(s *state.State, mode Mode, p policy.Policy, plan *PlanSolution, opts []Option) (*engine, error) {
	// 1) Collect options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate.
	if s == nil {
		return nil, ErrNilState
	}
	if p == nil {
		return nil, ErrNilPolicy
	}
	if mode == Plan {
		if plan == nil {
			return nil, ErrNilPlan
		}
		if plan.Len() != s.Solution().Len() {
			return nil, fmt.Errorf("%w: plan=%d routes=%d", ErrPlanSize, plan.Len(), s.Solution().Len())
		}
	}
	if mode == Pilot && cfg.PilotWidth < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadPilot, cfg.PilotWidth)
	}

	e := &engine{
		s:    s,
		g:    s.Graph(),
		mode: mode,
		p:    p,
		plan: plan,
		sc:   s.Realization(),
		opts: cfg,
		res:  &Result{Mode: mode},
	}

	// 3) One initial event per vehicle.
	for i := 0; i < s.Solution().Len(); i++ {
		if mode == Plan {
			e.push(Event{Kind: Serving, Route: i})
		} else {
			e.push(Event{Kind: Refill, Route: i, Task: core.NoArc})
		}
	}

	return e, nil
}

// execute drains the queue and extracts the objectives.
func (e *engine) execute() (*Result, error) {
	if err := e.loop(); err != nil {
		e.opts.Logger.Error("simulation aborted", "mode", e.mode.String(), "err", err)
		return nil, err
	}
	sol := e.s.Solution()
	e.res.Solution = sol
	e.res.TotalCost = sol.TotalCost()
	e.res.MaxRouteCost = sol.MaxRouteCost()
	e.opts.Metrics.Simulation(e.mode.String(), e.res.TotalCost)
	e.opts.Logger.Debug("simulation finished",
		"mode", e.mode.String(),
		"seed", e.s.Realization().Seed(),
		"total_cost", e.res.TotalCost,
		"route_failures", e.res.RouteFailures,
		"edge_failures", e.res.EdgeFailures,
	)

	return e.res, nil
}

func (e *engine) loop() error {
	var ev Event
	for e.queue.Len() > 0 {
		ev = heap.Pop(&e.queue).(Event)
		if err := e.trigger(ev); err != nil {
			return err
		}
	}

	return nil
}

// trigger dispatches one event to the transition function of its mode.
func (e *engine) trigger(ev Event) error {
	if e.opts.Trace {
		e.res.Trace = append(e.res.Trace, Transition{
			Time:  ev.Time,
			Route: ev.Route,
			Kind:  ev.Kind,
			Node:  e.s.Route(ev.Route).CurrNode(),
			Task:  e.target(ev),
		})
	}
	if ev.Mode == Plan {
		return e.planned(ev)
	}

	return e.reactive(ev)
}

// target is the task an event works towards, core.NoArc for Refill.
func (e *engine) target(ev Event) core.ArcID {
	switch {
	case ev.Kind == Refill:
		return core.NoArc
	case ev.Mode == Plan:
		return e.plan.Route(ev.Route).Task(ev.PlanIndex)
	}

	return ev.Task
}

// push stamps ev with the route's clock, the run's mode and a sequence number.
func (e *engine) push(ev Event) {
	ev.Time = e.s.Route(ev.Route).Cost()
	ev.Mode = e.mode
	ev.seq = e.seq
	e.seq++
	heap.Push(&e.queue, ev)
}

// hop moves route ri one arc towards target.
func (e *engine) hop(ri, target int) error {
	r := e.s.Route(ri)
	curr := r.CurrNode()

	var (
		next   int
		failed bool
		err    error
	)
	if e.expected {
		next, err = e.s.NextHop(curr, target)
	} else {
		next, failed, err = e.s.Hop(curr, target)
	}
	if err != nil {
		return fmt.Errorf("sim: route %d at %d: %w", ri, curr, err)
	}
	if failed {
		e.res.EdgeFailures++
		e.opts.Metrics.EdgeFailure()
		e.opts.Logger.Debug("edge failure", "route", ri, "node", curr, "target", target, "via", next)
	}

	return r.Add(e.g, e.sc, next, 0)
}

// serve serves the remaining demand of task, which starts at the route's
// node. It reports a route failure when the demand did not fit: the fitting
// share is served (if any capacity is left) and the rest stays pending.
func (e *engine) serve(ri int, task core.ArcID) (bool, error) {
	r := e.s.Route(ri)
	a := e.g.Arc(task)
	frac := e.s.Fraction(task)
	full := e.sc.Demand(task)
	remCap := r.RemainingCapacity()

	// 1) Everything fits: complete the service.
	if full*frac <= remCap {
		return false, r.Add(e.g, e.sc, a.To, frac)
	}

	// 2) Route failure: serve what fits, measured in whole-task units.
	e.res.RouteFailures++
	e.opts.Metrics.RouteFailure()
	if remCap > 0 {
		served := remCap / full
		if err := r.Add(e.g, e.sc, a.To, served); err != nil {
			return true, err
		}
		e.s.SetFraction(task, frac-served)
	}
	e.opts.Logger.Debug("route failure",
		"route", ri, "task", a.String(), "remaining", e.s.Fraction(task), "load", r.Load())

	return true, nil
}

// complete removes task from every pending set and index.
func (e *engine) complete(task core.ArcID) {
	e.s.RemoveRemaining(task)
	e.s.RemoveUnassigned(task)
	e.s.CompleteTask(task)
}

// atDepot reports whether route ri stands at the depot.
func (e *engine) atDepot(ri int) bool { return e.s.Route(ri).CurrNode() == e.s.Instance().Depot() }

// discard is the logger of rollout engines.
var discard = slog.New(slog.NewTextHandler(io.Discard, nil))
