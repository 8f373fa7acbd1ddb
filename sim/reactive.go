package sim

import (
	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/policy"
)

// reactive is the transition function of Reactive and Pilot events.
func (e *engine) reactive(ev Event) error {
	r := e.s.Route(ev.Route)
	depot := e.s.Instance().Depot()

	switch ev.Kind {
	case Refill:
		// 1) Not home yet: one more hop.
		if r.CurrNode() != depot {
			if err := e.hop(ev.Route, depot); err != nil {
				return err
			}
			e.push(ev)

			return nil
		}
		// 2) Home: empty the vehicle, close or take a new task.
		r.Refill()
		if len(e.s.Unassigned()) == 0 {
			r.SetNextTask(core.NoArc)
			return nil
		}

		return e.next(ev.Route)

	case RefillThenServe:
		if r.CurrNode() != depot {
			if err := e.hop(ev.Route, depot); err != nil {
				return err
			}
			e.push(ev)

			return nil
		}
		r.Refill()
		e.push(Event{Kind: Serving, Route: ev.Route, Task: ev.Task})

		return nil

	case Serving:
		from := e.g.Arc(ev.Task).From
		if r.CurrNode() == depot {
			r.Refill()
		}
		// 1) Not at the task yet: one more hop.
		if r.CurrNode() != from {
			if err := e.hop(ev.Route, from); err != nil {
				return err
			}
			e.push(ev)

			return nil
		}
		// 2) Serve; a route failure sends the vehicle to refill and resume.
		failed, err := e.serve(ev.Route, ev.Task)
		if err != nil {
			return err
		}
		if failed {
			e.res.RefillThenServe++
			e.push(Event{Kind: RefillThenServe, Route: ev.Route, Task: ev.Task})

			return nil
		}
		// 3) Completed: choose what comes next.
		e.complete(ev.Task)

		return e.next(ev.Route)
	}

	return nil
}

// next takes a decision for route ri and enqueues its successor event:
// Serving for the chosen task, or Refill when nothing can be chosen.
func (e *engine) next(ri int) error {
	r := e.s.Route(ri)
	e.s.CalcRouteToTask(ri)

	task, ok, err := e.decide(ri)
	if err != nil {
		return err
	}
	if !ok {
		r.SetNextTask(core.NoArc)
		e.push(Event{Kind: Refill, Route: ri, Task: core.NoArc})

		return nil
	}
	e.commit(ri, task)

	return nil
}

// commit assigns task to route ri and enqueues the Serving event.
func (e *engine) commit(ri int, task core.ArcID) {
	e.s.RemoveUnassigned(task)
	e.s.Route(ri).SetNextTask(task)
	e.push(Event{Kind: Serving, Route: ri, Task: task})
}

// decide chooses the next task of route ri from the unassigned pool.
// The filtered pool is used; when it is empty at the depot the unfiltered
// pool replaces it.
func (e *engine) decide(ri int) (core.ArcID, bool, error) {
	r := e.s.Route(ri)
	pool := e.s.Unassigned()
	cands := e.p.Filter(pool, r, e.s)
	if len(cands) == 0 {
		if len(pool) == 0 || !e.atDepot(ri) {
			return core.NoArc, false, nil
		}
		cands = pool
	}

	if !e.expected {
		e.res.Decisions++
		e.opts.Metrics.Decision(e.mode.String())
	}
	if e.mode == Pilot && !e.expected {
		task, err := e.pilot(ri, cands)
		return task, err == nil, err
	}
	task, ok := e.p.Choose(cands, r, e.s)

	return task, ok, nil
}

// pilot rolls out the policy's top candidates and returns the one with the
// cheapest expected completion. Ties keep the policy's order.
func (e *engine) pilot(ri int, cands []core.ArcID) (core.ArcID, error) {
	top := policy.Rank(e.p, cands, e.s.Route(ri), e.s, e.opts.PilotWidth)
	if len(top) == 1 {
		return top[0], nil
	}

	var (
		best     = top[0]
		bestCost float64
	)
	for i, c := range top {
		cost, err := e.rollout(ri, c)
		if err != nil {
			return core.NoArc, err
		}
		if i == 0 || cost < bestCost {
			best, bestCost = c, cost
		}
	}
	e.opts.Logger.Debug("pilot decision", "route", ri, "candidates", len(top), "chosen", e.g.Arc(best).String(), "cost", bestCost)

	return best, nil
}

// rollout commits task for route ri on a clone of the run and simulates it
// to completion with expected demands and costs. It returns the total cost.
func (e *engine) rollout(ri int, task core.ArcID) (float64, error) {
	c := &engine{
		s:        e.s.Clone(),
		g:        e.g,
		mode:     Reactive,
		p:        e.p,
		sc:       e.s.Instance(),
		expected: true,
		queue:    append(eventQueue(nil), e.queue...),
		seq:      e.seq,
		opts:     Options{Logger: discard, PilotWidth: e.opts.PilotWidth},
		res:      &Result{Mode: Reactive},
	}
	c.commit(ri, task)
	if err := c.loop(); err != nil {
		return 0, err
	}

	return c.s.Solution().TotalCost(), nil
}
