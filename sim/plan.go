package sim

// planned is the transition function of Plan events. The target is the
// PlanIndex-th entry of the vehicle's plan route; depot loops in the plan
// mark the start and end of the route and are not served.
func (e *engine) planned(ev Event) error {
	r := e.s.Route(ev.Route)
	pr := e.plan.Route(ev.Route)
	depot := e.s.Instance().Depot()

	switch ev.Kind {
	case RefillThenServe:
		if r.CurrNode() != depot {
			if err := e.hop(ev.Route, depot); err != nil {
				return err
			}
			e.push(ev)

			return nil
		}
		r.Refill()
		e.push(Event{Kind: Serving, Route: ev.Route, PlanIndex: ev.PlanIndex})

		return nil

	case Serving:
		task := pr.Task(ev.PlanIndex)
		a := e.g.Arc(task)
		if r.CurrNode() == depot {
			r.Refill()
		}
		// 1) Not at the task yet: one more hop.
		if r.CurrNode() != a.From {
			if err := e.hop(ev.Route, a.From); err != nil {
				return err
			}
			e.push(ev)

			return nil
		}
		// 2) Depot loop: skip it, or close the route after the last one.
		if task == e.s.Instance().DepotLoop() {
			if ev.PlanIndex+1 < pr.Len() {
				e.push(Event{Kind: Serving, Route: ev.Route, PlanIndex: ev.PlanIndex + 1})
			}

			return nil
		}
		// 3) Serve; a route failure sends the vehicle to refill and resume.
		failed, err := e.serve(ev.Route, task)
		if err != nil {
			return err
		}
		if failed {
			e.res.RefillThenServe++
			e.push(Event{Kind: RefillThenServe, Route: ev.Route, PlanIndex: ev.PlanIndex})

			return nil
		}
		e.complete(task)
		if ev.PlanIndex+1 >= pr.Len() {
			return nil
		}

		// 4) Continue to the next planned task, or refill first.
		nextIdx := ev.PlanIndex + 1
		e.s.CalcRouteToTask(ev.Route)
		e.res.Decisions++
		e.opts.Metrics.Decision(e.mode.String())
		if e.p.ContinueService(pr.Task(nextIdx), r, e.s) {
			e.push(Event{Kind: Serving, Route: ev.Route, PlanIndex: nextIdx})

			return nil
		}
		e.res.RefillThenServe++
		e.push(Event{Kind: RefillThenServe, Route: ev.Route, PlanIndex: nextIdx})

		return nil
	}

	// Refill never occurs in plan mode.
	return nil
}
