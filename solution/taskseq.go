package solution

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/ucarp/core"
)

// TaskSeqRoute is a sequence of fully served tasks bracketed by the depot
// loop. Consecutive tasks are joined by shortest paths of the Scenario used
// to build it.
type TaskSeqRoute struct {
	capacity float64
	load     float64
	peak     float64
	cost     float64
	curr     int
	tasks    []core.ArcID
}

// NewTaskSeqRoute returns a route holding only the leading depot loop.
func NewTaskSeqRoute(g *core.Graph, depotLoop core.ArcID, capacity float64) *TaskSeqRoute {
	return &TaskSeqRoute{
		capacity: capacity,
		curr:     g.Arc(depotLoop).To,
		tasks:    []core.ArcID{depotLoop},
	}
}

// Add appends a task:
//
//	cost += d(curr, task.From) + serveCost
//	load += demand
func (r *TaskSeqRoute) Add(g *core.Graph, sc Scenario, task core.ArcID) {
	a := g.Arc(task)
	r.cost += sc.Distance(r.curr, a.From) + a.ServeCost
	r.load += sc.Demand(task)
	if r.load > r.peak {
		r.peak = r.load
	}
	r.curr = a.To
	r.tasks = append(r.tasks, task)
}

// CurrNode returns the tail of the last task.
func (r *TaskSeqRoute) CurrNode() int { return r.curr }

// Capacity returns the vehicle capacity.
func (r *TaskSeqRoute) Capacity() float64 { return r.capacity }

// Load returns the total demand of the route.
func (r *TaskSeqRoute) Load() float64 { return r.load }

// PeakLoad returns the largest prefix load.
func (r *TaskSeqRoute) PeakLoad() float64 { return r.peak }

// Cost returns the route cost.
func (r *TaskSeqRoute) Cost() float64 { return r.cost }

// Tasks returns the task sequence including depot loops. The slice is shared.
func (r *TaskSeqRoute) Tasks() []core.ArcID { return r.tasks }

// Len returns the number of entries including depot loops.
func (r *TaskSeqRoute) Len() int { return len(r.tasks) }

// Task returns the i-th entry.
func (r *TaskSeqRoute) Task(i int) core.ArcID { return r.tasks[i] }

// Clone returns a deep copy.
func (r *TaskSeqRoute) Clone() *TaskSeqRoute {
	c := *r
	c.tasks = append([]core.ArcID(nil), r.tasks...)

	return &c
}

// String renders the task list, e.g. "(1,1) (2,3) (1,1)".
func (r *TaskSeqRoute) String(g *core.Graph) string {
	parts := make([]string, len(r.tasks))
	for i, t := range r.tasks {
		parts[i] = g.Arc(t).String()
	}

	return fmt.Sprintf("%s cost=%g load=%g", strings.Join(parts, " "), r.cost, r.load)
}
