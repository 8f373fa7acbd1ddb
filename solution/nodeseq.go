package solution

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/ucarp/core"
)

// NodeSeqRoute is the route a vehicle records while it moves: the visited
// nodes plus, per step, the fraction of the traversed arc's demand that was
// served (0 for pure deadheading).
//
//	nodes: [1, 2, 5, 3, 1]
//	fracs: [ 0, 1, 0.4, 0]
//
// Load is the demand collected since the last refill; the simulation resets
// it at the depot.
type NodeSeqRoute struct {
	capacity float64
	load     float64
	peak     float64
	cost     float64
	nodes    []int
	fracs    []float64
	nextTask core.ArcID
}

// NewNodeSeqRoute returns an empty route standing at the depot.
func NewNodeSeqRoute(depot int, capacity float64) *NodeSeqRoute {
	return &NodeSeqRoute{
		capacity: capacity,
		nodes:    []int{depot},
		nextTask: core.NoArc,
	}
}

// Add moves the vehicle from its current node to node along the direct arc,
// serving frac of that arc's demand:
//
//	load += demand·frac
//	cost += serveCost·frac + deadheadCost·(1−frac)
//
// Values come from sc, so the same call covers actual and expected moves.
// When the arc is unusable for deadheading a partial service is charged at
// the serve cost for its unserved share.
func (r *NodeSeqRoute) Add(g *core.Graph, sc Scenario, node int, frac float64) error {
	id := g.Lookup(r.CurrNode(), node)
	if id == core.NoArc {
		return fmt.Errorf("%w: %d→%d", ErrNoArc, r.CurrNode(), node)
	}
	a := g.Arc(id)

	r.nodes = append(r.nodes, node)
	r.fracs = append(r.fracs, frac)
	r.load += sc.Demand(id) * frac
	if r.load > r.peak {
		r.peak = r.load
	}
	r.cost += a.ServeCost * frac
	if frac < 1 {
		dead := sc.Cost(id)
		if math.IsInf(dead, 1) {
			dead = a.ServeCost
		}
		r.cost += dead * (1 - frac)
	}

	return nil
}

// CurrNode returns the last visited node.
func (r *NodeSeqRoute) CurrNode() int { return r.nodes[len(r.nodes)-1] }

// Capacity returns the vehicle capacity.
func (r *NodeSeqRoute) Capacity() float64 { return r.capacity }

// Load returns the demand collected since the last refill.
func (r *NodeSeqRoute) Load() float64 { return r.load }

// RemainingCapacity returns capacity − load.
func (r *NodeSeqRoute) RemainingCapacity() float64 { return r.capacity - r.load }

// Refill empties the vehicle.
func (r *NodeSeqRoute) Refill() { r.load = 0 }

// PeakLoad returns the largest load reached since creation or Reset.
func (r *NodeSeqRoute) PeakLoad() float64 { return r.peak }

// Cost returns the accumulated route cost, which is also the vehicle's clock.
func (r *NodeSeqRoute) Cost() float64 { return r.cost }

// Nodes returns the visited node sequence. The slice is shared.
func (r *NodeSeqRoute) Nodes() []int { return r.nodes }

// Fracs returns the served fraction of each step. The slice is shared.
func (r *NodeSeqRoute) Fracs() []float64 { return r.fracs }

// NextTask returns the task the vehicle is heading to, core.NoArc if none.
func (r *NodeSeqRoute) NextTask() core.ArcID { return r.nextTask }

// SetNextTask records the task the vehicle is heading to.
func (r *NodeSeqRoute) SetNextTask(t core.ArcID) { r.nextTask = t }

// Reset puts the route back at the depot with nothing recorded.
func (r *NodeSeqRoute) Reset(depot int) {
	r.load, r.peak, r.cost = 0, 0, 0
	r.nodes = append(r.nodes[:0], depot)
	r.fracs = r.fracs[:0]
	r.nextTask = core.NoArc
}

// Clone returns a deep copy.
func (r *NodeSeqRoute) Clone() *NodeSeqRoute {
	c := *r
	c.nodes = append([]int(nil), r.nodes...)
	c.fracs = append([]float64(nil), r.fracs...)

	return &c
}

// String renders "1 -> 2 (1) 3 -> 1": plain arrows for deadheading and the
// served fraction in parentheses otherwise.
func (r *NodeSeqRoute) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d", r.nodes[0])
	for i, f := range r.fracs {
		if f == 0 {
			fmt.Fprintf(&b, " -> %d", r.nodes[i+1])
		} else {
			fmt.Fprintf(&b, " (%g) %d", f, r.nodes[i+1])
		}
	}

	return b.String()
}
