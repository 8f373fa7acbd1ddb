package tour

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ucarp/instance"
	"github.com/katalvlaran/ucarp/solution"
)

// Split partitions t into capacity-feasible trips of minimum total expected
// cost, using expected demands and expected shortest distances.
//
// Complexity: O(n·w) where w is the longest feasible trip, at most O(n²).
func Split(in *instance.Instance, t GiantTour) (*Plan, error) {
	if in == nil {
		return nil, ErrNilInstance
	}

	return split(in, in, t)
}

// SplitRealized is Split under the actual demands and costs of rz. The
// result is the a-posteriori cost of the giant tour in that scenario.
func SplitRealized(rz *instance.Realization, t GiantTour) (*Plan, error) {
	if rz == nil {
		return nil, ErrNilInstance
	}

	return split(rz.Instance(), rz, t)
}

// split is the Ulusoy DP shared by both modes. best[i] is the cheapest way
// to serve the first i tasks; trip(s, e) serves t[s..e] from and to the
// depot. Equal costs prefer fewer trips.
func split(in *instance.Instance, sc solution.Scenario, t GiantTour) (*Plan, error) {
	// 1) Validate the permutation before any cost lookup.
	if err := Validate(in, t); err != nil {
		return nil, err
	}

	var (
		g        = in.Graph()
		n        = len(t)
		depot    = in.Depot()
		capacity = in.Capacity()
		best     = make([]float64, n+1)
		trips    = make([]int, n+1)
		from     = make([]int, n+1)
	)
	for i := 1; i <= n; i++ {
		best[i] = math.Inf(1)
	}

	// 2) Relax every trip starting at s while it fits.
	var load, inner, total float64
	for s := 0; s < n; s++ {
		if math.IsInf(best[s], 1) {
			continue
		}
		load, inner = 0, sc.Distance(depot, g.Arc(t[s]).From)
		for e := s; e < n; e++ {
			a := g.Arc(t[e])
			load += sc.Demand(t[e])
			if load > capacity {
				break
			}
			if e > s {
				inner += sc.Distance(g.Arc(t[e-1]).To, a.From)
			}
			inner += a.ServeCost
			total = best[s] + (inner + sc.Distance(a.To, depot))
			if total < best[e+1] || (total == best[e+1] && trips[s]+1 < trips[e+1]) {
				best[e+1] = total
				trips[e+1] = trips[s] + 1
				from[e+1] = s
			}
		}
	}
	if math.IsInf(best[n], 1) {
		return nil, fmt.Errorf("%w: %d tasks, capacity %g", ErrInfeasibleTour, n, capacity)
	}

	// 3) Walk the trip starts back from n, then build the routes forwards.
	bounds := make([]int, trips[n]+1)
	for i, e := trips[n], n; i > 0; i-- {
		bounds[i] = e
		e = from[e]
	}

	routes := make([]*solution.TaskSeqRoute, trips[n])
	for k := range routes {
		r := solution.NewTaskSeqRoute(g, in.DepotLoop(), capacity)
		for _, id := range t[bounds[k]:bounds[k+1]] {
			r.Add(g, sc, id)
		}
		r.Add(g, sc, in.DepotLoop())
		routes[k] = r
	}

	return solution.New(routes...), nil
}
