package policy

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/solution"
	"github.com/katalvlaran/ucarp/state"
)

// Features maps terminal names to their evaluation. All distances are the
// run's estimated shortest distances; demands are expected values.
//
//	CFH   cost from the route's position to the candidate
//	CFD   cost from the depot to the candidate
//	CTD   cost from the candidate back to the depot
//	CR    cost from the route's position to the depot (refill cost)
//	DEM   expected demand
//	DC    expected deadheading cost
//	SC    serve cost
//	DR    demand over capacity
//	FULL  route load over capacity
//	FAS   fullness after serving the candidate (after a refill if the way
//	      passes through the depot)
//	FAS1  FAS for the nearest other route able to take the candidate
//	RQ    remaining capacity
//	RQ1   remaining capacity of the nearest other route
//	FRT   fraction of tasks still remaining
//	FUT   fraction of tasks still unassigned
//	CFR1  cost from the nearest other route to the candidate
//	CTT1  cost from the candidate to its nearest remaining task
//	FF    remaining tasks whose way home covers the candidate or its inverse
var Features = map[string]PriorityFunc{
	"CFH":  FeatureCostFromHere,
	"CFD":  featureCostFromDepot,
	"CTD":  FeatureCostToDepot,
	"CR":   featureCostRefill,
	"DEM":  featureDemand,
	"DC":   featureDeadheadingCost,
	"SC":   featureServeCost,
	"DR":   featureDemandRatio,
	"FULL": featureFullness,
	"FAS":  featureFullnessAfterService,
	"FAS1": featureFullnessAfterService1,
	"RQ":   featureRemainingCapacity,
	"RQ1":  featureRemainingCapacity1,
	"FRT":  featureFractionRemaining,
	"FUT":  featureFractionUnassigned,
	"CFR1": featureCostFromRoute1,
	"CTT1": featureCostToTask1,
	"FF":   featureFloodFill,
}

// FeatureNames returns the registered feature names in sorted order.
func FeatureNames() []string {
	names := make([]string, 0, len(Features))
	for n := range Features {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

// FeatureCostFromHere is CFH.
func FeatureCostFromHere(c core.ArcID, r *solution.NodeSeqRoute, s *state.State) float64 {
	return s.EstDistance(r.CurrNode(), s.Graph().Arc(c).From)
}

// FeatureCostToDepot is CTD.
func FeatureCostToDepot(c core.ArcID, _ *solution.NodeSeqRoute, s *state.State) float64 {
	return s.EstDistance(s.Graph().Arc(c).To, s.Instance().Depot())
}

func featureCostFromDepot(c core.ArcID, _ *solution.NodeSeqRoute, s *state.State) float64 {
	return s.EstDistance(s.Instance().Depot(), s.Graph().Arc(c).From)
}

func featureCostRefill(_ core.ArcID, r *solution.NodeSeqRoute, s *state.State) float64 {
	return s.EstDistance(r.CurrNode(), s.Instance().Depot())
}

func featureDemand(c core.ArcID, _ *solution.NodeSeqRoute, s *state.State) float64 {
	return s.Graph().Arc(c).ExpectedDemand
}

func featureDeadheadingCost(c core.ArcID, _ *solution.NodeSeqRoute, s *state.State) float64 {
	return s.Graph().Arc(c).ExpectedCost
}

func featureServeCost(c core.ArcID, _ *solution.NodeSeqRoute, s *state.State) float64 {
	return s.Graph().Arc(c).ServeCost
}

func featureDemandRatio(c core.ArcID, r *solution.NodeSeqRoute, s *state.State) float64 {
	return s.Graph().Arc(c).ExpectedDemand / r.Capacity()
}

func featureFullness(_ core.ArcID, r *solution.NodeSeqRoute, _ *state.State) float64 {
	return r.Load() / r.Capacity()
}

func featureFullnessAfterService(c core.ArcID, r *solution.NodeSeqRoute, s *state.State) float64 {
	dem := s.Graph().Arc(c).ExpectedDemand
	if viaDepot(c, r, s) {
		return dem / r.Capacity()
	}

	return (r.Load() + dem) / r.Capacity()
}

func featureFullnessAfterService1(c core.ArcID, r *solution.NodeSeqRoute, s *state.State) float64 {
	if c == s.Instance().DepotLoop() {
		return 0
	}
	others := s.RouteNeighbours(c)
	if len(others) == 0 {
		return math.Inf(1)
	}
	dem := s.Graph().Arc(c).ExpectedDemand
	through := viaDepot(c, r, s)

	// The nearest other route that could take c, else the farthest one.
	var r1 *solution.NodeSeqRoute
	for _, i := range others {
		r1 = s.Route(i)
		if r1.Load()+dem <= r1.Capacity() || through {
			break
		}
	}
	if through {
		return dem / r1.Capacity()
	}

	return (r1.Load() + dem) / r1.Capacity()
}

func featureRemainingCapacity(_ core.ArcID, r *solution.NodeSeqRoute, _ *state.State) float64 {
	return r.RemainingCapacity()
}

func featureRemainingCapacity1(c core.ArcID, _ *solution.NodeSeqRoute, s *state.State) float64 {
	others := s.RouteNeighbours(c)
	if len(others) == 0 {
		return 0
	}

	return s.Route(others[0]).RemainingCapacity()
}

func featureFractionRemaining(_ core.ArcID, _ *solution.NodeSeqRoute, s *state.State) float64 {
	return float64(len(s.Remaining())) / float64(s.Instance().NumTasks())
}

func featureFractionUnassigned(_ core.ArcID, _ *solution.NodeSeqRoute, s *state.State) float64 {
	return float64(len(s.Unassigned())) / float64(s.Instance().NumTasks())
}

func featureCostFromRoute1(c core.ArcID, _ *solution.NodeSeqRoute, s *state.State) float64 {
	others := s.RouteNeighbours(c)
	if len(others) == 0 {
		return 0
	}

	return s.EstDistance(s.Route(others[0]).CurrNode(), s.Graph().Arc(c).From)
}

func featureCostToTask1(c core.ArcID, _ *solution.NodeSeqRoute, s *state.State) float64 {
	near := s.TaskNeighbours(c)
	if len(near) == 0 {
		return 0
	}

	return s.EstArcDistance(c, near[0])
}

func featureFloodFill(c core.ArcID, _ *solution.NodeSeqRoute, s *state.State) float64 {
	return float64(len(s.OnFloods(c)) + len(s.OnFloods(s.Graph().Arc(c).Inverse)))
}

// Term is one weighted feature of a Linear policy.
type Term struct {
	Feature string  `yaml:"feature"`
	Weight  float64 `yaml:"weight"`
}

// Linear builds a Simple policy whose priority is the weighted sum of the
// named features. Default filter: Identity.
func Linear(terms []Term, opts ...Option) (*Simple, error) {
	fs := make([]PriorityFunc, len(terms))
	ws := make([]float64, len(terms))
	parts := make([]string, len(terms))
	for i, t := range terms {
		f, ok := Features[strings.ToUpper(t.Feature)]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, t.Feature)
		}
		fs[i], ws[i] = f, t.Weight
		parts[i] = fmt.Sprintf("%g*%s", t.Weight, strings.ToUpper(t.Feature))
	}
	prio := func(c core.ArcID, r *solution.NodeSeqRoute, s *state.State) float64 {
		var sum float64
		for i, f := range fs {
			sum += ws[i] * f(c, r, s)
		}

		return sum
	}

	return NewSimple("Linear("+strings.Join(parts, " + ")+")", prio, opts...), nil
}
