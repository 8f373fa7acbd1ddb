// Package tour_test provides a runnable example of splitting a giant tour
// into capacity-feasible trips.
package tour_test

import (
	"fmt"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/instance"
	"github.com/katalvlaran/ucarp/tour"
)

// ExampleSplit splits three tasks on a street of ten nodes. The vehicle
// carries 50 units and the tasks need 20, 20 and 15.
func ExampleSplit() {
	var (
		g, _  = core.NewGraph(10)
		tasks = map[int]float64{2: 20, 5: 20, 8: 15}
		gt    tour.GiantTour
	)
	for u := 1; u < 10; u++ {
		fwd, _, _ := g.AddEdge(u, u+1, 1, 1, tasks[u])
		if tasks[u] > 0 {
			gt = append(gt, fwd)
		}
	}
	in, _ := instance.New(g, 1, 50, 1)

	plan, err := tour.Split(in, gt)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for i, r := range plan.Routes() {
		fmt.Printf("trip %d: %s\n", i, r.String(g))
	}
	fmt.Printf("total=%g\n", plan.TotalCost())
	// Output:
	// trip 0: (1,1) (2,3) (1,1) cost=4 load=20
	// trip 1: (1,1) (5,6) (8,9) (1,1) cost=16 load=35
	// total=20
}
