package tour_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/instance"
	"github.com/katalvlaran/ucarp/tour"
)

// streetInstance is the path 1—2—…—10 with unit deadheading costs and the
// tasks (2,3) d20 serve 2, (5,6) d20 serve 3, (8,9) d15 serve 4.
func streetInstance(t testing.TB, capacity float64, opts ...instance.Option) *instance.Instance {
	t.Helper()
	g, err := core.NewGraph(10)
	require.NoError(t, err)
	tasks := map[int][2]float64{2: {2, 20}, 5: {3, 20}, 8: {4, 15}}
	for u := 1; u < 10; u++ {
		serve, demand := 1.0, 0.0
		if td, ok := tasks[u]; ok {
			serve, demand = td[0], td[1]
		}
		_, _, err = g.AddEdge(u, u+1, serve, 1, demand)
		require.NoError(t, err)
	}
	in, err := instance.New(g, 1, capacity, 1, opts...)
	require.NoError(t, err)

	return in
}

func arc(t testing.TB, in *instance.Instance, u, v int) core.ArcID {
	t.Helper()
	id, err := in.Graph().ArcBetween(u, v)
	require.NoError(t, err)

	return id
}

// streetTour serves the three street tasks left to right.
func streetTour(t testing.TB, in *instance.Instance) tour.GiantTour {
	t.Helper()

	return tour.GiantTour{arc(t, in, 2, 3), arc(t, in, 5, 6), arc(t, in, 8, 9)}
}

// tripTasks lists the tasks of every trip without the depot loops.
func tripTasks(in *instance.Instance, p *tour.Plan) [][]core.ArcID {
	var res [][]core.ArcID
	for _, r := range p.Routes() {
		var trip []core.ArcID
		for _, id := range r.Tasks() {
			if id != in.DepotLoop() {
				trip = append(trip, id)
			}
		}
		res = append(res, trip)
	}

	return res
}
