package solution

// Solution is an ordered list of routes of one kind.
type Solution[R Route[R]] struct {
	routes []R
}

// New wraps routes into a Solution. The slice is owned by the Solution.
func New[R Route[R]](routes ...R) *Solution[R] {
	return &Solution[R]{routes: routes}
}

// Routes returns the routes. The slice is shared.
func (s *Solution[R]) Routes() []R { return s.routes }

// Len returns the number of routes.
func (s *Solution[R]) Len() int { return len(s.routes) }

// Route returns the i-th route.
func (s *Solution[R]) Route(i int) R { return s.routes[i] }

// Append adds a route at the end.
func (s *Solution[R]) Append(r R) { s.routes = append(s.routes, r) }

// TotalCost returns the sum of route costs.
func (s *Solution[R]) TotalCost() float64 {
	var sum float64
	for _, r := range s.routes {
		sum += r.Cost()
	}

	return sum
}

// MaxRouteCost returns the largest route cost, 0 for an empty solution.
func (s *Solution[R]) MaxRouteCost() float64 {
	var m float64
	for _, r := range s.routes {
		if c := r.Cost(); c > m {
			m = c
		}
	}

	return m
}

// Value returns the value of an objective.
func (s *Solution[R]) Value(o Objective) float64 {
	if o == MaxRouteCost {
		return s.MaxRouteCost()
	}

	return s.TotalCost()
}

// Clone deep-copies every route.
func (s *Solution[R]) Clone() *Solution[R] {
	routes := make([]R, len(s.routes))
	for i, r := range s.routes {
		routes[i] = r.Clone()
	}

	return &Solution[R]{routes: routes}
}
