package localsearch

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/eda"
	"github.com/katalvlaran/ucarp/instance"
	"github.com/katalvlaran/ucarp/tour"
)

// Search runs histogram-filtered local search over giant tours of one
// instance. A Search is not safe for concurrent use; the histogram it reads
// may be shared.
type Search struct {
	in   *instance.Instance
	h    *eda.Histogram
	fit  Fitness
	opts Options

	evals int
}

// New returns a Search over in, filtering moves with h and judging them
// with fit.
func New(in *instance.Instance, h *eda.Histogram, fit Fitness, opts ...Option) (*Search, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	switch {
	case in == nil:
		return nil, ErrNilInstance
	case h == nil:
		return nil, ErrNilHistogram
	case fit == nil:
		return nil, ErrNilFitness
	case cfg.MaxIters < 0:
		return nil, fmt.Errorf("%w: %d", ErrBadIters, cfg.MaxIters)
	case cfg.Eps < 0 || math.IsNaN(cfg.Eps):
		return nil, fmt.Errorf("%w: %g", ErrBadEps, cfg.Eps)
	}

	return &Search{in: in, h: h, fit: fit, opts: cfg}, nil
}

// Run improves t until no operator finds an improving move, or MaxIters
// moves were accepted. Every round asks each operator for its first
// improving move and accepts the best of them, so the fitness strictly
// decreases from one accepted tour to the next.
func (s *Search) Run(t tour.GiantTour) (tour.GiantTour, float64, Stats, error) {
	// 1) Baseline.
	if err := tour.Validate(s.in, t); err != nil {
		return nil, 0, Stats{}, err
	}
	s.evals = 0
	cur := t.Clone()
	curFit, err := s.eval(cur)
	if err != nil {
		return nil, 0, Stats{}, err
	}
	stats := Stats{Trace: []float64{curFit}, Accepted: make(map[Operator]int, len(Operators))}

	// 2) Best of the operators' first improvements, until none improves.
	var (
		best    tour.GiantTour
		bestFit float64
		bestOp  Operator
	)
	for s.opts.MaxIters == 0 || stats.Iterations < s.opts.MaxIters {
		best, bestFit = nil, curFit
		for _, op := range Operators {
			next, f, ok, err := s.Move(op, cur, curFit)
			if err != nil {
				return nil, 0, stats, err
			}
			if ok && f < bestFit {
				best, bestFit, bestOp = next, f, op
			}
		}
		if best == nil {
			break
		}
		cur, curFit = best, bestFit
		stats.Iterations++
		stats.Accepted[bestOp]++
		stats.Trace = append(stats.Trace, curFit)
		s.opts.Logger.Debug("local search move", "operator", bestOp.String(), "iteration", stats.Iterations, "fitness", curFit)
	}
	stats.Evaluations = s.evals

	return cur, curFit, stats, nil
}

// Move returns the first neighbour of cur under op that passes the
// histogram filter and has a fitness strictly below curFit. ok is false
// when there is none.
//
// The filter keeps a move only if the weights of the adjacencies it forms
// exceed the weights of those it breaks. Mirrored pairs carry equal weight,
// so reversing a block does not change its inner sum.
func (s *Search) Move(op Operator, cur tour.GiantTour, curFit float64) (tour.GiantTour, float64, bool, error) {
	// Pad with the depot loop on both ends: p[1..n] are the tasks.
	loop := s.in.DepotLoop()
	p := make([]core.ArcID, 0, len(cur)+2)
	p = append(p, loop)
	p = append(p, cur...)
	p = append(p, loop)

	switch op {
	case Insertion:
		return s.insertion(cur, p, curFit)
	case DoubleInsertion:
		return s.doubleInsertion(cur, p, curFit)
	case Swap:
		return s.swap(cur, p, curFit)
	case TwoOpt:
		return s.twoOpt(cur, p, curFit)
	}

	return nil, 0, false, fmt.Errorf("%w: %d", ErrBadOperator, int(op))
}

// insertion moves p[i] into the gap before p[j].
func (s *Search) insertion(cur tour.GiantTour, p []core.ArcID, curFit float64) (tour.GiantTour, float64, bool, error) {
	var (
		n         = len(cur)
		w         = s.h.Value
		old, gain float64
	)
	for i := 1; i <= n; i++ {
		x, pre, suc := p[i], p[i-1], p[i+1]
		for j := 1; j <= n+1; j++ {
			if j == i || j == i+1 {
				continue
			}
			old = w(pre, x) + w(x, suc) + w(p[j-1], p[j])
			for _, y := range s.orient(x) {
				gain = w(pre, suc) + w(p[j-1], y) + w(y, p[j]) - old
				next, f, ok, err := s.try(gain, curFit, func() tour.GiantTour {
					return relocate(cur, i-1, 1, j-1, y)
				})
				if err != nil || ok {
					return next, f, ok, err
				}
			}
		}
	}

	return nil, 0, false, nil
}

// doubleInsertion moves the block p[i], p[i+1] into the gap before p[j],
// as is or reversed and inverted.
func (s *Search) doubleInsertion(cur tour.GiantTour, p []core.ArcID, curFit float64) (tour.GiantTour, float64, bool, error) {
	var (
		n         = len(cur)
		g         = s.in.Graph()
		w         = s.h.Value
		old, gain float64
	)
	for i := 1; i < n; i++ {
		x1, x2, pre, suc := p[i], p[i+1], p[i-1], p[i+2]
		blocks := [2][2]core.ArcID{{x1, x2}, {g.Arc(x2).Inverse, g.Arc(x1).Inverse}}
		for j := 1; j <= n+1; j++ {
			if j >= i && j <= i+2 {
				continue
			}
			old = w(pre, x1) + w(x1, x2) + w(x2, suc) + w(p[j-1], p[j])
			for _, b := range blocks {
				gain = w(pre, suc) + w(p[j-1], b[0]) + w(b[0], b[1]) + w(b[1], p[j]) - old
				next, f, ok, err := s.try(gain, curFit, func() tour.GiantTour {
					return relocate(cur, i-1, 2, j-1, b[0], b[1])
				})
				if err != nil || ok {
					return next, f, ok, err
				}
			}
		}
	}

	return nil, 0, false, nil
}

// swap exchanges p[i] and p[k], k ≥ i+2, in all four orientations.
func (s *Search) swap(cur tour.GiantTour, p []core.ArcID, curFit float64) (tour.GiantTour, float64, bool, error) {
	var (
		n         = len(cur)
		w         = s.h.Value
		old, gain float64
	)
	for i := 1; i <= n-2; i++ {
		for k := i + 2; k <= n; k++ {
			x, z := p[i], p[k]
			old = w(p[i-1], x) + w(x, p[i+1]) + w(p[k-1], z) + w(z, p[k+1])
			for _, y := range s.orient(z) {
				for _, v := range s.orient(x) {
					gain = w(p[i-1], y) + w(y, p[i+1]) + w(p[k-1], v) + w(v, p[k+1]) - old
					next, f, ok, err := s.try(gain, curFit, func() tour.GiantTour {
						out := cur.Clone()
						out[i-1], out[k-1] = y, v

						return out
					})
					if err != nil || ok {
						return next, f, ok, err
					}
				}
			}
		}
	}

	return nil, 0, false, nil
}

// twoOpt reverses p[a..b] and inverts every task in it.
func (s *Search) twoOpt(cur tour.GiantTour, p []core.ArcID, curFit float64) (tour.GiantTour, float64, bool, error) {
	var (
		n    = len(cur)
		g    = s.in.Graph()
		w    = s.h.Value
		gain float64
	)
	inv := func(id core.ArcID) core.ArcID { return g.Arc(id).Inverse }
	for a := 1; a <= n; a++ {
		for b := a; b <= n; b++ {
			gain = w(p[a-1], inv(p[b])) + w(inv(p[a]), p[b+1]) - w(p[a-1], p[a]) - w(p[b], p[b+1])
			next, f, ok, err := s.try(gain, curFit, func() tour.GiantTour {
				out := cur.Clone()
				for q := a; q <= b; q++ {
					out[q-1] = inv(p[a+b-q])
				}

				return out
			})
			if err != nil || ok {
				return next, f, ok, err
			}
		}
	}

	return nil, 0, false, nil
}

// try builds and evaluates a neighbour if its histogram gain exceeds Eps.
func (s *Search) try(gain, curFit float64, build func() tour.GiantTour) (tour.GiantTour, float64, bool, error) {
	if gain <= s.opts.Eps {
		return nil, 0, false, nil
	}
	next := build()
	f, err := s.eval(next)
	if err != nil {
		return nil, 0, false, err
	}
	if f < curFit {
		return next, f, true, nil
	}

	return nil, 0, false, nil
}

func (s *Search) eval(t tour.GiantTour) (float64, error) {
	s.evals++
	f, err := s.fit.Fitness(t)
	if err != nil {
		return 0, fmt.Errorf("localsearch: fitness: %w", err)
	}

	return f, nil
}

// orient lists the directions a task may be placed in.
func (s *Search) orient(x core.ArcID) []core.ArcID {
	if inv := s.in.Graph().Arc(x).Inverse; inv != x {
		return []core.ArcID{x, inv}
	}

	return []core.ArcID{x}
}

// relocate removes cur[from:from+k] and inserts ys at gap, a position of
// cur outside the removed block.
func relocate(cur tour.GiantTour, from, k, gap int, ys ...core.ArcID) tour.GiantTour {
	out := make(tour.GiantTour, 0, len(cur))
	out = append(out, cur[:from]...)
	out = append(out, cur[from+k:]...)
	if gap > from {
		gap -= k
	}

	return slices.Insert(out, gap, ys...)
}
