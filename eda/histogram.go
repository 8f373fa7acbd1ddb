package eda

import (
	"math/rand"
	"slices"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/instance"
	"github.com/katalvlaran/ucarp/matrix"
	"github.com/katalvlaran/ucarp/rng"
	"github.com/katalvlaran/ucarp/tour"
)

// Histogram is the edge histogram matrix: a weight for every ordered pair of
// task arcs, the depot loop included. Update and the read methods may be
// called from different goroutines; Update blocks until readers are done and
// readers never see a half-applied update.
type Histogram struct {
	mu   sync.RWMutex
	in   *instance.Instance
	opts Options

	slot []int // ArcID → row, -1 for arcs that are neither task nor depot loop
	m    int
	w    *matrix.Dense // m×m, row(a), row(b)
}

// New returns a histogram over the tasks of in with every weight zero.
func New(in *instance.Instance, opts ...Option) (*Histogram, error) {
	// 1) Collect and check options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if in == nil {
		return nil, ErrNilInstance
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// 2) Dense rows: depot loop first, then tasks in natural order.
	g := in.Graph()
	h := &Histogram{in: in, opts: cfg, slot: make([]int, g.NumArcs())}
	for i := range h.slot {
		h.slot[i] = -1
	}
	h.slot[in.DepotLoop()] = 0
	for i, id := range in.Tasks() {
		h.slot[id] = i + 1
	}
	h.m = len(in.Tasks()) + 1
	w, err := matrix.NewDense(h.m, h.m)
	if err != nil {
		return nil, err
	}
	h.w = w

	return h, nil
}

// Value returns the weight of the ordered pair (a, b).
func (h *Histogram) Value(a, b core.ArcID) float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.at(a, b)
}

// Sum returns the total weight of the given ordered pairs under one read lock.
func (h *Histogram) Sum(pairs ...[2]core.ArcID) float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var s float64
	for _, p := range pairs {
		s += h.at(p[0], p[1])
	}

	return s
}

// Update decays every weight towards ε = popSize/(tourLen−1)·ratio and then
// reinforces every adjacency of every tour, the depot legs included, along
// with its mirror: (a, b) also credits (b⁻¹, a⁻¹).
//
// Complexity: O(m² + Σ len(tour)).
func (h *Histogram) Update(tours []tour.GiantTour) error {
	// 1) Validate outside the lock.
	if len(tours) == 0 {
		return ErrEmptyPopulation
	}
	for _, t := range tours {
		if err := tour.Validate(h.in, t); err != nil {
			return err
		}
	}
	span := len(tours[0]) - 1
	if span < 1 {
		span = 1
	}
	eps := float64(len(tours)) / float64(span) * h.opts.Ratio
	lr := h.opts.LearningRate

	h.mu.Lock()
	defer h.mu.Unlock()

	// 2) Decay.
	h.w.Scale(1 - lr)
	h.w.AddConst(lr * eps)

	// 3) Reinforce.
	loop := h.in.DepotLoop()
	for _, t := range tours {
		h.credit(loop, t[0], lr)
		for i := 0; i+1 < len(t); i++ {
			h.credit(t[i], t[i+1], lr)
		}
		h.credit(t[len(t)-1], loop, lr)
	}

	return nil
}

// Sample builds a new giant tour by roulette-wheel selection: starting at
// the depot, the next task is drawn among the unplaced ones with probability
// proportional to its weight after the last placed task.
func (h *Histogram) Sample(r *rand.Rand) tour.GiantTour {
	pool := slices.Clone(h.in.Tasks())
	n := tour.NumEdges(h.in)

	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.fill(h.in.DepotLoop(), pool, n, r)
}

// Resample regenerates one segment of parent. parent is cut at a random
// position into two segments; one of them, chosen at random, is redrawn by
// roulette from its own tasks, continuing from the task before it.
func (h *Histogram) Resample(parent tour.GiantTour, r *rand.Rand) tour.GiantTour {
	if r == nil {
		r = rng.New(0)
	}
	child := parent.Clone()
	if len(parent) < 2 {
		return child
	}

	// 1) Cut and pick the segment [lo, hi).
	cut := 1 + r.Intn(len(parent)-1)
	lo, hi := 0, cut
	if r.Intn(2) == 1 {
		lo, hi = cut, len(parent)
	}

	// 2) The segment's tasks in both directions form the pool.
	g := h.in.Graph()
	pool := make([]core.ArcID, 0, 2*(hi-lo))
	for _, id := range parent[lo:hi] {
		pool = append(pool, id)
		if inv := g.Arc(id).Inverse; inv != id {
			pool = append(pool, inv)
		}
	}
	prev := h.in.DepotLoop()
	if lo > 0 {
		prev = parent[lo-1]
	}

	h.mu.RLock()
	seg := h.fill(prev, pool, hi-lo, r)
	h.mu.RUnlock()
	copy(child[lo:hi], seg)

	return child
}

// fill draws n tasks from pool by roulette, starting after prev. Caller
// holds the read lock.
func (h *Histogram) fill(prev core.ArcID, pool []core.ArcID, n int, r *rand.Rand) tour.GiantTour {
	if r == nil {
		r = rng.New(0)
	}
	g := h.in.Graph()
	out := make(tour.GiantTour, 0, n)
	weights := make([]float64, len(pool))

	var (
		next  core.ArcID
		total float64
		x     float64
		k     int
	)
	for len(out) < n && len(pool) > 0 {
		// 1) Weights relative to the last placed task.
		weights = weights[:len(pool)]
		for i, id := range pool {
			weights[i] = h.at(prev, id)
		}
		total = floats.Sum(weights)

		// 2) Spin the wheel; a zero wheel falls back to a uniform pick.
		if total > 0 {
			x = r.Float64() * total
			for k = 0; k < len(pool)-1; k++ {
				if x < weights[k] {
					break
				}
				x -= weights[k]
			}
		} else {
			k = r.Intn(len(pool))
		}
		next = pool[k]
		out = append(out, next)
		prev = next

		// 3) The edge is placed: drop both directions.
		inv := g.Arc(next).Inverse
		pool = slices.DeleteFunc(pool, func(id core.ArcID) bool { return id == next || id == inv })
	}

	return out
}

// credit adds lr to (a, b) and to its mirror (b⁻¹, a⁻¹). Caller holds the
// write lock.
func (h *Histogram) credit(a, b core.ArcID, lr float64) {
	g := h.in.Graph()
	i, j := h.slot[a], h.slot[b]
	h.w.Row(i)[j] += lr
	mi, mj := h.slot[g.Arc(b).Inverse], h.slot[g.Arc(a).Inverse]
	if mi != i || mj != j {
		h.w.Row(mi)[mj] += lr
	}
}

func (h *Histogram) at(a, b core.ArcID) float64 {
	i, j := h.slot[a], h.slot[b]
	if i < 0 || j < 0 {
		return 0
	}

	return h.w.Row(i)[j]
}
