// Package tour — giant tour utilities shared by the splitter, the histogram
// model and the local search.
//
// Provided helpers:
//   - Validate: every entry is a task, every task edge appears exactly once.
//   - Random: a seeded random giant tour with random orientations.
//   - FromSolution: flatten a simulated solution back into a giant tour.
//   - Equal, Clone, String.
//
// Design:
//   - A tour is a plain []core.ArcID; the instance gives it meaning.
//   - Edges are identified by the smaller ArcID of their two directions.
//   - No logging, no panics on user input — only sentinel errors from types.go.
package tour

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/instance"
	"github.com/katalvlaran/ucarp/rng"
	"github.com/katalvlaran/ucarp/solution"
)

// Validate checks that t serves every task edge of in exactly once.
//
// Complexity: O(len(t)) time and space.
func Validate(in *instance.Instance, t GiantTour) error {
	if in == nil {
		return ErrNilInstance
	}
	if len(t) == 0 {
		return ErrEmptyTour
	}
	g := in.Graph()
	seen := make(map[core.ArcID]struct{}, len(t))

	var key core.ArcID
	for i, id := range t {
		if id < 0 || int(id) >= g.NumArcs() || !g.Arc(id).IsTask() {
			return fmt.Errorf("%w: position %d id %d", ErrUnknownTask, i, id)
		}
		key = edgeKey(g, id)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: %s at position %d", ErrDuplicateTask, g.Arc(id), i)
		}
		seen[key] = struct{}{}
	}
	if want := NumEdges(in); len(seen) != want {
		return fmt.Errorf("%w: %d of %d edges", ErrIncompleteTour, len(seen), want)
	}

	return nil
}

// NumEdges returns the number of task edges of in, i.e. the length of every
// valid giant tour.
func NumEdges(in *instance.Instance) int {
	g := in.Graph()
	n := 0
	for _, id := range in.Tasks() {
		if edgeKey(g, id) == id {
			n++
		}
	}

	return n
}

// Random returns a giant tour with the task edges in random order, each in a
// random direction. A nil r uses the default stream.
//
// Complexity: O(E).
func Random(in *instance.Instance, r *rand.Rand) GiantTour {
	if r == nil {
		r = rng.New(0)
	}
	g := in.Graph()
	t := make(GiantTour, 0, len(in.Tasks()))
	for _, id := range in.Tasks() {
		if edgeKey(g, id) == id {
			t = append(t, id)
		}
	}
	rng.Shuffle(t, r)
	for i, id := range t {
		if r.Intn(2) == 1 {
			t[i] = g.Arc(id).Inverse
		}
	}

	return t
}

// FromSolution lists the tasks of sol in service order. A task split by a
// route failure is listed at its first service; deadheading steps are
// skipped.
func FromSolution(in *instance.Instance, sol *solution.Solution[*solution.NodeSeqRoute]) GiantTour {
	g := in.Graph()
	seen := make(map[core.ArcID]struct{}, len(in.Tasks()))
	var t GiantTour

	var (
		nodes []int
		id    core.ArcID
	)
	for _, r := range sol.Routes() {
		nodes = r.Nodes()
		for i, f := range r.Fracs() {
			if f == 0 {
				continue
			}
			id = g.Lookup(nodes[i], nodes[i+1])
			if id == core.NoArc || !g.Arc(id).IsTask() {
				continue
			}
			if _, ok := seen[edgeKey(g, id)]; ok {
				continue
			}
			seen[edgeKey(g, id)] = struct{}{}
			t = append(t, id)
		}
	}

	return t
}

// Equal reports whether a and b list the same tasks in the same order and
// directions.
func Equal(a, b GiantTour) bool { return slices.Equal(a, b) }

// Clone returns an independent copy of t.
func (t GiantTour) Clone() GiantTour { return slices.Clone(t) }

// String renders t as "(2,3) (5,6) ...".
func (t GiantTour) String(g *core.Graph) string {
	parts := make([]string, len(t))
	for i, id := range t {
		parts[i] = g.Arc(id).String()
	}

	return strings.Join(parts, " ")
}

// edgeKey identifies the undirected edge of id.
func edgeKey(g *core.Graph, id core.ArcID) core.ArcID {
	if inv := g.Arc(id).Inverse; inv < id {
		return inv
	}

	return id
}
