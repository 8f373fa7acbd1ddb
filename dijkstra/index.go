package dijkstra

import (
	"fmt"
	"math"
)

func (p *PathIndex) at(u, v int) int { return (u-1)*p.n + (v - 1) }

// N returns the node count the index was built for.
func (p *PathIndex) N() int { return p.n }

// Distance returns the shortest known distance u→v, +Inf if unreachable.
func (p *PathIndex) Distance(u, v int) float64 { return p.dist.Row(u - 1)[v-1] }

// NextHop returns the node following u on the path u→v.
// It returns 0 when u == v or v is unreachable.
func (p *PathIndex) NextHop(u, v int) int { return p.next[p.at(u, v)] }

// Predecessor returns the node preceding v on the path u→v, 0 if none.
func (p *PathIndex) Predecessor(u, v int) int { return p.pred[p.at(u, v)] }

// Path returns the node sequence u..v following successor links.
func (p *PathIndex) Path(u, v int) ([]int, error) {
	if math.IsInf(p.Distance(u, v), 1) {
		return nil, fmt.Errorf("%w: %d→%d", ErrUnreachable, u, v)
	}
	path := []int{u}
	for cur := u; cur != v; {
		cur = p.NextHop(cur, v)
		if cur == noNode || len(path) > p.n {
			// A stale row after a partial repair can leave a gap.
			return nil, fmt.Errorf("%w: broken successor chain %d→%d", ErrUnreachable, u, v)
		}
		path = append(path, cur)
	}

	return path, nil
}

// Clone returns an independent deep copy.
func (p *PathIndex) Clone() *PathIndex {
	c := &PathIndex{
		n:    p.n,
		dist: p.dist.Clone(),
		pred: make([]int, len(p.pred)),
		next: make([]int, len(p.next)),
	}
	copy(c.pred, p.pred)
	copy(c.next, p.next)

	return c
}
