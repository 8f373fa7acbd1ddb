package dijkstra

import (
	"errors"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/matrix"
)

// Sentinel errors returned by the shortest-path index.
var (
	// ErrNilGraph indicates that a nil *core.Graph was supplied.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrNilWeight indicates that no weight function was supplied.
	ErrNilWeight = errors.New("dijkstra: weight function is nil")

	// ErrNegativeWeight indicates that a negative arc weight was encountered.
	ErrNegativeWeight = errors.New("dijkstra: negative arc weight encountered")

	// ErrNaNWeight indicates that an arc weight is NaN.
	ErrNaNWeight = errors.New("dijkstra: arc weight is NaN")

	// ErrSizeMismatch indicates the index and the graph disagree on node count.
	ErrSizeMismatch = errors.New("dijkstra: index size does not match graph")

	// ErrUnreachable indicates that no usable path joins two nodes.
	ErrUnreachable = errors.New("dijkstra: target unreachable")
)

// Weight returns the traversal cost of an arc. +Inf means unusable.
type Weight func(id core.ArcID) float64

// noNode marks a missing predecessor or successor.
const noNode = 0

// PathIndex holds dense V×V distance, predecessor and successor tables.
// Distances live in row u-1, column v-1 of dist; the node tables use the
// same layout at offset (u-1)*n + (v-1).
type PathIndex struct {
	n    int
	dist *matrix.Dense
	pred []int // node before v on the path u→v
	next []int // node after u on the path u→v
}

// nodeItem is a tentative (node, distance) pair in the frontier heap.
type nodeItem struct {
	node int
	dist float64
}

// nodePQ is a lazy-decrease-key min-heap ordered by distance, then node id.
type nodePQ []nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].node < pq[j].node
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
