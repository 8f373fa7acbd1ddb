package tour

import (
	"errors"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/solution"
)

// Sentinel errors.
var (
	// ErrNilInstance indicates a missing instance.
	ErrNilInstance = errors.New("tour: instance is nil")

	// ErrEmptyTour indicates a tour without tasks.
	ErrEmptyTour = errors.New("tour: empty tour")

	// ErrUnknownTask indicates an entry that is not a task of the instance.
	ErrUnknownTask = errors.New("tour: unknown task")

	// ErrDuplicateTask indicates an edge that appears twice, in either direction.
	ErrDuplicateTask = errors.New("tour: duplicate task")

	// ErrIncompleteTour indicates a tour that misses some task edge.
	ErrIncompleteTour = errors.New("tour: not every task is covered")

	// ErrInfeasibleTour indicates that no capacity-feasible split exists.
	ErrInfeasibleTour = errors.New("tour: no feasible split")
)

// GiantTour is an undelimited sequence of tasks serving every task edge
// exactly once, in one of its two directions.
type GiantTour []core.ArcID

// Plan is a split giant tour: one TaskSeqRoute per trip, each bracketed by
// the depot loop.
type Plan = solution.Solution[*solution.TaskSeqRoute]
