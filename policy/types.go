package policy

import (
	"errors"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/solution"
	"github.com/katalvlaran/ucarp/state"
)

// Sentinel errors.
var (
	ErrUnknownPolicy  = errors.New("policy: unknown policy")
	ErrUnknownFilter  = errors.New("policy: unknown pool filter")
	ErrUnknownFeature = errors.New("policy: unknown feature")
	ErrEmptyEnsemble  = errors.New("policy: ensemble has no members")
	ErrWeightCount    = errors.New("policy: ensemble weights do not match members")
)

// Alpha scales the distance term of the path-scanning rules so that it
// dominates the secondary term.
const Alpha = 10000

// PriorityFunc scores a candidate task; lower is preferred.
type PriorityFunc func(c core.ArcID, r *solution.NodeSeqRoute, s *state.State) float64

// PoolFilter prunes a candidate pool. It must not modify pool; it may
// return it unchanged.
type PoolFilter func(pool []core.ArcID, r *solution.NodeSeqRoute, s *state.State) []core.ArcID

// TieBreaker orders two equally scored candidates: negative prefers a.
type TieBreaker func(a, b core.ArcID, r *solution.NodeSeqRoute, s *state.State) int

// Policy is the capability the engine needs from a decision strategy.
type Policy interface {
	// Name identifies the policy in logs and results.
	Name() string
	// Priority scores c as the next task of r.
	Priority(c core.ArcID, r *solution.NodeSeqRoute, s *state.State) float64
	// Filter prunes the pool before Choose.
	Filter(pool []core.ArcID, r *solution.NodeSeqRoute, s *state.State) []core.ArcID
	// Choose picks from an already filtered pool. ok is false for an empty pool.
	Choose(pool []core.ArcID, r *solution.NodeSeqRoute, s *state.State) (next core.ArcID, ok bool)
	// ContinueService reports whether r should go straight on to planned
	// rather than refilling first.
	ContinueService(planned core.ArcID, r *solution.NodeSeqRoute, s *state.State) bool
}

// Options configures the filter and tie breaker of a policy.
type Options struct {
	Filter PoolFilter
	Tie    TieBreaker
}

// Option is a functional option for policy constructors.
type Option func(*Options)

// WithFilter replaces the pool filter.
func WithFilter(f PoolFilter) Option { return func(o *Options) { o.Filter = f } }

// WithTieBreaker replaces the tie breaker.
func WithTieBreaker(t TieBreaker) Option { return func(o *Options) { o.Tie = t } }

func buildOptions(filter PoolFilter, opts []Option) Options {
	o := Options{Filter: filter, Tie: SimpleTie}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Filter == nil {
		o.Filter = Identity
	}
	if o.Tie == nil {
		o.Tie = SimpleTie
	}

	return o
}
