package localsearch

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/ucarp/tour"
)

// Sentinel errors.
var (
	ErrNilInstance  = errors.New("localsearch: instance is nil")
	ErrNilHistogram = errors.New("localsearch: histogram is nil")
	ErrNilFitness   = errors.New("localsearch: fitness is nil")
	ErrBadIters     = errors.New("localsearch: iteration limit must be non-negative")
	ErrBadEps       = errors.New("localsearch: gain tolerance must be non-negative")
	ErrBadOperator  = errors.New("localsearch: unknown operator")
)

// Fitness evaluates a giant tour. Lower is better.
type Fitness interface {
	Fitness(t tour.GiantTour) (float64, error)
}

// FitnessFunc adapts a function to Fitness.
type FitnessFunc func(t tour.GiantTour) (float64, error)

// Fitness implements Fitness.
func (f FitnessFunc) Fitness(t tour.GiantTour) (float64, error) { return f(t) }

// Operator names a neighbourhood.
type Operator uint8

const (
	// Insertion moves one task elsewhere, in either direction.
	Insertion Operator = iota
	// DoubleInsertion moves two adjacent tasks elsewhere, as a block.
	DoubleInsertion
	// Swap exchanges two non-adjacent tasks, each in either direction.
	Swap
	// TwoOpt reverses a subsequence, inverting every task in it.
	TwoOpt
)

// Operators lists every neighbourhood in the order Run tries them.
var Operators = []Operator{Insertion, DoubleInsertion, Swap, TwoOpt}

// String returns the operator name.
func (o Operator) String() string {
	switch o {
	case Insertion:
		return "insertion"
	case DoubleInsertion:
		return "double-insertion"
	case Swap:
		return "swap"
	case TwoOpt:
		return "2-opt"
	}

	return fmt.Sprintf("operator(%d)", int(o))
}

// DefaultEps is the histogram gain a move must exceed to be evaluated.
const DefaultEps = 1e-9

// Options configures a Search.
type Options struct {
	// MaxIters bounds the accepted moves of Run; 0 means until no operator
	// improves.
	MaxIters int
	// Eps absorbs rounding in the O(1) gains: moves whose weight balance is
	// zero in exact arithmetic are never evaluated.
	Eps    float64
	Logger *slog.Logger
}

// Option is a functional option for New.
type Option func(*Options)

// DefaultOptions returns an unbounded, silent search.
func DefaultOptions() Options {
	return Options{Eps: DefaultEps, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithMaxIters bounds the number of accepted moves.
func WithMaxIters(n int) Option { return func(o *Options) { o.MaxIters = n } }

// WithEps sets the gain tolerance of the histogram filter.
func WithEps(eps float64) Option { return func(o *Options) { o.Eps = eps } }

// WithLogger logs every accepted move at Debug.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Stats describes one Run.
type Stats struct {
	Iterations  int       // accepted moves
	Evaluations int       // fitness evaluations, the initial one included
	Trace       []float64 // fitness after every accepted move, initial first
	Accepted    map[Operator]int
}
