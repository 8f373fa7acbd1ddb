package instance

import (
	"errors"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/dijkstra"
)

// Sentinel errors for instance construction and sampling.
var (
	ErrNilGraph         = errors.New("instance: graph is nil")
	ErrBadDepot         = errors.New("instance: depot not in graph")
	ErrNoTasks          = errors.New("instance: no tasks")
	ErrBadCapacity      = errors.New("instance: capacity must be positive")
	ErrBadFleet         = errors.New("instance: at least one vehicle required")
	ErrBadUncertainty   = errors.New("instance: uncertainty level must be non-negative")
	ErrUnreachableTask  = errors.New("instance: task not reachable from the depot")
	ErrDepotTask        = errors.New("instance: depot loop must carry no cost or demand")
	ErrNotRealized      = errors.New("instance: sample not realized")
	ErrSampleOutOfRange = errors.New("instance: sample index out of range")
)

// Seed layout constants.
const (
	// SeedGapInstance separates consecutive samples of an experiment.
	SeedGapInstance int64 = 935627
	// SeedGapRotation is added to every seed on Rotate.
	SeedGapRotation int64 = 6125
)

// Instance is a stochastic UCARP instance. It is read-only after New.
type Instance struct {
	name        string
	graph       *core.Graph
	tasks       []core.ArcID // natural order, both directions
	depot       int
	depotLoop   core.ArcID
	capacity    float64
	vehicles    int
	demandLevel float64
	costLevel   float64

	paths      *dijkstra.PathIndex         // expected-cost tables
	taskToTask map[core.ArcID][]core.ArcID // depot loop and tasks → other tasks by distance
	floodedBy  map[core.ArcID][]core.ArcID // task → tasks whose depot path covers it
}

// Options configures New.
type Options struct {
	Name        string
	DemandLevel float64 // std/mean of demands
	CostLevel   float64 // std/mean of deadheading costs
}

// Option is a functional option for New.
type Option func(*Options)

// DefaultOptions returns a deterministic instance: both levels zero.
func DefaultOptions() Options { return Options{} }

// WithName labels the instance in logs and reports.
func WithName(name string) Option { return func(o *Options) { o.Name = name } }

// WithUncertainty sets the demand and cost uncertainty levels.
func WithUncertainty(demandLevel, costLevel float64) Option {
	return func(o *Options) {
		o.DemandLevel = demandLevel
		o.CostLevel = costLevel
	}
}
