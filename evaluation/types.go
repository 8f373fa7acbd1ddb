package evaluation

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/katalvlaran/ucarp/metrics"
)

// Sentinel errors.
var (
	ErrNoObjectives = errors.New("evaluation: no objectives")
	ErrNoSamples    = errors.New("evaluation: no instance samples")
	ErrNilSamples   = errors.New("evaluation: nil instance samples")
	ErrNilPolicy    = errors.New("evaluation: routing policy is nil")
	ErrPlanCount    = errors.New("evaluation: one plan per instance required")
	ErrBadWorkers   = errors.New("evaluation: worker count must be positive")
)

// Options configures a Model.
type Options struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	// Workers bounds the simulations run at once.
	Workers int
	// PilotWidth is passed to pilot runs.
	PilotWidth int
}

// Option is a functional option for NewModel.
type Option func(*Options)

// DefaultOptions returns a silent model with one worker per CPU.
func DefaultOptions() Options {
	return Options{
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Workers:    runtime.GOMAXPROCS(0),
		PilotWidth: 3,
	}
}

// WithLogger logs one Info line per evaluation.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMetrics records evaluations and the simulations they run into m.
func WithMetrics(m *metrics.Metrics) Option { return func(o *Options) { o.Metrics = m } }

// WithWorkers bounds the number of concurrent simulations.
func WithWorkers(n int) Option { return func(o *Options) { o.Workers = n } }

// WithPilotWidth sets the candidate count of pilot evaluations.
func WithPilotWidth(k int) Option { return func(o *Options) { o.PilotWidth = k } }

func (o Options) validate() error {
	if o.Workers < 1 {
		return fmt.Errorf("%w: %d", ErrBadWorkers, o.Workers)
	}

	return nil
}
