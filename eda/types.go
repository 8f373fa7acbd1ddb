package eda

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	ErrNilInstance     = errors.New("eda: instance is nil")
	ErrEmptyPopulation = errors.New("eda: no promising tours")
	ErrBadRate         = errors.New("eda: learning rate must be in (0,1]")
	ErrBadRatio        = errors.New("eda: floor ratio must be non-negative")
)

// Defaults of the histogram update rule.
const (
	// DefaultRatio scales the decay floor ε = popSize/(tourLen−1)·ratio.
	DefaultRatio = 0.005
	// DefaultLearningRate is both the decay weight and the reinforcement.
	DefaultLearningRate = 1.0
)

// Options configures a Histogram.
type Options struct {
	Ratio        float64
	LearningRate float64
}

// Option is a functional option for New.
type Option func(*Options)

// DefaultOptions returns DefaultRatio and DefaultLearningRate.
func DefaultOptions() Options {
	return Options{Ratio: DefaultRatio, LearningRate: DefaultLearningRate}
}

// WithRatio sets the floor ratio.
func WithRatio(r float64) Option { return func(o *Options) { o.Ratio = r } }

// WithLearningRate sets the learning rate.
func WithLearningRate(lr float64) Option { return func(o *Options) { o.LearningRate = lr } }

func (o Options) validate() error {
	if !(o.LearningRate > 0 && o.LearningRate <= 1) {
		return fmt.Errorf("%w: %g", ErrBadRate, o.LearningRate)
	}
	if !(o.Ratio >= 0) {
		return fmt.Errorf("%w: %g", ErrBadRatio, o.Ratio)
	}

	return nil
}
