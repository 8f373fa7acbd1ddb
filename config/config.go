package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/ucarp/eda"
	"github.com/katalvlaran/ucarp/evaluation"
	"github.com/katalvlaran/ucarp/instance"
	"github.com/katalvlaran/ucarp/localsearch"
	"github.com/katalvlaran/ucarp/policy"
)

// Load reads and parses the YAML file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return Parse(b)
}

// Parse decodes a YAML document over Default and validates the result.
// Unknown keys are rejected.
func Parse(b []byte) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks every field and the names of the policy and filter.
func (c *Config) Validate() error {
	in := c.Instances
	switch {
	case len(c.Objectives) == 0:
		return fmt.Errorf("%w: no objectives", ErrInvalid)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers=%d", ErrInvalid, c.Workers)
	case c.PilotWidth < 1:
		return fmt.Errorf("%w: pilot_width=%d", ErrInvalid, c.PilotWidth)
	case in.Count < 1:
		return fmt.Errorf("%w: instances.count=%d", ErrInvalid, in.Count)
	case in.Nodes < 2:
		return fmt.Errorf("%w: instances.nodes=%d", ErrInvalid, in.Nodes)
	case in.Capacity <= 0:
		return fmt.Errorf("%w: instances.capacity=%g", ErrInvalid, in.Capacity)
	case in.Vehicles < 1:
		return fmt.Errorf("%w: instances.vehicles=%d", ErrInvalid, in.Vehicles)
	case in.DemandLevel < 0 || in.CostLevel < 0:
		return fmt.Errorf("%w: negative uncertainty level", ErrInvalid)
	case in.Samples < 1:
		return fmt.Errorf("%w: instances.samples=%d", ErrInvalid, in.Samples)
	case !(c.Histogram.Ratio >= 0):
		return fmt.Errorf("%w: histogram.ratio=%g", ErrInvalid, c.Histogram.Ratio)
	case c.Histogram.LearningRate <= 0 || c.Histogram.LearningRate > 1:
		return fmt.Errorf("%w: histogram.learning_rate=%g", ErrInvalid, c.Histogram.LearningRate)
	case c.LocalSearch.MaxIters < 0:
		return fmt.Errorf("%w: local_search.max_iters=%d", ErrInvalid, c.LocalSearch.MaxIters)
	case !(c.LocalSearch.Eps >= 0):
		return fmt.Errorf("%w: local_search.eps=%g", ErrInvalid, c.LocalSearch.Eps)
	}
	if _, err := c.BuildPolicy(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// BuildInstances generates the configured instances.
func (c *Config) BuildInstances() ([]*instance.Instance, error) {
	out := make([]*instance.Instance, c.Instances.Count)
	for i := range out {
		in, err := instance.Random(instance.RandomConfig{
			Nodes:       c.Instances.Nodes,
			Capacity:    c.Instances.Capacity,
			Vehicles:    c.Instances.Vehicles,
			DemandLevel: c.Instances.DemandLevel,
			CostLevel:   c.Instances.CostLevel,
			Seed:        c.Instances.Seed + int64(i),
		})
		if err != nil {
			return nil, fmt.Errorf("config: instance %d: %w", i, err)
		}
		out[i] = in
	}

	return out, nil
}

// BuildModel generates the instances and wraps them in an evaluation model.
// opts are applied after the configured worker count and pilot width.
func (c *Config) BuildModel(opts ...evaluation.Option) (*evaluation.Model, error) {
	instances, err := c.BuildInstances()
	if err != nil {
		return nil, err
	}
	all := append([]evaluation.Option{
		evaluation.WithWorkers(c.Workers),
		evaluation.WithPilotWidth(c.PilotWidth),
	}, opts...)

	return evaluation.FromInstances(c.Objectives, c.Seed, c.Instances.Samples, instances, all...)
}

// BuildPolicy returns the named policy with the configured pool filter. An
// empty filter keeps the policy's own.
func (c *Config) BuildPolicy() (*policy.Simple, error) {
	var opts []policy.Option
	if c.Filter != "" {
		f, err := policy.FilterByName(c.Filter)
		if err != nil {
			return nil, err
		}
		opts = append(opts, policy.WithFilter(f))
	}

	return policy.ByName(c.Policy, opts...)
}

// HistogramOptions returns the histogram settings as eda options.
func (c *Config) HistogramOptions() []eda.Option {
	return []eda.Option{
		eda.WithRatio(c.Histogram.Ratio),
		eda.WithLearningRate(c.Histogram.LearningRate),
	}
}

// SearchOptions returns the local search settings.
func (c *Config) SearchOptions() []localsearch.Option {
	return []localsearch.Option{
		localsearch.WithMaxIters(c.LocalSearch.MaxIters),
		localsearch.WithEps(c.LocalSearch.Eps),
	}
}
