package config

import (
	"errors"
	"runtime"

	"github.com/katalvlaran/ucarp/eda"
	"github.com/katalvlaran/ucarp/instance"
	"github.com/katalvlaran/ucarp/localsearch"
	"github.com/katalvlaran/ucarp/solution"
)

// Sentinel errors for configuration loading and validation.
var (
	ErrInvalid = errors.New("config: invalid configuration")
)

// Config is one experiment: a set of generated instances, their samples,
// the evaluation settings and the search parameters.
type Config struct {
	Objectives []solution.Objective `yaml:"objectives"`
	// Seed is the first sample seed of the experiment.
	Seed       int64  `yaml:"seed"`
	Workers    int    `yaml:"workers"`
	PilotWidth int    `yaml:"pilot_width"`
	Policy     string `yaml:"policy"`
	Filter     string `yaml:"filter"`

	Instances   Instances   `yaml:"instances"`
	Histogram   Histogram   `yaml:"histogram"`
	LocalSearch LocalSearch `yaml:"local_search"`
}

// Instances configures the random instance generator and sampling.
type Instances struct {
	Count       int     `yaml:"count"`
	Nodes       int     `yaml:"nodes"`
	Capacity    float64 `yaml:"capacity"`
	Vehicles    int     `yaml:"vehicles"`
	DemandLevel float64 `yaml:"demand_level"`
	CostLevel   float64 `yaml:"cost_level"`
	// Seed of the first generated instance; instance i uses Seed+i.
	Seed int64 `yaml:"seed"`
	// Samples is the number of seeds per instance.
	Samples int `yaml:"samples"`
}

// Histogram configures the edge histogram model.
type Histogram struct {
	Ratio        float64 `yaml:"ratio"`
	LearningRate float64 `yaml:"learning_rate"`
}

// LocalSearch configures the local search driver.
type LocalSearch struct {
	// MaxIters bounds the improvement rounds; zero means until no move
	// improves.
	MaxIters int `yaml:"max_iters"`
	// Eps is the histogram gain a move must exceed to be evaluated.
	Eps float64 `yaml:"eps"`
}

// Default returns the reference experiment: one 10-node instance with the
// generator's reference settings, 5 samples, total cost.
func Default() *Config {
	rc := instance.DefaultRandomConfig(10)

	return &Config{
		Objectives: []solution.Objective{solution.TotalCost},
		Workers:    runtime.GOMAXPROCS(0),
		PilotWidth: 3,
		Policy:     "PS5",
		Filter:     "exp-feasible",
		Instances: Instances{
			Count:       1,
			Nodes:       rc.Nodes,
			Capacity:    rc.Capacity,
			Vehicles:    rc.Vehicles,
			DemandLevel: rc.DemandLevel,
			CostLevel:   rc.CostLevel,
			Samples:     5,
		},
		Histogram: Histogram{
			Ratio:        eda.DefaultRatio,
			LearningRate: eda.DefaultLearningRate,
		},
		LocalSearch: LocalSearch{Eps: localsearch.DefaultEps},
	}
}
