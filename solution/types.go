package solution

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/ucarp/core"
)

// Sentinel errors.
var (
	// ErrNoArc indicates a route step between two nodes that are not adjacent.
	ErrNoArc = errors.New("solution: no arc between consecutive nodes")

	// ErrUnknownObjective indicates an objective name that cannot be parsed.
	ErrUnknownObjective = errors.New("solution: unknown objective")
)

// Scenario supplies demands, deadheading costs and shortest distances.
// *instance.Instance (expected) and *instance.Realization (actual) both
// implement it.
type Scenario interface {
	Demand(id core.ArcID) float64
	Cost(id core.ArcID) float64
	Distance(u, v int) float64
}

// Route is the behaviour Solution needs from a route type R.
type Route[R any] interface {
	Cost() float64
	Load() float64
	Clone() R
}

// Objective selects which value of a solution is minimized.
type Objective int

const (
	// TotalCost is the sum of route costs.
	TotalCost Objective = iota
	// MaxRouteCost is the largest single route cost (makespan).
	MaxRouteCost
)

// String returns the canonical objective name.
func (o Objective) String() string {
	switch o {
	case TotalCost:
		return "total-cost"
	case MaxRouteCost:
		return "max-route-cost"
	}

	return fmt.Sprintf("objective(%d)", int(o))
}

// ParseObjective accepts the canonical names and common short forms.
func ParseObjective(s string) (Objective, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "total-cost", "totalcost", "tc":
		return TotalCost, nil
	case "max-route-cost", "maxroutecost", "makespan", "mrc":
		return MaxRouteCost, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownObjective, s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Objective) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Objective) UnmarshalText(b []byte) error {
	v, err := ParseObjective(string(b))
	if err != nil {
		return err
	}
	*o = v

	return nil
}
