package sim

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/ucarp/core"
	"github.com/katalvlaran/ucarp/metrics"
	"github.com/katalvlaran/ucarp/state"
)

// Sentinel errors.
var (
	ErrNilState     = errors.New("sim: state is nil")
	ErrNilPolicy    = errors.New("sim: routing policy is nil")
	ErrNilPlan      = errors.New("sim: plan is nil")
	ErrPlanSize     = errors.New("sim: plan size does not match route count")
	ErrBadPilot     = errors.New("sim: pilot width must be positive")
	ErrDisconnected = state.ErrDisconnected
)

// DefaultPilotWidth is the number of candidates a pilot decision rolls out.
const DefaultPilotWidth = 3

// Mode selects how the next task is chosen.
type Mode uint8

const (
	// Reactive asks the routing policy at every decision.
	Reactive Mode = iota
	// Plan follows a precomputed plan.
	Plan
	// Pilot rolls candidates out before committing.
	Pilot
)

// String returns the lower-case mode name used in logs and metrics.
func (m Mode) String() string {
	switch m {
	case Reactive:
		return "reactive"
	case Plan:
		return "plan"
	case Pilot:
		return "pilot"
	}

	return fmt.Sprintf("mode(%d)", int(m))
}

// Kind is the event discriminator.
type Kind uint8

const (
	// Refill heads for the depot and then takes a new decision.
	Refill Kind = iota
	// Serving heads for a task and serves it.
	Serving
	// RefillThenServe heads for the depot and then resumes the same task.
	RefillThenServe
)

// String returns the event kind name.
func (k Kind) String() string {
	switch k {
	case Refill:
		return "Refill"
	case Serving:
		return "Serving"
	case RefillThenServe:
		return "RefillThenServe"
	}

	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is the single tagged event type. Task is the target in reactive and
// pilot modes; PlanIndex the position in the vehicle's plan in plan mode.
type Event struct {
	Time      float64
	Kind      Kind
	Mode      Mode
	Route     int
	Task      core.ArcID
	PlanIndex int

	seq uint64
}

// Transition is one entry of the optional trace.
type Transition struct {
	Time  float64
	Route int
	Kind  Kind
	Node  int
	Task  core.ArcID
}

// Result is the outcome of one run.
type Result struct {
	Mode         Mode
	Solution     *state.NodeSolution
	TotalCost    float64
	MaxRouteCost float64

	Decisions       int // next-task decisions taken
	RouteFailures   int // services split by a capacity overflow
	EdgeFailures    int // planned hops broken by an unusable arc
	RefillThenServe int // transitions into RefillThenServe, for any reason

	Trace []Transition // nil unless WithTrace
}

// Options configures a run.
type Options struct {
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
	PilotWidth int
	Trace      bool
}

// Option is a functional option for the run entry points.
type Option func(*Options)

// DefaultOptions returns a silent configuration: discard logger, no
// metrics, no trace, pilot width DefaultPilotWidth.
func DefaultOptions() Options {
	return Options{
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		PilotWidth: DefaultPilotWidth,
	}
}

// WithLogger sets the logger. Route and edge failures are logged at Debug.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMetrics records runs, decisions and failures into m.
func WithMetrics(m *metrics.Metrics) Option { return func(o *Options) { o.Metrics = m } }

// WithPilotWidth sets how many candidates a pilot decision rolls out.
func WithPilotWidth(k int) Option { return func(o *Options) { o.PilotWidth = k } }

// WithTrace records every handled event in Result.Trace.
func WithTrace() Option { return func(o *Options) { o.Trace = true } }
