// Package metrics exposes Prometheus collectors for simulation and
// evaluation runs.
//
// Collectors live on a private registry, never the global default one, so
// several experiments (and tests) in one process do not collide. A nil
// *Metrics is valid everywhere and records nothing.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name.
const Namespace = "ucarp"

// Metrics groups the collectors of one registry.
type Metrics struct {
	// Registry is the dedicated registry the collectors are bound to.
	Registry *prometheus.Registry

	Simulations        *prometheus.CounterVec // by mode
	Decisions          *prometheus.CounterVec // by mode
	RouteFailures      prometheus.Counter
	EdgeFailures       prometheus.Counter
	SimulationCost     prometheus.Histogram
	EvaluationDuration prometheus.Histogram
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		Simulations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "simulations_total",
			Help:      "Completed simulation runs by execution mode.",
		}, []string{"mode"}),
		Decisions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "decisions_total",
			Help:      "Next-task decisions taken by execution mode.",
		}, []string{"mode"}),
		RouteFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "route_failures_total",
			Help:      "Services interrupted because the demand exceeded the remaining capacity.",
		}),
		EdgeFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "edge_failures_total",
			Help:      "Planned hops rerouted because the edge turned out unusable.",
		}),
		SimulationCost: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "simulation_cost",
			Help:      "Total cost of completed simulation runs.",
			Buckets:   prometheus.ExponentialBuckets(100, 2, 12),
		}),
		EvaluationDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Wall time of one evaluation over all samples and seeds.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

var (
	defaultOnce sync.Once
	defaultSet  *Metrics
)

// Default returns a process-wide Metrics, created on first use.
func Default() *Metrics {
	defaultOnce.Do(func() { defaultSet = New() })

	return defaultSet
}

// Simulation records one finished run.
func (m *Metrics) Simulation(mode string, totalCost float64) {
	if m == nil {
		return
	}
	m.Simulations.WithLabelValues(mode).Inc()
	m.SimulationCost.Observe(totalCost)
}

// Decision records one next-task decision.
func (m *Metrics) Decision(mode string) {
	if m == nil {
		return
	}
	m.Decisions.WithLabelValues(mode).Inc()
}

// RouteFailure records one interrupted service.
func (m *Metrics) RouteFailure() {
	if m == nil {
		return
	}
	m.RouteFailures.Inc()
}

// EdgeFailure records one rerouted hop.
func (m *Metrics) EdgeFailure() {
	if m == nil {
		return
	}
	m.EdgeFailures.Inc()
}

// Evaluation records the wall time of an evaluation that started at start.
func (m *Metrics) Evaluation(start time.Time) {
	if m == nil {
		return
	}
	m.EvaluationDuration.Observe(time.Since(start).Seconds())
}
