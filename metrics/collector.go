// Package metrics exports solver progress as Prometheus metrics.
//
// A Collector owns its registry, so several collectors (for example one per
// test) never collide on metric names. It implements multigrid.Observer:
// pass it with multigrid.WithObserver and every V-cycle and finished solve
// is recorded. WriteTextfile dumps the registry in the node_exporter
// textfile format for batch runs that have no scrape endpoint.
package metrics

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/mgpoisson/multigrid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name.
const Namespace = "mgpoisson"

// Collector records V-cycles and solve outcomes.
type Collector struct {
	registry *prometheus.Registry

	cyclesTotal   prometheus.Counter
	residualNorm  prometheus.Gauge
	solvesTotal   *prometheus.CounterVec
	solveDuration prometheus.Histogram

	logger *slog.Logger
}

var _ multigrid.Observer = (*Collector)(nil)

// NewCollector registers the solver metrics on a fresh registry.
// A nil logger discards.
func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Collector{
		registry: reg,
		cyclesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "cycles_total",
			Help:      "Total number of V-cycles executed",
		}),
		residualNorm: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "residual_norm",
			Help:      "Euclidean residual norm after the most recent V-cycle",
		}),
		solvesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "solves_total",
			Help:      "Total number of finished solves by termination status",
		}, []string{"status"}),
		solveDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall-clock duration of the convergence loop",
			Buckets:   prometheus.ExponentialBuckets(1e-4, 4, 10),
		}),
		logger: logger.With("component", "metrics"),
	}
}

// Registry exposes the collector's registry, e.g. for promhttp.HandlerFor.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// OnCycle implements multigrid.Observer.
func (c *Collector) OnCycle(_ int, residual float64) {
	c.cyclesTotal.Inc()
	c.residualNorm.Set(residual)
}

// OnFinish implements multigrid.Observer.
func (c *Collector) OnFinish(res *multigrid.Result) {
	if res == nil {
		return
	}
	c.solvesTotal.WithLabelValues(res.Status.String()).Inc()
	c.solveDuration.Observe(res.Elapsed.Seconds())
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
// The file is replaced atomically.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	c.logger.Debug("metrics written", "path", path)

	return nil
}
