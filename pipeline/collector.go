package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the Prometheus metrics of pipeline runs on a private
// registry. A nil *Collector records nothing.
type Collector struct {
	registry *prometheus.Registry

	StageDuration *prometheus.HistogramVec
	Runs          *prometheus.CounterVec
	Modules       prometheus.Gauge
	Cores         prometheus.Gauge
	CoreNodes     prometheus.Gauge
}

// NewCollector creates a Collector whose metric names carry namespace.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	stageDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	runs := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total number of pipeline runs",
		},
		[]string{"status"},
	)

	modules := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "modules",
			Help:      "Number of modules found by the last run",
		},
	)

	cores := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cores",
			Help:      "Number of significance cores found by the last run",
		},
	)

	coreNodes := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "core_nodes",
			Help:      "Number of nodes with a non-zero core label in the last run",
		},
	)

	registry.MustRegister(stageDuration, runs, modules, cores, coreNodes)

	return &Collector{
		registry:      registry,
		StageDuration: stageDuration,
		Runs:          runs,
		Modules:       modules,
		Cores:         cores,
		CoreNodes:     coreNodes,
	}
}

// Registry returns the Prometheus registry for this collector.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}

	return c.registry
}

func (c *Collector) observeStage(stage Stage, d time.Duration) {
	if c == nil {
		return
	}
	c.StageDuration.WithLabelValues(string(stage)).Observe(d.Seconds())
}

func (c *Collector) recordRun(err error) {
	if c == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.Runs.WithLabelValues(status).Inc()
}

func (c *Collector) recordReport(r *Report) {
	if c == nil {
		return
	}
	c.Modules.Set(float64(r.NumModules))
	c.Cores.Set(float64(len(r.Cores)))
	c.CoreNodes.Set(float64(r.CoreNodes))
}
