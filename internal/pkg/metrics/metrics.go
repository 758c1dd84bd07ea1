package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the lending API metrics on a private registry.
type Collector struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	operations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "equiplend_operations_total",
			Help: "Lending operations by outcome",
		},
		[]string{"operation", "outcome"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "equiplend_operation_duration_seconds",
			Help:    "Time spent serving lending operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	registry.MustRegister(operations, duration)

	return &Collector{
		registry:   registry,
		operations: operations,
		duration:   duration,
	}
}

// Observe records one finished operation. outcome is "ok" or a failure kind.
func (c *Collector) Observe(operation, outcome string, elapsed time.Duration) {
	c.operations.WithLabelValues(operation, outcome).Inc()
	c.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }
