// Package metrics exposes Prometheus instrumentation for provisioning attempts.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "connect_provisioner"

// Recorder owns a registry with the provisioning metrics.
type Recorder struct {
	registry          *prometheus.Registry
	provisionTotal    *prometheus.CounterVec
	provisionDuration *prometheus.HistogramVec
}

// NewRecorder creates a Recorder on a fresh registry, including Go runtime
// and process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		provisionTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "provision",
				Name:      "attempts_total",
				Help:      "Total number of provisioning attempts by outcome",
			},
			[]string{"outcome"},
		),
		provisionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "provision",
				Name:      "duration_seconds",
				Help:      "Duration of provisioning attempts in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~10s
			},
			[]string{"outcome"},
		),
	}

	r.registry.MustRegister(
		r.provisionTotal,
		r.provisionDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveProvision records one attempt. Outcome is "success" or a failure kind.
func (r *Recorder) ObserveProvision(outcome string, elapsed time.Duration) {
	r.provisionTotal.WithLabelValues(outcome).Inc()
	r.provisionDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
