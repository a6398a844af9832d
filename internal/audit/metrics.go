package audit

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes audit gauges and counters for daemon mode.
type Metrics struct {
	managed  prometheus.Gauge
	expired  prometheus.Gauge
	passes   prometheus.Counter
	failures prometheus.Counter
}

// NewMetrics registers the audit metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		managed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "boxctl_instances_managed",
			Help: "Managed instances owned by the configured identity.",
		}),
		expired: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "boxctl_instances_expired",
			Help: "Managed instances past their expiration date.",
		}),
		passes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "boxctl_audit_passes_total",
			Help: "Completed audit passes.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "boxctl_audit_failures_total",
			Help: "Audit passes that failed to query the provider.",
		}),
	}
	reg.MustRegister(m.managed, m.expired, m.passes, m.failures)
	return m
}

// Observe records a completed pass.
func (m *Metrics) Observe(report Report) {
	m.managed.Set(float64(report.Total))
	m.expired.Set(float64(len(report.Expired)))
	m.passes.Inc()
}

// ObserveFailure records a failed pass.
func (m *Metrics) ObserveFailure() {
	m.failures.Inc()
}
