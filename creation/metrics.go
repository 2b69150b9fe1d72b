package creation

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wikiflavor"

type metrics struct {
	jobs     *prometheus.CounterVec
	duration prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "creation",
			Name:      "jobs_total",
			Help:      "Total number of wiki creation jobs by terminal status.",
		}, []string{"status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "creation",
			Name:      "job_duration_seconds",
			Help:      "Time taken to provision a wiki.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
	}

	if reg != nil {
		reg.MustRegister(m.jobs, m.duration)
	}
	return m
}

func (m *metrics) observe(status string, seconds float64) {
	m.jobs.WithLabelValues(status).Inc()
	m.duration.Observe(seconds)
}
