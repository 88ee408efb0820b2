// Package metrics counts form submissions and email sends for Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	KindAppointment = "appointment"
	KindContact     = "contact"

	OutcomeSent    = "sent"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

type Metrics struct {
	registry     *prometheus.Registry
	submissions  *prometheus.CounterVec
	sendDuration *prometheus.HistogramVec
}

// New builds a private registry so several servers can coexist in one process.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dentalart",
			Name:      "submissions_total",
			Help:      "Form submissions by kind and outcome.",
		}, []string{"kind", "outcome"}),
		sendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dentalart",
			Name:      "email_send_duration_seconds",
			Help:      "Time spent delivering a notification email.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
	}

	m.registry.MustRegister(
		m.submissions,
		m.sendDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Submission(kind, outcome string) {
	m.submissions.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) ObserveSend(kind string, d time.Duration) {
	m.sendDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
