// Package metrics exposes Prometheus collectors for account resolution.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "acctdedup"

type ResolverMetrics struct {
	Resolutions *prometheus.CounterVec
	References  prometheus.Counter
	Accounts    prometheus.Counter
	Duration    prometheus.Histogram
}

// NewResolverMetrics creates the resolver collectors and registers them
// with reg.
func NewResolverMetrics(reg prometheus.Registerer) *ResolverMetrics {
	factory := promauto.With(reg)

	return &ResolverMetrics{
		Resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Number of account reference lists resolved, by result.",
		}, []string{"result"}),
		References: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "references_total",
			Help:      "Number of account references consumed by successful resolutions.",
		}),
		Accounts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "canonical_accounts_total",
			Help:      "Number of canonical accounts produced by successful resolutions.",
		}),
		Duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolve_duration_seconds",
			Help:      "Time spent resolving one account reference list.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 12),
		}),
	}
}

// Observe records one resolution. A nil receiver is a no-op.
func (m *ResolverMetrics) Observe(numRefs int, numAccts int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}

	m.Duration.Observe(elapsed.Seconds())

	if err != nil {
		m.Resolutions.WithLabelValues("error").Inc()
		return
	}

	m.Resolutions.WithLabelValues("ok").Inc()
	m.References.Add(float64(numRefs))
	m.Accounts.Add(float64(numAccts))
}
