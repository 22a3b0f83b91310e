package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestResolverMetrics_Observe(t *testing.T) {
	m := NewResolverMetrics(prometheus.NewRegistry())

	m.Observe(5, 3, time.Microsecond, nil)
	m.Observe(2, 2, time.Microsecond, nil)
	m.Observe(4, 0, time.Microsecond, errors.New("unknown account"))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Resolutions.WithLabelValues("ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Resolutions.WithLabelValues("error")))
	assert.Equal(t, float64(7), testutil.ToFloat64(m.References))
	assert.Equal(t, float64(5), testutil.ToFloat64(m.Accounts))
}

func TestResolverMetrics_NilIsNoop(t *testing.T) {
	var m *ResolverMetrics
	assert.NotPanics(t, func() { m.Observe(1, 1, time.Second, nil) })
}

func TestResolverMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewResolverMetrics(reg)
	assert.Panics(t, func() { NewResolverMetrics(reg) })
}
