package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveRender(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveRender("html", 7, 0, time.Millisecond, nil)
	m.ObserveRender("html", 0, 7, time.Millisecond, nil)
	m.ObserveRender("markdown", 1, 0, time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Renders.WithLabelValues("html", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Renders.WithLabelValues("markdown", "error")))
	assert.Equal(t, 8.0, testutil.ToFloat64(m.Resolutions.WithLabelValues("fresh")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.Resolutions.WithLabelValues("reused")))
}

func TestMetrics_ObserveCache(t *testing.T) {
	m := NewMetrics(nil)

	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRender("html", 1, 1, time.Second, nil)
		m.ObserveCache(true)
	})
}
