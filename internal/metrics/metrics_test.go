package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ReportSubmitted()
	m.ReportSubmitted()
	m.NotificationSent()
	m.StepFailed("send_notification")
	m.StatusLookup("found")
	m.StatusLookup("not_found")
	m.StatusLookup("found")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.reportsSubmitted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notificationsSent))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reportFailures.WithLabelValues("send_notification")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.statusLookups.WithLabelValues("found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusLookups.WithLabelValues("not_found")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ReportSubmitted()
		m.StepFailed("insert")
		m.NotificationSent()
		m.StatusLookup("found")
	})
}
