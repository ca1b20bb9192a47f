package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the report pipeline collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	reportsSubmitted  prometheus.Counter
	reportFailures    *prometheus.CounterVec
	notificationsSent prometheus.Counter
	statusLookups     *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		reportsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leak_reports_submitted_total",
			Help: "Leak reports stored successfully.",
		}),
		reportFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leak_report_failures_total",
			Help: "Report intake failures by pipeline step.",
		}, []string{"step"}),
		notificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leak_notifications_sent_total",
			Help: "Maintenance notifications accepted by the mail transport.",
		}),
		statusLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leak_status_lookups_total",
			Help: "Status lookups by outcome.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.reportsSubmitted, m.reportFailures, m.notificationsSent, m.statusLookups)
	return m
}

func (m *Metrics) ReportSubmitted() {
	if m != nil {
		m.reportsSubmitted.Inc()
	}
}

func (m *Metrics) StepFailed(step string) {
	if m != nil {
		m.reportFailures.WithLabelValues(step).Inc()
	}
}

func (m *Metrics) NotificationSent() {
	if m != nil {
		m.notificationsSent.Inc()
	}
}

func (m *Metrics) StatusLookup(result string) {
	if m != nil {
		m.statusLookups.WithLabelValues(result).Inc()
	}
}
