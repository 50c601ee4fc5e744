package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// AnalyticsMetrics records emission outcomes for the analytics sink.
type AnalyticsMetrics struct {
	published *prometheus.CounterVec
	dropped   *prometheus.CounterVec
}

// NewAnalyticsMetrics registers the analytics metrics on the provided registerer.
func NewAnalyticsMetrics(reg prometheus.Registerer) *AnalyticsMetrics {
	if reg == nil {
		return &AnalyticsMetrics{}
	}
	published := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_events_published",
		Help: "Analytics events forwarded to the sink.",
	}, []string{"event"})
	dropped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_events_dropped",
		Help: "Analytics events dropped before reaching the sink.",
	}, []string{"reason"})
	reg.MustRegister(published, dropped)
	return &AnalyticsMetrics{
		published: published,
		dropped:   dropped,
	}
}

// IncPublished increments the published counter for the named event.
func (a *AnalyticsMetrics) IncPublished(event string) {
	if a == nil || a.published == nil {
		return
	}
	a.published.WithLabelValues(normalizeLabel(event)).Inc()
}

// IncDropped increments the dropped counter for the given reason.
func (a *AnalyticsMetrics) IncDropped(reason string) {
	if a == nil || a.dropped == nil {
		return
	}
	a.dropped.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return "unknown"
	}
	return strings.ReplaceAll(trimmed, " ", "_")
}
