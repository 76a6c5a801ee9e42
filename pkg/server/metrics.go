package server

import (
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus collectors of one Server.
type metrics struct {
	eventsTotal    *prometheus.CounterVec
	eventDuration  *prometheus.HistogramVec
	framesSent     *prometheus.CounterVec
	activeSessions prometheus.Gauge
	sessionsTotal  prometheus.Counter
	protocolErrors prometheus.Counter
}

// otherEvent labels events of a type nothing in the document listens for.
const otherEvent = "other"

// eventLabel returns event if the document or its window listens for it, and
// otherEvent otherwise.
func (s *Session) eventLabel(event string) string {
	if slices.Contains(s.doc.ListenerTypes(), event) ||
		slices.Contains(s.doc.Window().ListenerTypes(), event) {
		return event
	}
	return otherEvent
}

// newMetrics registers the server collectors with reg.
//
// Metrics collected:
//   - micro_events_total: events by type and status (ok, error)
//   - micro_event_duration_seconds: dispatch and render time by event type
//   - micro_frames_sent_total: frames sent by frame type
//   - micro_active_sessions: open WebSocket sessions
//   - micro_sessions_total: sessions started
//   - micro_protocol_errors_total: malformed client frames
func newMetrics(reg prometheus.Registerer, namespace string) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Total number of browser events dispatched",
		}, []string{"event", "status"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "event_duration_seconds",
			Help:      "Event dispatch and render duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"event"}),

		framesSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_sent_total",
			Help:      "Total number of frames sent to browsers",
		}, []string{"type"}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of open WebSocket sessions",
		}),

		sessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Total number of sessions started",
		}),

		protocolErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "protocol_errors_total",
			Help:      "Total number of malformed client frames",
		}),
	}
}
