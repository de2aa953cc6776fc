package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubhouse_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clubhouse_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubhouse_bookings_total",
			Help: "Total number of bookings",
		},
		[]string{"facility_type"},
	)

	BookingCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clubhouse_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	BookingConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clubhouse_booking_conflicts_total",
			Help: "Total number of booking attempts rejected as double-booked",
		},
	)

	RsvpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubhouse_rsvps_total",
			Help: "Total number of event RSVPs",
		},
		[]string{"status"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubhouse_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "clubhouse_email_queue_length",
			Help: "Current length of email queue",
		},
	)

	ChatRoundsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clubhouse_chat_rounds_total",
			Help: "Total number of model round-trips in chat turns",
		},
	)

	ChatToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubhouse_chat_tool_calls_total",
			Help: "Total number of chat tool dispatches",
		},
		[]string{"tool"},
	)

	StripeWebhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubhouse_stripe_webhook_events_total",
			Help: "Total number of Stripe webhook events processed",
		},
		[]string{"type", "status"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(facilityType string) {
	BookingsTotal.WithLabelValues(facilityType).Inc()
}

func RecordBookingCancellation() {
	BookingCancellationsTotal.Inc()
}

func RecordBookingConflict() {
	BookingConflictsTotal.Inc()
}

func RecordRsvp(status string) {
	RsvpsTotal.WithLabelValues(status).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func RecordChatRound() {
	ChatRoundsTotal.Inc()
}

func RecordChatToolCall(tool string) {
	ChatToolCallsTotal.WithLabelValues(tool).Inc()
}

func RecordStripeWebhookEvent(eventType, status string) {
	StripeWebhookEventsTotal.WithLabelValues(eventType, status).Inc()
}
