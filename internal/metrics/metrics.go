package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitlynk_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitlynk_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitlynk_payments_total",
			Help: "Total number of membership payments processed",
		},
		[]string{"status", "method"},
	)

	MonthsExtendedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitlynk_membership_months_extended_total",
			Help: "Total number of membership months granted by payments",
		},
	)

	CheckInsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitlynk_checkins_total",
			Help: "Total number of attendance check-ins",
		},
		[]string{"method", "status"},
	)

	CheckOutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitlynk_checkouts_total",
			Help: "Total number of attendance check-outs",
		},
	)

	SessionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fitlynk_session_duration_minutes",
			Help:    "Gym session duration in minutes",
			Buckets: []float64{15, 30, 45, 60, 90, 120, 180, 240},
		},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitlynk_notifications_total",
			Help: "Total number of SMS/WhatsApp notifications",
		},
		[]string{"type", "status"},
	)

	NotificationQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fitlynk_notification_queue_length",
			Help: "Current length of the notification queue",
		},
	)

	MembersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitlynk_members_created_total",
			Help: "Total number of members enrolled",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordPayment(status, method string) {
	PaymentsTotal.WithLabelValues(status, method).Inc()
}

func RecordMonthsExtended(months int) {
	MonthsExtendedTotal.Add(float64(months))
}

func RecordCheckIn(method, status string) {
	CheckInsTotal.WithLabelValues(method, status).Inc()
}

func RecordCheckOut(durationMinutes int) {
	CheckOutsTotal.Inc()
	SessionDuration.Observe(float64(durationMinutes))
}

func RecordNotification(notificationType, status string) {
	NotificationsTotal.WithLabelValues(notificationType, status).Inc()
}

func RecordMemberCreated() {
	MembersCreatedTotal.Inc()
}

func SetNotificationQueueLength(length float64) {
	NotificationQueueLength.Set(length)
}
