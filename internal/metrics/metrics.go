package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewpay_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reviewpay_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	WalletAdjustmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewpay_wallet_adjustments_total",
			Help: "Total number of wallet adjustments applied",
		},
		[]string{"kind"},
	)

	WalletAdjustmentsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewpay_wallet_adjustments_rejected_total",
			Help: "Total number of wallet adjustments rejected",
		},
		[]string{"reason"},
	)

	WithdrawDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewpay_withdraw_decisions_total",
			Help: "Total number of withdraw status decisions",
		},
		[]string{"status"},
	)

	ReviewsModeratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewpay_reviews_moderated_total",
			Help: "Total number of reviews moderated",
		},
		[]string{"status"},
	)

	UsersBlockedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reviewpay_users_blocked_total",
			Help: "Total number of user block actions",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewpay_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reviewpay_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordWalletAdjustment(kind string) {
	WalletAdjustmentsTotal.WithLabelValues(kind).Inc()
}

func RecordWalletAdjustmentRejected(reason string) {
	WalletAdjustmentsRejectedTotal.WithLabelValues(reason).Inc()
}

func RecordWithdrawDecision(status string) {
	WithdrawDecisionsTotal.WithLabelValues(status).Inc()
}

func RecordReviewModeration(status string) {
	ReviewsModeratedTotal.WithLabelValues(status).Inc()
}

func RecordUserBlocked() {
	UsersBlockedTotal.Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func SetEmailQueueLength(n int64) {
	EmailQueueLength.Set(float64(n))
}
