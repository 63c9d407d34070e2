package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Webhook metrics
	WebhookRequestsTotal   *prometheus.CounterVec
	WebhookDurationSeconds *prometheus.HistogramVec

	// Catalog store metrics
	CatalogFetchTotal           *prometheus.CounterVec
	CatalogFetchDurationSeconds prometheus.Histogram
	CatalogCoursesFetched       prometheus.Histogram

	// Routing metrics
	IntentTotal *prometheus.CounterVec

	// Reply delivery metrics
	ReplyChunksTotal       *prometheus.CounterVec
	ReplyDurationSeconds   prometheus.Histogram
	ReplyBubblesPerRequest prometheus.Histogram

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec

	// Rate limiter metrics
	RateLimiterWaitDuration prometheus.Histogram
	RateLimiterDropped      prometheus.Counter
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		// Webhook metrics
		WebhookRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "linebot_webhook_requests_total",
				Help: "Total number of webhook events by event type and status",
			},
			[]string{"event_type", "status"}, // status: success, error, skipped
		),

		WebhookDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "linebot_webhook_duration_seconds",
				Help:    "Webhook event processing duration in seconds by event type",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 15}, // multi-chunk replies can pace for seconds
			},
			[]string{"event_type"}, // event_type: message, follow
		),

		// Catalog store metrics
		CatalogFetchTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "linebot_catalog_fetch_total",
				Help: "Total number of catalog fetches by status",
			},
			[]string{"status"}, // status: success, error
		),

		CatalogFetchDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "linebot_catalog_fetch_duration_seconds",
				Help:    "Catalog fetch duration in seconds",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
		),

		CatalogCoursesFetched: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "linebot_catalog_courses_fetched",
				Help:    "Number of active courses returned per catalog fetch",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
			},
		),

		// Routing metrics
		IntentTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "linebot_intent_total",
				Help: "Total number of routed intents by route name",
			},
			[]string{"route"}, // route: follow, review, all_courses, category, search
		),

		// Reply delivery metrics
		ReplyChunksTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "linebot_reply_chunks_total",
				Help: "Total number of reply chunks sent by status",
			},
			[]string{"status"}, // status: success, error, noop
		),

		ReplyDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "linebot_reply_duration_seconds",
				Help:    "Total delivery duration per reply including inter-chunk pacing",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
		),

		ReplyBubblesPerRequest: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "linebot_reply_bubbles_per_request",
				Help:    "Number of carousel bubbles composed per reply",
				Buckets: []float64{0, 1, 6, 12, 24, 48, 96},
			},
		),

		// HTTP metrics
		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "linebot_http_errors_total",
				Help: "Total HTTP errors by type and module",
			},
			[]string{"error_type", "module"}, // error_type: invalid_signature, parse_error, etc.
		),

		// Rate limiter metrics
		RateLimiterWaitDuration: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "linebot_rate_limiter_wait_duration_seconds",
				Help:    "Time spent waiting for an outbound reply token",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
		),

		RateLimiterDropped: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "linebot_rate_limiter_dropped_total",
				Help: "Total number of replies dropped by the outbound rate limiter",
			},
		),
	}

	return m
}

// RecordWebhook records a processed webhook event with status
func (m *Metrics) RecordWebhook(eventType, status string, duration float64) {
	m.WebhookRequestsTotal.WithLabelValues(eventType, status).Inc()
	m.WebhookDurationSeconds.WithLabelValues(eventType).Observe(duration)
}

// RecordCatalogFetch records a catalog fetch with status
func (m *Metrics) RecordCatalogFetch(status string, duration float64, count int) {
	m.CatalogFetchTotal.WithLabelValues(status).Inc()
	m.CatalogFetchDurationSeconds.Observe(duration)
	m.CatalogCoursesFetched.Observe(float64(count))
}

// RecordIntent records a routed intent
func (m *Metrics) RecordIntent(route string) {
	m.IntentTotal.WithLabelValues(route).Inc()
}

// RecordReplyChunk records a delivered reply chunk with status
func (m *Metrics) RecordReplyChunk(status string) {
	m.ReplyChunksTotal.WithLabelValues(status).Inc()
}

// RecordReply records a full reply delivery
func (m *Metrics) RecordReply(duration float64, bubbles int) {
	m.ReplyDurationSeconds.Observe(duration)
	m.ReplyBubblesPerRequest.Observe(float64(bubbles))
}

// RecordHTTPError records HTTP error metrics
func (m *Metrics) RecordHTTPError(errorType, module string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType, module).Inc()
}

// RecordRateLimiterWait records time spent waiting for the outbound limiter
func (m *Metrics) RecordRateLimiterWait(duration float64) {
	m.RateLimiterWaitDuration.Observe(duration)
}

// RecordRateLimiterDrop records a reply dropped by the outbound limiter
func (m *Metrics) RecordRateLimiterDrop() {
	m.RateLimiterDropped.Inc()
}
