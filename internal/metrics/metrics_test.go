package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNew(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	if m == nil {
		t.Fatal("New() returned nil")
	}

	// Verify all metric fields are initialized
	if m.WebhookRequestsTotal == nil {
		t.Error("WebhookRequestsTotal is nil")
	}
	if m.WebhookDurationSeconds == nil {
		t.Error("WebhookDurationSeconds is nil")
	}
	if m.CatalogFetchTotal == nil {
		t.Error("CatalogFetchTotal is nil")
	}
	if m.CatalogFetchDurationSeconds == nil {
		t.Error("CatalogFetchDurationSeconds is nil")
	}
	if m.CatalogCoursesFetched == nil {
		t.Error("CatalogCoursesFetched is nil")
	}
	if m.IntentTotal == nil {
		t.Error("IntentTotal is nil")
	}
	if m.ReplyChunksTotal == nil {
		t.Error("ReplyChunksTotal is nil")
	}
	if m.ReplyDurationSeconds == nil {
		t.Error("ReplyDurationSeconds is nil")
	}
	if m.HTTPErrorsTotal == nil {
		t.Error("HTTPErrorsTotal is nil")
	}
	if m.RateLimiterDropped == nil {
		t.Error("RateLimiterDropped is nil")
	}
}

func TestRecordWebhook(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordWebhook("message", "success", 0.5)
	m.RecordWebhook("follow", "success", 0.1)
	m.RecordWebhook("message", "error", 1.0)
}

func TestRecordCatalogFetch(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordCatalogFetch("success", 0.2, 17)
	m.RecordCatalogFetch("error", 10.0, 0)
}

func TestRecordIntent(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordIntent("follow")
	m.RecordIntent("review")
	m.RecordIntent("all_courses")
	m.RecordIntent("category")
	m.RecordIntent("search")
}

func TestRecordReplyChunk(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordReplyChunk("success")
	m.RecordReplyChunk("error")
	m.RecordReplyChunk("noop")
}

func TestRecordReply(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordReply(2.1, 26)
	m.RecordReply(0.05, 1)
}

func TestRecordHTTPError(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordHTTPError("invalid_signature", "webhook")
	m.RecordHTTPError("parse_error", "webhook")
}

func TestRecordRateLimiter(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordRateLimiterWait(0.01)
	m.RecordRateLimiterDrop()
}

func TestMetrics_WithDefaultRegistry(t *testing.T) {
	// Test that metrics can be created with a new registry
	// without conflicting with default registry
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Record some metrics
	m.RecordWebhook("message", "success", 0.5)
	m.RecordCatalogFetch("success", 0.1, 3)
	m.RecordIntent("search")
	m.RecordReplyChunk("success")

	// Gather metrics to verify they were recorded
	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	// Should have metrics registered
	if len(metricFamilies) == 0 {
		t.Error("No metrics were gathered")
	}

	// Check for specific metric names
	expectedMetrics := map[string]bool{
		"linebot_webhook_requests_total":   false,
		"linebot_webhook_duration_seconds": false,
		"linebot_catalog_fetch_total":      false,
		"linebot_intent_total":             false,
		"linebot_reply_chunks_total":       false,
	}

	for _, mf := range metricFamilies {
		if _, ok := expectedMetrics[mf.GetName()]; ok {
			expectedMetrics[mf.GetName()] = true
		}
	}

	for name, found := range expectedMetrics {
		if !found {
			t.Errorf("Expected metric %q not found", name)
		}
	}
}
