// Package webhook provides the LINE webhook endpoint. Requests are
// acknowledged immediately and their events processed asynchronously.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"github.com/bakingstudio/course-linebot-go/internal/bot"
	"github.com/bakingstudio/course-linebot-go/internal/logger"
	"github.com/bakingstudio/course-linebot-go/internal/metrics"
	"github.com/bakingstudio/course-linebot-go/internal/sentry"
)

// maxEventsPerBatch caps the events processed from one webhook request.
const maxEventsPerBatch = 100

// Handler handles LINE webhook requests.
type Handler struct {
	channelSecret string
	router        *bot.Router
	log           *logger.Logger
	metrics       *metrics.Metrics
	wg            sync.WaitGroup
}

// NewHandler creates a webhook handler. An empty channelSecret disables
// signature validation.
func NewHandler(channelSecret string, router *bot.Router, log *logger.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		channelSecret: channelSecret,
		router:        router,
		log:           log.WithModule("webhook"),
		metrics:       m,
	}
}

// Handle is the Gin handler for the webhook endpoint.
func (h *Handler) Handle(c *gin.Context) {
	cb, err := h.parseRequest(c.Request)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			h.log.Warn("invalid webhook signature")
			h.metrics.RecordHTTPError("invalid_signature", "webhook")
			c.Status(http.StatusBadRequest)
		} else {
			h.log.WithError(err).Error("failed to parse webhook request")
			h.metrics.RecordHTTPError("parse_error", "webhook")
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	// Acknowledge first; the platform retries on anything but a fast 200.
	c.Status(http.StatusOK)

	if len(cb.Events) == 0 {
		return
	}
	if len(cb.Events) > maxEventsPerBatch {
		h.log.WithField("event_count", len(cb.Events)).Warn("too many events in webhook batch, truncating")
		cb.Events = cb.Events[:maxEventsPerBatch]
	}

	// Copy events so processing never touches the request after the
	// response completes.
	events := make([]webhook.EventInterface, len(cb.Events))
	copy(events, cb.Events)

	for _, event := range events {
		event := event
		h.wg.Add(1)
		go func() {
			defer h.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					h.log.WithField("panic", r).Error("panic while processing webhook event")
					sentry.CaptureMessage("panic in webhook event processing")
				}
			}()
			h.processEvent(context.Background(), event)
		}()
	}
}

// parseRequest validates and decodes the callback. Without a channel
// secret the body is decoded directly, skipping the signature check.
func (h *Handler) parseRequest(req *http.Request) (*webhook.CallbackRequest, error) {
	if h.channelSecret != "" {
		return webhook.ParseRequest(h.channelSecret, req)
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	defer req.Body.Close()

	var cb webhook.CallbackRequest
	if err := json.Unmarshal(body, &cb); err != nil {
		return nil, err
	}
	return &cb, nil
}

func (h *Handler) processEvent(ctx context.Context, event webhook.EventInterface) {
	start := time.Now()

	log := h.log
	eventType := "unknown"
	switch e := event.(type) {
	case webhook.MessageEvent:
		eventType = "message"
		if e.WebhookEventId != "" {
			log = log.WithEventID(e.WebhookEventId)
		}
	case webhook.FollowEvent:
		eventType = "follow"
		if e.WebhookEventId != "" {
			log = log.WithEventID(e.WebhookEventId)
		}
	}

	outcome := h.router.HandleEvent(ctx, event)

	status := "success"
	switch {
	case outcome.Err != nil:
		status = "error"
		log.WithError(outcome.Err).WithField("route", outcome.Route).Error("event handling failed")
		sentry.CaptureException(outcome.Err)
	case outcome.Skipped:
		status = "skipped"
	default:
		log.WithFields(map[string]any{
			"route":        outcome.Route,
			"bubbles":      outcome.Delivery.Bubbles,
			"chunks_sent":  outcome.Delivery.ChunksSent,
			"chunks_error": outcome.Delivery.ChunksError,
		}).Info("event handled")
	}

	h.metrics.RecordWebhook(eventType, status, time.Since(start).Seconds())
}

// Shutdown waits for in-flight event processing to finish or the
// context to expire.
func (h *Handler) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
