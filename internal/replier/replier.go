// Package replier sends reply messages through the LINE Messaging API.
// A missing channel token degrades to a no-op implementation so the
// webhook keeps accepting events without a configured bot.
package replier

import (
	"context"
	"fmt"
	"time"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/bakingstudio/course-linebot-go/internal/errors"
	"github.com/bakingstudio/course-linebot-go/internal/logger"
	"github.com/bakingstudio/course-linebot-go/internal/metrics"
	"github.com/bakingstudio/course-linebot-go/internal/ratelimit"
)

// Replier sends one batch of messages for a reply token.
type Replier interface {
	Reply(ctx context.Context, replyToken string, messages []messaging_api.MessageInterface) error
}

// LineReplier sends replies through the LINE Messaging API, paced by a
// global token bucket.
type LineReplier struct {
	client  *messaging_api.MessagingApiAPI
	limiter *ratelimit.Limiter
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewLineReplier creates a replier backed by the Messaging API.
func NewLineReplier(channelToken string, limiter *ratelimit.Limiter, log *logger.Logger, m *metrics.Metrics) (*LineReplier, error) {
	if channelToken == "" {
		return nil, errors.ErrNoChannelToken
	}
	client, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		return nil, fmt.Errorf("create messaging API client: %w", err)
	}

	return &LineReplier{
		client:  client,
		limiter: limiter,
		log:     log.WithModule("replier"),
		metrics: m,
	}, nil
}

// Reply sends the messages for the given reply token. It waits for an
// outbound rate limit token first; a canceled context aborts the wait.
func (r *LineReplier) Reply(ctx context.Context, replyToken string, messages []messaging_api.MessageInterface) error {
	waitStart := time.Now()
	if err := r.limiter.Wait(ctx); err != nil {
		r.metrics.RecordRateLimiterDrop()
		return fmt.Errorf("wait for reply slot: %w", err)
	}
	r.metrics.RecordRateLimiterWait(time.Since(waitStart).Seconds())

	if _, err := r.client.ReplyMessage(
		&messaging_api.ReplyMessageRequest{
			ReplyToken: replyToken,
			Messages:   messages,
		},
	); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrReplyFailed, err)
	}
	return nil
}

// NoopReplier swallows replies. Used when no channel token is
// configured; every send logs a warning and succeeds.
type NoopReplier struct {
	log *logger.Logger
}

// NewNoopReplier creates a replier that drops all messages.
func NewNoopReplier(log *logger.Logger) *NoopReplier {
	return &NoopReplier{log: log.WithModule("replier")}
}

// Reply logs and discards the messages.
func (r *NoopReplier) Reply(_ context.Context, replyToken string, messages []messaging_api.MessageInterface) error {
	r.log.WithFields(map[string]any{
		"reply_token": replyToken,
		"messages":    len(messages),
	}).Warn("channel token not set, dropping reply")
	return nil
}
