// Package responder delivers course carousels, splitting large result
// sets into multiple flex messages on the same reply token.
package responder

import (
	"context"
	"time"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/bakingstudio/course-linebot-go/internal/cards"
	"github.com/bakingstudio/course-linebot-go/internal/errors"
	"github.com/bakingstudio/course-linebot-go/internal/lineutil"
	"github.com/bakingstudio/course-linebot-go/internal/logger"
	"github.com/bakingstudio/course-linebot-go/internal/metrics"
	"github.com/bakingstudio/course-linebot-go/internal/replier"
)

// ChunkDelay is the pause between consecutive carousel sends on the
// same reply token, keeping within platform rate limits.
const ChunkDelay = 1000 * time.Millisecond

// Outcome summarizes one delivery.
type Outcome struct {
	Bubbles     int
	ChunksSent  int
	ChunksError int
}

// Responder splits bubbles into carousels and sends them sequentially.
type Responder struct {
	replier replier.Replier
	log     *logger.Logger
	metrics *metrics.Metrics
	sleep   func(time.Duration)
}

// New creates a Responder.
func New(r replier.Replier, log *logger.Logger, m *metrics.Metrics) *Responder {
	return &Responder{
		replier: r,
		log:     log.WithModule("responder"),
		metrics: m,
		sleep:   time.Sleep,
	}
}

// Deliver sends the bubbles as flex carousels of at most 12 cards each,
// pausing ChunkDelay between consecutive sends. Delivery is strictly
// sequential and runs to the end once started; a failed chunk is logged
// and counted, then the remaining chunks are still attempted.
func (r *Responder) Deliver(ctx context.Context, replyToken string, bubbles []messaging_api.FlexBubble) Outcome {
	start := time.Now()
	outcome := Outcome{Bubbles: len(bubbles)}

	chunks := chunkBubbles(bubbles, lineutil.MaxBubblesPerCarousel)
	for i, chunk := range chunks {
		msg := lineutil.NewFlexMessage(cards.CourseAltText, lineutil.NewFlexCarousel(chunk))
		err := r.replier.Reply(ctx, replyToken, []messaging_api.MessageInterface{msg})
		if err != nil {
			outcome.ChunksError++
			r.metrics.RecordReplyChunk("error")
			r.log.WithError(errors.NewDeliveryError(i, len(chunks), err)).Error("carousel chunk failed")
		} else {
			outcome.ChunksSent++
			r.metrics.RecordReplyChunk("success")
		}

		if i < len(chunks)-1 {
			r.sleep(ChunkDelay)
		}
	}

	r.metrics.RecordReply(time.Since(start).Seconds(), len(bubbles))
	return outcome
}

// DeliverText sends a single text message on the reply token.
func (r *Responder) DeliverText(ctx context.Context, replyToken string, msg *messaging_api.TextMessage) error {
	return r.deliverOne(ctx, replyToken, msg)
}

// DeliverMessage sends a single prebuilt message on the reply token.
func (r *Responder) DeliverMessage(ctx context.Context, replyToken string, msg messaging_api.MessageInterface) error {
	return r.deliverOne(ctx, replyToken, msg)
}

func (r *Responder) deliverOne(ctx context.Context, replyToken string, msg messaging_api.MessageInterface) error {
	err := r.replier.Reply(ctx, replyToken, []messaging_api.MessageInterface{msg})
	if err != nil {
		r.metrics.RecordReplyChunk("error")
		r.log.WithError(err).Error("reply failed")
		return err
	}
	r.metrics.RecordReplyChunk("success")
	return nil
}

func chunkBubbles(bubbles []messaging_api.FlexBubble, size int) [][]messaging_api.FlexBubble {
	if len(bubbles) == 0 {
		return nil
	}
	var chunks [][]messaging_api.FlexBubble
	for i := 0; i < len(bubbles); i += size {
		end := i + size
		if end > len(bubbles) {
			end = len(bubbles)
		}
		chunks = append(chunks, bubbles[i:end])
	}
	return chunks
}
