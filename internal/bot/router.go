// Package bot routes incoming LINE events to course replies. Routes are
// held in an ordered table and evaluated first-match-wins, so earlier
// intents always shadow later ones.
package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"github.com/bakingstudio/course-linebot-go/internal/cards"
	"github.com/bakingstudio/course-linebot-go/internal/catalog"
	"github.com/bakingstudio/course-linebot-go/internal/config"
	"github.com/bakingstudio/course-linebot-go/internal/errors"
	"github.com/bakingstudio/course-linebot-go/internal/lineutil"
	"github.com/bakingstudio/course-linebot-go/internal/logger"
	"github.com/bakingstudio/course-linebot-go/internal/metrics"
	"github.com/bakingstudio/course-linebot-go/internal/responder"
	"github.com/bakingstudio/course-linebot-go/internal/textmatch"
)

// User-facing reply texts.
const (
	textNoCourses        = "ขณะนี้ยังไม่มีคอร์สที่เปิดสอนค่ะ"
	textCategoryPrompt   = `กรุณาระบุหมวดหมู่ที่ต้องการค้นหา เช่น "หมวดหมู่ เบเกอรี่"`
	textCategoryNotFound = `ไม่พบคอร์สในหมวดหมู่ "%s" ค่ะ`
	textNoMatchMenu      = "ไม่พบคอร์สที่เกี่ยวข้อง ลองเลือกจากเมนูด้านล่างนะคะ 👇"
	textNoMatch          = "ไม่พบคอร์สที่เกี่ยวข้องค่ะ"

	allCoursesLabel = "ดูคอร์สทั้งหมด"
)

// Outcome summarizes how one event was handled.
type Outcome struct {
	Route    string
	Skipped  bool
	Delivery responder.Outcome
	Err      error
}

// route pairs a match predicate with its handler. The receiver text is
// already lower-cased.
type route struct {
	name   string
	match  func(text string) bool
	handle func(ctx context.Context, text, replyToken string) Outcome
}

// Router dispatches webhook events to reply handlers.
type Router struct {
	catalog   catalog.Provider
	composer  *cards.Composer
	responder *responder.Responder
	features  config.Features
	log       *logger.Logger
	metrics   *metrics.Metrics
	routes    []route
}

// New creates a Router with the standard route table.
func New(provider catalog.Provider, composer *cards.Composer, resp *responder.Responder, features config.Features, log *logger.Logger, m *metrics.Metrics) *Router {
	r := &Router{
		catalog:   provider,
		composer:  composer,
		responder: resp,
		features:  features,
		log:       log.WithModule("bot"),
		metrics:   m,
	}

	// Order matters: the review intent shadows everything, the category
	// prefix shadows free-text search, and the search route matches all.
	r.routes = []route{
		{
			name: "review",
			match: func(text string) bool {
				return strings.Contains(text, "รีวิว") || strings.Contains(text, "vdo")
			},
			handle: r.handleReview,
		},
		{
			name: "all_courses",
			match: func(text string) bool {
				return strings.Contains(text, allCoursesLabel) || strings.Contains(text, "สนใจ")
			},
			handle: r.handleAllCourses,
		},
		{
			name: "category",
			match: func(text string) bool {
				return features.CategorySearch && strings.HasPrefix(text, textmatch.CategoryPrefix)
			},
			handle: r.handleCategory,
		},
		{
			name:   "search",
			match:  func(string) bool { return true },
			handle: r.handleSearch,
		},
	}

	return r
}

// HandleEvent dispatches a single webhook event. Errors never escape;
// they are logged and recorded on the Outcome.
func (r *Router) HandleEvent(ctx context.Context, event webhook.EventInterface) Outcome {
	switch e := event.(type) {
	case webhook.FollowEvent:
		return r.handleFollow(ctx, e)
	case webhook.MessageEvent:
		return r.handleMessage(ctx, e)
	default:
		return Outcome{Skipped: true}
	}
}

// handleFollow greets a new follower with the review card. No catalog
// access happens on this path.
func (r *Router) handleFollow(ctx context.Context, event webhook.FollowEvent) Outcome {
	if event.ReplyToken == "" {
		r.log.WithError(errors.ErrMissingReplyToken).Warn("skipping follow event")
		return Outcome{Route: "follow", Skipped: true}
	}

	r.metrics.RecordIntent("follow")
	err := r.responder.DeliverMessage(ctx, event.ReplyToken, cards.ReviewMessage())
	return Outcome{Route: "follow", Err: err}
}

func (r *Router) handleMessage(ctx context.Context, event webhook.MessageEvent) Outcome {
	content, ok := event.Message.(webhook.TextMessageContent)
	if !ok {
		return Outcome{Skipped: true}
	}

	text := textmatch.Normalize(content.Text)
	if text == "" {
		r.log.WithError(errors.ErrEmptyMessage).Warn("skipping message event")
		return Outcome{Skipped: true}
	}
	if event.ReplyToken == "" {
		r.log.WithError(errors.ErrMissingReplyToken).Warn("skipping message event")
		return Outcome{Skipped: true}
	}

	for _, rt := range r.routes {
		if rt.match(text) {
			r.metrics.RecordIntent(rt.name)
			return rt.handle(ctx, text, event.ReplyToken)
		}
	}
	return Outcome{Skipped: true}
}

func (r *Router) handleReview(ctx context.Context, _, replyToken string) Outcome {
	err := r.responder.DeliverMessage(ctx, replyToken, cards.ReviewMessage())
	return Outcome{Route: "review", Err: err}
}

func (r *Router) handleAllCourses(ctx context.Context, _, replyToken string) Outcome {
	courses := r.catalog.FetchActive(ctx)
	if len(courses) == 0 {
		err := r.responder.DeliverText(ctx, replyToken, lineutil.NewTextMessage(textNoCourses))
		return Outcome{Route: "all_courses", Err: err}
	}

	delivery := r.responder.Deliver(ctx, replyToken, r.composer.CourseBubbles(courses))
	return Outcome{Route: "all_courses", Delivery: delivery}
}

func (r *Router) handleCategory(ctx context.Context, text, replyToken string) Outcome {
	term, _, missing := textmatch.ParseCategoryQuery(text)
	if missing {
		err := r.responder.DeliverText(ctx, replyToken, lineutil.NewTextMessage(textCategoryPrompt))
		return Outcome{Route: "category", Err: err}
	}

	courses := textmatch.FilterByCategory(r.catalog.FetchActive(ctx), term)
	if len(courses) == 0 {
		msg := lineutil.NewTextMessage(fmt.Sprintf(textCategoryNotFound, term))
		err := r.responder.DeliverText(ctx, replyToken, msg)
		return Outcome{Route: "category", Err: err}
	}

	delivery := r.responder.Deliver(ctx, replyToken, r.composer.CourseBubbles(courses))
	return Outcome{Route: "category", Delivery: delivery}
}

func (r *Router) handleSearch(ctx context.Context, text, replyToken string) Outcome {
	courses := r.catalog.FetchActive(ctx)

	var matched []catalog.Course
	if r.features.FuzzySearch {
		matched = textmatch.FilterFuzzy(text, courses)
	} else {
		matched = textmatch.FilterSubstring(text, courses)
	}

	if len(matched) > 0 {
		delivery := r.responder.Deliver(ctx, replyToken, r.composer.CourseBubbles(matched))
		return Outcome{Route: "search", Delivery: delivery}
	}

	msg := lineutil.NewTextMessage(textNoMatch)
	if r.features.QuickReply {
		msg = lineutil.NewTextMessageWithQuickReply(textNoMatchMenu,
			lineutil.QuickReplyItem{Action: lineutil.NewMessageAction(allCoursesLabel, allCoursesLabel)},
		)
	}
	err := r.responder.DeliverText(ctx, replyToken, msg)
	return Outcome{Route: "search", Err: err}
}
