// Package cards composes Flex bubbles for course recommendations and
// the customer review card. The package is pure; it performs no I/O.
package cards

import (
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/bakingstudio/course-linebot-go/internal/catalog"
	"github.com/bakingstudio/course-linebot-go/internal/lineutil"
)

const (
	// CourseAltText is the alt text for course carousels.
	CourseAltText = "แนะนำคอร์สเรียน"

	// ReviewAltText is the alt text for the review card.
	ReviewAltText = "วิดีโอรีวิวจากลูกค้า"

	// PlaceholderImageURL fills the hero slot when a course has no image.
	PlaceholderImageURL = "https://via.placeholder.com/640x360?text=No+Image"

	// DefaultEnrollURL fills the enroll button when a course has no link.
	DefaultEnrollURL = "https://your-default-link.com"

	reviewHeroImageURL = "https://placehold.co/600x400/E98074/FFFFFF?text=รีวิวจากลูกค้า"
	reviewVideoURL     = "https://vt.tiktok.com/ZSBCm9jRb/"
	reviewProfileURL   = "https://www.tiktok.com/@namtarn.bakingstudio?_t=ZS-8xxLoOIwQYT&_r=1"
)

// Composer builds Flex bubbles for courses.
type Composer struct {
	themed bool
}

// NewComposer creates a Composer. When themed is true, cards carry the
// studio accent color and warm background fills.
func NewComposer(themed bool) *Composer {
	return &Composer{themed: themed}
}

// CourseBubble builds one course card.
func (c *Composer) CourseBubble(course catalog.Course) messaging_api.FlexBubble {
	imageURL := course.ImageURL
	if imageURL == "" {
		imageURL = PlaceholderImageURL
	}
	link := course.Link
	if link == "" {
		link = DefaultEnrollURL
	}
	titleColor := lineutil.ColorTitlePlain
	if c.themed {
		titleColor = lineutil.ColorTitle
	}

	hero := lineutil.NewFlexImage(imageURL).
		WithSize("full").
		WithAspectRatio("16:9").
		WithAspectMode("cover")

	body := lineutil.NewFlexBox("vertical",
		lineutil.NewFlexText(course.Title).
			WithWeight("bold").
			WithSize("xl").
			WithColor(titleColor).
			WithWrap(true).FlexText,
		lineutil.NewFlexText(course.Description).
			WithSize("sm").
			WithColor(lineutil.ColorDescription).
			WithWrap(true).FlexText,
		lineutil.NewFlexSeparator().WithMargin("md").FlexSeparator,
		lineutil.NewFlexText("💰 ราคา: "+course.Price+" บาท").
			WithSize("md").
			WithWeight("bold").
			WithColor(lineutil.ColorPrice).FlexText,
	).WithSpacing("md")

	footer := lineutil.NewFlexBox("vertical",
		lineutil.NewFlexButton(lineutil.NewURIAction("สมัครคอร์ส", link)).
			WithStyle("primary").
			WithColor(lineutil.ColorEnrollButton).FlexButton,
	)

	bubble := lineutil.NewFlexBubble(hero.FlexImage, body, footer).WithSize("mega")
	if c.themed {
		bubble = bubble.WithBlockStyles(lineutil.ColorBodyBackground, lineutil.ColorFooterBackground)
	}
	return *bubble.FlexBubble
}

// CourseBubbles builds cards for all courses, preserving order.
func (c *Composer) CourseBubbles(courses []catalog.Course) []messaging_api.FlexBubble {
	bubbles := make([]messaging_api.FlexBubble, len(courses))
	for i, course := range courses {
		bubbles[i] = c.CourseBubble(course)
	}
	return bubbles
}

// ReviewMessage builds the static customer review card as a complete
// Flex message. The hero image and the watch button both open the
// review video.
func ReviewMessage() *messaging_api.FlexMessage {
	hero := lineutil.NewFlexImage(reviewHeroImageURL).
		WithSize("full").
		WithAspectRatio("20:13").
		WithAspectMode("cover").
		WithAction(lineutil.NewURIAction(ReviewAltText, reviewVideoURL))

	body := lineutil.NewFlexBox("vertical",
		lineutil.NewFlexText("รีวิวจากลูกค้า").
			WithWeight("bold").
			WithSize("xl").FlexText,
		lineutil.NewFlexText("ดูวิดีโอการทำขนมและบรรยากาศในคลาสเรียนของเราได้เลย!").
			WithWrap(true).
			WithMargin("md").FlexText,
	)

	footer := lineutil.NewFlexBox("vertical",
		lineutil.NewFlexButton(lineutil.NewURIAction("🎬 ดูวิดีโอรีวิว", reviewVideoURL)).
			WithStyle("primary").
			WithHeight("sm").
			WithColor(lineutil.ColorVideoButton).FlexButton,
		lineutil.NewFlexButton(lineutil.NewURIAction("ไปที่โปรไฟล์ TikTok", reviewProfileURL)).
			WithStyle("secondary").
			WithHeight("sm").FlexButton,
	).WithSpacing("sm").WithFlex(0)

	bubble := lineutil.NewFlexBubble(hero.FlexImage, body, footer)
	return lineutil.NewFlexMessage(ReviewAltText, bubble.FlexBubble)
}
