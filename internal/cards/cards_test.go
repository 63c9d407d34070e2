package cards

import (
	"testing"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakingstudio/course-linebot-go/internal/catalog"
	"github.com/bakingstudio/course-linebot-go/internal/lineutil"
)

func sampleCourse() catalog.Course {
	return catalog.Course{
		ID:          "c1",
		Title:       "เบเกอรี่เบื้องต้น",
		Description: "คอร์สสำหรับมือใหม่",
		Price:       "2500",
		ImageURL:    "https://img.example.com/a.jpg",
		Link:        "https://example.com/enroll",
		Category:    "เบเกอรี่",
	}
}

func bodyTexts(t *testing.T, bubble messaging_api.FlexBubble) []*messaging_api.FlexText {
	t.Helper()
	body, ok := any(bubble.Body).(*messaging_api.FlexBox)
	require.True(t, ok)
	var texts []*messaging_api.FlexText
	for _, comp := range body.Contents {
		if text, ok := comp.(*messaging_api.FlexText); ok {
			texts = append(texts, text)
		}
	}
	return texts
}

func TestCourseBubble_Themed(t *testing.T) {
	t.Parallel()

	bubble := NewComposer(true).CourseBubble(sampleCourse())

	assert.Equal(t, messaging_api.FlexBubbleSIZE("mega"), bubble.Size)

	hero, ok := bubble.Hero.(*messaging_api.FlexImage)
	require.True(t, ok)
	assert.Equal(t, "https://img.example.com/a.jpg", hero.Url)
	assert.Equal(t, "16:9", hero.AspectRatio)
	assert.Equal(t, messaging_api.FlexImageASPECT_MODE("cover"), hero.AspectMode)

	texts := bodyTexts(t, bubble)
	require.Len(t, texts, 3)
	assert.Equal(t, "เบเกอรี่เบื้องต้น", texts[0].Text)
	assert.Equal(t, lineutil.ColorTitle, texts[0].Color)
	assert.Equal(t, "คอร์สสำหรับมือใหม่", texts[1].Text)
	assert.Equal(t, lineutil.ColorDescription, texts[1].Color)
	assert.Equal(t, "💰 ราคา: 2500 บาท", texts[2].Text)
	assert.Equal(t, lineutil.ColorPrice, texts[2].Color)

	footer, ok := any(bubble.Footer).(*messaging_api.FlexBox)
	require.True(t, ok)
	require.Len(t, footer.Contents, 1)
	button, ok := footer.Contents[0].(*messaging_api.FlexButton)
	require.True(t, ok)
	assert.Equal(t, lineutil.ColorEnrollButton, button.Color)
	action, ok := button.Action.(*messaging_api.UriAction)
	require.True(t, ok)
	assert.Equal(t, "สมัครคอร์ส", action.Label)
	assert.Equal(t, "https://example.com/enroll", action.Uri)

	require.NotNil(t, bubble.Styles)
	assert.Equal(t, lineutil.ColorBodyBackground, bubble.Styles.Body.BackgroundColor)
	assert.Equal(t, lineutil.ColorFooterBackground, bubble.Styles.Footer.BackgroundColor)
}

func TestCourseBubble_Plain(t *testing.T) {
	t.Parallel()

	bubble := NewComposer(false).CourseBubble(sampleCourse())

	texts := bodyTexts(t, bubble)
	require.NotEmpty(t, texts)
	assert.Equal(t, lineutil.ColorTitlePlain, texts[0].Color)
	assert.Nil(t, bubble.Styles)
}

func TestCourseBubble_Fallbacks(t *testing.T) {
	t.Parallel()

	course := sampleCourse()
	course.ImageURL = ""
	course.Link = ""

	bubble := NewComposer(true).CourseBubble(course)

	hero := bubble.Hero.(*messaging_api.FlexImage)
	assert.Equal(t, PlaceholderImageURL, hero.Url)

	footer := any(bubble.Footer).(*messaging_api.FlexBox)
	button := footer.Contents[0].(*messaging_api.FlexButton)
	action := button.Action.(*messaging_api.UriAction)
	assert.Equal(t, DefaultEnrollURL, action.Uri)
}

func TestCourseBubbles_PreservesOrder(t *testing.T) {
	t.Parallel()

	courses := []catalog.Course{
		{Title: "หนึ่ง"},
		{Title: "สอง"},
		{Title: "สาม"},
	}
	bubbles := NewComposer(true).CourseBubbles(courses)

	require.Len(t, bubbles, 3)
	for i, bubble := range bubbles {
		texts := bodyTexts(t, bubble)
		require.NotEmpty(t, texts)
		assert.Equal(t, courses[i].Title, texts[0].Text)
	}
}

func TestReviewMessage(t *testing.T) {
	t.Parallel()

	msg := ReviewMessage()
	assert.Equal(t, ReviewAltText, msg.AltText)

	bubble, ok := msg.Contents.(*messaging_api.FlexBubble)
	require.True(t, ok)

	hero, ok := bubble.Hero.(*messaging_api.FlexImage)
	require.True(t, ok)
	assert.Equal(t, reviewHeroImageURL, hero.Url)
	assert.Equal(t, "20:13", hero.AspectRatio)
	heroAction, ok := hero.Action.(*messaging_api.UriAction)
	require.True(t, ok)
	assert.Equal(t, reviewVideoURL, heroAction.Uri)

	footer, ok := any(bubble.Footer).(*messaging_api.FlexBox)
	require.True(t, ok)
	require.Len(t, footer.Contents, 2)

	watch := footer.Contents[0].(*messaging_api.FlexButton)
	assert.Equal(t, lineutil.ColorVideoButton, watch.Color)
	watchAction := watch.Action.(*messaging_api.UriAction)
	assert.Equal(t, reviewVideoURL, watchAction.Uri)

	profile := footer.Contents[1].(*messaging_api.FlexButton)
	profileAction := profile.Action.(*messaging_api.UriAction)
	assert.Equal(t, reviewProfileURL, profileAction.Uri)
}
