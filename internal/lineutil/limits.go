package lineutil

// LINE Messaging API limits.
const (
	// MaxBubblesPerCarousel is the maximum number of bubbles in one
	// Flex carousel.
	MaxBubblesPerCarousel = 12

	// MaxTextLength is the maximum length of a text message in characters.
	MaxTextLength = 5000

	// MaxAltTextLength is the maximum length of a Flex message alt text.
	MaxAltTextLength = 400

	// MaxQuickReplyItems is the maximum number of quick reply buttons.
	MaxQuickReplyItems = 13
)
