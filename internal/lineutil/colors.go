package lineutil

// Card palette. The warm tones follow the studio branding.
const (
	// ColorTitle is the accent color for course titles on themed cards.
	ColorTitle = "#C1440E"

	// ColorTitlePlain is the title color when theming is disabled.
	ColorTitlePlain = "#000000"

	// ColorDescription is the muted color for descriptive text.
	ColorDescription = "#555555"

	// ColorPrice is the teal accent for the price line.
	ColorPrice = "#008080"

	// ColorEnrollButton is the salmon fill of the enroll button.
	ColorEnrollButton = "#FFA07A"

	// ColorBodyBackground is the themed card body fill.
	ColorBodyBackground = "#FFF8F0"

	// ColorFooterBackground is the themed card footer fill.
	ColorFooterBackground = "#FFF0E0"

	// ColorVideoButton is the watch-video button fill, matching the
	// video platform branding.
	ColorVideoButton = "#000000"
)
