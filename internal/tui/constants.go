package tui

const (
	// Input Dimensions
	InputWidth = 52

	// Layout Offsets and Padding
	DefaultPaddingX = 1
	DefaultPaddingY = 0

	// Minimum height of the transcript viewport
	MinTranscriptHeight = 5

	// Channel Buffers
	EventChannelBuffer = 100
)

// Selector choices cycled with left/right. The empty entry means
// "none"/"best" and is rendered as such.
var (
	Browsers  = []string{"", "chrome", "firefox", "edge", "safari", "brave"}
	Qualities = []string{"", "2160", "1440", "1080", "720", "480"}
)
