package progress

import (
	"fmt"
	"math"
)

// FormatPercent renders a completion percentage for display.
// The value is clamped to [0,100] and floored to one decimal so the UI never
// claims progress ahead of the downloader; 100 is the only input rendered as
// "100%". Non-finite input yields the empty string.
func FormatPercent(p float64) string {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return ""
	}
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	if p == 100 {
		return "100%"
	}
	floored := math.Floor(p*10) / 10
	if floored == math.Trunc(floored) {
		return fmt.Sprintf("%d%%", int(floored))
	}
	return fmt.Sprintf("%.1f%%", floored)
}
