package progress

import (
	"math"
	"strings"
)

// Status values inferred from yt-dlp progress lines. Any other status string
// reported by the tool is kept verbatim.
const (
	StatusPending     = "pending"
	StatusDownloading = "downloading"
	StatusFinished    = "finished"
)

// Update carries the fields of one download-progress notification. Any field
// may be absent: string fields default to "", and HasPercent marks whether a
// percent value was present at all.
type Update struct {
	Percent     float64
	HasPercent  bool
	PercentText string
	ETA         string
	Speed       string
	Total       string
	Status      string
	Raw         string
}

// Snapshot is the coalesced progress view of one session. String fields hold
// "" until some update supplies them; once known a field never regresses to
// unknown, only a fresher value replaces it.
type Snapshot struct {
	Percent     float64
	HasPercent  bool
	PercentText string
	ETA         string
	Speed       string
	Total       string
	Status      string
	Raw         string
}

// NewSnapshot returns the snapshot a freshly submitted session starts from.
func NewSnapshot() Snapshot {
	return Snapshot{
		Percent:     0,
		HasPercent:  true,
		PercentText: "0%",
		Status:      StatusPending,
	}
}

// Merge folds one partial update into the snapshot on an own-field basis.
// The percent display text falls back to the formatter only when the update
// carries a usable percent but no explicit text of its own.
func (s Snapshot) Merge(u Update) Snapshot {
	next := s

	if u.HasPercent && !math.IsNaN(u.Percent) && !math.IsInf(u.Percent, 0) {
		p := u.Percent
		if p < 0 {
			p = 0
		}
		if p > 100 {
			p = 100
		}
		next.Percent = p
		next.HasPercent = true
		if text := strings.TrimSpace(u.PercentText); text != "" {
			next.PercentText = text
		} else {
			next.PercentText = FormatPercent(p)
		}
	} else if text := strings.TrimSpace(u.PercentText); text != "" {
		next.PercentText = text
	}

	if v := strings.TrimSpace(u.ETA); v != "" {
		next.ETA = v
	}
	if v := strings.TrimSpace(u.Speed); v != "" {
		next.Speed = v
	}
	if v := strings.TrimSpace(u.Total); v != "" {
		next.Total = v
	}
	if v := strings.TrimSpace(u.Status); v != "" {
		next.Status = v
	}
	if v := strings.TrimSpace(u.Raw); v != "" {
		next.Raw = v
	}

	return next
}
