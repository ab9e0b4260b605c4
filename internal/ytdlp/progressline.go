package ytdlp

import (
	"strconv"
	"strings"
)

// ProgressLine is the structured form of one "[download]" status line.
type ProgressLine struct {
	Percent     float64
	PercentText string
	ETA         string
	Speed       string
	Total       string
	Status      string
	Raw         string
}

// ParseProgressLine extracts progress fields from one line of yt-dlp output.
// Only "[download]" lines with a leading percentage qualify; everything else
// reports ok=false and is forwarded as a plain log line.
//
// Typical inputs:
//
//	[download]  42.5% of 10.00MiB at 1.23MiB/s ETA 00:30
//	[download] 100% of 10.00MiB in 00:00:08 at 1.25MiB/s
func ParseProgressLine(line string) (ProgressLine, bool) {
	if !strings.HasPrefix(line, "[download]") {
		return ProgressLine{}, false
	}

	trimmed := strings.TrimSpace(strings.TrimPrefix(line, "[download]"))
	percentPart, restPart, found := strings.Cut(trimmed, "%")
	if !found {
		return ProgressLine{}, false
	}
	percentText := strings.TrimSpace(percentPart)
	if percentText == "" {
		return ProgressLine{}, false
	}
	percent, err := strconv.ParseFloat(percentText, 64)
	if err != nil {
		return ProgressLine{}, false
	}

	rest := strings.TrimSpace(restPart)
	out := ProgressLine{
		Percent:     percent,
		PercentText: percentText + "%",
		Raw:         trimmed,
	}

	if idx := strings.LastIndex(rest, "ETA "); idx >= 0 {
		out.ETA = strings.TrimSpace(rest[idx+4:])
	} else if idx := strings.LastIndex(rest, " in "); idx >= 0 {
		if fields := strings.Fields(rest[idx+4:]); len(fields) > 0 {
			out.ETA = fields[0]
		}
	}

	if idx := strings.Index(rest, " at "); idx >= 0 {
		fields := strings.Fields(rest[idx+4:])
		if len(fields) > 0 {
			out.Speed = strings.TrimSuffix(fields[0], ",")
		}
	}

	if after, ok := strings.CutPrefix(rest, "of "); ok {
		end := len(after)
		for _, marker := range []string{" at ", " ETA ", " in "} {
			if idx := strings.Index(after, marker); idx >= 0 && idx < end {
				end = idx
			}
		}
		if candidate := strings.TrimSuffix(strings.TrimSpace(after[:end]), ","); candidate != "" {
			out.Total = candidate
		}
	}

	switch {
	case strings.Contains(rest, " in ") || percent >= 100:
		out.Status = "finished"
	case strings.Contains(rest, "ETA") || rest != "":
		out.Status = "downloading"
	}

	return out, true
}
