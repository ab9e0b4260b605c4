// Package events defines the notification boundary between the yt-dlp
// runner and the view. Payloads cross the boundary untyped and are decoded
// into a validated shape before they may touch any visible state; anything
// that does not match the exact expected shape is dropped by the caller.
package events

import (
	"math"

	"github.com/tubeget/tubeget/internal/progress"
)

// Names of the two notification channels emitted while a download runs.
const (
	LogEventName      = "download-log"
	ProgressEventName = "download-progress"
)

// Envelope is one raw notification from the runner, tagged with the channel
// it belongs to. The payload stays untyped until DecodeLog/DecodeProgress
// accept it.
type Envelope struct {
	Name    string
	Payload any
}

// LogEvent is one validated download-log notification.
type LogEvent struct {
	SessionID string
	Line      string
	Stream    string // "stdout", "stderr" or ""
}

// ProgressEvent is one validated download-progress notification. Absent
// fields stay empty; HasPercent marks whether a finite percent was present.
type ProgressEvent struct {
	SessionID   string
	Percent     float64
	HasPercent  bool
	PercentText string
	ETA         string
	Speed       string
	Total       string
	Status      string
	Raw         string
}

// Update converts the event into a merger update.
func (e ProgressEvent) Update() progress.Update {
	return progress.Update{
		Percent:     e.Percent,
		HasPercent:  e.HasPercent,
		PercentText: e.PercentText,
		ETA:         e.ETA,
		Speed:       e.Speed,
		Total:       e.Total,
		Status:      e.Status,
		Raw:         e.Raw,
	}
}

// DecodeLog validates a download-log payload. ok is false when the payload
// is not a structured object, or its sessionId or line field is not a string.
func DecodeLog(payload any) (LogEvent, bool) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return LogEvent{}, false
	}
	id, ok := obj["sessionId"].(string)
	if !ok {
		return LogEvent{}, false
	}
	line, ok := obj["line"].(string)
	if !ok {
		return LogEvent{}, false
	}
	ev := LogEvent{SessionID: id, Line: line}
	if stream, ok := obj["stream"].(string); ok {
		ev.Stream = stream
	}
	return ev, true
}

// DecodeProgress validates a download-progress payload. Only the sessionId
// is mandatory; every other field is taken when usable and ignored when not.
func DecodeProgress(payload any) (ProgressEvent, bool) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return ProgressEvent{}, false
	}
	id, ok := obj["sessionId"].(string)
	if !ok {
		return ProgressEvent{}, false
	}
	ev := ProgressEvent{SessionID: id}
	if p, ok := numberField(obj, "percent"); ok {
		ev.Percent = p
		ev.HasPercent = true
	}
	ev.PercentText = stringField(obj, "percentText")
	ev.ETA = stringField(obj, "eta")
	ev.Speed = stringField(obj, "speed")
	ev.Total = stringField(obj, "total")
	ev.Status = stringField(obj, "status")
	ev.Raw = stringField(obj, "raw")
	return ev, true
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

// numberField accepts the numeric representations that survive a trip
// through JSON or an in-process map, and rejects non-finite values.
func numberField(obj map[string]any, key string) (float64, bool) {
	var f float64
	switch v := obj[key].(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
