package messages

import (
	"github.com/tubeget/tubeget/internal/events"
	"github.com/tubeget/tubeget/internal/ytdlp"
)

// DownloadEventMsg wraps one realtime notification from the runner. The
// payload is still unvalidated; the orchestrator decodes and filters it.
type DownloadEventMsg struct {
	Envelope events.Envelope
}

// DownloadDoneMsg is the terminal result of one invocation. SessionID lets
// the orchestrator ignore settlements of superseded sessions.
type DownloadDoneMsg struct {
	SessionID string
	Result    *ytdlp.Result
	Err       error
}

// PreviewMsg carries the resolved metadata for a URL, or the failure to
// resolve it.
type PreviewMsg struct {
	URL     string
	Preview *ytdlp.Preview
	Err     error
}

// ProvisionMsg reports the availability of the external tools. Sent at
// startup and again after every settled session.
type ProvisionMsg struct {
	YTDLP  ytdlp.Status
	FFmpeg ytdlp.Status
}
