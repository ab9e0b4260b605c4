// Package ytdlp is the command-invocation boundary around the external
// yt-dlp binary: building its argument vector, streaming its output as
// notifications, fetching metadata previews, and provisioning the binary
// itself together with its ffmpeg dependency.
package ytdlp

import "context"

// Mode selects what the downloader should produce.
type Mode string

const (
	ModeVideo Mode = "video"
	ModeAudio Mode = "audio"
)

// Request describes one download invocation.
type Request struct {
	URL       string
	Mode      Mode
	Browser   string // cookie-source browser, empty for none
	OutputDir string // empty means the default download directory
	Quality   string // vertical resolution cap, e.g. "1080"; empty for best
	SessionID string
}

// Result is the terminal outcome of a download invocation that ran to
// completion. Spawn failures surface as errors instead.
type Result struct {
	Success   bool
	Stdout    string
	Stderr    string
	OutputDir string
}

// Preview is the metadata summary resolved before a download starts.
type Preview struct {
	Title      string  `json:"title"`
	Thumbnail  string  `json:"thumbnail"`
	Uploader   string  `json:"uploader"`
	Duration   float64 `json:"duration"`
	Extractor  string  `json:"extractor"`
	WebpageURL string  `json:"webpage_url"`
}

// Invoker is the surface the UI talks to. A fake stands in for tests.
type Invoker interface {
	DownloadMedia(ctx context.Context, req Request) (*Result, error)
	FetchPreview(ctx context.Context, url string) (*Preview, error)
	DefaultDownloadDir() string
}
