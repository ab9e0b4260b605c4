package ytdlp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/tubeget/tubeget/internal/config"
	"github.com/tubeget/tubeget/internal/events"
	"github.com/tubeget/tubeget/internal/utils"
)

// Runner invokes the yt-dlp binary and streams its output as notification
// envelopes while the process runs. Emit must never block; the runner calls
// it from the goroutines draining the process pipes.
type Runner struct {
	Binary string // resolved yt-dlp path; looked up when empty
	Emit   func(events.Envelope)
}

// NewRunner returns a runner publishing notifications through emit.
// A nil emit disables realtime notifications; the terminal Result still
// carries the full captured output.
func NewRunner(emit func(events.Envelope)) *Runner {
	return &Runner{Emit: emit}
}

// DownloadMedia runs one download to completion. A non-zero exit status is
// a logical failure reported through Result.Success; only spawn and I/O
// problems surface as errors.
func (r *Runner) DownloadMedia(ctx context.Context, req Request) (*Result, error) {
	url := strings.TrimSpace(req.URL)
	if url == "" {
		return nil, errors.New("no URL to download")
	}
	req.URL = url

	binary, err := r.resolveBinary()
	if err != nil {
		return nil, err
	}

	if req.Mode == ModeAudio {
		if st := CheckFFmpeg(); !st.Installed {
			return nil, errors.New("ffmpeg is required for audio downloads; run: tubeget doctor --install")
		}
	}

	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		outputDir = r.DefaultDownloadDir()
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create download directory: %w", err)
	}

	cmd := exec.CommandContext(ctx, binary, BuildArgs(req, outputDir)...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("attach stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("attach stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("run yt-dlp: %w", err)
	}
	utils.Debug("session %s: started yt-dlp pid=%d", req.SessionID, cmd.Process.Pid)

	var (
		wg          sync.WaitGroup
		stdoutLines []string
		stderrLines []string
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		r.forwardStream(stdout, req.SessionID, "stdout", &stdoutLines)
	}()
	go func() {
		defer wg.Done()
		r.forwardStream(stderr, req.SessionID, "stderr", &stderrLines)
	}()

	// Drain both pipes before Wait closes them.
	wg.Wait()
	waitErr := cmd.Wait()

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return nil, fmt.Errorf("wait for yt-dlp: %w", waitErr)
	}

	return &Result{
		Success:   waitErr == nil,
		Stdout:    strings.TrimSpace(strings.Join(stdoutLines, "\n")),
		Stderr:    strings.TrimSpace(strings.Join(stderrLines, "\n")),
		OutputDir: outputDir,
	}, nil
}

// forwardStream buffers every line for the terminal result and publishes it
// as a download-log notification, plus a download-progress notification for
// lines the parser recognizes. All notifications carry the session id so the
// router can discard trailing output from superseded sessions.
func (r *Runner) forwardStream(reader io.Reader, sessionID, stream string, sink *[]string) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		*sink = append(*sink, line)

		r.publish(events.Envelope{
			Name: events.LogEventName,
			Payload: map[string]any{
				"sessionId": sessionID,
				"stream":    stream,
				"line":      line,
			},
		})

		if pl, ok := ParseProgressLine(line); ok {
			payload := map[string]any{
				"sessionId":   sessionID,
				"percent":     pl.Percent,
				"percentText": pl.PercentText,
				"raw":         pl.Raw,
			}
			if pl.ETA != "" {
				payload["eta"] = pl.ETA
			}
			if pl.Speed != "" {
				payload["speed"] = pl.Speed
			}
			if pl.Total != "" {
				payload["total"] = pl.Total
			}
			if pl.Status != "" {
				payload["status"] = pl.Status
			}
			r.publish(events.Envelope{Name: events.ProgressEventName, Payload: payload})
		}
	}
	if err := scanner.Err(); err != nil {
		utils.Debug("session %s: %s stream read error: %v", sessionID, stream, err)
	}
}

func (r *Runner) publish(env events.Envelope) {
	if r.Emit != nil {
		r.Emit(env)
	}
}

func (r *Runner) resolveBinary() (string, error) {
	if r.Binary != "" {
		return r.Binary, nil
	}
	if st := CheckYTDLP(); st.Installed {
		return st.Path, nil
	}
	return "", errors.New("yt-dlp is not installed; run: tubeget doctor --install")
}

// DefaultDownloadDir returns the directory downloads land in when the
// request does not name one.
func (r *Runner) DefaultDownloadDir() string {
	return config.DefaultDownloadDir()
}
