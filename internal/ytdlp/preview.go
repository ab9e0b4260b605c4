package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// FetchPreview resolves the metadata summary for a URL without downloading
// anything. yt-dlp prints one JSON document on stdout.
func (r *Runner) FetchPreview(ctx context.Context, url string) (*Preview, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("no URL to preview")
	}

	binary, err := r.resolveBinary()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, binary,
		"--dump-single-json",
		"--no-playlist",
		"--skip-download",
		url,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("resolve metadata: %s", lastLine(msg))
		}
		return nil, fmt.Errorf("resolve metadata: %w", err)
	}

	var preview Preview
	if err := json.Unmarshal(out, &preview); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return &preview, nil
}

func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
