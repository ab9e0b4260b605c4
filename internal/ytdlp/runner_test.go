package ytdlp

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tubeget/tubeget/internal/events"
)

// stubBinary writes a shell script that stands in for yt-dlp.
func stubBinary(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub scripts are POSIX only")
	}
	path := filepath.Join(t.TempDir(), "yt-dlp")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755))
	return path
}

type envelopeSink struct {
	mu        sync.Mutex
	envelopes []events.Envelope
}

func (s *envelopeSink) emit(env events.Envelope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.envelopes = append(s.envelopes, env)
}

func (s *envelopeSink) all() []events.Envelope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]events.Envelope(nil), s.envelopes...)
}

func TestDownloadMedia_StreamsNotifications(t *testing.T) {
	script := `echo "[youtube] abc: Downloading webpage"
echo "[download]  50% of 10.00MiB at 1.00MiB/s ETA 00:05"
echo "warning line" 1>&2
`
	sink := &envelopeSink{}
	r := NewRunner(sink.emit)
	r.Binary = stubBinary(t, script)

	res, err := r.DownloadMedia(context.Background(), Request{
		URL:       "https://example.com/v/1",
		Mode:      ModeVideo,
		OutputDir: t.TempDir(),
		SessionID: "sess-1",
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Contains(t, res.Stdout, "[youtube] abc: Downloading webpage")
	assert.Contains(t, res.Stderr, "warning line")

	var logs, progresses []events.Envelope
	for _, env := range sink.all() {
		switch env.Name {
		case events.LogEventName:
			logs = append(logs, env)
		case events.ProgressEventName:
			progresses = append(progresses, env)
		}
	}

	require.Len(t, logs, 3, "every output line becomes a log notification")
	require.Len(t, progresses, 1, "only the [download] percent line parses as progress")

	ev, ok := events.DecodeLog(logs[0].Payload)
	require.True(t, ok)
	assert.Equal(t, "sess-1", ev.SessionID)

	pe, ok := events.DecodeProgress(progresses[0].Payload)
	require.True(t, ok)
	assert.Equal(t, "sess-1", pe.SessionID)
	assert.Equal(t, 50.0, pe.Percent)
	assert.Equal(t, "00:05", pe.ETA)
}

func TestDownloadMedia_NonZeroExitIsLogicalFailure(t *testing.T) {
	script := `echo "ERROR: unsupported URL" 1>&2
exit 1
`
	r := NewRunner(nil)
	r.Binary = stubBinary(t, script)

	res, err := r.DownloadMedia(context.Background(), Request{
		URL:       "https://example.com/v/1",
		Mode:      ModeVideo,
		OutputDir: t.TempDir(),
		SessionID: "sess-1",
	})

	require.NoError(t, err, "a failing tool is a result, not an invocation error")
	assert.False(t, res.Success)
	assert.Contains(t, res.Stderr, "ERROR: unsupported URL")
}

func TestDownloadMedia_EmptyURL(t *testing.T) {
	r := NewRunner(nil)
	r.Binary = "/nonexistent"

	_, err := r.DownloadMedia(context.Background(), Request{URL: "   "})
	require.Error(t, err)
}

func TestDownloadMedia_NilEmit(t *testing.T) {
	script := `echo "quiet"
`
	r := NewRunner(nil)
	r.Binary = stubBinary(t, script)

	res, err := r.DownloadMedia(context.Background(), Request{
		URL:       "https://example.com/v/1",
		OutputDir: t.TempDir(),
	})
	require.NoError(t, err)
	assert.Equal(t, "quiet", strings.TrimSpace(res.Stdout))
}
