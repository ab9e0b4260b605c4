package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tubeget/tubeget/internal/events"
	"github.com/tubeget/tubeget/internal/progress"
	"github.com/tubeget/tubeget/internal/ytdlp"
)

func logEnvelope(sessionID, line, stream string) events.Envelope {
	return events.Envelope{
		Name: events.LogEventName,
		Payload: map[string]any{
			"sessionId": sessionID,
			"line":      line,
			"stream":    stream,
		},
	}
}

func progressEnvelope(sessionID string, fields map[string]any) events.Envelope {
	payload := map[string]any{"sessionId": sessionID}
	for k, v := range fields {
		payload[k] = v
	}
	return events.Envelope{Name: events.ProgressEventName, Payload: payload}
}

func begin(t *testing.T, o *Orchestrator) *Session {
	t.Helper()
	sess, err := o.Begin(ytdlp.Request{URL: "https://youtube.com/watch?v=abc", Mode: ytdlp.ModeVideo})
	require.NoError(t, err)
	return sess
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate session id %s", id)
		seen[id] = true
	}
}

func TestBegin_EmptyURL(t *testing.T) {
	o := NewOrchestrator()

	sess, err := o.Begin(ytdlp.Request{URL: "   "})

	assert.ErrorIs(t, err, ErrEmptyURL)
	assert.Nil(t, sess)
	assert.Nil(t, o.Active(), "no session should be minted")
	assert.Equal(t, PhaseIdle, o.Phase())
	assert.Equal(t, ErrEmptyURL.Error(), o.ErrorMessage())
}

func TestBegin_ResetsSessionState(t *testing.T) {
	o := NewOrchestrator()
	first := begin(t, o)
	o.Dispatch()

	require.True(t, o.Route(logEnvelope(first.ID, "old line", "stdout")))
	require.True(t, o.Route(progressEnvelope(first.ID, map[string]any{"percent": 80.0, "eta": "00:05"})))

	second := begin(t, o)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, PhasePending, o.Phase())
	assert.Equal(t, second.ID, o.Active().ID)
	assert.Equal(t, second.ID, second.Request.SessionID)

	snap, ok := o.Snapshot()
	require.True(t, ok)
	assert.Equal(t, 0.0, snap.Percent)
	assert.Equal(t, "0%", snap.PercentText)
	assert.Equal(t, progress.StatusPending, snap.Status)
	assert.Empty(t, snap.ETA, "previous session's eta must not leak")

	assert.Zero(t, o.Transcript().Len())
	assert.False(t, o.Transcript().SawRealtime(), "fallback flag from the previous session must be discarded")
	assert.Empty(t, o.ErrorMessage())
	assert.Empty(t, o.ResultMessage())
}

func TestRoute_StaleEventsDropped(t *testing.T) {
	o := NewOrchestrator()
	sess := begin(t, o)

	assert.False(t, o.Route(logEnvelope("some-other-session", "stray", "stdout")))
	assert.False(t, o.Route(progressEnvelope("some-other-session", map[string]any{"percent": 99.0})))

	assert.Zero(t, o.Transcript().Len())
	snap, ok := o.Snapshot()
	require.True(t, ok)
	assert.Equal(t, 0.0, snap.Percent)

	// The active session still accepts its own events.
	assert.True(t, o.Route(logEnvelope(sess.ID, "mine", "stdout")))
	assert.Equal(t, 1, o.Transcript().Len())
}

func TestRoute_MalformedPayloadsDropped(t *testing.T) {
	o := NewOrchestrator()
	begin(t, o)

	malformed := []events.Envelope{
		{Name: events.LogEventName, Payload: "not an object"},
		{Name: events.LogEventName, Payload: map[string]any{"line": "no session"}},
		{Name: events.ProgressEventName, Payload: 42},
		{Name: "unrelated-event", Payload: map[string]any{"sessionId": o.Active().ID}},
	}
	for _, env := range malformed {
		assert.False(t, o.Route(env), "payload %#v should be dropped", env.Payload)
	}
	assert.Zero(t, o.Transcript().Len())
}

func TestRoute_ProgressSequenceMerges(t *testing.T) {
	o := NewOrchestrator()
	sess := begin(t, o)

	require.True(t, o.Route(progressEnvelope(sess.ID, map[string]any{"percent": 10.0})))
	require.True(t, o.Route(progressEnvelope(sess.ID, map[string]any{"eta": "00:30"})))

	snap, ok := o.Snapshot()
	require.True(t, ok)
	assert.Equal(t, 10.0, snap.Percent)
	assert.Equal(t, "10%", snap.PercentText)
	assert.Equal(t, "00:30", snap.ETA)
}

func TestRoute_LogStreamsTagged(t *testing.T) {
	o := NewOrchestrator()
	sess := begin(t, o)

	require.True(t, o.Route(logEnvelope(sess.ID, "normal", "stdout")))
	require.True(t, o.Route(logEnvelope(sess.ID, "warning", "stderr")))

	assert.Equal(t, "normal\n[stderr] warning", o.Transcript().String())
}

func TestSettle_Success(t *testing.T) {
	o := NewOrchestrator()
	sess := begin(t, o)
	o.Dispatch()
	require.Equal(t, PhaseInFlight, o.Phase())

	settled := make(chan struct{})
	o.SetSettledHook(func() { close(settled) })

	ok := o.Settle(sess.ID, &ytdlp.Result{Success: true, Stdout: "done", OutputDir: "/tmp/downloads"}, nil)
	require.True(t, ok)

	assert.Equal(t, "Saved to /tmp/downloads", o.ResultMessage())
	assert.Empty(t, o.ErrorMessage())
	assert.Equal(t, PhaseIdle, o.Phase())

	_, snapOK := o.Snapshot()
	assert.False(t, snapOK, "settled session must not leave a stale progress snapshot")

	select {
	case <-settled:
	case <-time.After(time.Second):
		t.Fatal("settled hook never fired")
	}
}

func TestSettle_LogicalFailureUsesStderr(t *testing.T) {
	o := NewOrchestrator()
	sess := begin(t, o)
	o.Dispatch()

	o.Settle(sess.ID, &ytdlp.Result{Success: false, Stderr: "403 Forbidden"}, nil)

	assert.Equal(t, "403 Forbidden", o.ErrorMessage())
	assert.Empty(t, o.ResultMessage())
}

func TestSettle_LogicalFailureGenericFallback(t *testing.T) {
	o := NewOrchestrator()
	sess := begin(t, o)

	o.Settle(sess.ID, &ytdlp.Result{Success: false}, nil)

	assert.Equal(t, GenericFailure, o.ErrorMessage())
}

func TestSettle_InvocationError(t *testing.T) {
	o := NewOrchestrator()
	sess := begin(t, o)

	o.Settle(sess.ID, nil, assert.AnError)

	assert.Equal(t, assert.AnError.Error(), o.ErrorMessage())
	assert.Equal(t, PhaseIdle, o.Phase())
}

func TestSettle_StaleResultIgnored(t *testing.T) {
	o := NewOrchestrator()
	first := begin(t, o)
	second := begin(t, o)

	assert.False(t, o.Settle(first.ID, &ytdlp.Result{Success: true, OutputDir: "/old"}, nil))
	assert.Empty(t, o.ResultMessage())
	assert.Equal(t, PhasePending, o.Phase(), "superseding session keeps running")
	assert.Equal(t, second.ID, o.Active().ID)
}

func TestSettle_FallbackTranscript(t *testing.T) {
	t.Run("UsesCombinedOutput", func(t *testing.T) {
		o := NewOrchestrator()
		sess := begin(t, o)

		o.Settle(sess.ID, &ytdlp.Result{Success: true, Stdout: "out text", Stderr: "err text", OutputDir: "/d"}, nil)

		assert.Equal(t, "out text\nerr text", o.Transcript().String())
	})

	t.Run("PlaceholderWhenEmpty", func(t *testing.T) {
		o := NewOrchestrator()
		sess := begin(t, o)

		o.Settle(sess.ID, &ytdlp.Result{Success: true, OutputDir: "/d"}, nil)

		assert.Equal(t, "command finished", o.Transcript().String())
	})

	t.Run("NoOpAfterRealtimeLines", func(t *testing.T) {
		o := NewOrchestrator()
		sess := begin(t, o)
		require.True(t, o.Route(logEnvelope(sess.ID, "streamed", "stdout")))

		o.Settle(sess.ID, &ytdlp.Result{Success: true, Stdout: "batch", OutputDir: "/d"}, nil)

		assert.Equal(t, "streamed", o.Transcript().String())
	})
}
