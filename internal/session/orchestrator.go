package session

import (
	"errors"
	"strings"
	"time"

	"github.com/tubeget/tubeget/internal/events"
	"github.com/tubeget/tubeget/internal/progress"
	"github.com/tubeget/tubeget/internal/transcript"
	"github.com/tubeget/tubeget/internal/utils"
	"github.com/tubeget/tubeget/internal/ytdlp"
)

// Phase is the lifecycle position of the current session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseInFlight
)

// ErrEmptyURL rejects a submit with nothing to download.
var ErrEmptyURL = errors.New("enter a video URL first")

// GenericFailure is surfaced when an invocation fails without any captured
// error text.
const GenericFailure = "download failed, see log output"

// Orchestrator owns all per-session mutable state: the active session, its
// progress snapshot, and its transcript. Every write path goes through it on
// the single event-dispatch goroutine, so the session-id check in Route is
// the only guard needed against trailing output from superseded sessions.
type Orchestrator struct {
	active     *Session
	phase      Phase
	snapshot   *progress.Snapshot
	transcript transcript.Buffer

	resultMsg string
	errMsg    string

	onSettled func()
}

// NewOrchestrator returns an orchestrator in the idle phase.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{}
}

// SetSettledHook registers a fire-and-forget side effect that runs after
// every reconciliation, e.g. re-checking external tool availability.
func (o *Orchestrator) SetSettledHook(fn func()) {
	o.onSettled = fn
}

// Begin validates a submit, resets all per-session state and mints the new
// active session. On rejection no session is minted, the validation message
// is surfaced, and the phase stays idle.
func (o *Orchestrator) Begin(req ytdlp.Request) (*Session, error) {
	url := strings.TrimSpace(req.URL)
	if url == "" {
		o.errMsg = ErrEmptyURL.Error()
		return nil, ErrEmptyURL
	}
	req.URL = url

	s := &Session{
		ID:        NewID(),
		Request:   req,
		CreatedAt: time.Now(),
	}
	req.SessionID = s.ID
	s.Request = req

	o.active = s
	o.phase = PhasePending
	snap := progress.NewSnapshot()
	o.snapshot = &snap
	o.transcript.Reset()
	o.resultMsg = ""
	o.errMsg = ""

	utils.Debug("session %s: begin %s (%s)", s.ID, s.Request.URL, s.Request.Mode)
	return s, nil
}

// Dispatch marks the external invocation as sent.
func (o *Orchestrator) Dispatch() {
	if o.phase == PhasePending {
		o.phase = PhaseInFlight
	}
}

// Route feeds one raw notification through the session filter, decoding and
// validating it at the boundary. Malformed payloads and events tagged with
// anything but the active session id are dropped silently. The return value
// reports whether visible state changed.
func (o *Orchestrator) Route(env events.Envelope) bool {
	if o.active == nil {
		return false
	}

	switch env.Name {
	case events.LogEventName:
		ev, ok := events.DecodeLog(env.Payload)
		if !ok || ev.SessionID != o.active.ID {
			return false
		}
		o.transcript.Append(ev.Line, ev.Stream)
		return true

	case events.ProgressEventName:
		ev, ok := events.DecodeProgress(env.Payload)
		if !ok || ev.SessionID != o.active.ID || o.snapshot == nil {
			return false
		}
		next := o.snapshot.Merge(ev.Update())
		o.snapshot = &next
		return true
	}
	return false
}

// Settle reconciles the terminal result of an invocation. Results belonging
// to a superseded session are ignored. After reconciliation the orchestrator
// returns to idle: the snapshot is discarded so no stale progress bar can
// render, and the registered refresh hook fires.
func (o *Orchestrator) Settle(sessionID string, res *ytdlp.Result, err error) bool {
	if o.active == nil || o.active.ID != sessionID {
		utils.Debug("session %s: ignoring stale settlement", sessionID)
		return false
	}

	switch {
	case err != nil:
		o.errMsg = NormalizeError(err)
	case res != nil && res.Success:
		o.resultMsg = "Saved to " + res.OutputDir
	default:
		msg := ""
		if res != nil {
			msg = strings.TrimSpace(res.Stderr)
		}
		if msg == "" {
			msg = GenericFailure
		}
		o.errMsg = msg
	}

	combined := ""
	if res != nil {
		combined = strings.TrimSpace(strings.TrimSpace(res.Stdout) + "\n" + strings.TrimSpace(res.Stderr))
	}
	o.transcript.ReplaceIfEmpty(combined)

	o.snapshot = nil
	o.phase = PhaseIdle

	if o.onSettled != nil {
		go o.onSettled()
	}
	return true
}

// Active returns the current session, or nil when none was ever begun.
func (o *Orchestrator) Active() *Session { return o.active }

// Phase returns the lifecycle position of the current session.
func (o *Orchestrator) Phase() Phase { return o.phase }

// InFlight reports whether an invocation is outstanding.
func (o *Orchestrator) InFlight() bool {
	return o.phase == PhasePending || o.phase == PhaseInFlight
}

// Snapshot returns the coalesced progress view, with ok=false once the
// session settled (or before any session began).
func (o *Orchestrator) Snapshot() (progress.Snapshot, bool) {
	if o.snapshot == nil {
		return progress.Snapshot{}, false
	}
	return *o.snapshot, true
}

// Transcript exposes the session's log buffer. The orchestrator stays the
// only writer; callers read or clear it on the same dispatch goroutine.
func (o *Orchestrator) Transcript() *transcript.Buffer { return &o.transcript }

// ResultMessage returns the success message of the last settled session.
func (o *Orchestrator) ResultMessage() string { return o.resultMsg }

// ErrorMessage returns the failure or validation message, if any.
func (o *Orchestrator) ErrorMessage() string { return o.errMsg }
