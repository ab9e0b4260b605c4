package transcript

import "strings"

// StderrPrefix marks lines that arrived on the tool's standard error.
const StderrPrefix = "[stderr] "

// Placeholder is shown when a command finished without producing any output.
const Placeholder = "command finished"

// Stream tags for appended lines.
const (
	StreamStdout = "stdout"
	StreamStderr = "stderr"
)

// Buffer is the ordered log transcript of the active session. Lines are
// append-only while the session runs; the whole buffer is replaced when a
// new session starts or when the user clears it.
type Buffer struct {
	lines    []string
	realtime bool
}

// Append records one log line in arrival order.
func (b *Buffer) Append(line, stream string) {
	if stream == StreamStderr {
		line = StderrPrefix + line
	}
	b.lines = append(b.lines, line)
	b.realtime = true
}

// Reset empties the transcript and re-arms the batch fallback. Called at the
// start of every session.
func (b *Buffer) Reset() {
	b.lines = nil
	b.realtime = false
}

// Clear empties the transcript on user request. The realtime flag is
// session-scoped and survives, so a later ReplaceIfEmpty stays a no-op.
func (b *Buffer) Clear() {
	b.lines = nil
}

// ReplaceIfEmpty swaps in the command's combined captured output, but only
// when no realtime line was ever appended for the current session. If the
// transcript is still empty afterwards it gets the placeholder text.
func (b *Buffer) ReplaceIfEmpty(combined string) {
	if !b.realtime {
		if text := strings.TrimSpace(combined); text != "" {
			b.lines = []string{text}
		}
	}
	if len(b.lines) == 0 {
		b.lines = []string{Placeholder}
	}
}

// SawRealtime reports whether any realtime line landed this session.
func (b *Buffer) SawRealtime() bool { return b.realtime }

// Len returns the number of transcript lines.
func (b *Buffer) Len() int { return len(b.lines) }

// String joins the transcript with newline separators, preserving order.
func (b *Buffer) String() string { return strings.Join(b.lines, "\n") }
