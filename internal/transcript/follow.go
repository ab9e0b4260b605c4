package transcript

// DefaultFollowThreshold is how close to the bottom, in display lines, the
// view must sit for autoscroll to stay engaged.
const DefaultFollowThreshold = 12

// FollowState decides whether the transcript view keeps snapping to new
// output. It is re-derived from the live scroll position on every
// interaction, never toggled one-shot, so a reader who scrolled up during a
// long run is not yanked back down by the next line.
type FollowState struct {
	Threshold int
	following bool
}

// NewFollowState returns a follow state that starts engaged.
func NewFollowState() FollowState {
	return FollowState{Threshold: DefaultFollowThreshold, following: true}
}

// Reset re-engages following. Called when a new session replaces the
// transcript.
func (f *FollowState) Reset() {
	f.following = true
}

// OnScroll records a scroll interaction that left the view the given number
// of lines above the bottom edge.
func (f *FollowState) OnScroll(distanceFromBottom int) {
	f.following = distanceFromBottom <= f.Threshold
}

// Following reports whether appended content should force the view to the
// bottom. When false the current scroll offset is left untouched.
func (f FollowState) Following() bool { return f.following }
