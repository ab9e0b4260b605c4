// Package session owns the lifecycle of the single active download attempt:
// minting session identities, routing realtime notifications to the right
// session, merging progress, and reconciling the terminal result.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tubeget/tubeget/internal/ytdlp"
)

// Session identifies one user-initiated download attempt. It is never
// mutated after creation; superseding it just means a newer session became
// the active one, while in-flight events tagged with the old id keep a
// stable identity to be rejected against.
type Session struct {
	ID        string
	Request   ytdlp.Request
	CreatedAt time.Time
}

// NewID mints the identity for one download attempt. UUIDs come from the
// crypto-backed generator; when that fails we degrade to a millisecond
// timestamp, which is stable but not collision-free under rapid resubmits.
func NewID() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	return fmt.Sprintf("session-%d", time.Now().UnixMilli())
}
