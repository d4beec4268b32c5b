package application

import (
	"time"

	"github.com/avellar-dev/posture-coach/internal/domain"
)

// SessionInfo is one session's observability view, safe to hand to
// callers: plain values only, no reference back into the registry.
type SessionInfo struct {
	ID             domain.SessionID
	Status         domain.SessionStatus
	StartTime      time.Time
	LastActivity   time.Time
	TotalFrames    int
	Counters       domain.VerdictCounters
	CurrentVerdict domain.Verdict
}

// RegistrySnapshot is a point-in-time view of every live session,
// sorted by id.
type RegistrySnapshot struct {
	TakenAt  time.Time
	Sessions []SessionInfo
}
