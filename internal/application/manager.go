package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avellar-dev/posture-coach/internal/domain"
	"github.com/avellar-dev/posture-coach/internal/ports"
)

// sessionHandle pairs one session's state with the mutex that serializes
// its frames. Frames for the same session never overlap; frames for
// distinct sessions never contend.
type sessionHandle struct {
	mu    sync.Mutex
	state *domain.SessionState
}

// SessionManager is the process-wide registry of live sessions. It owns
// the only long-lived references to session state; everything the caller
// sees is a plain value (Measurement in, FeedbackEvent/SessionSummary
// out). The registry lock covers insertion, removal and lookup only —
// frame dispatch runs under the per-session mutex.
type SessionManager struct {
	clock       ports.Clock
	logger      *slog.Logger
	maxSessions int

	mu       sync.RWMutex
	sessions map[domain.SessionID]*sessionHandle
}

// NewSessionManager creates an empty registry. maxSessions bounds the
// number of simultaneously live sessions; zero means unbounded. A nil
// clock falls back to the system clock, a nil logger to slog.Default.
func NewSessionManager(clock ports.Clock, logger *slog.Logger, maxSessions int) *SessionManager {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SessionManager{
		clock:       clock,
		logger:      logger,
		maxSessions: maxSessions,
		sessions:    make(map[domain.SessionID]*sessionHandle),
	}
}

// StartSession registers a new session under the given id, or under a
// generated id when the caller supplies none. The configuration is
// validated here; a session never starts with a malformed policy.
func (m *SessionManager) StartSession(ctx context.Context, id domain.SessionID, cfg domain.SessionConfig) (domain.SessionID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if id == "" {
		id = domain.SessionID(uuid.NewString())
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[id]; exists {
		return "", fmt.Errorf("start session %s: %w", id, domain.ErrDuplicateSession)
	}
	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		return "", fmt.Errorf("start session %s: %d live sessions: %w", id, len(m.sessions), domain.ErrSessionLimit)
	}

	m.sessions[id] = &sessionHandle{state: domain.NewSessionState(id, cfg, m.clock.Now())}
	m.logger.Info("session started", "session_id", string(id), "window_size", cfg.WindowSize, "metrics", len(cfg.Metrics))

	return id, nil
}

// SubmitFrame routes a measurement to its session and returns the
// feedback event the frame produced, if any. Unknown session ids fail
// with ErrUnknownSession; everything else is the session's own verdict
// (ErrOutOfOrderFrame, ErrSessionPaused, ErrSessionClosed).
func (m *SessionManager) SubmitFrame(ctx context.Context, measurement domain.Measurement) (domain.FeedbackEvent, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.FeedbackEvent{}, false, err
	}

	handle, err := m.lookup(measurement.SessionID)
	if err != nil {
		return domain.FeedbackEvent{}, false, err
	}

	handle.mu.Lock()
	defer handle.mu.Unlock()

	return handle.state.SubmitFrame(measurement, m.clock.Now())
}

// EndSession finalizes a session into its summary and removes it from
// the registry. The transition is terminal; the id becomes available for
// reuse afterwards. Frames already in flight either complete before the
// session ends or fail with ErrSessionClosed — never against
// half-discarded state.
func (m *SessionManager) EndSession(ctx context.Context, id domain.SessionID) (domain.SessionSummary, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionSummary{}, err
	}

	handle, err := m.lookup(id)
	if err != nil {
		return domain.SessionSummary{}, err
	}

	handle.mu.Lock()
	summary, err := handle.state.End(m.clock.Now())
	handle.mu.Unlock()
	if err != nil {
		return domain.SessionSummary{}, err
	}

	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()

	m.logger.Info("session ended",
		"session_id", string(id),
		"frames", summary.TotalFrames,
		"valid_ratio", summary.ValidFrameRatio,
		"deviations", len(summary.DeviationEvents),
	)

	return summary, nil
}

// PauseSession suspends frame intake for a session without discarding
// its history or counters.
func (m *SessionManager) PauseSession(ctx context.Context, id domain.SessionID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	handle, err := m.lookup(id)
	if err != nil {
		return err
	}

	handle.mu.Lock()
	defer handle.mu.Unlock()

	if err := handle.state.Pause(); err != nil {
		return err
	}
	m.logger.Info("session paused", "session_id", string(id))
	return nil
}

func (m *SessionManager) ResumeSession(ctx context.Context, id domain.SessionID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	handle, err := m.lookup(id)
	if err != nil {
		return err
	}

	handle.mu.Lock()
	defer handle.mu.Unlock()

	if err := handle.state.Resume(m.clock.Now()); err != nil {
		return err
	}
	m.logger.Info("session resumed", "session_id", string(id))
	return nil
}

// ListActiveSessions returns the ids of all live sessions, paused ones
// included, in sorted order.
func (m *SessionManager) ListActiveSessions() []domain.SessionID {
	m.mu.RLock()
	ids := make([]domain.SessionID, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ExpireIdle ends and removes every session whose last activity is older
// than the given age, returning the expired ids. When a session idles out
// is the caller's policy; ExpireIdle is only the mechanism, invoked on
// whatever cadence the caller chooses.
func (m *SessionManager) ExpireIdle(olderThan time.Duration) []domain.SessionID {
	now := m.clock.Now()

	m.mu.RLock()
	handles := make(map[domain.SessionID]*sessionHandle, len(m.sessions))
	for id, handle := range m.sessions {
		handles[id] = handle
	}
	m.mu.RUnlock()

	expired := make([]domain.SessionID, 0)
	for id, handle := range handles {
		handle.mu.Lock()
		idle := now.Sub(handle.state.LastActivity()) > olderThan
		if idle && handle.state.Status() != domain.SessionEnded {
			if _, err := handle.state.End(now); err == nil {
				expired = append(expired, id)
			}
		}
		handle.mu.Unlock()
	}

	if len(expired) == 0 {
		return expired
	}

	m.mu.Lock()
	for _, id := range expired {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	sort.Slice(expired, func(i, j int) bool { return expired[i] < expired[j] })
	m.logger.Info("idle sessions expired", "count", len(expired))
	return expired
}

// Snapshot captures per-session observability data without disturbing
// frame processing beyond a brief per-session lock.
func (m *SessionManager) Snapshot() RegistrySnapshot {
	m.mu.RLock()
	handles := make(map[domain.SessionID]*sessionHandle, len(m.sessions))
	for id, handle := range m.sessions {
		handles[id] = handle
	}
	m.mu.RUnlock()

	snapshot := RegistrySnapshot{
		TakenAt:  m.clock.Now(),
		Sessions: make([]SessionInfo, 0, len(handles)),
	}
	for id, handle := range handles {
		handle.mu.Lock()
		snapshot.Sessions = append(snapshot.Sessions, SessionInfo{
			ID:             id,
			Status:         handle.state.Status(),
			StartTime:      handle.state.StartTime(),
			LastActivity:   handle.state.LastActivity(),
			TotalFrames:    handle.state.Counters().Total(),
			Counters:       handle.state.Counters(),
			CurrentVerdict: handle.state.CurrentVerdict(),
		})
		handle.mu.Unlock()
	}

	sort.Slice(snapshot.Sessions, func(i, j int) bool {
		return snapshot.Sessions[i].ID < snapshot.Sessions[j].ID
	})
	return snapshot
}

func (m *SessionManager) lookup(id domain.SessionID) (*sessionHandle, error) {
	m.mu.RLock()
	handle, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrUnknownSession)
	}
	return handle, nil
}
