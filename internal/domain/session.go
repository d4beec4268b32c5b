package domain

import (
	"fmt"
	"time"
)

// SessionStatus is the lifecycle state of a session.
type SessionStatus string

const (
	SessionActive SessionStatus = "active"
	SessionPaused SessionStatus = "paused"
	SessionEnded  SessionStatus = "ended"
)

// SessionState owns one session's history buffer, verdict run and
// counters. It is a pure state machine: SubmitFrame mutates state and
// optionally returns one feedback event, nothing is pushed elsewhere.
// SessionState is not safe for concurrent use; the session manager
// serializes access per session.
type SessionState struct {
	id        SessionID
	startTime time.Time
	cfg       SessionConfig

	buffer    *HistoryBuffer
	validator *ValidationEngine
	feedback  *FeedbackGenerator

	current   Verdict
	runLength int

	lastSequence uint64
	hasFrames    bool

	counters   VerdictCounters
	deviations []FeedbackEvent

	status       SessionStatus
	lastActivity time.Time
}

// NewSessionState creates an active session. The configuration must
// already be validated; NewSessionState does not re-check it.
func NewSessionState(id SessionID, cfg SessionConfig, now time.Time) *SessionState {
	return &SessionState{
		id:           id,
		startTime:    now,
		cfg:          cfg,
		buffer:       NewHistoryBuffer(cfg.WindowSize),
		validator:    NewValidationEngine(cfg),
		feedback:     NewFeedbackGenerator(cfg.MilestoneInterval),
		current:      Uncertain(),
		status:       SessionActive,
		lastActivity: now,
	}
}

func (s *SessionState) ID() SessionID           { return s.id }
func (s *SessionState) StartTime() time.Time    { return s.startTime }
func (s *SessionState) Status() SessionStatus   { return s.status }
func (s *SessionState) CurrentVerdict() Verdict { return s.current }
func (s *SessionState) Counters() VerdictCounters {
	return s.counters
}

// LastActivity is the time of the most recent accepted frame, or the
// session start when no frame has arrived yet. Callers use it for their
// idle-reaping policy.
func (s *SessionState) LastActivity() time.Time { return s.lastActivity }

// SubmitFrame runs the full per-frame pipeline: sequence check, history
// push, window evaluation, feedback transition. A failed submit leaves
// the state exactly as it was.
func (s *SessionState) SubmitFrame(m Measurement, now time.Time) (FeedbackEvent, bool, error) {
	switch s.status {
	case SessionEnded:
		return FeedbackEvent{}, false, fmt.Errorf("session %s: %w", s.id, ErrSessionClosed)
	case SessionPaused:
		return FeedbackEvent{}, false, fmt.Errorf("session %s: %w", s.id, ErrSessionPaused)
	}

	if s.hasFrames && m.FrameSequence <= s.lastSequence {
		return FeedbackEvent{}, false, fmt.Errorf(
			"session %s: frame sequence %d after %d: %w",
			s.id, m.FrameSequence, s.lastSequence, ErrOutOfOrderFrame,
		)
	}

	s.buffer.Push(m)
	s.lastSequence = m.FrameSequence
	s.hasFrames = true
	s.lastActivity = now

	previous := s.current
	verdict := s.validator.Evaluate(s.buffer.Window())
	if verdict.SameState(previous) {
		s.runLength++
	} else {
		s.runLength = 1
	}
	s.current = verdict
	s.counters.record(verdict.Status)

	event, ok := s.feedback.OnVerdict(previous, verdict, s.runLength)
	if !ok {
		return FeedbackEvent{}, false, nil
	}

	event.SessionID = s.id
	event.Timestamp = m.Timestamp
	if event.Kind == FeedbackPostureDeviation {
		s.deviations = append(s.deviations, event)
	}
	return event, true, nil
}

// Pause suspends frame intake. History and counters survive a pause.
func (s *SessionState) Pause() error {
	switch s.status {
	case SessionEnded:
		return fmt.Errorf("session %s: %w", s.id, ErrSessionClosed)
	case SessionPaused:
		return fmt.Errorf("session %s: %w", s.id, ErrSessionPaused)
	}
	s.status = SessionPaused
	return nil
}

func (s *SessionState) Resume(now time.Time) error {
	switch s.status {
	case SessionEnded:
		return fmt.Errorf("session %s: %w", s.id, ErrSessionClosed)
	case SessionActive:
		return fmt.Errorf("session %s: %w", s.id, ErrSessionNotPaused)
	}
	s.status = SessionActive
	s.lastActivity = now
	return nil
}

// End freezes the session into its summary. The transition is terminal:
// a second End, like any later SubmitFrame, fails with ErrSessionClosed.
func (s *SessionState) End(now time.Time) (SessionSummary, error) {
	if s.status == SessionEnded {
		return SessionSummary{}, fmt.Errorf("session %s: %w", s.id, ErrSessionClosed)
	}
	s.status = SessionEnded

	total := s.counters.Total()
	ratio := 0.0
	if total > 0 {
		ratio = float64(s.counters.Valid) / float64(total)
	}

	deviations := make([]FeedbackEvent, len(s.deviations))
	copy(deviations, s.deviations)

	return SessionSummary{
		SessionID:       s.id,
		StartTime:       s.startTime,
		Duration:        now.Sub(s.startTime),
		TotalFrames:     total,
		Counters:        s.counters,
		ValidFrameRatio: ratio,
		DeviationEvents: deviations,
		FinalVerdict:    s.current,
	}, nil
}
