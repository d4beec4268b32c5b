package domain

import "time"

type SessionID string

// Measurement is one frame's worth of posture signal, produced by the
// external pose-extraction collaborator. It is treated as immutable once
// submitted; callers must not mutate Signals afterwards.
type Measurement struct {
	SessionID     SessionID
	Timestamp     time.Time
	FrameSequence uint64
	Signals       map[string]float64
}

// Signal returns the value of a named posture metric and whether the
// frame carried it at all.
func (m Measurement) Signal(name string) (float64, bool) {
	value, ok := m.Signals[name]
	return value, ok
}
