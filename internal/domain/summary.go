package domain

import "time"

// VerdictCounters tracks how many frames resolved to each verdict state
// over a session's lifetime.
type VerdictCounters struct {
	Valid     int
	Invalid   int
	Uncertain int
}

func (c VerdictCounters) Total() int {
	return c.Valid + c.Invalid + c.Uncertain
}

func (c *VerdictCounters) record(status VerdictStatus) {
	switch status {
	case VerdictValid:
		c.Valid++
	case VerdictInvalid:
		c.Invalid++
	case VerdictUncertain:
		c.Uncertain++
	}
}

// SessionSummary is the immutable end-of-session report, produced exactly
// once when a session ends.
type SessionSummary struct {
	SessionID       SessionID
	StartTime       time.Time
	Duration        time.Duration
	TotalFrames     int
	Counters        VerdictCounters
	ValidFrameRatio float64
	// DeviationEvents are the PostureDeviation events of the session in
	// emission order.
	DeviationEvents []FeedbackEvent
	FinalVerdict    Verdict
}
