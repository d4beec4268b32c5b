package domain

import "time"

// FeedbackKind is the closed set of user-facing feedback event types.
type FeedbackKind string

const (
	FeedbackPostureCorrected FeedbackKind = "posture_corrected"
	FeedbackPostureDeviation FeedbackKind = "posture_deviation"
	FeedbackSessionMilestone FeedbackKind = "session_milestone"
)

// FeedbackDetail names the metric that triggered an event and the
// measured deviation outside its acceptable range. Milestone events carry
// no metric.
type FeedbackDetail struct {
	Metric    string
	Deviation float64
}

// FeedbackEvent is a single piece of user-facing feedback. The core emits
// events as return values only and never stores them beyond emission;
// delivery belongs to the caller.
type FeedbackEvent struct {
	SessionID SessionID
	Timestamp time.Time
	Kind      FeedbackKind
	Detail    FeedbackDetail
}
