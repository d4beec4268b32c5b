package domain

// FeedbackGenerator maps verdict transitions to feedback events. It is
// the anti-flicker stage: feedback volume is bounded by the number of
// verdict transitions (plus the milestone cadence), independent of frame
// rate.
//
// Transition policy:
//   - Valid → Invalid emits PostureDeviation on the first frame of the
//     new run only; later Invalid frames of the same run stay silent.
//   - Invalid → Valid emits PostureCorrected immediately.
//   - Transitions into or out of Uncertain emit nothing; insufficient
//     data is not user-actionable.
//   - An unchanged Valid run emits SessionMilestone every
//     MilestoneInterval consecutive Valid frames.
type FeedbackGenerator struct {
	milestoneInterval int
}

func NewFeedbackGenerator(milestoneInterval int) *FeedbackGenerator {
	if milestoneInterval < 1 {
		milestoneInterval = 1
	}
	return &FeedbackGenerator{milestoneInterval: milestoneInterval}
}

// OnVerdict returns at most one event for the transition from previous to
// current. runLength is the number of consecutive frames, current frame
// included, holding the current verdict state. The returned event carries
// kind and detail only; the session stamps identity and time.
func (g *FeedbackGenerator) OnVerdict(previous, current Verdict, runLength int) (FeedbackEvent, bool) {
	if previous.SameState(current) {
		if current.Status == VerdictValid && runLength > 0 && runLength%g.milestoneInterval == 0 {
			return FeedbackEvent{Kind: FeedbackSessionMilestone}, true
		}
		return FeedbackEvent{}, false
	}

	switch {
	case previous.Status == VerdictValid && current.Status == VerdictInvalid:
		return FeedbackEvent{
			Kind:   FeedbackPostureDeviation,
			Detail: FeedbackDetail{Metric: current.Metric, Deviation: current.Deviation},
		}, true
	case previous.Status == VerdictInvalid && current.Status == VerdictValid:
		return FeedbackEvent{Kind: FeedbackPostureCorrected}, true
	default:
		// One side of the transition is Uncertain.
		return FeedbackEvent{}, false
	}
}
