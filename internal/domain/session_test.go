package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionFrame(seq uint64, spineAngle float64) Measurement {
	return Measurement{
		SessionID:     "s1",
		Timestamp:     time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC).Add(time.Duration(seq) * 33 * time.Millisecond),
		FrameSequence: seq,
		Signals:       map[string]float64{"spineAngle": spineAngle},
	}
}

func newTestSession(t *testing.T) *SessionState {
	t.Helper()

	cfg := singleMetricConfig()
	require.NoError(t, cfg.Validate())
	return NewSessionState("s1", cfg, time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))
}

func TestSessionCountersSumToFrameCount(t *testing.T) {
	t.Parallel()

	session := newTestSession(t)
	now := session.StartTime()

	for seq := uint64(1); seq <= 40; seq++ {
		value := 5.0
		if seq >= 20 && seq < 30 {
			value = 15.0
		}
		_, _, err := session.SubmitFrame(sessionFrame(seq, value), now)
		require.NoError(t, err)
	}

	counters := session.Counters()
	assert.Equal(t, 40, counters.Total())
	assert.Positive(t, counters.Valid)
	assert.Positive(t, counters.Invalid)
	assert.Equal(t, 2, counters.Uncertain) // min samples is 3
}

func TestSessionRejectsOutOfOrderFrameWithoutMutation(t *testing.T) {
	t.Parallel()

	session := newTestSession(t)
	now := session.StartTime()

	for seq := uint64(1); seq <= 5; seq++ {
		_, _, err := session.SubmitFrame(sessionFrame(seq, 5), now)
		require.NoError(t, err)
	}

	before := session.Counters()
	verdictBefore := session.CurrentVerdict()

	for _, seq := range []uint64{5, 3} {
		_, ok, err := session.SubmitFrame(sessionFrame(seq, 15), now)
		require.ErrorIs(t, err, ErrOutOfOrderFrame)
		assert.False(t, ok)
	}

	assert.Equal(t, before, session.Counters())
	assert.Equal(t, verdictBefore, session.CurrentVerdict())

	// The stream continues as if the stale frames never arrived.
	_, _, err := session.SubmitFrame(sessionFrame(6, 5), now)
	require.NoError(t, err)
}

func TestSessionFirstFrameAcceptsAnySequence(t *testing.T) {
	t.Parallel()

	session := newTestSession(t)

	_, _, err := session.SubmitFrame(sessionFrame(41, 5), session.StartTime())
	require.NoError(t, err)

	_, _, err = session.SubmitFrame(sessionFrame(41, 5), session.StartTime())
	assert.ErrorIs(t, err, ErrOutOfOrderFrame)
}

func TestSessionEmitsDeviationAndCorrection(t *testing.T) {
	t.Parallel()

	session := newTestSession(t)
	now := session.StartTime()

	kinds := make([]FeedbackKind, 0, 2)
	for seq := uint64(1); seq <= 30; seq++ {
		value := 5.0
		if seq > 10 && seq <= 20 {
			value = 15.0
		}
		event, ok, err := session.SubmitFrame(sessionFrame(seq, value), now)
		require.NoError(t, err)
		if ok {
			kinds = append(kinds, event.Kind)
			assert.Equal(t, SessionID("s1"), event.SessionID)
			assert.False(t, event.Timestamp.IsZero())
		}
	}

	require.Equal(t, []FeedbackKind{FeedbackPostureDeviation, FeedbackPostureCorrected}, kinds)
}

func TestSessionPauseAndResume(t *testing.T) {
	t.Parallel()

	session := newTestSession(t)
	now := session.StartTime()

	_, _, err := session.SubmitFrame(sessionFrame(1, 5), now)
	require.NoError(t, err)

	require.NoError(t, session.Pause())
	assert.Equal(t, SessionPaused, session.Status())

	_, _, err = session.SubmitFrame(sessionFrame(2, 5), now)
	assert.ErrorIs(t, err, ErrSessionPaused)
	assert.ErrorIs(t, session.Pause(), ErrSessionPaused)

	require.NoError(t, session.Resume(now))
	assert.Equal(t, SessionActive, session.Status())
	assert.ErrorIs(t, session.Resume(now), ErrSessionNotPaused)

	// History and counters survive the pause.
	assert.Equal(t, 1, session.Counters().Total())
	_, _, err = session.SubmitFrame(sessionFrame(2, 5), now)
	require.NoError(t, err)
}

func TestSessionEndIsTerminal(t *testing.T) {
	t.Parallel()

	session := newTestSession(t)
	start := session.StartTime()

	for seq := uint64(1); seq <= 10; seq++ {
		_, _, err := session.SubmitFrame(sessionFrame(seq, 5), start)
		require.NoError(t, err)
	}

	summary, err := session.End(start.Add(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, SessionID("s1"), summary.SessionID)
	assert.Equal(t, time.Minute, summary.Duration)
	assert.Equal(t, 10, summary.TotalFrames)
	assert.Equal(t, VerdictValid, summary.FinalVerdict.Status)
	assert.InDelta(t, 0.8, summary.ValidFrameRatio, 1e-9) // 2 uncertain warmup frames
	assert.Empty(t, summary.DeviationEvents)

	_, err = session.End(start.Add(2 * time.Minute))
	assert.ErrorIs(t, err, ErrSessionClosed)

	_, _, err = session.SubmitFrame(sessionFrame(11, 5), start)
	assert.ErrorIs(t, err, ErrSessionClosed)

	assert.ErrorIs(t, session.Pause(), ErrSessionClosed)
	assert.ErrorIs(t, session.Resume(start), ErrSessionClosed)
}

func TestSessionSummaryCollectsDeviationEvents(t *testing.T) {
	t.Parallel()

	session := newTestSession(t)
	now := session.StartTime()

	seq := uint64(0)
	feed := func(n int, value float64) {
		for i := 0; i < n; i++ {
			seq++
			_, _, err := session.SubmitFrame(sessionFrame(seq, value), now)
			require.NoError(t, err)
		}
	}

	feed(10, 5)  // settle valid
	feed(10, 15) // first deviation
	feed(10, 5)  // correction
	feed(10, 15) // second deviation

	summary, err := session.End(now.Add(time.Minute))
	require.NoError(t, err)

	require.Len(t, summary.DeviationEvents, 2)
	for _, event := range summary.DeviationEvents {
		assert.Equal(t, FeedbackPostureDeviation, event.Kind)
		assert.Equal(t, "spineAngle", event.Detail.Metric)
	}
}

func TestSessionEmptySummary(t *testing.T) {
	t.Parallel()

	session := newTestSession(t)

	summary, err := session.End(session.StartTime())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalFrames)
	assert.Equal(t, 0.0, summary.ValidFrameRatio)
	assert.Equal(t, VerdictUncertain, summary.FinalVerdict.Status)
}
