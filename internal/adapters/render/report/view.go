package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/avellar-dev/posture-coach/internal/application"
	"github.com/avellar-dev/posture-coach/internal/domain"
)

type RenderOptions struct {
	Now time.Time
}

func renderSummaryView(summary domain.SessionSummary, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Posture Session Summary"),
		s.session.Render(fmt.Sprintf("session %s", summary.SessionID)),
		s.detail.Render(fmt.Sprintf("duration: %s", formatDuration(summary.Duration))),
		s.detail.Render(fmt.Sprintf(
			"frames: %d (valid %d / invalid %d / uncertain %d)",
			summary.TotalFrames,
			summary.Counters.Valid,
			summary.Counters.Invalid,
			summary.Counters.Uncertain,
		)),
		validRatioLine(summary, s),
		finalVerdictLine(summary.FinalVerdict, s),
	}

	lines = append(lines, s.section.Render(renderDeviations(summary, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSessionsView(snapshot application.RegistrySnapshot, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Active Posture Sessions"),
		s.header.Render(fmt.Sprintf("sessions: %d", len(snapshot.Sessions))),
	}

	if len(snapshot.Sessions) == 0 {
		lines = append(lines, s.empty.Render("No live sessions."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, info := range snapshot.Sessions {
		lines = append(lines, s.section.Render(renderSessionLine(info, snapshot.TakenAt, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSessionLine(info application.SessionInfo, now time.Time, s styles) string {
	parts := []string{
		s.session.Render(fmt.Sprintf("%s (%s)", info.ID, info.Status)),
		s.detail.Render(fmt.Sprintf(
			"frames: %d, verdict: %s",
			info.TotalFrames,
			verdictLabel(info.CurrentVerdict),
		)),
	}

	if !now.IsZero() && !info.LastActivity.IsZero() {
		idle := now.Sub(info.LastActivity)
		if idle > 0 {
			parts = append(parts, s.eventMeta.Render(fmt.Sprintf("last frame %s ago", formatDuration(idle))))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderDeviations(summary domain.SessionSummary, s styles) string {
	if len(summary.DeviationEvents) == 0 {
		return s.empty.Render("No posture deviations recorded.")
	}

	lines := make([]string, 0, len(summary.DeviationEvents)+1)
	lines = append(lines, s.header.Render(fmt.Sprintf("deviations: %d", len(summary.DeviationEvents))))
	for _, event := range summary.DeviationEvents {
		offset := event.Timestamp.Sub(summary.StartTime)
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.metricKey.Render(event.Detail.Metric),
			" ",
			s.bad.Render(fmt.Sprintf("+%.1f out of range", event.Detail.Deviation)),
			" ",
			s.eventMeta.Render(fmt.Sprintf("at %s", formatDuration(offset))),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func validRatioLine(summary domain.SessionSummary, s styles) string {
	percent := summary.ValidFrameRatio * 100
	bar := renderProgressBar(percent, 24, s)
	label := s.metricKey.Render("valid frames:")
	value := s.detail.Render(fmt.Sprintf("%3.0f%%", percent))

	return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", bar, " ", value)
}

func finalVerdictLine(verdict domain.Verdict, s styles) string {
	label := s.metricKey.Render("final verdict:")

	var value string
	switch verdict.Status {
	case domain.VerdictValid:
		value = s.good.Render("valid")
	case domain.VerdictInvalid:
		value = s.bad.Render(verdictLabel(verdict))
	default:
		value = s.faint.Render("uncertain")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", value)
}

func verdictLabel(verdict domain.Verdict) string {
	if verdict.Status == domain.VerdictInvalid && verdict.Metric != "" {
		return fmt.Sprintf("invalid (%s)", verdict.Metric)
	}
	return string(verdict.Status)
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	fraction := clampPercent(percent) / 100.0
	filled := int(math.Round(float64(width) * fraction))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	empty := width - filled
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", empty))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)

	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) - minutes*60
		return fmt.Sprintf("%dm%02ds", minutes, seconds)
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) - hours*60
	return fmt.Sprintf("%dh%02dm", hours, minutes)
}
