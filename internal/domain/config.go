package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Range is the acceptable value band for one posture metric.
type Range struct {
	Min float64
	Max float64
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Distance returns how far a value sits outside the range, or 0 when it
// is inside.
func (r Range) Distance(v float64) float64 {
	switch {
	case v < r.Min:
		return r.Min - v
	case v > r.Max:
		return v - r.Max
	default:
		return 0
	}
}

// SessionConfig is the per-session decision policy, supplied at session
// start. It is a fixed, validated structure; sessions never pick up
// configuration changes after they begin.
type SessionConfig struct {
	// WindowSize is the history buffer capacity W.
	WindowSize int
	// MinSamples is the minimum window length required before the
	// validation engine commits to Valid/Invalid. Shorter windows yield
	// Uncertain.
	MinSamples int
	// NoiseTolerance is the fraction of in-window samples that must
	// violate a metric's range before the metric counts as out of range.
	// A window with fewer violators is treated as transient noise.
	NoiseTolerance float64
	// MilestoneInterval is the number of consecutive Valid frames between
	// SessionMilestone events.
	MilestoneInterval int
	// MetricPriority breaks ties between metrics that are simultaneously
	// out of range: the first listed metric wins. Empty means lexical
	// order over the configured metrics.
	MetricPriority []string
	// Metrics maps each evaluated posture metric to its acceptable range.
	Metrics map[string]Range
}

func (c SessionConfig) Validate() error {
	if c.WindowSize < 1 {
		return fmt.Errorf("%w: window size must be at least 1, got %d", ErrInvalidConfiguration, c.WindowSize)
	}
	if c.MinSamples < 1 || c.MinSamples > c.WindowSize {
		return fmt.Errorf("%w: min samples must be in [1, %d], got %d", ErrInvalidConfiguration, c.WindowSize, c.MinSamples)
	}
	if c.NoiseTolerance <= 0 || c.NoiseTolerance > 1 {
		return fmt.Errorf("%w: noise tolerance must be in (0, 1], got %g", ErrInvalidConfiguration, c.NoiseTolerance)
	}
	if c.MilestoneInterval < 1 {
		return fmt.Errorf("%w: milestone interval must be at least 1, got %d", ErrInvalidConfiguration, c.MilestoneInterval)
	}
	if len(c.Metrics) == 0 {
		return fmt.Errorf("%w: at least one metric range is required", ErrInvalidConfiguration)
	}
	for name, r := range c.Metrics {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: metric name is empty", ErrInvalidConfiguration)
		}
		if r.Min >= r.Max {
			return fmt.Errorf("%w: metric %q range min %g must be below max %g", ErrInvalidConfiguration, name, r.Min, r.Max)
		}
	}

	seen := make(map[string]struct{}, len(c.MetricPriority))
	for _, name := range c.MetricPriority {
		if _, ok := c.Metrics[name]; !ok {
			return fmt.Errorf("%w: priority entry %q has no configured range", ErrInvalidConfiguration, name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: priority entry %q listed twice", ErrInvalidConfiguration, name)
		}
		seen[name] = struct{}{}
	}
	if len(c.MetricPriority) > 0 && len(c.MetricPriority) != len(c.Metrics) {
		return fmt.Errorf("%w: priority lists %d of %d configured metrics", ErrInvalidConfiguration, len(c.MetricPriority), len(c.Metrics))
	}

	return nil
}

// OrderedMetrics returns the evaluation order: the configured priority,
// or lexical metric order when no priority is set. The order is the tie
// breaker between equally out-of-range metrics, so it must be stable.
func (c SessionConfig) OrderedMetrics() []string {
	if len(c.MetricPriority) > 0 {
		out := make([]string, len(c.MetricPriority))
		copy(out, c.MetricPriority)
		return out
	}

	out := make([]string, 0, len(c.Metrics))
	for name := range c.Metrics {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Profile is a named, reusable session configuration: one entry per
// supported exercise, loaded from the profiles file.
type Profile struct {
	Name   string
	Config SessionConfig
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: profile name is required", ErrInvalidConfiguration)
	}
	return p.Config.Validate()
}
