package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() SessionConfig {
	return SessionConfig{
		WindowSize:        5,
		MinSamples:        3,
		NoiseTolerance:    0.6,
		MilestoneInterval: 30,
		MetricPriority:    []string{"spineAngle", "neckAngle"},
		Metrics: map[string]Range{
			"spineAngle": {Min: 0, Max: 10},
			"neckAngle":  {Min: -15, Max: 15},
		},
	}
}

func TestSessionConfigValidateAcceptsWellFormedConfig(t *testing.T) {
	t.Parallel()

	require.NoError(t, validConfig().Validate())
}

func TestSessionConfigValidateRejectsMalformedConfigs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*SessionConfig)
	}{
		{name: "zero window size", mutate: func(c *SessionConfig) { c.WindowSize = 0 }},
		{name: "min samples above window", mutate: func(c *SessionConfig) { c.MinSamples = 6 }},
		{name: "zero min samples", mutate: func(c *SessionConfig) { c.MinSamples = 0 }},
		{name: "zero noise tolerance", mutate: func(c *SessionConfig) { c.NoiseTolerance = 0 }},
		{name: "noise tolerance above one", mutate: func(c *SessionConfig) { c.NoiseTolerance = 1.5 }},
		{name: "zero milestone interval", mutate: func(c *SessionConfig) { c.MilestoneInterval = 0 }},
		{name: "no metrics", mutate: func(c *SessionConfig) { c.Metrics = nil; c.MetricPriority = nil }},
		{name: "inverted range", mutate: func(c *SessionConfig) { c.Metrics["spineAngle"] = Range{Min: 10, Max: 0} }},
		{name: "priority names unknown metric", mutate: func(c *SessionConfig) { c.MetricPriority = []string{"spineAngle", "elbowAngle"} }},
		{name: "duplicate priority entry", mutate: func(c *SessionConfig) { c.MetricPriority = []string{"spineAngle", "spineAngle"} }},
		{name: "partial priority", mutate: func(c *SessionConfig) { c.MetricPriority = []string{"spineAngle"} }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestSessionConfigOrderedMetricsPrefersPriority(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	assert.Equal(t, []string{"spineAngle", "neckAngle"}, cfg.OrderedMetrics())
}

func TestSessionConfigOrderedMetricsFallsBackToLexicalOrder(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.MetricPriority = nil
	assert.Equal(t, []string{"neckAngle", "spineAngle"}, cfg.OrderedMetrics())
}

func TestRangeDistance(t *testing.T) {
	t.Parallel()

	r := Range{Min: 0, Max: 10}
	assert.Equal(t, 0.0, r.Distance(5))
	assert.Equal(t, 0.0, r.Distance(10))
	assert.Equal(t, 5.0, r.Distance(15))
	assert.Equal(t, 2.0, r.Distance(-2))
}

func TestProfileValidateRequiresName(t *testing.T) {
	t.Parallel()

	profile := Profile{Config: validConfig()}
	err := profile.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}
