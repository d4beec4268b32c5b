package toml

import (
	"fmt"

	"github.com/avellar-dev/posture-coach/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Profiles []profileSchema `toml:"profiles"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported profiles schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type profileSchema struct {
	Name              string                 `toml:"name"`
	WindowSize        int                    `toml:"window_size"`
	MinSamples        int                    `toml:"min_samples"`
	NoiseTolerance    float64                `toml:"noise_tolerance"`
	MilestoneInterval int                    `toml:"milestone_interval"`
	MetricPriority    []string               `toml:"metric_priority,omitempty"`
	Metrics           map[string]rangeSchema `toml:"metrics"`
}

type rangeSchema struct {
	Min float64 `toml:"min"`
	Max float64 `toml:"max"`
}

func toSchema(profile domain.Profile) profileSchema {
	metrics := make(map[string]rangeSchema, len(profile.Config.Metrics))
	for name, r := range profile.Config.Metrics {
		metrics[name] = rangeSchema{Min: r.Min, Max: r.Max}
	}

	return profileSchema{
		Name:              profile.Name,
		WindowSize:        profile.Config.WindowSize,
		MinSamples:        profile.Config.MinSamples,
		NoiseTolerance:    profile.Config.NoiseTolerance,
		MilestoneInterval: profile.Config.MilestoneInterval,
		MetricPriority:    profile.Config.MetricPriority,
		Metrics:           metrics,
	}
}

func fromSchema(entry profileSchema) domain.Profile {
	metrics := make(map[string]domain.Range, len(entry.Metrics))
	for name, r := range entry.Metrics {
		metrics[name] = domain.Range{Min: r.Min, Max: r.Max}
	}

	return domain.Profile{
		Name: entry.Name,
		Config: domain.SessionConfig{
			WindowSize:        entry.WindowSize,
			MinSamples:        entry.MinSamples,
			NoiseTolerance:    entry.NoiseTolerance,
			MilestoneInterval: entry.MilestoneInterval,
			MetricPriority:    entry.MetricPriority,
			Metrics:           metrics,
		},
	}
}
