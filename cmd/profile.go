package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avellar-dev/posture-coach/internal/domain"
)

func newProfileCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage exercise profiles",
	}

	cmd.AddCommand(
		newProfileListCmd(app),
		newProfileShowCmd(app),
		newProfileValidateCmd(app),
		newProfileInitCmd(app),
	)

	return cmd
}

func newProfileListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured exercise profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles, err := app.profiles.List(cmd.Context())
			if err != nil {
				return err
			}

			if len(profiles) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No profiles configured. Run 'ptc profile init' to create starter profiles.")
				return nil
			}

			for _, profile := range profiles {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (metrics: %d, window: %d)\n",
					profile.Name, len(profile.Config.Metrics), profile.Config.WindowSize)
			}
			return nil
		},
	}
}

func newProfileShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one profile's decision policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := app.profiles.GetByName(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			cfg := profile.Config
			_, _ = fmt.Fprintf(out, "profile: %s\n", profile.Name)
			_, _ = fmt.Fprintf(out, "window size: %d\n", cfg.WindowSize)
			_, _ = fmt.Fprintf(out, "min samples: %d\n", cfg.MinSamples)
			_, _ = fmt.Fprintf(out, "noise tolerance: %g\n", cfg.NoiseTolerance)
			_, _ = fmt.Fprintf(out, "milestone interval: %d\n", cfg.MilestoneInterval)
			for _, name := range cfg.OrderedMetrics() {
				r := cfg.Metrics[name]
				_, _ = fmt.Fprintf(out, "metric %s: [%g, %g]\n", name, r.Min, r.Max)
			}
			return nil
		},
	}
}

func newProfileValidateCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate every configured profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles, err := app.profiles.List(cmd.Context())
			if err != nil {
				return err
			}

			var failed bool
			for _, profile := range profiles {
				if err := profile.Validate(); err != nil {
					failed = true
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", profile.Name, err)
					continue
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", profile.Name)
			}

			if failed {
				return errors.New("one or more profiles are invalid")
			}
			return nil
		},
	}
}

func newProfileInitCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write starter profiles to the profiles file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, profile := range starterProfiles() {
				if err := app.profiles.Save(cmd.Context(), profile); err != nil {
					return fmt.Errorf("save profile %s: %w", profile.Name, err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote profile %s\n", profile.Name)
			}
			return nil
		},
	}
}

func starterProfiles() []domain.Profile {
	return []domain.Profile{
		{
			Name: "plank",
			Config: domain.SessionConfig{
				WindowSize:        15,
				MinSamples:        5,
				NoiseTolerance:    0.6,
				MilestoneInterval: 90,
				MetricPriority:    []string{"spineAngle", "hipAngle", "neckAngle"},
				Metrics: map[string]domain.Range{
					"spineAngle": {Min: -8, Max: 8},
					"hipAngle":   {Min: 160, Max: 185},
					"neckAngle":  {Min: -15, Max: 15},
				},
			},
		},
		{
			Name: "squat",
			Config: domain.SessionConfig{
				WindowSize:        10,
				MinSamples:        4,
				NoiseTolerance:    0.6,
				MilestoneInterval: 60,
				MetricPriority:    []string{"kneeAngle", "spineAngle"},
				Metrics: map[string]domain.Range{
					"kneeAngle":  {Min: 70, Max: 175},
					"spineAngle": {Min: -20, Max: 20},
				},
			},
		},
	}
}
