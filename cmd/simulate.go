package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/avellar-dev/posture-coach/internal/adapters/render/report"
	"github.com/avellar-dev/posture-coach/internal/domain"
)

type simulateFlags struct {
	profile  string
	frames   int
	sessions int
	seed     int64
	noTUI    bool
}

func newSimulateCmd(app *app) *cobra.Command {
	flags := simulateFlags{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Drive synthetic measurement streams through the session engine",
		Long:  "simulate starts one or more sessions, feeds them generated posture measurements (with periodic deviation bursts), then ends each session and prints its summary. Use --seed for reproducible runs.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.frames < 1 {
				return fmt.Errorf("frames must be at least 1, got %d", flags.frames)
			}
			if flags.sessions < 1 {
				return fmt.Errorf("sessions must be at least 1, got %d", flags.sessions)
			}

			profile, err := app.profiles.GetByName(cmd.Context(), flags.profile)
			if err != nil {
				return err
			}

			summaries := make([]domain.SessionSummary, flags.sessions)
			eventCounts := make([]int, flags.sessions)

			run := func(ctx context.Context) error {
				return runSimulation(ctx, app, profile, flags, summaries, eventCounts)
			}

			if flags.noTUI {
				if err := run(cmd.Context()); err != nil {
					return err
				}
			} else {
				label := fmt.Sprintf("Simulating %d session(s) of %d frames...", flags.sessions, flags.frames)
				if err := runSimulationSpinner(cmd.Context(), cmd.ErrOrStderr(), label, run); err != nil {
					return err
				}
			}

			for i, summary := range summaries {
				output, err := report.RenderSummary(summary, report.RenderOptions{Now: app.now()})
				if err != nil {
					return fmt.Errorf("render summary: %w", err)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), output)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "feedback events: %d\n", eventCounts[i])
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.profile, "profile", "", "exercise profile to simulate")
	cmd.Flags().IntVar(&flags.frames, "frames", 300, "frames to feed per session")
	cmd.Flags().IntVar(&flags.sessions, "sessions", 1, "concurrent sessions to run")
	cmd.Flags().Int64Var(&flags.seed, "seed", time.Now().UnixNano(), "random seed for the generated stream")
	cmd.Flags().BoolVar(&flags.noTUI, "no-tui", false, "disable the progress spinner")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func runSimulation(
	ctx context.Context,
	app *app,
	profile domain.Profile,
	flags simulateFlags,
	summaries []domain.SessionSummary,
	eventCounts []int,
) error {
	var wg sync.WaitGroup
	errs := make([]error, flags.sessions)

	for i := 0; i < flags.sessions; i++ {
		id := domain.SessionID(fmt.Sprintf("sim-%d", i+1))
		if _, err := app.manager.StartSession(ctx, id, profile.Config); err != nil {
			return err
		}

		wg.Add(1)
		go func(idx int, id domain.SessionID) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(flags.seed + int64(idx)))
			gen := newStreamGenerator(profile.Config, rng)
			start := app.now()

			for frame := 0; frame < flags.frames; frame++ {
				measurement := domain.Measurement{
					SessionID:     id,
					Timestamp:     start.Add(time.Duration(frame) * 33 * time.Millisecond),
					FrameSequence: uint64(frame + 1),
					Signals:       gen.next(frame),
				}

				if _, ok, err := app.manager.SubmitFrame(ctx, measurement); err != nil {
					errs[idx] = err
					return
				} else if ok {
					eventCounts[idx]++
				}
			}

			summary, err := app.manager.EndSession(ctx, id)
			if err != nil {
				errs[idx] = err
				return
			}
			summaries[idx] = summary
		}(i, id)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// streamGenerator produces mostly in-range signals with periodic
// deviation bursts long enough to flip the verdict despite the noise
// tolerance, so simulated runs exercise the full feedback cycle.
type streamGenerator struct {
	cfg         domain.SessionConfig
	rng         *rand.Rand
	burstEvery  int
	burstLength int
}

func newStreamGenerator(cfg domain.SessionConfig, rng *rand.Rand) *streamGenerator {
	burstLength := cfg.WindowSize * 2
	return &streamGenerator{
		cfg:         cfg,
		rng:         rng,
		burstEvery:  burstLength * 4,
		burstLength: burstLength,
	}
}

func (g *streamGenerator) next(frame int) map[string]float64 {
	inBurst := frame%g.burstEvery >= g.burstEvery-g.burstLength
	primary := g.cfg.OrderedMetrics()[0]

	signals := make(map[string]float64, len(g.cfg.Metrics))
	for name, r := range g.cfg.Metrics {
		mid := (r.Min + r.Max) / 2
		span := r.Max - r.Min
		value := mid + (g.rng.Float64()-0.5)*span*0.4

		if inBurst && name == primary {
			value = r.Max + span*0.25 + g.rng.Float64()*span*0.1
		}
		signals[name] = value
	}

	return signals
}
