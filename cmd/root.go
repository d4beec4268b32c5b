package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ptc",
		Short:         "Posture Training Coach (ptc): session engine for posture feedback",
		Long:          "ptc runs the posture session engine from the terminal: manage exercise profiles, drive simulated measurement streams through the decision pipeline, and inspect session summaries.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newProfileCmd(app),
		newSimulateCmd(app),
	)

	return rootCmd
}
