package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tutorloop",
	Short: "Goal-to-curriculum learning service",
	Long: "Tutorloop turns a free-text learning goal into a concept dependency graph\n" +
		"and runs a mastery loop over it: explain, example, recall, transfer.",
	RunE: runServe,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Int("port", 0, "HTTP port (overrides TUTORLOOP_PORT env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(graphsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
