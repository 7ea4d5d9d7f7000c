package cmd

import (
	"github.com/spf13/cobra"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Interactively explore trip statistics",
	Long: `Ask for a city, a month and a day of the week, then print the
statistics for the matching trips. Raw trip rows can be paged five at a
time, and the session restarts until you answer no.

Examples:
  bikeshare explore
  bikeshare explore --data-dir ./data`,
	Args: cobra.NoArgs,
	RunE: runExplore,
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}

func runExplore(cmd *cobra.Command, args []string) error {
	return newExplorer(cmd).Interactive(commandContext(cmd))
}
