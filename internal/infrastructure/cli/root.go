package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "pulse",
	Version: Version,
	Short:   "Deterministic analytics for project tracking data",
	Long: `Pulse reads a project snapshot (tasks, sprints, team, time off) and
computes actionable insights from it:
1. How healthy is the project right now?
2. Which tasks are likely to slip, and by how much?
3. Will the sprint land, and is the team about to run out of capacity?`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}
