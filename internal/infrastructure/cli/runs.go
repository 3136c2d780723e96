package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	runsVerify bool
	runsJSON   bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show the hash-chained log of engine runs",
	Long: `Runs lists every recorded engine invocation. With --verify the hash
chain is checked end to end and any break is reported.

Flags:
  --verify   Verify the integrity of the run log
  --json     Output in JSON format`,
	RunE: runRuns,
}

func runRuns(cmd *cobra.Command, args []string) error {
	services, err := loadServicesForCurrentDir()
	if err != nil {
		return err
	}

	if runsVerify {
		violations, err := services.Insights.VerifyRunLog()
		if err != nil {
			return fmt.Errorf("verify run log: %w", err)
		}
		if len(violations) == 0 {
			fmt.Println("Run log integrity: OK")
			return nil
		}
		for _, v := range violations {
			fmt.Println(v)
		}
		return fmt.Errorf("run log integrity check failed")
	}

	runs, err := services.Insights.Runs()
	if err != nil {
		return fmt.Errorf("load runs: %w", err)
	}

	if runsJSON {
		return printJSON(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No engine runs recorded yet.")
		return nil
	}

	fmt.Printf("%-20s %-10s %s\n", "Time", "Module", "ID")
	for _, r := range runs {
		fmt.Printf("%-20s %-10s %s\n", r.Timestamp.Format("2006-01-02 15:04:05"), r.Module, r.ID)
	}
	return nil
}

func init() {
	runsCmd.Flags().BoolVar(&runsVerify, "verify", false, "Verify the integrity of the run log")
	runsCmd.Flags().BoolVar(&runsJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(runsCmd)
}
