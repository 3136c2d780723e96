package cli

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/pulse/pkg/domain/analytics"
	"github.com/spf13/cobra"
)

var delaysJSON bool

var delaysCmd = &cobra.Command{
	Use:   "delays",
	Short: "Predict which tasks are likely to slip",
	Long: `Delays evaluates every incomplete task against a heuristic rule set
(overdue, due soon, unassigned, blocked, over budget, stale) and lists
the tasks likely to slip, sorted by probability.

Flags:
  --json   Output in JSON format`,
	RunE: runDelays,
}

func runDelays(cmd *cobra.Command, args []string) error {
	services, err := loadServicesForCurrentDir()
	if err != nil {
		return err
	}

	predictions, err := services.Insights.Delays()
	if err != nil {
		return fmt.Errorf("predict delays: %w", err)
	}

	if delaysJSON {
		if predictions == nil {
			predictions = []analytics.DelayPrediction{}
		}
		return printJSON(predictions)
	}

	if len(predictions) == 0 {
		fmt.Println("No tasks look likely to slip. Nothing to report.")
		return nil
	}

	fmt.Printf("Delay Predictions (%d)\n", len(predictions))
	fmt.Println("---------------------")
	for _, p := range predictions {
		marker := " "
		if p.CriticalPathImpact {
			marker = "!"
		}
		fmt.Printf("%s %-40s %3d%%  +%dd  conf %d%%\n", marker, truncate(p.TaskTitle, 40), p.Probability, p.PredictedDelayDays, p.Confidence)
		fmt.Printf("    %s\n", strings.Join(p.Reasons, "; "))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func init() {
	delaysCmd.Flags().BoolVar(&delaysJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(delaysCmd)
}
