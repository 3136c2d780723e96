package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reportJSON bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run every analytics module in a single pass",
	Long: `Report runs health, delays, sprint forecast, risk and capacity over
one snapshot and one reference time, so the sections agree with each
other.

Flags:
  --json   Output in JSON format`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	services, err := loadServicesForCurrentDir()
	if err != nil {
		return err
	}

	report, err := services.Insights.FullReport(0)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	if reportJSON {
		return printJSON(report)
	}

	fmt.Printf("Pulse Report - %s\n", report.GeneratedAt.Format("2006-01-02 15:04"))
	fmt.Println("==================================")
	fmt.Printf("\nHealth: %d/100 (%s)\n%s\n", report.Health.Overall, formatHealthStatus(report.Health.Status), report.Health.Summary)

	if len(report.Delays) > 0 {
		fmt.Printf("\nLikely delays: %d task(s), worst %d%%\n", len(report.Delays), report.Delays[0].Probability)
	} else {
		fmt.Println("\nLikely delays: none")
	}

	if report.Forecast != nil {
		fmt.Printf("\nSprint %q: %d%% likely to complete (%s)\n",
			report.Forecast.SprintName, report.Forecast.CompletionLikelihood, formatRiskTier(report.Forecast.RiskTier))
	}

	fmt.Printf("\nHighest risk: %s at %d\n", report.Risk.Highest.Name, report.Risk.Highest.Score)

	if len(report.Capacity.Months) > 0 {
		last := report.Capacity.Months[len(report.Capacity.Months)-1]
		fmt.Printf("\nCapacity (%s): %.0f%% utilization, %d hiring recommendation(s)\n",
			last.Period, last.Utilization, len(report.Capacity.Recommendations))
	}
	return nil
}

func init() {
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(reportCmd)
}
