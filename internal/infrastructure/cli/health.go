package cli

import (
	"fmt"

	"github.com/felixgeelhaar/pulse/pkg/domain/analytics"
	"github.com/spf13/cobra"
)

var healthJSON bool

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Score overall project health from the current snapshot",
	Long: `Health combines five weighted metrics (velocity, quality, scope,
team load, blockers) into a single 0-100 score with a per-metric
breakdown.

Flags:
  --json   Output in JSON format`,
	RunE: runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	services, err := loadServicesForCurrentDir()
	if err != nil {
		return err
	}

	report, err := services.Insights.Health()
	if err != nil {
		return fmt.Errorf("score health: %w", err)
	}

	if healthJSON {
		return printJSON(report)
	}

	fmt.Println("Project Health")
	fmt.Println("--------------")
	fmt.Printf("Overall: %d/100 (%s)\n", report.Overall, formatHealthStatus(report.Status))
	fmt.Println()
	for _, m := range report.Metrics {
		fmt.Printf("%-12s %3d  %-8s %s\n", m.Name, m.Score, m.Status, trendArrow(m.Trend))
	}
	fmt.Println()
	fmt.Println(report.Summary)
	return nil
}

func formatHealthStatus(s analytics.HealthStatus) string {
	switch s {
	case analytics.HealthHealthy:
		return "HEALTHY"
	case analytics.HealthAtRisk:
		return "AT RISK"
	case analytics.HealthCritical:
		return "CRITICAL"
	default:
		return string(s)
	}
}

func trendArrow(t analytics.MetricTrend) string {
	switch t {
	case analytics.TrendUp:
		return "improving"
	case analytics.TrendDown:
		return "declining"
	default:
		return "stable"
	}
}

func init() {
	healthCmd.Flags().BoolVar(&healthJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(healthCmd)
}
