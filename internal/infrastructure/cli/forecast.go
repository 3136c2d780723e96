package cli

import (
	"fmt"

	"github.com/felixgeelhaar/pulse/pkg/domain/analytics"
	"github.com/spf13/cobra"
)

var forecastJSON bool

var forecastCmd = &cobra.Command{
	Use:   "forecast [sprint-id]",
	Short: "Predict sprint completion from pace and velocity history",
	Long: `Forecast compares the sprint's completed points against its elapsed
time and projects whether the remaining work will land by the end date.
Without an argument the active sprint is used.

Flags:
  --json   Output in JSON format`,
	Args: cobra.MaximumNArgs(1),
	RunE: runForecast,
}

func runForecast(cmd *cobra.Command, args []string) error {
	services, err := loadServicesForCurrentDir()
	if err != nil {
		return err
	}

	sprintID := ""
	if len(args) > 0 {
		sprintID = args[0]
	}

	forecast, err := services.Insights.Forecast(sprintID)
	if err != nil {
		return fmt.Errorf("forecast sprint: %w", err)
	}

	if forecastJSON {
		return printJSON(forecast)
	}

	fmt.Printf("Sprint Forecast: %s\n", forecast.SprintName)
	fmt.Println("-----------------")
	fmt.Printf("Completion likelihood: %d%% (%s)\n", forecast.CompletionLikelihood, formatRiskTier(forecast.RiskTier))
	fmt.Printf("Confidence:            %s\n", forecast.Confidence)
	fmt.Printf("Days remaining:        %d\n", forecast.DaysRemaining)
	fmt.Printf("Projected velocity:    %.1f pts per sprint\n", forecast.ProjectedVelocity)
	fmt.Printf("Required velocity:     %.1f pts per sprint\n", forecast.RequiredVelocity)
	fmt.Printf("Velocity trend:        %s\n", forecast.VelocityTrend)
	if forecast.EstimatedCompletion != nil {
		fmt.Printf("Estimated completion:  %s\n", forecast.EstimatedCompletion.Format("2006-01-02"))
	}

	if len(forecast.RecommendedActions) > 0 {
		fmt.Println("\nRecommended actions:")
		for _, a := range forecast.RecommendedActions {
			fmt.Printf("- %s\n", a)
		}
	}
	return nil
}

func formatRiskTier(t analytics.RiskTier) string {
	switch t {
	case analytics.TierOnTrack:
		return "ON TRACK"
	case analytics.TierAtRisk:
		return "AT RISK"
	case analytics.TierBehind:
		return "BEHIND"
	default:
		return string(t)
	}
}

func init() {
	forecastCmd.Flags().BoolVar(&forecastJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(forecastCmd)
}
