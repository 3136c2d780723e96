package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	capacityMonths int
	capacityJSON   bool
)

var capacityCmd = &cobra.Command{
	Use:   "capacity",
	Short: "Forecast team capacity against projected demand",
	Long: `Capacity projects monthly available hours (roster size, time off,
seasonal discounts) against demand extrapolated from the backlog, and
recommends hiring when utilization crosses sustained thresholds.

Flags:
  --months, -m   Forecast horizon in months (default 6)
  --json         Output in JSON format`,
	RunE: runCapacity,
}

func runCapacity(cmd *cobra.Command, args []string) error {
	services, err := loadServicesForCurrentDir()
	if err != nil {
		return err
	}

	forecast, err := services.Insights.Capacity(capacityMonths)
	if err != nil {
		return fmt.Errorf("forecast capacity: %w", err)
	}

	if capacityJSON {
		return printJSON(forecast)
	}

	fmt.Println("Capacity Forecast")
	fmt.Println("-----------------")
	fmt.Printf("%-10s %10s %10s %12s\n", "Period", "Capacity", "Demand", "Utilization")
	for _, m := range forecast.Months {
		fmt.Printf("%-10s %9.0fh %9.0fh %10.0f%%\n", m.Period, m.Capacity, m.Demand, m.Utilization)
	}

	if len(forecast.Recommendations) > 0 {
		fmt.Println("\nHiring recommendations:")
		for _, r := range forecast.Recommendations {
			fmt.Printf("- [%s] %d x %s from %s: %s\n", r.Urgency, r.Count, r.Role, r.StartPeriod, r.Reason)
		}
	}
	return nil
}

func init() {
	capacityCmd.Flags().IntVarP(&capacityMonths, "months", "m", 0, "Forecast horizon in months (default 6)")
	capacityCmd.Flags().BoolVar(&capacityJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(capacityCmd)
}
