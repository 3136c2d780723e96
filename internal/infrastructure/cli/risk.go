package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var riskJSON bool

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Show the five-dimension risk radar",
	Long: `Risk scores the project along schedule, scope, resource, dependency
and quality dimensions, each 0-100 against a shared alert threshold.

Flags:
  --json   Output in JSON format`,
	RunE: runRisk,
}

func runRisk(cmd *cobra.Command, args []string) error {
	services, err := loadServicesForCurrentDir()
	if err != nil {
		return err
	}

	radar, err := services.Insights.Risk()
	if err != nil {
		return fmt.Errorf("build risk radar: %w", err)
	}

	if riskJSON {
		return printJSON(radar)
	}

	fmt.Println("Risk Radar")
	fmt.Println("----------")
	for _, d := range radar.Dimensions {
		bar := strings.Repeat("#", d.Score/5)
		alert := ""
		if d.Score >= d.Threshold {
			alert = "  ALERT"
		}
		fmt.Printf("%-11s %3d  %-20s%s\n", d.Name, d.Score, bar, alert)
	}
	if radar.Insight != "" {
		fmt.Println()
		fmt.Println(radar.Insight)
	}
	return nil
}

func init() {
	riskCmd.Flags().BoolVar(&riskJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(riskCmd)
}
