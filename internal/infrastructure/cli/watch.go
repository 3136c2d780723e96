package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/felixgeelhaar/pulse/internal/infrastructure/watch"
	"github.com/felixgeelhaar/pulse/pkg/storage"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Recompute health and risk whenever the snapshot changes",
	Long: `Watch monitors the .pulse directory and re-runs the health scorer and
risk radar each time a snapshot file is written. Changes are debounced
so a burst of writes triggers one recomputation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		recompute := func(ev watch.ChangeEvent) {
			fmt.Printf("\nChange detected (%s %s) at %s\n",
				ev.ChangeType, filepath.Base(ev.Path), time.Now().Format("15:04:05"))

			report, err := services.Insights.Health()
			if err != nil {
				fmt.Printf("Health recompute failed: %v\n", err)
				return
			}
			fmt.Printf("Health: %d/100 (%s)\n", report.Overall, formatHealthStatus(report.Status))

			radar, err := services.Insights.Risk()
			if err != nil {
				fmt.Printf("Risk recompute failed: %v\n", err)
				return
			}
			fmt.Printf("Highest risk: %s at %d\n", radar.Highest.Name, radar.Highest.Score)
		}

		watcher, err := watch.NewSnapshotWatcher(watchDebounce, recompute)
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}

		cwd, _ := os.Getwd()
		pulseDir := filepath.Join(cwd, storage.PulseDir)
		if err := watcher.Watch(pulseDir); err != nil {
			return err
		}

		fmt.Printf("Watching %s for snapshot changes... (Ctrl+C to stop)\n", pulseDir)
		return watcher.Run(cmd.Context())
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "Debounce window for change events")
	RootCmd.AddCommand(watchCmd)
}
