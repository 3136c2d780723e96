package cli

import (
	"fmt"

	"github.com/felixgeelhaar/pulse/pkg/infrastructure/dashboard"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analytics dashboard over HTTP",
	Long: `Serve starts an HTTP server exposing the analytics as a JSON API
(/api/health, /api/delays, /api/forecast, /api/risk, /api/capacity,
/api/report) plus an HTML overview page at /.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		server, err := dashboard.NewServer(serveAddr, services.Insights)
		if err != nil {
			return fmt.Errorf("create server: %w", err)
		}

		fmt.Printf("Serving pulse dashboard on http://%s\n", serveAddr)
		return server.Start()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:8844", "Address to listen on")
	RootCmd.AddCommand(serveCmd)
}
