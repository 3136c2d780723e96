package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/felixgeelhaar/pulse/internal/infrastructure/wiring"
)

// loadServicesForCurrentDir builds the service graph for the working
// directory, requiring an initialized workspace.
func loadServicesForCurrentDir() (*wiring.AppServices, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	services := wiring.BuildAppServices(cwd)
	if !services.Workspace.Repo.IsInitialized() {
		return nil, fmt.Errorf("no .pulse workspace found; run 'pulse init' first")
	}
	return services, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
