package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Import, export and validate snapshot documents",
}

var snapshotImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Validate and import a JSON snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read snapshot file: %w", err)
		}

		if err := services.Snapshot.Import(data); err != nil {
			return fmt.Errorf("import snapshot: %w", err)
		}

		fmt.Printf("Imported snapshot from %s\n", args[0])
		return nil
	},
}

var snapshotExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the stored snapshot as JSON to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		data, err := services.Snapshot.Export()
		if err != nil {
			return fmt.Errorf("export snapshot: %w", err)
		}

		fmt.Println(string(data))
		return nil
	},
}

var snapshotValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a JSON snapshot against the schema without importing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read snapshot file: %w", err)
		}

		violations, err := services.Snapshot.Validate(data)
		if err != nil {
			return fmt.Errorf("validate snapshot: %w", err)
		}

		if len(violations) == 0 {
			fmt.Println("Snapshot is valid.")
			return nil
		}

		fmt.Printf("Snapshot has %d problem(s):\n", len(violations))
		for _, v := range violations {
			fmt.Printf("- %s\n", v)
		}
		return fmt.Errorf("snapshot failed validation")
	},
}

func init() {
	snapshotCmd.AddCommand(snapshotImportCmd)
	snapshotCmd.AddCommand(snapshotExportCmd)
	snapshotCmd.AddCommand(snapshotValidateCmd)
	RootCmd.AddCommand(snapshotCmd)
}
