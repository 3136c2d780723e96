package cli

import (
	"fmt"
	"os"

	"github.com/felixgeelhaar/pulse/pkg/storage"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a pulse workspace in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, _ := os.Getwd()
		repo := storage.NewFilesystemRepository(cwd)

		if repo.IsInitialized() {
			fmt.Println("Workspace already initialized.")
			return nil
		}

		if err := repo.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize workspace: %w", err)
		}

		fmt.Printf("Initialized empty pulse workspace in %s/%s\n", cwd, storage.PulseDir)
		fmt.Println("Import a snapshot with 'pulse snapshot import <file>' or add team members with 'pulse team add'.")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(initCmd)
}
