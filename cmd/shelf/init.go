// Init command for the shelf CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/internal/library"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize shelf configuration and storage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// PersistentPreRunE has already created the config directory and
		// default config.yaml.
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		sc, err := storeConfig()
		if err != nil {
			return err
		}
		if err := withLibrary(func(*library.Library) error { return nil }); err != nil {
			return fmt.Errorf("init: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Shelf initialized successfully")
		fmt.Fprintln(out, "  config: ", configDir)
		fmt.Fprintln(out, "  backend:", sc.Backend)
		fmt.Fprintln(out, "  data:   ", sc.DataDir)
		return nil
	},
}
