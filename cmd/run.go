package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/ohmlab/internal/app"
)

// runApp loads the config and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return app.Run(app.Options{Config: cfg})
}
