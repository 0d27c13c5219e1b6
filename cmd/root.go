package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/ohmlab/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "ohmlab",
	Short: "Ohm's law circuit tutor",
	Long:  "OhmLab is a terminal tutor for Ohm's law. Build simple, series and parallel circuits, inject faults, and practice the calculations.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides "+config.EnvPath+" env var)")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig loads the config from the --config flag (highest priority),
// then the OHMLAB_CONFIG env var, then the default XDG path.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, fmt.Errorf("resolve config path: %w", err)
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
