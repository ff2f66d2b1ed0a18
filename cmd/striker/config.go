package main

import (
	"os"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved game config",
	Long: `Print the config a match would run with, after the config file and
--preset are applied. The output is YAML and can be saved as a starting
point for ~/.striker/configs/game.yaml.

Examples:
  striker config
  striker config --preset sudden > ~/.striker/configs/game.yaml
  striker config --config ./my-game.toml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := cfg.Encode()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
