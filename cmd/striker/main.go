// striker is a two-team arcade sports game for the terminal.
//
// Usage:
//
//	striker play             - Pick teams and play a local match
//	striker serve            - Start SSH server for remote play
//	striker replay <file>    - Re-simulate a recorded match
//	striker history          - Show finished matches
//	striker config           - Print the resolved game config
//
// Global flags:
//
//	--config <path> - Game config file, YAML or TOML
//	--db <path>     - Set database path (default: ~/.striker/history.db)
//	--debug         - Log at debug level
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/striker-ball/internal/config"
)

var (
	// Global flags
	flagConfig string
	flagPreset string
	flagDBPath string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "striker",
	Short: "Striker Ball - two on two pin knocking in your terminal",
	Long: `Striker Ball is a fast arcade sports game. Two teams dribble, pass
and shoot a ball at the other side's pins. Knock them all down to score.

Available commands:
  play     - Pick teams and play a local match
  serve    - Start SSH server for remote play
  replay   - Re-simulate a recorded match
  history  - View finished matches
  config   - Print the resolved config

Examples:
  striker play
  striker play --preset sudden
  striker serve --ssh :2222
  striker replay ~/.striker/replays/match_20260101_120000.replay
  striker history`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a game config (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Match length preset: casual, standard, sudden")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.striker/history.db", "Path to match history database")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the game config from the global flags.
func loadConfig() (config.Game, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

func logLevel() log.Level {
	if flagDebug {
		return log.DebugLevel
	}
	return log.InfoLevel
}

// stderrLogger is used by commands that do not take over the terminal.
func stderrLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "striker",
		Level:           logLevel(),
	})
}
