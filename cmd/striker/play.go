package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/striker-ball/internal/audio"
	"github.com/vovakirdan/striker-ball/internal/platform/tui"
	"github.com/vovakirdan/striker-ball/internal/roster"
	"github.com/vovakirdan/striker-ball/internal/storage"
)

var (
	flagNoSound   bool
	flagReplayDir string
	flagLogPath   string
	flagQuick     bool
	flagFPS       int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a local match",
	Long: `Start a local match. Both players share the keyboard.

Team select:
  f / k        - Join (left / right keyboard), then ready up
  a d / ← →    - Switch team
  g / l        - Ready with both sticks on one device
  e / o        - Back out
  Enter        - Start once both teams are ready

Match controls (left / right keyboard):
  WASD / arrows              - Move your first player
  shift+WASD / shift+arrows  - Move your second player
  f / k                      - Shoot
  g / l                      - Pass, or tackle without the ball
  r / i                      - Pass or tackle (second player)
  P/Esc                      - Pause
  Q/Ctrl+C                   - Quit

Examples:
  striker play
  striker play --preset casual
  striker play --quick --no-sound
  striker play --config ./my-game.toml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoSound, "no-sound", false, "Disable audio")
	playCmd.Flags().StringVar(&flagReplayDir, "replay-dir", "~/.striker/replays", "Directory for match replays (empty disables recording)")
	playCmd.Flags().StringVar(&flagLogPath, "log", "~/.striker/striker.log", "Log file path")
	playCmd.Flags().BoolVar(&flagQuick, "quick", false, "Skip team select, one keyboard per team")
	playCmd.Flags().IntVar(&flagFPS, "fps", 0, "Redraw rate (0 = simulation tick rate)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagNoSound {
		cfg.Sounds.Enabled = false
	}

	logger, closer, err := tui.NewFileLogger(expandHome(flagLogPath), logLevel())
	if err != nil {
		return err
	}
	defer closer.Close()

	opts := tui.Options{
		Config:    cfg,
		Logger:    logger,
		ReplayDir: expandHome(flagReplayDir),
		FrameRate: flagFPS,
	}

	if cfg.Sounds.Enabled {
		spk := audio.NewSpeaker(cfg.Sounds, logger)
		if err := spk.Init(); err != nil {
			logger.Warn("audio unavailable, playing muted", "error", err)
			opts.Sink = audio.Discard{}
		} else {
			defer spk.Close()
			opts.Sink = spk
		}
	}

	// Continue without storage - the match still works
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		logger.Warn("history disabled", "error", err)
	} else {
		defer store.Close()
		opts.Saver = store
	}

	if flagQuick {
		info := roster.PlayersInfo{
			TeamA: roster.SingleTeam(roster.PlayerInfo{Gamepad: tui.KeyboardLeft, DualStick: true, Slot: roster.A1}),
			TeamB: roster.SingleTeam(roster.PlayerInfo{Gamepad: tui.KeyboardRight, DualStick: true, Slot: roster.B1}),
		}
		opts.Roster = &info
	}

	logger.Info("starting local match", "score_target", cfg.Flow.ScoreTarget, "sound", cfg.Sounds.Enabled)
	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
