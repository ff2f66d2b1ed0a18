package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/striker-ball/internal/replay"
	"github.com/vovakirdan/striker-ball/internal/session"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-simulate a recorded match",
	Long: `Run a replay file through the simulation without a screen and print
where it ends. The replay carries its own config and roster, so the global
--config and --preset flags do not apply.

Examples:
  striker replay ~/.striker/replays/match_20260101_120000.replay
  striker replay --debug match.replay`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func runReplay(_ *cobra.Command, args []string) error {
	rep, err := replay.Load(expandHome(args[0]))
	if err != nil {
		return err
	}

	logger := stderrLogger()
	logger.Debug("loaded replay", "ticks", rep.Ticks, "frames", len(rep.Frames), "mode", rep.Roster.Mode())

	snap, err := replay.Play(rep, session.WithLogger(logger))
	if err != nil {
		return err
	}

	rate := rep.Config.Runner.TickRate
	if rate <= 0 {
		rate = 60
	}
	length := time.Duration(rep.Ticks) * time.Second / time.Duration(rate)
	fmt.Printf("Recorded: %s\n", time.Unix(rep.RecordedAt, 0).Format("2006-01-02 15:04"))
	fmt.Printf("Mode:     %s\n", rep.Roster.Mode())
	fmt.Printf("Length:   %s (%d ticks)\n", length.Round(time.Second), snap.Tick)
	fmt.Printf("Score:    A %d - %d B\n", snap.Score.A, snap.Score.B)
	fmt.Printf("Hash:     %016x\n", snap.Hash())
	return nil
}
