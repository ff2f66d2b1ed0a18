package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/striker-ball/internal/platform/tui"
	"github.com/vovakirdan/striker-ball/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished matches",
	Long: `Display recent matches and the win count of each team.

Opens an interactive table on a terminal. Use --plain (or pipe the output)
for a text listing.

Examples:
  striker history
  striker history --plain --limit 5
  striker history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a text listing instead of the table")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of matches to list with --plain")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded matches")
}

func runHistory(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening history database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearMatches(); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rate := cfg.Runner.TickRate

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width = w
			height = h
		}
		return tui.RunHistory(store, rate, width, height)
	}

	matches, err := store.RecentMatches(flagLimit)
	if err != nil {
		return fmt.Errorf("error retrieving matches: %w", err)
	}

	fmt.Println("Match History")
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'striker play' to record the first one!")
		return nil
	}

	// Print header
	fmt.Printf("  %-16s  %-13s  %-6s  %-6s  %s\n", "Date", "Mode", "Score", "Winner", "Length")
	fmt.Printf("  %-16s  %-13s  %-6s  %-6s  %s\n", "----", "----", "-----", "------", "------")

	for _, m := range matches {
		winner := m.Winner
		if winner == "" {
			winner = "-"
		}
		fmt.Printf("  %-16s  %-13s  %-6s  %-6s  %s\n",
			m.CreatedAt.Local().Format("2006-01-02 15:04"),
			m.Mode,
			fmt.Sprintf("%d-%d", m.ScoreA, m.ScoreB),
			winner,
			tui.FormatTicks(m.Ticks, rate),
		)
	}

	fmt.Println()
	if wins, err := store.TeamWins(); err == nil {
		fmt.Printf("Wins: Team A %d, Team B %d (%d played)\n", wins.A, wins.B, wins.Total)
	}
	return nil
}
