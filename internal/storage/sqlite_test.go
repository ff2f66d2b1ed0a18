package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/striker-ball/internal/play"
	"github.com/vovakirdan/striker-ball/internal/roster"
	"github.com/vovakirdan/striker-ball/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRecent(t *testing.T) {
	store := openTestStore(t)

	matches := []Match{
		{ScoreA: 5, ScoreB: 2, Winner: "A", Ticks: 3000, Mode: "single/single", Decision: "play_again"},
		{ScoreA: 1, ScoreB: 0, Ticks: 200, Mode: "single/double"},
		{ScoreA: 3, ScoreB: 5, Winner: "B", Ticks: 4100, Mode: "double/single", Decision: "quit"},
	}
	for _, m := range matches {
		if _, err := store.SaveMatch(m); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	got, err := store.RecentMatches(10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 matches, got %d", len(got))
	}

	// Same second, so the id breaks the tie: newest first
	if got[0].Winner != "B" || got[0].Decision != "quit" || got[0].Ticks != 4100 {
		t.Errorf("newest match = %+v", got[0])
	}
	if got[1].Winner != "" || got[1].Decision != "" {
		t.Errorf("undecided match = %+v", got[1])
	}
	if got[2].Mode != "single/single" || got[2].ScoreA != 5 {
		t.Errorf("oldest match = %+v", got[2])
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("created_at should be set")
	}

	limited, err := store.RecentMatches(2)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 matches with limit, got %d", len(limited))
	}
}

func TestStoreTeamWins(t *testing.T) {
	store := openTestStore(t)

	w, err := store.TeamWins()
	if err != nil {
		t.Fatalf("TeamWins() failed: %v", err)
	}
	if w != (TeamWins{}) {
		t.Errorf("empty store wins = %+v", w)
	}

	for _, winner := range []string{"A", "B", "A", "", "A"} {
		store.SaveMatch(Match{Winner: winner, Mode: "single/single"})
	}
	w, err = store.TeamWins()
	if err != nil {
		t.Fatalf("TeamWins() failed: %v", err)
	}
	if w.A != 3 || w.B != 1 || w.Total != 5 {
		t.Errorf("wins = %+v, want A=3 B=1 total=5", w)
	}

	if err := store.ClearMatches(); err != nil {
		t.Fatalf("ClearMatches() failed: %v", err)
	}
	if w, _ := store.TeamWins(); w.Total != 0 {
		t.Errorf("total = %d after clear", w.Total)
	}
}

func TestStoreSaveResult(t *testing.T) {
	store := openTestStore(t)

	err := store.SaveResult(session.Result{
		Score:     play.PinScore{A: 2, B: 5},
		Winner:    roster.TeamB,
		HasWinner: true,
		Ticks:     1234,
		Mode:      "double/single",
		Decision:  play.DecisionTeamSelect,
		Decided:   true,
	})
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	got, err := store.RecentMatches(1)
	if err != nil || len(got) != 1 {
		t.Fatalf("RecentMatches() = %v, %v", got, err)
	}
	m := got[0]
	if m.ScoreA != 2 || m.ScoreB != 5 || m.Winner != "B" || m.Ticks != 1234 {
		t.Errorf("match = %+v", m)
	}
	if m.Mode != "double/single" || m.Decision != "team_select" {
		t.Errorf("match = %+v", m)
	}
}
