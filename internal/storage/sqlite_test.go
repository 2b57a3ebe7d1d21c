package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func record(level int, outcome Outcome, cleared int, at time.Time) GameRecord {
	return GameRecord{
		GameID:         "plumber",
		Level:          level,
		Speed:          "mid",
		Seed:           42,
		Outcome:        outcome,
		VirusesTotal:   (level + 1) * 4,
		VirusesCleared: cleared,
		Capsules:       10,
		Duration:       90 * time.Second,
		CreatedAt:      at,
	}
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "history.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.dr-plumber/history.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".dr-plumber", "history.db")); err != nil {
		t.Errorf("expected database under HOME: %v", err)
	}
}

func TestSaveAndRecentGames(t *testing.T) {
	store := openTemp(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, r := range []GameRecord{
		record(3, OutcomeLost, 5, base),
		record(3, OutcomeWon, 16, base.Add(time.Minute)),
		record(4, OutcomeQuit, 2, base.Add(2*time.Minute)),
	} {
		id, err := store.SaveGame(r)
		if err != nil {
			t.Fatalf("SaveGame(%d) failed: %v", i, err)
		}
		if id <= 0 {
			t.Errorf("SaveGame(%d) returned id %d", i, id)
		}
	}

	games, err := store.RecentGames(2)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("Expected 2 games, got %d", len(games))
	}

	newest := games[0]
	if newest.Outcome != OutcomeQuit || newest.Level != 4 {
		t.Errorf("Expected newest game to be the level 4 quit, got %+v", newest)
	}
	if newest.Duration != 90*time.Second {
		t.Errorf("Duration = %v, want 1m30s", newest.Duration)
	}
	if !newest.CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("CreatedAt = %v, want %v", newest.CreatedAt, base.Add(2*time.Minute))
	}
	if games[1].Outcome != OutcomeWon {
		t.Errorf("Expected second game to be the win, got %s", games[1].Outcome)
	}
}

func TestRecentGamesDefaultLimit(t *testing.T) {
	store := openTemp(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 15; i++ {
		if _, err := store.SaveGame(record(1, OutcomeLost, 0, base.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatalf("SaveGame() failed: %v", err)
		}
	}

	games, err := store.RecentGames(0)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(games) != 10 {
		t.Errorf("Expected default limit of 10, got %d", len(games))
	}
}

func TestSaveGameRejectsInvalidRecords(t *testing.T) {
	store := openTemp(t)

	tests := []struct {
		name string
		rec  GameRecord
	}{
		{"unknown outcome", GameRecord{GameID: "plumber", Outcome: "draw"}},
		{"missing outcome", GameRecord{GameID: "plumber"}},
		{"missing game id", GameRecord{Outcome: OutcomeWon}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.SaveGame(tt.rec)
			if !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("SaveGame() error = %v, want ErrInvalidRecord", err)
			}
		})
	}
}

func TestTotals(t *testing.T) {
	store := openTemp(t)

	empty, err := store.Totals()
	if err != nil {
		t.Fatalf("Totals() failed: %v", err)
	}
	if empty != (Totals{}) {
		t.Errorf("Expected zero totals for an empty history, got %+v", empty)
	}

	now := time.Now()
	for _, r := range []GameRecord{
		record(5, OutcomeWon, 24, now),
		record(6, OutcomeLost, 7, now),
		record(9, OutcomeWon, 40, now),
		record(12, OutcomeQuit, 1, now),
	} {
		if _, err := store.SaveGame(r); err != nil {
			t.Fatalf("SaveGame() failed: %v", err)
		}
	}

	got, err := store.Totals()
	if err != nil {
		t.Fatalf("Totals() failed: %v", err)
	}
	want := Totals{
		Games:          4,
		Wins:           2,
		Losses:         1,
		VirusesCleared: 72,
		PlayTime:       6 * time.Minute,
	}
	if got != want {
		t.Errorf("Totals() = %+v, want %+v", got, want)
	}
}

func TestClearHistory(t *testing.T) {
	store := openTemp(t)

	for i := 0; i < 3; i++ {
		if _, err := store.SaveGame(record(1, OutcomeLost, 0, time.Time{})); err != nil {
			t.Fatalf("SaveGame() failed: %v", err)
		}
	}

	n, err := store.ClearHistory()
	if err != nil {
		t.Fatalf("ClearHistory() failed: %v", err)
	}
	if n != 3 {
		t.Errorf("ClearHistory() removed %d rows, want 3", n)
	}

	games, err := store.RecentGames(10)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("Expected empty history after clear, got %d games", len(games))
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveGame(record(7, OutcomeWon, 32, time.Now())); err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	games, err := store.RecentGames(10)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(games) != 1 || games[0].Level != 7 {
		t.Errorf("Expected the level 7 game after reopen, got %+v", games)
	}
}
