package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/wordhint/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "games.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestGameLifecycle(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if _, err := st.ActiveGame(ctx); !errors.Is(err, ErrNoActiveGame) {
		t.Fatalf("expected ErrNoActiveGame, got %v", err)
	}

	start := time.Unix(0, 0).UTC()
	id, err := st.CreateGame(ctx, model.Game{StartedAt: start, Lang: "en", Length: 5, WordListPath: "en.txt"})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	active, err := st.ActiveGame(ctx)
	if err != nil {
		t.Fatalf("active game: %v", err)
	}
	if active.ID != id || active.Length != 5 || active.Finished() {
		t.Fatalf("unexpected active game: %+v", active)
	}

	for i, g := range []struct{ word, fb string }{{"stare", "bybyb"}, {"crane", "ggggg"}} {
		seq, err := st.AddGuess(ctx, id, g.word, g.fb, start.Add(time.Duration(i+1)*time.Minute))
		if err != nil {
			t.Fatalf("add guess: %v", err)
		}
		if seq != i+1 {
			t.Fatalf("expected seq %d, got %d", i+1, seq)
		}
	}
	guesses, err := st.ListGuesses(ctx, id)
	if err != nil {
		t.Fatalf("list guesses: %v", err)
	}
	if len(guesses) != 2 || guesses[0].Word != "stare" || guesses[1].Feedback != "ggggg" {
		t.Fatalf("unexpected guesses: %+v", guesses)
	}

	if err := st.FinishGame(ctx, id, true, start.Add(time.Hour)); err != nil {
		t.Fatalf("finish game: %v", err)
	}
	if err := st.FinishGame(ctx, id, true, start.Add(time.Hour)); err == nil {
		t.Fatalf("finishing twice should fail")
	}
	if _, err := st.ActiveGame(ctx); !errors.Is(err, ErrNoActiveGame) {
		t.Fatalf("expected no active game after finish, got %v", err)
	}
	game, err := st.GetGame(ctx, id)
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if !game.Solved || !game.Finished() {
		t.Fatalf("expected solved finished game: %+v", game)
	}
}

func TestListGamesFilters(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	for i, lang := range []string{"en", "de", "en", "en"} {
		start := time.Unix(0, 0).UTC().Add(time.Duration(i) * time.Hour)
		id, err := st.CreateGame(ctx, model.Game{StartedAt: start, Lang: lang, Length: 5})
		if err != nil {
			t.Fatalf("create game: %v", err)
		}
		for j := 0; j <= i; j++ {
			if _, err := st.AddGuess(ctx, id, "crane", "bbbbb", start); err != nil {
				t.Fatalf("add guess: %v", err)
			}
		}
	}

	games, err := st.ListGames(ctx, model.StatsConfig{Lang: "en", Last: 2})
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
	if games[0].GuessCount != 3 || games[1].GuessCount != 4 {
		t.Fatalf("unexpected guess counts: %+v", games)
	}
	if games[0].Finished {
		t.Fatalf("games should be unfinished: %+v", games[0])
	}
}

func TestActiveGameIsLatestCreated(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// "…:00Z" sorts after "…:00.1Z" as text although it is earlier.
	if _, err := st.CreateGame(ctx, model.Game{StartedAt: start, Lang: "en", Length: 5}); err != nil {
		t.Fatalf("create game: %v", err)
	}
	later, err := st.CreateGame(ctx, model.Game{StartedAt: start.Add(100 * time.Millisecond), Lang: "de", Length: 6})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	game, err := st.ActiveGame(ctx)
	if err != nil {
		t.Fatalf("active game: %v", err)
	}
	if game.ID != later || game.Lang != "de" {
		t.Fatalf("expected game %d, got %+v", later, game)
	}
}

func TestListGamesSinceComparesTimes(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	since := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	// A minute before since, stored as 13:59+02:00, which sorts after 12:00Z as text.
	offset := time.FixedZone("EET", 2*60*60)
	for _, start := range []time.Time{
		since.Add(-time.Minute).In(offset),
		since.Add(time.Hour),
	} {
		if _, err := st.CreateGame(ctx, model.Game{StartedAt: start, Lang: "en", Length: 5}); err != nil {
			t.Fatalf("create game: %v", err)
		}
	}
	games, err := st.ListGames(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(games) != 1 || games[0].GameID != 2 {
		t.Fatalf("expected only the second game, got %+v", games)
	}
}
