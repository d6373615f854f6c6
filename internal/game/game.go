// Package game ties solver queries to a journaled game.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/verte-zerg/wordhint/internal/model"
	"github.com/verte-zerg/wordhint/internal/solver"
	"github.com/verte-zerg/wordhint/internal/store"
)

// Session is a game in progress. A nil store keeps the session in memory.
type Session struct {
	store   *store.Store
	game    model.Game
	records []solver.GuessRecord
}

// Start begins a new game for cfg.
func Start(ctx context.Context, st *store.Store, cfg model.Config, now time.Time) (*Session, error) {
	if cfg.Length <= 0 {
		return nil, solver.ErrInvalidLength
	}
	game := model.Game{
		StartedAt:    now,
		Lang:         cfg.Lang,
		Length:       cfg.Length,
		Prefix:       cfg.Prefix,
		WordListPath: cfg.WordListPath,
	}
	if st != nil {
		id, err := st.CreateGame(ctx, game)
		if err != nil {
			return nil, fmt.Errorf("failed to create game: %w", err)
		}
		game.ID = id
	}
	return &Session{store: st, game: game}, nil
}

// Resume loads the active game. It returns store.ErrNoActiveGame when there is none.
func Resume(ctx context.Context, st *store.Store) (*Session, error) {
	game, err := st.ActiveGame(ctx)
	if err != nil {
		return nil, err
	}
	return load(ctx, st, game)
}

// Load opens a journaled game by id, finished or not.
func Load(ctx context.Context, st *store.Store, id int64) (*Session, error) {
	game, err := st.GetGame(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load game %d: %w", id, err)
	}
	return load(ctx, st, game)
}

func load(ctx context.Context, st *store.Store, game model.Game) (*Session, error) {
	guesses, err := st.ListGuesses(ctx, game.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guesses: %w", err)
	}
	s := &Session{store: st, game: game}
	for _, g := range guesses {
		rec, err := solver.NewGuessRecord(g.Word, g.Feedback, game.Length)
		if err != nil {
			return nil, fmt.Errorf("game %d guess %d: %w", game.ID, g.Seq, err)
		}
		s.records = append(s.records, rec)
	}
	return s, nil
}

// Game returns the journaled game.
func (s *Session) Game() model.Game {
	return s.game
}

// Records returns the validated guesses so far.
func (s *Session) Records() []solver.GuessRecord {
	return append([]solver.GuessRecord(nil), s.records...)
}

// History returns the guesses as solver history entries.
func (s *Session) History() []solver.HistoryEntry {
	entries := make([]solver.HistoryEntry, 0, len(s.records))
	for _, rec := range s.records {
		entries = append(entries, solver.HistoryEntry{Guess: rec.Guess, Feedback: rec.FeedbackString()})
	}
	return entries
}

// Matches reports whether the session was started for the same puzzle shape as cfg.
func (s *Session) Matches(cfg model.Config) bool {
	return s.game.Length == cfg.Length && s.game.Lang == cfg.Lang && s.game.Prefix == cfg.Prefix
}

// Guess validates and records a guess. An all-correct guess finishes the game as solved.
func (s *Session) Guess(ctx context.Context, word, feedback string, now time.Time) (solver.GuessRecord, error) {
	if s.game.Finished() {
		return solver.GuessRecord{}, fmt.Errorf("game %d is already finished", s.game.ID)
	}
	rec, err := solver.NewGuessRecord(word, feedback, s.game.Length)
	if err != nil {
		return solver.GuessRecord{}, err
	}
	if s.store != nil {
		if _, err := s.store.AddGuess(ctx, s.game.ID, rec.Guess, rec.FeedbackString(), now); err != nil {
			return solver.GuessRecord{}, fmt.Errorf("failed to save guess: %w", err)
		}
	}
	s.records = append(s.records, rec)
	if rec.Solved() {
		if err := s.End(ctx, true, now); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

// End finishes the game.
func (s *Session) End(ctx context.Context, solved bool, now time.Time) error {
	if s.game.Finished() {
		return nil
	}
	if s.store != nil {
		if err := s.store.FinishGame(ctx, s.game.ID, solved, now); err != nil {
			return fmt.Errorf("failed to finish game: %w", err)
		}
	}
	s.game.FinishedAt = &now
	s.game.Solved = solved
	return nil
}

// Next computes the next move for the session against dictionary.
func (s *Session) Next(dictionary []string) (solver.Response, error) {
	return solver.ComputeNextMove(dictionary, solver.Query{
		Length:  s.game.Length,
		Prefix:  s.game.Prefix,
		History: s.History(),
	})
}
