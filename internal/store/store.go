// Package store handles SQLite persistence of played games.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/wordhint/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNoActiveGame is returned when no unfinished game exists.
var ErrNoActiveGame = errors.New("no active game")

// Store wraps SQLite access for game data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			lang TEXT NOT NULL,
			length INTEGER NOT NULL,
			prefix TEXT NOT NULL,
			wordlist_path TEXT NOT NULL,
			solved INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS guesses (
			game_id INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			guess TEXT NOT NULL,
			feedback TEXT NOT NULL,
			created_at TEXT NOT NULL,
			PRIMARY KEY (game_id, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_games_started_at ON games(started_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// CreateGame stores a new unfinished game and returns its id.
func (s *Store) CreateGame(ctx context.Context, game model.Game) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO games (started_at, lang, length, prefix, wordlist_path) VALUES (?, ?, ?, ?, ?)`,
		game.StartedAt.Format(time.RFC3339Nano),
		game.Lang,
		game.Length,
		game.Prefix,
		game.WordListPath,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ActiveGame returns the most recently created unfinished game.
func (s *Store) ActiveGame(ctx context.Context) (model.Game, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at, lang, length, prefix, wordlist_path, solved
		FROM games WHERE finished_at IS NULL
		ORDER BY id DESC LIMIT 1`)
	game, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Game{}, ErrNoActiveGame
	}
	return game, err
}

// GetGame loads a game by id.
func (s *Store) GetGame(ctx context.Context, id int64) (model.Game, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at, lang, length, prefix, wordlist_path, solved
		FROM games WHERE id = ?`, id)
	return scanGame(row)
}

func scanGame(row *sql.Row) (model.Game, error) {
	var game model.Game
	var startedAt string
	var finishedAt sql.NullString
	var solved int
	if err := row.Scan(&game.ID, &startedAt, &finishedAt, &game.Lang, &game.Length, &game.Prefix, &game.WordListPath, &solved); err != nil {
		return model.Game{}, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return model.Game{}, err
	}
	game.StartedAt = parsed
	if finishedAt.Valid {
		done, err := time.Parse(time.RFC3339Nano, finishedAt.String)
		if err != nil {
			return model.Game{}, err
		}
		game.FinishedAt = &done
	}
	game.Solved = solved != 0
	return game, nil
}

// AddGuess appends a guess to a game and returns its sequence number.
func (s *Store) AddGuess(ctx context.Context, gameID int64, word, feedback string, at time.Time) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	var seq int
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM guesses WHERE game_id = ?`, gameID).Scan(&seq)
	if err != nil {
		return 0, err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO guesses (game_id, seq, guess, feedback, created_at) VALUES (?, ?, ?, ?, ?)`,
		gameID, seq, word, feedback, at.Format(time.RFC3339Nano))
	if err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return seq, nil
}

// ListGuesses returns a game's guesses in order.
func (s *Store) ListGuesses(ctx context.Context, gameID int64) ([]model.Guess, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, guess, feedback, created_at FROM guesses WHERE game_id = ? ORDER BY seq ASC`, gameID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var guesses []model.Guess
	for rows.Next() {
		var g model.Guess
		var createdAt string
		if err := rows.Scan(&g.Seq, &g.Word, &g.Feedback, &createdAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		g.CreatedAt = parsed
		guesses = append(guesses, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return guesses, nil
}

// FinishGame marks a game as finished.
func (s *Store) FinishGame(ctx context.Context, gameID int64, solved bool, at time.Time) error {
	solvedInt := 0
	if solved {
		solvedInt = 1
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE games SET finished_at = ?, solved = ? WHERE id = ? AND finished_at IS NULL`,
		at.Format(time.RFC3339Nano), solvedInt, gameID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("game %d is not active", gameID)
	}
	return nil
}

// ListGames returns game summaries filtered by stats config, in creation order.
func (s *Store) ListGames(ctx context.Context, cfg model.StatsConfig) ([]model.GameSummary, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Lang != "" {
		clauses = append(clauses, "g.lang = ?")
		args = append(args, cfg.Lang)
	}
	query := fmt.Sprintf(`SELECT g.id, g.started_at, g.lang, g.length, g.finished_at IS NOT NULL, g.solved,
		(SELECT COUNT(*) FROM guesses WHERE game_id = g.id)
		FROM games g
		WHERE %s
		ORDER BY g.id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var games []model.GameSummary
	for rows.Next() {
		var g model.GameSummary
		var startedAt string
		var finished, solved int
		if err := rows.Scan(&g.GameID, &startedAt, &g.Lang, &g.Length, &finished, &solved, &g.GuessCount); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, err
		}
		// started_at is RFC3339Nano text, which does not sort chronologically.
		if cfg.Since != nil && parsed.Before(*cfg.Since) {
			continue
		}
		g.StartedAt = parsed
		g.Finished = finished != 0
		g.Solved = solved != 0
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(games) > cfg.Last {
		games = games[len(games)-cfg.Last:]
	}
	return games, nil
}
