// Package model defines shared data structures.
package model

import "time"

// Config defines solver settings resolved from flags and the config file.
type Config struct {
	Lang         string
	Length       int
	Prefix       string
	WordListPath string
	Show         int
	Format       string
}

// StatsConfig defines filters for game stats.
type StatsConfig struct {
	Lang  string
	Since *time.Time
	Last  int
}

// Game is a journaled puzzle.
type Game struct {
	ID           int64
	StartedAt    time.Time
	FinishedAt   *time.Time
	Lang         string
	Length       int
	Prefix       string
	WordListPath string
	Solved       bool
}

// Finished reports whether the game has ended.
func (g Game) Finished() bool {
	return g.FinishedAt != nil
}

// Guess is one journaled guess with its feedback string.
type Guess struct {
	Seq       int
	Word      string
	Feedback  string
	CreatedAt time.Time
}

// GameSummary aggregates a game for reporting.
type GameSummary struct {
	GameID     int64
	StartedAt  time.Time
	Lang       string
	Length     int
	Finished   bool
	Solved     bool
	GuessCount int
}
