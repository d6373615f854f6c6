// Package stats summarizes journaled games.
package stats

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/verte-zerg/wordhint/internal/model"
	"github.com/verte-zerg/wordhint/internal/report"
	"github.com/verte-zerg/wordhint/internal/store"
)

const barWidth = 30

// Summary aggregates finished games.
type Summary struct {
	Played     int
	Solved     int
	Abandoned  int
	InProgress int
	// Distribution maps guess counts to the number of games solved in that many guesses.
	Distribution map[int]int
	AvgGuesses   float64
}

// WinRate returns solved/played, or 0 when nothing was played.
func (s Summary) WinRate() float64 {
	if s.Played == 0 {
		return 0
	}
	return float64(s.Solved) / float64(s.Played)
}

// Summarize computes a summary. Unfinished games are counted separately.
func Summarize(games []model.GameSummary) Summary {
	s := Summary{Distribution: map[int]int{}}
	totalGuesses := 0
	for _, g := range games {
		if !g.Finished {
			s.InProgress++
			continue
		}
		s.Played++
		if !g.Solved {
			s.Abandoned++
			continue
		}
		s.Solved++
		s.Distribution[g.GuessCount]++
		totalGuesses += g.GuessCount
	}
	if s.Solved > 0 {
		s.AvgGuesses = float64(totalGuesses) / float64(s.Solved)
	}
	return s
}

// Load builds a summary from the journal.
func Load(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Summary, error) {
	games, err := st.ListGames(ctx, cfg)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(games), nil
}

// RenderSummary prints the summary and a guess distribution chart.
func RenderSummary(w io.Writer, s Summary) error {
	if s.Played == 0 && s.InProgress == 0 {
		_, err := fmt.Fprintln(w, "No games found.")
		return err
	}
	rows := [][]string{
		{"Played", fmt.Sprintf("%d", s.Played)},
		{"Solved", fmt.Sprintf("%d", s.Solved)},
		{"Abandoned", fmt.Sprintf("%d", s.Abandoned)},
		{"In progress", fmt.Sprintf("%d", s.InProgress)},
		{"Win rate", fmt.Sprintf("%.2f%%", s.WinRate()*100)},
		{"Avg guesses", fmt.Sprintf("%.2f", s.AvgGuesses)},
	}
	lines := report.Table(nil, rows, map[int]bool{1: true})
	lines = append(lines, "")
	lines = append(lines, distributionLines(s.Distribution)...)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func distributionLines(dist map[int]int) []string {
	if len(dist) == 0 {
		return nil
	}
	keys := make([]int, 0, len(dist))
	maxCount := 0
	for k, v := range dist {
		keys = append(keys, k)
		if v > maxCount {
			maxCount = v
		}
	}
	sort.Ints(keys)
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		n := dist[k] * barWidth / maxCount
		if n == 0 {
			n = 1
		}
		rows = append(rows, []string{fmt.Sprintf("%d", k), strings.Repeat("#", n), fmt.Sprintf("%d", dist[k])})
	}
	return append([]string{"Guess distribution"}, report.Table(nil, rows, map[int]bool{0: true})...)
}
