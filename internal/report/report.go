// Package report renders next-move responses for the terminal and for tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/verte-zerg/wordhint/internal/solver"
)

// Output formats.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatJSON, FormatMsgpack}

// Options controls text rendering.
type Options struct {
	// Show caps the number of candidates listed; 0 hides the list.
	Show  int
	Color bool
	// History is rendered as tiles above the report when non-empty.
	History []solver.GuessRecord
}

var (
	correctTile = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#538D4E"))
	presentTile = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#B59F3B"))
	absentTile  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#3A3A3C"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// ValidFormat reports whether format is supported.
func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Encode writes resp in the requested format.
func Encode(w io.Writer, resp solver.Response, format string, opts Options) error {
	switch format {
	case FormatText, "":
		return Render(w, resp, opts)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(resp)
	default:
		return fmt.Errorf("unknown format %q (use %s)", format, strings.Join(Formats, ", "))
	}
}

// Tiles renders a guess with its feedback. Without colour the feedback is
// shown as a bracketed string, e.g. "CRANE [bgybb]".
func Tiles(rec solver.GuessRecord, color bool) string {
	if !color {
		return fmt.Sprintf("%s [%s]", strings.ToUpper(rec.Guess), rec.FeedbackString())
	}
	var b strings.Builder
	for _, m := range rec.Marks() {
		style := absentTile
		switch m.Feedback {
		case solver.Correct:
			style = correctTile
		case solver.Present:
			style = presentTile
		}
		b.WriteString(style.Render(" " + strings.ToUpper(string(m.Letter)) + " "))
	}
	return b.String()
}

// Render writes a human-readable report.
func Render(w io.Writer, resp solver.Response, opts Options) error {
	var lines []string
	for _, rec := range opts.History {
		lines = append(lines, Tiles(rec, opts.Color))
	}
	if len(opts.History) > 0 {
		lines = append(lines, "")
	}

	lines = append(lines, heading(fmt.Sprintf("Guess %d · %d candidates remaining", resp.GuessCount, resp.RemainingCount), opts.Color))
	if resp.RemainingCount == 0 {
		msg := "No words match this feedback. Check the feedback or try a larger word list."
		if opts.Color {
			msg = emptyStyle.Render(msg)
		}
		lines = append(lines, msg)
		return writeLines(w, lines)
	}

	lines = append(lines, "", heading("Recommendations", opts.Color))
	lines = append(lines, RecommendationLines(resp.Recommendations)...)

	if len(resp.Fillers) > 0 {
		lines = append(lines, "", heading("Fillers (probe undecided letters)", opts.Color))
		lines = append(lines, strings.Join(resp.Fillers, " "))
	}

	if len(resp.VariablePositions) > 0 {
		lines = append(lines, "", heading("Undecided positions", opts.Color))
		lines = append(lines, PositionLines(resp.VariablePositions)...)
	}

	if opts.Show > 0 && len(resp.Candidates) > 0 {
		shown := resp.Candidates
		if len(shown) > opts.Show {
			shown = shown[:opts.Show]
		}
		title := fmt.Sprintf("Candidates (%d of %d)", len(shown), resp.RemainingCount)
		lines = append(lines, "", heading(title, opts.Color))
		lines = append(lines, wrapWords(shown, 10)...)
	}
	return writeLines(w, lines)
}

// RecommendationLines lays out ranked recommendations as a table.
func RecommendationLines(recs []solver.Recommendation) []string {
	rows := make([][]string, 0, len(recs))
	for i, rec := range recs {
		rows = append(rows, []string{
			fmt.Sprintf("%d.", i+1),
			rec.Word,
			fmt.Sprintf("%.2f", rec.Score),
		})
	}
	return Table([]string{"#", "Word", "Score"}, rows, map[int]bool{0: true, 2: true})
}

// PositionLines lists undecided positions (1-based) with their letters.
func PositionLines(positions map[int][]string) []string {
	keys := make([]int, 0, len(positions))
	for pos := range positions {
		keys = append(keys, pos)
	}
	sort.Ints(keys)
	rows := make([][]string, 0, len(keys))
	for _, pos := range keys {
		rows = append(rows, []string{fmt.Sprintf("%d", pos+1), strings.Join(positions[pos], " ")})
	}
	return Table([]string{"Pos", "Letters"}, rows, map[int]bool{0: true})
}

func heading(text string, color bool) string {
	if color {
		return headerStyle.Render(text)
	}
	return text
}

func wrapWords(words []string, perLine int) []string {
	var lines []string
	for start := 0; start < len(words); start += perLine {
		end := start + perLine
		if end > len(words) {
			end = len(words)
		}
		lines = append(lines, strings.Join(words[start:end], " "))
	}
	return lines
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
