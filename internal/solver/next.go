package solver

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

// Response limits.
const (
	MaxRecommendations = 9
	MaxCandidates      = 100
	MaxFillers         = 9
	// FillerThreshold is the candidate count above which fillers are suggested.
	FillerThreshold = 10
)

// Query describes the puzzle state to solve for.
type Query struct {
	Length  int
	Prefix  string
	History []HistoryEntry
}

// Response is the recommendation bundle for the next guess.
type Response struct {
	Recommendations   []Recommendation `json:"recommendations" msgpack:"recommendations"`
	Candidates        []string         `json:"candidates" msgpack:"candidates"`
	RemainingCount    int              `json:"remaining_count" msgpack:"remaining_count"`
	VariablePositions map[int][]string `json:"variable_positions" msgpack:"variable_positions"`
	Fillers           []string         `json:"fillers" msgpack:"fillers"`
	GuessCount        int              `json:"guess_count" msgpack:"guess_count"`
}

// ComputeNextMove narrows the dictionary with the query history and recommends
// the next guesses. An empty candidate set is a valid result, not an error.
func ComputeNextMove(dictionary []string, q Query) (Response, error) {
	records, err := ValidateHistory(q.History, q.Length)
	if err != nil {
		return Response{}, err
	}

	words := lowerWords(dictionary)
	prefix := strings.ToLower(q.Prefix)

	marks := make([][]Mark, 0, len(records))
	for _, rec := range records {
		marks = append(marks, rec.Marks())
	}
	candidates := FilterCandidates(MatchWords(words, q.Length, prefix), marks)
	guessCount := len(records) + 1

	recs := Recommend(candidates, words, q.Length, prefix, guessCount, MaxRecommendations)
	for i := range recs {
		recs[i].Score = roundScore(recs[i].Score)
	}

	positions := VariablePositions(candidates)
	fillers := []string{}
	if letters := variableLetters(positions); len(letters) > 0 && len(candidates) > FillerThreshold {
		fillers = Fillers(words, q.Length, letters, MaxFillers)
	}

	shown := candidates
	if len(shown) > MaxCandidates {
		shown = shown[:MaxCandidates]
	}

	return Response{
		Recommendations:   recs,
		Candidates:        append([]string{}, shown...),
		RemainingCount:    len(candidates),
		VariablePositions: positions,
		Fillers:           fillers,
		GuessCount:        guessCount,
	}, nil
}

// Fillers ranks words of the given length by how many distinct letters from
// letters they contain, ties by ascending word. Words with none are skipped.
func Fillers(words []string, length int, letters map[rune]struct{}, n int) []string {
	type item struct {
		word     string
		coverage int
	}
	items := []item{}
	for _, word := range words {
		if utf8.RuneCountInString(word) != length {
			continue
		}
		seen := map[rune]struct{}{}
		for _, r := range word {
			if _, ok := letters[r]; ok {
				seen[r] = struct{}{}
			}
		}
		if len(seen) == 0 {
			continue
		}
		items = append(items, item{word: word, coverage: len(seen)})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].coverage == items[j].coverage {
			return items[i].word < items[j].word
		}
		return items[i].coverage > items[j].coverage
	})
	if n >= 0 && n < len(items) {
		items = items[:n]
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.word)
	}
	return out
}

func variableLetters(positions map[int][]string) map[rune]struct{} {
	letters := map[rune]struct{}{}
	for _, list := range positions {
		for _, s := range list {
			for _, r := range s {
				letters[r] = struct{}{}
			}
		}
	}
	return letters
}

func lowerWords(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}

func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}
