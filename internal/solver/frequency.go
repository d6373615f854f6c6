package solver

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// LetterFrequency is a letter's share of all counted letter occurrences, in percent.
type LetterFrequency struct {
	Letter  rune    `json:"letter" msgpack:"letter"`
	Percent float64 `json:"percent" msgpack:"percent"`
}

// LetterScores maps letters to normalized scores in [0,10].
type LetterScores map[rune]float64

// MatchWords keeps words of the given length that start with prefix, in input order.
func MatchWords(words []string, length int, prefix string) []string {
	out := make([]string, 0, len(words))
	for _, word := range words {
		if matches(word, length, prefix) {
			out = append(out, word)
		}
	}
	return out
}

func matches(word string, length int, prefix string) bool {
	if utf8.RuneCountInString(word) != length {
		return false
	}
	return prefix == "" || strings.HasPrefix(word, prefix)
}

// LetterFrequencies counts letters after the prefix across matching words.
// The result is ordered by descending share, ties by ascending letter.
func LetterFrequencies(words []string, length int, prefix string) []LetterFrequency {
	counts := map[rune]int{}
	total := 0
	for _, word := range words {
		if !matches(word, length, prefix) {
			continue
		}
		for _, r := range strings.TrimPrefix(word, prefix) {
			counts[r]++
			total++
		}
	}
	if total == 0 {
		return []LetterFrequency{}
	}

	letters := make([]rune, 0, len(counts))
	for r := range counts {
		letters = append(letters, r)
	}
	sort.Slice(letters, func(i, j int) bool {
		ci, cj := counts[letters[i]], counts[letters[j]]
		if ci == cj {
			return letters[i] < letters[j]
		}
		return ci > cj
	})

	out := make([]LetterFrequency, 0, len(letters))
	for _, r := range letters {
		out = append(out, LetterFrequency{
			Letter:  r,
			Percent: float64(counts[r]) / float64(total) * 100,
		})
	}
	return out
}

// Normalize rescales frequencies onto [0,10]. Equal frequencies all score 5.
func Normalize(freqs []LetterFrequency) LetterScores {
	scores := LetterScores{}
	if len(freqs) == 0 {
		return scores
	}
	minVal := freqs[0].Percent
	maxVal := freqs[0].Percent
	for _, f := range freqs[1:] {
		if f.Percent < minVal {
			minVal = f.Percent
		}
		if f.Percent > maxVal {
			maxVal = f.Percent
		}
	}
	if maxVal == minVal {
		for _, f := range freqs {
			scores[f.Letter] = 5.0
		}
		return scores
	}
	span := maxVal - minVal
	for _, f := range freqs {
		scores[f.Letter] = (f.Percent - minVal) / span * 10
	}
	return scores
}
