package solver

import (
	"math"
	"testing"
)

func TestLetterFrequenciesOrderAndPercent(t *testing.T) {
	freqs := LetterFrequencies([]string{"cat", "car", "can"}, 3, "")
	want := []struct {
		letter  rune
		percent float64
	}{
		{'a', 33.33},
		{'c', 33.33},
		{'n', 11.11},
		{'r', 11.11},
		{'t', 11.11},
	}
	if len(freqs) != len(want) {
		t.Fatalf("expected %d letters, got %d: %+v", len(want), len(freqs), freqs)
	}
	for i, w := range want {
		if freqs[i].Letter != w.letter {
			t.Fatalf("index %d: expected %q, got %q", i, w.letter, freqs[i].Letter)
		}
		if math.Abs(freqs[i].Percent-w.percent) > 0.01 {
			t.Fatalf("letter %q: expected %.2f%%, got %.4f%%", w.letter, w.percent, freqs[i].Percent)
		}
	}
}

func TestLetterFrequenciesStripsPrefix(t *testing.T) {
	freqs := LetterFrequencies([]string{"stare", "stone", "crane"}, 5, "st")
	for _, f := range freqs {
		if f.Letter == 's' || f.Letter == 't' {
			t.Fatalf("prefix letter %q should not be counted: %+v", f.Letter, freqs)
		}
	}
	// a, r, e, o, n, e -> e is the most frequent letter.
	if len(freqs) == 0 || freqs[0].Letter != 'e' {
		t.Fatalf("expected e first, got %+v", freqs)
	}
}

func TestLetterFrequenciesNoMatches(t *testing.T) {
	freqs := LetterFrequencies([]string{"cat", "horse"}, 4, "")
	if len(freqs) != 0 {
		t.Fatalf("expected no frequencies, got %+v", freqs)
	}
}

func TestNormalizeRange(t *testing.T) {
	scores := Normalize(LetterFrequencies([]string{"cat", "car", "can"}, 3, ""))
	want := map[rune]float64{'a': 10, 'c': 10, 'n': 0, 'r': 0, 't': 0}
	for letter, score := range want {
		if got := scores[letter]; math.Abs(got-score) > 1e-9 {
			t.Fatalf("letter %q: expected %.1f, got %.4f", letter, score, got)
		}
	}
	for letter, score := range scores {
		if score < 0 || score > 10 {
			t.Fatalf("letter %q out of range: %f", letter, score)
		}
	}
}

func TestNormalizeEqualFrequencies(t *testing.T) {
	scores := Normalize([]LetterFrequency{{Letter: 'x', Percent: 50}, {Letter: 'y', Percent: 50}})
	if scores['x'] != 5.0 || scores['y'] != 5.0 {
		t.Fatalf("expected constant 5.0 scores, got %v", scores)
	}
	single := Normalize([]LetterFrequency{{Letter: 'z', Percent: 100}})
	if single['z'] != 5.0 {
		t.Fatalf("expected singleton score 5.0, got %v", single)
	}
	if len(Normalize(nil)) != 0 {
		t.Fatalf("expected empty scores for empty input")
	}
}

func TestGuessScoreScenario(t *testing.T) {
	scores := Normalize(LetterFrequencies([]string{"cat", "car", "can"}, 3, ""))
	if got := GuessScore("cat", scores, 1); math.Abs(got-20.0) > 1e-9 {
		t.Fatalf("expected 20.0, got %f", got)
	}
}

func TestGuessScoreModeSwitch(t *testing.T) {
	scores := LetterScores{'e': 2, 'r': 3, 'i': 1}
	if got := GuessScore("eerie", scores, 1); got != 6 {
		t.Fatalf("guess 1: expected distinct-letter sum 6, got %f", got)
	}
	if got := GuessScore("eerie", scores, 2); got != 6 {
		t.Fatalf("guess 2: expected distinct-letter sum 6, got %f", got)
	}
	if got := GuessScore("eerie", scores, 3); got != 10 {
		t.Fatalf("guess 3: expected full sum 10, got %f", got)
	}
	if got := GuessScore("zzz", scores, 4); got != 0 {
		t.Fatalf("unknown letters should score 0, got %f", got)
	}
}
