package solver

// distinctScoringGuesses is the last guess number that scores each letter once.
const distinctScoringGuesses = 2

// GuessScore sums letter scores for word. Early guesses (1 and 2) count each
// distinct letter once; later guesses count every occurrence.
func GuessScore(word string, scores LetterScores, guessCount int) float64 {
	total := 0.0
	if guessCount > distinctScoringGuesses {
		for _, r := range word {
			total += scores[r]
		}
		return total
	}
	seen := map[rune]struct{}{}
	for _, r := range word {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		total += scores[r]
	}
	return total
}
