package solver

import "sort"

// Recommendation is a scored guess.
type Recommendation struct {
	Word  string  `json:"word" msgpack:"word"`
	Score float64 `json:"score" msgpack:"score"`
}

// Recommend ranks the words matching length and prefix. Letter scores come
// from base so they reflect the whole vocabulary rather than the shrinking
// candidate set. Ties on score fall back to ascending word order.
func Recommend(words, base []string, length int, prefix string, guessCount, n int) []Recommendation {
	matched := MatchWords(words, length, prefix)
	scores := Normalize(LetterFrequencies(base, length, prefix))

	recs := make([]Recommendation, 0, len(matched))
	for _, word := range matched {
		recs = append(recs, Recommendation{Word: word, Score: GuessScore(word, scores, guessCount)})
	}
	sortRecommendations(recs)
	if n >= 0 && n < len(recs) {
		recs = recs[:n]
	}
	return recs
}

func sortRecommendations(recs []Recommendation) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Score == recs[j].Score {
			return recs[i].Word < recs[j].Word
		}
		return recs[i].Score > recs[j].Score
	})
}
