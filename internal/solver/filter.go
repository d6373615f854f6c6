package solver

// MarkCounts holds per-letter counts of Correct and Present marks within one guess.
type MarkCounts struct {
	Correct map[rune]int
	Present map[rune]int
}

// CountMarks tallies Correct and Present marks per letter.
func CountMarks(marks []Mark) MarkCounts {
	counts := MarkCounts{Correct: map[rune]int{}, Present: map[rune]int{}}
	for _, m := range marks {
		switch m.Feedback {
		case Correct:
			counts.Correct[m.Letter]++
		case Present:
			counts.Present[m.Letter]++
		}
	}
	return counts
}

// Possible reports whether word is consistent with a single guess's marks.
//
// A Correct letter must sit at its position and occur at least as often as it
// was marked Correct. A Present letter must occur elsewhere and more often
// than it was marked Correct. An Absent letter may only occur as often as it
// was confirmed by Correct and Present marks in the same guess.
func Possible(word string, marks []Mark, counts MarkCounts) bool {
	runes := []rune(word)
	if len(runes) != len(marks) {
		return false
	}
	occurrences := make(map[rune]int, len(marks))
	for _, m := range marks {
		if _, ok := occurrences[m.Letter]; ok {
			continue
		}
		n := 0
		for _, r := range runes {
			if r == m.Letter {
				n++
			}
		}
		occurrences[m.Letter] = n
	}

	for i, m := range marks {
		n := occurrences[m.Letter]
		switch m.Feedback {
		case Correct:
			if runes[i] != m.Letter || n < counts.Correct[m.Letter] {
				return false
			}
		case Present:
			if n == 0 || runes[i] == m.Letter || n <= counts.Correct[m.Letter] {
				return false
			}
		case Absent:
			if n > 0 && n > counts.Correct[m.Letter]+counts.Present[m.Letter] {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// ApplyMarks keeps the candidates consistent with one guess.
func ApplyMarks(candidates []string, marks []Mark) []string {
	counts := CountMarks(marks)
	out := make([]string, 0, len(candidates))
	for _, word := range candidates {
		if Possible(word, marks, counts) {
			out = append(out, word)
		}
	}
	return out
}

// FilterCandidates applies each guess in order, each pass narrowing the previous result.
func FilterCandidates(candidates []string, history [][]Mark) []string {
	out := append([]string(nil), candidates...)
	for _, marks := range history {
		out = ApplyMarks(out, marks)
	}
	if out == nil {
		out = []string{}
	}
	return out
}
