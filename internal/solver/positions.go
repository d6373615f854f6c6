package solver

import (
	"sort"
	"unicode/utf8"
)

// VariablePositions maps each position that still has more than one distinct
// letter across words to those letters, sorted. All words must share the
// length of the first one; shorter words simply contribute nothing past their end.
func VariablePositions(words []string) map[int][]string {
	out := map[int][]string{}
	if len(words) == 0 {
		return out
	}
	length := utf8.RuneCountInString(words[0])
	seen := make([]map[rune]struct{}, length)
	for i := range seen {
		seen[i] = map[rune]struct{}{}
	}
	for _, word := range words {
		i := 0
		for _, r := range word {
			if i >= length {
				break
			}
			seen[i][r] = struct{}{}
			i++
		}
	}
	for pos, letters := range seen {
		if len(letters) <= 1 {
			continue
		}
		list := make([]string, 0, len(letters))
		for r := range letters {
			list = append(list, string(r))
		}
		sort.Strings(list)
		out[pos] = list
	}
	return out
}
