package wordlist

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForLang keeps words a puzzle in lang can contain: a-z for English,
// letters only for every other language.
func FilterForLang(lang string) FilterFunc {
	switch strings.ToLower(lang) {
	case "en":
		return filterEnglishASCII
	default:
		return filterLetters
	}
}

// FilterLength keeps words with exactly n letters. n <= 0 keeps everything.
func FilterLength(n int) FilterFunc {
	if n <= 0 {
		return func(string) bool { return true }
	}
	return func(word string) bool {
		return utf8.RuneCountInString(word) == n
	}
}

// Apply returns the words accepted by every filter, preserving order.
func Apply(words []string, filters ...FilterFunc) []string {
	out := make([]string, 0, len(words))
	for _, word := range words {
		keep := true
		for _, f := range filters {
			if !f(word) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, word)
		}
	}
	return out
}

func filterEnglishASCII(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}

func filterLetters(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
