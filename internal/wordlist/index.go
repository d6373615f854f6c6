package wordlist

import (
	"sort"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Index is a prefix index over a dictionary that remembers word order.
type Index struct {
	words []string
	trie  *patricia.Trie
}

// NewIndex builds an index. Duplicate words keep their first position.
func NewIndex(words []string) *Index {
	idx := &Index{trie: patricia.NewTrie()}
	for _, word := range words {
		if idx.trie.Insert(patricia.Prefix(word), len(idx.words)) {
			idx.words = append(idx.words, word)
		}
	}
	return idx
}

// Len returns the number of distinct indexed words.
func (idx *Index) Len() int {
	return len(idx.words)
}

// Words returns the distinct words in dictionary order.
func (idx *Index) Words() []string {
	return append([]string(nil), idx.words...)
}

// Contains reports whether word is in the index.
func (idx *Index) Contains(word string) bool {
	return idx.trie.Get(patricia.Prefix(word)) != nil
}

// WithPrefix returns the words starting with prefix in dictionary order.
func (idx *Index) WithPrefix(prefix string) []string {
	if prefix == "" {
		return idx.Words()
	}
	var positions []int
	err := idx.trie.VisitSubtree(patricia.Prefix(prefix), func(_ patricia.Prefix, item patricia.Item) error {
		if pos, ok := item.(int); ok {
			positions = append(positions, pos)
		}
		return nil
	})
	if err != nil {
		return nil
	}
	sort.Ints(positions)
	out := make([]string, 0, len(positions))
	for _, pos := range positions {
		out = append(out, idx.words[pos])
	}
	return out
}
