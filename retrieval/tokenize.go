// Package retrieval implements the hybrid context step: a keyword
// multiset-overlap ranking over the indexed question corpus combined
// with a similarity search against an external vector store.
package retrieval

import "strings"

// Tokenize lower-cases the text and splits it on whitespace into a
// word -> count multiset. No stemming and no punctuation stripping;
// the indexing and query sides must tokenize identically.
func Tokenize(text string) map[string]int {
	words := strings.Fields(strings.ToLower(text))
	counts := make(map[string]int, len(words))
	for _, w := range words {
		counts[w]++
	}
	return counts
}

// Overlap is the multiset intersection size of two keyword multisets:
// for every shared word it counts min(count a, count b).
func Overlap(a, b map[string]int) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	total := 0
	for word, ca := range a {
		if cb, ok := b[word]; ok {
			if cb < ca {
				total += cb
			} else {
				total += ca
			}
		}
	}
	return total
}
