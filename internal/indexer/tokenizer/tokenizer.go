// Package tokenizer provides text tokenisation for the retrieval engine.
// It lower-cases input, splits on the space character, and removes
// duplicate terms while preserving first-occurrence order. The same
// tokenizer is applied to documents at index time and to queries at
// search time, so the two always agree on term boundaries.
package tokenizer

import "strings"

// Tokenize breaks text into a deduplicated, ordered slice of lowercased
// terms. Splitting is on the single space character only; punctuation is
// kept as part of the adjacent term. Empty tokens (from empty input or
// consecutive spaces) are dropped.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	words := strings.Split(strings.ToLower(text), " ")
	seen := make(map[string]struct{}, len(words))
	terms := make([]string, 0, len(words))
	for _, word := range words {
		if word == "" {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		terms = append(terms, word)
	}
	return terms
}
