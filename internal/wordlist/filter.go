package wordlist

import "unicode/utf8"

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// LengthBetween keeps words whose rune count lies in [minLength, maxLength].
func LengthBetween(minLength, maxLength int) FilterFunc {
	return func(word string) bool {
		n := utf8.RuneCountInString(word)
		return n >= minLength && n <= maxLength
	}
}

// Filter returns a new slice holding the words accepted by keep.
func Filter(words []string, keep FilterFunc) []string {
	out := make([]string, 0, len(words))
	for _, word := range words {
		if keep(word) {
			out = append(out, word)
		}
	}
	return out
}

// Dedupe drops repeated words, keeping first occurrences in order.
func Dedupe(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, word := range words {
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
	}
	return out
}
