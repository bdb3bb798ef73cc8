package caseanalysis

import (
	"strings"
	"unicode"
)

const (
	fuzzyMinWordLength   = 5
	fuzzyMaxEditDistance = 1
)

func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func textWords(norm string) []string {
	return strings.FieldsFunc(norm, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// phraseIndex reports the byte offset of the first occurrence of phrase in
// norm, or -1. Single-word phrases long enough to carry signal also match
// text words within a bounded edit distance, so common misspellings
// ("colision") still hit their taxonomy entry.
func phraseIndex(norm string, words []string, phrase string) int {
	p := strings.ToLower(phrase)
	if i := strings.Index(norm, p); i >= 0 {
		return i
	}
	if strings.ContainsRune(p, ' ') || len(p) < fuzzyMinWordLength {
		return -1
	}
	for _, w := range words {
		if len(w) >= fuzzyMinWordLength && editDistance(w, p) <= fuzzyMaxEditDistance {
			return strings.Index(norm, w)
		}
	}
	return -1
}

func phraseInText(norm string, words []string, phrase string) bool {
	return phraseIndex(norm, words, phrase) >= 0
}

func entryMatches(norm string, words []string, e PhraseEntry) bool {
	for _, p := range e.Phrases {
		if phraseInText(norm, words, p) {
			return true
		}
	}
	return false
}

func entryFirstIndex(norm string, words []string, e PhraseEntry) int {
	best := -1
	for _, p := range e.Phrases {
		if i := phraseIndex(norm, words, p); i >= 0 && (best < 0 || i < best) {
			best = i
		}
	}
	return best
}

func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for i := range prev {
		prev[i] = i
	}
	for j := 1; j <= len(rb); j++ {
		curr[0] = j
		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[i] = min(curr[i-1]+1, prev[i]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(ra)]
}
