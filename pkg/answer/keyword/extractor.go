// FILE: pkg/answer/keyword/extractor.go
// PURPOSE: Normalized keyword sets for relevance scoring (Korean + English)

package keyword

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Set is an unordered collection of normalized keywords.
type Set map[string]struct{}

var wordPattern = regexp.MustCompile(`[가-힣a-z0-9]+`)

// Function words dropped from every keyword set.
var stopWords = map[string]struct{}{
	"그": {}, "이": {}, "저": {}, "것": {}, "수": {}, "있": {}, "없": {}, "하": {},
	"되": {}, "된": {}, "될": {}, "로": {}, "를": {}, "의": {}, "가": {}, "은": {}, "는": {},
	"the": {}, "is": {}, "at": {}, "which": {}, "on": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "with": {}, "to": {}, "for": {}, "of": {}, "as": {}, "by": {},
}

// Extract lower-cases text and returns its keywords: runs of Hangul syllables,
// ASCII letters and digits of at least two characters that are not stop words.
// Empty or symbol-only input yields an empty set.
func Extract(text string) Set {
	set := make(Set)
	if text == "" {
		return set
	}

	for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if utf8.RuneCountInString(word) < 2 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		set[word] = struct{}{}
	}

	return set
}

// Contains reports whether word is in the set.
func (s Set) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// Sorted returns the keywords in lexical order, for logs and tests.
func (s Set) Sorted() []string {
	words := make([]string, 0, len(s))
	for w := range s {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
