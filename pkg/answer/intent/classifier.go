// FILE: pkg/answer/intent/classifier.go
// PURPOSE: Rule-based question classification (first matching rule wins)

package intent

import (
	"strings"
	"unicode/utf8"
)

// Category is the classified intent of a user question.
type Category string

const (
	CategoryGreeting   Category = "greeting"
	CategoryRealtime   Category = "realtime"
	CategoryLearning   Category = "learning"
	CategoryInfoSearch Category = "info_search"
	CategoryGeneral    Category = "general"

	// CategoryCoding is never returned by Classify. It names the filter-rule
	// override applied when IsCoding matches.
	CategoryCoding Category = "coding"
)

// greetingMaxLength is the trimmed rune length up to which a message may be a greeting.
const greetingMaxLength = 10

var (
	greetingKeywords = []string{
		"안녕", "하이", "반가", "고마워", "고맙", "감사", "ㅎㅇ", "hello", "hey", "thanks", "thank you",
	}
	realtimeKeywords = []string{
		"오늘", "지금", "현재", "최신", "최근", "실시간", "날씨", "뉴스", "속보", "주가", "환율",
		"today", "now", "latest", "current", "weather", "news",
	}
	learningKeywords = []string{
		"공부", "학습", "배우", "가르쳐", "설명해", "원리", "개념", "이론", "연구", "논문",
		"learn", "study", "explain", "tutorial", "concept",
	}
	infoSearchKeywords = []string{
		"뭐야", "무엇", "누구", "어디", "언제", "얼마", "어떻게", "방법", "추천", "정보", "알려",
		"what", "who", "where", "when", "how", "recommend",
	}
	codingKeywords = []string{
		"코딩", "프로그래밍", "python", "javascript", "개발", "code",
	}
)

// Classify maps a message to exactly one category. Rules are evaluated in a
// fixed priority order because a message can match several keyword sets.
func Classify(text string) Category {
	normalized := strings.ToLower(strings.TrimSpace(text))

	switch {
	case utf8.RuneCountInString(normalized) <= greetingMaxLength && containsAny(normalized, greetingKeywords):
		return CategoryGreeting
	case containsAny(normalized, realtimeKeywords):
		return CategoryRealtime
	case containsAny(normalized, learningKeywords):
		return CategoryLearning
	case containsAny(normalized, infoSearchKeywords):
		return CategoryInfoSearch
	default:
		return CategoryGeneral
	}
}

// IsCoding reports whether the question mentions programming, regardless of
// its category.
func IsCoding(text string) bool {
	return containsAny(strings.ToLower(text), codingKeywords)
}

// ParseCategory converts a stored value back to a Category, defaulting to general.
func ParseCategory(value string) Category {
	switch c := Category(strings.ToLower(strings.TrimSpace(value))); c {
	case CategoryGreeting, CategoryRealtime, CategoryLearning, CategoryInfoSearch, CategoryGeneral, CategoryCoding:
		return c
	default:
		return CategoryGeneral
	}
}

// shortWordMaxLength is the length up to which an English keyword must match
// a whole word ("now" must not match inside "know").
const shortWordMaxLength = 4

// containsAny matches Korean keywords as plain substrings. English keywords
// must start at a word boundary, and short ones must also end at one.
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if !isASCIIWord(kw) {
			if strings.Contains(text, kw) {
				return true
			}
			continue
		}
		if containsWord(text, kw, len(kw) <= shortWordMaxLength) {
			return true
		}
	}
	return false
}

func containsWord(text, word string, whole bool) bool {
	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], word)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(word)
		if !isASCIILetter(text, start-1) && (!whole || !isASCIILetter(text, end)) {
			return true
		}
		offset = start + 1
	}
	return false
}

func isASCIIWord(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func isASCIILetter(text string, i int) bool {
	if i < 0 || i >= len(text) {
		return false
	}
	c := text[i]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
