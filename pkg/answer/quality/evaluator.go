// FILE: pkg/answer/quality/evaluator.go
// PURPOSE: Heuristic answer quality scoring (length, structure, citations, content)

package quality

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"ai-search-be/pkg/answer/intent"
)

const (
	maxSubScore  = 25
	indicatorPts = 5
)

// Score is the quality breakdown of one answer. Every sub-score is within
// [0,25] and TotalScore within [0,100].
type Score struct {
	LengthScore    int `json:"length_score"`
	StructureScore int `json:"structure_score"`
	CitationScore  int `json:"citation_score"`
	ContentScore   int `json:"content_score"`
	TotalScore     int `json:"total_score"`
}

var (
	listPattern     = regexp.MustCompile(`(?m)^\s*(?:[-*•]\s|\d+[.)]\s)`)
	headingPattern  = regexp.MustCompile(`(?m)^#{1,6}\s`)
	sentencePattern = regexp.MustCompile(`[^.!?。]+[.!?。]`)

	examplePhrases    = []string{"예를 들어", "예를 들면", "예시", "예컨대", "for example", "e.g."}
	summaryPhrases    = []string{"요약", "정리하면", "결론", "결론적으로", "in summary", "to summarize"}
	definitionWords   = []string{"이란", "란 ", "의미", "정의", "개념", "means", "is defined as", "refers to"}
	connectivePhrases = []string{"따라서", "그러므로", "하지만", "그러나", "또한", "반면", "therefore", "however", "moreover"}
)

// Evaluate scores an answer. Each sub-score is computed independently.
func Evaluate(answer string, citationCount int, category intent.Category) Score {
	s := Score{
		LengthScore:    lengthScore(answer),
		StructureScore: structureScore(answer),
		CitationScore:  citationScore(citationCount, category),
		ContentScore:   contentScore(answer),
	}
	s.TotalScore = s.LengthScore + s.StructureScore + s.CitationScore + s.ContentScore
	return s
}

func lengthScore(answer string) int {
	switch n := utf8.RuneCountInString(answer); {
	case n >= 300:
		return 25
	case n >= 200:
		return 20
	case n >= 100:
		return 15
	default:
		return 10
	}
}

func structureScore(answer string) int {
	indicators := []bool{
		strings.Contains(answer, "**"),
		headingPattern.MatchString(answer),
		listPattern.MatchString(answer),
		strings.Contains(answer, "\n\n"),
		strings.Contains(answer, ":"),
	}
	return capped(countTrue(indicators) * indicatorPts)
}

func citationScore(count int, category intent.Category) int {
	switch {
	case count >= 3:
		return 25
	case count >= 2:
		return 20
	case count >= 1:
		return 15
	case category == intent.CategoryGreeting:
		return 5
	default:
		return 0
	}
}

func contentScore(answer string) int {
	lower := strings.ToLower(answer)
	indicators := []bool{
		containsAny(lower, examplePhrases),
		containsAny(lower, summaryPhrases),
		len(sentencePattern.FindAllString(answer, -1)) >= 3,
		containsAny(lower, definitionWords),
		containsAny(lower, connectivePhrases),
	}
	return capped(countTrue(indicators) * indicatorPts)
}

func countTrue(values []bool) int {
	n := 0
	for _, v := range values {
		if v {
			n++
		}
	}
	return n
}

func capped(score int) int {
	if score > maxSubScore {
		return maxSubScore
	}
	return score
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
