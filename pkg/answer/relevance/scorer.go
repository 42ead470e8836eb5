// FILE: pkg/answer/relevance/scorer.go
// PURPOSE: Question-to-citation relevance scoring (keyword overlap, domain trust, type fit)

package relevance

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"ai-search-be/internal/pkg/logger"
	"ai-search-be/pkg/answer/keyword"
)

// Candidate is a citation as returned by the language model.
type Candidate struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Excerpt string `json:"excerpt,omitempty"`
}

// Scored is a Candidate annotated with its relevance analysis.
type Scored struct {
	Candidate
	RelevanceScore float64    `json:"relevance_score"`
	KeywordScore   float64    `json:"keyword_score"`
	DomainScore    float64    `json:"domain_score"`
	TypeScore      float64    `json:"type_score"`
	Domain         string     `json:"domain"`
	SourceType     SourceType `json:"source_type"`
}

const (
	keywordWeight = 0.5
	domainWeight  = 0.3
	typeWeight    = 0.2

	maxScore = 100.0
)

var (
	newsSignals     = []string{"뉴스", "최신", "현재", "오늘"}
	studySignals    = []string{"학습", "공부", "연구", "논문", "이론"}
	codingSignals   = []string{"코딩", "프로그래밍", "python", "javascript", "개발"}
	newsTypeBonus   = 15.0
	studyTypeBonus  = 15.0
	codingTypeBonus = 20.0
)

// testHookScore runs at the start of every Score call when set.
var testHookScore func(Candidate)

// Scorer computes relevance scores against a fixed set of tables.
// It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	tables Tables
	logger logger.ILogger
}

func NewScorer(tables Tables, log logger.ILogger) *Scorer {
	if tables.exact == nil {
		tables = NewTables(tables.DomainTrust, tables.TypePatterns, tables.TypeScores)
	}
	return &Scorer{
		tables: tables,
		logger: log,
	}
}

// Score never fails: any internal fault degrades to a fixed low score so a
// single bad citation cannot block the answer.
func (s *Scorer) Score(question string, c Candidate) (scored Scored) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("RELEVANCE", "Source scoring failed, using fallback score", map[string]interface{}{
				"url":   c.URL,
				"error": fmt.Sprint(r),
			})
			scored = Fallback(c)
		}
	}()

	if testHookScore != nil {
		testHookScore(c)
	}

	questionKeywords := keyword.Extract(question)
	sourceKeywords := keyword.Extract(c.Title + " " + c.Excerpt)

	kw := keywordScore(questionKeywords, sourceKeywords)
	domain := s.domainScore(c.URL)
	sourceType := s.Classify(c.URL)
	typeFit := s.typeScore(sourceType, question)

	host, _ := hostOf(c.URL)

	return Scored{
		Candidate:      c,
		RelevanceScore: kw*keywordWeight + domain*domainWeight + typeFit*typeWeight,
		KeywordScore:   kw,
		DomainScore:    domain,
		TypeScore:      typeFit,
		Domain:         host,
		SourceType:     sourceType,
	}
}

// Fallback is the degraded score assigned when analysis fails.
func Fallback(c Candidate) Scored {
	return Scored{
		Candidate:      c,
		RelevanceScore: 30,
		KeywordScore:   0,
		DomainScore:    30,
		TypeScore:      30,
		SourceType:     SourceUnknown,
	}
}

// Classify returns the first source type whose pattern occurs in the URL's
// host or path.
func (s *Scorer) Classify(rawURL string) SourceType {
	if rawURL == "" {
		return SourceUnknown
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return SourceUnknown
	}
	host := strings.ToLower(u.Host)
	path := strings.ToLower(u.Path)

	for _, tp := range s.tables.TypePatterns {
		for _, pattern := range tp.Patterns {
			if strings.Contains(host, pattern) || strings.Contains(path, pattern) {
				return tp.Type
			}
		}
	}
	return SourceGeneral
}

func (s *Scorer) domainScore(rawURL string) float64 {
	host, ok := hostOf(rawURL)
	if !ok {
		return malformedDomainScore
	}

	if score, found := s.tables.exact[host]; found {
		return score
	}
	for _, entry := range s.tables.DomainTrust {
		if strings.Contains(host, entry.Domain) {
			return entry.Score
		}
	}
	return defaultDomainScore
}

func (s *Scorer) typeScore(sourceType SourceType, question string) float64 {
	score, ok := s.tables.TypeScores[sourceType]
	if !ok {
		score = unknownTypeScore
	}

	q := strings.ToLower(question)
	if sourceType == SourceNews && containsAny(q, newsSignals) {
		score += newsTypeBonus
	}
	if (sourceType == SourceAcademic || sourceType == SourceWiki) && containsAny(q, studySignals) {
		score += studyTypeBonus
	}
	if sourceType == SourceTech && containsAny(q, codingSignals) {
		score += codingTypeBonus
	}

	return math.Min(maxScore, score)
}

// keywordScore counts exact overlaps twice and partial (substring) overlaps
// half, normalized by the question's keyword count.
func keywordScore(question, source keyword.Set) float64 {
	if len(question) == 0 || len(source) == 0 {
		return 0
	}

	exact := 0
	partial := 0.0
	for q := range question {
		if source.Contains(q) {
			exact++
		}
		for s := range source {
			if strings.Contains(s, q) || strings.Contains(q, s) {
				partial += 0.5
				break
			}
		}
	}

	total := (float64(exact)*2 + partial) / float64(len(question))
	return math.Min(maxScore, total*50)
}

func hostOf(rawURL string) (string, bool) {
	if strings.TrimSpace(rawURL) == "" {
		return "", false
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", false
	}
	return strings.ToLower(u.Host), true
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
