// FILE: pkg/answer/strategy/catalog.go
// PURPOSE: Category-indexed profiles (config + filter rules) and the coding override

package strategy

import (
	"ai-search-be/pkg/answer/intent"
	"ai-search-be/pkg/answer/relevance"
)

// AcademicClause is appended to the prompt prefix for users who prefer
// academic sources.
const AcademicClause = "학술 논문과 전문 자료를 우선적으로 참고하여 근거를 밝혀주세요. "

// GreetingReply is the canned answer for greetings.
const GreetingReply = "안녕하세요! 궁금한 것이 있으면 무엇이든 물어보세요. 최신 정보를 검색해서 출처와 함께 답변해드릴게요."

// Profile is the answer strategy for one category.
type Profile struct {
	Category intent.Category
	Config   ResponseConfig
	Rules    FilterRules
}

// Catalog holds one Profile per category plus the coding override rules.
// A Catalog is read-only after construction.
type Catalog struct {
	profiles map[intent.Category]Profile
	coding   FilterRules
}

var commonExcluded = []relevance.SourceType{relevance.SourceSocial, relevance.SourceEntertainment}

func defaultProfiles() []Profile {
	return []Profile{
		{
			Category: intent.CategoryGreeting,
			Config: ResponseConfig{
				UseSearch:      false,
				MaxSources:     0,
				DirectResponse: GreetingReply,
			},
			Rules: FilterRules{
				MinRelevanceScore: 0,
				ExcludedTypes:     []relevance.SourceType{ExcludeAll},
				MaxSources:        0,
				Description:       "인사말 - 검색 비활성화",
			},
		},
		{
			Category: intent.CategoryRealtime,
			Config: ResponseConfig{
				UseSearch:     true,
				PromptPrefix:  "가장 최근의 정보를 기준으로 답변하고, 정보의 날짜와 출처를 함께 알려주세요. ",
				RecencyFilter: RecencyDay,
				MaxSources:    4,
			},
			Rules: FilterRules{
				MinRelevanceScore: 65,
				ExcludedTypes:     []relevance.SourceType{relevance.SourceSocial, relevance.SourceEntertainment, relevance.SourceBlog},
				PreferredTypes:    []relevance.SourceType{relevance.SourceNews, relevance.SourceOfficial},
				MaxSources:        5,
				Description:       "실시간 정보 - 뉴스 및 공식 소스 우선",
			},
		},
		{
			Category: intent.CategoryLearning,
			Config: ResponseConfig{
				UseSearch:     true,
				PromptPrefix:  "개념과 원리를 단계별로 설명하고, 이해를 돕는 예시를 포함해주세요. ",
				RecencyFilter: RecencyYear,
				MaxSources:    5,
			},
			Rules: FilterRules{
				MinRelevanceScore: 70,
				ExcludedTypes:     commonExcluded,
				PreferredTypes:    []relevance.SourceType{relevance.SourceAcademic, relevance.SourceWiki, relevance.SourceOfficial},
				MaxSources:        4,
				Description:       "학습 질문 - 교육적 소스 우선",
			},
		},
		{
			Category: intent.CategoryInfoSearch,
			Config: ResponseConfig{
				UseSearch:     true,
				PromptPrefix:  "신뢰할 수 있는 출처를 바탕으로 핵심 정보를 정리해주세요. ",
				RecencyFilter: RecencyMonth,
				MaxSources:    5,
			},
			Rules: FilterRules{
				MinRelevanceScore: 60,
				ExcludedTypes:     commonExcluded,
				PreferredTypes:    []relevance.SourceType{relevance.SourceOfficial, relevance.SourceNews, relevance.SourceAcademic, relevance.SourceWiki},
				MaxSources:        5,
				Description:       "정보 검색 - 신뢰할 수 있는 소스 우선",
			},
		},
		{
			Category: intent.CategoryGeneral,
			Config: ResponseConfig{
				UseSearch:     true,
				PromptPrefix:  "정확하고 유용한 정보를 제공해주세요. ",
				RecencyFilter: RecencyMonth,
				MaxSources:    5,
			},
			Rules: FilterRules{
				MinRelevanceScore: 55,
				ExcludedTypes:     commonExcluded,
				PreferredTypes:    []relevance.SourceType{relevance.SourceWiki, relevance.SourceOfficial, relevance.SourceNews},
				MaxSources:        5,
				Description:       "일반 질문 - 균형잡힌 필터링",
			},
		},
	}
}

func defaultCodingRules() FilterRules {
	return FilterRules{
		MinRelevanceScore: 75,
		ExcludedTypes:     commonExcluded,
		PreferredTypes:    []relevance.SourceType{relevance.SourceTech, relevance.SourceOfficial, relevance.SourceAcademic},
		MaxSources:        4,
		AllowedDomains:    []string{"github.com", "stackoverflow.com", "docs."},
		Description:       "코딩 질문 - 기술 문서 우선",
	}
}

func DefaultCatalog() *Catalog {
	profiles := make(map[intent.Category]Profile)
	for _, p := range defaultProfiles() {
		profiles[p.Category] = p
	}
	return &Catalog{
		profiles: profiles,
		coding:   defaultCodingRules(),
	}
}

// WithMinScores returns a copy of the catalog whose min_relevance_score is
// replaced for the given categories. The coding key targets the override rules.
func (c *Catalog) WithMinScores(overrides map[intent.Category]float64) *Catalog {
	profiles := make(map[intent.Category]Profile, len(c.profiles))
	for category, p := range c.profiles {
		profiles[category] = p
	}
	coding := c.coding

	for category, score := range overrides {
		if category == intent.CategoryCoding {
			coding.MinRelevanceScore = score
			continue
		}
		if p, ok := profiles[category]; ok {
			p.Rules.MinRelevanceScore = score
			profiles[category] = p
		}
	}

	return &Catalog{
		profiles: profiles,
		coding:   coding,
	}
}

// Profile returns the profile for category, falling back to general.
func (c *Catalog) Profile(category intent.Category) Profile {
	if p, ok := c.profiles[category]; ok {
		return p
	}
	return c.profiles[intent.CategoryGeneral]
}

// Resolve returns the response config for category adjusted to the user's
// scope. Scope adjustments only apply when the category searches.
func (c *Catalog) Resolve(category intent.Category, scope SearchScope) ResponseConfig {
	config := c.Profile(category).Config
	if !config.UseSearch {
		return config
	}

	switch scope {
	case ScopeNews:
		config.RecencyFilter = RecencyDay
	case ScopeAcademic:
		config.RecencyFilter = RecencyYear
		config.PromptPrefix += AcademicClause
	}
	return config
}

// RulesFor returns the filter rules for a question. Programming questions
// get the coding rules whatever their category.
func (c *Catalog) RulesFor(question string, category intent.Category) FilterRules {
	if intent.IsCoding(question) {
		return c.coding
	}
	return c.Profile(category).Rules
}

// CodingRules exposes the override rule set.
func (c *Catalog) CodingRules() FilterRules {
	return c.coding
}
