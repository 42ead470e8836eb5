// FILE: pkg/answer/strategy/config.go
// PURPOSE: Response configuration and filter rules per question category

package strategy

import (
	"strings"

	"ai-search-be/pkg/answer/relevance"
)

// SearchScope is the user's stored search preference.
type SearchScope string

const (
	ScopeGeneral  SearchScope = "general"
	ScopeNews     SearchScope = "news"
	ScopeAcademic SearchScope = "academic"
)

// ParseSearchScope defaults to general for empty or unknown values.
func ParseSearchScope(value string) SearchScope {
	switch s := SearchScope(strings.ToLower(strings.TrimSpace(value))); s {
	case ScopeNews, ScopeAcademic:
		return s
	default:
		return ScopeGeneral
	}
}

// Recency limits how far back the web search may look.
type Recency string

const (
	RecencyNone  Recency = ""
	RecencyDay   Recency = "day"
	RecencyMonth Recency = "month"
	RecencyYear  Recency = "year"
)

// ResponseConfig governs how a question is answered.
//
// When UseSearch is false, DirectResponse is set and MaxSources is 0.
// When UseSearch is true, PromptPrefix and RecencyFilter are set.
type ResponseConfig struct {
	UseSearch      bool    `json:"use_search"`
	PromptPrefix   string  `json:"prompt_prefix,omitempty"`
	RecencyFilter  Recency `json:"recency_filter,omitempty"`
	MaxSources     int     `json:"max_sources"`
	DirectResponse string  `json:"direct_response,omitempty"`
}

// ExcludeAll is the excluded-type sentinel that rejects every source.
const ExcludeAll relevance.SourceType = "all"

// FilterRules decide which scored citations survive and in which order.
type FilterRules struct {
	MinRelevanceScore float64                `json:"min_relevance_score"`
	ExcludedTypes     []relevance.SourceType `json:"excluded_types"`
	PreferredTypes    []relevance.SourceType `json:"preferred_types,omitempty"`
	MaxSources        int                    `json:"max_sources"`
	AllowedDomains    []string               `json:"allowed_domains,omitempty"`
	Description       string                 `json:"description"`
}

// Excludes reports whether sources of type t are rejected outright.
func (r FilterRules) Excludes(t relevance.SourceType) bool {
	for _, excluded := range r.ExcludedTypes {
		if excluded == ExcludeAll || excluded == t {
			return true
		}
	}
	return false
}

// PreferenceRank is the index of t in PreferredTypes, or len(PreferredTypes)
// when t is not preferred.
func (r FilterRules) PreferenceRank(t relevance.SourceType) int {
	for i, preferred := range r.PreferredTypes {
		if preferred == t {
			return i
		}
	}
	return len(r.PreferredTypes)
}

// AllowsURL reports whether rawURL passes the allowed-domain list. An empty
// list allows everything.
func (r FilterRules) AllowsURL(rawURL string) bool {
	if len(r.AllowedDomains) == 0 {
		return true
	}
	for _, domain := range r.AllowedDomains {
		if strings.Contains(rawURL, domain) {
			return true
		}
	}
	return false
}
