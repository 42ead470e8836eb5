// FILE: pkg/answer/filter/filter.go
// PURPOSE: Category-aware citation filtering and ranking

package filter

import (
	"sort"

	"ai-search-be/pkg/answer/intent"
	"ai-search-be/pkg/answer/relevance"
	"ai-search-be/pkg/answer/strategy"
)

// Stats summarizes one filtering pass.
type Stats struct {
	FilteredCount int                    `json:"filtered_count"`
	TotalCount    int                    `json:"total_count"`
	FilterRules   string                 `json:"filter_rules,omitempty"`
	MinScoreUsed  float64                `json:"min_score_used"`
	ExcludedTypes []relevance.SourceType `json:"excluded_types,omitempty"`
	FilterReason  string                 `json:"filter_reason,omitempty"`
}

// Description is the human-readable rule set that produced the stats.
func (s Stats) Description() string {
	if s.FilterRules != "" {
		return s.FilterRules
	}
	return s.FilterReason
}

// SelectedCount is the number of sources that survived.
func (s Stats) SelectedCount() int {
	return s.TotalCount - s.FilteredCount
}

type Filter struct {
	scorer  *relevance.Scorer
	catalog *strategy.Catalog
}

func New(scorer *relevance.Scorer, catalog *strategy.Catalog) *Filter {
	return &Filter{
		scorer:  scorer,
		catalog: catalog,
	}
}

// Apply scores, rejects, ranks and truncates sources for the question.
// The returned slice is never nil.
func (f *Filter) Apply(sources []relevance.Candidate, question string, category intent.Category) ([]relevance.Scored, Stats) {
	if len(sources) == 0 {
		return []relevance.Scored{}, Stats{}
	}

	rules := f.catalog.RulesFor(question, category)

	if rules.MaxSources == 0 {
		return []relevance.Scored{}, Stats{
			FilteredCount: len(sources),
			TotalCount:    len(sources),
			FilterReason:  rules.Description,
		}
	}

	survivors := make([]relevance.Scored, 0, len(sources))
	for _, source := range sources {
		scored := f.scorer.Score(question, source)

		if scored.RelevanceScore < rules.MinRelevanceScore {
			continue
		}
		if rules.Excludes(scored.SourceType) {
			continue
		}
		if !rules.AllowsURL(scored.URL) {
			continue
		}
		survivors = append(survivors, scored)
	}

	sort.SliceStable(survivors, func(i, j int) bool {
		ri := rules.PreferenceRank(survivors[i].SourceType)
		rj := rules.PreferenceRank(survivors[j].SourceType)
		if ri != rj {
			return ri < rj
		}
		return survivors[i].RelevanceScore > survivors[j].RelevanceScore
	})

	if len(survivors) > rules.MaxSources {
		survivors = survivors[:rules.MaxSources]
	}

	return survivors, Stats{
		FilteredCount: len(sources) - len(survivors),
		TotalCount:    len(sources),
		FilterRules:   rules.Description,
		MinScoreUsed:  rules.MinRelevanceScore,
		ExcludedTypes: rules.ExcludedTypes,
	}
}
