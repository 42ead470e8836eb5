package strategy

import (
	"testing"

	"ai-search-be/pkg/answer/intent"
	"ai-search-be/pkg/answer/relevance"

	"github.com/stretchr/testify/assert"
)

var searchCategories = []intent.Category{
	intent.CategoryRealtime,
	intent.CategoryLearning,
	intent.CategoryInfoSearch,
	intent.CategoryGeneral,
}

func TestResolveGreeting(t *testing.T) {
	catalog := DefaultCatalog()

	for _, scope := range []SearchScope{ScopeGeneral, ScopeNews, ScopeAcademic} {
		t.Run(string(scope), func(t *testing.T) {
			config := catalog.Resolve(intent.CategoryGreeting, scope)

			assert.False(t, config.UseSearch)
			assert.NotEmpty(t, config.DirectResponse)
			assert.Equal(t, 0, config.MaxSources)
			assert.Equal(t, RecencyNone, config.RecencyFilter)
			assert.Empty(t, config.PromptPrefix)
		})
	}
}

func TestResolveSearchInvariants(t *testing.T) {
	catalog := DefaultCatalog()

	for _, category := range searchCategories {
		for _, scope := range []SearchScope{ScopeGeneral, ScopeNews, ScopeAcademic} {
			t.Run(string(category)+"/"+string(scope), func(t *testing.T) {
				config := catalog.Resolve(category, scope)

				assert.True(t, config.UseSearch)
				assert.NotEmpty(t, config.PromptPrefix)
				assert.NotEqual(t, RecencyNone, config.RecencyFilter)
				assert.Greater(t, config.MaxSources, 0)
				assert.Empty(t, config.DirectResponse)
			})
		}
	}
}

func TestResolveScopeAdjustments(t *testing.T) {
	catalog := DefaultCatalog()

	tests := []struct {
		name         string
		category     intent.Category
		scope        SearchScope
		wantRecency  Recency
		wantAcademic bool
	}{
		{"realtime general", intent.CategoryRealtime, ScopeGeneral, RecencyDay, false},
		{"realtime news stays day", intent.CategoryRealtime, ScopeNews, RecencyDay, false},
		{"learning general", intent.CategoryLearning, ScopeGeneral, RecencyYear, false},
		{"info search general", intent.CategoryInfoSearch, ScopeGeneral, RecencyMonth, false},
		{"info search news", intent.CategoryInfoSearch, ScopeNews, RecencyDay, false},
		{"general academic", intent.CategoryGeneral, ScopeAcademic, RecencyYear, true},
		{"realtime academic", intent.CategoryRealtime, ScopeAcademic, RecencyYear, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := catalog.Resolve(tt.category, tt.scope)

			assert.Equal(t, tt.wantRecency, config.RecencyFilter)
			if tt.wantAcademic {
				assert.Contains(t, config.PromptPrefix, AcademicClause)
			} else {
				assert.NotContains(t, config.PromptPrefix, AcademicClause)
			}
		})
	}
}

func TestResolveDoesNotMutateCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	catalog.Resolve(intent.CategoryGeneral, ScopeAcademic)
	config := catalog.Resolve(intent.CategoryGeneral, ScopeGeneral)

	assert.NotContains(t, config.PromptPrefix, AcademicClause)
	assert.Equal(t, RecencyMonth, config.RecencyFilter)
}

func TestResolveRealtimeScenario(t *testing.T) {
	catalog := DefaultCatalog()
	category := intent.Classify("오늘 날씨 어때?")

	config := catalog.Resolve(category, ScopeGeneral)

	assert.Equal(t, intent.CategoryRealtime, category)
	assert.True(t, config.UseSearch)
	assert.Equal(t, RecencyDay, config.RecencyFilter)
	assert.Equal(t, 4, config.MaxSources)
}

func TestResolveUnknownCategoryFallsBackToGeneral(t *testing.T) {
	catalog := DefaultCatalog()

	assert.Equal(t,
		catalog.Resolve(intent.CategoryGeneral, ScopeGeneral),
		catalog.Resolve(intent.Category("weird"), ScopeGeneral),
	)
}

func TestRulesFor(t *testing.T) {
	catalog := DefaultCatalog()

	tests := []struct {
		name      string
		question  string
		category  intent.Category
		wantMin   float64
		wantMax   int
		wantAllow bool
	}{
		{"greeting", "안녕", intent.CategoryGreeting, 0, 0, false},
		{"info search", "서울 맛집 추천", intent.CategoryInfoSearch, 60, 5, false},
		{"learning", "양자역학 개념", intent.CategoryLearning, 70, 4, false},
		{"realtime", "오늘 뉴스", intent.CategoryRealtime, 65, 5, false},
		{"general", "인생이란", intent.CategoryGeneral, 55, 5, false},
		{"coding overrides learning", "python 개념 설명해줘", intent.CategoryLearning, 75, 4, true},
		{"coding overrides realtime", "최신 javascript 프레임워크", intent.CategoryRealtime, 75, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := catalog.RulesFor(tt.question, tt.category)

			assert.Equal(t, tt.wantMin, rules.MinRelevanceScore)
			assert.Equal(t, tt.wantMax, rules.MaxSources)
			assert.Equal(t, tt.wantAllow, len(rules.AllowedDomains) > 0)
		})
	}
}

func TestFilterRulesHelpers(t *testing.T) {
	rules := DefaultCatalog().CodingRules()

	assert.True(t, rules.Excludes(relevance.SourceSocial))
	assert.False(t, rules.Excludes(relevance.SourceTech))
	assert.Equal(t, 0, rules.PreferenceRank(relevance.SourceTech))
	assert.Equal(t, 2, rules.PreferenceRank(relevance.SourceAcademic))
	assert.Equal(t, 3, rules.PreferenceRank(relevance.SourceBlog))
	assert.True(t, rules.AllowsURL("https://docs.python.org/3/"))
	assert.False(t, rules.AllowsURL("https://blog.naver.com/x"))

	greeting := DefaultCatalog().Profile(intent.CategoryGreeting).Rules
	assert.True(t, greeting.Excludes(relevance.SourceOfficial))
	assert.True(t, greeting.AllowsURL("https://anything.example"))
}

func TestWithMinScores(t *testing.T) {
	base := DefaultCatalog()
	tuned := base.WithMinScores(map[intent.Category]float64{
		intent.CategoryGeneral: 40,
		intent.CategoryCoding:  80,
	})

	assert.Equal(t, 40.0, tuned.RulesFor("인생이란", intent.CategoryGeneral).MinRelevanceScore)
	assert.Equal(t, 80.0, tuned.RulesFor("python", intent.CategoryGeneral).MinRelevanceScore)
	assert.Equal(t, 55.0, base.RulesFor("인생이란", intent.CategoryGeneral).MinRelevanceScore)
	assert.Equal(t, 75.0, base.RulesFor("python", intent.CategoryGeneral).MinRelevanceScore)
}

func TestParseSearchScope(t *testing.T) {
	assert.Equal(t, ScopeNews, ParseSearchScope("news"))
	assert.Equal(t, ScopeAcademic, ParseSearchScope(" Academic "))
	assert.Equal(t, ScopeGeneral, ParseSearchScope(""))
	assert.Equal(t, ScopeGeneral, ParseSearchScope("sports"))
}
