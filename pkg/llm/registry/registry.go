// Package registry lists the chat models users can pick.
package registry

const (
	ProviderPerplexity = "perplexity"
	ProviderOpenAI     = "openai"
	ProviderOllama     = "ollama"
)

// DefaultModelID is used when a request names no model or an unknown one.
const DefaultModelID = "sonar-pro"

type Model struct {
	ID             string   `json:"id"`
	DisplayName    string   `json:"display_name"`
	Description    string   `json:"description"`
	HasWebSearch   bool     `json:"has_web_search"`
	RecommendedFor []string `json:"recommended_for"`
	Icon           string   `json:"icon"`
	Provider       string   `json:"provider"`
}

var defaultModels = []Model{
	{
		ID:             "sonar-pro",
		DisplayName:    "Sonar Pro",
		Description:    "심층 웹 검색과 풍부한 출처를 제공하는 고급 검색 모델",
		HasWebSearch:   true,
		RecommendedFor: []string{"info_search", "learning", "realtime"},
		Icon:           "fa-solid fa-magnifying-glass-plus",
		Provider:       ProviderPerplexity,
	},
	{
		ID:             "sonar",
		DisplayName:    "Sonar",
		Description:    "빠르고 가벼운 웹 검색 모델",
		HasWebSearch:   true,
		RecommendedFor: []string{"realtime", "general"},
		Icon:           "fa-solid fa-bolt",
		Provider:       ProviderPerplexity,
	},
	{
		ID:             "sonar-reasoning",
		DisplayName:    "Sonar Reasoning",
		Description:    "단계적 추론이 필요한 질문에 강한 검색 모델",
		HasWebSearch:   true,
		RecommendedFor: []string{"learning"},
		Icon:           "fa-solid fa-brain",
		Provider:       ProviderPerplexity,
	},
	{
		ID:             "r1-1776",
		DisplayName:    "R1-1776",
		Description:    "웹 검색 없이 학습된 지식으로 답변하는 오프라인 모델",
		HasWebSearch:   false,
		RecommendedFor: []string{"general"},
		Icon:           "fa-solid fa-book",
		Provider:       ProviderPerplexity,
	},
	{
		ID:             "gpt-4o-mini",
		DisplayName:    "GPT-4o mini",
		Description:    "OpenAI 호환 API를 사용하는 범용 대화 모델",
		HasWebSearch:   false,
		RecommendedFor: []string{"general", "learning"},
		Icon:           "fa-solid fa-robot",
		Provider:       ProviderOpenAI,
	},
	{
		ID:             "llama3.1",
		DisplayName:    "Llama 3.1 (로컬)",
		Description:    "Ollama로 실행하는 로컬 모델",
		HasWebSearch:   false,
		RecommendedFor: []string{"general"},
		Icon:           "fa-solid fa-server",
		Provider:       ProviderOllama,
	},
}

// Registry is read-only after construction.
type Registry struct {
	models    []Model
	index     map[string]Model
	defaultID string
}

func New(models []Model, defaultID string) *Registry {
	index := make(map[string]Model, len(models))
	for _, m := range models {
		index[m.ID] = m
	}
	if _, ok := index[defaultID]; !ok && len(models) > 0 {
		defaultID = models[0].ID
	}
	return &Registry{
		models:    models,
		index:     index,
		defaultID: defaultID,
	}
}

func Default() *Registry {
	models := make([]Model, len(defaultModels))
	copy(models, defaultModels)
	return New(models, DefaultModelID)
}

func (r *Registry) Lookup(id string) (Model, bool) {
	m, ok := r.index[id]
	return m, ok
}

// Resolve returns the named model, or the default for empty or unknown ids.
func (r *Registry) Resolve(id string) Model {
	if m, ok := r.index[id]; ok {
		return m
	}
	return r.index[r.defaultID]
}

func (r *Registry) Default() Model {
	return r.index[r.defaultID]
}

// All returns the models in display order.
func (r *Registry) All() []Model {
	out := make([]Model, len(r.models))
	copy(out, r.models)
	return out
}
