package factory

import (
	"ai-search-be/pkg/llm"
	"ai-search-be/pkg/llm/ollama"
	"ai-search-be/pkg/llm/openai"
	"ai-search-be/pkg/llm/perplexity"
	"ai-search-be/pkg/llm/registry"
	"context"
	"fmt"
	"time"
)

// Config carries the credentials and endpoints for every backend.
type Config struct {
	PerplexityAPIKey  string
	PerplexityBaseURL string
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OllamaBaseURL     string
	Timeout           time.Duration
}

func NewLLMProvider(providerType string, cfg Config) (llm.Provider, error) {
	switch providerType {
	case registry.ProviderPerplexity:
		if cfg.PerplexityAPIKey == "" {
			return nil, fmt.Errorf("perplexity provider requires an API key")
		}
		return perplexity.NewPerplexityProvider(cfg.PerplexityAPIKey, cfg.PerplexityBaseURL, "", cfg.Timeout), nil
	case registry.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, "", cfg.Timeout), nil
	case registry.ProviderOllama:
		if cfg.OllamaBaseURL == "" {
			return nil, fmt.Errorf("ollama provider requires a base URL")
		}
		return ollama.NewOllamaProvider(cfg.OllamaBaseURL, "", cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}

// Router dispatches each call to the backend that serves the requested
// model. Models without web search never receive search options.
type Router struct {
	registry  *registry.Registry
	providers map[string]llm.Provider
}

var _ llm.Provider = &Router{}

func NewRouter(reg *registry.Registry, providers map[string]llm.Provider) *Router {
	return &Router{
		registry:  reg,
		providers: providers,
	}
}

// NewRouterFromConfig builds every backend that has configuration. Backends
// without it are skipped and their models fail at call time.
func NewRouterFromConfig(reg *registry.Registry, cfg Config) *Router {
	providers := make(map[string]llm.Provider)
	for _, name := range []string{registry.ProviderPerplexity, registry.ProviderOpenAI, registry.ProviderOllama} {
		if p, err := NewLLMProvider(name, cfg); err == nil {
			providers[name] = p
		}
	}
	return NewRouter(reg, providers)
}

// Available reports which backends are configured.
func (r *Router) Available(providerName string) bool {
	_, ok := r.providers[providerName]
	return ok
}

func (r *Router) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (*llm.Completion, error) {
	requested := llm.Apply(llm.Options{}, options...)
	model := r.registry.Resolve(requested.Model)

	provider, ok := r.providers[model.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: no %s backend configured for model %s", llm.ErrTransport, model.Provider, model.ID)
	}

	forwarded := append([]llm.Option{}, options...)
	forwarded = append(forwarded, llm.WithModel(model.ID))
	if !model.HasWebSearch {
		forwarded = append(forwarded, withoutWebSearch)
	}

	return provider.Chat(ctx, history, forwarded...)
}

func withoutWebSearch(o *llm.Options) {
	o.WebSearch = false
	o.RecencyFilter = ""
}
