package perplexity

import (
	"ai-search-be/pkg/llm"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.perplexity.ai"

type PerplexityProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ llm.Provider = &PerplexityProvider{}

// Request Payload Structure (OpenAI compatible plus search fields)
type chatRequest struct {
	Model            string        `json:"model"`
	Messages         []llm.Message `json:"messages"`
	Temperature      float64       `json:"temperature"`
	TopP             float64       `json:"top_p"`
	MaxTokens        int           `json:"max_tokens,omitempty"`
	Stream           bool          `json:"stream"`
	PresencePenalty  float64       `json:"presence_penalty"`
	FrequencyPenalty float64       `json:"frequency_penalty"`

	// Omitted entirely when the model has no web search
	ReturnImages           *bool  `json:"return_images,omitempty"`
	ReturnRelatedQuestions *bool  `json:"return_related_questions,omitempty"`
	SearchRecencyFilter    string `json:"search_recency_filter,omitempty"`
}

type searchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	// Either plain URLs or objects, depending on API version
	Citations     []json.RawMessage `json:"citations"`
	SearchResults []searchResult    `json:"search_results"`
	Error         *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewPerplexityProvider(apiKey, baseURL, model string, timeout time.Duration) *PerplexityProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &PerplexityProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *PerplexityProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (*llm.Completion, error) {
	opts := llm.Apply(llm.Options{
		Model:       p.model,
		Temperature: 0.2,
		TopP:        0.9,
	}, options...)

	reqBody := chatRequest{
		Model:            opts.Model,
		Messages:         history,
		Temperature:      opts.Temperature,
		TopP:             opts.TopP,
		MaxTokens:        opts.MaxTokens,
		Stream:           false,
		PresencePenalty:  0,
		FrequencyPenalty: 1,
	}
	if opts.WebSearch {
		off := false
		reqBody.ReturnImages = &off
		reqBody.ReturnRelatedQuestions = &off
		reqBody.SearchRecencyFilter = opts.RecencyFilter
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: perplexity request failed: %v", llm.ErrTransport, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", llm.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: perplexity api error (status %d): %s", llm.ErrTransport, resp.StatusCode, truncate(string(bodyBytes), 300))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", llm.ErrMalformedResponse, err)
	}

	if chatResp.Error != nil {
		return nil, fmt.Errorf("%w: perplexity api returned error: %s", llm.ErrTransport, chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == nil {
		return nil, fmt.Errorf("%w: missing choices[0].message.content", llm.ErrMalformedResponse)
	}

	model := chatResp.Model
	if model == "" {
		model = opts.Model
	}

	return &llm.Completion{
		Content:   *chatResp.Choices[0].Message.Content,
		Citations: mergeCitations(chatResp.Citations, chatResp.SearchResults),
		Model:     model,
	}, nil
}

// mergeCitations keeps citation order and fills titles and excerpts from
// search_results. Without citations the search results are used directly.
func mergeCitations(raw []json.RawMessage, results []searchResult) []llm.Citation {
	byURL := make(map[string]searchResult, len(results))
	for _, r := range results {
		byURL[r.URL] = r
	}

	citations := make([]llm.Citation, 0, len(raw))
	for _, item := range raw {
		c, ok := decodeCitation(item)
		if !ok {
			continue
		}
		if r, found := byURL[c.URL]; found {
			if c.Title == "" {
				c.Title = r.Title
			}
			if c.Excerpt == "" {
				c.Excerpt = r.Snippet
			}
		}
		if c.Title == "" {
			c.Title = c.URL
		}
		citations = append(citations, c)
	}

	if len(citations) == 0 {
		for _, r := range results {
			if r.URL == "" {
				continue
			}
			title := r.Title
			if title == "" {
				title = r.URL
			}
			citations = append(citations, llm.Citation{URL: r.URL, Title: title, Excerpt: r.Snippet})
		}
	}
	return citations
}

func decodeCitation(raw json.RawMessage) (llm.Citation, bool) {
	var url string
	if err := json.Unmarshal(raw, &url); err == nil {
		return llm.Citation{URL: url}, url != ""
	}

	var obj struct {
		URL     string `json:"url"`
		Title   string `json:"title"`
		Excerpt string `json:"excerpt"`
		Snippet string `json:"snippet"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil || obj.URL == "" {
		return llm.Citation{}, false
	}
	excerpt := obj.Excerpt
	if excerpt == "" {
		excerpt = obj.Snippet
	}
	return llm.Citation{URL: obj.URL, Title: obj.Title, Excerpt: excerpt}, true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
