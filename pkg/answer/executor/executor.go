// FILE: pkg/answer/executor/executor.go
// PURPOSE: Answer pipeline orchestration
// classify -> resolve config -> call model -> filter citations -> evaluate -> retry

package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-search-be/internal/pkg/logger"
	"ai-search-be/pkg/answer/filter"
	"ai-search-be/pkg/answer/intent"
	"ai-search-be/pkg/answer/quality"
	"ai-search-be/pkg/answer/relevance"
	"ai-search-be/pkg/answer/strategy"
	"ai-search-be/pkg/llm"
	"ai-search-be/pkg/llm/registry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrEmptyMessage is returned before any external call when the message is blank.
var ErrEmptyMessage = errors.New("message is empty")

const (
	DefaultTimeout      = 30 * time.Second
	DefaultHistoryLimit = 10
	DefaultUserName     = "사용자"

	temperature = 0.2
	topP        = 0.9
)

type Request struct {
	Message     string
	SearchScope strategy.SearchScope
	UserName    string
	Model       string
	// History is the conversation so far, oldest first.
	History []llm.Message
}

type Result struct {
	Response       string
	Citations      []relevance.Scored
	Category       intent.Category
	Config         strategy.ResponseConfig
	ModelUsed      string
	Searched       bool
	Quality        *quality.Score
	RetryCount     int
	RetryState     quality.State
	Stats          *filter.Stats
	ProcessingTime time.Duration
}

type Executor struct {
	provider     llm.Provider
	registry     *registry.Registry
	catalog      *strategy.Catalog
	filter       *filter.Filter
	policy       quality.Policy
	timeout      time.Duration
	historyLimit int
	logger       logger.ILogger
	tracer       trace.Tracer
}

type Option func(*Executor)

func WithPolicy(p quality.Policy) Option {
	return func(e *Executor) {
		e.policy = p
	}
}

func WithTimeout(d time.Duration) Option {
	return func(e *Executor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

func WithHistoryLimit(n int) Option {
	return func(e *Executor) {
		e.historyLimit = n
	}
}

func New(
	provider llm.Provider,
	reg *registry.Registry,
	catalog *strategy.Catalog,
	f *filter.Filter,
	log logger.ILogger,
	opts ...Option,
) *Executor {
	e := &Executor{
		provider:     provider,
		registry:     reg,
		catalog:      catalog,
		filter:       f,
		policy:       quality.DefaultPolicy(),
		timeout:      DefaultTimeout,
		historyLimit: DefaultHistoryLimit,
		logger:       log,
		tracer:       otel.Tracer("ai-search-be/answer"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// attempt is one model answer with its filtered citations.
type attempt struct {
	completion *llm.Completion
	citations  []relevance.Scored
	stats      filter.Stats
}

// turn holds what stays fixed across the attempts of one request.
type turn struct {
	question string
	category intent.Category
	config   strategy.ResponseConfig
	model    registry.Model
	system   llm.Message
	history  []llm.Message
}

func (e *Executor) Execute(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	question := strings.TrimSpace(req.Message)
	if question == "" {
		return nil, ErrEmptyMessage
	}

	_, span := e.tracer.Start(ctx, "answer.classify")
	category := intent.Classify(question)
	config := e.catalog.Resolve(category, req.SearchScope)
	model := e.registry.Resolve(req.Model)
	span.SetAttributes(
		attribute.String("answer.category", string(category)),
		attribute.Bool("answer.use_search", config.UseSearch),
		attribute.String("answer.model", model.ID),
	)
	span.End()

	e.logger.Info("ANSWER", "Question classified", map[string]interface{}{
		"category":     category,
		"scope":        req.SearchScope,
		"use_search":   config.UseSearch,
		"recency":      config.RecencyFilter,
		"max_sources":  config.MaxSources,
		"model":        model.ID,
		"coding_guard": intent.IsCoding(question),
	})

	if !config.UseSearch {
		return &Result{
			Response:       config.DirectResponse,
			Citations:      []relevance.Scored{},
			Category:       category,
			Config:         config,
			ModelUsed:      model.ID,
			Searched:       false,
			RetryState:     quality.StateAccepted,
			ProcessingTime: time.Since(start),
		}, nil
	}

	t := turn{
		question: question,
		category: category,
		config:   config,
		model:    model,
		system:   systemPrompt(req.UserName, req.SearchScope),
		history:  lastN(req.History, e.historyLimit),
	}

	first, err := e.attempt(ctx, t, config.PromptPrefix+question)
	if err != nil {
		return nil, err
	}

	scoreOf := func(a attempt) quality.Score {
		return quality.Evaluate(a.completion.Content, len(a.citations), category)
	}
	retry := func(ctx context.Context, n int) (attempt, error) {
		ctx, span := e.tracer.Start(ctx, "answer.retry", trace.WithAttributes(attribute.Int("answer.retry.attempt", n)))
		defer span.End()

		a, err := e.attempt(ctx, t, quality.RetryPrompt(category, n, question))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return attempt{}, err
		}
		return a, nil
	}

	outcome := quality.Run(ctx, e.policy, first, scoreOf, retry)

	details := map[string]interface{}{
		"category":    category,
		"state":       outcome.State,
		"retry_count": outcome.RetryCount,
		"quality":     outcome.Score.TotalScore,
		"citations":   len(outcome.Result.citations),
	}
	if outcome.Err != nil {
		details["error"] = outcome.Err.Error()
		e.logger.Warn("ANSWER", "Retry failed, keeping last answer", details)
	} else {
		e.logger.Info("ANSWER", "Answer accepted", details)
	}

	score := outcome.Score
	stats := outcome.Result.stats
	return &Result{
		Response:       outcome.Result.completion.Content,
		Citations:      outcome.Result.citations,
		Category:       category,
		Config:         config,
		ModelUsed:      model.ID,
		Searched:       model.HasWebSearch,
		Quality:        &score,
		RetryCount:     outcome.RetryCount,
		RetryState:     outcome.State,
		Stats:          &stats,
		ProcessingTime: time.Since(start),
	}, nil
}

// attempt calls the model once and filters what it cited.
func (e *Executor) attempt(ctx context.Context, t turn, prompt string) (attempt, error) {
	messages := make([]llm.Message, 0, len(t.history)+2)
	messages = append(messages, t.system)
	messages = append(messages, t.history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: prompt})

	opts := []llm.Option{
		llm.WithModel(t.model.ID),
		llm.WithTemperature(temperature),
		llm.WithTopP(topP),
	}
	if t.model.HasWebSearch {
		opts = append(opts, llm.WithWebSearch(string(t.config.RecencyFilter)))
	}

	completion, err := e.call(ctx, messages, opts)
	if err != nil {
		return attempt{}, err
	}

	_, span := e.tracer.Start(ctx, "answer.filter")
	defer span.End()

	candidates := make([]relevance.Candidate, 0, len(completion.Citations))
	for _, c := range completion.Citations {
		candidates = append(candidates, relevance.Candidate{Title: c.Title, URL: c.URL, Excerpt: c.Excerpt})
	}

	selected, stats := e.filter.Apply(candidates, t.question, t.category)
	if len(selected) > t.config.MaxSources {
		selected = selected[:t.config.MaxSources]
		stats.FilteredCount = stats.TotalCount - len(selected)
	}

	span.SetAttributes(
		attribute.Int("answer.sources.total", stats.TotalCount),
		attribute.Int("answer.sources.selected", len(selected)),
	)
	e.logger.Debug("ANSWER", "Citations filtered", map[string]interface{}{
		"total":     stats.TotalCount,
		"selected":  len(selected),
		"rules":     stats.Description(),
		"min_score": stats.MinScoreUsed,
	})

	return attempt{
		completion: completion,
		citations:  selected,
		stats:      stats,
	}, nil
}

func (e *Executor) call(ctx context.Context, messages []llm.Message, opts []llm.Option) (*llm.Completion, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	ctx, span := e.tracer.Start(ctx, "answer.llm")
	defer span.End()

	completion, err := e.provider.Chat(ctx, messages, opts...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.logger.Error("ANSWER", "Model call failed", map[string]interface{}{
			"error": err.Error(),
		})
		if !errors.Is(err, llm.ErrTransport) && !errors.Is(err, llm.ErrMalformedResponse) {
			// deadline and cancellation surface as transport failures
			err = fmt.Errorf("%w: %v", llm.ErrTransport, err)
		}
		return nil, err
	}
	return completion, nil
}

func systemPrompt(userName string, scope strategy.SearchScope) llm.Message {
	name := strings.TrimSpace(userName)
	if name == "" {
		name = DefaultUserName
	}

	var focus string
	switch scope {
	case strategy.ScopeNews:
		focus = "최신 뉴스와 시사 정보에 중점을 두어 답변해주세요."
	case strategy.ScopeAcademic:
		focus = "학술적이고 전문적인 정보에 중점을 두어 답변해주세요."
	default:
		focus = "정확하고 유용한 정보를 제공해주세요."
	}

	return llm.Message{
		Role:    llm.RoleSystem,
		Content: fmt.Sprintf("당신은 %s님을 위한 AI 검색 어시스턴트입니다. %s", name, focus),
	}
}

func lastN(history []llm.Message, n int) []llm.Message {
	if n <= 0 {
		return nil
	}
	if len(history) > n {
		return history[len(history)-n:]
	}
	return history
}
