package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"ai-search-be/internal/pkg/logger"
	"ai-search-be/pkg/answer/filter"
	"ai-search-be/pkg/answer/intent"
	"ai-search-be/pkg/answer/quality"
	"ai-search-be/pkg/answer/relevance"
	"ai-search-be/pkg/answer/strategy"
	"ai-search-be/pkg/llm"
	"ai-search-be/pkg/llm/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider replays scripted replies and records every call.
type fakeProvider struct {
	replies []reply
	calls   []fakeCall
}

type reply struct {
	completion *llm.Completion
	err        error
}

type fakeCall struct {
	history     []llm.Message
	options     llm.Options
	hasDeadline bool
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (*llm.Completion, error) {
	_, hasDeadline := ctx.Deadline()
	f.calls = append(f.calls, fakeCall{
		history:     history,
		options:     llm.Apply(llm.Options{}, options...),
		hasDeadline: hasDeadline,
	})

	i := len(f.calls) - 1
	if i >= len(f.replies) {
		return nil, fmt.Errorf("%w: unexpected call %d", llm.ErrTransport, i)
	}
	return f.replies[i].completion, f.replies[i].err
}

func (f *fakeProvider) lastUserPrompt(call int) string {
	h := f.calls[call].history
	return h[len(h)-1].Content
}

func newTestExecutor(p llm.Provider, opts ...Option) *Executor {
	nop := logger.NewNopLogger()
	catalog := strategy.DefaultCatalog()
	scorer := relevance.NewScorer(relevance.DefaultTables(), nop)
	return New(p, registry.Default(), catalog, filter.New(scorer, catalog), nop, opts...)
}

// richAnswer scores 100 with three citations.
var richAnswer = strings.Repeat("## 개요\n\n**정의**: 머신러닝이란 데이터로 학습하는 방법입니다. 예를 들어 분류가 있습니다. 따라서 중요합니다. 요약하면 그렇습니다.\n- 항목\n", 4)

func newsCitations() []llm.Citation {
	return []llm.Citation{
		{URL: "https://news.naver.com/weather/1", Title: "오늘 날씨 서울 맑음"},
		{URL: "https://www.kma.go.kr/forecast", Title: "오늘 날씨 예보"},
		{URL: "https://www.instagram.com/p/weather", Title: "오늘 날씨 사진"},
		{URL: "https://blog.naver.com/weather", Title: "오늘 날씨 후기"},
		{URL: "https://www.kbs.co.kr/news/weather", Title: "오늘 날씨 뉴스"},
		{URL: "https://www.sbs.co.kr/news/weather", Title: "오늘 날씨 뉴스"},
		{URL: "https://www.mbc.co.kr/news/weather", Title: "오늘 날씨 뉴스"},
	}
}

func TestExecuteEmptyMessage(t *testing.T) {
	p := &fakeProvider{}
	e := newTestExecutor(p)

	for _, msg := range []string{"", "   ", "\n\t"} {
		_, err := e.Execute(context.Background(), Request{Message: msg})
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}
	assert.Empty(t, p.calls)
}

func TestExecuteGreetingSkipsModel(t *testing.T) {
	p := &fakeProvider{}
	e := newTestExecutor(p)

	res, err := e.Execute(context.Background(), Request{Message: "고마워", SearchScope: strategy.ScopeNews})
	require.NoError(t, err)

	assert.Empty(t, p.calls)
	assert.Equal(t, intent.CategoryGreeting, res.Category)
	assert.Equal(t, strategy.GreetingReply, res.Response)
	assert.NotNil(t, res.Citations)
	assert.Empty(t, res.Citations)
	assert.False(t, res.Searched)
	assert.Nil(t, res.Quality)
	assert.Nil(t, res.Stats)
}

func TestExecuteRealtimeScenario(t *testing.T) {
	p := &fakeProvider{replies: []reply{
		{completion: &llm.Completion{Content: richAnswer, Citations: newsCitations()}},
	}}
	e := newTestExecutor(p)

	res, err := e.Execute(context.Background(), Request{
		Message:     "오늘 날씨 어때?",
		SearchScope: strategy.ScopeNews,
		UserName:    "민지",
	})
	require.NoError(t, err)
	require.Len(t, p.calls, 1)

	assert.Equal(t, intent.CategoryRealtime, res.Category)
	assert.True(t, res.Config.UseSearch)
	assert.Equal(t, strategy.RecencyDay, res.Config.RecencyFilter)
	assert.Equal(t, 4, res.Config.MaxSources)
	assert.Equal(t, registry.DefaultModelID, res.ModelUsed)
	assert.True(t, res.Searched)

	call := p.calls[0]
	assert.True(t, call.hasDeadline)
	assert.Equal(t, registry.DefaultModelID, call.options.Model)
	assert.Equal(t, 0.2, call.options.Temperature)
	assert.Equal(t, 0.9, call.options.TopP)
	assert.True(t, call.options.WebSearch)
	assert.Equal(t, "day", call.options.RecencyFilter)

	assert.Equal(t, llm.RoleSystem, call.history[0].Role)
	assert.Contains(t, call.history[0].Content, "민지님")
	assert.Contains(t, call.history[0].Content, "뉴스")
	assert.True(t, strings.HasSuffix(p.lastUserPrompt(0), "오늘 날씨 어때?"))
	assert.True(t, strings.HasPrefix(p.lastUserPrompt(0), res.Config.PromptPrefix))

	// capped by the response config, social and blog sources dropped
	assert.LessOrEqual(t, len(res.Citations), 4)
	for _, c := range res.Citations {
		assert.NotEqual(t, relevance.SourceSocial, c.SourceType)
		assert.NotEqual(t, relevance.SourceBlog, c.SourceType)
	}
	require.NotNil(t, res.Stats)
	assert.Equal(t, 7, res.Stats.TotalCount)
	assert.Equal(t, 7-len(res.Citations), res.Stats.FilteredCount)

	require.NotNil(t, res.Quality)
	assert.Equal(t, 0, res.RetryCount)
	assert.Equal(t, quality.StateAccepted, res.RetryState)
}

func TestExecuteRetriesLowQuality(t *testing.T) {
	p := &fakeProvider{replies: []reply{
		{completion: &llm.Completion{Content: "짧은 답"}},
		{completion: &llm.Completion{Content: "조금 더 긴 답"}},
		{completion: &llm.Completion{Content: richAnswer, Citations: newsCitations()}},
	}}
	e := newTestExecutor(p)

	res, err := e.Execute(context.Background(), Request{Message: "오늘 날씨 어때?"})
	require.NoError(t, err)

	require.Len(t, p.calls, 3)
	assert.Equal(t, 2, res.RetryCount)
	assert.Equal(t, richAnswer, res.Response)
	assert.Equal(t, quality.RetryPrompt(intent.CategoryRealtime, 1, "오늘 날씨 어때?"), p.lastUserPrompt(1))
	assert.Equal(t, quality.RetryPrompt(intent.CategoryRealtime, 2, "오늘 날씨 어때?"), p.lastUserPrompt(2))
}

func TestExecuteRetriesExhausted(t *testing.T) {
	p := &fakeProvider{replies: []reply{
		{completion: &llm.Completion{Content: "하나"}},
		{completion: &llm.Completion{Content: "둘"}},
		{completion: &llm.Completion{Content: "셋"}},
	}}
	e := newTestExecutor(p)

	res, err := e.Execute(context.Background(), Request{Message: "서울 맛집 추천해줘"})
	require.NoError(t, err)

	assert.Len(t, p.calls, 3)
	assert.Equal(t, 2, res.RetryCount)
	assert.Equal(t, "셋", res.Response)
	assert.Equal(t, quality.StateAccepted, res.RetryState)
	require.NotNil(t, res.Stats)
	assert.Equal(t, 0, res.Stats.TotalCount)
}

func TestExecuteRetryTransportFailureKeepsLastAnswer(t *testing.T) {
	p := &fakeProvider{replies: []reply{
		{completion: &llm.Completion{Content: "첫 답변"}},
		{err: fmt.Errorf("%w: connection reset", llm.ErrTransport)},
	}}
	e := newTestExecutor(p)

	res, err := e.Execute(context.Background(), Request{Message: "서울 맛집 추천해줘"})
	require.NoError(t, err)

	assert.Len(t, p.calls, 2)
	assert.Equal(t, "첫 답변", res.Response)
	assert.Equal(t, 0, res.RetryCount)
	assert.Equal(t, quality.StateExternalFailure, res.RetryState)
}

func TestExecuteInitialFailureAborts(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"transport", fmt.Errorf("%w: dial tcp", llm.ErrTransport), llm.ErrTransport},
		{"malformed", fmt.Errorf("%w: no choices", llm.ErrMalformedResponse), llm.ErrMalformedResponse},
		{"deadline", context.DeadlineExceeded, llm.ErrTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{replies: []reply{{err: tt.err}}}
			e := newTestExecutor(p)

			_, err := e.Execute(context.Background(), Request{Message: "서울 맛집 추천해줘"})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Len(t, p.calls, 1)
		})
	}
}

func TestExecuteModelWithoutWebSearch(t *testing.T) {
	p := &fakeProvider{replies: []reply{
		{completion: &llm.Completion{Content: richAnswer}},
	}}
	e := newTestExecutor(p, WithPolicy(quality.Policy{Threshold: 0, MaxRetries: 0}))

	res, err := e.Execute(context.Background(), Request{Message: "서울 맛집 추천해줘", Model: "gpt-4o-mini"})
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", res.ModelUsed)
	assert.False(t, res.Searched)
	assert.False(t, p.calls[0].options.WebSearch)
	assert.Empty(t, p.calls[0].options.RecencyFilter)
}

func TestExecuteHistoryLimit(t *testing.T) {
	var history []llm.Message
	for i := 0; i < 14; i++ {
		history = append(history, llm.Message{Role: llm.RoleUser, Content: fmt.Sprintf("msg-%d", i)})
	}

	p := &fakeProvider{replies: []reply{{completion: &llm.Completion{Content: richAnswer}}}}
	e := newTestExecutor(p, WithPolicy(quality.Policy{Threshold: 0}))

	_, err := e.Execute(context.Background(), Request{Message: "인생이란", History: history})
	require.NoError(t, err)

	sent := p.calls[0].history
	// system + 10 history + question
	require.Len(t, sent, 12)
	assert.Equal(t, "msg-4", sent[1].Content)
	assert.Equal(t, "msg-13", sent[10].Content)
}

func TestExecuteTimeout(t *testing.T) {
	slow := providerFunc(func(ctx context.Context) (*llm.Completion, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	e := newTestExecutor(slow, WithTimeout(20*time.Millisecond))

	_, err := e.Execute(context.Background(), Request{Message: "인생이란"})

	assert.ErrorIs(t, err, llm.ErrTransport)
	assert.False(t, errors.Is(err, ErrEmptyMessage))
}

type providerFunc func(ctx context.Context) (*llm.Completion, error)

func (f providerFunc) Chat(ctx context.Context, _ []llm.Message, _ ...llm.Option) (*llm.Completion, error) {
	return f(ctx)
}

func TestSystemPrompt(t *testing.T) {
	assert.Contains(t, systemPrompt("", strategy.ScopeGeneral).Content, DefaultUserName+"님")
	assert.Contains(t, systemPrompt("철수", strategy.ScopeAcademic).Content, "학술적")
}
