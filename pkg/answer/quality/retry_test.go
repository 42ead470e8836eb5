package quality

import (
	"context"
	"errors"
	"testing"

	"ai-search-be/pkg/answer/intent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted feeds a fixed sequence of totals through Run.
type scripted struct {
	totals []int
	failAt int
	calls  int
}

func (s *scripted) scoreOf(i int) Score {
	return Score{TotalScore: s.totals[i]}
}

func (s *scripted) retry(_ context.Context, attempt int) (int, error) {
	s.calls++
	if attempt == s.failAt {
		return 0, errors.New("connection reset")
	}
	return attempt, nil
}

func TestRun(t *testing.T) {
	tests := []struct {
		name        string
		totals      []int
		failAt      int
		wantResult  int
		wantRetries int
		wantCalls   int
		wantState   State
	}{
		{
			name:        "accepted immediately",
			totals:      []int{85},
			wantResult:  0,
			wantRetries: 0,
			wantCalls:   0,
			wantState:   StateAccepted,
		},
		{
			name:        "threshold is inclusive",
			totals:      []int{70},
			wantResult:  0,
			wantRetries: 0,
			wantCalls:   0,
			wantState:   StateAccepted,
		},
		{
			name:        "improves on second retry",
			totals:      []int{40, 55, 80},
			wantResult:  2,
			wantRetries: 2,
			wantCalls:   2,
			wantState:   StateAccepted,
		},
		{
			name:        "improves on first retry",
			totals:      []int{40, 75, 10},
			wantResult:  1,
			wantRetries: 1,
			wantCalls:   1,
			wantState:   StateAccepted,
		},
		{
			name:        "retries exhausted keeps last answer",
			totals:      []int{40, 40, 40},
			wantResult:  2,
			wantRetries: 2,
			wantCalls:   2,
			wantState:   StateAccepted,
		},
		{
			name:        "first retry fails",
			totals:      []int{40, 90, 90},
			failAt:      1,
			wantResult:  0,
			wantRetries: 0,
			wantCalls:   1,
			wantState:   StateExternalFailure,
		},
		{
			name:        "second retry fails",
			totals:      []int{40, 50, 90},
			failAt:      2,
			wantResult:  1,
			wantRetries: 1,
			wantCalls:   2,
			wantState:   StateExternalFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &scripted{totals: tt.totals, failAt: tt.failAt}

			out := Run(context.Background(), DefaultPolicy(), 0, s.scoreOf, s.retry)

			assert.Equal(t, tt.wantResult, out.Result)
			assert.Equal(t, tt.wantRetries, out.RetryCount)
			assert.Equal(t, tt.wantCalls, s.calls)
			assert.Equal(t, tt.wantState, out.State)
			assert.Equal(t, tt.totals[out.Result], out.Score.TotalScore)
			if tt.wantState == StateExternalFailure {
				require.Error(t, out.Err)
			} else {
				assert.NoError(t, out.Err)
			}
		})
	}
}

func TestRunZeroRetries(t *testing.T) {
	s := &scripted{totals: []int{10}}

	out := Run(context.Background(), Policy{Threshold: 70, MaxRetries: 0}, 0, s.scoreOf, s.retry)

	assert.Equal(t, StateAccepted, out.State)
	assert.Equal(t, 0, s.calls)
}

func TestRetryPrompt(t *testing.T) {
	question := "양자역학이 뭐야?"

	first := RetryPrompt(intent.CategoryLearning, 1, question)
	second := RetryPrompt(intent.CategoryLearning, 2, question)
	clamped := RetryPrompt(intent.CategoryLearning, 9, question)

	assert.Contains(t, first, question)
	assert.NotEqual(t, first, second)
	assert.Equal(t, second, clamped)
	assert.Equal(t, first, RetryPrompt(intent.CategoryLearning, 0, question))

	// categories without templates use the general ones
	assert.Equal(t,
		RetryPrompt(intent.CategoryGeneral, 1, question),
		RetryPrompt(intent.CategoryGreeting, 1, question),
	)
}
