// FILE: pkg/answer/quality/retry.go
// PURPOSE: Bounded retry state machine driven by answer quality

package quality

import (
	"context"
	"fmt"

	"ai-search-be/pkg/answer/intent"
)

// State of the retry loop.
type State string

const (
	StateInitial         State = "initial"
	StateNeedsRetry      State = "needs_retry"
	StateAccepted        State = "accepted"
	StateExternalFailure State = "external_failure"
)

const (
	DefaultThreshold  = 70
	DefaultMaxRetries = 2
)

type Policy struct {
	Threshold  int
	MaxRetries int
}

func DefaultPolicy() Policy {
	return Policy{
		Threshold:  DefaultThreshold,
		MaxRetries: DefaultMaxRetries,
	}
}

// NeedsRetry reports whether an answer scoring total after retries retries
// should be regenerated.
func (p Policy) NeedsRetry(total, retries int) bool {
	return total < p.Threshold && retries < p.MaxRetries
}

// Outcome is the terminal state of a Run.
type Outcome[T any] struct {
	Result     T
	Score      Score
	RetryCount int
	State      State
	// Err is the retry failure that ended the loop in StateExternalFailure.
	// Result still holds the last successful answer.
	Err error
}

// RetryFunc regenerates an answer for the given 1-based retry attempt.
type RetryFunc[T any] func(ctx context.Context, attempt int) (T, error)

// Run scores initial and retries sequentially while the policy asks for it.
// It always terminates with a usable Result: the last successful answer.
func Run[T any](ctx context.Context, policy Policy, initial T, scoreOf func(T) Score, retry RetryFunc[T]) Outcome[T] {
	out := Outcome[T]{
		Result: initial,
		Score:  scoreOf(initial),
		State:  StateInitial,
	}

	for {
		if !policy.NeedsRetry(out.Score.TotalScore, out.RetryCount) {
			out.State = StateAccepted
			return out
		}
		out.State = StateNeedsRetry

		attempt := out.RetryCount + 1
		next, err := retry(ctx, attempt)
		if err != nil {
			out.State = StateExternalFailure
			out.Err = err
			return out
		}

		out.Result = next
		out.Score = scoreOf(next)
		out.RetryCount = attempt
	}
}

// retryTemplates are indexed by retry attempt (1-based). Attempts beyond the
// table reuse the last template.
var retryTemplates = map[intent.Category][]string{
	intent.CategoryRealtime: {
		"다음 질문에 대해 최신 뉴스와 공식 발표를 근거로 더 자세히 답변해주세요. 날짜와 출처를 반드시 밝혀주세요.\n\n질문: %s",
		"다음 질문의 핵심 사실을 항목별로 정리하고, 각 항목마다 근거가 되는 최신 출처를 제시해주세요.\n\n질문: %s",
	},
	intent.CategoryLearning: {
		"다음 주제를 처음 배우는 사람도 이해할 수 있도록 개념 정의, 원리, 예시 순서로 자세히 설명해주세요.\n\n질문: %s",
		"다음 주제를 **핵심 개념**, **예를 들어**, **요약** 세 부분으로 나누어 구조적으로 설명해주세요.\n\n질문: %s",
	},
	intent.CategoryInfoSearch: {
		"다음 질문에 대해 신뢰할 수 있는 출처를 근거로 구체적인 정보를 더 자세히 알려주세요.\n\n질문: %s",
		"다음 질문에 대한 답을 목록으로 정리하고, 마지막에 한 문단으로 요약해주세요. 출처를 함께 밝혀주세요.\n\n질문: %s",
	},
	intent.CategoryGeneral: {
		"다음 질문에 대해 배경 설명과 구체적인 예시를 포함하여 더 충실하게 답변해주세요.\n\n질문: %s",
		"다음 질문에 대한 답변을 소제목과 목록을 사용해 구조적으로 정리하고, 결론을 덧붙여주세요.\n\n질문: %s",
	},
}

// RetryPrompt reformulates question for the given retry attempt.
func RetryPrompt(category intent.Category, attempt int, question string) string {
	templates, ok := retryTemplates[category]
	if !ok {
		templates = retryTemplates[intent.CategoryGeneral]
	}

	i := attempt - 1
	if i < 0 {
		i = 0
	}
	if i >= len(templates) {
		i = len(templates) - 1
	}
	return fmt.Sprintf(templates[i], question)
}
