package interview

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mockmate/mockmate/internal/llm"
)

// Oracle is the engine's view of the external answer-generation and
// evaluation service. All three calls are synchronous text exchanges;
// structure is imposed by the parser, not by the oracle.
type Oracle interface {
	GenerateQuestion(ctx context.Context, in QuestionInput) (string, error)
	EvaluateAnswer(ctx context.Context, question, answer string) (Evaluation, error)
	GenerateSummary(ctx context.Context, in SummaryInput) (Summary, error)
}

// ErrOracleUnavailable wraps any oracle transport failure surfaced to the
// engine. Callers may retry the same not-yet-committed turn.
var ErrOracleUnavailable = errors.New("oracle unavailable")

// ErrOracleTimeout indicates the oracle exceeded its bounded deadline.
var ErrOracleTimeout = errors.New("oracle timeout")

const (
	questionMaxTokens   = 512
	evaluationMaxTokens = 1024
	summaryMaxTokens    = 2048

	oracleTemperature = 0.7
)

// llmOracle implements Oracle on top of an llm.Provider with a bounded
// per-call timeout.
type llmOracle struct {
	provider llm.Provider
	timeout  time.Duration
	defaults Defaults
}

// NewOracle builds the production Oracle. timeout bounds every call;
// defaults fixes the parser's fallback policy.
func NewOracle(provider llm.Provider, timeout time.Duration, defaults Defaults) Oracle {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &llmOracle{provider: provider, timeout: timeout, defaults: defaults}
}

func (o *llmOracle) GenerateQuestion(ctx context.Context, in QuestionInput) (string, error) {
	ctx = llm.WithPurpose(ctx, "question")

	raw, err := o.generate(ctx, llm.Request{
		System:      buildQuestionSystemPrompt(in),
		User:        buildQuestionUserPrompt(in),
		MaxTokens:   questionMaxTokens,
		Temperature: oracleTemperature,
	})
	if err != nil {
		return "", err
	}
	return ParseQuestion(raw), nil
}

func (o *llmOracle) EvaluateAnswer(ctx context.Context, question, answer string) (Evaluation, error) {
	ctx = llm.WithPurpose(ctx, "evaluation")

	raw, err := o.generate(ctx, llm.Request{
		System:    buildEvaluationSystemPrompt(),
		User:      buildEvaluationUserPrompt(question, answer),
		MaxTokens: evaluationMaxTokens,
	})
	if err != nil {
		return Evaluation{}, err
	}

	ev, ok := ParseEvaluation(raw, o.defaults)
	if !ok {
		log.Printf("evaluation reply not well formed, using raw response as feedback")
	}
	return ev, nil
}

func (o *llmOracle) GenerateSummary(ctx context.Context, in SummaryInput) (Summary, error) {
	ctx = llm.WithPurpose(ctx, "summary")

	raw, err := o.generate(ctx, llm.Request{
		System:    buildSummarySystemPrompt(in.Categories),
		User:      buildSummaryUserPrompt(in),
		MaxTokens: summaryMaxTokens,
	})
	if err != nil {
		return Summary{}, err
	}

	sum, ok := ParseSummary(raw, in.Categories, o.defaults)
	if !ok {
		log.Printf("summary reply not well formed, using raw response as assessment")
	}
	return sum, nil
}

func (o *llmOracle) generate(ctx context.Context, req llm.Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.provider.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", ErrOracleTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	return resp.Text, nil
}
