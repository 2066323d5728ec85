package llm

import (
	"context"
)

// Provider is the core abstraction for oracle interaction.
// Consumers send a system+user prompt pair and receive raw text; any
// structure in the reply is imposed by the caller's parser, never here.
type Provider interface {
	// Generate sends a prompt to the model and returns its raw text reply.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system prompt. Sets the model's role and constraints.
	System string

	// User is the user prompt for this single-turn request.
	User string

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Response holds the model's output.
type Response struct {
	// Text is the raw generated text.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

type purposeKey struct{}

// WithPurpose tags the context with the reason for an oracle call
// (question, evaluation, summary). Read back by the audit decorator.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom extracts the call purpose from the context, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok {
		return p
	}
	return "unknown"
}

// resolveModel maps a friendly model name to a provider model ID.
// Unknown names pass through unchanged so new models work without a release.
func resolveModel(name string, known map[string]string) string {
	if id, ok := known[name]; ok {
		return id
	}
	return name
}
