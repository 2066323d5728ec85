package llm

import (
	"context"
	"log"
	"time"

	"github.com/mockmate/mockmate/internal/store"
)

// AuditProvider is a decorator that records every oracle request as an
// audit row.
type AuditProvider struct {
	inner Provider
	logs  store.OracleLogRepo
}

// WithAudit wraps a Provider with request auditing.
func WithAudit(p Provider, logs store.OracleLogRepo) Provider {
	return &AuditProvider{inner: p, logs: logs}
}

func (a *AuditProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := a.inner.Generate(ctx, req)

	data := store.OracleRequestData{
		Model:     a.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
	}

	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// Record the audit row but don't fail the request if auditing fails.
	if logErr := a.logs.Append(ctx, data); logErr != nil {
		log.Printf("warning: failed to record oracle request audit: %v", logErr)
	}

	return resp, err
}

func (a *AuditProvider) ModelID() string {
	return a.inner.ModelID()
}
