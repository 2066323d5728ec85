package llm

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockmate/mockmate/internal/store"
)

type recordingLogs struct {
	mu   sync.Mutex
	rows []store.OracleRequestData
	err  error
}

func (r *recordingLogs) Append(_ context.Context, data store.OracleRequestData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.rows = append(r.rows, data)
	return nil
}

func TestAudit_RecordsSuccessfulCall(t *testing.T) {
	logs := &recordingLogs{}
	mock := NewMockProvider(
		MockResponse{Text: "질문", Usage: Usage{InputTokens: 12, OutputTokens: 34}},
	)
	p := WithAudit(mock, logs)

	ctx := WithPurpose(context.Background(), "question")
	_, err := p.Generate(ctx, Request{User: "hi"})
	require.NoError(t, err)

	require.Len(t, logs.rows, 1)
	row := logs.rows[0]
	assert.Equal(t, "question", row.Purpose)
	assert.Equal(t, "mock", row.Model)
	assert.Equal(t, 12, row.InputTokens)
	assert.Equal(t, 34, row.OutputTokens)
	assert.True(t, row.Success)
	assert.Empty(t, row.ErrorMessage)
}

func TestAudit_RecordsFailure(t *testing.T) {
	logs := &recordingLogs{}
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithAudit(mock, logs)

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)

	require.Len(t, logs.rows, 1)
	row := logs.rows[0]
	assert.False(t, row.Success)
	assert.NotEmpty(t, row.ErrorMessage)
	assert.Equal(t, "unknown", row.Purpose)
}

func TestAudit_LogFailureDoesNotFailRequest(t *testing.T) {
	logs := &recordingLogs{err: errors.New("db down")}
	mock := NewMockProvider(MockResponse{Text: "ok"})
	p := WithAudit(mock, logs)

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
}
