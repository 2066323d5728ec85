package llm

import (
	"context"
	"errors"
	"sync"
)

// MockResponse is one scripted reply for the MockProvider.
type MockResponse struct {
	Text  string
	Usage Usage
	Err   error
}

// MockProvider is a scripted Provider for tests. Replies are dequeued in
// FIFO order and every request is recorded; an exhausted script fails the
// call rather than blocking.
type MockProvider struct {
	mu    sync.Mutex
	queue []MockResponse
	Calls []Request
}

// NewMockProvider builds a MockProvider preloaded with script.
func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{queue: script}
}

// Enqueue appends scripted replies to the queue.
func (m *MockProvider) Enqueue(responses ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, responses...)
}

// EnqueueText appends plain successful text replies to the queue.
func (m *MockProvider) EnqueueText(replies ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, text := range replies {
		m.queue = append(m.queue, MockResponse{Text: text})
	}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.queue) == 0 {
		return nil, &ErrProviderUnavailable{Err: errors.New("mock script exhausted")}
	}

	next := m.queue[0]
	m.queue = m.queue[1:]

	if next.Err != nil {
		return nil, next.Err
	}

	return &Response{
		Text:       next.Text,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// CallCount reports how many Generate calls were made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
