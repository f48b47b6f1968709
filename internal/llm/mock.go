package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error

	// Delay holds the reply back, as a slow backend would. Cancelling the
	// request context ends the wait with ErrProviderUnavailable.
	Delay time.Duration
}

// MockProvider is a deterministic Provider for tests and offline runs.
// Canned responses are served in FIFO order. Once the queue is empty the
// fallback response, if set, is served on every call.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	fallback  *MockResponse

	// Calls records every request, including failed ones.
	Calls []Request
	// Labels records the context labels of each call, parallel to Calls.
	Labels []Labels
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// NewMockProviderFromFile serves the contents of cfg.ResponseFile on every
// call, delayed by cfg.Latency. The file should hold the JSON array a real
// backend would return.
func NewMockProviderFromFile(cfg MockConfig) (*MockProvider, error) {
	m := NewMockProvider()
	if cfg.ResponseFile == "" {
		return m, nil
	}
	data, err := os.ReadFile(cfg.ResponseFile)
	if err != nil {
		return nil, fmt.Errorf("read mock response: %w", err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("mock response %s is not valid JSON", cfg.ResponseFile)
	}
	m.SetFallback(MockResponse{Content: data, Delay: cfg.Latency})
	return m, nil
}

// Generate returns the next canned response. With nothing queued and no
// fallback it fails with ErrProviderUnavailable.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	m.Labels = append(m.Labels, LabelsFrom(ctx))

	var resp MockResponse
	switch {
	case len(m.responses) > 0:
		resp = m.responses[0]
		m.responses = m.responses[1:]
	case m.fallback != nil:
		resp = *m.fallback
	default:
		m.mu.Unlock()
		return nil, &ErrProviderUnavailable{Err: fmt.Errorf("mock: no response queued")}
	}
	m.mu.Unlock()

	if resp.Delay > 0 {
		t := time.NewTimer(resp.Delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return nil, &ErrProviderUnavailable{Err: ctx.Err()}
		}
	}

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// SetFallback sets the response served once the queue is empty.
func (m *MockProvider) SetFallback(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = &resp
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
