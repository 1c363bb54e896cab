package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

const MockClientName = "mock"

// MockClient is an LLMClient for testing. Responses are served from a
// queue, one per call, so multi-round protocols can script each round.
type MockClient struct {
	// Err, if set, is returned by every call.
	Err error

	mu        sync.Mutex
	responses []json.RawMessage
	requests  []*ChatRequest
}

// NewMockClient creates a mock that replies with the given structured
// responses in order. The last response repeats if calls exceed the queue.
func NewMockClient(responses ...json.RawMessage) *MockClient {
	return &MockClient{responses: responses}
}

// Name returns the client identifier.
func (c *MockClient) Name() string {
	return MockClientName
}

// Requests returns a copy of every request seen so far.
func (c *MockClient) Requests() []*ChatRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*ChatRequest, len(c.requests))
	copy(out, c.requests)
	return out
}

// Chat records the request and returns the next scripted response.
func (c *MockClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.Err != nil {
		return nil, c.Err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.requests = append(c.requests, req)
	if len(c.responses) == 0 {
		return nil, fmt.Errorf("mock: no scripted responses")
	}

	idx := len(c.requests) - 1
	if idx >= len(c.responses) {
		idx = len(c.responses) - 1
	}
	raw := c.responses[idx]

	return &ChatResult{
		RequestID:  req.RequestID,
		Provider:   MockClientName,
		ModelUsed:  req.Model,
		Attempts:   1,
		Content:    string(raw),
		ParsedJSON: raw,
	}, nil
}

// Verify interface
var _ LLMClient = (*MockClient)(nil)
