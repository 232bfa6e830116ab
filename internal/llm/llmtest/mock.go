// Package llmtest provides an in-memory llm.Client for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/jonathan/elevate/internal/llm"
)

// Call records one request made to a MockClient.
type Call struct {
	Prompt string
	Tier   llm.ModelTier
	JSON   bool
}

// MockClient implements llm.Client with overridable behaviour.
// Unset funcs return an empty string and no error.
type MockClient struct {
	GenerateContentFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GenerateJSONFunc    func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)

	mu    sync.Mutex
	calls []Call
}

// GenerateContent implements llm.Client.
func (m *MockClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.record(Call{Prompt: prompt, Tier: tier})
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "", nil
}

// GenerateJSON implements llm.Client.
func (m *MockClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.record(Call{Prompt: prompt, Tier: tier, JSON: true})
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return "", nil
}

// GetModel implements llm.Client.
func (m *MockClient) GetModel(_ llm.ModelTier) string {
	return "mock-model"
}

// Close implements llm.Client.
func (m *MockClient) Close() error {
	return nil
}

// Calls returns a copy of the requests made so far.
func (m *MockClient) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *MockClient) record(c Call) {
	m.mu.Lock()
	m.calls = append(m.calls, c)
	m.mu.Unlock()
}
