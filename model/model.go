package model

import (
	"context"
	"fmt"
	"sync"
)

// Request captures the normalized input of one reasoning call: a system
// instruction (tool descriptions plus the exact JSON shape demanded from the
// model) and the user input (the task text or a corrective follow-up).
type Request struct {
	Instructions string `json:"instructions"`
	Input        string `json:"input"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the completed output of a reasoning call.
type Response struct {
	Content      string      `json:"content"`
	FinishReason string      `json:"finish_reason,omitempty"` // "stop", "length", etc.
	Usage        *TokenUsage `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "gemini", "mock", etc.
}

// Model is the minimal interface the planner requires to drive generation.
// Generate blocks until the model produces a complete response; cancellation
// and deadlines arrive through ctx.
type Model interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples. It
// serves queued responses first (in FIFO order), then responses registered
// for an exact input, then a generic echo. All requests are recorded for
// assertions. Safe for concurrent use.
type MockModel struct {
	mu        sync.Mutex
	info      Info
	responses map[string]string
	queue     []string
	requests  []Request
}

// NewMockModel constructs a MockModel.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input.
func (m *MockModel) AddResponse(input, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[input] = response
}

// EnqueueResponse appends a response served regardless of input; queued
// responses take precedence over registered ones.
func (m *MockModel) EnqueueResponse(response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, response)
}

// Requests returns a copy of all requests seen so far.
func (m *MockModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}

// Generate implements Model.
func (m *MockModel) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if len(m.queue) > 0 {
		content := m.queue[0]
		m.queue = m.queue[1:]

		return &Response{Content: content, FinishReason: "stop"}, nil
	}

	if content, ok := m.responses[req.Input]; ok {
		return &Response{Content: content, FinishReason: "stop"}, nil
	}

	return &Response{Content: fmt.Sprintf("Mock response to: %s", req.Input), FinishReason: "stop"}, nil
}

// Info implements Model interface.
func (m *MockModel) Info() Info { return m.info }
