// Package gemini provides a model wrapper for the Google Gemini API.
package gemini

import (
	"context"
	"fmt"

	"github.com/planweave/planweave/model"
	"google.golang.org/genai"
)

// Options configures the Gemini model adapter.
type Options struct {
	Model       string
	Temperature float64
	APIKey      string
}

// Model wraps the Gemini GenerateContent API behind the generic model.Model interface.
type Model struct {
	client *genai.Client
	opts   Options
}

// NewModel creates a new Gemini model. Client construction performs an
// initial handshake, so a context is required.
func NewModel(ctx context.Context, optFns ...func(o *Options)) (*Model, error) {
	opts := Options{
		Model:       "gemini-2.0-flash",
		Temperature: 0.1,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client error: %w", err)
	}

	return &Model{client: client, opts: opts}, nil
}

// Generate implements model.Model with a single blocking GenerateContent call.
func (m *Model) Generate(ctx context.Context, req model.Request) (*model.Response, error) {
	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: req.Input}}},
	}

	var config *genai.GenerateContentConfig
	if req.Instructions != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: req.Instructions}}},
		}
	}

	result, err := m.client.Models.GenerateContent(ctx, m.opts.Model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini api error: %w", err)
	}

	resp := &model.Response{
		Content:      result.Text(),
		FinishReason: "stop",
	}

	if result.UsageMetadata != nil {
		resp.Usage = &model.TokenUsage{
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
		}
	}

	return resp, nil
}

// Info implements model.Model.
func (m *Model) Info() model.Info {
	return model.Info{Name: m.opts.Model, Provider: "gemini"}
}
