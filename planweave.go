// Package planweave provides a high-level façade over the agent
// orchestration core: configuration loading, reasoning-model selection and
// agent wiring in one call. Most applications interact with this package by:
//  1. Creating a Weave via New() with a populated tool registry
//  2. Running tasks through the embedded agent (Run)
//  3. Inspecting the recorded task history afterwards
//
// The façade delegates orchestration to agent.Agent while keeping setup
// ergonomics concise. All defaults are safe for local development; production
// deployments typically supply their own history store and logger settings.
package planweave

import (
	"context"
	"fmt"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	openaiapi "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"

	"github.com/planweave/planweave/agent"
	"github.com/planweave/planweave/config"
	"github.com/planweave/planweave/core"
	"github.com/planweave/planweave/history"
	"github.com/planweave/planweave/logging"
	"github.com/planweave/planweave/model"
	"github.com/planweave/planweave/model/anthropic"
	"github.com/planweave/planweave/model/gemini"
	"github.com/planweave/planweave/model/openai"
	"github.com/planweave/planweave/planner"
	"github.com/planweave/planweave/tool"
)

// Options configures the Weave façade.
type Options struct {
	// Config supplies provider and credential settings. Loaded from the
	// environment when nil.
	Config *config.Config

	// Model overrides the reasoning model derived from Config.
	Model model.Model

	// Metadata describes the agent built by the façade.
	Metadata core.AgentMetadata

	// SelectionHooks observe selection decisions of the plan loop.
	SelectionHooks core.ToolSelectionHooks

	// Formatter produces the final answer. Nil keeps the default
	// concatenating formatter.
	Formatter agent.ResultFormatter

	// History receives finished task records. Defaults to an in-memory store.
	History history.Store
}

// Weave bundles a configured agent with the services it was wired from.
type Weave struct {
	agent   *agent.Agent
	history history.Store
	logger  *logging.AgentLogger
}

// New wires configuration, reasoning model, planner and agent together. Any
// unset service is initialized with a sensible default: config from the
// environment, the model from the configured provider and an in-memory
// history store.
func New(ctx context.Context, registry *tool.Registry, optFns ...func(o *Options)) (*Weave, error) {
	opts := Options{
		History: history.NewInMemoryStore(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	logger := logging.NewSlogLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, false)

	m := opts.Model
	if m == nil {
		built, err := buildModel(ctx, cfg)
		if err != nil {
			return nil, err
		}

		m = built
	}

	p := planner.New(m, func(o *planner.Options) {
		o.Logger = logger
	})

	a := agent.New(registry, p, func(o *agent.Options) {
		o.Metadata = opts.Metadata
		o.SelectionHooks = opts.SelectionHooks
		o.History = opts.History
		o.Logger = logger

		if opts.Formatter != nil {
			o.Formatter = opts.Formatter
		}
	})

	return &Weave{agent: a, history: opts.History, logger: logger}, nil
}

// buildModel constructs the reasoning model for the configured provider.
func buildModel(ctx context.Context, cfg *config.Config) (model.Model, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		client := openaiapi.NewClient(openaiopt.WithAPIKey(cfg.OpenAIAPIKey))

		return openai.NewModelFromClient(&client, func(o *openai.Options) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
		}), nil
	case config.ProviderAnthropic:
		return anthropic.NewModel(func(o *anthropic.Options) {
			o.APIKey = cfg.AnthropicAPIKey
			if cfg.Model != "" {
				o.Model = anthropicsdk.Model(cfg.Model)
			}
		}), nil
	case config.ProviderGemini:
		return gemini.NewModel(ctx, func(o *gemini.Options) {
			o.APIKey = cfg.GeminiAPIKey
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
		})
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// Agent returns the wired agent for direct use.
func (w *Weave) Agent() *agent.Agent { return w.agent }

// History returns the store receiving finished task records.
func (w *Weave) History() history.Store { return w.history }

// Run executes a task through the wired agent.
func (w *Weave) Run(ctx context.Context, task string) (string, error) {
	return w.agent.Run(ctx, task)
}
