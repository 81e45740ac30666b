// Package planner turns a task string plus the set of registered tools into
// a structured core.Plan by prompting a reasoning model for a fixed JSON
// shape and validating the response.
//
// The quality of the plan (tool ordering, argument choices) is entirely
// delegated to the model; the planner's obligation is structural: the
// response must carry every required field and each execution step must name
// a tool with a reasoning string. A malformed response is a hard parse
// failure, retried once with a corrective follow-up prompt before giving up.
package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/planweave/planweave/core"
	"github.com/planweave/planweave/logging"
	"github.com/planweave/planweave/model"
	"github.com/planweave/planweave/tool"
)

// Options configure a Planner.
type Options struct {
	// MaxRepairAttempts bounds how many corrective follow-up prompts are sent
	// after a malformed response before the planning call fails.
	MaxRepairAttempts int
	Logger            logging.Logger
}

// Planner builds planning requests and validates the model's structured output.
type Planner struct {
	model             model.Model
	maxRepairAttempts int
	logger            logging.Logger
}

// New constructs a Planner with optional overrides.
func New(m model.Model, optFns ...func(o *Options)) *Planner {
	opts := Options{
		MaxRepairAttempts: 1,
		Logger:            logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Planner{
		model:             m,
		maxRepairAttempts: opts.MaxRepairAttempts,
		logger:            opts.Logger,
	}
}

// CreatePlan requests a structured plan for the task from the reasoning model.
//
// The system instruction enumerates the given tools (name, description, tags,
// schemas) and the exact JSON shape required; the user instruction is the
// task text. On a parse failure the planner sends up to MaxRepairAttempts
// corrective follow-ups carrying the parse error before returning the last
// *ParseError.
func (p *Planner) CreatePlan(ctx context.Context, task string, tools []tool.Definition) (*core.Plan, error) {
	if p.model == nil {
		return nil, fmt.Errorf("planner: no reasoning model configured")
	}

	if len(tools) == 0 {
		return nil, fmt.Errorf("planner: no tools available for planning")
	}

	instructions, err := buildPlanningPrompt(tools)
	if err != nil {
		return nil, fmt.Errorf("planner: building prompt: %w", err)
	}

	start := time.Now()
	input := task

	var lastErr error

	for attempt := 0; attempt <= p.maxRepairAttempts; attempt++ {
		resp, err := p.model.Generate(ctx, model.Request{Instructions: instructions, Input: input})
		if err != nil {
			return nil, fmt.Errorf("planner: reasoning call failed: %w", err)
		}

		plan, err := ParsePlan(resp.Content)
		if err == nil {
			p.logger.Info("planner.plan.created",
				"steps", len(plan.ExecutionPlan),
				"tools", plan.Tools(),
				"attempts", attempt+1,
				"duration_ms", time.Since(start).Milliseconds(),
			)

			return plan, nil
		}

		lastErr = err
		p.logger.Warn("planner.plan.parse_failed", "attempt", attempt+1, "error", err.Error())

		input = fmt.Sprintf(
			"Your previous response could not be parsed: %v.\n"+
				"Respond again with ONLY a valid JSON object matching the required schema, no surrounding text.\n\nTask: %s",
			err, task,
		)
	}

	return nil, lastErr
}
