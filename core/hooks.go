package core

import "context"

// ToolHooks observe the execution lifecycle of a single tool. Hooks are
// attached per tool and are the extension point for telemetry and
// observability.
//
// Hooks are best-effort: the execution loop logs and continues when a hook
// returns an error. They must not assume they will run for every plan step —
// an earlier step failing the task means later steps (and their hooks) never
// execute.
type ToolHooks interface {
	// BeforeExecution runs after inputs are resolved, immediately before the
	// tool implementation is invoked.
	BeforeExecution(ctx context.Context, toolCtx *ToolContext) error

	// AfterExecution runs once the implementation returns. Exactly one of
	// result and execErr is meaningful: result is nil when the call failed.
	AfterExecution(ctx context.Context, toolCtx *ToolContext, result map[string]any, execErr error) error
}

// ToolSelectionHooks observe selection decisions. Attached per agent and
// invoked once per plan step before the tool executes.
type ToolSelectionHooks interface {
	// AfterSelection receives the chosen tool, the confidence of the decision
	// and the reasoning entries that justified it. Plan-derived steps are not
	// re-scored and report a fixed confidence of 1.0.
	AfterSelection(ctx context.Context, toolCtx *ToolContext, selectedTool string, confidence float64, reasoning []string) error
}

// NoOpToolHooks implements ToolHooks with no behavior. Embed it to implement
// only the callbacks of interest.
type NoOpToolHooks struct{}

// BeforeExecution does nothing.
func (NoOpToolHooks) BeforeExecution(context.Context, *ToolContext) error { return nil }

// AfterExecution does nothing.
func (NoOpToolHooks) AfterExecution(context.Context, *ToolContext, map[string]any, error) error {
	return nil
}

// NoOpSelectionHooks implements ToolSelectionHooks with no behavior.
type NoOpSelectionHooks struct{}

// AfterSelection does nothing.
func (NoOpSelectionHooks) AfterSelection(context.Context, *ToolContext, string, float64, []string) error {
	return nil
}
