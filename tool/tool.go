// Package tool implements the capability subsystem of planweave: tool
// definitions with schema'd inputs and outputs, executable implementations
// with validated arguments and consistent error handling, and the registry
// that maps tool names to both.
package tool

import (
	"context"
	"fmt"

	"github.com/planweave/planweave/core"
)

// Executor is the single-method capability interface every tool
// implementation satisfies. Inputs arrive as a key/value map matching the
// tool's declared input schema; the result must match its output schema.
// Implementations raise errors instead of returning silent error values and
// should be safe to invoke concurrently, constructing transient network
// sessions per call rather than sharing mutable connection state.
type Executor interface {
	Execute(ctx context.Context, inputs map[string]any) (map[string]any, error)
}

// ExecutorFunc adapts a plain function to the Executor interface.
type ExecutorFunc func(ctx context.Context, inputs map[string]any) (map[string]any, error)

// Execute calls the wrapped function.
func (f ExecutorFunc) Execute(ctx context.Context, inputs map[string]any) (map[string]any, error) {
	return f(ctx, inputs)
}

// Definition describes a registered capability: its unique name, the
// description and tags shown to the planning model, and JSON-Schema-like
// structural descriptions of its inputs and outputs. Definitions are
// immutable after registration except for hook attachment.
type Definition struct {
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Tags         []string         `json:"tags,omitempty"`
	InputSchema  map[string]any   `json:"input_schema"`
	OutputSchema map[string]any   `json:"output_schema"`
	Hooks        core.ToolHooks   `json:"-"`
	Examples     []map[string]any `json:"examples,omitempty"`
}

// HasTags reports whether the definition's tag set is a superset of the
// requested tags.
func (d Definition) HasTags(tags []string) bool {
	for _, want := range tags {
		found := false
		for _, have := range d.Tags {
			if have == want {
				found = true
				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}

// Error codes used by ToolError.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeExecution  = "EXECUTION_ERROR"
	CodeUnknown    = "UNKNOWN_TOOL"
	CodeMapping    = "MAPPING_ERROR"
)

// ToolError represents errors raised by the tool subsystem with a code for
// categorization and optional structured details.
type ToolError struct {
	Tool    string `json:"tool"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}

	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{
		Tool:    tool,
		Message: message,
		Code:    code,
	}
}
