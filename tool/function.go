package tool

import (
	"context"

	"github.com/planweave/planweave/internal/util"
)

// FunctionExecutor wraps a plain Go function as a schema-validated tool
// implementation.
//
// Responsibilities:
//   - Validates supplied inputs against the declared parameter schema before
//     execution
//   - Normalizes error handling so callers receive *ToolError with consistent
//     codes: VALIDATION_ERROR for schema mismatches, EXECUTION_ERROR for
//     failures of the wrapped function (custom codes are preserved when the
//     function returns *ToolError directly)
//
// A FunctionExecutor has no internal mutable state after construction and is
// safe for concurrent use by multiple goroutines.
type FunctionExecutor struct {
	name       string
	parameters map[string]any
	fn         func(ctx context.Context, inputs map[string]any) (map[string]any, error)
}

// NewFunctionExecutor constructs a FunctionExecutor from an explicit schema
// and function.
//
// Arguments:
//
//	name       - tool name used in error reporting (snake_case recommended)
//	parameters - minimal JSON-Schema-like map describing accepted inputs
//	fn         - implementation receiving already-validated inputs
func NewFunctionExecutor(
	name string,
	parameters map[string]any,
	fn func(ctx context.Context, inputs map[string]any) (map[string]any, error),
) *FunctionExecutor {
	return &FunctionExecutor{
		name:       name,
		parameters: parameters,
		fn:         fn,
	}
}

// Execute validates inputs against the declared schema then invokes the
// underlying function. Validation or execution failures are wrapped (or
// passed through) as *ToolError for uniform downstream handling.
func (e *FunctionExecutor) Execute(ctx context.Context, inputs map[string]any) (map[string]any, error) {
	if err := util.ValidateParameters(inputs, e.parameters); err != nil {
		return nil, &ToolError{
			Tool:    e.name,
			Message: "input validation failed: " + err.Error(),
			Code:    CodeValidation,
			Details: err,
		}
	}

	result, err := e.fn(ctx, inputs)
	if err != nil {
		if toolErr, ok := err.(*ToolError); ok {
			return nil, toolErr
		}

		return nil, &ToolError{
			Tool:    e.name,
			Message: err.Error(),
			Code:    CodeExecution,
		}
	}

	return result, nil
}
