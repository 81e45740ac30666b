package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToolError_Error(t *testing.T) {
	err := NewToolError("weather", "request failed", CodeExecution)
	assert.Equal(t, "tool error [EXECUTION_ERROR] in weather: request failed", err.Error())

	plain := &ToolError{Tool: "weather", Message: "request failed"}
	assert.Equal(t, "tool error in weather: request failed", plain.Error())
}

func TestDefinition_HasTags(t *testing.T) {
	def := Definition{Name: "weather", Tags: []string{"weather", "data-retrieval"}}

	assert.True(t, def.HasTags(nil))
	assert.True(t, def.HasTags([]string{"weather"}))
	assert.True(t, def.HasTags([]string{"weather", "data-retrieval"}))
	assert.False(t, def.HasTags([]string{"weather", "decision"}))
}

func TestFunctionExecutor_Success(t *testing.T) {
	exec := NewFunctionExecutor("echo", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{"type": "string"},
		},
		"required": []string{"text"},
	}, func(_ context.Context, inputs map[string]any) (map[string]any, error) {
		return map[string]any{"echoed": inputs["text"]}, nil
	})

	result, err := exec.Execute(context.Background(), map[string]any{"text": "hello"})
	assert.NoError(t, err)
	assert.Equal(t, "hello", result["echoed"])
}

func TestFunctionExecutor_ValidationFailure(t *testing.T) {
	exec := NewFunctionExecutor("echo", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{"type": "string"},
		},
		"required": []string{"text"},
	}, func(_ context.Context, inputs map[string]any) (map[string]any, error) {
		return inputs, nil
	})

	_, err := exec.Execute(context.Background(), map[string]any{})
	assert.Error(t, err)

	var toolErr *ToolError
	assert.ErrorAs(t, err, &toolErr)
	assert.Equal(t, CodeValidation, toolErr.Code)

	_, err = exec.Execute(context.Background(), map[string]any{"text": 42})
	assert.Error(t, err)
}

func TestFunctionExecutor_ErrorWrapping(t *testing.T) {
	schema := map[string]any{"type": "object"}

	failing := NewFunctionExecutor("fails", schema, func(context.Context, map[string]any) (map[string]any, error) {
		return nil, errors.New("upstream unavailable")
	})

	_, err := failing.Execute(context.Background(), map[string]any{})
	var toolErr *ToolError
	assert.ErrorAs(t, err, &toolErr)
	assert.Equal(t, CodeExecution, toolErr.Code)
	assert.Equal(t, "upstream unavailable", toolErr.Message)

	// A *ToolError from the wrapped function passes through unchanged.
	custom := NewToolError("fails", "rate limited", CodeValidation)
	passthrough := NewFunctionExecutor("fails", schema, func(context.Context, map[string]any) (map[string]any, error) {
		return nil, custom
	})

	_, err = passthrough.Execute(context.Background(), map[string]any{})
	assert.Same(t, custom, err)
}

func TestSchemaFromStruct(t *testing.T) {
	type weatherInputs struct {
		Location string `json:"location" jsonschema:"description=The location to get weather data for"`
		Days     int    `json:"days,omitempty"`
	}

	schema := SchemaFromStruct(weatherInputs{})

	assert.Equal(t, "object", schema["type"])
	assert.NotContains(t, schema, "$schema")

	props, ok := schema["properties"].(map[string]any)
	assert.True(t, ok)
	assert.Contains(t, props, "location")
	assert.Contains(t, props, "days")
}
