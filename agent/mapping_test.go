package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planweave/planweave/core"
	"github.com/planweave/planweave/tool"
)

func mappingDefinition(props map[string]any, required []string) tool.Definition {
	return tool.Definition{
		Name: "target",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": props,
			"required":   required,
		},
	}
}

func TestResolveInputs_ExplicitMapping(t *testing.T) {
	state := core.NewAgentState()
	state.SetVariable("city", "Seattle, WA")

	step := core.PlanStep{
		Tool: "target",
		InputMapping: map[string]any{
			"location": "city",     // resolves to the variable
			"units":    "metric",   // no such variable, kept as literal
			"days":     float64(3), // non-string literal
		},
	}

	inputs, err := resolveInputs("task text", mappingDefinition(nil, nil), step, state)
	require.NoError(t, err)

	assert.Equal(t, "Seattle, WA", inputs["location"])
	assert.Equal(t, "metric", inputs["units"])
	assert.Equal(t, float64(3), inputs["days"])
}

func TestResolveInputs_PriorResultByPropertyName(t *testing.T) {
	state := core.NewAgentState()
	state.SetToolResult("weather_retriever", map[string]any{"temperature": 10})

	def := mappingDefinition(map[string]any{
		"weather_retriever": map[string]any{"type": "object"},
	}, []string{"weather_retriever"})

	inputs, err := resolveInputs("raw task", def, core.PlanStep{Tool: "target"}, state)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"temperature": 10}, inputs["weather_retriever"])
}

func TestResolveInputs_ShapeMatch(t *testing.T) {
	state := core.NewAgentState()
	state.SetToolResult("weather_retriever", map[string]any{
		"precipitation_chance": 65,
		"weather_condition":    "light rain",
		"temperature":          12,
	})

	def := mappingDefinition(map[string]any{
		"weather_data": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"precipitation_chance": map[string]any{"type": "number"},
				"weather_condition":    map[string]any{"type": "string"},
			},
			"required": []string{"precipitation_chance", "weather_condition"},
		},
	}, []string{"weather_data"})

	inputs, err := resolveInputs("raw task", def, core.PlanStep{Tool: "target"}, state)
	require.NoError(t, err)

	weather, ok := inputs["weather_data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 12, weather["temperature"])
}

func TestResolveInputs_ShapeMatchFirstWins(t *testing.T) {
	state := core.NewAgentState()
	state.SetToolResult("first", map[string]any{"a": 1, "b": 2})
	state.SetToolResult("second", map[string]any{"a": 3, "b": 4})

	def := mappingDefinition(map[string]any{
		"payload": map[string]any{
			"type":     "object",
			"required": []string{"a", "b"},
		},
	}, []string{"payload"})

	inputs, err := resolveInputs("raw task", def, core.PlanStep{Tool: "target"}, state)
	require.NoError(t, err)

	payload := inputs["payload"].(map[string]any)
	assert.Equal(t, 1, payload["a"])
}

func TestResolveInputs_VariableFallback(t *testing.T) {
	state := core.NewAgentState()
	state.SetVariable("location", "Berlin")

	def := mappingDefinition(map[string]any{
		"location": map[string]any{"type": "string"},
	}, []string{"location"})

	inputs, err := resolveInputs("raw task", def, core.PlanStep{Tool: "target"}, state)
	require.NoError(t, err)

	assert.Equal(t, "Berlin", inputs["location"])
}

func TestResolveInputs_TaskTextForStrings(t *testing.T) {
	def := mappingDefinition(map[string]any{
		"query": map[string]any{"type": "string"},
	}, []string{"query"})

	inputs, err := resolveInputs("find me a restaurant", def, core.PlanStep{Tool: "target"}, core.NewAgentState())
	require.NoError(t, err)

	assert.Equal(t, "find me a restaurant", inputs["query"])
}

func TestResolveInputs_NoBindings(t *testing.T) {
	def := mappingDefinition(map[string]any{
		"payload": map[string]any{"type": "object"},
	}, []string{"payload"})

	_, err := resolveInputs("task", def, core.PlanStep{Tool: "target"}, core.NewAgentState())
	require.Error(t, err)

	var toolErr *tool.ToolError
	assert.ErrorAs(t, err, &toolErr)
	assert.Equal(t, tool.CodeMapping, toolErr.Code)
	assert.Equal(t, "target", toolErr.Tool)
}
