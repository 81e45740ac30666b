package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAgentState_ToolResults(t *testing.T) {
	state := NewAgentState()

	_, ok := state.GetToolResult("weather")
	assert.False(t, ok)

	state.SetToolResult("weather", map[string]any{"temperature": 10})
	state.SetToolResult("events", map[string]any{"count": 3})

	result, ok := state.GetToolResult("weather")
	assert.True(t, ok)
	assert.Equal(t, 10, result["temperature"])

	assert.Equal(t, []string{"weather", "events"}, state.UsedTools())
}

func TestAgentState_OrderedResults(t *testing.T) {
	state := NewAgentState()
	state.SetToolResult("a", map[string]any{"v": 1})
	state.SetToolResult("b", map[string]any{"v": 2})
	state.SetToolResult("c", map[string]any{"v": 3})

	results := state.OrderedResults()
	assert.Len(t, results, 3)
	assert.Equal(t, "a", results[0].Tool)
	assert.Equal(t, "b", results[1].Tool)
	assert.Equal(t, "c", results[2].Tool)
}

func TestAgentState_OverwriteKeepsPosition(t *testing.T) {
	state := NewAgentState()
	state.SetToolResult("a", map[string]any{"v": 1})
	state.SetToolResult("b", map[string]any{"v": 2})
	state.SetToolResult("a", map[string]any{"v": 9})

	assert.Equal(t, []string{"a", "b"}, state.UsedTools())

	result, _ := state.GetToolResult("a")
	assert.Equal(t, 9, result["v"])
}

func TestAgentState_Variables(t *testing.T) {
	state := NewAgentState()

	_, ok := state.GetVariable("city")
	assert.False(t, ok)

	state.SetVariable("city", "Seattle")

	v, ok := state.GetVariable("city")
	assert.True(t, ok)
	assert.Equal(t, "Seattle", v)

	vars := state.Variables()
	vars["city"] = "mutated"

	v, _ = state.GetVariable("city")
	assert.Equal(t, "Seattle", v)
}
