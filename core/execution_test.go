package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskExecution_Lifecycle(t *testing.T) {
	exec := NewTaskExecution("task-1", "agent-1", "check the weather")

	assert.Equal(t, TaskStatusInProgress, exec.Status)
	assert.False(t, exec.StartTime.IsZero())
	assert.True(t, exec.EndTime.IsZero())

	exec.AddStep("task_received", "Received task", map[string]any{"task": "check the weather"})
	exec.AddStep("processing", "Executing tool", nil)

	exec.Finalize(nil)

	assert.Equal(t, TaskStatusCompleted, exec.Status)
	assert.False(t, exec.EndTime.IsZero())
	assert.True(t, !exec.EndTime.Before(exec.StartTime))
	assert.Empty(t, exec.Error)
}

func TestTaskExecution_FinalizeWithError(t *testing.T) {
	exec := NewTaskExecution("task-1", "agent-1", "check the weather")
	exec.Finalize(errors.New("weather API unreachable"))

	assert.Equal(t, TaskStatusFailed, exec.Status)
	assert.Equal(t, "weather API unreachable", exec.Error)
	assert.False(t, exec.EndTime.IsZero())
}

func TestTaskExecution_AppendToolCall(t *testing.T) {
	exec := NewTaskExecution("task-1", "agent-1", "input")

	// No step logged yet: the call has nowhere to go and is dropped.
	exec.AppendToolCall(ToolCall{ToolName: "orphan"})
	assert.Empty(t, exec.Steps)

	exec.AddStep("processing", "Executing tool", nil)
	exec.AppendToolCall(ToolCall{ToolName: "weather", Success: true})

	step := exec.CurrentStep()
	assert.NotNil(t, step)
	assert.Len(t, step.ToolCalls, 1)
	assert.Equal(t, "weather", step.ToolCalls[0].ToolName)
}

func TestTaskExecution_Clone(t *testing.T) {
	exec := NewTaskExecution("task-1", "agent-1", "input")
	exec.AddStep("processing", "Executing tool", map[string]any{"k": "v"})
	exec.AppendToolCall(ToolCall{ToolName: "weather"})

	clone := exec.Clone()
	clone.Steps[0].ToolCalls[0].ToolName = "mutated"
	clone.Steps[0].IntermediateState["k"] = "mutated"

	assert.Equal(t, "weather", exec.Steps[0].ToolCalls[0].ToolName)
	assert.Equal(t, "v", exec.Steps[0].IntermediateState["k"])
}
