package core

import "time"

// ToolContext is the ephemeral snapshot handed to lifecycle hooks for one
// tool call: the task being executed, the tool and its resolved inputs, the
// history accumulated so far and identifying metadata. It is assembled fresh
// for every call and never persisted; hooks may retain it without affecting
// the execution loop.
type ToolContext struct {
	Task            string         `json:"task"`
	ToolName        string         `json:"tool_name"`
	Inputs          map[string]any `json:"inputs"`
	PreviousTools   []string       `json:"previous_tools"`
	PreviousResults []NamedResult  `json:"previous_results"`
	PreviousErrors  []string       `json:"previous_errors"`
	MessageHistory  []Message      `json:"message_history"`
	AgentID         string         `json:"agent_id"`
	TaskID          string         `json:"task_id"`
	StartTime       time.Time      `json:"start_time"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	AvailableTools  []string       `json:"available_tools,omitempty"`
	Plan            *Plan          `json:"plan,omitempty"`
}
