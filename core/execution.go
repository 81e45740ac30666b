package core

import "time"

// TaskStatus tracks the lifecycle of a TaskExecution.
type TaskStatus string

const (
	// TaskStatusInProgress marks a task that is still being executed.
	TaskStatusInProgress TaskStatus = "in_progress"
	// TaskStatusCompleted marks a task that produced a final output.
	TaskStatusCompleted TaskStatus = "completed"
	// TaskStatusFailed marks a task aborted by an error.
	TaskStatusFailed TaskStatus = "failed"
)

// ToolSelectionCriteria describe constraints fed to tool selection: tags a
// candidate must or should carry plus free-form context requirements.
type ToolSelectionCriteria struct {
	RequiredTags        []string       `json:"required_tags,omitempty"`
	PreferredTags       []string       `json:"preferred_tags,omitempty"`
	ContextRequirements map[string]any `json:"context_requirements,omitempty"`
	CustomRules         map[string]any `json:"custom_rules,omitempty"`
}

// ToolSelectionReasoning is the snapshot of one selection decision: what was
// considered, which criteria applied, the step-by-step reasoning and the
// outcome with a confidence score in [0,1].
type ToolSelectionReasoning struct {
	Context         map[string]any        `json:"context"`
	ConsideredTools []string              `json:"considered_tools"`
	Criteria        ToolSelectionCriteria `json:"selection_criteria"`
	ReasoningSteps  []string              `json:"reasoning_steps"`
	SelectedTool    string                `json:"selected_tool"`
	ConfidenceScore float64               `json:"confidence_score"`
}

// ToolCall records one tool invocation. Outputs is nil when the call failed;
// Error carries the failure message in that case.
type ToolCall struct {
	ToolName           string                  `json:"tool_name"`
	Inputs             map[string]any          `json:"inputs"`
	Outputs            map[string]any          `json:"outputs,omitempty"`
	SelectionReasoning *ToolSelectionReasoning `json:"selection_reasoning,omitempty"`
	ExecutionReasoning string                  `json:"execution_reasoning"`
	Timestamp          time.Time               `json:"timestamp"`
	Success            bool                    `json:"success"`
	Error              string                  `json:"error,omitempty"`
}

// ExecutionStep is one logged phase of a task (task_received, planning,
// processing, completion, error). The ToolCalls list is append-only and owned
// by the enclosing TaskExecution.
type ExecutionStep struct {
	StepType          string         `json:"step_type"`
	Description       string         `json:"description"`
	Timestamp         time.Time      `json:"timestamp"`
	ToolCalls         []ToolCall     `json:"tool_calls,omitempty"`
	IntermediateState map[string]any `json:"intermediate_state,omitempty"`
}

// Message is one entry of a task's message history. User messages carry
// Content; tool messages carry the tool name, inputs, result and reasoning.
type Message struct {
	Role      string         `json:"role"`
	Content   string         `json:"content,omitempty"`
	ToolName  string         `json:"tool_name,omitempty"`
	Inputs    map[string]any `json:"inputs,omitempty"`
	Result    map[string]any `json:"result,omitempty"`
	Reasoning string         `json:"reasoning,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// TaskExecution is the complete record of one task: identifiers, the original
// input, the ordered step log, final output and terminal status. It is
// created at the start of a run, mutated throughout and finalized on every
// exit path, including failure. An agent holds at most one current
// TaskExecution; overlapping runs on the same agent are not supported.
type TaskExecution struct {
	TaskID    string          `json:"task_id"`
	AgentID   string          `json:"agent_id"`
	Input     string          `json:"input"`
	Steps     []ExecutionStep `json:"steps"`
	Output    string          `json:"output,omitempty"`
	StartTime time.Time       `json:"start_time"`
	EndTime   time.Time       `json:"end_time,omitempty"`
	Status    TaskStatus      `json:"status"`
	Error     string          `json:"error,omitempty"`
}

// NewTaskExecution creates an in-progress record stamped with the current time.
func NewTaskExecution(taskID, agentID, input string) *TaskExecution {
	return &TaskExecution{
		TaskID:    taskID,
		AgentID:   agentID,
		Input:     input,
		StartTime: time.Now().UTC(),
		Status:    TaskStatusInProgress,
	}
}

// AddStep appends a new execution step and returns a pointer to it so the
// caller can attach tool calls.
func (t *TaskExecution) AddStep(stepType, description string, intermediateState map[string]any) *ExecutionStep {
	t.Steps = append(t.Steps, ExecutionStep{
		StepType:          stepType,
		Description:       description,
		Timestamp:         time.Now().UTC(),
		IntermediateState: intermediateState,
	})

	return &t.Steps[len(t.Steps)-1]
}

// CurrentStep returns the most recently added step, or nil when no step has
// been logged yet.
func (t *TaskExecution) CurrentStep() *ExecutionStep {
	if len(t.Steps) == 0 {
		return nil
	}

	return &t.Steps[len(t.Steps)-1]
}

// AppendToolCall attaches a tool call record to the current step. A
// processing step must have been logged first; calls are dropped otherwise to
// keep the record append-only without inventing steps.
func (t *TaskExecution) AppendToolCall(call ToolCall) {
	step := t.CurrentStep()
	if step == nil {
		return
	}

	step.ToolCalls = append(step.ToolCalls, call)
}

// Finalize stamps the end time and terminal status. When err is non-nil the
// status becomes failed and the error message is preserved.
func (t *TaskExecution) Finalize(err error) {
	t.EndTime = time.Now().UTC()
	if err != nil {
		t.Status = TaskStatusFailed
		t.Error = err.Error()

		return
	}

	t.Status = TaskStatusCompleted
}

// Duration reports elapsed wall time, using the current time while the task
// is still in progress.
func (t *TaskExecution) Duration() time.Duration {
	if t.EndTime.IsZero() {
		return time.Since(t.StartTime)
	}

	return t.EndTime.Sub(t.StartTime)
}

// Clone returns a deep copy safe to hand to observers while the original is
// still being mutated.
func (t *TaskExecution) Clone() *TaskExecution {
	c := *t
	c.Steps = make([]ExecutionStep, len(t.Steps))

	for i, step := range t.Steps {
		cs := step
		cs.ToolCalls = append([]ToolCall(nil), step.ToolCalls...)
		cs.IntermediateState = copyMap(step.IntermediateState)
		c.Steps[i] = cs
	}

	return &c
}

func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}

	c := make(map[string]any, len(m))
	for k, v := range m {
		c[k] = v
	}

	return c
}
