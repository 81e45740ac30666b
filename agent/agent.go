package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/planweave/planweave/core"
	"github.com/planweave/planweave/history"
	"github.com/planweave/planweave/logging"
	"github.com/planweave/planweave/planner"
	"github.com/planweave/planweave/tool"
)

// ResultFormatter turns the ordered results collected during a run into the
// final textual answer. Implementations must be pure functions over the
// already-collected data.
type ResultFormatter interface {
	FormatResult(task string, results []core.NamedResult) string
}

// ResultFormatterFunc adapts a plain function to the ResultFormatter
// interface.
type ResultFormatterFunc func(task string, results []core.NamedResult) string

// FormatResult calls the wrapped function.
func (f ResultFormatterFunc) FormatResult(task string, results []core.NamedResult) string {
	return f(task, results)
}

// defaultFormatter concatenates each tool's result on its own line.
func defaultFormatter(_ string, results []core.NamedResult) string {
	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "%s: %v\n", r.Tool, r.Result)
	}

	return strings.TrimRight(b.String(), "\n")
}

// Options configures an Agent.
type Options struct {
	// ID identifies the agent in task records. Generated when empty.
	ID string

	// Metadata carries the agent's name, version and capabilities.
	Metadata core.AgentMetadata

	// SelectionHooks observe every selection decision of the plan loop.
	SelectionHooks core.ToolSelectionHooks

	// SelectionCriteria constrain the heuristic fallback of SelectTool.
	SelectionCriteria core.ToolSelectionCriteria

	// Formatter produces the final answer from collected results.
	Formatter ResultFormatter

	// History receives a snapshot of every finished task execution. Nil
	// disables persistence.
	History history.Store

	// Logger receives structured execution logs.
	Logger *logging.AgentLogger
}

// Agent coordinates a planning call and the sequential execution of the
// resulting tool steps. The registry is read-only during task execution and
// may be shared across agents; the agent itself holds one current task at a
// time and must not run overlapping tasks.
type Agent struct {
	id             string
	metadata       core.AgentMetadata
	registry       *tool.Registry
	planner        *planner.Planner
	selectionHooks core.ToolSelectionHooks
	criteria       core.ToolSelectionCriteria
	formatter      ResultFormatter
	store          history.Store
	logger         *logging.AgentLogger
	currentTask    *core.TaskExecution
}

// New constructs an Agent over a populated tool registry and a planner.
func New(registry *tool.Registry, p *planner.Planner, optFns ...func(o *Options)) *Agent {
	opts := Options{
		ID:        uuid.NewString(),
		Formatter: ResultFormatterFunc(defaultFormatter),
		Logger:    logging.NewLogger(logging.DefaultLoggerConfig()),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Metadata.Name == "" {
		opts.Metadata.Name = "agent"
	}

	return &Agent{
		id:             opts.ID,
		metadata:       opts.Metadata,
		registry:       registry,
		planner:        p,
		selectionHooks: opts.SelectionHooks,
		criteria:       opts.SelectionCriteria,
		formatter:      opts.Formatter,
		store:          opts.History,
		logger:         opts.Logger.WithComponent("agent"),
	}
}

// ID returns the agent's identifier.
func (a *Agent) ID() string { return a.id }

// Metadata returns the agent's identifying details.
func (a *Agent) Metadata() core.AgentMetadata { return a.metadata }

// CurrentTask returns the execution record of the task most recently started
// by Run. It keeps being mutated while a run is in flight.
func (a *Agent) CurrentTask() *core.TaskExecution { return a.currentTask }

// taskRun bundles the mutable state of one Run invocation so it can be
// threaded through the step loop without touching agent-level fields.
type taskRun struct {
	exec     *core.TaskExecution
	plan     *core.Plan
	state    *core.AgentState
	messages []core.Message
	errors   []string
}

// Run executes a natural-language task: it obtains a plan, validates every
// referenced tool against the registry, executes the plan's steps in order
// and formats the collected results. The returned TaskExecution record is
// finalized on every exit path; on failure its status is failed, its error
// is set and the steps completed before the failure are preserved.
func (a *Agent) Run(ctx context.Context, task string) (output string, err error) {
	run := &taskRun{
		exec:  core.NewTaskExecution(uuid.NewString(), a.id, task),
		state: core.NewAgentState(),
		messages: []core.Message{{
			Role:      "user",
			Content:   task,
			Timestamp: time.Now().UTC(),
		}},
	}

	a.currentTask = run.exec
	logger := a.logger.WithTask(a.id, run.exec.TaskID)

	defer func() {
		if err != nil {
			run.exec.AddStep("error", err.Error(), nil)
		}

		run.exec.Finalize(err)

		if a.store != nil {
			if saveErr := a.store.Save(run.exec); saveErr != nil {
				logger.Warn("agent.history.save_failed", "error", saveErr)
			}
		}
	}()

	run.exec.AddStep("task_received", fmt.Sprintf("Received task: %s", task), map[string]any{"task": task})
	logger.Info("agent.task.received", "task", task)

	run.exec.AddStep("planning", "Creating execution plan", nil)

	plan, err := a.planner.CreatePlan(ctx, task, a.registry.ListTools())
	if err != nil {
		return "", err
	}

	if err = plan.Validate(a.registry.Has); err != nil {
		return "", err
	}

	run.plan = plan

	if step := run.exec.CurrentStep(); step != nil {
		step.IntermediateState = map[string]any{"plan": plan.Tools()}
	}

	logger.Info("agent.plan.validated", "tools", plan.Tools())

	for _, planStep := range plan.ExecutionPlan {
		if err = a.executeStep(ctx, run, planStep); err != nil {
			return "", err
		}
	}

	output = a.formatter.FormatResult(task, run.state.OrderedResults())
	run.exec.Output = output
	run.exec.AddStep("completion", "Task completed successfully", map[string]any{"final_result": output})
	logger.Info("agent.task.completed", "duration", run.exec.Duration())

	return output, nil
}

// executeStep drives one plan step through its lifecycle: resolve inputs,
// report the selection, fire the before hook, invoke the implementation and
// record the outcome. Mapping and execution failures abort the remaining
// plan; hook failures are logged and tolerated.
func (a *Agent) executeStep(ctx context.Context, run *taskRun, planStep core.PlanStep) error {
	def, ok := a.registry.GetTool(planStep.Tool)
	if !ok {
		return &core.UnknownToolError{Tool: planStep.Tool}
	}

	logger := a.logger.WithTask(a.id, run.exec.TaskID)

	inputs, err := resolveInputs(run.exec.Input, def, planStep, run.state)
	if err != nil {
		return err
	}

	step := run.exec.AddStep("processing", fmt.Sprintf("Executing tool: %s", planStep.Tool), nil)
	toolCtx := a.buildToolContext(run, planStep.Tool, inputs)

	reasoning := &core.ToolSelectionReasoning{
		Context:         map[string]any{"task": run.exec.Input},
		ConsideredTools: a.registry.Names(),
		Criteria:        a.criteria,
		ReasoningSteps:  []string{planStep.Reasoning},
		SelectedTool:    planStep.Tool,
		ConfidenceScore: 1.0,
	}

	if a.selectionHooks != nil {
		if hookErr := a.selectionHooks.AfterSelection(ctx, toolCtx, planStep.Tool, 1.0, []string{planStep.Reasoning}); hookErr != nil {
			logger.Warn("agent.hook.after_selection_failed", "tool", planStep.Tool, "error", hookErr)
		}
	}

	if def.Hooks != nil {
		if hookErr := def.Hooks.BeforeExecution(ctx, toolCtx); hookErr != nil {
			logger.Warn("agent.hook.before_execution_failed", "tool", planStep.Tool, "error", hookErr)
		}
	}

	impl, _ := a.registry.GetExecutor(planStep.Tool)
	started := time.Now()

	result, execErr := impl.Execute(ctx, inputs)

	call := core.ToolCall{
		ToolName:           planStep.Tool,
		Inputs:             inputs,
		Outputs:            result,
		SelectionReasoning: reasoning,
		ExecutionReasoning: planStep.Reasoning,
		Timestamp:          time.Now().UTC(),
		Success:            execErr == nil,
	}
	if execErr != nil {
		call.Error = execErr.Error()
	}

	step.ToolCalls = append(step.ToolCalls, call)
	logger.LogToolCall(planStep.Tool, time.Since(started), execErr == nil, execErr)

	if execErr != nil {
		run.errors = append(run.errors, execErr.Error())

		if def.Hooks != nil {
			if hookErr := def.Hooks.AfterExecution(ctx, toolCtx, nil, execErr); hookErr != nil {
				logger.Warn("agent.hook.after_execution_failed", "tool", planStep.Tool, "error", hookErr)
			}
		}

		return execErr
	}

	run.state.SetToolResult(planStep.Tool, result)
	run.messages = append(run.messages, core.Message{
		Role:      "tool",
		ToolName:  planStep.Tool,
		Inputs:    inputs,
		Result:    result,
		Reasoning: planStep.Reasoning,
		Timestamp: time.Now().UTC(),
	})

	if def.Hooks != nil {
		if hookErr := def.Hooks.AfterExecution(ctx, toolCtx, result, nil); hookErr != nil {
			logger.Warn("agent.hook.after_execution_failed", "tool", planStep.Tool, "error", hookErr)
		}
	}

	return nil
}

// buildToolContext assembles the snapshot handed to lifecycle hooks for one
// tool call.
func (a *Agent) buildToolContext(run *taskRun, toolName string, inputs map[string]any) *core.ToolContext {
	return &core.ToolContext{
		Task:            run.exec.Input,
		ToolName:        toolName,
		Inputs:          inputs,
		PreviousTools:   run.state.UsedTools(),
		PreviousResults: run.state.OrderedResults(),
		PreviousErrors:  append([]string(nil), run.errors...),
		MessageHistory:  append([]core.Message(nil), run.messages...),
		AgentID:         a.id,
		TaskID:          run.exec.TaskID,
		StartTime:       run.exec.StartTime,
		Metadata:        a.metadata.CustomAttributes,
		AvailableTools:  a.registry.Names(),
		Plan:            run.plan,
	}
}

// CallTool invokes a registered tool directly, outside any plan, and records
// the call in the current task's step log. It is the escape hatch for agents
// that mix planned and hand-written orchestration.
func (a *Agent) CallTool(ctx context.Context, toolName string, inputs map[string]any, reasoning string) (map[string]any, error) {
	impl, ok := a.registry.GetExecutor(toolName)
	if !ok {
		return nil, tool.NewToolError(toolName, "tool is not registered", tool.CodeUnknown)
	}

	result, err := impl.Execute(ctx, inputs)

	if a.currentTask != nil {
		call := core.ToolCall{
			ToolName:           toolName,
			Inputs:             inputs,
			Outputs:            result,
			ExecutionReasoning: reasoning,
			Timestamp:          time.Now().UTC(),
			Success:            err == nil,
		}
		if err != nil {
			call.Error = err.Error()
		}

		a.currentTask.AppendToolCall(call)
	}

	return result, err
}

// LogStep appends an execution step to the current task record. It fails
// when no task is in flight.
func (a *Agent) LogStep(stepType, description string, intermediateState map[string]any) error {
	if a.currentTask == nil {
		return fmt.Errorf("no active task execution")
	}

	a.currentTask.AddStep(stepType, description, intermediateState)

	return nil
}

// SelectTool is the heuristic fallback used when no planning model is
// available: candidates are filtered by the criteria's required tags, scored
// by preferred-tag overlap and the best match wins. The returned reasoning
// records the decision with a conservative confidence.
func (a *Agent) SelectTool(taskContext map[string]any, criteria *core.ToolSelectionCriteria) *core.ToolSelectionReasoning {
	if criteria == nil {
		criteria = &a.criteria
	}

	reasoning := &core.ToolSelectionReasoning{
		Context:         taskContext,
		ConsideredTools: a.registry.Names(),
		Criteria:        *criteria,
	}

	candidates := a.registry.ToolsByTags(criteria.RequiredTags)
	if len(candidates) == 0 {
		reasoning.ReasoningSteps = []string{"no registered tool satisfies the required tags"}

		return reasoning
	}

	type scored struct {
		def   tool.Definition
		score int
		pos   int
	}

	ranked := make([]scored, 0, len(candidates))
	for i, def := range candidates {
		s := 0
		for _, want := range criteria.PreferredTags {
			for _, have := range def.Tags {
				if have == want {
					s++
					break
				}
			}
		}

		ranked = append(ranked, scored{def: def, score: s, pos: i})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	best := ranked[0]
	reasoning.SelectedTool = best.def.Name
	reasoning.ConfidenceScore = 0.5
	reasoning.ReasoningSteps = []string{
		fmt.Sprintf("selected %s by tag overlap (%d preferred tags matched)", best.def.Name, best.score),
	}

	return reasoning
}
