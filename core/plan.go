package core

import "fmt"

// PlanStep is one entry of a plan's execution sequence: the tool to invoke,
// the model's reasoning for choosing it, and an optional explicit binding of
// input names to state variables or literal values.
type PlanStep struct {
	Tool         string         `json:"tool"`
	Reasoning    string         `json:"reasoning"`
	InputMapping map[string]any `json:"input_mapping,omitempty"`
}

// Plan is the structured output of the planning step. It is produced once per
// task by the reasoning model and treated as read-only afterwards.
//
// The field set mirrors the JSON shape demanded from the model: an analysis
// of the input, the tools that were considered, a capability map, the ordered
// execution plan, a requirements-coverage map and the chain-of-thought trace.
type Plan struct {
	InputAnalysis        string         `json:"input_analysis"`
	AvailableTools       []string       `json:"available_tools"`
	ToolCapabilities     map[string]any `json:"tool_capabilities"`
	ExecutionPlan        []PlanStep     `json:"execution_plan"`
	RequirementsCoverage map[string]any `json:"requirements_coverage"`
	ChainOfThought       []string       `json:"chain_of_thought"`
}

// UnknownToolError reports a plan step referencing a tool that is not
// registered. It is fatal for the task that produced the plan.
type UnknownToolError struct {
	Tool string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("plan references unknown tool %q", e.Tool)
}

// Validate checks that every tool referenced by the execution plan satisfies
// the given membership predicate (typically Registry.Has). The first missing
// tool is reported as an *UnknownToolError.
func (p *Plan) Validate(has func(name string) bool) error {
	if len(p.ExecutionPlan) == 0 {
		return fmt.Errorf("plan has an empty execution plan")
	}

	for _, step := range p.ExecutionPlan {
		if !has(step.Tool) {
			return &UnknownToolError{Tool: step.Tool}
		}
	}

	return nil
}

// Tools returns the tool names of the execution plan in order.
func (p *Plan) Tools() []string {
	names := make([]string, 0, len(p.ExecutionPlan))
	for _, step := range p.ExecutionPlan {
		names = append(names, step.Tool)
	}

	return names
}
