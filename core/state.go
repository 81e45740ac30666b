package core

// AgentState is the shared mutable scratch space of one task execution: the
// result of each executed tool keyed by tool name, plus named variables used
// to resolve later steps' inputs from earlier steps' outputs.
//
// Tool results remember their insertion order so that "first match" lookups
// during input mapping are deterministic (Go map iteration is not).
//
// An AgentState is owned exclusively by the agent's execution loop and must
// be constructed fresh at the start of each run; it is not safe for
// concurrent use and must never be shared across overlapping runs.
type AgentState struct {
	order       []string
	toolResults map[string]map[string]any
	variables   map[string]any
}

// NamedResult pairs a tool name with the result it produced.
type NamedResult struct {
	Tool   string
	Result map[string]any
}

// NewAgentState returns an empty state for a single task execution.
func NewAgentState() *AgentState {
	return &AgentState{
		toolResults: make(map[string]map[string]any),
		variables:   make(map[string]any),
	}
}

// SetToolResult stores the last result of the named tool. Re-executing a tool
// overwrites its result but keeps its original position in insertion order.
func (s *AgentState) SetToolResult(tool string, result map[string]any) {
	if _, seen := s.toolResults[tool]; !seen {
		s.order = append(s.order, tool)
	}

	s.toolResults[tool] = result
}

// GetToolResult returns the stored result of the named tool.
func (s *AgentState) GetToolResult(tool string) (map[string]any, bool) {
	r, ok := s.toolResults[tool]
	return r, ok
}

// OrderedResults returns all tool results in execution order.
func (s *AgentState) OrderedResults() []NamedResult {
	results := make([]NamedResult, 0, len(s.order))
	for _, name := range s.order {
		results = append(results, NamedResult{Tool: name, Result: s.toolResults[name]})
	}

	return results
}

// UsedTools returns the names of all tools that produced a result, in
// execution order.
func (s *AgentState) UsedTools() []string {
	return append([]string(nil), s.order...)
}

// SetVariable stores a named variable.
func (s *AgentState) SetVariable(name string, value any) {
	s.variables[name] = value
}

// GetVariable returns the value of a named variable.
func (s *AgentState) GetVariable(name string) (any, bool) {
	v, ok := s.variables[name]
	return v, ok
}

// Variables returns a copy of the variable store.
func (s *AgentState) Variables() map[string]any {
	return copyMap(s.variables)
}
