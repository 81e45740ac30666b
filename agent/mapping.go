package agent

import (
	"github.com/planweave/planweave/core"
	"github.com/planweave/planweave/internal/util"
	"github.com/planweave/planweave/tool"
)

// resolveInputs produces the concrete arguments for one plan step.
//
// Resolution order, first match wins:
//
//  1. An explicit input_mapping on the plan step binds each input name to a
//     state variable when one exists under the mapped name, or to the mapped
//     value itself as a literal.
//  2. Otherwise each property of the tool's input schema is resolved from,
//     in order: a prior tool result stored under the property name, a prior
//     result whose shape satisfies an object-typed property, a state
//     variable of that name, or the raw task text for string properties.
//
// Ambiguity between several shape-compatible prior results is broken by
// execution order: the earliest matching result wins. A step that yields no
// bindings at all fails with a mapping error naming the tool.
func resolveInputs(task string, def tool.Definition, step core.PlanStep, state *core.AgentState) (map[string]any, error) {
	if len(step.InputMapping) > 0 {
		inputs := make(map[string]any, len(step.InputMapping))

		for name, value := range step.InputMapping {
			if ref, ok := value.(string); ok {
				if v, found := state.GetVariable(ref); found {
					inputs[name] = v
					continue
				}
			}

			inputs[name] = value
		}

		return inputs, nil
	}

	inputs := make(map[string]any)

	for name, propSchema := range util.SchemaProperties(def.InputSchema) {
		if result, ok := state.GetToolResult(name); ok {
			inputs[name] = result
			continue
		}

		if util.PropertyType(propSchema) == "object" {
			if result, ok := matchResultShape(propSchema, state); ok {
				inputs[name] = result
				continue
			}
		}

		if v, ok := state.GetVariable(name); ok {
			inputs[name] = v
			continue
		}

		if util.PropertyType(propSchema) == "string" {
			inputs[name] = task
		}
	}

	if len(inputs) == 0 {
		return nil, tool.NewToolError(def.Name, "no inputs could be mapped", tool.CodeMapping)
	}

	return inputs, nil
}

// matchResultShape finds the first prior tool result, in execution order,
// whose keys cover the fields an object-typed property requires. The
// property's required list is consulted first; when absent, every declared
// sub-property must be present.
func matchResultShape(propSchema map[string]any, state *core.AgentState) (map[string]any, bool) {
	wanted := util.RequiredFields(propSchema)
	if len(wanted) == 0 {
		for name := range util.SchemaProperties(propSchema) {
			wanted = append(wanted, name)
		}
	}

	if len(wanted) == 0 {
		return nil, false
	}

	for _, prior := range state.OrderedResults() {
		matches := true
		for _, field := range wanted {
			if _, ok := prior.Result[field]; !ok {
				matches = false
				break
			}
		}

		if matches {
			return prior.Result, true
		}
	}

	return nil, false
}
