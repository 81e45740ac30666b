package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/planweave/planweave/core"
)

// requiredPlanFields are the top-level fields a planning response must carry.
var requiredPlanFields = []string{
	"input_analysis",
	"available_tools",
	"tool_capabilities",
	"execution_plan",
	"requirements_coverage",
	"chain_of_thought",
}

// ParseError reports a planning response that does not match the required
// JSON shape.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed plan: %s", e.Reason)
}

// ParsePlan validates and decodes a raw model response into a core.Plan.
// Surrounding prose and markdown code fences are tolerated; everything else
// about the shape is strict: all required fields must be present, the
// execution plan must be a list, and every step must name a tool and carry a
// reasoning string.
func ParsePlan(raw string) (*core.Plan, error) {
	payload := extractJSON(raw)
	if payload == "" {
		return nil, &ParseError{Reason: "response contains no JSON object"}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	for _, f := range requiredPlanFields {
		if _, ok := fields[f]; !ok {
			return nil, &ParseError{Reason: fmt.Sprintf("missing required field %q", f)}
		}
	}

	var plan core.Plan
	if err := json.Unmarshal([]byte(payload), &plan); err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("field has wrong type: %v", err)}
	}

	if len(plan.ExecutionPlan) == 0 {
		return nil, &ParseError{Reason: "execution_plan is empty"}
	}

	for i, step := range plan.ExecutionPlan {
		if step.Tool == "" {
			return nil, &ParseError{Reason: fmt.Sprintf("execution_plan[%d] is missing a tool name", i)}
		}
		if step.Reasoning == "" {
			return nil, &ParseError{Reason: fmt.Sprintf("execution_plan[%d] is missing reasoning", i)}
		}
	}

	return &plan, nil
}

// extractJSON returns the outermost JSON object of a response, stripping
// markdown fences and surrounding prose.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+3:]
		s = strings.TrimPrefix(s, "json")
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}

	return s[start : end+1]
}
