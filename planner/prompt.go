package planner

import (
	"encoding/json"

	"github.com/planweave/planweave/internal/util"
	"github.com/planweave/planweave/tool"
)

// planningPromptTemplate is the system instruction sent with every planning
// request. It enumerates the registered tools and pins down the exact JSON
// shape the response must carry.
const planningPromptTemplate = `You are an intelligent task planning system. Analyze the task and produce an ordered execution plan over the available tools. Consider the following aspects:
1. Task requirements and complexity
2. Tool capabilities and limitations
3. Input/output compatibility between consecutive tools

Available Tools:
{{range .Tools}}Tool: {{.Name}}
Description: {{.Description}}
Tags: {{join ", " .Tags}}
Input Schema: {{.InputSchema}}
Output Schema: {{.OutputSchema}}

{{end}}Respond with a JSON object with exactly these fields:
{
  "input_analysis": "analysis of what the task requires",
  "available_tools": ["names of the tools you considered"],
  "tool_capabilities": {"tool_name": "what it contributes"},
  "execution_plan": [
    {"tool": "tool_name", "reasoning": "why this tool at this position", "input_mapping": {"input_name": "variable or literal"}}
  ],
  "requirements_coverage": {"requirement": "how the plan covers it"},
  "chain_of_thought": ["step-by-step reasoning trace"]
}

The "input_mapping" field is optional per step; omit it when inputs should be resolved from prior tool results. Every "tool" value must be one of the available tool names. Ensure your response is valid JSON and matches the schema exactly.`

type promptTool struct {
	Name         string
	Description  string
	Tags         []string
	InputSchema  string
	OutputSchema string
}

// buildPlanningPrompt renders the system instruction for the given tools.
func buildPlanningPrompt(tools []tool.Definition) (string, error) {
	rendered := make([]promptTool, 0, len(tools))

	for _, t := range tools {
		rendered = append(rendered, promptTool{
			Name:         t.Name,
			Description:  t.Description,
			Tags:         t.Tags,
			InputSchema:  compactJSON(t.InputSchema),
			OutputSchema: compactJSON(t.OutputSchema),
		})
	}

	return util.RenderTemplate(planningPromptTemplate, map[string]any{"Tools": rendered})
}

func compactJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}

	return string(data)
}
