package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planweave/planweave/model"
	"github.com/planweave/planweave/tool"
)

const validPlanJSON = `{
	"input_analysis": "The user wants to know if they need an umbrella",
	"available_tools": ["weather_retriever", "umbrella_decider"],
	"tool_capabilities": {"weather_retriever": "fetches weather"},
	"execution_plan": [
		{"tool": "weather_retriever", "reasoning": "need the forecast first"},
		{"tool": "umbrella_decider", "reasoning": "decide from the forecast"}
	],
	"requirements_coverage": {"weather": ["weather_retriever"]},
	"chain_of_thought": ["get weather", "decide"]
}`

func testTools() []tool.Definition {
	return []tool.Definition{
		{
			Name:        "weather_retriever",
			Description: "Retrieves weather data",
			Tags:        []string{"weather"},
			InputSchema: map[string]any{"type": "object"},
		},
		{
			Name:        "umbrella_decider",
			Description: "Decides about umbrellas",
			Tags:        []string{"decision"},
			InputSchema: map[string]any{"type": "object"},
		},
	}
}

func TestParsePlan_Valid(t *testing.T) {
	plan, err := ParsePlan(validPlanJSON)
	require.NoError(t, err)

	assert.Equal(t, "The user wants to know if they need an umbrella", plan.InputAnalysis)
	require.Len(t, plan.ExecutionPlan, 2)
	assert.Equal(t, "weather_retriever", plan.ExecutionPlan[0].Tool)
	assert.Equal(t, "decide from the forecast", plan.ExecutionPlan[1].Reasoning)
}

func TestParsePlan_MarkdownFences(t *testing.T) {
	plan, err := ParsePlan("Here is the plan:\n```json\n" + validPlanJSON + "\n```\nLet me know!")
	require.NoError(t, err)
	assert.Len(t, plan.ExecutionPlan, 2)
}

func TestParsePlan_MissingField(t *testing.T) {
	_, err := ParsePlan(`{
		"input_analysis": "a",
		"available_tools": [],
		"tool_capabilities": {},
		"execution_plan": [{"tool": "x", "reasoning": "r"}],
		"requirements_coverage": {}
	}`)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Reason, "chain_of_thought")
}

func TestParsePlan_Invalid(t *testing.T) {
	cases := map[string]string{
		"no JSON":           "I could not produce a plan, sorry.",
		"not an object":     `[1, 2, 3]`,
		"empty steps":       `{"input_analysis":"a","available_tools":[],"tool_capabilities":{},"execution_plan":[],"requirements_coverage":{},"chain_of_thought":[]}`,
		"step without tool": `{"input_analysis":"a","available_tools":[],"tool_capabilities":{},"execution_plan":[{"reasoning":"r"}],"requirements_coverage":{},"chain_of_thought":[]}`,
		"missing reasoning": `{"input_analysis":"a","available_tools":[],"tool_capabilities":{},"execution_plan":[{"tool":"x"}],"requirements_coverage":{},"chain_of_thought":[]}`,
		"wrong field type":  `{"input_analysis":"a","available_tools":"not-a-list","tool_capabilities":{},"execution_plan":[{"tool":"x","reasoning":"r"}],"requirements_coverage":{},"chain_of_thought":[]}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePlan(raw)
			assert.Error(t, err)
		})
	}
}

func TestCreatePlan_Success(t *testing.T) {
	m := model.NewMockModel("mock")
	m.EnqueueResponse(validPlanJSON)

	p := New(m)

	plan, err := p.CreatePlan(context.Background(), "Do I need an umbrella?", testTools())
	require.NoError(t, err)
	assert.Equal(t, []string{"weather_retriever", "umbrella_decider"}, plan.Tools())

	reqs := m.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "Do I need an umbrella?", reqs[0].Input)
	assert.Contains(t, reqs[0].Instructions, "weather_retriever")
	assert.Contains(t, reqs[0].Instructions, "execution_plan")
}

func TestCreatePlan_RepairRetry(t *testing.T) {
	m := model.NewMockModel("mock")
	m.EnqueueResponse("this is not JSON at all")
	m.EnqueueResponse(validPlanJSON)

	p := New(m)

	plan, err := p.CreatePlan(context.Background(), "Do I need an umbrella?", testTools())
	require.NoError(t, err)
	assert.Len(t, plan.ExecutionPlan, 2)

	reqs := m.Requests()
	require.Len(t, reqs, 2)
	assert.Contains(t, reqs[1].Input, "could not be parsed")
	assert.Contains(t, reqs[1].Input, "Do I need an umbrella?")
}

func TestCreatePlan_RepairExhausted(t *testing.T) {
	m := model.NewMockModel("mock")
	m.EnqueueResponse("still not JSON")
	m.EnqueueResponse("also not JSON")

	p := New(m)

	_, err := p.CreatePlan(context.Background(), "task", testTools())
	assert.Error(t, err)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Len(t, m.Requests(), 2)
}

func TestCreatePlan_NoRetryWhenDisabled(t *testing.T) {
	m := model.NewMockModel("mock")
	m.EnqueueResponse("not JSON")

	p := New(m, func(o *Options) { o.MaxRepairAttempts = 0 })

	_, err := p.CreatePlan(context.Background(), "task", testTools())
	assert.Error(t, err)
	assert.Len(t, m.Requests(), 1)
}

func TestCreatePlan_NoTools(t *testing.T) {
	p := New(model.NewMockModel("mock"))

	_, err := p.CreatePlan(context.Background(), "task", nil)
	assert.Error(t, err)
}
