package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlan_Validate(t *testing.T) {
	registered := map[string]bool{"weather_retriever": true, "umbrella_decider": true}
	has := func(name string) bool { return registered[name] }

	plan := &Plan{
		ExecutionPlan: []PlanStep{
			{Tool: "weather_retriever", Reasoning: "r1"},
			{Tool: "umbrella_decider", Reasoning: "r2"},
		},
	}
	assert.NoError(t, plan.Validate(has))

	plan.ExecutionPlan = append(plan.ExecutionPlan, PlanStep{Tool: "nonexistent", Reasoning: "r3"})

	err := plan.Validate(has)
	assert.Error(t, err)

	var unknown *UnknownToolError
	assert.ErrorAs(t, err, &unknown)
	assert.Equal(t, "nonexistent", unknown.Tool)
}

func TestPlan_ValidateEmpty(t *testing.T) {
	plan := &Plan{}
	assert.Error(t, plan.Validate(func(string) bool { return true }))
}

func TestPlan_Tools(t *testing.T) {
	plan := &Plan{
		ExecutionPlan: []PlanStep{
			{Tool: "a", Reasoning: "r"},
			{Tool: "b", Reasoning: "r"},
		},
	}

	assert.Equal(t, []string{"a", "b"}, plan.Tools())
}
