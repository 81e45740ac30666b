// Package agent implements the orchestration core of planweave: an Agent
// turns a natural-language task into a structured plan via the planner,
// executes the plan's tool steps sequentially against shared per-task state,
// resolves each step's inputs from explicit mappings or accumulated results,
// fires lifecycle hooks around every call, and formats the collected results
// into a final answer.
package agent
