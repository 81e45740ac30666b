// Package history provides storage for completed task execution records.
// Agents save a snapshot of every TaskExecution when a run finishes so
// callers can inspect step logs and tool calls after the fact.
package history
