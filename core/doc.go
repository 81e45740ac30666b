// Package core defines the shared data model for the planweave framework:
// plans produced by the reasoning model, per-task execution records, the
// mutable scratch state threaded through a run, and the hook interfaces that
// expose the execution lifecycle to observers.
//
// Types in this package are plain data carriers. Orchestration logic lives in
// the agent package, plan construction in the planner package and tool
// bookkeeping in the tool package.
package core
