package tool

import (
	"sync"

	"github.com/planweave/planweave/core"
)

// Registry maps tool names to their definition and executable
// implementation. It is populated during agent construction and read-only
// during task execution; all methods are safe for concurrent use so a
// registry may be shared across agents.
type Registry struct {
	mu    sync.RWMutex
	defs  map[string]Definition
	execs map[string]Executor
	order []string
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		defs:  make(map[string]Definition),
		execs: make(map[string]Executor),
	}
}

// Register stores a tool definition and its implementation. Registering a
// name that already exists is an error; names are unique.
func (r *Registry) Register(def Definition, impl Executor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if def.Name == "" {
		return NewToolError("", "tool name must not be empty", CodeValidation)
	}

	if _, exists := r.defs[def.Name]; exists {
		return NewToolError(def.Name, "tool is already registered", CodeValidation)
	}

	if impl == nil {
		return NewToolError(def.Name, "tool implementation must not be nil", CodeValidation)
	}

	r.defs[def.Name] = def
	r.execs[def.Name] = impl
	r.order = append(r.order, def.Name)

	return nil
}

// GetTool returns the definition registered under name.
func (r *Registry) GetTool(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[name]

	return def, ok
}

// GetExecutor returns the implementation registered under name.
func (r *Registry) GetExecutor(name string) (Executor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	impl, ok := r.execs[name]

	return impl, ok
}

// Has reports whether a tool with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.defs[name]

	return ok
}

// ListTools returns all definitions in registration order.
func (r *Registry) ListTools() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.defs[name])
	}

	return tools
}

// Names returns all registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// ToolsByTags returns the definitions whose tag set is a superset of the
// requested tags, in registration order.
func (r *Registry) ToolsByTags(tags []string) []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tools []Definition

	for _, name := range r.order {
		if def := r.defs[name]; def.HasTags(tags) {
			tools = append(tools, def)
		}
	}

	return tools
}

// AttachHooks sets the lifecycle hooks of an already-registered tool. Hooks
// are the only mutation allowed after registration; the agent typically
// attaches them while wiring its observability layer.
func (r *Registry) AttachHooks(name string, hooks core.ToolHooks) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	def, ok := r.defs[name]
	if !ok {
		return NewToolError(name, "tool is not registered", CodeUnknown)
	}

	def.Hooks = hooks
	r.defs[name] = def

	return nil
}
