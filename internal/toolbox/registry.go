package toolbox

import (
	"context"
	"fmt"
)

// Handler executes a tool with validated arguments and returns its
// payload. Errors may be pre-classified (*Error) or raw upstream errors;
// the dispatcher classifies either way.
type Handler func(ctx context.Context, args Args) (any, error)

// Definition describes one tool: its name, argument schema and handler,
// plus the service/operation labels used for logging and metrics.
// Definitions are immutable after registration.
type Definition struct {
	Name        string
	Description string

	// Service and Operation label the upstream call for observability,
	// e.g. "gmail"/"list".
	Service   string
	Operation string

	// Mutating marks tools with side effects. Mutating tools are never
	// auto-retried, and their timeouts are reported as indeterminate.
	Mutating bool

	// RequiresAuth marks tools that need a valid OAuth access token
	// before dispatch. API-key-only tools (web search) leave it false.
	RequiresAuth bool

	Schema  Schema
	Handler Handler
}

// Registry maps tool names to definitions. The full set is fixed at
// startup; there is no dynamic registration after the server starts
// serving, so lookups are lock-free.
type Registry struct {
	defs  map[string]Definition
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register adds a definition. Duplicate names and incomplete definitions
// are rejected; both indicate a programming error at startup.
func (r *Registry) Register(def Definition) error {
	if def.Name == "" {
		return fmt.Errorf("tool definition has no name")
	}
	if def.Handler == nil {
		return fmt.Errorf("tool %q has no handler", def.Name)
	}
	if _, exists := r.defs[def.Name]; exists {
		return fmt.Errorf("tool %q is already registered", def.Name)
	}
	r.defs[def.Name] = def
	r.order = append(r.order, def.Name)
	return nil
}

// RegisterAll registers each definition, stopping at the first error.
func (r *Registry) RegisterAll(defs ...Definition) error {
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// Resolve looks up a tool by name.
func (r *Registry) Resolve(name string) (Definition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Definitions returns all registered tools in registration order.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.defs[name])
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.defs)
}
