package integrations

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultTool is the adapter used by legacy single-target entry points
// and when no --tool flag or configured default is given.
const DefaultTool = "claude-code"

// Info describes a registered adapter for discovery surfaces.
type Info struct {
	Name         string
	DisplayName  string
	Capabilities Capabilities
}

// Registry is a fixed catalog mapping adapter names to singleton
// instances. It is read-only after construction; there is no runtime
// registration.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry builds a registry from the given adapters. Adapter names
// must be unique.
func NewRegistry(adapters ...Adapter) (*Registry, error) {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		if _, dup := r.adapters[a.Name()]; dup {
			return nil, fmt.Errorf("duplicate adapter name %q", a.Name())
		}
		r.adapters[a.Name()] = a
	}
	return r, nil
}

// NewDefault builds the registry of all supported hosts.
func NewDefault() *Registry {
	r, err := NewRegistry(
		NewClaudeCode(),
		NewCursor(),
		NewCodex(),
		NewOpenCode(),
		NewCopilot(),
		NewWindsurf(),
		NewContinue(),
		NewRoo(),
		NewKiro(),
	)
	if err != nil {
		// Names are compile-time constants; a duplicate is a programming error.
		panic(err)
	}
	return r
}

// Get returns the adapter registered under name. Unknown names produce an
// error that lists every valid name.
func (r *Registry) Get(name string) (Adapter, error) {
	a, ok := r.adapters[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool %q (valid tools: %s)", name, strings.Join(r.Names(), ", "))
	}
	return a, nil
}

// GetDefault returns the canonical default adapter.
func (r *Registry) GetDefault() Adapter {
	return r.adapters[DefaultTool]
}

// Has reports whether an adapter is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.adapters[name]
	return ok
}

// Names returns all registered adapter names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns discovery info for every registered adapter, sorted by name.
func (r *Registry) List() []Info {
	infos := make([]Info, 0, len(r.adapters))
	for _, name := range r.Names() {
		a := r.adapters[name]
		infos = append(infos, Info{
			Name:         a.Name(),
			DisplayName:  a.DisplayName(),
			Capabilities: a.Capabilities(),
		})
	}
	return infos
}
