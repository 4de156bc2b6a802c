package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rescuedex/apicheck/schema"
)

// Registry holds named response schemas. It is built explicitly at process
// start and is safe for concurrent readers, so parallel test workers can
// share one instance.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]schema.Schema
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		schemas: make(map[string]schema.Schema),
	}
}

// Register stores a schema under the given name, replacing any previous
// registration. The schema is defensively copied so later mutation of the
// caller's map does not leak into the registry.
func (r *Registry) Register(name string, s schema.Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[name] = clone(s)
}

// Get returns the schema registered under name.
func (r *Registry) Get(name string) (schema.Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[name]
	return s, ok
}

// MustGet returns the schema registered under name and panics when it is
// absent. Intended for static test setup where a missing schema is a
// programming error.
func (r *Registry) MustGet(name string) schema.Schema {
	s, ok := r.Get(name)
	if !ok {
		panic(fmt.Sprintf("registry: schema %q is not registered", name))
	}
	return s
}

// Names returns the registered schema names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered schemas.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.schemas)
}

// Extend merges two schemas into a new one. Fields in overrides replace
// fields of the same name in base; neither input is modified. This is the
// explicit form of deriving one payload shape from another.
func Extend(base, overrides schema.Schema) schema.Schema {
	merged := clone(base)
	for name, rule := range overrides {
		merged[name] = rule
	}
	return merged
}

// Pick builds a reduced schema containing only the named fields of base.
// Fields absent from base are ignored. This is how the "essential" tier of a
// schema is derived from the full one.
func Pick(base schema.Schema, fields ...string) schema.Schema {
	picked := make(schema.Schema, len(fields))
	for _, name := range fields {
		if rule, ok := base[name]; ok {
			picked[name] = rule
		}
	}
	return picked
}

func clone(s schema.Schema) schema.Schema {
	c := make(schema.Schema, len(s))
	for name, rule := range s {
		c[name] = rule
	}
	return c
}
