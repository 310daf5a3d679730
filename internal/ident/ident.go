package ident

import "sync"

// Well-known identifier names under which every engine registers itself
// in its own catalog.
const (
	EngineName   = "kiln.Engine"
	ProviderName = "kiln.Provider"
)

// ID is an interned capability identifier. Two IDs interned with the same
// name through the same Registry are the same pointer; equality is identity.
type ID struct {
	name string
}

func (id *ID) Name() string {
	return id.name
}

func (id *ID) String() string {
	return id.name
}

// Registry interns capability identifiers by name. It is safe for
// concurrent use and lives for the lifetime of the engines built over it.
type Registry struct {
	mu  sync.RWMutex
	ids map[string]*ID

	engine   *ID
	provider *ID
}

func NewRegistry() *Registry {
	r := &Registry{
		ids: make(map[string]*ID),
	}
	r.engine = r.ID(EngineName)
	r.provider = r.ID(ProviderName)
	return r
}

// ID returns the interned identifier for name, creating it on first use.
func (r *Registry) ID(name string) *ID {
	r.mu.RLock()
	id, ok := r.ids[name]
	r.mu.RUnlock()
	if ok {
		return id
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.ids[name]; ok {
		return id
	}
	id = &ID{name: name}
	r.ids[name] = id
	return id
}

// Lookup returns the identifier for name without interning it.
func (r *Registry) Lookup(name string) (*ID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.ids[name]
	return id, ok
}

// Engine is the identifier every engine registers its own instance under.
func (r *Registry) Engine() *ID {
	return r.engine
}

// Provider is the identifier for the read-only resolver view of an engine.
func (r *Registry) Provider() *ID {
	return r.provider
}

func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.ids)
}
