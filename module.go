package kiln

// Module groups related recipe registrations under a name so an
// application can assemble its catalog from reusable parts. A module
// records registrations without touching any catalog until Apply.
type Module struct {
	name       string
	entries    []moduleEntry
	submodules []*Module
}

type moduleEntry struct {
	id      *ID
	r       *Recipe
	replace bool
}

func NewModule(name string) *Module {
	return &Module{name: name}
}

func (m *Module) Name() string {
	return m.name
}

// Append registers a recipe for the capability, keeping any earlier
// registrations for the same capability.
func (m *Module) Append(id *ID, r *Recipe) *Module {
	m.entries = append(m.entries, moduleEntry{id: id, r: r})
	return m
}

// AppendCtor is Append over a constructor function; it panics on a
// malformed constructor, for wiring-time use.
func (m *Module) AppendCtor(id *ID, ctor any, opts ...RecipeOption) *Module {
	return m.Append(id, MustCtorRecipe(ctor, opts...))
}

// AppendValue is Append over a pre-built value.
func (m *Module) AppendValue(id *ID, value any) *Module {
	return m.Append(id, ValueRecipe(value))
}

// Replace drops every earlier registration for the capability, within
// this module and in the catalog the module is applied to, and installs
// the recipe as the sole one.
func (m *Module) Replace(id *ID, r *Recipe) *Module {
	m.entries = append(m.entries, moduleEntry{id: id, r: r, replace: true})
	return m
}

// Include nests a submodule; its registrations apply before this
// module's own, so the including module can override them.
func (m *Module) Include(sub *Module) *Module {
	m.submodules = append(m.submodules, sub)
	return m
}

func (m *Module) apply(catalog *Catalog) {
	for _, sub := range m.submodules {
		sub.apply(catalog)
	}
	for _, e := range m.entries {
		if e.replace {
			catalog.Replace(e.id, e.r)
			continue
		}
		catalog.Append(e.id, e.r)
	}
}

// Apply installs every module's registrations into the catalog, in
// argument order.
func Apply(catalog *Catalog, modules ...*Module) {
	for _, m := range modules {
		m.apply(catalog)
	}
}
