package kiln

import (
	"github.com/kiln-di/kiln/internal/engine"
	"github.com/kiln-di/kiln/internal/recipe"
)

// Provider is the read-only resolver view of an engine. Every catalog
// registers its engine under ProviderCapability with this surface.
type Provider interface {
	GetOne(id *ID) (any, error)
	GetOptional(id *ID) (any, bool, error)
	GetAll(id *ID) ([]any, error)
	Has(id *ID) bool
}

// Engine resolves capabilities against a catalog, constructing and
// caching transitive dependencies. Engines form a scope hierarchy: a
// child created with CreateScope reads through to its ancestors while
// owning its own catalog and cache.
type Engine struct {
	internal *engine.Engine
	registry *Registry
}

// New creates a root engine over the catalog. The catalog implicitly
// registers the engine itself under EngineCapability and
// ProviderCapability.
func New(registry *Registry, catalog *Catalog, opts ...Option) *Engine {
	cfg := newEngineConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	e := &Engine{registry: registry}
	e.internal = engine.New(&engine.Config{
		Registry:  registry,
		Catalog:   catalog,
		Logger:    cfg.logger,
		OnResolve: cfg.onResolve,
		OnDispose: cfg.onDispose,
	})
	e.registerSelf(catalog)
	return e
}

func (e *Engine) registerSelf(catalog *Catalog) {
	catalog.Replace(e.registry.Engine(), ValueRecipe(e))
	catalog.Replace(e.registry.Provider(), ValueRecipe(Provider(e)))
	e.internal.MarkSelf(e)
}

// Registry returns the identifier registry the engine was built over.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// GetOne resolves the capability and requires exactly one match.
func (e *Engine) GetOne(id *ID) (any, error) {
	vals, err := e.internal.Resolve(id)
	if err != nil {
		return nil, err
	}
	if err := recipe.ExactlyOne.Check(id.Name(), "", len(vals)); err != nil {
		return nil, err
	}
	return vals[0], nil
}

// GetOptional resolves the capability and tolerates at most one match,
// reporting absence through the second result. A capability registered
// nowhere in the engine chain is still an unknown-capability error, not
// absence; absence means a registered recipe list resolved to nothing.
func (e *Engine) GetOptional(id *ID) (any, bool, error) {
	vals, err := e.internal.Resolve(id)
	if err != nil {
		return nil, false, err
	}
	if err := recipe.ZeroOrOne.Check(id.Name(), "", len(vals)); err != nil {
		return nil, false, err
	}
	if len(vals) == 0 {
		return nil, false, nil
	}
	return vals[0], true, nil
}

// GetAll resolves every registered recipe for the capability, in
// registration order. A capability registered nowhere in the engine
// chain yields an empty slice, not an error.
func (e *Engine) GetAll(id *ID) ([]any, error) {
	if err := e.internal.CheckDisposed(); err != nil {
		return nil, err
	}
	if !e.internal.Has(id) {
		return []any{}, nil
	}
	return e.internal.Resolve(id)
}

// Has reports whether any engine in the chain has a recipe for the
// capability. A disposed engine has nothing.
func (e *Engine) Has(id *ID) bool {
	if e.internal.CheckDisposed() != nil {
		return false
	}
	return e.internal.Has(id)
}

// NewInstance constructs an ad-hoc instance from an unregistered recipe:
// extra arguments are appended to the recipe's bound arguments, declared
// dependencies are resolved through the engine as usual, and the result
// is not cached.
func (e *Engine) NewInstance(r *Recipe, extra ...any) (any, error) {
	return e.internal.ResolveAdHoc(r.WithExtraBound(extra...))
}

// CreateScope creates a child engine over its own catalog. The child
// reads through to this engine for capabilities it does not own.
func (e *Engine) CreateScope(catalog *Catalog) (*Engine, error) {
	if err := e.internal.CheckDisposed(); err != nil {
		return nil, err
	}

	child := &Engine{registry: e.registry}
	child.internal = engine.NewChild(e.internal, catalog)
	child.registerSelf(catalog)
	return child, nil
}

// MustCreateScope is CreateScope panicking on error; for wiring-time use.
func MustCreateScope(e *Engine, catalog *Catalog) *Engine {
	child, err := e.CreateScope(catalog)
	if err != nil {
		panic(err)
	}
	return child
}

// Dispose tears down every Disposable instance this engine produced, in
// reverse production order, and marks the engine and its descendants
// unusable. Instances owned by ancestors or produced by children are
// left alone.
func (e *Engine) Dispose() error {
	return e.internal.Dispose()
}

// Validate statically checks the catalog chain visible from this engine
// for missing required dependencies and unbreakable constructor cycles.
func (e *Engine) Validate() error {
	return e.internal.Validate()
}
