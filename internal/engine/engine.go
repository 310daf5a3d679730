package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kiln-di/kiln/internal/errs"
	"github.com/kiln-di/kiln/internal/ident"
	"github.com/kiln-di/kiln/internal/recipe"
)

// ResolveHook observes one top-level resolution.
type ResolveHook func(capability string, duration time.Duration, err error)

// DisposeHook observes the teardown of one produced instance.
type DisposeHook func(instance string, err error)

// Disposable is implemented by instances that need teardown when their
// owning engine is disposed.
type Disposable interface {
	Dispose() error
}

type Config struct {
	Registry  *ident.Registry
	Catalog   *recipe.Catalog
	Parent    *Engine
	Logger    *slog.Logger
	OnResolve []ResolveHook
	OnDispose []DisposeHook
}

// Engine owns a catalog, an optional parent engine and a cache of built
// instances per identifier. Resolution runs synchronously to completion;
// the mutex guards the cache and disposal state between calls, not a
// single resolution.
type Engine struct {
	mu sync.Mutex

	label    string
	registry *ident.Registry
	catalog  *recipe.Catalog
	parent   *Engine
	log      *slog.Logger

	cache    map[*ident.ID]*entry
	produced []any
	self     []any
	disposed bool

	onResolve []ResolveHook
	onDispose []DisposeHook
}

func New(cfg *Config) *Engine {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Engine{
		label:     "scope-" + uuid.NewString()[:8],
		registry:  cfg.Registry,
		catalog:   cfg.Catalog,
		parent:    cfg.Parent,
		log:       log,
		cache:     make(map[*ident.ID]*entry),
		onResolve: cfg.OnResolve,
		onDispose: cfg.OnDispose,
	}
}

// NewChild creates a scope under parent, inheriting its logger and
// observers.
func NewChild(parent *Engine, catalog *recipe.Catalog) *Engine {
	return New(&Config{
		Registry:  parent.registry,
		Catalog:   catalog,
		Parent:    parent,
		Logger:    parent.log,
		OnResolve: parent.onResolve,
		OnDispose: parent.onDispose,
	})
}

func (e *Engine) Label() string             { return e.label }
func (e *Engine) Registry() *ident.Registry { return e.registry }
func (e *Engine) Catalog() *recipe.Catalog  { return e.catalog }
func (e *Engine) Parent() *Engine           { return e.parent }
func (e *Engine) Logger() *slog.Logger      { return e.log }

// MarkSelf excludes a value from disposal tracking; used for the engine's
// own self-registrations to avoid self-disposal loops.
func (e *Engine) MarkSelf(v any) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.self = append(e.self, v)
}

// CheckDisposed errors when this engine or any ancestor is disposed.
func (e *Engine) CheckDisposed() error {
	for s := e; s != nil; s = s.parent {
		s.mu.Lock()
		d := s.disposed
		s.mu.Unlock()
		if d {
			return errs.Disposed(s.label)
		}
	}
	return nil
}

// OwnerOf returns the nearest engine whose catalog declares the
// identifier; nil when no engine in the chain does. Ownership is looked
// up dynamically on every resolution, never cached.
func (e *Engine) OwnerOf(id *ident.ID) *Engine {
	for s := e; s != nil; s = s.parent {
		if s.catalog.Has(id) {
			return s
		}
	}
	return nil
}

// Has reports whether any engine in the chain declares the identifier.
func (e *Engine) Has(id *ident.ID) bool {
	return e.OwnerOf(id) != nil
}
