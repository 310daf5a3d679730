package compose

import (
	"github.com/kiln-di/kiln/internal/ident"
	"github.com/kiln-di/kiln/internal/recipe"
)

// Scope is the engine surface the composition graph works against. Every
// method addresses exactly one engine; the graph walks outward through
// ParentScope itself. Cache writes go through the enclosing resolution
// transaction, which the implementation enlists on first mutation.
type Scope interface {
	// Label identifies the scope in diagnostics and logs.
	Label() string

	// ParentScope returns the parent engine's view, or nil at the root.
	ParentScope() Scope

	// OwnsRecipes reports whether this scope's own catalog has an entry
	// for the identifier, and returns its ordered recipe list.
	OwnsRecipes(id *ident.ID) ([]*recipe.Recipe, bool)

	// CachedComplete returns the cached values for the identifier when
	// the entry is complete. An entry still mid-instantiation yields a
	// re-entrant read error.
	CachedComplete(id *ident.ID) ([]any, bool, error)

	// BeginEntry creates a pending cache entry with one slot per recipe.
	BeginEntry(id *ident.ID, slots int)

	// StoreSlot records a produced value for one recipe slot, clearing
	// its pending mark.
	StoreSlot(id *ident.ID, slot int, v any)

	// AbandonEntry removes a pending entry whose instantiation was
	// deferred out of this resolution.
	AbandonEntry(id *ident.ID)

	// DeferredFor returns the forwarding placeholder that stands in for
	// the identifier when its construction is deferred.
	DeferredFor(id *ident.ID) any
}
