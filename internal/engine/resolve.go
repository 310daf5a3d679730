package engine

import (
	"time"

	"github.com/kiln-di/kiln/internal/compose"
	"github.com/kiln-di/kiln/internal/errs"
	"github.com/kiln-di/kiln/internal/ident"
	"github.com/kiln-di/kiln/internal/recipe"
)

// Resolve satisfies one capability request: cache hit, or a full
// composition run under a fresh transaction. It returns the owning
// engine's values for the identifier in recipe order.
func (e *Engine) Resolve(id *ident.ID) ([]any, error) {
	start := time.Now()
	vals, err := e.resolve(id)

	for _, h := range e.onResolve {
		h(id.Name(), time.Since(start), err)
	}
	return vals, err
}

func (e *Engine) resolve(id *ident.ID) ([]any, error) {
	if err := e.CheckDisposed(); err != nil {
		return nil, err
	}

	owner := e.OwnerOf(id)
	if owner == nil {
		return nil, errs.UnknownCapability(id.Name())
	}

	if vals, ok, err := owner.completeCached(id); err != nil {
		return nil, err
	} else if ok {
		return vals, nil
	}

	res := newResolution()
	g := compose.New(e.log)

	vals, err := g.Resolve(id, res.view(e))
	if err != nil {
		_ = res.t.Rollback()
		e.log.Debug("resolution rolled back", "capability", id.Name(), "error", err)
		return nil, err
	}
	if err := res.t.Commit(); err != nil {
		return nil, err
	}
	return vals, nil
}

// ResolveAdHoc composes an unregistered recipe: declared dependencies are
// resolved (and cached) normally, the produced value itself is not
// recorded anywhere.
func (e *Engine) ResolveAdHoc(r *recipe.Recipe) (any, error) {
	if err := e.CheckDisposed(); err != nil {
		return nil, err
	}

	res := newResolution()
	g := compose.New(e.log)

	vals, err := g.ResolveRecipes(r.Name(), []*recipe.Recipe{r}, res.view(e))
	if err != nil {
		_ = res.t.Rollback()
		return nil, err
	}
	if err := res.t.Commit(); err != nil {
		return nil, err
	}
	return vals[0], nil
}

// resolution binds one transaction to per-engine scope views for the
// composition graph.
type resolution struct {
	t     *txn
	views map[*Engine]*scopeView
}

func newResolution() *resolution {
	return &resolution{
		t:     newTxn(),
		views: make(map[*Engine]*scopeView),
	}
}

func (r *resolution) view(e *Engine) compose.Scope {
	if v, ok := r.views[e]; ok {
		return v
	}
	v := &scopeView{e: e, r: r}
	r.views[e] = v
	return v
}

type scopeView struct {
	e *Engine
	r *resolution
}

func (v *scopeView) Label() string {
	return v.e.label
}

func (v *scopeView) ParentScope() compose.Scope {
	if v.e.parent == nil {
		return nil
	}
	return v.r.view(v.e.parent)
}

func (v *scopeView) OwnsRecipes(id *ident.ID) ([]*recipe.Recipe, bool) {
	return v.e.catalog.Recipes(id)
}

func (v *scopeView) CachedComplete(id *ident.ID) ([]any, bool, error) {
	return v.e.completeCached(id)
}

func (v *scopeView) BeginEntry(id *ident.ID, slots int) {
	v.r.t.enlist(v.e)
	v.e.beginEntry(id, slots)
}

func (v *scopeView) StoreSlot(id *ident.ID, slot int, val any) {
	v.r.t.enlist(v.e)
	v.e.storeSlot(id, slot, val)
}

func (v *scopeView) AbandonEntry(id *ident.ID) {
	v.r.t.enlist(v.e)
	v.e.abandonEntry(id)
}

func (v *scopeView) DeferredFor(id *ident.ID) any {
	return &Deferred{eng: v.e, id: id}
}
