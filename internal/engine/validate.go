package engine

import (
	"fmt"
	"strings"

	"github.com/kiln-di/kiln/internal/errs"
	"github.com/kiln-di/kiln/internal/graph"
	"github.com/kiln-di/kiln/internal/ident"
	"github.com/kiln-di/kiln/internal/recipe"
)

// Validate statically checks every catalog entry visible from this
// engine: required dependencies must be registered somewhere in the
// chain, and parameter dependencies must not form a cycle that no
// deferrable recipe can break.
func (e *Engine) Validate() error {
	if err := e.CheckDisposed(); err != nil {
		return err
	}

	seen := make(map[*ident.ID]bool)
	var ids []*ident.ID
	for s := e; s != nil; s = s.parent {
		for _, id := range s.catalog.IDs() {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	allDeferrable := func(id *ident.ID) bool {
		owner := e.OwnerOf(id)
		if owner == nil {
			return false
		}
		rs, _ := owner.catalog.Recipes(id)
		if len(rs) == 0 {
			return false
		}
		for _, r := range rs {
			if r.IsValue() || !r.Deferrable() {
				return false
			}
		}
		return true
	}

	pg := graph.New()
	var missing []string

	for _, id := range ids {
		owner := e.OwnerOf(id)
		rs, _ := owner.catalog.Recipes(id)

		var deps []string
		for _, r := range rs {
			for _, d := range r.Deps() {
				if !seen[d.ID()] {
					if d.Cardinality() == recipe.ExactlyOne {
						missing = append(missing, fmt.Sprintf("%s (required by %s)", d.ID().Name(), r.Name()))
					}
					continue
				}
				if d.Kind() == recipe.DepParam && !allDeferrable(d.ID()) {
					deps = append(deps, d.ID().Name())
				}
			}
		}
		pg.AddNode(id.Name(), deps)
	}

	if len(missing) > 0 {
		return errs.New(
			errs.CodeValidationFailed,
			fmt.Sprintf("missing dependencies: %s", strings.Join(missing, ", ")),
			nil,
		)
	}

	if pg.HasCycle() {
		for _, scc := range pg.DetectCycles() {
			if chain := pg.FindCyclePath(scc[0]); chain != nil {
				return errs.Cyclic(chain)
			}
		}
		return errs.Cyclic(nil)
	}
	return nil
}
