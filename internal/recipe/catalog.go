package recipe

import (
	"sync"

	"github.com/kiln-di/kiln/internal/ident"
)

// Catalog is an append/replace multimap from capability identifier to an
// ordered recipe list. Order is significant: it fixes the result order of
// array-cardinality lookups, and each index addresses a recipe slot during
// instantiation.
type Catalog struct {
	mu      sync.RWMutex
	entries map[*ident.ID][]*Recipe
	order   []*ident.ID
}

func NewCatalog() *Catalog {
	return &Catalog{
		entries: make(map[*ident.ID][]*Recipe),
	}
}

// Append adds recipes to the end of the identifier's list.
func (c *Catalog) Append(id *ident.ID, recipes ...*Recipe) {
	if len(recipes) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[id]; !ok {
		c.order = append(c.order, id)
	}
	c.entries[id] = append(c.entries[id], recipes...)
}

// Replace discards any existing recipes for the identifier and installs
// the given list. An empty replacement removes the entry.
func (c *Catalog) Replace(id *ident.ID, recipes ...*Recipe) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, existed := c.entries[id]
	if len(recipes) == 0 {
		if existed {
			delete(c.entries, id)
			for i, o := range c.order {
				if o == id {
					c.order = append(c.order[:i], c.order[i+1:]...)
					break
				}
			}
		}
		return
	}

	if !existed {
		c.order = append(c.order, id)
	}
	c.entries[id] = append([]*Recipe(nil), recipes...)
}

func (c *Catalog) Has(id *ident.ID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.entries[id]
	return ok
}

// Recipes returns the ordered recipe list for the identifier.
func (c *Catalog) Recipes(id *ident.ID) ([]*Recipe, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rs, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	out := make([]*Recipe, len(rs))
	copy(out, rs)
	return out, true
}

// IDs returns the identifiers in registration order.
func (c *Catalog) IDs() []*ident.ID {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*ident.ID, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Catalog) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
