package engine

import (
	"sync"

	"github.com/kiln-di/kiln/internal/ident"
	"github.com/kiln-di/kiln/internal/recipe"
)

// Deferred is the forwarding placeholder that stands in for a deferrable
// recipe whose construction broke a cycle. It records the capability and
// engine but performs no construction; the first Instance call resolves
// through the normal engine path exactly once, and every later call
// forwards to the memoized result.
type Deferred struct {
	eng *Engine
	id  *ident.ID

	once sync.Once
	val  any
	err  error
}

// Capability names the capability the placeholder stands for.
func (d *Deferred) Capability() string {
	return d.id.Name()
}

// Instance returns the real instance, constructing it on first access.
func (d *Deferred) Instance() (any, error) {
	d.once.Do(func() {
		vals, err := d.eng.Resolve(d.id)
		if err != nil {
			d.err = err
			return
		}
		if err := recipe.ExactlyOne.Check(d.id.Name(), "", len(vals)); err != nil {
			d.err = err
			return
		}
		d.val = vals[0]
	})
	return d.val, d.err
}

// MustInstance is Instance panicking on error.
func (d *Deferred) MustInstance() any {
	v, err := d.Instance()
	if err != nil {
		panic(err)
	}
	return v
}
