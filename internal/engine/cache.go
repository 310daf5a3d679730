package engine

import (
	"github.com/kiln-di/kiln/internal/errs"
	"github.com/kiln-di/kiln/internal/ident"
)

// entry is one instance-cache slot set: the recipe indices still pending
// and the parallel array of produced values. An entry is complete exactly
// when its pending set is empty.
type entry struct {
	pending map[int]struct{}
	values  []any
}

func (en *entry) complete() bool {
	return len(en.pending) == 0
}

func (en *entry) clone() *entry {
	c := &entry{
		pending: make(map[int]struct{}, len(en.pending)),
		values:  make([]any, len(en.values)),
	}
	for i := range en.pending {
		c.pending[i] = struct{}{}
	}
	copy(c.values, en.values)
	return c
}

// completeCached returns the cached values for an identifier when its
// entry is complete. Reading an entry whose instantiation is in progress
// higher up the call stack is a re-entrant read error.
func (e *Engine) completeCached(id *ident.ID) ([]any, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	en, ok := e.cache[id]
	if !ok {
		return nil, false, nil
	}
	if !en.complete() {
		return nil, false, errs.Reentrant(id.Name())
	}

	out := make([]any, len(en.values))
	copy(out, en.values)
	return out, true, nil
}

func (e *Engine) beginEntry(id *ident.ID, slots int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	en := &entry{
		pending: make(map[int]struct{}, slots),
		values:  make([]any, slots),
	}
	for i := 0; i < slots; i++ {
		en.pending[i] = struct{}{}
	}
	e.cache[id] = en
}

func (e *Engine) storeSlot(id *ident.ID, slot int, v any) {
	e.mu.Lock()
	defer e.mu.Unlock()

	en, ok := e.cache[id]
	if !ok {
		return
	}
	en.values[slot] = v
	delete(en.pending, slot)

	if d, ok := v.(Disposable); ok && !e.isSelf(v) {
		e.produced = append(e.produced, d)
	}
}

func (e *Engine) abandonEntry(id *ident.ID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.cache, id)
}

func (e *Engine) isSelf(v any) bool {
	for _, s := range e.self {
		if s == v {
			return true
		}
	}
	return false
}

// EntryInfo describes one cache entry for inspection.
type EntryInfo struct {
	Capability string
	Complete   bool
	Values     []any
}

// Entries snapshots the cache for debug and health surfaces.
func (e *Engine) Entries() []EntryInfo {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]EntryInfo, 0, len(e.cache))
	for id, en := range e.cache {
		vals := make([]any, len(en.values))
		copy(vals, en.values)
		out = append(out, EntryInfo{
			Capability: id.Name(),
			Complete:   en.complete(),
			Values:     vals,
		})
	}
	return out
}

type snapshot struct {
	cache    map[*ident.ID]*entry
	produced []any
}

// takeSnapshot deep-copies the mutable cache state for the resolution
// transaction.
func (e *Engine) takeSnapshot() *snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := &snapshot{
		cache:    make(map[*ident.ID]*entry, len(e.cache)),
		produced: make([]any, len(e.produced)),
	}
	for id, en := range e.cache {
		s.cache[id] = en.clone()
	}
	copy(s.produced, e.produced)
	return s
}

func (e *Engine) restore(s *snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cache = s.cache
	e.produced = s.produced
}
