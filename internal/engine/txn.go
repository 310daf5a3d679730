package engine

import "github.com/kiln-di/kiln/internal/errs"

// txn coordinates atomic commit/rollback of instance-cache mutations
// across every engine touched while satisfying one top-level request.
// Each engine is enlisted with a deep snapshot the first time its cache
// is about to change.
type txn struct {
	snapshots map[*Engine]*snapshot
	finalized bool
}

func newTxn() *txn {
	return &txn{
		snapshots: make(map[*Engine]*snapshot),
	}
}

func (t *txn) enlist(e *Engine) {
	if _, ok := t.snapshots[e]; ok {
		return
	}
	t.snapshots[e] = e.takeSnapshot()
}

// Commit discards the snapshots, leaving the mutated caches in place.
func (t *txn) Commit() error {
	if t.finalized {
		return errs.TransactionFinalized()
	}
	t.finalized = true
	t.snapshots = nil
	return nil
}

// Rollback restores every enlisted engine's cache verbatim, so a failed
// resolution leaves no partially-constructed capability observable.
func (t *txn) Rollback() error {
	if t.finalized {
		return errs.TransactionFinalized()
	}
	t.finalized = true

	for e, s := range t.snapshots {
		e.restore(s)
	}
	t.snapshots = nil
	return nil
}
