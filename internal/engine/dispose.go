package engine

import (
	"go.uber.org/multierr"

	"github.com/kiln-di/kiln/internal/errs"
	"github.com/kiln-di/kiln/internal/reflectx"
)

// Dispose tears down the instances this engine itself produced, in
// reverse production order. Instances merely read from a parent are left
// alone. Failures do not abort later cleanups; they are aggregated into
// one reported error.
func (e *Engine) Dispose() error {
	if err := e.CheckDisposed(); err != nil {
		return err
	}

	e.mu.Lock()
	e.disposed = true
	produced := e.produced
	e.produced = nil
	e.mu.Unlock()

	var agg error
	for i := len(produced) - 1; i >= 0; i-- {
		d := produced[i].(Disposable)
		err := d.Dispose()

		name := reflectx.TypeName(d)
		for _, h := range e.onDispose {
			h(name, err)
		}
		if err != nil {
			agg = multierr.Append(agg, err)
			e.log.Debug("instance disposal failed", "instance", name, "error", err)
		}
	}

	if agg != nil {
		return errs.DisposeFailed(e.label, agg)
	}
	return nil
}
