package kiln

import (
	"github.com/kiln-di/kiln/internal/engine"
)

// Deferred is a placeholder handed to a constructor in place of a
// dependency that could not be built yet because the two sit on a
// constructor cycle. The real instance is built on the first Instance
// call, after both constructors have returned.
//
// A Deferred must not be unwrapped inside the constructor that receives
// it; doing so re-enters the resolution that produced it and fails with
// a reentrancy error.
type Deferred = engine.Deferred

// Disposable is implemented by instances that need teardown when the
// engine that produced them is disposed.
type Disposable = engine.Disposable
