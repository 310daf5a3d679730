// Package kilntest provides test helpers around a kiln engine: a
// cleanup-managed engine, fatal-on-error resolution and catalog
// overrides for swapping real recipes with test doubles.
package kilntest

import (
	"github.com/kiln-di/kiln"
)

type TB interface {
	Helper()
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	Cleanup(f func())
}

// TestEngine wraps an engine and its catalog, disposing the engine when
// the test finishes.
type TestEngine struct {
	*kiln.Engine
	catalog *kiln.Catalog
	tb      TB
}

func New(tb TB, registry *kiln.Registry, catalog *kiln.Catalog, opts ...kiln.Option) *TestEngine {
	tb.Helper()

	e := kiln.New(registry, catalog, opts...)
	te := &TestEngine{
		Engine:  e,
		catalog: catalog,
		tb:      tb,
	}

	tb.Cleanup(func() {
		if err := e.Dispose(); err != nil && !kiln.IsEngineDisposed(err) {
			tb.Fatalf("failed to dispose engine: %v", err)
		}
	})

	return te
}

// Catalog returns the catalog the engine was built over, for further
// registrations mid-test.
func (te *TestEngine) Catalog() *kiln.Catalog {
	return te.catalog
}

func (te *TestEngine) RequireValidate() {
	te.tb.Helper()

	if err := te.Validate(); err != nil {
		te.tb.Fatalf("engine validation failed: %v", err)
	}
}

// Replace swaps every registered recipe for the capability with a
// pre-built value, typically a test double.
func Replace(te *TestEngine, id *kiln.ID, value any) {
	te.tb.Helper()
	te.catalog.Replace(id, kiln.ValueRecipe(value))
}

// ReplaceRecipe swaps every registered recipe for the capability with
// the given recipe.
func ReplaceRecipe(te *TestEngine, id *kiln.ID, r *kiln.Recipe) {
	te.tb.Helper()
	te.catalog.Replace(id, r)
}

func AssertHas(te *TestEngine, id *kiln.ID) {
	te.tb.Helper()

	if !te.Has(id) {
		te.tb.Fatalf("expected engine to have %s", id.Name())
	}
}

func AssertNotHas(te *TestEngine, id *kiln.ID) {
	te.tb.Helper()

	if te.Has(id) {
		te.tb.Fatalf("expected engine to not have %s", id.Name())
	}
}

// RequireOne resolves the capability, failing the test on error or on a
// value of the wrong type.
func RequireOne[T any](te *TestEngine, id *kiln.ID) T {
	te.tb.Helper()

	v, err := kiln.One[T](te.Engine, id)
	if err != nil {
		te.tb.Fatalf("failed to resolve %s: %v", id.Name(), err)
	}
	return v
}

// RequireAll resolves every match for the capability, failing the test
// on error.
func RequireAll[T any](te *TestEngine, id *kiln.ID) []T {
	te.tb.Helper()

	vs, err := kiln.All[T](te.Engine, id)
	if err != nil {
		te.tb.Fatalf("failed to resolve %s: %v", id.Name(), err)
	}
	return vs
}

// RequireScope creates a child scope over the catalog, disposing it when
// the test finishes.
func RequireScope(te *TestEngine, catalog *kiln.Catalog) *TestEngine {
	te.tb.Helper()

	child, err := te.CreateScope(catalog)
	if err != nil {
		te.tb.Fatalf("failed to create scope: %v", err)
	}

	ce := &TestEngine{
		Engine:  child,
		catalog: catalog,
		tb:      te.tb,
	}

	te.tb.Cleanup(func() {
		if err := child.Dispose(); err != nil && !kiln.IsEngineDisposed(err) {
			te.tb.Fatalf("failed to dispose scope: %v", err)
		}
	})

	return ce
}
