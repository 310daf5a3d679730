package kiln_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/kiln-di/kiln"
)

func TestErrorPredicates(t *testing.T) {
	t.Parallel()

	reg := kiln.NewRegistry()
	e := kiln.New(reg, kiln.NewCatalog())

	_, err := e.GetOne(reg.ID("missing"))
	if !kiln.IsUnknownCapability(err) {
		t.Fatalf("expected unknown capability, got %v", err)
	}
	if kiln.IsCyclicDependency(err) || kiln.IsEngineDisposed(err) {
		t.Error("expected predicates to discriminate by code")
	}
	if kiln.IsUnknownCapability(nil) {
		t.Error("expected nil to match nothing")
	}
	if kiln.IsUnknownCapability(errors.New("plain")) {
		t.Error("expected untyped errors to match nothing")
	}
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	reg := kiln.NewRegistry()
	e := kiln.New(reg, kiln.NewCatalog())

	_, err := e.GetOne(reg.ID("cache.redis"))
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "UNKNOWN_CAPABILITY") {
		t.Errorf("expected code name in message, got %q", msg)
	}
	if !strings.Contains(msg, "cache.redis") {
		t.Errorf("expected capability in message, got %q", msg)
	}
}

func TestErrorFields(t *testing.T) {
	t.Parallel()

	reg := kiln.NewRegistry()
	e := kiln.New(reg, kiln.NewCatalog())

	_, err := e.GetOne(reg.ID("missing"))

	var typed *kiln.Error
	if !errors.As(err, &typed) {
		t.Fatalf("expected *kiln.Error, got %T", err)
	}
	if typed.Code != kiln.ErrCodeUnknownCapability {
		t.Errorf("unexpected code %v", typed.Code)
	}
	if typed.Capability != "missing" {
		t.Errorf("unexpected capability %q", typed.Capability)
	}
}

func TestErrorWrapsCause(t *testing.T) {
	t.Parallel()

	reg := kiln.NewRegistry()
	id := reg.ID("service")

	cause := fmt.Errorf("dial tcp: %w", errors.New("refused"))
	catalog := kiln.NewCatalog()
	catalog.Append(id, kiln.MustCtorRecipe(func() (any, error) {
		return nil, cause
	}))

	e := kiln.New(reg, catalog)

	_, err := e.GetOne(id)
	if !errors.Is(err, cause) {
		t.Error("expected cause reachable through Unwrap")
	}
}

func TestCyclicErrorChain(t *testing.T) {
	t.Parallel()

	reg := kiln.NewRegistry()
	aID := reg.ID("a")
	bID := reg.ID("b")

	catalog := kiln.NewCatalog()
	catalog.Append(aID, kiln.MustCtorRecipe(
		func(b any) any { return b },
		kiln.DependsOn(kiln.ParamDep(0, bID, kiln.ExactlyOne)),
	))
	catalog.Append(bID, kiln.MustCtorRecipe(
		func(a any) any { return a },
		kiln.DependsOn(kiln.ParamDep(0, aID, kiln.ExactlyOne)),
	))

	e := kiln.New(reg, catalog)

	_, err := e.GetOne(aID)

	var typed *kiln.Error
	if !errors.As(err, &typed) {
		t.Fatalf("expected *kiln.Error, got %T", err)
	}
	if len(typed.Chain) == 0 {
		t.Error("expected the cycle path recorded on the error")
	}
}
