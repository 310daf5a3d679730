package recipe

import (
	"errors"
	"testing"

	"github.com/kiln-di/kiln/internal/ident"
)

func TestValueRecipe(t *testing.T) {
	t.Parallel()

	v := &struct{ n int }{n: 7}
	r := Value(v)

	if !r.IsValue() {
		t.Error("expected a value recipe")
	}
	got, err := r.Activate(nil)
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if got != v {
		t.Error("expected the wrapped instance unchanged")
	}
}

func TestCtorRejectsNonFunc(t *testing.T) {
	t.Parallel()

	if _, err := Ctor(42); err == nil {
		t.Error("expected rejection of a non-function")
	}
	if _, err := Ctor(func() {}); err == nil {
		t.Error("expected rejection of a constructor with no results")
	}
	if _, err := Ctor(func() (int, string) { return 0, "" }); err == nil {
		t.Error("expected rejection of a non-error second result")
	}
}

func TestCtorSlotValidation(t *testing.T) {
	t.Parallel()

	reg := ident.NewRegistry()
	id := reg.ID("dep")

	if _, err := Ctor(
		func(a, b int) int { return a + b },
		DependsOn(Param(2, id, ExactlyOne)),
	); err == nil {
		t.Error("expected out-of-range slot rejected")
	}

	if _, err := Ctor(
		func(a, b int) int { return a + b },
		DependsOn(Param(1, id, ExactlyOne), Param(1, id, ExactlyOne)),
	); err == nil {
		t.Error("expected duplicate slot rejected")
	}

	if _, err := Ctor(
		func(a, b int) int { return a + b },
		Bind(1),
		DependsOn(Param(0, id, ExactlyOne)),
	); err == nil {
		t.Error("expected slot inside the bound prefix rejected")
	}
}

func TestMustCtorPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustCtor("not a function")
}

func TestActivateBoundAndDeps(t *testing.T) {
	t.Parallel()

	reg := ident.NewRegistry()
	id := reg.ID("suffix")

	r := MustCtor(
		func(prefix, suffix string) string { return prefix + suffix },
		Bind("kiln-"),
		DependsOn(Param(1, id, ExactlyOne)),
	)

	got, err := r.Activate(map[int][]any{1: {"core"}})
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if got != "kiln-core" {
		t.Errorf("expected kiln-core, got %v", got)
	}
}

func TestActivateZeroOrMore(t *testing.T) {
	t.Parallel()

	reg := ident.NewRegistry()
	id := reg.ID("parts")

	r := MustCtor(
		func(parts []string) int { return len(parts) },
		DependsOn(Param(0, id, ZeroOrMore)),
	)

	got, err := r.Activate(map[int][]any{0: {"a", "b", "c"}})
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if got != 3 {
		t.Errorf("expected 3, got %v", got)
	}

	got, err = r.Activate(map[int][]any{})
	if err != nil {
		t.Fatalf("Activate with no matches failed: %v", err)
	}
	if got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}

func TestActivateZeroOrOneAbsent(t *testing.T) {
	t.Parallel()

	reg := ident.NewRegistry()
	id := reg.ID("maybe")

	r := MustCtor(
		func(p *int) bool { return p != nil },
		DependsOn(Param(0, id, ZeroOrOne)),
	)

	got, err := r.Activate(map[int][]any{})
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if got != false {
		t.Errorf("expected zero value for absent dependency, got %v", got)
	}
}

func TestActivateUndeclaredParam(t *testing.T) {
	t.Parallel()

	r := MustCtor(func(a int) int { return a })

	if _, err := r.Activate(nil); err == nil {
		t.Error("expected error for a parameter neither bound nor declared")
	}
}

func TestActivateCtorError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	r := MustCtor(func() (int, error) { return 0, boom })

	_, err := r.Activate(nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected constructor error, got %v", err)
	}
}

func TestWithExtraBound(t *testing.T) {
	t.Parallel()

	r := MustCtor(func(a, b string) string { return a + b }, Bind("x"))

	derived := r.WithExtraBound("y")
	got, err := derived.Activate(nil)
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if got != "xy" {
		t.Errorf("expected xy, got %v", got)
	}

	// the original keeps its shorter bound list
	if _, err := r.Activate(nil); err == nil {
		t.Error("expected the original recipe unchanged")
	}
}

func TestCatalogAppendReplace(t *testing.T) {
	t.Parallel()

	reg := ident.NewRegistry()
	id := reg.ID("cap")
	other := reg.ID("other")

	c := NewCatalog()
	c.Append(id, Value(1))
	c.Append(id, Value(2), Value(3))
	c.Append(other, Value("x"))

	rs, ok := c.Recipes(id)
	if !ok || len(rs) != 3 {
		t.Fatalf("expected 3 recipes, got %d", len(rs))
	}

	c.Replace(id, Value(9))
	rs, _ = c.Recipes(id)
	if len(rs) != 1 {
		t.Fatalf("expected 1 recipe after replace, got %d", len(rs))
	}

	c.Replace(id)
	if c.Has(id) {
		t.Error("expected empty replace to remove the entry")
	}
	if !c.Has(other) {
		t.Error("expected the other entry untouched")
	}
}

func TestCatalogOrder(t *testing.T) {
	t.Parallel()

	reg := ident.NewRegistry()
	c := NewCatalog()
	c.Append(reg.ID("b"), Value(1))
	c.Append(reg.ID("a"), Value(2))
	c.Append(reg.ID("b"), Value(3))

	ids := c.IDs()
	if len(ids) != 2 || ids[0].Name() != "b" || ids[1].Name() != "a" {
		t.Errorf("expected registration order preserved, got %v", ids)
	}
	if c.Size() != 2 {
		t.Errorf("expected size 2, got %d", c.Size())
	}
}

func TestCardinalityCheck(t *testing.T) {
	t.Parallel()

	if err := ExactlyOne.Check("cap", "recipe", 1); err != nil {
		t.Errorf("expected 1 to satisfy exactly-one: %v", err)
	}
	if err := ExactlyOne.Check("cap", "recipe", 0); err == nil {
		t.Error("expected 0 to violate exactly-one")
	}
	if err := ExactlyOne.Check("cap", "recipe", 2); err == nil {
		t.Error("expected 2 to violate exactly-one")
	}

	if err := ZeroOrOne.Check("cap", "recipe", 0); err != nil {
		t.Errorf("expected 0 to satisfy zero-or-one: %v", err)
	}
	if err := ZeroOrOne.Check("cap", "recipe", 2); err == nil {
		t.Error("expected 2 to violate zero-or-one")
	}

	for n := 0; n < 4; n++ {
		if err := ZeroOrMore.Check("cap", "recipe", n); err != nil {
			t.Errorf("expected %d to satisfy zero-or-more: %v", n, err)
		}
	}
}
