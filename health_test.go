package kiln_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kiln-di/kiln"
)

type probe struct {
	err error
}

func (p *probe) HealthCheck(ctx context.Context) error {
	return p.err
}

func TestHealthUp(t *testing.T) {
	t.Parallel()

	reg := kiln.NewRegistry()
	id := reg.ID("database")

	catalog := kiln.NewCatalog()
	catalog.Append(id, kiln.ValueRecipe(&probe{}))

	e := kiln.New(reg, catalog)
	if _, err := e.GetOne(id); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	reports := e.Health(context.Background())
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
	if reports[0].Status != kiln.HealthStatusUp {
		t.Errorf("expected up, got %s", reports[0].Status)
	}
	if err := e.Live(context.Background()); err != nil {
		t.Errorf("expected live, got %v", err)
	}
}

func TestHealthDown(t *testing.T) {
	t.Parallel()

	reg := kiln.NewRegistry()
	id := reg.ID("database")

	boom := errors.New("connection lost")
	catalog := kiln.NewCatalog()
	catalog.Append(id, kiln.ValueRecipe(&probe{err: boom}))

	e := kiln.New(reg, catalog)
	if _, err := e.GetOne(id); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	reports := e.Health(context.Background())
	if len(reports) != 1 || reports[0].Status != kiln.HealthStatusDown {
		t.Fatalf("expected one down report, got %+v", reports)
	}
	if !errors.Is(reports[0].Error, boom) {
		t.Error("expected the check's error carried in the report")
	}

	if err := e.Live(context.Background()); err == nil {
		t.Error("expected Live to fail")
	}
}

func TestHealthSkipsUnbuilt(t *testing.T) {
	t.Parallel()

	reg := kiln.NewRegistry()
	id := reg.ID("database")

	catalog := kiln.NewCatalog()
	catalog.Append(id, kiln.MustCtorRecipe(func() *probe { return &probe{} }))

	e := kiln.New(reg, catalog)

	// never resolved; health must not trigger construction
	reports := e.Health(context.Background())
	if len(reports) != 0 {
		t.Errorf("expected no reports before construction, got %+v", reports)
	}
}
