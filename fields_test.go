package kiln_test

import (
	"testing"

	"github.com/kiln-di/kiln"
)

type Handler struct {
	Config *Config
	Peers  []any
}

type Repo struct {
	Service *Svc
}

type Svc struct {
	Repo *Repo
}

func TestFieldInjection(t *testing.T) {
	t.Parallel()

	reg := kiln.NewRegistry()
	cfgID := reg.ID("config")
	handlerID := reg.ID("handler")

	catalog := kiln.NewCatalog()
	config := &Config{Port: 8080}
	catalog.Append(cfgID, kiln.ValueRecipe(config))
	catalog.Append(handlerID, kiln.MustCtorRecipe(
		func() *Handler { return &Handler{} },
		kiln.DependsOn(kiln.FieldDep("Config", cfgID, kiln.ExactlyOne)),
	))

	e := kiln.New(reg, catalog)

	h, err := kiln.One[*Handler](e, handlerID)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if h.Config != config {
		t.Error("expected field bound to the resolved instance")
	}
}

func TestFieldCycleNeedsNoDeferral(t *testing.T) {
	t.Parallel()

	reg := kiln.NewRegistry()
	repoID := reg.ID("repo")
	svcID := reg.ID("service")

	catalog := kiln.NewCatalog()
	catalog.Append(repoID, kiln.MustCtorRecipe(
		func() *Repo { return &Repo{} },
		kiln.DependsOn(kiln.FieldDep("Service", svcID, kiln.ExactlyOne)),
	))
	catalog.Append(svcID, kiln.MustCtorRecipe(
		func(r *Repo) *Svc { return &Svc{Repo: r} },
		kiln.DependsOn(kiln.ParamDep(0, repoID, kiln.ExactlyOne)),
	))

	e := kiln.New(reg, catalog)

	repo, err := kiln.One[*Repo](e, repoID)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if repo.Service == nil || repo.Service.Repo != repo {
		t.Error("expected a mutually referencing pair without deferral")
	}
}

func TestFieldZeroOrMore(t *testing.T) {
	t.Parallel()

	reg := kiln.NewRegistry()
	peerID := reg.ID("peers")
	handlerID := reg.ID("handler")

	catalog := kiln.NewCatalog()
	catalog.Append(peerID, kiln.ValueRecipe("n1"), kiln.ValueRecipe("n2"))
	catalog.Append(handlerID, kiln.MustCtorRecipe(
		func() *Handler { return &Handler{} },
		kiln.DependsOn(kiln.FieldDep("Peers", peerID, kiln.ZeroOrMore)),
	))

	e := kiln.New(reg, catalog)

	h, err := kiln.One[*Handler](e, handlerID)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(h.Peers) != 2 {
		t.Fatalf("expected 2 peers, got %d", len(h.Peers))
	}
}

func TestFieldZeroOrOneAbsent(t *testing.T) {
	t.Parallel()

	reg := kiln.NewRegistry()
	cfgID := reg.ID("config")
	handlerID := reg.ID("handler")

	catalog := kiln.NewCatalog()
	catalog.Append(handlerID, kiln.MustCtorRecipe(
		func() *Handler { return &Handler{} },
		kiln.DependsOn(kiln.FieldDep("Config", cfgID, kiln.ZeroOrOne)),
	))

	e := kiln.New(reg, catalog)

	h, err := kiln.One[*Handler](e, handlerID)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if h.Config != nil {
		t.Error("expected absent optional field to remain zero")
	}
}

func TestFieldMissingRequired(t *testing.T) {
	t.Parallel()

	reg := kiln.NewRegistry()
	cfgID := reg.ID("config")
	handlerID := reg.ID("handler")

	catalog := kiln.NewCatalog()
	catalog.Append(handlerID, kiln.MustCtorRecipe(
		func() *Handler { return &Handler{} },
		kiln.DependsOn(kiln.FieldDep("Config", cfgID, kiln.ExactlyOne)),
	))

	e := kiln.New(reg, catalog)

	_, err := e.GetOne(handlerID)
	if !kiln.IsCardinality(err) {
		t.Fatalf("expected cardinality error, got %v", err)
	}
}

func TestFieldUnknownName(t *testing.T) {
	t.Parallel()

	reg := kiln.NewRegistry()
	cfgID := reg.ID("config")
	handlerID := reg.ID("handler")

	catalog := kiln.NewCatalog()
	catalog.Append(cfgID, kiln.ValueRecipe(&Config{}))
	catalog.Append(handlerID, kiln.MustCtorRecipe(
		func() *Handler { return &Handler{} },
		kiln.DependsOn(kiln.FieldDep("NoSuchField", cfgID, kiln.ExactlyOne)),
	))

	e := kiln.New(reg, catalog)

	_, err := e.GetOne(handlerID)
	if !kiln.IsInvalidRecipe(err) {
		t.Fatalf("expected invalid recipe error, got %v", err)
	}
}
