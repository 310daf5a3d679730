package benchmark

import (
	"context"
	"testing"

	"github.com/samber/do/v2"
	"go.uber.org/dig"
	"go.uber.org/fx"

	"github.com/kiln-di/kiln"
)

func newSingletonEngine() (*kiln.Engine, *kiln.ID) {
	reg := kiln.NewRegistry()
	cfgID := reg.ID("config")

	catalog := kiln.NewCatalog()
	catalog.Append(cfgID, kiln.ValueRecipe(&Config{Host: "localhost", Port: 8080}))

	return kiln.New(reg, catalog), cfgID
}

func BenchmarkInvoke_Singleton_Kiln(b *testing.B) {
	e, cfgID := newSingletonEngine()
	_, _ = e.GetOne(cfgID)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = kiln.One[*Config](e, cfgID)
	}
	_ = e.Dispose()
}

func BenchmarkInvoke_Singleton_Do(b *testing.B) {
	injector := do.New()
	do.ProvideValue(injector, &Config{Host: "localhost", Port: 8080})
	_ = do.MustInvoke[*Config](injector)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = do.MustInvoke[*Config](injector)
	}
}

func BenchmarkInvoke_Singleton_Dig(b *testing.B) {
	c := dig.New()
	_ = c.Provide(func() *Config { return &Config{Host: "localhost", Port: 8080} })
	_ = c.Invoke(func(*Config) {})

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = c.Invoke(func(*Config) {})
	}
}

func BenchmarkInvoke_Singleton_Fx(b *testing.B) {
	var cfg *Config
	app := fx.New(
		fx.NopLogger,
		fx.Provide(func() *Config { return &Config{Host: "localhost", Port: 8080} }),
		fx.Populate(&cfg),
	)
	ctx := context.Background()
	_ = app.Start(ctx)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = cfg
	}
	_ = app.Stop(ctx)
}

func newChainEngine() (*kiln.Engine, *kiln.ID) {
	reg := kiln.NewRegistry()
	cfgID := reg.ID("config")
	logID := reg.ID("logger")
	dbID := reg.ID("database")
	cacheID := reg.ID("cache")
	repoID := reg.ID("repository")
	svcID := reg.ID("service")

	catalog := kiln.NewCatalog()
	catalog.Append(cfgID, kiln.ValueRecipe(&Config{Host: "localhost", Port: 8080}))
	catalog.Append(logID, kiln.ValueRecipe(&Logger{Level: "info"}))
	catalog.Append(dbID, kiln.MustCtorRecipe(
		func(cfg *Config, log *Logger) *Database {
			return &Database{Config: cfg, Logger: log}
		},
		kiln.DependsOn(
			kiln.ParamDep(0, cfgID, kiln.ExactlyOne),
			kiln.ParamDep(1, logID, kiln.ExactlyOne),
		),
	))
	catalog.Append(cacheID, kiln.MustCtorRecipe(
		func(log *Logger) *Cache {
			return &Cache{Logger: log}
		},
		kiln.DependsOn(kiln.ParamDep(0, logID, kiln.ExactlyOne)),
	))
	catalog.Append(repoID, kiln.MustCtorRecipe(
		func(db *Database, cache *Cache) *Repository {
			return &Repository{DB: db, Cache: cache}
		},
		kiln.DependsOn(
			kiln.ParamDep(0, dbID, kiln.ExactlyOne),
			kiln.ParamDep(1, cacheID, kiln.ExactlyOne),
		),
	))
	catalog.Append(svcID, kiln.MustCtorRecipe(
		func(repo *Repository, log *Logger) *Service {
			return &Service{Repo: repo, Logger: log}
		},
		kiln.DependsOn(
			kiln.ParamDep(0, repoID, kiln.ExactlyOne),
			kiln.ParamDep(1, logID, kiln.ExactlyOne),
		),
	))

	return kiln.New(reg, catalog), svcID
}

func BenchmarkInvoke_Chain_Kiln(b *testing.B) {
	e, svcID := newChainEngine()
	_, _ = e.GetOne(svcID)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = kiln.One[*Service](e, svcID)
	}
	_ = e.Dispose()
}

func BenchmarkInvoke_Chain_Do(b *testing.B) {
	injector := do.New()
	do.ProvideValue(injector, &Config{Host: "localhost", Port: 8080})
	do.ProvideValue(injector, &Logger{Level: "info"})
	do.Provide(
		injector, func(i do.Injector) (*Database, error) {
			cfg := do.MustInvoke[*Config](i)
			log := do.MustInvoke[*Logger](i)
			return &Database{Config: cfg, Logger: log}, nil
		},
	)
	do.Provide(
		injector, func(i do.Injector) (*Cache, error) {
			log := do.MustInvoke[*Logger](i)
			return &Cache{Logger: log}, nil
		},
	)
	do.Provide(
		injector, func(i do.Injector) (*Repository, error) {
			db := do.MustInvoke[*Database](i)
			cache := do.MustInvoke[*Cache](i)
			return &Repository{DB: db, Cache: cache}, nil
		},
	)
	do.Provide(
		injector, func(i do.Injector) (*Service, error) {
			repo := do.MustInvoke[*Repository](i)
			log := do.MustInvoke[*Logger](i)
			return &Service{Repo: repo, Logger: log}, nil
		},
	)
	_ = do.MustInvoke[*Service](injector)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = do.MustInvoke[*Service](injector)
	}
}

func BenchmarkInvoke_Chain_Dig(b *testing.B) {
	c := dig.New()
	_ = c.Provide(func() *Config { return &Config{Host: "localhost", Port: 8080} })
	_ = c.Provide(func() *Logger { return &Logger{Level: "info"} })
	_ = c.Provide(func(cfg *Config, log *Logger) *Database {
		return &Database{Config: cfg, Logger: log}
	})
	_ = c.Provide(func(log *Logger) *Cache {
		return &Cache{Logger: log}
	})
	_ = c.Provide(func(db *Database, cache *Cache) *Repository {
		return &Repository{DB: db, Cache: cache}
	})
	_ = c.Provide(func(repo *Repository, log *Logger) *Service {
		return &Service{Repo: repo, Logger: log}
	})
	_ = c.Invoke(func(*Service) {})

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = c.Invoke(func(*Service) {})
	}
}

func BenchmarkInvoke_Chain_Fx(b *testing.B) {
	var svc *Service
	app := fx.New(
		fx.NopLogger,
		fx.Provide(func() *Config { return &Config{Host: "localhost", Port: 8080} }),
		fx.Provide(func() *Logger { return &Logger{Level: "info"} }),
		fx.Provide(func(cfg *Config, log *Logger) *Database {
			return &Database{Config: cfg, Logger: log}
		}),
		fx.Provide(func(log *Logger) *Cache {
			return &Cache{Logger: log}
		}),
		fx.Provide(func(db *Database, cache *Cache) *Repository {
			return &Repository{DB: db, Cache: cache}
		}),
		fx.Provide(func(repo *Repository, log *Logger) *Service {
			return &Service{Repo: repo, Logger: log}
		}),
		fx.Populate(&svc),
	)
	ctx := context.Background()
	_ = app.Start(ctx)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = svc
	}
	_ = app.Stop(ctx)
}
