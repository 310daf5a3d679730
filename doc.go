// Package kiln is a capability-based dependency-composition runtime for Go.
//
// Applications register recipes (instructions for producing a value for an
// abstract capability) in a catalog, and ask an engine for capabilities by
// identifier. The engine builds a per-request composition graph, constructs
// transitive dependencies in dependency order, binds field-level dependencies
// in a second pass, and caches the results per owning scope. Either a whole
// subgraph resolves, or none of it is observably created.
//
// # Quick Start
//
// Intern identifiers, register recipes, create an engine:
//
//	reg := kiln.NewRegistry()
//	cfgID := reg.ID("app.Config")
//	dbID := reg.ID("app.Database")
//
//	cat := kiln.NewCatalog()
//	cat.Append(cfgID, kiln.ValueRecipe(&Config{Port: 5432}))
//	cat.Append(dbID, kiln.MustCtorRecipe(NewDatabase,
//	    kiln.DependsOn(kiln.ParamDep(0, cfgID, kiln.ExactlyOne)),
//	))
//
//	eng := kiln.New(reg, cat)
//
//	db, err := kiln.One[*Database](eng, dbID)
//
// # Identifiers
//
// Capability identifiers are interned tokens: two calls to Registry.ID with
// the same name return the identical pointer, and equality is identity. The
// registry is an explicit object constructed once and shared by reference,
// not a hidden singleton.
//
// # Recipes
//
// A recipe is either a pre-built value or a constructor with bound leading
// arguments and a declared dependency list:
//
//	kiln.ValueRecipe(instance)
//	kiln.MustCtorRecipe(NewServer,
//	    kiln.Bind(":8080"),                                   // bound leading args
//	    kiln.DependsOn(
//	        kiln.ParamDep(1, dbID, kiln.ExactlyOne),          // constructor slot
//	        kiln.FieldDep("Log", logID, kiln.ZeroOrOne),      // field after construction
//	    ),
//	)
//
// Constructor slots are absolute parameter indices; bound arguments occupy
// the leading parameters. Dependencies are resolved and passed in ascending
// slot order.
//
// # Cardinality
//
// Every dependency and lookup declares how many matches it tolerates:
// ExactlyOne, ZeroOrOne, or ZeroOrMore. A catalog may hold several recipes
// for one identifier; GetAll returns them all in registration order, GetOne
// and GetOptional enforce their counts.
//
// # Lookup
//
//	v, err := eng.GetOne(id)
//	v, ok, err := eng.GetOptional(id)
//	vs, err := eng.GetAll(id)
//
// Typed helpers wrap the untyped surface:
//
//	db := kiln.MustOne[*Database](eng, dbID)
//	caches, err := kiln.All[Cache](eng, cacheID)
//	opt, err := kiln.Maybe[*Tracer](eng, tracerID)
//	tracer := opt.OrElse(noopTracer)
//
// # Scopes
//
// CreateScope produces a child engine with its own catalog and cache.
// Lookup precedence walks the requesting engine's catalog first, then its
// ancestors; a capability owned by a parent is instantiated once and shared
// by every descendant, while a capability owned by a child lives and dies
// with that child. Every catalog implicitly registers the engine itself
// under the well-known identifiers "kiln.Engine" and "kiln.Provider".
//
//	child := kiln.MustCreateScope(eng, childCatalog)
//
// # Cycles and Deferred Construction
//
// Cycles through constructor parameters are rejected. Cycles that pass
// through a field dependency resolve naturally: construction first, field
// binding second. A constructor cycle can also be broken by marking one
// recipe Deferrable; its consumers receive a *kiln.Deferred placeholder
// whose first Instance call performs the real construction exactly once:
//
//	kiln.MustCtorRecipe(NewClient, kiln.Deferrable(), ...)
//
//	func NewServer(client *kiln.Deferred) *Server { ... }
//	c, err := kiln.Await[*Client](server.client)
//
// # Transactions
//
// Every engine cache touched during one resolution is snapshotted on first
// write. Any error, from an unknown capability or cardinality violation to
// a cycle or constructor failure, rolls every touched cache back verbatim
// before the error reaches the caller.
//
// # Disposal
//
// Instances implementing kiln.Disposable are torn down when their owning
// engine is disposed, in reverse production order, with failures aggregated
// into a single error. Disposing an engine never touches instances a child
// produced for itself, and every later operation on the engine or its
// descendants fails.
//
// # Validation and Debugging
//
// Validate statically checks a catalog chain for missing required
// dependencies and unbreakable constructor cycles. The engine can render its
// catalog as ASCII, Graphviz DOT, or a summary table:
//
//	eng.PrintGraph()
//	eng.PrintGraphDOT()
//	eng.FprintTable(os.Stdout)
//
// # Observability
//
// Hooks observe resolutions and disposals for metrics integration:
//
//	eng := kiln.New(reg, cat,
//	    kiln.WithLogger(slog.Default()),
//	    kiln.WithResolveObserver(func(capability string, d time.Duration, err error) {
//	        metrics.RecordResolve(capability, d, err)
//	    }),
//	)
package kiln
