package kiln

import "github.com/kiln-di/kiln/internal/recipe"

// Cardinality states how many matches a dependency or request tolerates.
type Cardinality = recipe.Cardinality

const (
	ExactlyOne = recipe.ExactlyOne
	ZeroOrOne  = recipe.ZeroOrOne
	ZeroOrMore = recipe.ZeroOrMore
)

// Dep is a single dependency declaration on a constructor recipe.
type Dep = recipe.Dep

// ParamDep declares that the given constructor slot receives the target
// capability's value(s).
func ParamDep(slot int, id *ID, card Cardinality) Dep {
	return recipe.Param(slot, id, card)
}

// FieldDep declares that the named exported field receives the target
// capability's value(s) after construction.
func FieldDep(name string, id *ID, card Cardinality) Dep {
	return recipe.Field(name, id, card)
}

// Recipe describes how to produce a value for a capability.
type Recipe = recipe.Recipe

// RecipeOption configures a constructor recipe at creation time.
type RecipeOption = recipe.Option

// ValueRecipe wraps a pre-built instance.
func ValueRecipe(instance any) *Recipe {
	return recipe.Value(instance)
}

// CtorRecipe creates a constructor recipe. The constructor must return a
// value or (value, error).
func CtorRecipe(fn any, opts ...RecipeOption) (*Recipe, error) {
	return recipe.Ctor(fn, opts...)
}

// MustCtorRecipe is CtorRecipe panicking on invalid recipes.
func MustCtorRecipe(fn any, opts ...RecipeOption) *Recipe {
	return recipe.MustCtor(fn, opts...)
}

// Bind fixes leading constructor arguments.
func Bind(args ...any) RecipeOption {
	return recipe.Bind(args...)
}

// DependsOn attaches dependency declarations.
func DependsOn(deps ...Dep) RecipeOption {
	return recipe.DependsOn(deps...)
}

// Deferrable marks a recipe as eligible for deferred instantiation.
func Deferrable() RecipeOption {
	return recipe.Deferrable()
}

// Catalog is an append/replace multimap from capability identifier to an
// ordered recipe list.
type Catalog = recipe.Catalog

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return recipe.NewCatalog()
}
