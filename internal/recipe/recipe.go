package recipe

import (
	"fmt"
	"reflect"

	"github.com/kiln-di/kiln/internal/errs"
	"github.com/kiln-di/kiln/internal/reflectx"
)

// Recipe describes how to produce a value for a capability: either a
// pre-built instance, or a constructor with bound leading arguments and a
// declared dependency list. Recipes are immutable once created.
type Recipe struct {
	name string

	value   any
	isValue bool

	ctor       reflect.Value
	ctorErr    bool
	bound      []any
	deps       []Dep
	deferrable bool
}

// Value creates a recipe wrapping a pre-built instance. It has no
// dependencies; activation returns the instance unchanged.
func Value(instance any) *Recipe {
	return &Recipe{
		name:    reflectx.TypeName(instance),
		value:   instance,
		isValue: true,
	}
}

// Option configures a constructor recipe at creation time.
type Option func(*Recipe)

// Bind fixes leading constructor arguments.
func Bind(args ...any) Option {
	return func(r *Recipe) {
		r.bound = append(r.bound, args...)
	}
}

// DependsOn attaches dependency declarations.
func DependsOn(deps ...Dep) Option {
	return func(r *Recipe) {
		r.deps = append(r.deps, deps...)
	}
}

// Deferrable marks the recipe as eligible for deferred instantiation,
// allowing it to break a constructor cycle.
func Deferrable() Option {
	return func(r *Recipe) {
		r.deferrable = true
	}
}

// Ctor creates a constructor recipe. The constructor must return a value
// or (value, error). Bound arguments occupy the leading parameters;
// declared slot indices address parameters positionally.
func Ctor(fn any, opts ...Option) (*Recipe, error) {
	v, hasErr, err := reflectx.CheckCtor(fn)
	if err != nil {
		return nil, errs.InvalidRecipe(err.Error())
	}

	r := &Recipe{
		name:    reflectx.FuncName(fn),
		ctor:    v,
		ctorErr: hasErr,
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.checkSlots(); err != nil {
		return nil, err
	}
	return r, nil
}

// MustCtor is Ctor panicking on invalid recipes; for wiring-time use.
func MustCtor(fn any, opts ...Option) *Recipe {
	r, err := Ctor(fn, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Recipe) checkSlots() error {
	numIn := r.ctor.Type().NumIn()
	if len(r.bound) > numIn {
		return errs.InvalidRecipe(fmt.Sprintf("%s: %d bound arguments for %d parameters", r.name, len(r.bound), numIn))
	}

	seen := make(map[int]bool, len(r.deps))
	for _, d := range r.deps {
		if d.Kind() != DepParam {
			continue
		}
		if d.Slot() < len(r.bound) || d.Slot() >= numIn {
			return errs.InvalidRecipe(fmt.Sprintf("%s: slot %d out of range", r.name, d.Slot()))
		}
		if seen[d.Slot()] {
			return errs.InvalidRecipe(fmt.Sprintf("%s: slot %d declared twice", r.name, d.Slot()))
		}
		seen[d.Slot()] = true
	}
	return nil
}

func (r *Recipe) Name() string     { return r.name }
func (r *Recipe) IsValue() bool    { return r.isValue }
func (r *Recipe) Deferrable() bool { return r.deferrable }

// Deps returns the declared dependency list. The returned slice is a copy;
// the declaration list itself never changes after creation.
func (r *Recipe) Deps() []Dep {
	out := make([]Dep, len(r.deps))
	copy(out, r.deps)
	return out
}

// WithExtraBound derives an ad-hoc variant with further bound arguments
// appended, used by the engine's unregistered-instance path.
func (r *Recipe) WithExtraBound(extra ...any) *Recipe {
	if r.isValue || len(extra) == 0 {
		return r
	}

	bound := make([]any, 0, len(r.bound)+len(extra))
	bound = append(bound, r.bound...)
	bound = append(bound, extra...)

	return &Recipe{
		name:       r.name,
		ctor:       r.ctor,
		ctorErr:    r.ctorErr,
		bound:      bound,
		deps:       r.deps,
		deferrable: r.deferrable,
	}
}

// Activate produces the recipe's value. For constructor recipes, params
// holds the already cardinality-checked values per declared slot; bound
// arguments and resolved dependencies are placed in ascending parameter
// order before the call.
func (r *Recipe) Activate(params map[int][]any) (any, error) {
	if r.isValue {
		return r.value, nil
	}

	t := r.ctor.Type()
	args := make([]reflect.Value, t.NumIn())
	filled := make([]bool, t.NumIn())

	for i, b := range r.bound {
		v, err := reflectx.Single(t.In(i), b)
		if err != nil {
			return nil, errs.InvalidRecipe(fmt.Sprintf("%s: bound argument %d: %v", r.name, i, err))
		}
		args[i] = v
		filled[i] = true
	}

	for _, d := range r.deps {
		if d.Kind() != DepParam {
			continue
		}

		vals := params[d.Slot()]
		in := t.In(d.Slot())

		var (
			v   reflect.Value
			err error
		)
		switch d.Cardinality() {
		case ZeroOrMore:
			v, err = reflectx.Slice(in, vals)
		case ZeroOrOne:
			if len(vals) == 0 {
				v = reflectx.Zero(in)
			} else {
				v, err = reflectx.Single(in, vals[0])
			}
		default:
			v, err = reflectx.Single(in, vals[0])
		}
		if err != nil {
			return nil, errs.InvalidRecipe(fmt.Sprintf("%s: slot %d: %v", r.name, d.Slot(), err))
		}
		args[d.Slot()] = v
		filled[d.Slot()] = true
	}

	for i, ok := range filled {
		if !ok {
			return nil, errs.InvalidRecipe(fmt.Sprintf("%s: parameter %d neither bound nor declared", r.name, i))
		}
	}

	return reflectx.Call(r.ctor, r.ctorErr, args)
}
