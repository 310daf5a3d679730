package kiln

import (
	"fmt"

	"github.com/kiln-di/kiln/internal/errs"
	"github.com/kiln-di/kiln/internal/reflectx"
)

func errWrongType[T any](id *ID) error {
	return errs.New(
		errs.CodeActivationFailed,
		fmt.Sprintf("capability %s resolved to a value that is not %s", id.Name(), reflectx.TypeNameFor[T]()),
		nil,
	).WithCapability(id.Name())
}

// One resolves the capability and asserts the single match to T.
func One[T any](e *Engine, id *ID) (T, error) {
	var zero T

	instance, err := e.GetOne(id)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, errWrongType[T](id)
	}

	return typed, nil
}

func MustOne[T any](e *Engine, id *ID) T {
	v, err := One[T](e, id)
	if err != nil {
		panic(err)
	}
	return v
}

// All resolves every match for the capability and asserts each to T.
func All[T any](e *Engine, id *ID) ([]T, error) {
	instances, err := e.GetAll(id)
	if err != nil {
		return nil, err
	}

	typed := make([]T, 0, len(instances))
	for _, instance := range instances {
		t, ok := instance.(T)
		if !ok {
			return nil, errWrongType[T](id)
		}
		typed = append(typed, t)
	}

	return typed, nil
}

func MustAll[T any](e *Engine, id *ID) []T {
	vs, err := All[T](e, id)
	if err != nil {
		panic(err)
	}
	return vs
}

// Maybe resolves an at-most-one capability into an Optional. Resolution
// errors other than absence surface through the error return.
func Maybe[T any](e *Engine, id *ID) (Optional[T], error) {
	instance, ok, err := e.GetOptional(id)
	if err != nil {
		return None[T](), err
	}
	if !ok {
		return None[T](), nil
	}

	typed, tok := instance.(T)
	if !tok {
		return None[T](), errWrongType[T](id)
	}

	return Some(typed), nil
}

// Await unwraps a deferred dependency and asserts it to T. It must only
// be called after the constructor that received the Deferred returned.
func Await[T any](d *Deferred) (T, error) {
	var zero T

	instance, err := d.Instance()
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, errs.New(
			errs.CodeActivationFailed,
			fmt.Sprintf("deferred capability %s resolved to a value that is not %s", d.Capability(), reflectx.TypeNameFor[T]()),
			nil,
		).WithCapability(d.Capability())
	}

	return typed, nil
}

func MustAwait[T any](d *Deferred) T {
	v, err := Await[T](d)
	if err != nil {
		panic(err)
	}
	return v
}

// Optional carries an at-most-one resolution result without forcing the
// caller through a comma-ok pair.
type Optional[T any] struct {
	value   T
	present bool
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

func (o Optional[T]) Value() T {
	return o.value
}

func (o Optional[T]) Present() bool {
	return o.present
}

func (o Optional[T]) OrElse(defaultValue T) T {
	if o.present {
		return o.value
	}
	return defaultValue
}

func (o Optional[T]) OrElseFunc(fn func() T) T {
	if o.present {
		return o.value
	}
	return fn()
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, present: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}
