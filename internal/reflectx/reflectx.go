package reflectx

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

func TypeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}

// TypeNameFor names T itself, including interface types that a value
// of T would hide behind its dynamic type.
func TypeNameFor[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

func IsNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

// FuncName returns the short name of a function value for diagnostics.
func FuncName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return TypeName(fn)
	}

	pc := runtime.FuncForPC(v.Pointer())
	if pc == nil {
		return v.Type().String()
	}

	name := pc.Name()
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		name = name[idx+1:]
	}
	return name
}

// CheckCtor validates a constructor function shape: one result, or a
// result plus a trailing error.
func CheckCtor(fn any) (reflect.Value, bool, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return reflect.Value{}, false, fmt.Errorf("constructor must be a function, got %s", TypeName(fn))
	}

	t := v.Type()
	switch t.NumOut() {
	case 1:
		if t.Out(0) == errType {
			return reflect.Value{}, false, fmt.Errorf("constructor %s must produce a value, not only an error", FuncName(fn))
		}
		return v, false, nil
	case 2:
		if t.Out(1) != errType {
			return reflect.Value{}, false, fmt.Errorf("constructor %s second result must be error", FuncName(fn))
		}
		return v, true, nil
	default:
		return reflect.Value{}, false, fmt.Errorf("constructor %s must return a value or (value, error)", FuncName(fn))
	}
}

// Call invokes a checked constructor and unwraps the optional error result.
func Call(fn reflect.Value, hasErr bool, args []reflect.Value) (any, error) {
	results := fn.Call(args)

	if hasErr && !results[1].IsNil() {
		return nil, results[1].Interface().(error)
	}
	return results[0].Interface(), nil
}

// Single converts one resolved value to a parameter of type t.
func Single(t reflect.Type, v any) (reflect.Value, error) {
	return single(t, v)
}

// Zero returns the absent value for an optional parameter of type t.
func Zero(t reflect.Type) reflect.Value {
	return reflect.Zero(t)
}

// Slice builds a value of slice type t from resolved values.
func Slice(t reflect.Type, vals []any) (reflect.Value, error) {
	if t.Kind() != reflect.Slice {
		return reflect.Value{}, fmt.Errorf("zero-or-more parameter requires a slice type, got %s", t)
	}

	out := reflect.MakeSlice(t, 0, len(vals))
	for _, v := range vals {
		rv := reflect.ValueOf(v)
		if !rv.Type().AssignableTo(t.Elem()) {
			return reflect.Value{}, fmt.Errorf("cannot assign %s to element of %s", rv.Type(), t)
		}
		out = reflect.Append(out, rv)
	}
	return out, nil
}

// SetField assigns value onto the named exported field of instance,
// which must be a pointer to a struct.
func SetField(instance any, field string, value any) error {
	rv := reflect.ValueOf(instance)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("field binding requires a pointer to struct, got %s", TypeName(instance))
	}

	fv := rv.Elem().FieldByName(field)
	if !fv.IsValid() {
		return fmt.Errorf("no field %s on %s", field, TypeName(instance))
	}
	if !fv.CanSet() {
		return fmt.Errorf("cannot set field %s on %s (unexported)", field, TypeName(instance))
	}

	set, err := single(fv.Type(), value)
	if err != nil {
		return fmt.Errorf("field %s: %w", field, err)
	}
	fv.Set(set)
	return nil
}

// SetFieldSlice assigns a zero-or-more binding onto the named field.
func SetFieldSlice(instance any, field string, values []any) error {
	rv := reflect.ValueOf(instance)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("field binding requires a pointer to struct, got %s", TypeName(instance))
	}

	fv := rv.Elem().FieldByName(field)
	if !fv.IsValid() {
		return fmt.Errorf("no field %s on %s", field, TypeName(instance))
	}
	if !fv.CanSet() {
		return fmt.Errorf("cannot set field %s on %s (unexported)", field, TypeName(instance))
	}

	set, err := Slice(fv.Type(), values)
	if err != nil {
		return fmt.Errorf("field %s: %w", field, err)
	}
	fv.Set(set)
	return nil
}

func single(t reflect.Type, v any) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}

	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(t) {
		return reflect.Value{}, fmt.Errorf("cannot assign %s to %s", rv.Type(), t)
	}
	return rv, nil
}
