package iterators

import (
	"reflect"
)

// Cloner is implemented by the element types that know how to make an independent copy of themselves.
type Cloner[T any] interface {
	Clone() T
}

// Clone returns a copy of v that does not share mutable state with v.
//
// Types implementing Cloner are copied with their Clone method.
// Slices and maps get a shallow copy, so the container is new but the items are the same.
// Every other value is returned as is.
func Clone[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		cp := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(cp, rv)
		return cp.Interface().(T)
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		cp := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			cp.SetMapIndex(iter.Key(), iter.Value())
		}
		return cp.Interface().(T)
	default:
		return v
	}
}
