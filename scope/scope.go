// Package scope is the key-value context that callbacks can receive next to the element they work on.
//
// A Scope merges two levels of named values:
// the fields of the current element and a map shared by every call of the same pipeline.
// Reads look at the element fields first, then at the shared map.
// Writes go to whichever of the two already owns the key,
// and are dropped when neither does.
//
// The binding helpers, such as Predicate or Transform,
// turn a callback that expects a Scope into the plain indexed callback form
// accepted by the iterators package.
package scope

import (
	"context"

	"github.com/adamluzsi/streams/internal/logger"
	"github.com/adamluzsi/streams/iterators"
)

// Fielder is implemented by the element types that expose named fields.
// The returned map is used as is, so writes through the Scope land in it.
type Fielder interface {
	Fields() map[string]any
}

type Scope[T any] struct {
	// Value is the current element.
	Value T
	// Index is the position of the element in the stage that handles it.
	Index int

	fields map[string]any
	shared map[string]any
}

// New creates the Scope of an element.
//
// When the element is a map[string]any, its keys are the fields,
// and the writes are made to a working copy, so the original element is never altered.
// When the element implements Fielder, its Fields are used.
func New[T any](value T, index int, shared map[string]any) *Scope[T] {
	return &Scope[T]{
		Value:  value,
		Index:  index,
		fields: fieldsOf(value),
		shared: shared,
	}
}

func fieldsOf(v any) map[string]any {
	switch v := v.(type) {
	case map[string]any:
		if v == nil {
			return nil
		}
		fields := make(map[string]any, len(v))
		for k, val := range v {
			fields[k] = val
		}
		return fields
	case Fielder:
		return v.Fields()
	default:
		return nil
	}
}

// Get returns the named value, looking at the element fields first.
func (s *Scope[T]) Get(key string) (any, bool) {
	if v, ok := s.fields[key]; ok {
		return v, true
	}
	if v, ok := s.shared[key]; ok {
		return v, true
	}
	return nil, false
}

// Has reports whether any of the two levels knows the key.
func (s *Scope[T]) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Set updates the named value in the level that owns the key.
// It reports false, and stores nothing, when the key is unknown to both levels.
func (s *Scope[T]) Set(key string, value any) bool {
	if _, ok := s.fields[key]; ok {
		s.fields[key] = value
		return true
	}
	if _, ok := s.shared[key]; ok {
		s.shared[key] = value
		return true
	}
	logger.Debug(context.Background(), "scope write dropped",
		logger.Field("key", key),
		logger.Field("index", s.Index))
	return false
}

// Fields returns the element level fields.
// For map elements this is the working copy, including the writes made through Set.
func (s *Scope[T]) Fields() map[string]any {
	return s.fields
}

// Lookup returns the named value if it is present and has the type V.
func Lookup[V any, T any](s *Scope[T], key string) (V, bool) {
	raw, ok := s.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	v, ok := raw.(V)
	return v, ok
}

// Predicate binds a scoped predicate to the shared map.
//
//	iterators.Filter(i, scope.Predicate(shared, func(s *scope.Scope[Order]) bool { ... }))
func Predicate[T any](shared map[string]any, fn func(*Scope[T]) bool) func(T, int) bool {
	return func(v T, index int) bool {
		return fn(New(v, index, shared))
	}
}

// Transform binds a scoped transformation to the shared map.
func Transform[T, U any](shared map[string]any, fn func(*Scope[T]) U) func(T, int) U {
	return func(v T, index int) U {
		return fn(New(v, index, shared))
	}
}

// Observer binds a scoped side effect to the shared map.
func Observer[T any](shared map[string]any, fn func(*Scope[T])) func(T, int) {
	return func(v T, index int) {
		fn(New(v, index, shared))
	}
}

// Decider binds a scoped decision to the shared map.
func Decider[T any](shared map[string]any, fn func(*Scope[T]) iterators.Decision) func(T, int) iterators.Decision {
	return func(v T, index int) iterators.Decision {
		return fn(New(v, index, shared))
	}
}
