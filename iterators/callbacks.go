package iterators

// PredicateFunc lists the accepted shapes of a filtering or stopping condition.
// The indexed forms receive the position of the element within the stage that evaluates it.
// A predicate that fails is treated as if it had answered false.
type PredicateFunc[T any] interface {
	func(T) bool |
		func(T, int) bool |
		func(T) (bool, error) |
		func(T, int) (bool, error)
}

func toPredicate[T any, FN PredicateFunc[T]](fn FN) func(T, int) bool {
	switch fn := any(fn).(type) {
	case func(T) bool:
		return func(v T, _ int) bool { return fn(v) }
	case func(T, int) bool:
		return fn
	case func(T) (bool, error):
		return func(v T, _ int) bool {
			ok, err := fn(v)
			return err == nil && ok
		}
	case func(T, int) (bool, error):
		return func(v T, index int) bool {
			ok, err := fn(v, index)
			return err == nil && ok
		}
	default:
		panic("unreachable")
	}
}

// TransformFunc lists the accepted shapes of a one-to-one transformation.
type TransformFunc[From, To any] interface {
	func(From) To |
		func(From, int) To |
		func(From) (To, error) |
		func(From, int) (To, error)
}

func toTransform[From, To any, FN TransformFunc[From, To]](fn FN) func(From, int) (To, error) {
	switch fn := any(fn).(type) {
	case func(From) To:
		return func(v From, _ int) (To, error) { return fn(v), nil }
	case func(From, int) To:
		return func(v From, index int) (To, error) { return fn(v, index), nil }
	case func(From) (To, error):
		return func(v From, _ int) (To, error) { return fn(v) }
	case func(From, int) (To, error):
		return fn
	default:
		panic("unreachable")
	}
}

// ExpandFunc lists the accepted shapes of a one-to-many transformation.
type ExpandFunc[From, To any] interface {
	func(From) []To |
		func(From, int) []To |
		func(From) ([]To, error) |
		func(From, int) ([]To, error) |
		func(From) Iterator[To]
}

// expansion is the outcome of one expand call: either ready values, or an iterator to drain.
type expansion[To any] struct {
	values []To
	nested Iterator[To]
}

func toExpand[From, To any, FN ExpandFunc[From, To]](fn FN) func(From, int) (expansion[To], error) {
	switch fn := any(fn).(type) {
	case func(From) []To:
		return func(v From, _ int) (expansion[To], error) { return expansion[To]{values: fn(v)}, nil }
	case func(From, int) []To:
		return func(v From, index int) (expansion[To], error) { return expansion[To]{values: fn(v, index)}, nil }
	case func(From) ([]To, error):
		return func(v From, _ int) (expansion[To], error) {
			vs, err := fn(v)
			return expansion[To]{values: vs}, err
		}
	case func(From, int) ([]To, error):
		return func(v From, index int) (expansion[To], error) {
			vs, err := fn(v, index)
			return expansion[To]{values: vs}, err
		}
	case func(From) Iterator[To]:
		return func(v From, _ int) (expansion[To], error) { return expansion[To]{nested: fn(v)}, nil }
	default:
		panic("unreachable")
	}
}

// ObserverFunc lists the accepted shapes of a side effect callback.
type ObserverFunc[T any] interface {
	func(T) | func(T, int)
}

func toObserver[T any, FN ObserverFunc[T]](fn FN) func(T, int) {
	switch fn := any(fn).(type) {
	case func(T):
		return func(v T, _ int) { fn(v) }
	case func(T, int):
		return fn
	default:
		panic("unreachable")
	}
}

// ZipFunc lists the accepted shapes of the function that combines a pair.
type ZipFunc[A, B, C any] interface {
	func(A, B) C | func(A, B, int) C
}

func toZipper[A, B, C any, FN ZipFunc[A, B, C]](fn FN) func(A, B, int) C {
	switch fn := any(fn).(type) {
	case func(A, B) C:
		return func(a A, b B, _ int) C { return fn(a, b) }
	case func(A, B, int) C:
		return fn
	default:
		panic("unreachable")
	}
}
