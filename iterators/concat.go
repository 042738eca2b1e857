package iterators

import (
	"github.com/adamluzsi/streams/internal/errorkit"
)

// Concat yields every element of first, then every element of each of the rest, in order.
// When an upstream ends with an error, the concatenation stops there and Err reports it.
func Concat[T any](first Iterator[T], rest ...Iterator[T]) Iterator[T] {
	ci := &concatIter[T]{Upstreams: append([]Iterator[T]{first}, rest...)}
	ci.cursor.stage = ci
	return ci
}

type concatIter[T any] struct {
	cursor[T]
	Upstreams []Iterator[T]

	current int
	err     error
}

func (i *concatIter[T]) advance() (T, bool) {
	for i.current < len(i.Upstreams) {
		up := i.Upstreams[i.current]
		if v, ok := pull(up, &i.err); ok {
			return v, true
		}
		if i.err != nil {
			break
		}
		if err := up.Err(); err != nil {
			i.err = err
			break
		}
		i.current++
	}
	var zero T
	return zero, false
}

func (i *concatIter[T]) Close() error {
	i.cursor.finish()
	var errs []error
	for _, up := range i.Upstreams {
		errs = append(errs, up.Close())
	}
	return errorkit.Merge(errs...)
}

func (i *concatIter[T]) Err() error {
	return i.err
}

// Zip pairs up the elements of a and b, and combines each pair with fn.
// The shorter side decides the length of the result:
// both sides must have a next element before any of them is taken,
// so the unpaired element of the longer side stays in its iterator.
//
// The output type has to be named explicitly:
//
//	iterators.Zip[string](names, ages, func(name string, age int) string { ... })
func Zip[C any, A any, B any, FN ZipFunc[A, B, C]](a Iterator[A], b Iterator[B], fn FN) Iterator[C] {
	zi := &zipIter[A, B, C]{Left: a, Right: b, Zip: toZipper[A, B, C](fn)}
	zi.cursor.stage = zi
	return zi
}

type zipIter[A, B, C any] struct {
	cursor[C]
	Left  Iterator[A]
	Right Iterator[B]
	Zip   func(A, B, int) C

	index int
	err   error
}

func (i *zipIter[A, B, C]) advance() (C, bool) {
	var zero C
	if !i.Left.HasNext() || !i.Right.HasNext() {
		return zero, false
	}
	a, err := i.Left.Take()
	if err != nil {
		i.err = err
		return zero, false
	}
	b, err := i.Right.Take()
	if err != nil {
		i.err = err
		return zero, false
	}
	index := i.index
	i.index++
	return i.Zip(a, b, index), true
}

func (i *zipIter[A, B, C]) Close() error {
	i.cursor.finish()
	return errorkit.Merge(i.Left.Close(), i.Right.Close())
}

func (i *zipIter[A, B, C]) Err() error {
	return errorkit.Merge(i.err, i.Left.Err(), i.Right.Err())
}
