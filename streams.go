// Package streams is the fluent surface over the iterators package.
//
// A Stream owns a chain of lazy iterator stages.
// Every composition call moves that chain into the Stream it returns,
// so a Stream that was derived from can not be consumed or derived from again:
//
//	s := streams.Of(1, 2, 3, 4)
//	evens := s.Filter(func(n int) bool { return n%2 == 0 })
//	s.HasNext() // false, s has been moved into evens
//	evens.Collect() // [2 4]
//
// Functions that change the element type, like Map or Zip,
// are package level functions, because Go methods can not have type parameters.
package streams

import (
	"context"
	"iter"

	"github.com/adamluzsi/streams/internal/logger"
	"github.com/adamluzsi/streams/iterators"
)

type Stream[T any] struct {
	it    iterators.Iterator[T]
	moved bool
}

// From takes the ownership of the iterator.
func From[T any](it iterators.Iterator[T]) *Stream[T] {
	return &Stream[T]{it: it}
}

func Of[T any](vs ...T) *Stream[T] {
	return From(iterators.Slice(vs))
}

func FromSlice[T any](vs []T) *Stream[T] {
	return From(iterators.Slice(vs))
}

func FromSeq[T any](seq iter.Seq[T]) *Stream[T] {
	return From(iterators.FromSeq(seq))
}

func FromChan[T any](ch <-chan T) *Stream[T] {
	return From(iterators.FromChan(ch))
}

// Generate is an infinite stream of the values produced by fn.
func Generate[T any](fn func() T) *Stream[T] {
	return From(iterators.Generate[T](fn))
}

// RepeatValue is an infinite stream of v.
func RepeatValue[T any](v T) *Stream[T] {
	return From(iterators.RepeatValue(v))
}

func Iterate[T any](seed T, next func(T) (T, bool)) *Stream[T] {
	return From(iterators.Iterate(seed, next))
}

func Range(start, end, step int) *Stream[int] {
	return From(iterators.Range(start, end, step))
}

// Product is the stream of the cartesian product records, see iterators.Product.
func Product[K comparable, V any](dims ...iterators.Dimension[K, V]) *Stream[map[K]V] {
	return From(iterators.Product(dims...))
}

func Empty[T any]() *Stream[T] {
	return From(iterators.Empty[T]())
}

// Must panics if the stream is already in a failed state, such as after an invalid stage construction.
func Must[T any](s *Stream[T]) *Stream[T] {
	if err := s.Err(); err != nil {
		panic(err)
	}
	return s
}

// release hands over the owned chain, and marks the stream as moved.
func (s *Stream[T]) release() (iterators.Iterator[T], error) {
	if s.moved {
		logger.Warn(context.Background(), "stream is reused after it was moved into a derived stream")
		return nil, ErrStreamMoved
	}
	it := s.it
	s.it = nil
	s.moved = true
	return it, nil
}

func derive[T, U any](s *Stream[T], stage func(iterators.Iterator[T]) iterators.Iterator[U]) *Stream[U] {
	it, err := s.release()
	if err != nil {
		return From(iterators.Error[U](err))
	}
	return From(stage(it))
}

func (s *Stream[T]) Filter(fn func(T) bool) *Stream[T] {
	return derive(s, func(it iterators.Iterator[T]) iterators.Iterator[T] { return iterators.Filter(it, fn) })
}

func (s *Stream[T]) FilterWithIndex(fn func(T, int) bool) *Stream[T] {
	return derive(s, func(it iterators.Iterator[T]) iterators.Iterator[T] { return iterators.Filter(it, fn) })
}

// Until ends the stream at the first element matching fn. The matching element is dropped.
func (s *Stream[T]) Until(fn func(T) bool) *Stream[T] {
	return derive(s, func(it iterators.Iterator[T]) iterators.Iterator[T] { return iterators.Until(it, fn) })
}

func (s *Stream[T]) UntilWithIndex(fn func(T, int) bool) *Stream[T] {
	return derive(s, func(it iterators.Iterator[T]) iterators.Iterator[T] { return iterators.Until(it, fn) })
}

func (s *Stream[T]) Decide(fn func(T) iterators.Decision) *Stream[T] {
	return derive(s, func(it iterators.Iterator[T]) iterators.Iterator[T] { return iterators.Decide(it, fn) })
}

func (s *Stream[T]) Tap(fn func(T)) *Stream[T] {
	return derive(s, func(it iterators.Iterator[T]) iterators.Iterator[T] { return iterators.Tap(it, fn) })
}

func (s *Stream[T]) TapWithIndex(fn func(T, int)) *Stream[T] {
	return derive(s, func(it iterators.Iterator[T]) iterators.Iterator[T] { return iterators.Tap(it, fn) })
}

func (s *Stream[T]) TapEvery(n int, fn func(T)) *Stream[T] {
	return derive(s, func(it iterators.Iterator[T]) iterators.Iterator[T] { return iterators.TapEvery(it, n, fn) })
}

func (s *Stream[T]) TapEveryWithIndex(n int, fn func(T, int)) *Stream[T] {
	return derive(s, func(it iterators.Iterator[T]) iterators.Iterator[T] { return iterators.TapEvery(it, n, fn) })
}

func (s *Stream[T]) Skip(n int) *Stream[T] {
	return derive(s, func(it iterators.Iterator[T]) iterators.Iterator[T] { return iterators.Skip(it, n) })
}

func (s *Stream[T]) Limit(n int) *Stream[T] {
	return derive(s, func(it iterators.Iterator[T]) iterators.Iterator[T] { return iterators.Limit(it, n) })
}

func (s *Stream[T]) Repeat(count int) *Stream[T] {
	return derive(s, func(it iterators.Iterator[T]) iterators.Iterator[T] { return iterators.Repeat(it, count) })
}

func (s *Stream[T]) Cycle() *Stream[T] {
	return derive(s, func(it iterators.Iterator[T]) iterators.Iterator[T] { return iterators.Cycle(it) })
}

// Concat moves this and every other stream into a new one that yields them one after the other.
// If any of them is already moved, the result fails with ErrStreamMoved.
func (s *Stream[T]) Concat(others ...*Stream[T]) *Stream[T] {
	first, err := s.release()
	if err != nil {
		return From(iterators.Error[T](err))
	}
	rest := make([]iterators.Iterator[T], 0, len(others))
	for _, o := range others {
		it, err := o.release()
		if err != nil {
			_ = first.Close()
			for _, r := range rest {
				_ = r.Close()
			}
			return From(iterators.Error[T](err))
		}
		rest = append(rest, it)
	}
	return From(iterators.Concat(first, rest...))
}

// Synchronized makes the stream safe to consume from multiple goroutines.
// Use Next to check and take in one step.
func (s *Stream[T]) Synchronized() *Stream[T] {
	return derive(s, func(it iterators.Iterator[T]) iterators.Iterator[T] { return iterators.WithConcurrentAccess(it) })
}

func Map[T, U any](s *Stream[T], fn func(T) U) *Stream[U] {
	return derive(s, func(it iterators.Iterator[T]) iterators.Iterator[U] { return iterators.Map[U](it, fn) })
}

func MapWithIndex[T, U any](s *Stream[T], fn func(T, int) U) *Stream[U] {
	return derive(s, func(it iterators.Iterator[T]) iterators.Iterator[U] { return iterators.Map[U](it, fn) })
}

func FlatMap[T, U any](s *Stream[T], fn func(T) []U) *Stream[U] {
	return derive(s, func(it iterators.Iterator[T]) iterators.Iterator[U] { return iterators.FlatMap[U](it, fn) })
}

func FlatMapWithIndex[T, U any](s *Stream[T], fn func(T, int) []U) *Stream[U] {
	return derive(s, func(it iterators.Iterator[T]) iterators.Iterator[U] { return iterators.FlatMap[U](it, fn) })
}

// Zip moves both streams into one that pairs up their elements. The shorter stream decides the length.
func Zip[A, B, C any](a *Stream[A], b *Stream[B], fn func(A, B) C) *Stream[C] {
	return zip(a, b, func(left iterators.Iterator[A], right iterators.Iterator[B]) iterators.Iterator[C] {
		return iterators.Zip[C](left, right, fn)
	})
}

func ZipWithIndex[A, B, C any](a *Stream[A], b *Stream[B], fn func(A, B, int) C) *Stream[C] {
	return zip(a, b, func(left iterators.Iterator[A], right iterators.Iterator[B]) iterators.Iterator[C] {
		return iterators.Zip[C](left, right, fn)
	})
}

func zip[A, B, C any](a *Stream[A], b *Stream[B], stage func(iterators.Iterator[A], iterators.Iterator[B]) iterators.Iterator[C]) *Stream[C] {
	left, err := a.release()
	if err != nil {
		return From(iterators.Error[C](err))
	}
	right, err := b.release()
	if err != nil {
		_ = left.Close()
		return From(iterators.Error[C](err))
	}
	return From(stage(left, right))
}

// Collate groups the elements into windows, see iterators.Collate for the options.
func Collate[T any](s *Stream[T], size int, opts ...iterators.CollateOption) *Stream[[]T] {
	return derive(s, func(it iterators.Iterator[T]) iterators.Iterator[[]T] { return iterators.Collate(it, size, opts...) })
}

func (s *Stream[T]) HasNext() bool {
	if s.moved {
		return false
	}
	return s.it.HasNext()
}

func (s *Stream[T]) Take() (T, error) {
	if s.moved {
		var zero T
		return zero, ErrStreamMoved
	}
	return s.it.Take()
}

func (s *Stream[T]) Err() error {
	if s.moved {
		return ErrStreamMoved
	}
	return s.it.Err()
}

// Close releases the chain. Closing a moved stream is a no-op, its chain is closed through the new owner.
func (s *Stream[T]) Close() error {
	if s.moved {
		return nil
	}
	return s.it.Close()
}

func (s *Stream[T]) Remove() error {
	return iterators.ErrUnsupportedOperation
}

// Next checks and takes the next element in one step.
// On a Synchronized stream the two happen under the same lock.
func (s *Stream[T]) Next() (v T, ok bool, err error) {
	if s.moved {
		return v, false, ErrStreamMoved
	}
	if c, isSync := s.it.(*iterators.ConcurrentAccessIterator[T]); isSync {
		return c.Next()
	}
	if !s.it.HasNext() {
		return v, false, s.it.Err()
	}
	v, err = s.it.Take()
	return v, err == nil, err
}

// Seq is the range-over-func form of the stream. The stream is closed when the loop ends.
func (s *Stream[T]) Seq() iter.Seq[T] {
	return iterators.ToSeq[T](s)
}

func (s *Stream[T]) Collect() ([]T, error) {
	return iterators.Collect[T](s)
}

func (s *Stream[T]) Count() (int, error) {
	return iterators.Count[T](s)
}

func (s *Stream[T]) First() (T, bool, error) {
	return iterators.First[T](s)
}

// ForEach calls fn with every element. Returning iterators.Break from fn stops the iteration.
func (s *Stream[T]) ForEach(fn func(T) error) error {
	return iterators.ForEach[T](s, fn)
}

func Reduce[T, R any](s *Stream[T], initial R, fn func(R, T) R) (R, error) {
	return iterators.Reduce[R, T](s, initial, fn)
}
