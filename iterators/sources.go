package iterators

import (
	"context"
	"fmt"
	"io"
	"iter"

	"github.com/adamluzsi/streams/internal/errorkit"
)

func Slice[T any](slice []T) Iterator[T] {
	i := &sliceIter[T]{Slice: slice}
	i.cursor.stage = i
	return i
}

// Of is a variadic shorthand for Slice.
func Of[T any](vs ...T) Iterator[T] {
	return Slice(vs)
}

type sliceIter[T any] struct {
	cursor[T]
	Slice []T

	index int
}

func (i *sliceIter[T]) advance() (T, bool) {
	if len(i.Slice) <= i.index {
		var zero T
		return zero, false
	}
	v := i.Slice[i.index]
	i.index++
	return v, true
}

func (i *sliceIter[T]) Close() error {
	i.cursor.finish()
	return nil
}

func (i *sliceIter[T]) Err() error {
	return nil
}

// Empty iterator is used to represent nil result with Null object pattern
func Empty[T any]() Iterator[T] {
	return Error[T](nil)
}

// Error returns an Iterator that only can do is returning an Err and never have next element
func Error[T any](err error) Iterator[T] {
	return &errorIter[T]{err: err}
}

// Errorf behaves exactly like fmt.Errorf but returns the error wrapped as iterator
func Errorf[T any](format string, a ...any) Iterator[T] {
	return Error[T](fmt.Errorf(format, a...))
}

// errorIter iterator can be used for returning an error wrapped with iterator interface.
// This can be used when a stage or a source cannot be constructed.
type errorIter[T any] struct {
	err   error
	owned []io.Closer
}

// invalid is the result of a stage that cannot be built.
// It keeps the ownership of the upstreams, so closing it still releases them.
func invalid[T any](err error, upstreams ...io.Closer) Iterator[T] {
	return &errorIter[T]{err: err, owned: upstreams}
}

func (i *errorIter[T]) Close() error {
	var errs []error
	for _, c := range i.owned {
		errs = append(errs, c.Close())
	}
	return errorkit.Merge(errs...)
}

func (i *errorIter[T]) Err() error    { return i.err }
func (i *errorIter[T]) HasNext() bool { return false }
func (i *errorIter[T]) Remove() error { return ErrUnsupportedOperation }
func (i *errorIter[T]) Take() (T, error) {
	var zero T
	return zero, ErrExhausted
}

// Func enables you to create an iterator with a lambda expression.
// Func is very useful when you have to deal with non type safe iterators
// that you would like to map into a type safe variant.
// In case you need to close the currently mapped resource, use the OnClose callback option.
func Func[T any](next func() (v T, ok bool, err error), callbackOptions ...CallbackOption) Iterator[T] {
	i := &funcIter[T]{NextFn: next}
	i.cursor.stage = i
	return WithCallback[T](i, callbackOptions...)
}

type funcIter[T any] struct {
	cursor[T]
	NextFn func() (v T, ok bool, err error)

	err error
}

func (i *funcIter[T]) advance() (T, bool) {
	var zero T
	if i.err != nil {
		return zero, false
	}
	v, ok, err := i.NextFn()
	if err != nil {
		i.err = err
		return zero, false
	}
	if !ok {
		return zero, false
	}
	return v, true
}

func (i *funcIter[T]) Close() error {
	i.cursor.finish()
	return nil
}

func (i *funcIter[T]) Err() error {
	return i.err
}

// CallbackOption hooks extra behaviour into an iterator wrapped by WithCallback or built by Func.
type CallbackOption interface {
	configure(onClose *[]func() error)
}

type callbackFunc func(onClose *[]func() error)

func (fn callbackFunc) configure(onClose *[]func() error) { fn(onClose) }

// OnClose registers fn to run after the wrapped iterator was closed.
// The callbacks run in registration order, and only at the first Close.
func OnClose(fn func() error) CallbackOption {
	return callbackFunc(func(onClose *[]func() error) {
		*onClose = append(*onClose, fn)
	})
}

// WithCallback wraps i with the given callback options.
func WithCallback[T any](i Iterator[T], cs ...CallbackOption) Iterator[T] {
	if len(cs) == 0 {
		return i
	}
	ci := &callbackIterator[T]{Iterator: i}
	for _, opt := range cs {
		opt.configure(&ci.onClose)
	}
	return ci
}

type callbackIterator[T any] struct {
	Iterator[T]
	onClose []func() error
	closed  bool
	err     error
}

// Close closes the wrapped iterator and then runs the close callbacks.
// Later calls report the outcome of the first one.
func (i *callbackIterator[T]) Close() error {
	if i.closed {
		return i.err
	}
	i.closed = true
	errs := make([]error, 0, len(i.onClose)+1)
	errs = append(errs, i.Iterator.Close())
	for _, onClose := range i.onClose {
		errs = append(errs, onClose())
	}
	i.err = errorkit.Merge(errs...)
	return i.err
}

func (i *callbackIterator[T]) Remove() error { return Remove(i.Iterator) }

// Generate returns an infinite iterator, where each element is produced by calling fn.
// The indexed form receives the 0-based position of the element being produced.
func Generate[T any, FN func() T | func(int) T](fn FN) Iterator[T] {
	var gen func(int) T
	switch fn := any(fn).(type) {
	case func() T:
		gen = func(int) T { return fn() }
	case func(int) T:
		gen = fn
	}
	i := &generateIter[T]{Generate: gen}
	i.cursor.stage = i
	return i
}

type generateIter[T any] struct {
	cursor[T]
	Generate func(int) T

	index int
}

func (i *generateIter[T]) advance() (T, bool) {
	v := i.Generate(i.index)
	i.index++
	return v, true
}

func (i *generateIter[T]) Close() error {
	i.cursor.finish()
	return nil
}

func (i *generateIter[T]) Err() error { return nil }

// RepeatValue returns an infinite iterator that yields v over and over.
func RepeatValue[T any](v T) Iterator[T] {
	return Generate[T](func() T { return v })
}

// Iterate yields seed, then keeps applying next on the previous element,
// until next reports that there is no successor.
func Iterate[T any](seed T, next func(T) (T, bool)) Iterator[T] {
	i := &iterateIter[T]{Next: next, prev: seed}
	i.cursor.stage = i
	return i
}

type iterateIter[T any] struct {
	cursor[T]
	Next func(T) (T, bool)

	started bool
	prev    T
}

func (i *iterateIter[T]) advance() (T, bool) {
	if !i.started {
		i.started = true
		return i.prev, true
	}
	v, ok := i.Next(i.prev)
	if !ok {
		var zero T
		return zero, false
	}
	i.prev = v
	return v, true
}

func (i *iterateIter[T]) Close() error {
	i.cursor.finish()
	return nil
}

func (i *iterateIter[T]) Err() error { return nil }

// Range yields the integers from start (inclusive) to end (exclusive), moving by step.
// A negative step counts downwards. A zero step is an ErrInvalidArgument.
func Range(start, end, step int) Iterator[int] {
	if step == 0 {
		return Error[int](ErrInvalidArgument.F("range step must not be zero"))
	}
	within := func(n int) bool {
		if 0 < step {
			return n < end
		}
		return end < n
	}
	if !within(start) {
		return Empty[int]()
	}
	return Iterate(start, func(n int) (int, bool) {
		return n + step, within(n + step)
	})
}

// FromSeq converts a range-over-func sequence into a pull Iterator.
// Close must be called when the iterator is abandoned before exhaustion,
// so the sequence's pull state can be released.
func FromSeq[T any](seq iter.Seq[T]) Iterator[T] {
	next, stop := iter.Pull(seq)
	i := &seqIter[T]{next: next, stop: stop}
	i.cursor.stage = i
	return i
}

type seqIter[T any] struct {
	cursor[T]
	next func() (T, bool)
	stop func()
}

func (i *seqIter[T]) advance() (T, bool) {
	return i.next()
}

func (i *seqIter[T]) Close() error {
	i.cursor.finish()
	i.stop()
	return nil
}

func (i *seqIter[T]) Err() error { return nil }

// ToSeq converts an Iterator into a single-use range-over-func sequence.
// The iterator is closed when the range loop finishes or breaks.
// Check the iterator's Err after the loop to learn about failures.
func ToSeq[T any](i Iterator[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		defer i.Close()
		for i.HasNext() {
			v, err := i.Take()
			if err != nil {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// FromChan yields the values received from the channel until it is closed.
func FromChan[T any](ch <-chan T) Iterator[T] {
	return FromChanWithContext(context.Background(), ch)
}

// FromChanWithContext yields the values received from the channel
// until it is closed or the context is done.
// When the context ends the iteration, Err reports the context's error.
func FromChanWithContext[T any](ctx context.Context, ch <-chan T) Iterator[T] {
	i := &chanIter[T]{Context: ctx, Chan: ch}
	i.cursor.stage = i
	return i
}

type chanIter[T any] struct {
	cursor[T]
	Context context.Context
	Chan    <-chan T

	err error
}

func (i *chanIter[T]) advance() (T, bool) {
	var zero T
	select {
	case <-i.Context.Done():
		i.err = i.Context.Err()
		return zero, false
	case v, ok := <-i.Chan:
		if !ok {
			return zero, false
		}
		return v, true
	}
}

func (i *chanIter[T]) Close() error {
	i.cursor.finish()
	return nil
}

func (i *chanIter[T]) Err() error { return i.err }
