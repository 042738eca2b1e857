// Package iterators provide lazy, pull based iterator stages.
//
// # Summary
//
// An Iterator's goal is to decouple the origin of the data from the consumer who uses that data.
// Every stage in this package wraps exactly one upstream Iterator (two in case of Zip and Concat),
// and produces its own elements on demand, one at a time, without materialising the intermediate results.
// The consumer asks the outermost stage whether it has a next element,
// and that question travels upstream until a source answers it.
//
// An Iterator represents an iterable list of element,
// which length is not known until it is fully iterated, thus can range from zero to infinity.
// Sources like Generate, RepeatValue or Cycle never end on their own,
// so they must be bounded by a Limit or Until stage before they are consumed.
//
// Iterators are single pass and not safe for concurrent use.
// Use WithConcurrentAccess when more than one goroutine consumes the same iterator.
//
// # Resources
//
// https://en.wikipedia.org/wiki/Iterator_pattern
// https://en.wikipedia.org/wiki/Pipeline_(software)
package iterators

import (
	"io"
)

// Iterator is the pull contract that every stage and source satisfies.
//
// HasNext reports whether Take can return an element.
// Calling HasNext repeatedly without Take in between will not advance the iterator.
// Once HasNext reported false, it keeps reporting false.
//
// Take returns the element HasNext has loaded, and moves the iterator to the next position.
// When no element is available, Take returns ErrExhausted.
//
// Err tells the cause when the iterator ended because of a failure,
// and it is nil when the iterator simply ran out of elements.
//
// Close releases the resources held by the iterator and by every upstream it owns.
type Iterator[T any] interface {
	io.Closer
	Err() error
	HasNext() bool
	Take() (T, error)
}

// Remover is implemented by every iterator of this package.
// Removal is never supported, Remove always returns ErrUnsupportedOperation.
type Remover interface {
	Remove() error
}

// Remove attempts to delete the last taken element through the iterator.
func Remove[T any](i Iterator[T]) error {
	if r, ok := i.(Remover); ok {
		return r.Remove()
	}
	return ErrUnsupportedOperation
}

// stage is the single capability a stage needs to provide.
// advance computes the next element, or reports with false that there is none left.
type stage[T any] interface {
	advance() (T, bool)
}

// cursor is the one element lookahead buffer shared by every stage.
// Once exhausted, it never asks its stage again.
type cursor[T any] struct {
	stage     stage[T]
	current   T
	loaded    bool
	exhausted bool
}

func (c *cursor[T]) HasNext() bool {
	if c.exhausted {
		return false
	}
	if !c.loaded {
		v, ok := c.stage.advance()
		if !ok {
			c.exhausted = true
			return false
		}
		c.current = v
		c.loaded = true
	}
	return true
}

func (c *cursor[T]) Take() (T, error) {
	var zero T
	if !c.HasNext() {
		return zero, ErrExhausted
	}
	v := c.current
	c.current = zero
	c.loaded = false
	return v, nil
}

func (c *cursor[T]) Remove() error { return ErrUnsupportedOperation }

// finish drops the buffered element and makes the cursor permanently exhausted.
func (c *cursor[T]) finish() {
	var zero T
	c.current = zero
	c.loaded = false
	c.exhausted = true
}

// pull takes the next element from an upstream iterator.
// A Take failure after a positive HasNext is recorded into errp.
func pull[T any](up Iterator[T], errp *error) (T, bool) {
	var zero T
	if !up.HasNext() {
		return zero, false
	}
	v, err := up.Take()
	if err != nil {
		*errp = err
		return zero, false
	}
	return v, true
}

func errOf[T any](err error, up Iterator[T]) error {
	if err != nil {
		return err
	}
	return up.Err()
}
