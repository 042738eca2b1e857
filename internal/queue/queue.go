// Package queue is a typed FIFO used by the stages that hold pending output.
package queue

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// Queue is a first-in-first-out queue of T values.
// The zero value is not usable, use New.
type Queue[T any] struct {
	q *linkedlistqueue.Queue
}

func New[T any]() *Queue[T] {
	return &Queue[T]{q: linkedlistqueue.New()}
}

func (q *Queue[T]) Enqueue(vs ...T) {
	for _, v := range vs {
		q.q.Enqueue(v)
	}
}

func (q *Queue[T]) Dequeue() (T, bool) {
	v, ok := q.q.Dequeue()
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

func (q *Queue[T]) Peek() (T, bool) {
	v, ok := q.q.Peek()
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

func (q *Queue[T]) Empty() bool { return q.q.Empty() }

func (q *Queue[T]) Len() int { return q.q.Size() }

func (q *Queue[T]) Clear() { q.q.Clear() }

// Each calls fn with every queued value, oldest first.
func (q *Queue[T]) Each(fn func(T)) {
	it := q.q.Iterator()
	for it.Next() {
		fn(it.Value().(T))
	}
}
