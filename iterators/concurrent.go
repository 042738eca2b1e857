package iterators

import (
	"sync"
)

// WithConcurrentAccess allows you to convert any iterator into one that is safe to use from concurrent access.
// Every method is serialised under the same mutex.
// The caveat with this, that HasNext followed by Take is still two separate steps,
// so a competing goroutine can take the element in between.
// Use Next to check and take under a single lock acquisition.
func WithConcurrentAccess[T any](i Iterator[T]) *ConcurrentAccessIterator[T] {
	return &ConcurrentAccessIterator[T]{Iterator: i}
}

type ConcurrentAccessIterator[T any] struct {
	Iterator Iterator[T]
	mutex    sync.Mutex
}

// Next returns the next element if there is any.
// When ok is false, err tells whether the iterator ended because of a failure.
func (i *ConcurrentAccessIterator[T]) Next() (v T, ok bool, err error) {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	if !i.Iterator.HasNext() {
		return v, false, i.Iterator.Err()
	}
	v, err = i.Iterator.Take()
	if err != nil {
		return v, false, err
	}
	return v, true, nil
}

func (i *ConcurrentAccessIterator[T]) HasNext() bool {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	return i.Iterator.HasNext()
}

func (i *ConcurrentAccessIterator[T]) Take() (T, error) {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	return i.Iterator.Take()
}

func (i *ConcurrentAccessIterator[T]) Err() error {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	return i.Iterator.Err()
}

func (i *ConcurrentAccessIterator[T]) Close() error {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	return i.Iterator.Close()
}

func (i *ConcurrentAccessIterator[T]) Remove() error {
	return Remove(i.Iterator)
}
