package iterators

// Tap calls the observer with every element at the moment it is taken.
// The elements pass through unchanged.
func Tap[T any, FN ObserverFunc[T]](i Iterator[T], fn FN) Iterator[T] {
	return TapEvery(i, 1, fn)
}

// TapEvery calls the observer with every n-th element taken,
// so with n=2 the elements on the positions 1, 3, 5 and so on are observed.
// The indexed observer receives that 0-based position.
// n must be at least 1, otherwise the result is an iterator which fails with ErrInvalidArgument.
func TapEvery[T any, FN ObserverFunc[T]](i Iterator[T], n int, fn FN) Iterator[T] {
	if n < 1 {
		return invalid[T](ErrInvalidArgument.F("tap interval must be at least 1, got %d", n), i)
	}
	ti := &tapIter[T]{Upstream: i, Every: n, Observer: toObserver[T](fn)}
	ti.cursor.stage = ti
	return ti
}

type tapIter[T any] struct {
	cursor[T]
	Upstream Iterator[T]
	Every    int
	Observer func(T, int)

	index int
	err   error
}

func (i *tapIter[T]) advance() (T, bool) {
	return pull(i.Upstream, &i.err)
}

func (i *tapIter[T]) Take() (T, error) {
	v, err := i.cursor.Take()
	if err != nil {
		return v, err
	}
	position := i.index
	i.index++
	if (position+1)%i.Every == 0 {
		i.Observer(v, position)
	}
	return v, nil
}

func (i *tapIter[T]) Close() error {
	i.cursor.finish()
	return i.Upstream.Close()
}

func (i *tapIter[T]) Err() error {
	return errOf(i.err, i.Upstream)
}
