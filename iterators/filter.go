package iterators

// Filter keeps the elements that satisfy the predicate, in their original order.
//
//	iterators.Filter(i, func(n int) bool { return n%2 == 0 })
func Filter[T any, FN PredicateFunc[T]](i Iterator[T], fn FN) Iterator[T] {
	fi := &filterIter[T]{Upstream: i, Predicate: toPredicate[T](fn)}
	fi.cursor.stage = fi
	return fi
}

type filterIter[T any] struct {
	cursor[T]
	Upstream  Iterator[T]
	Predicate func(T, int) bool

	index int
	err   error
}

func (i *filterIter[T]) advance() (T, bool) {
	for {
		v, ok := pull(i.Upstream, &i.err)
		if !ok {
			return v, false
		}
		index := i.index
		i.index++
		if i.Predicate(v, index) {
			return v, true
		}
	}
}

func (i *filterIter[T]) Close() error {
	i.cursor.finish()
	return i.Upstream.Close()
}

func (i *filterIter[T]) Err() error {
	return errOf(i.err, i.Upstream)
}

// Until passes the elements through until the first one that satisfies the predicate.
// That element is dropped, and the upstream is never asked again.
func Until[T any, FN PredicateFunc[T]](i Iterator[T], fn FN) Iterator[T] {
	ui := &untilIter[T]{Upstream: i, Predicate: toPredicate[T](fn)}
	ui.cursor.stage = ui
	return ui
}

type untilIter[T any] struct {
	cursor[T]
	Upstream  Iterator[T]
	Predicate func(T, int) bool

	index int
	err   error
}

func (i *untilIter[T]) advance() (T, bool) {
	v, ok := pull(i.Upstream, &i.err)
	if !ok {
		return v, false
	}
	index := i.index
	i.index++
	if i.Predicate(v, index) {
		var zero T
		return zero, false
	}
	return v, true
}

func (i *untilIter[T]) Close() error {
	i.cursor.finish()
	return i.Upstream.Close()
}

func (i *untilIter[T]) Err() error {
	return errOf(i.err, i.Upstream)
}
