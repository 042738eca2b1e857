package iterators

// Skip discards the first n elements, then passes the rest through.
// When n is not positive, nothing is skipped.
func Skip[T any](i Iterator[T], n int) Iterator[T] {
	si := &skipIter[T]{Upstream: i, Skip: n}
	si.cursor.stage = si
	return si
}

type skipIter[T any] struct {
	cursor[T]
	Upstream Iterator[T]
	Skip     int

	skipped bool
	err     error
}

func (i *skipIter[T]) advance() (T, bool) {
	if !i.skipped {
		i.skipped = true
		for n := 0; n < i.Skip; n++ {
			if v, ok := pull(i.Upstream, &i.err); !ok {
				return v, false
			}
		}
	}
	return pull(i.Upstream, &i.err)
}

func (i *skipIter[T]) Close() error {
	i.cursor.finish()
	return i.Upstream.Close()
}

func (i *skipIter[T]) Err() error {
	return errOf(i.err, i.Upstream)
}

// Limit passes through at most n elements.
// Once n elements were delivered, the upstream is not asked again,
// which makes Limit the usual way to bound an infinite source.
// A negative n is an ErrInvalidArgument.
func Limit[T any](i Iterator[T], n int) Iterator[T] {
	if n < 0 {
		return invalid[T](ErrInvalidArgument.F("limit must not be negative, got %d", n), i)
	}
	li := &limitIter[T]{Upstream: i, Limit: n}
	li.cursor.stage = li
	return li
}

type limitIter[T any] struct {
	cursor[T]
	Upstream Iterator[T]
	Limit    int

	index int
	err   error
}

func (i *limitIter[T]) advance() (T, bool) {
	if !(i.index < i.Limit) {
		var zero T
		return zero, false
	}
	v, ok := pull(i.Upstream, &i.err)
	if ok {
		i.index++
	}
	return v, ok
}

func (i *limitIter[T]) Close() error {
	i.cursor.finish()
	return i.Upstream.Close()
}

func (i *limitIter[T]) Err() error {
	return errOf(i.err, i.Upstream)
}
