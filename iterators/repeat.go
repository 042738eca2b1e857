package iterators

// Repeat yields the elements of the upstream count times in a row.
//
// The first pass is read from the upstream and buffered,
// the following passes replay the buffer.
// This means the whole first pass is kept in memory,
// and an infinite upstream can never be repeated.
//
// With count 0 the result is empty and the upstream is not touched,
// with count 1 the result is the upstream itself.
// A negative count is an ErrInvalidArgument.
func Repeat[T any](i Iterator[T], count int) Iterator[T] {
	if count < 0 {
		return invalid[T](ErrInvalidArgument.F("repeat count must not be negative, got %d", count), i)
	}
	ri := &repeatIter[T]{Upstream: i, Count: count}
	ri.cursor.stage = ri
	return ri
}

// Cycle yields the elements of the upstream over and over again without an end.
// An empty upstream yields nothing.
// The same memory caveat applies as for Repeat.
func Cycle[T any](i Iterator[T]) Iterator[T] {
	ri := &repeatIter[T]{Upstream: i, Forever: true}
	ri.cursor.stage = ri
	return ri
}

type repeatIter[T any] struct {
	cursor[T]
	Upstream Iterator[T]
	Count    int
	Forever  bool

	buffer    []T
	replaying bool
	pass      int
	position  int
	err       error
}

func (i *repeatIter[T]) advance() (T, bool) {
	var zero T
	if !i.Forever && i.Count == 0 {
		return zero, false
	}
	if !i.replaying {
		if v, ok := pull(i.Upstream, &i.err); ok {
			i.buffer = append(i.buffer, Clone(v))
			return v, true
		}
		if i.err != nil || i.Upstream.Err() != nil {
			return zero, false
		}
		i.replaying = true
		i.pass = 1
		i.position = 0
	}
	if len(i.buffer) == 0 {
		return zero, false
	}
	if i.position == len(i.buffer) {
		i.pass++
		i.position = 0
	}
	if !i.Forever && i.Count <= i.pass {
		return zero, false
	}
	v := i.buffer[i.position]
	i.position++
	return Clone(v), true
}

func (i *repeatIter[T]) Close() error {
	i.cursor.finish()
	i.buffer = nil
	return i.Upstream.Close()
}

func (i *repeatIter[T]) Err() error {
	return errOf(i.err, i.Upstream)
}
