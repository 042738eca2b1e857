package iterators

// Decision is the verdict of a Decide callback about the current element.
type Decision int

const (
	// Keep passes the element downstream.
	Keep Decision = iota
	// Reject drops the element and continues with the next one.
	Reject
	// Stop drops the element and ends the iteration.
	Stop
)

func (d Decision) String() string {
	switch d {
	case Keep:
		return "keep"
	case Reject:
		return "reject"
	case Stop:
		return "stop"
	default:
		return "unknown"
	}
}

// Decide combines filtering and stopping into one callback.
// An unknown Decision value is treated as Reject.
func Decide[T any, FN func(T) Decision | func(T, int) Decision](i Iterator[T], fn FN) Iterator[T] {
	var decide func(T, int) Decision
	switch fn := any(fn).(type) {
	case func(T) Decision:
		decide = func(v T, _ int) Decision { return fn(v) }
	case func(T, int) Decision:
		decide = fn
	}
	di := &decideIter[T]{Upstream: i, Decide: decide}
	di.cursor.stage = di
	return di
}

type decideIter[T any] struct {
	cursor[T]
	Upstream Iterator[T]
	Decide   func(T, int) Decision

	index int
	err   error
}

func (i *decideIter[T]) advance() (T, bool) {
	var zero T
	for {
		v, ok := pull(i.Upstream, &i.err)
		if !ok {
			return zero, false
		}
		index := i.index
		i.index++
		switch i.Decide(v, index) {
		case Keep:
			return v, true
		case Stop:
			return zero, false
		}
	}
}

func (i *decideIter[T]) Close() error {
	i.cursor.finish()
	return i.Upstream.Close()
}

func (i *decideIter[T]) Err() error {
	return errOf(i.err, i.Upstream)
}
