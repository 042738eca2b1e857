package iterators

// Stub wraps an iterator, so its behaviour can be overridden method by method in tests.
// Every stub defaults to the wrapped iterator's method.
func Stub[T any](i Iterator[T]) *StubIter[T] {
	return &StubIter[T]{
		Iterator:    i,
		StubHasNext: i.HasNext,
		StubTake:    i.Take,
		StubErr:     i.Err,
		StubClose:   i.Close,
	}
}

type StubIter[T any] struct {
	Iterator    Iterator[T]
	StubHasNext func() bool
	StubTake    func() (T, error)
	StubErr     func() error
	StubClose   func() error
}

// wrapper

func (m *StubIter[T]) HasNext() bool {
	return m.StubHasNext()
}

func (m *StubIter[T]) Take() (T, error) {
	return m.StubTake()
}

func (m *StubIter[T]) Err() error {
	return m.StubErr()
}

func (m *StubIter[T]) Close() error {
	return m.StubClose()
}

// Resetting stubs

func (m *StubIter[T]) ResetHasNext() {
	m.StubHasNext = m.Iterator.HasNext
}

func (m *StubIter[T]) ResetTake() {
	m.StubTake = m.Iterator.Take
}

func (m *StubIter[T]) ResetErr() {
	m.StubErr = m.Iterator.Err
}

func (m *StubIter[T]) ResetClose() {
	m.StubClose = m.Iterator.Close
}
