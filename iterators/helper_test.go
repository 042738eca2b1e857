package iterators_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adamluzsi/streams/iterators"
)

// pullCounter is a source that remembers how many times it was asked for an element.
type pullCounter[T any] struct {
	iterators.Iterator[T]
	Pulls  int
	Closed bool
}

func newPullCounter[T any](vs ...T) *pullCounter[T] {
	pc := &pullCounter[T]{}
	index := 0
	pc.Iterator = iterators.Func(func() (v T, ok bool, err error) {
		pc.Pulls++
		if len(vs) <= index {
			return v, false, nil
		}
		v = vs[index]
		index++
		return v, true, nil
	}, iterators.OnClose(func() error {
		pc.Closed = true
		return nil
	}))
	return pc
}

// brokenSource yields the given values, then fails with err.
func brokenSource[T any](err error, vs ...T) iterators.Iterator[T] {
	index := 0
	return iterators.Func(func() (v T, ok bool, _ error) {
		if len(vs) <= index {
			return v, false, err
		}
		v = vs[index]
		index++
		return v, true, nil
	})
}

// assertPullContract checks the behaviour every iterator must share:
// repeated HasNext calls do not advance, exhaustion is final,
// Take on an exhausted iterator fails with ErrExhausted, and removal is unsupported.
func assertPullContract[T any](tb testing.TB, i iterators.Iterator[T], expected []T) {
	tb.Helper()
	var got []T
	for n := 0; n < len(expected); n++ {
		require.True(tb, i.HasNext())
		require.True(tb, i.HasNext(), "HasNext is expected to be idempotent")
		v, err := i.Take()
		require.NoError(tb, err)
		got = append(got, v)
	}
	require.Equal(tb, expected, got)
	require.False(tb, i.HasNext())
	require.False(tb, i.HasNext(), "exhaustion is expected to be monotonic")
	_, err := i.Take()
	require.True(tb, errors.Is(err, iterators.ErrExhausted))
	require.False(tb, i.HasNext())
	require.True(tb, errors.Is(iterators.Remove(i), iterators.ErrUnsupportedOperation))
	require.NoError(tb, i.Err())
	require.NoError(tb, i.Close())
}
