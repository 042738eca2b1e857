package iterators_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/Pallinder/go-randomdata"
	"github.com/adamluzsi/testcase"
	"github.com/stretchr/testify/require"

	"github.com/adamluzsi/streams/iterators"
)

func TestCollect(t *testing.T) {
	t.Run("every element is collected and the iterator is closed", func(t *testing.T) {
		source := newPullCounter("a", "b")
		vs, err := iterators.Collect[string](source)
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b"}, vs)
		require.True(t, source.Closed)
	})

	t.Run("empty iterator gives an empty, non nil slice", func(t *testing.T) {
		vs, err := iterators.Collect(iterators.Empty[string]())
		require.NoError(t, err)
		require.NotNil(t, vs)
		require.Empty(t, vs)
	})

	t.Run("err is returned", func(t *testing.T) {
		expected := errors.New("boom")
		vs, err := iterators.Collect(iterators.Error[int](expected))
		require.Equal(t, expected, err)
		require.Empty(t, vs)
	})
}

func TestTerminals_sharedErrorCases(t *testing.T) {
	type Terminal func(iterators.Iterator[string]) error
	for name, terminal := range map[string]Terminal{
		"Collect": func(i iterators.Iterator[string]) error { _, err := iterators.Collect(i); return err },
		"Count":   func(i iterators.Iterator[string]) error { _, err := iterators.Count(i); return err },
		"First":   func(i iterators.Iterator[string]) error { _, _, err := iterators.First(i); return err },
		"Last":    func(i iterators.Iterator[string]) error { _, _, err := iterators.Last(i); return err },
		"TakeN":   func(i iterators.Iterator[string]) error { _, err := iterators.TakeN(i, 5); return err },
		"ForEach": func(i iterators.Iterator[string]) error { return iterators.ForEach(i, func(string) {}) },
		"Reduce": func(i iterators.Iterator[string]) error {
			_, err := iterators.Reduce(i, "", func(acc, v string) string { return acc + v })
			return err
		},
	} {
		terminal := terminal
		t.Run(name, func(t *testing.T) {
			expected := errors.New(randomdata.SillyName())

			t.Run("Closing", func(t *testing.T) {
				i := iterators.Stub(iterators.Of("close"))
				i.StubClose = func() error { return expected }
				require.Equal(t, expected, terminal(i))
			})

			t.Run("Err", func(t *testing.T) {
				i := iterators.Stub(iterators.Of("err"))
				i.StubErr = func() error { return expected }
				require.Equal(t, expected, terminal(i))
			})

			t.Run("Take", func(t *testing.T) {
				i := iterators.Stub(iterators.Of("take"))
				i.StubTake = func() (string, error) { return "", expected }
				require.Equal(t, expected, terminal(i))
			})

			t.Run("Err takes precedence over Close", func(t *testing.T) {
				i := iterators.Stub(iterators.Of("both"))
				i.StubErr = func() error { return expected }
				i.StubClose = func() error { return errors.New("close") }
				require.Equal(t, expected, terminal(i))
			})
		})
	}
}

func TestCount(t *testing.T) {
	n, err := iterators.Count(iterators.Range(0, 42, 1))
	require.NoError(t, err)
	require.Equal(t, 42, n)
}

func TestFirstAndLast(t *testing.T) {
	s := testcase.NewSpec(t)
	s.Parallel()

	s.Let(`values`, func(t *testcase.T) interface{} {
		return []string{randomdata.SillyName(), randomdata.SillyName(), randomdata.SillyName()}
	})
	values := func(t *testcase.T) []string { return t.I(`values`).([]string) }

	s.Then(`First returns the first element`, func(t *testcase.T) {
		v, found, err := iterators.First(iterators.Slice(values(t)))
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, values(t)[0], v)
	})

	s.Then(`Last returns the last element`, func(t *testcase.T) {
		v, found, err := iterators.Last(iterators.Slice(values(t)))
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, values(t)[2], v)
	})

	s.Then(`First closes without consuming the rest`, func(t *testcase.T) {
		source := newPullCounter(values(t)...)
		_, _, err := iterators.First[string](source)
		require.NoError(t, err)
		require.Equal(t, 1, source.Pulls)
		require.True(t, source.Closed)
	})

	s.When(`the iterator is empty`, func(s *testcase.Spec) {
		s.Let(`values`, func(t *testcase.T) interface{} { return []string{} })

		s.Then(`nothing is found`, func(t *testcase.T) {
			_, found, err := iterators.First(iterators.Slice(values(t)))
			require.NoError(t, err)
			require.False(t, found)
			_, found, err = iterators.Last(iterators.Slice(values(t)))
			require.NoError(t, err)
			require.False(t, found)
		})
	})
}

func TestTakeN(t *testing.T) {
	source := newPullCounter(1, 2, 3, 4)
	vs, err := iterators.TakeN[int](source, 2)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, vs)
	require.Equal(t, 2, source.Pulls)
	require.True(t, source.Closed)

	vs, err = iterators.TakeN(iterators.Of(1), 3)
	require.NoError(t, err)
	require.Equal(t, []int{1}, vs)
}

func TestForEach(t *testing.T) {
	s := testcase.NewSpec(t)
	s.Parallel()

	s.Then(`fn is called with every element`, func(t *testcase.T) {
		var got []int
		require.NoError(t, iterators.ForEach(iterators.Of(1, 2, 3), func(n int) { got = append(got, n) }))
		require.Equal(t, []int{1, 2, 3}, got)
	})

	s.Then(`Break stops the iteration without an error`, func(t *testcase.T) {
		source := newPullCounter(1, 2, 3)
		var got []int
		err := iterators.ForEach[int](source, func(n int) error {
			got = append(got, n)
			if n == 2 {
				return iterators.Break
			}
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, []int{1, 2}, got)
		require.True(t, source.Closed)
	})

	s.Then(`the error of fn is returned`, func(t *testcase.T) {
		expected := errors.New("boom")
		err := iterators.ForEach(iterators.Of(1, 2, 3), func(int) error { return expected })
		require.Equal(t, expected, err)
	})
}

func TestReduce(t *testing.T) {
	t.Run("results are accumulated", func(t *testing.T) {
		sum, err := iterators.Reduce(iterators.Of(1, 2, 3), 10, func(acc, n int) int { return acc + n })
		require.NoError(t, err)
		require.Equal(t, 16, sum)
	})

	t.Run("the result type can differ from the element type", func(t *testing.T) {
		out, err := iterators.Reduce(iterators.Of(1, 2, 3), "", func(acc string, n int) (string, error) {
			return acc + strconv.Itoa(n), nil
		})
		require.NoError(t, err)
		require.Equal(t, "123", out)
	})

	t.Run("the error of the reducer is returned", func(t *testing.T) {
		expected := errors.New("boom")
		_, err := iterators.Reduce(iterators.Of(1, 2, 3), 0, func(int, int) (int, error) { return 0, expected })
		require.Equal(t, expected, err)
	})
}
