package streams_test

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/adamluzsi/testcase"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/adamluzsi/streams"
	"github.com/adamluzsi/streams/internal/logger"
	"github.com/adamluzsi/streams/iterators"
)

func TestStream(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Let(`stream`, func(t *testcase.T) interface{} {
		return streams.Of(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	})
	stream := func(t *testcase.T) *streams.Stream[int] { return t.I(`stream`).(*streams.Stream[int]) }

	s.Then(`stages are chained lazily`, func(t *testcase.T) {
		var tapped []int
		vs, err := stream(t).
			Filter(func(n int) bool { return n%2 == 0 }).
			Tap(func(n int) { tapped = append(tapped, n) }).
			Skip(1).
			Limit(3).
			Collect()
		require.NoError(t, err)
		require.Equal(t, []int{4, 6, 8}, vs)
		require.Equal(t, []int{2, 4, 6, 8}, tapped, `skip takes the discarded element through the tap stage`)
	})

	s.Then(`type changing stages are functions`, func(t *testcase.T) {
		words := streams.Map(stream(t).Limit(3), strconv.Itoa)
		vs, err := streams.FlatMap(words, func(s string) []string { return []string{s, s} }).Collect()
		require.NoError(t, err)
		require.Equal(t, []string{"1", "1", "2", "2", "3", "3"}, vs)
	})

	s.Then(`until drops the trigger`, func(t *testcase.T) {
		vs, err := streams.Of(1, 2, 3, 4, 5).Until(func(n int) bool { return n > 3 }).Collect()
		require.NoError(t, err)
		require.Equal(t, []int{1, 2, 3}, vs)
	})

	s.Then(`index aware variants see their own positions`, func(t *testcase.T) {
		var positions []int
		vs, err := streams.MapWithIndex(
			stream(t).
				FilterWithIndex(func(n, index int) bool { return index%3 == 0 }).
				TapEveryWithIndex(2, func(_ int, index int) { positions = append(positions, index) }),
			func(n, index int) string { return fmt.Sprintf("%d@%d", n, index) },
		).Collect()
		require.NoError(t, err)
		require.Equal(t, []string{"1@0", "4@1", "7@2", "10@3"}, vs)
		require.Equal(t, []int{1, 3}, positions)
	})

	s.Then(`until with index ends at the given position`, func(t *testcase.T) {
		n, err := stream(t).UntilWithIndex(func(_, index int) bool { return index == 4 }).Count()
		require.NoError(t, err)
		require.Equal(t, 4, n)
	})

	s.Then(`decide keeps, rejects and stops`, func(t *testcase.T) {
		vs, err := stream(t).Decide(func(n int) iterators.Decision {
			switch {
			case 6 < n:
				return iterators.Stop
			case n%2 == 1:
				return iterators.Reject
			default:
				return iterators.Keep
			}
		}).Collect()
		require.NoError(t, err)
		require.Equal(t, []int{2, 4, 6}, vs)
	})

	s.Then(`repeat, cycle and concat`, func(t *testcase.T) {
		vs, err := streams.Of("a", "b").Repeat(2).Collect()
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b", "a", "b"}, vs)

		n, err := streams.Of("a").Repeat(0).Count()
		require.NoError(t, err)
		require.Equal(t, 0, n)

		vs, err = streams.Of("x", "y").Cycle().Limit(5).Collect()
		require.NoError(t, err)
		require.Equal(t, []string{"x", "y", "x", "y", "x"}, vs)

		vs, err = streams.Of("a").Concat(streams.Of("b"), streams.Empty[string](), streams.Of("c")).Collect()
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b", "c"}, vs)
	})

	s.Then(`zip truncates to the shorter stream`, func(t *testcase.T) {
		vs, err := streams.Zip(streams.Of(1, 2, 3), streams.Of("a", "b"), func(n int, l string) string {
			return strconv.Itoa(n) + l
		}).Collect()
		require.NoError(t, err)
		require.Equal(t, []string{"1a", "2b"}, vs)

		vs, err = streams.ZipWithIndex(streams.Of(1, 2), streams.Of("a", "b"), func(n int, l string, index int) string {
			return strings.Repeat(l, index+1)
		}).Collect()
		require.NoError(t, err)
		require.Equal(t, []string{"a", "bb"}, vs)
	})

	s.Then(`collate windows`, func(t *testcase.T) {
		vs, err := streams.Collate(streams.Range(1, 10, 1), 4, iterators.CollateStep(1), iterators.KeepRemainder(false)).Collect()
		require.NoError(t, err)
		require.Equal(t, [][]int{{1, 2, 3, 4}, {2, 3, 4, 5}, {3, 4, 5, 6}, {4, 5, 6, 7}, {5, 6, 7, 8}, {6, 7, 8, 9}}, vs)
	})

	s.Then(`product records`, func(t *testcase.T) {
		vs, err := streams.Product(
			iterators.Dimension[string, any]{Key: "x", Values: []any{1, 2}},
			iterators.Dimension[string, any]{Key: "y", Values: []any{"a", "b"}},
		).Collect()
		require.NoError(t, err)
		require.Equal(t, []map[string]any{
			{"x": 1, "y": "a"}, {"x": 1, "y": "b"}, {"x": 2, "y": "a"}, {"x": 2, "y": "b"},
		}, vs)
	})

	s.Then(`the stream is usable as an iterator`, func(t *testcase.T) {
		var it iterators.Iterator[int] = stream(t).Limit(2)
		vs, err := iterators.Collect(it)
		require.NoError(t, err)
		require.Equal(t, []int{1, 2}, vs)
	})

	s.Then(`terminals`, func(t *testcase.T) {
		v, found, err := streams.Of(3, 2, 1).First()
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, 3, v)

		sum, err := streams.Reduce(stream(t), 0, func(acc, n int) int { return acc + n })
		require.NoError(t, err)
		require.Equal(t, 55, sum)

		var got []int
		require.NoError(t, streams.Of(1, 2, 3).ForEach(func(n int) error {
			if n == 3 {
				return iterators.Break
			}
			got = append(got, n)
			return nil
		}))
		require.Equal(t, []int{1, 2}, got)

		got = nil
		for n := range streams.Of(7, 8).Seq() {
			got = append(got, n)
		}
		require.Equal(t, []int{7, 8}, got)

		require.Equal(t, iterators.ErrUnsupportedOperation, streams.Of(1).Remove())
	})

	s.Describe(`ownership`, func(s *testcase.Spec) {
		s.Then(`a stream that was derived from is inert`, func(t *testcase.T) {
			buf := logger.Stub(t)
			og := stream(t)
			derived := og.Filter(func(int) bool { return true })

			require.False(t, og.HasNext())
			_, err := og.Take()
			require.Equal(t, streams.ErrStreamMoved, err)
			require.Equal(t, streams.ErrStreamMoved, og.Err())
			require.NoError(t, og.Close())

			again := og.Limit(1)
			require.False(t, again.HasNext())
			require.Equal(t, streams.ErrStreamMoved, again.Err())
			require.Contains(t, buf.String(), "moved")

			n, err := derived.Count()
			require.NoError(t, err)
			require.Equal(t, 10, n, `the upstream was not consumed by the moved handle`)
		})

		s.Then(`zip and concat move every participant`, func(t *testcase.T) {
			logger.Stub(t)
			a, b := streams.Of(1), streams.Of(2)
			_ = a.Concat(b)
			require.Equal(t, streams.ErrStreamMoved, b.Err())

			c := streams.Of(1)
			z := streams.Zip(c, b, func(x, y int) int { return x + y })
			require.Equal(t, streams.ErrStreamMoved, z.Err())
			require.NoError(t, c.Close())
			require.Equal(t, streams.ErrStreamMoved, c.Err())
		})
	})

	s.Describe(`invalid construction`, func(s *testcase.Spec) {
		s.Then(`the stream never yields and reports the cause`, func(t *testcase.T) {
			invalid := streams.Collate(stream(t), 0)
			require.False(t, invalid.HasNext())
			require.True(t, errors.Is(invalid.Err(), iterators.ErrInvalidArgument))
		})

		s.Then(`Must panics on it`, func(t *testcase.T) {
			require.Panics(t, func() { streams.Must(stream(t).Repeat(-1)) })
			require.NotPanics(t, func() { streams.Must(streams.Of(1).Repeat(1)) })
		})
	})
}

func TestSources(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("FromSlice", func(t *testing.T) {
		vs, err := streams.FromSlice([]int{1, 2}).Collect()
		require.NoError(t, err)
		require.Equal(t, []int{1, 2}, vs)
	})

	t.Run("FromSeq", func(t *testing.T) {
		vs, err := streams.FromSeq(func(yield func(string) bool) {
			for _, v := range []string{"a", "b", "c"} {
				if !yield(v) {
					return
				}
			}
		}).Limit(2).Collect()
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b"}, vs)
	})

	t.Run("FromChan", func(t *testing.T) {
		ch := make(chan int, 3)
		ch <- 1
		ch <- 2
		close(ch)
		vs, err := streams.FromChan(ch).Collect()
		require.NoError(t, err)
		require.Equal(t, []int{1, 2}, vs)
	})

	t.Run("Generate and RepeatValue", func(t *testing.T) {
		n := 0
		vs, err := streams.Generate(func() int { n++; return n }).Limit(3).Collect()
		require.NoError(t, err)
		require.Equal(t, []int{1, 2, 3}, vs)

		ws, err := streams.RepeatValue("z").Limit(2).Collect()
		require.NoError(t, err)
		require.Equal(t, []string{"z", "z"}, ws)
	})

	t.Run("Iterate", func(t *testing.T) {
		vs, err := streams.Iterate(1, func(n int) (int, bool) { return n * 3, n < 9 }).Collect()
		require.NoError(t, err)
		require.Equal(t, []int{1, 3, 9}, vs)
	})

	t.Run("From wraps any iterator", func(t *testing.T) {
		vs, err := streams.From(iterators.Range(0, 3, 1)).Collect()
		require.NoError(t, err)
		require.Equal(t, []int{0, 1, 2}, vs)
	})
}

func TestSynchronized(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := streams.Range(0, 500, 1).Synchronized()
	var (
		wg    sync.WaitGroup
		mutex sync.Mutex
		seen  = make(map[int]int)
	)
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				v, ok, err := s.Next()
				if err != nil || !ok {
					return
				}
				mutex.Lock()
				seen[v]++
				mutex.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Len(t, seen, 500)
	for v, n := range seen {
		require.Equal(t, 1, n, "%d was delivered more than once", v)
	}
}

func TestStream_loggingOnReuse(t *testing.T) {
	buf := &bytes.Buffer{}
	og := logger.Default
	defer func() { logger.Default = og }()
	logger.Default.Out = buf

	s := streams.Of(1)
	_ = s.Skip(0)
	_ = s.Skip(0)
	require.Contains(t, buf.String(), `"level":"warn"`)
}
