package iterators

import (
	"github.com/adamluzsi/streams/internal/queue"
)

// CollateOption configures the windows produced by Collate.
type CollateOption interface {
	configure(c *collateConfig)
}

type collateConfig struct {
	Step          int
	KeepRemainder bool
}

type collateOptionFunc func(c *collateConfig)

func (fn collateOptionFunc) configure(c *collateConfig) { fn(c) }

// CollateStep sets how many elements the start of each window is ahead of the previous one.
// By default the step equals the window size, so the windows do not overlap.
func CollateStep(step int) CollateOption {
	return collateOptionFunc(func(c *collateConfig) { c.Step = step })
}

// KeepRemainder decides whether the windows that ended up shorter than the size,
// because the upstream ran out, are still yielded. It is enabled by default.
func KeepRemainder(keep bool) CollateOption {
	return collateOptionFunc(func(c *collateConfig) { c.KeepRemainder = keep })
}

// Collate groups the elements into windows of the given size.
// A new window is opened at every step-th element and each element goes into every open window.
//
//	Collate(Of(1, 2, 3, 4, 5), 3, CollateStep(1)) -> [1 2 3] [2 3 4] [3 4 5] [4 5] [5]
//
// size and step must be at least 1, otherwise the result fails with ErrInvalidArgument.
func Collate[T any](i Iterator[T], size int, opts ...CollateOption) Iterator[[]T] {
	c := collateConfig{Step: size, KeepRemainder: true}
	for _, opt := range opts {
		opt.configure(&c)
	}
	if size < 1 {
		return invalid[[]T](ErrInvalidArgument.F("collate size must be at least 1, got %d", size), i)
	}
	if c.Step < 1 {
		return invalid[[]T](ErrInvalidArgument.F("collate step must be at least 1, got %d", c.Step), i)
	}
	ci := &collateIter[T]{
		Upstream:      i,
		Size:          size,
		Step:          c.Step,
		KeepRemainder: c.KeepRemainder,
		windows:       queue.New[*[]T](),
	}
	ci.cursor.stage = ci
	return ci
}

type collateIter[T any] struct {
	cursor[[]T]
	Upstream      Iterator[T]
	Size          int
	Step          int
	KeepRemainder bool

	windows *queue.Queue[*[]T]
	index   int
	drained bool
	err     error
}

func (i *collateIter[T]) advance() ([]T, bool) {
	for !i.drained {
		if front, ok := i.windows.Peek(); ok && len(*front) == i.Size {
			i.windows.Dequeue()
			return *front, true
		}
		v, ok := pull(i.Upstream, &i.err)
		if !ok {
			i.drained = true
			break
		}
		if i.index%i.Step == 0 {
			window := make([]T, 0, i.Size)
			i.windows.Enqueue(&window)
		}
		i.index++
		i.windows.Each(func(window *[]T) {
			*window = append(*window, v)
		})
	}
	if !i.KeepRemainder || errOf(i.err, i.Upstream) != nil {
		i.windows.Clear()
		return nil, false
	}
	for {
		window, ok := i.windows.Dequeue()
		if !ok {
			return nil, false
		}
		if 0 < len(*window) {
			return *window, true
		}
	}
}

func (i *collateIter[T]) Close() error {
	i.cursor.finish()
	i.windows.Clear()
	return i.Upstream.Close()
}

func (i *collateIter[T]) Err() error {
	return errOf(i.err, i.Upstream)
}
