// Package lines is a line by line source over an io.Reader.
package lines

import (
	"bufio"
	"context"
	"io"

	"github.com/adamluzsi/streams/internal/logger"
	"github.com/adamluzsi/streams/iterators"
)

type Option func(*config)

type config struct {
	split   bufio.SplitFunc
	initial int
	limit   int
}

// WithSplit replaces the default line splitting, for example with bufio.ScanWords.
func WithSplit(split bufio.SplitFunc) Option {
	return func(c *config) { c.split = split }
}

// WithBuffer sets the initial and the maximum token buffer size of the scanner.
func WithBuffer(initial, limit int) Option {
	return func(c *config) {
		c.initial = initial
		c.limit = limit
	}
}

// New reads r one line at a time.
// When r is an io.Closer too, closing the iterator closes r.
// A read failure ends the iteration, and is reported by Err.
func New[T string | []byte](r io.Reader, opts ...Option) iterators.Iterator[T] {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	scanner := bufio.NewScanner(r)
	if c.split != nil {
		scanner.Split(c.split)
	}
	if 0 < c.limit {
		scanner.Buffer(make([]byte, 0, c.initial), c.limit)
	}
	var cbs []iterators.CallbackOption
	if rc, ok := r.(io.Closer); ok {
		cbs = append(cbs, iterators.OnClose(rc.Close))
	}
	return iterators.Func(func() (v T, ok bool, err error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				logger.Warn(context.Background(), "line source stopped on a read failure", logger.ErrField(err))
				return v, false, err
			}
			return v, false, nil
		}
		return token[T](scanner), true, nil
	}, cbs...)
}

func token[T string | []byte](scanner *bufio.Scanner) T {
	var v T
	switch any(v).(type) {
	case string:
		return T(scanner.Text())
	default:
		// the scanner reuses its buffer between the lines
		bs := scanner.Bytes()
		return T(append(make([]byte, 0, len(bs)), bs...))
	}
}
