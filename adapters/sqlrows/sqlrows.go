// Package sqlrows lets you use the iterator pattern with the sql.Rows structure.
// It allows you to do dynamic filtering and pipeline stages on your query results,
// and makes testing easier with the same iterator interface.
package sqlrows

import (
	"context"
	"database/sql"
	"io"

	"github.com/adamluzsi/streams/iterators"
)

type Rows interface {
	io.Closer
	Next() bool
	Err() error
	Scan(dest ...interface{}) error
}

type Scanner interface {
	Scan(...interface{}) error
}

// Mapper turns the current row into a value.
type Mapper[T any] interface {
	Map(s Scanner) (T, error)
}

type MapperFunc[T any] func(Scanner) (T, error)

func (fn MapperFunc[T]) Map(s Scanner) (T, error) { return fn(s) }

// Queryer is implemented by *sql.DB, *sql.Tx and *sql.Conn.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Query runs the query and iterates over the mapped result rows.
// When the query fails, the returned iterator yields nothing and reports the failure in Err.
func Query[T any](ctx context.Context, db Queryer, mapper Mapper[T], query string, args ...any) iterators.Iterator[T] {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return iterators.Error[T](err)
	}
	return New[T](rows, mapper)
}

// New iterates over rows, and maps each of them with mapper.
// A mapping failure ends the iteration, and is reported by Err, just like the failure of rows.
// Closing the iterator closes rows.
func New[T any](rows Rows, mapper Mapper[T]) iterators.Iterator[T] {
	return iterators.Func(func() (v T, ok bool, err error) {
		if !rows.Next() {
			return v, false, rows.Err()
		}
		v, err = mapper.Map(rows)
		if err != nil {
			return v, false, err
		}
		return v, true, nil
	}, iterators.OnClose(rows.Close))
}
