// Package boltsource iterates over the key value pairs of a bolt bucket.
//
// The iterator holds a read transaction open until it is closed,
// so always Close it, or consume it with one of the terminal helpers of the iterators package.
package boltsource

import (
	"bytes"

	"github.com/adamluzsi/streams/internal/errorkit"
	"github.com/adamluzsi/streams/iterators"
	"github.com/boltdb/bolt"
)

const ErrBucketNotFound errorkit.Error = "bolt bucket not found"

// Pair is a key value entry of the bucket.
// Both slices are copies, so they stay valid after the transaction is closed.
type Pair struct {
	Key   []byte
	Value []byte
}

type Option func(*config)

type config struct {
	prefix []byte
	strict bool
}

// WithPrefix limits the iteration to the keys that start with prefix.
func WithPrefix(prefix []byte) Option {
	return func(c *config) { c.prefix = prefix }
}

// Strict makes a missing bucket an ErrBucketNotFound failure instead of an empty iteration.
func Strict() Option {
	return func(c *config) { c.strict = true }
}

// New opens a read transaction on db and iterates over the bucket in key order.
// Nested buckets are skipped. Closing the iterator rolls back the transaction.
func New(db *bolt.DB, bucket []byte, opts ...Option) iterators.Iterator[Pair] {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	tx, err := db.Begin(false)
	if err != nil {
		return iterators.Error[Pair](err)
	}
	b := tx.Bucket(bucket)
	if b == nil {
		_ = tx.Rollback()
		if c.strict {
			return iterators.Error[Pair](ErrBucketNotFound.F("%s", bucket))
		}
		return iterators.Empty[Pair]()
	}
	return iterators.Func(pairs(b.Cursor(), c.prefix), iterators.OnClose(tx.Rollback))
}

// pairs walks the cursor from the first key with the prefix, until a key without it.
func pairs(cursor *bolt.Cursor, prefix []byte) func() (Pair, bool, error) {
	var started bool
	step := func() ([]byte, []byte) {
		if started {
			return cursor.Next()
		}
		started = true
		if len(prefix) != 0 {
			return cursor.Seek(prefix)
		}
		return cursor.First()
	}
	return func() (Pair, bool, error) {
		for {
			k, v := step()
			if k == nil || !bytes.HasPrefix(k, prefix) {
				return Pair{}, false, nil
			}
			if v == nil {
				continue
			}
			return Pair{
				Key:   append([]byte(nil), k...),
				Value: append([]byte(nil), v...),
			}, true, nil
		}
	}
}
