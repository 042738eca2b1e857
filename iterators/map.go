package iterators

import (
	"github.com/adamluzsi/streams/internal/errorkit"
	"github.com/adamluzsi/streams/internal/queue"
)

// Map allows you to do additional transformation on the values.
// This is useful in cases, where you have to alter the input value,
// or change the type all together.
// Like when you read lines from an input stream,
// and then you map the line content to a certain data structure,
// in order to not expose what steps needed in order to deserialize the input stream,
// thus protect the business rules from this information.
//
// The output type has to be named explicitly:
//
//	iterators.Map[string](ints, strconv.Itoa)
//
// When the transformation fails, the iteration ends and Err returns the cause.
func Map[To any, From any, FN TransformFunc[From, To]](i Iterator[From], transform FN) Iterator[To] {
	mi := &mapIter[From, To]{Upstream: i, Transform: toTransform[From, To](transform)}
	mi.cursor.stage = mi
	return mi
}

type mapIter[From, To any] struct {
	cursor[To]
	Upstream  Iterator[From]
	Transform func(From, int) (To, error)

	index int
	err   error
}

func (i *mapIter[From, To]) advance() (To, bool) {
	var zero To
	v, ok := pull(i.Upstream, &i.err)
	if !ok {
		return zero, false
	}
	index := i.index
	i.index++
	out, err := i.Transform(v, index)
	if err != nil {
		i.err = err
		return zero, false
	}
	return out, true
}

func (i *mapIter[From, To]) Close() error {
	i.cursor.finish()
	return i.Upstream.Close()
}

func (i *mapIter[From, To]) Err() error {
	return errOf(i.err, i.Upstream)
}

// FlatMap expands every element into zero or more output elements.
// Elements that expand to nothing are skipped over.
// Iterators returned by the expansion are drained lazily, and closed once they ran out.
//
//	iterators.FlatMap[string](lines, strings.Fields)
func FlatMap[To any, From any, FN ExpandFunc[From, To]](i Iterator[From], expand FN) Iterator[To] {
	fi := &flatMapIter[From, To]{
		Upstream: i,
		Expand:   toExpand[From, To](expand),
		pending:  queue.New[To](),
	}
	fi.cursor.stage = fi
	return fi
}

type flatMapIter[From, To any] struct {
	cursor[To]
	Upstream Iterator[From]
	Expand   func(From, int) (expansion[To], error)

	pending *queue.Queue[To]
	nested  Iterator[To]
	index   int
	err     error
}

func (i *flatMapIter[From, To]) advance() (To, bool) {
	var zero To
	for {
		if i.nested != nil {
			if v, ok := pull(i.nested, &i.err); ok {
				return v, true
			}
			if err := i.closeNested(); err != nil {
				return zero, false
			}
			continue
		}
		if v, ok := i.pending.Dequeue(); ok {
			return v, true
		}
		v, ok := pull(i.Upstream, &i.err)
		if !ok {
			return zero, false
		}
		index := i.index
		i.index++
		exp, err := i.Expand(v, index)
		if err != nil {
			i.err = err
			return zero, false
		}
		if exp.nested != nil {
			i.nested = exp.nested
			continue
		}
		i.pending.Enqueue(exp.values...)
	}
}

// closeNested releases the drained nested iterator, and makes its failure the failure of the stage.
func (i *flatMapIter[From, To]) closeNested() error {
	nested := i.nested
	i.nested = nil
	if i.err == nil {
		i.err = nested.Err()
	}
	if err := nested.Close(); i.err == nil {
		i.err = err
	}
	return i.err
}

func (i *flatMapIter[From, To]) Close() error {
	i.cursor.finish()
	i.pending.Clear()
	var nestedErr error
	if i.nested != nil {
		nestedErr = i.nested.Close()
		i.nested = nil
	}
	return errorkit.Merge(nestedErr, i.Upstream.Close())
}

func (i *flatMapIter[From, To]) Err() error {
	return errOf(i.err, i.Upstream)
}
