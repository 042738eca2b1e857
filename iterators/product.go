package iterators

// Dimension is one named axis of a Product.
type Dimension[K comparable, V any] struct {
	Key    K
	Values []V
}

// Product yields the cartesian product of the dimensions as records.
//
// The order is the order of an odometer: the last dimension advances with every record,
// and a dimension advances only when every dimension after it wrapped around.
//
//	Product(Dimension[string, any]{"x", []any{1, 2}}, Dimension[string, any]{"y", []any{"a", "b"}})
//	-> {x:1 y:a} {x:1 y:b} {x:2 y:a} {x:2 y:b}
//
// Every record is a new map, so the caller is free to keep or alter it.
// With no dimension, or with any empty dimension, the product is empty.
func Product[K comparable, V any](dims ...Dimension[K, V]) Iterator[map[K]V] {
	if len(dims) == 0 {
		return Empty[map[K]V]()
	}
	for _, dim := range dims {
		if len(dim.Values) == 0 {
			return Empty[map[K]V]()
		}
	}
	pi := &productIter[K, V]{Dimensions: dims, positions: make([]int, len(dims))}
	pi.cursor.stage = pi
	return pi
}

// ProductOf builds the Product from a lookup table, keys telling the order of the dimensions.
// A key without values in the table is an empty dimension.
func ProductOf[K comparable, V any](keys []K, values map[K][]V) Iterator[map[K]V] {
	dims := make([]Dimension[K, V], 0, len(keys))
	for _, key := range keys {
		dims = append(dims, Dimension[K, V]{Key: key, Values: values[key]})
	}
	return Product(dims...)
}

type productIter[K comparable, V any] struct {
	cursor[map[K]V]
	Dimensions []Dimension[K, V]

	positions []int
	started   bool
	done      bool
}

func (i *productIter[K, V]) advance() (map[K]V, bool) {
	if i.done {
		return nil, false
	}
	if i.started && !i.turn() {
		i.done = true
		return nil, false
	}
	i.started = true
	record := make(map[K]V, len(i.Dimensions))
	for d, dim := range i.Dimensions {
		record[dim.Key] = dim.Values[i.positions[d]]
	}
	return record, true
}

// turn moves the odometer by one, and reports false when the first dimension would wrap around.
func (i *productIter[K, V]) turn() bool {
	for d := len(i.Dimensions) - 1; 0 <= d; d-- {
		i.positions[d]++
		if i.positions[d] < len(i.Dimensions[d].Values) {
			return true
		}
		i.positions[d] = 0
	}
	return false
}

func (i *productIter[K, V]) Close() error {
	i.cursor.finish()
	i.done = true
	return nil
}

func (i *productIter[K, V]) Err() error { return nil }
