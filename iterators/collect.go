package iterators

import (
	"errors"
)

// Collect takes every element of the iterator and closes it.
func Collect[T any](i Iterator[T]) (vs []T, err error) {
	defer func() {
		closeErr := i.Close()
		if err == nil {
			err = closeErr
		}
	}()
	vs = make([]T, 0)
	for i.HasNext() {
		v, err := i.Take()
		if err != nil {
			return vs, err
		}
		vs = append(vs, v)
	}
	return vs, i.Err()
}

// Count will iterate over and count the total iterations number
//
// Good when all you want is count all the elements in an iterator but don't want to do anything else.
func Count[T any](i Iterator[T]) (total int, err error) {
	defer func() {
		closeErr := i.Close()
		if err == nil {
			err = closeErr
		}
	}()
	for i.HasNext() {
		if _, err := i.Take(); err != nil {
			return total, err
		}
		total++
	}
	return total, i.Err()
}

// First takes the first element of the iterator and closes the iterator
func First[T any](i Iterator[T]) (value T, found bool, err error) {
	defer func() {
		cErr := i.Close()
		if err == nil {
			err = cErr
		}
	}()
	if !i.HasNext() {
		return value, false, i.Err()
	}
	value, err = i.Take()
	if err != nil {
		return value, false, err
	}
	return value, true, i.Err()
}

// Last takes every element of the iterator and returns the final one.
func Last[T any](i Iterator[T]) (value T, found bool, err error) {
	defer func() {
		cErr := i.Close()
		if err == nil {
			err = cErr
		}
	}()
	for i.HasNext() {
		v, err := i.Take()
		if err != nil {
			return value, found, err
		}
		value, found = v, true
	}
	return value, found, i.Err()
}

// TakeN will take up to n elements, if they are available, and closes the iterator.
func TakeN[T any](i Iterator[T], n int) (vs []T, err error) {
	return Collect(Limit(i, n))
}

// ForEach calls fn with every element.
// Returning Break from fn stops the iteration without reporting an error.
func ForEach[T any, FN func(T) error | func(T)](i Iterator[T], fn FN) (rErr error) {
	var do func(T) error
	switch fn := any(fn).(type) {
	case func(T) error:
		do = fn
	case func(T):
		do = func(v T) error { fn(v); return nil }
	}
	defer func() {
		cErr := i.Close()
		if rErr == nil {
			rErr = cErr
		}
	}()
	for i.HasNext() {
		v, err := i.Take()
		if err != nil {
			return err
		}
		if err := do(v); err != nil {
			if errors.Is(err, Break) {
				break
			}
			return err
		}
	}
	return i.Err()
}

func Reduce[
	R, T any,
	FN func(R, T) R |
		func(R, T) (R, error),
](i Iterator[T], initial R, fn FN) (result R, rErr error) {
	var do func(R, T) (R, error)
	switch fn := any(fn).(type) {
	case func(R, T) R:
		do = func(result R, v T) (R, error) {
			return fn(result, v), nil
		}
	case func(R, T) (R, error):
		do = fn
	}
	defer func() {
		cErr := i.Close()
		if rErr != nil {
			return
		}
		rErr = cErr
	}()
	result = initial
	for i.HasNext() {
		v, err := i.Take()
		if err != nil {
			return result, err
		}
		result, err = do(result, v)
		if err != nil {
			return result, err
		}
	}
	return result, i.Err()
}
