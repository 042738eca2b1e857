package iterators

import "github.com/adamluzsi/streams/internal/errorkit"

const (
	// ErrExhausted is returned by Take when the iterator has no more elements.
	ErrExhausted errorkit.Error = "iterator has been exhausted and contains no more elements"
	// ErrInvalidArgument is returned by the constructors receiving malformed parameters.
	ErrInvalidArgument errorkit.Error = "invalid argument"
	// ErrUnsupportedOperation is returned for removal attempts, as iterators are read only.
	ErrUnsupportedOperation errorkit.Error = "unsupported operation"
)

// Break can be returned from the ForEach callback to stop the iteration without an error.
const Break errorkit.Error = `iterators:break`
