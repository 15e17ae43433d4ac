package kdtree

import "errors"

var (
	// ErrInvalidInput reports malformed points or queries: inconsistent
	// dimensions or non-finite coordinates.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidRange reports a range query whose lower bound exceeds its
	// upper bound on some axis.
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidArgument reports an out-of-domain scalar argument such as a
	// non-positive k or a negative worker count.
	ErrInvalidArgument = errors.New("invalid argument")
)
