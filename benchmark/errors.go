package benchmark

import "errors"

var (
	// ErrNoSizes indicates an empty list of grid sizes.
	ErrNoSizes = errors.New("benchmark: no grid sizes")
	// ErrParallelism indicates a parallelism limit below 1.
	ErrParallelism = errors.New("benchmark: parallelism must be >= 1")
)
