package grid

import "errors"

var (
	// ErrInvalidSize indicates a non-positive interior point count.
	ErrInvalidSize = errors.New("grid: interior point count must be >= 1")
	// ErrNilSource indicates a nil source function.
	ErrNilSource = errors.New("grid: source function is nil")
	// ErrLength indicates a grid vector whose length is not N².
	ErrLength = errors.New("grid: vector length does not match N*N")
)
