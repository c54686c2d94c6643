package quadtree

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPoints is returned when building a tree from an empty point set.
	ErrNoPoints = errors.New("quadtree: at least one point is required")

	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("quadtree: k must be positive")

	// ErrInvalidEpsilon is returned when the approximation factor is negative or NaN.
	ErrInvalidEpsilon = errors.New("quadtree: eps must be >= 0")

	// ErrInvalidQuery is returned when a query point has a NaN coordinate.
	ErrInvalidQuery = errors.New("quadtree: query coordinate is NaN")

	// ErrInvalidBounds is returned when a coordinate range is inverted or not finite.
	ErrInvalidBounds = errors.New("quadtree: invalid bounds")

	// ErrPointOutOfBounds is returned when a point lies outside the root region.
	ErrPointOutOfBounds = errors.New("quadtree: point outside bounds")

	// ErrMaxDepthExceeded is returned when points still share a region at
	// Config.MaxDepth, which happens for coincident points.
	ErrMaxDepthExceeded = errors.New("quadtree: maximum depth exceeded")
)

// DimensionMismatchError indicates a point or query whose length differs from
// the tree dimension. Index is the offending row, or -1 for a query.
type DimensionMismatchError struct {
	Expected int
	Actual   int
	Index    int
}

func (e *DimensionMismatchError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("quadtree: dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
	}
	return fmt.Sprintf("quadtree: dimension mismatch at point %d: expected %d, got %d", e.Index, e.Expected, e.Actual)
}

// InvalidDimensionError indicates a dimension count outside [1, MaxDims].
type InvalidDimensionError struct {
	Dims int
}

func (e *InvalidDimensionError) Error() string {
	return fmt.Sprintf("quadtree: invalid dimension %d (must be 1..%d)", e.Dims, MaxDims)
}
