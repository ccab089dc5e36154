package kmeans

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPoints is returned when Fit is called without points.
	ErrNoPoints = errors.New("kmeans: no points")

	// ErrNoCentroids is returned when Fit is called without initial centroids.
	ErrNoCentroids = errors.New("kmeans: no initial centroids")

	// ErrZeroDimension is returned for zero-length point vectors.
	ErrZeroDimension = errors.New("kmeans: zero-dimensional points")

	// ErrInvalidMaxIter is returned when MaxIter < 1.
	ErrInvalidMaxIter = errors.New("kmeans: max iterations must be positive")

	// ErrInvalidEpsilon is returned when Epsilon is negative or NaN.
	ErrInvalidEpsilon = errors.New("kmeans: epsilon must be non-negative")
)

// ErrDimensionMismatch reports a point or centroid whose length differs from
// the dimension of the first point.
type ErrDimensionMismatch struct {
	Kind     string // "point" or "centroid"
	Index    int
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("kmeans: %s %d: dimension mismatch: expected %d, got %d", e.Kind, e.Index, e.Expected, e.Actual)
}
