package kmeanspp

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kmeanspp/internal/kmeans"
	"github.com/hupe1980/kmeanspp/internal/seed"
	"github.com/hupe1980/kmeanspp/pointset"
	"github.com/hupe1980/kmeanspp/resource"
)

var (
	// ErrInvalidK is returned when k does not satisfy 1 < k < n-1.
	ErrInvalidK = errors.New("invalid number of clusters")

	// ErrInvalidMaxIter is returned when the iteration bound does not satisfy 1 < iter < 1000.
	ErrInvalidMaxIter = errors.New("invalid maximum iteration")

	// ErrInvalidEpsilon is returned when epsilon is negative or NaN.
	ErrInvalidEpsilon = errors.New("invalid epsilon")

	// ErrEmptyPointSet is returned when there are no points to cluster.
	ErrEmptyPointSet = errors.New("empty point set")

	// ErrResourceExhausted is returned when a run would exceed its memory budget.
	ErrResourceExhausted = errors.New("resource exhausted")
)

// ErrDimensionMismatch indicates a vector whose length differs from the
// declared dimension.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrShapeMismatch indicates that a declared count (n or k) disagrees with
// the number of vectors supplied.
type ErrShapeMismatch struct {
	Field    string
	Declared int
	Actual   int
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("%s: declared %d vectors, got %d", e.Field, e.Declared, e.Actual)
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Dimension normalization.
	var kdm *kmeans.ErrDimensionMismatch
	if errors.As(err, &kdm) {
		return &ErrDimensionMismatch{Expected: kdm.Expected, Actual: kdm.Actual, cause: err}
	}
	var pdm *pointset.ErrDimensionMismatch
	if errors.As(err, &pdm) {
		return &ErrDimensionMismatch{Expected: pdm.Expected, Actual: pdm.Actual, cause: err}
	}

	// Argument normalization.
	switch {
	case errors.Is(err, seed.ErrInvalidK), errors.Is(err, kmeans.ErrNoCentroids):
		return fmt.Errorf("%w: %w", ErrInvalidK, err)
	case errors.Is(err, kmeans.ErrInvalidMaxIter):
		return fmt.Errorf("%w: %w", ErrInvalidMaxIter, err)
	case errors.Is(err, kmeans.ErrInvalidEpsilon):
		return fmt.Errorf("%w: %w", ErrInvalidEpsilon, err)
	case errors.Is(err, seed.ErrEmptyPointSet), errors.Is(err, kmeans.ErrNoPoints):
		return fmt.Errorf("%w: %w", ErrEmptyPointSet, err)
	case errors.Is(err, resource.ErrMemoryLimit):
		return fmt.Errorf("%w: %w", ErrResourceExhausted, err)
	}

	return err
}
