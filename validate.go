package kmeanspp

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultMaxIter is the iteration bound used when none is given.
	DefaultMaxIter = 300

	// MaxIterLimit is the exclusive upper bound for the iteration bound.
	MaxIterLimit = 1000
)

// Validate checks the run parameters for n points and reports every
// violated condition, joined:
//
//   - 1 < k < n-1, else ErrInvalidK
//   - 1 < maxIter < 1000, else ErrInvalidMaxIter
//   - epsilon >= 0, else ErrInvalidEpsilon
func Validate(n, k, maxIter int, epsilon float64) error {
	var errs []error
	if k <= 1 || k >= n-1 {
		errs = append(errs, fmt.Errorf("%w: k=%d, n=%d", ErrInvalidK, k, n))
	}
	if maxIter <= 1 || maxIter >= MaxIterLimit {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidMaxIter, maxIter))
	}
	if epsilon < 0 || math.IsNaN(epsilon) {
		errs = append(errs, fmt.Errorf("%w: %g", ErrInvalidEpsilon, epsilon))
	}
	return errors.Join(errs...)
}
