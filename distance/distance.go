package distance

import (
	"gonum.org/v1/gonum/floats"
)

// Euclidean returns the L2 distance between a and b.
// Assumes vectors are the same length (caller's responsibility).
func Euclidean(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// SquaredEuclidean returns the squared L2 distance between a and b.
// It avoids the square root and is used wherever only ordering or
// sums of squares matter.
func SquaredEuclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Nearest returns the index of the vector in candidates closest to v and the
// squared distance to it. Comparing squared distances picks the same index
// as comparing Euclidean ones; equal squared distances keep the lowest
// index. Returns -1 when
// candidates is empty.
func Nearest(v []float64, candidates [][]float64) (int, float64) {
	best := -1
	bestDist := 0.0
	for i, c := range candidates {
		d := SquaredEuclidean(v, c)
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, bestDist
}
