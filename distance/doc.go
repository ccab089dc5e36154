// Package distance provides the Euclidean distance used by seeding and
// clustering.
//
// Both functions assume equal-length vectors (caller's responsibility) and
// accumulate in float64.
//
// # Usage
//
//	d := distance.Euclidean(a, b)
//	d2 := distance.SquaredEuclidean(a, b)
package distance
