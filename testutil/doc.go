// Package testutil provides testing utilities for kmeanspp.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, lock-protected RNG and generators for point sets
// with known cluster structure.
//
// # Point Set Generation
//
//	rng := testutil.NewRNG(seed)
//	ps := rng.Blobs(4, 100, 8, 0.5) // 4 clusters × 100 points, dim 8
//	vecs := rng.UniformVectors(10, 3)
package testutil
