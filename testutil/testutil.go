package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/kmeanspp/pointset"
)

// BlobSeparation is the distance between neighbouring blob centres
// generated by Blobs, along every axis.
const BlobSeparation = 10.0

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Rand returns a fresh *rand.Rand seeded with the initial seed.
// Useful for components that take a generator by injection.
func (r *RNG) Rand() *rand.Rand {
	return rand.New(rand.NewSource(r.seed)) // nolint gosec
}

// UniformVectors generates random vectors with values in range [0, 1).
func (r *RNG) UniformVectors(num int, dimensions int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	vectors := make([][]float64, num)
	for i := range num {
		vec := make([]float64, dimensions)
		for j := range vec {
			vec[j] = r.rand.Float64()
		}
		vectors[i] = vec
	}

	return vectors
}

// BlobCenters returns the centres Blobs uses for the given shape:
// centre c sits at c*BlobSeparation on every axis.
func BlobCenters(clusters, dim int) [][]float64 {
	centers := make([][]float64, clusters)
	for c := range clusters {
		center := make([]float64, dim)
		for j := range center {
			center[j] = float64(c) * BlobSeparation
		}
		centers[c] = center
	}
	return centers
}

// Blobs generates clusters*perCluster points with Gaussian noise of the
// given spread around BlobCenters. Identifiers run 1..n in ascending order
// and points of cluster c are interleaved (id-1) % clusters == c.
func (r *RNG) Blobs(clusters, perCluster, dim int, spread float64) *pointset.PointSet {
	centers := BlobCenters(clusters, dim)

	r.mu.Lock()
	defer r.mu.Unlock()

	ps := pointset.New(dim)
	n := clusters * perCluster
	for i := range n {
		center := centers[i%clusters]
		vec := make([]float64, dim)
		for j := range vec {
			vec[j] = center[j] + r.rand.NormFloat64()*spread
		}
		if err := ps.Add(uint64(i+1), vec); err != nil {
			panic(err)
		}
	}

	return ps
}
