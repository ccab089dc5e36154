package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformVectors(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.UniformVectors(8, 32)

	assert.Equal(t, 8, len(v))
	assert.Equal(t, 32, len(v[0]))
	assert.Less(t, v[0][0], 1.0)
	assert.GreaterOrEqual(t, v[1][0], 0.0)
}

func TestBlobs(t *testing.T) {
	ps := NewRNG(4711).Blobs(3, 10, 2, 0.1)

	require.Equal(t, 30, ps.Len())
	assert.Equal(t, 2, ps.Dim())
	assert.Equal(t, uint64(1), ps.At(0).ID)
	assert.Equal(t, uint64(30), ps.At(29).ID)

	// Third point belongs to the third blob.
	assert.InDelta(t, 2*BlobSeparation, ps.At(2).Coords[0], 1)
}

func TestBlobs_Deterministic(t *testing.T) {
	a := NewRNG(1).Blobs(2, 5, 3, 1)
	b := NewRNG(1).Blobs(2, 5, 3, 1)
	assert.Equal(t, a.Vectors(), b.Vectors())
}

func TestRNG_Reset(t *testing.T) {
	rng := NewRNG(99)
	a := rng.UniformVectors(1, 4)
	rng.Reset()
	b := rng.UniformVectors(1, 4)
	assert.Equal(t, a, b)
	assert.Equal(t, int64(99), rng.Seed())
}
