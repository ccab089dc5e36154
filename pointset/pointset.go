package pointset

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrDuplicateID is returned when an identifier is added twice.
	ErrDuplicateID = errors.New("duplicate point id")

	// ErrUnknownID is returned when resolving an identifier that is not in the set.
	ErrUnknownID = errors.New("unknown point id")

	// ErrInvalidDimension is returned by New for a dimension < 1.
	ErrInvalidDimension = errors.New("dimension must be positive")
)

// ErrDimensionMismatch is returned when a vector does not match the set's dimension.
type ErrDimensionMismatch struct {
	ID       uint64
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("point %d: dimension mismatch: expected %d, got %d", e.ID, e.Expected, e.Actual)
}

// Point is an identified coordinate vector.
type Point struct {
	ID     uint64
	Coords []float64
}

// PointSet is a collection of points sharing one dimension, always ordered
// ascending by identifier. It is not safe for concurrent mutation.
type PointSet struct {
	dim    int
	points []Point
	index  map[uint64]int
}

// New creates an empty PointSet of dimension dim.
// It panics if dim < 1; use NewChecked to get an error instead.
func New(dim int) *PointSet {
	ps, err := NewChecked(dim)
	if err != nil {
		panic(err)
	}
	return ps
}

// NewChecked creates an empty PointSet of dimension dim.
func NewChecked(dim int) (*PointSet, error) {
	if dim < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDimension, dim)
	}
	return &PointSet{
		dim:   dim,
		index: make(map[uint64]int),
	}, nil
}

// FromVectors builds a PointSet from vectors, assigning identifiers 0..n-1.
func FromVectors(vectors [][]float64) (*PointSet, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: no vectors", ErrInvalidDimension)
	}
	ps, err := NewChecked(len(vectors[0]))
	if err != nil {
		return nil, err
	}
	for i, v := range vectors {
		if err := ps.Add(uint64(i), v); err != nil {
			return nil, err
		}
	}
	return ps, nil
}

// Add inserts a point at its identifier position. The coordinates are copied.
// Appending in ascending order is O(1); any other insert shifts the tail.
func (ps *PointSet) Add(id uint64, coords []float64) error {
	if len(coords) != ps.dim {
		return &ErrDimensionMismatch{ID: id, Expected: ps.dim, Actual: len(coords)}
	}
	if _, ok := ps.index[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateID, id)
	}

	p := Point{ID: id, Coords: slices.Clone(coords)}
	if n := len(ps.points); n == 0 || ps.points[n-1].ID < id {
		ps.index[id] = n
		ps.points = append(ps.points, p)
		return nil
	}

	pos, _ := slices.BinarySearchFunc(ps.points, id, func(q Point, target uint64) int {
		return cmp.Compare(q.ID, target)
	})
	ps.points = slices.Insert(ps.points, pos, p)
	for i := pos; i < len(ps.points); i++ {
		ps.index[ps.points[i].ID] = i
	}
	return nil
}

// Dim returns the dimension of every point.
func (ps *PointSet) Dim() int { return ps.dim }

// Len returns the number of points.
func (ps *PointSet) Len() int { return len(ps.points) }

// At returns the i-th point in set order.
// The returned coordinates must not be modified.
func (ps *PointSet) At(i int) Point { return ps.points[i] }

// IDs returns the identifiers in set order.
func (ps *PointSet) IDs() []uint64 {
	ids := make([]uint64, len(ps.points))
	for i, p := range ps.points {
		ids[i] = p.ID
	}
	return ids
}

// IndexOf returns the position of id in set order.
func (ps *PointSet) IndexOf(id uint64) (int, bool) {
	i, ok := ps.index[id]
	return i, ok
}

// Lookup returns the coordinates stored for id.
// The returned slice must not be modified.
func (ps *PointSet) Lookup(id uint64) ([]float64, bool) {
	i, ok := ps.index[id]
	if !ok {
		return nil, false
	}
	return ps.points[i].Coords, true
}

// Vectors returns the coordinate vectors in set order.
// The vectors share storage with the set and must not be modified.
func (ps *PointSet) Vectors() [][]float64 {
	vecs := make([][]float64, len(ps.points))
	for i, p := range ps.points {
		vecs[i] = p.Coords
	}
	return vecs
}

// Resolve returns copies of the vectors for ids, in the order given.
// Repeated identifiers produce repeated vectors.
func (ps *PointSet) Resolve(ids []uint64) ([][]float64, error) {
	out := make([][]float64, len(ids))
	for i, id := range ids {
		v, ok := ps.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownID, id)
		}
		out[i] = slices.Clone(v)
	}
	return out, nil
}
