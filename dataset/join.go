package dataset

import (
	"errors"
	"fmt"
	"slices"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/kmeanspp/pointset"
)

var (
	// ErrEmptyJoin is returned when the tables share no identifier.
	ErrEmptyJoin = errors.New("dataset: tables share no point id")

	// ErrNoCoordinates is returned when the joined rows have no coordinate columns.
	ErrNoCoordinates = errors.New("dataset: joined rows have no coordinates")
)

// Join inner-joins a and b on identifier and returns the result ordered by
// ascending identifier. Coordinates are a's columns followed by b's.
func Join(a, b *Table) (*pointset.PointSet, error) {
	ia, ba, err := indexTable(a, "first")
	if err != nil {
		return nil, err
	}
	ib, bb, err := indexTable(b, "second")
	if err != nil {
		return nil, err
	}

	common := roaring64.And(ba, bb)
	if common.IsEmpty() {
		return nil, ErrEmptyJoin
	}

	dim := a.Width + b.Width
	if dim == 0 {
		return nil, ErrNoCoordinates
	}
	ps, err := pointset.NewChecked(dim)
	if err != nil {
		return nil, err
	}

	// Bitmap iteration is ascending, so ps is built already sorted.
	it := common.Iterator()
	for it.HasNext() {
		id := it.Next()
		coords := slices.Concat(a.Rows[ia[id]], b.Rows[ib[id]])
		if err := ps.Add(id, coords); err != nil {
			return nil, err
		}
	}
	return ps, nil
}

func indexTable(t *Table, which string) (map[uint64]int, *roaring64.Bitmap, error) {
	index := make(map[uint64]int, t.Len())
	bm := roaring64.New()
	for i, id := range t.IDs {
		if !bm.CheckedAdd(id) {
			return nil, nil, fmt.Errorf("%s table: %w: %d", which, pointset.ErrDuplicateID, id)
		}
		index[id] = i
	}
	return index, bm, nil
}
