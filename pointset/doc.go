// Package pointset provides the typed container clustering runs consume.
//
// A PointSet fixes its dimension at construction, rejects rows of the wrong
// length and duplicate identifiers, keeps points ordered by identifier and
// resolves identifiers to vectors in O(1).
//
//	ps := pointset.New(2)
//	_ = ps.Add(1, []float64{0, 0})
//	_ = ps.Add(2, []float64{0, 1})
//	vecs, _ := ps.Resolve([]uint64{2, 1})
package pointset
