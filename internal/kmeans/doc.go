// Package kmeans implements Lloyd's algorithm over float64 vectors.
//
// Each iteration assigns every point to its nearest centroid, moves every
// centroid to the mean of its points and stops once no centroid moved by
// epsilon or more. Assignment runs in parallel over fixed-size chunks of
// points; per-chunk partial sums are reduced in chunk order, so results do
// not depend on the worker count.
package kmeans
