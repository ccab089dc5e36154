// Package kmeanspp clusters points in d-dimensional Euclidean space with
// k-means++ style seeding followed by Lloyd's algorithm.
//
// # Quick Start
//
//	ps, _ := pointset.FromVectors(vectors)
//	c := kmeanspp.New(kmeanspp.WithSeed(42))
//	report, _ := c.Run(ctx, ps, 3, kmeanspp.DefaultMaxIter, 1e-4)
//	fmt.Println(report.SeedIDs, report.Centroids)
//
// # Seeding
//
// The first seed is drawn uniformly. Every later seed is drawn with
// probability proportional to the Euclidean distance from each point to
// its nearest seed chosen so far. Use WithWeighting(WeightSquaredDistance)
// for the textbook D² rule and WithDistinctSeeds to forbid repeats.
// Seeding is reproducible: the same seed and point order give the same ids.
//
// # Fitting
//
// Fit alternates assignment (each point to its nearest centroid, ties to
// the lowest index) and update (each centroid to the mean of its members)
// until every centroid moves less than epsilon or the iteration budget is
// spent. A centroid without members keeps its coordinates. The assignment
// step runs in parallel; results are identical for any worker count.
//
// # Valid Parameters
//
//   - 1 < k < n-1
//   - 1 < maxIter < 1000
//   - epsilon >= 0
//
// Validate reports every violated condition at once.
package kmeanspp
