// Package seed implements k-means++ style selection of initial centroids.
//
// The first centroid is drawn uniformly; every further centroid is drawn
// with probability proportional to a point's distance to its nearest
// already-chosen centroid. By default the raw distance is the weight and
// already-chosen points stay eligible, so identifiers may repeat.
package seed
