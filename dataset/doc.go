// Package dataset builds the point set a clustering run consumes from two
// headerless tables.
//
// Each table has the point identifier in its first column followed by
// numeric coordinates. The tables are inner-joined on the identifier; the
// joined point carries the first table's coordinates followed by the
// second's, and points are ordered by ascending identifier.
//
// Inputs ending in .gz, .zst/.zstd or .lz4 are decompressed transparently.
//
//	store := blobstore.NewLocalStore("")
//	ps, err := dataset.Load(ctx, store, "input_1.txt", "input_2.txt")
package dataset
