// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("inputs/"),
//	    s3.WithRegion("us-east-1"),
//	)
//	ps, err := dataset.Load(ctx, store, "a.csv", "b.csv")
//
// Blobs are read with ranged GET requests.
package s3
