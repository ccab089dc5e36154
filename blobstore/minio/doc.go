// Package minio provides a MinIO (and S3-compatible) implementation of
// blobstore.BlobStore.
//
// # Usage
//
//	client, _ := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	store := kmminio.NewStore(client, "datasets", "run-42/")
//	ps, err := dataset.Load(ctx, store, "a.csv", "b.csv")
package minio
