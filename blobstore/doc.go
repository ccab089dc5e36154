// Package blobstore provides read-only access to clustering inputs.
//
// Input tables may live on the local file system, in memory (tests) or in
// object storage. Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local file system with mmap
//   - MemoryStore: in-memory, for tests
//   - s3.Store: Amazon S3 with range reads
//   - minio.Store: MinIO and other S3-compatible services
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	}
//
//	type Blob interface {
//	    io.ReaderAt
//	    io.Closer
//	    Size() int64
//	}
package blobstore
