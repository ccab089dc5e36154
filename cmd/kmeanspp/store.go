package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/kmeanspp/blobstore"
	miniostore "github.com/hupe1980/kmeanspp/blobstore/minio"
	s3store "github.com/hupe1980/kmeanspp/blobstore/s3"
)

var errMissingBucket = errors.New("a bucket is required for remote stores")

// openStore returns the BlobStore selected by cfg.Store.
func openStore(ctx context.Context, cfg config) (blobstore.BlobStore, error) {
	switch cfg.Store {
	case "", "local":
		return blobstore.NewLocalStore(cfg.Prefix), nil
	case "s3":
		if cfg.Bucket == "" {
			return nil, errMissingBucket
		}
		opts := []s3store.Option{s3store.WithPrefix(cfg.Prefix)}
		if cfg.Region != "" {
			opts = append(opts, s3store.WithRegion(cfg.Region))
		}
		if cfg.Endpoint != "" {
			opts = append(opts, s3store.WithEndpoint(cfg.Endpoint))
		}
		return s3store.New(ctx, cfg.Bucket, opts...)
	case "minio":
		if cfg.Bucket == "" {
			return nil, errMissingBucket
		}
		return miniostore.Dial(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey, !cfg.Insecure, cfg.Bucket, cfg.Prefix)
	default:
		return nil, fmt.Errorf("unknown store %q (want local, s3 or minio)", cfg.Store)
	}
}
