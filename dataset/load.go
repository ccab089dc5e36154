package dataset

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/kmeanspp/blobstore"
	"github.com/hupe1980/kmeanspp/pointset"
	"github.com/hupe1980/kmeanspp/resource"
)

type options struct {
	controller *resource.Controller
}

// Option configures Load.
type Option func(*options)

// WithResourceController bounds concurrent table decoding and input read
// throughput with rc.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// Load reads the tables nameA and nameB from store concurrently and joins them.
func Load(ctx context.Context, store blobstore.BlobStore, nameA, nameB string, optFns ...Option) (*pointset.PointSet, error) {
	var o options
	for _, fn := range optFns {
		fn(&o)
	}

	names := [2]string{nameA, nameB}
	var tables [2]*Table

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			t, err := LoadTable(gctx, store, name, o.controller)
			if err != nil {
				return err
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Join(tables[0], tables[1])
}

// LoadTable opens, decompresses and decodes a single table.
// rc may be nil.
func LoadTable(ctx context.Context, store blobstore.BlobStore, name string, rc *resource.Controller) (*Table, error) {
	if err := rc.AcquireLoad(ctx); err != nil {
		return nil, err
	}
	defer rc.ReleaseLoad()

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", name, err)
	}
	defer blob.Close()

	r := blobstore.NewReader(blob)
	if rc != nil {
		r = resource.NewRateLimitedReader(ctx, r, rc)
	}

	dec, err := Decompress(DetectCompression(name), r)
	if err != nil {
		return nil, fmt.Errorf("dataset: decompress %s: %w", name, err)
	}
	defer dec.Close()

	t, err := ReadTable(dec)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", name, err)
	}
	return t, nil
}
