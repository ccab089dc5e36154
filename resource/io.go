package resource

import (
	"context"
	"io"
)

// RateLimitedReader wraps an io.Reader with the controller's IO limit.
type RateLimitedReader struct {
	r     io.Reader
	rc    *Controller
	ctx   context.Context
	chunk int
}

// NewRateLimitedReader creates a new RateLimitedReader.
func NewRateLimitedReader(ctx context.Context, r io.Reader, rc *Controller) *RateLimitedReader {
	chunk := 0
	if rc != nil && rc.cfg.IOLimitBytesPerSec > 0 {
		// WaitN fails for n above the burst, which equals the per-second limit.
		chunk = int(rc.cfg.IOLimitBytesPerSec)
	}
	return &RateLimitedReader{
		r:     r,
		rc:    rc,
		ctx:   ctx,
		chunk: chunk,
	}
}

func (r *RateLimitedReader) Read(p []byte) (n int, err error) {
	if r.chunk > 0 && len(p) > r.chunk {
		p = p[:r.chunk]
	}
	if err := r.rc.AcquireIO(r.ctx, len(p)); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
