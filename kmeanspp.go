package kmeanspp

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/hupe1980/kmeanspp/internal/kmeans"
	"github.com/hupe1980/kmeanspp/internal/seed"
	"github.com/hupe1980/kmeanspp/pointset"
	"github.com/hupe1980/kmeanspp/resource"
)

// State is the lifecycle state of a clustering run.
type State = kmeans.State

// Run states.
const (
	StateSeeding   = kmeans.StateSeeding
	StateAssigning = kmeans.StateAssigning
	StateUpdating  = kmeans.StateUpdating
	StateConverged = kmeans.StateConverged
	StateExhausted = kmeans.StateExhausted
)

// Iteration describes one completed assignment+update step.
type Iteration = kmeans.Iteration

// Result is the outcome of Fit: the final centroids in seed order plus
// run statistics.
type Result = kmeans.Result

// Params declares the shape and stopping rule of a Fit call.
type Params struct {
	// N is the number of points.
	N int
	// D is the dimension of every point and centroid.
	D int
	// K is the number of clusters.
	K int
	// MaxIter bounds the number of assignment+update steps.
	MaxIter int
	// Epsilon is the convergence threshold on the largest centroid shift.
	Epsilon float64
}

// Report is the outcome of Run.
type Report struct {
	// SeedIDs are the point identifiers selected as initial centroids,
	// in selection order. Duplicates are possible unless WithDistinctSeeds is set.
	SeedIDs []uint64

	*Result
}

// Clusterer seeds and fits k-means clusterings.
type Clusterer struct {
	opts options
}

// New creates a Clusterer.
func New(optFns ...Option) *Clusterer {
	return &Clusterer{opts: applyOptions(optFns)}
}

// Seed selects k point identifiers as initial centroids. The first is
// drawn uniformly; every later one with probability proportional to its
// distance to the nearest seed chosen so far.
func (c *Clusterer) Seed(ctx context.Context, ps *pointset.PointSet, k int) (ids []uint64, err error) {
	start := time.Now()
	defer func() {
		c.opts.metricsCollector.RecordSeed(k, time.Since(start), err)
		c.opts.logger.LogSeed(ctx, k, ids, err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ps == nil || ps.Len() == 0 {
		return nil, ErrEmptyPointSet
	}

	seeder := seed.New(c.newRand(),
		seed.WithWeighting(c.opts.weighting),
		seed.WithDistinct(c.opts.distinct),
	)
	ids, err = seeder.Seed(ps, k)
	if err != nil {
		return nil, translateError(err)
	}
	return ids, nil
}

// Fit refines initial centroids with Lloyd's algorithm over points until
// the largest centroid shift drops below p.Epsilon or p.MaxIter iterations
// have run. Neither points nor initial is modified.
func (c *Clusterer) Fit(ctx context.Context, p Params, points, initial [][]float64) (res *Result, err error) {
	start := time.Now()
	defer func() {
		var (
			iterations int
			converged  bool
		)
		if res != nil {
			iterations, converged = res.Iterations, res.Converged
		}
		c.opts.metricsCollector.RecordFit(iterations, converged, time.Since(start), err)
		c.opts.logger.LogFit(ctx, res, err)
	}()

	if err := c.checkParams(p, points, initial); err != nil {
		return nil, err
	}

	release, err := c.opts.controller.Reserve(resource.VectorBytes(p.N+2*p.K, p.D))
	if err != nil {
		return nil, translateError(err)
	}
	defer release()

	res, err = kmeans.Fit(ctx, points, initial, kmeans.Config{
		MaxIter: p.MaxIter,
		Epsilon: p.Epsilon,
		Workers: c.opts.workers,
		Observer: func(it kmeans.Iteration) {
			c.opts.logger.LogIteration(ctx, it)
		},
	})
	if err != nil {
		return nil, translateError(err)
	}
	return res, nil
}

// Run seeds ps and fits k clusters in one call.
func (c *Clusterer) Run(ctx context.Context, ps *pointset.PointSet, k, maxIter int, epsilon float64) (*Report, error) {
	if ps == nil || ps.Len() == 0 {
		return nil, ErrEmptyPointSet
	}
	if err := Validate(ps.Len(), k, maxIter, epsilon); err != nil {
		return nil, err
	}

	ids, err := c.Seed(ctx, ps, k)
	if err != nil {
		return nil, err
	}
	initial, err := ps.Resolve(ids)
	if err != nil {
		return nil, err
	}

	res, err := c.Fit(ctx, Params{
		N:       ps.Len(),
		D:       ps.Dim(),
		K:       k,
		MaxIter: maxIter,
		Epsilon: epsilon,
	}, ps.Vectors(), initial)
	if err != nil {
		return nil, err
	}
	return &Report{SeedIDs: ids, Result: res}, nil
}

func (c *Clusterer) newRand() *rand.Rand {
	if c.opts.rng != nil {
		return c.opts.rng
	}
	return rand.New(rand.NewSource(c.opts.seed)) // nolint gosec
}

func (c *Clusterer) checkParams(p Params, points, initial [][]float64) error {
	if p.N == 0 || len(points) == 0 {
		return ErrEmptyPointSet
	}
	if err := Validate(p.N, p.K, p.MaxIter, p.Epsilon); err != nil {
		return err
	}
	if len(points) != p.N {
		return &ErrShapeMismatch{Field: "points", Declared: p.N, Actual: len(points)}
	}
	if len(initial) != p.K {
		return &ErrShapeMismatch{Field: "initial", Declared: p.K, Actual: len(initial)}
	}
	if p.D < 1 {
		return fmt.Errorf("%w: dimension %d", pointset.ErrInvalidDimension, p.D)
	}
	if len(points[0]) != p.D {
		return &ErrDimensionMismatch{Expected: p.D, Actual: len(points[0])}
	}
	return nil
}
