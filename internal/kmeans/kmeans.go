package kmeans

import (
	"context"
	"math"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/hupe1980/kmeanspp/distance"
)

// chunkSize is the number of points per assignment partition. It is fixed
// so the reduction order, and therefore the floating point result, is the
// same for any number of workers.
const chunkSize = 1024

// Config controls a Fit run.
type Config struct {
	// MaxIter is the iteration budget. Must be >= 1.
	MaxIter int

	// Epsilon is the convergence threshold: the run converges once every
	// centroid moved strictly less than Epsilon in one iteration.
	Epsilon float64

	// Workers bounds the goroutines used for assignment.
	// If <= 0, runtime.GOMAXPROCS(0) is used.
	Workers int

	// Observer, if set, is called after every update step.
	Observer func(Iteration)
}

// Iteration describes one completed assignment+update step.
type Iteration struct {
	// Index is the 1-based iteration number.
	Index int

	// Inertia is the within-cluster sum of squares of the centroids that
	// entered this iteration. It never increases from one iteration to the next.
	Inertia float64

	// Shift is the largest centroid displacement of this iteration.
	Shift float64

	// State is StateAssigning if another iteration follows, otherwise the
	// terminal state.
	State State
}

// Result is the outcome of Fit.
type Result struct {
	Centroids  [][]float64
	Iterations int
	Converged  bool
	State      State

	// Inertia is the within-cluster sum of squares of the final centroids.
	Inertia float64
}

// Fit runs Lloyd's algorithm from the given initial centroids.
// Neither points nor initial is modified.
func Fit(ctx context.Context, points, initial [][]float64, cfg Config) (*Result, error) {
	if err := validate(points, initial, cfg); err != nil {
		return nil, err
	}

	centroids := cloneVectors(initial)
	e := newEngine(points, len(centroids), len(points[0]), cfg.Workers)

	res := &Result{State: StateSeeding}
	for iter := 0; iter < cfg.MaxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res.State = StateAssigning
		if err := e.assign(ctx, centroids); err != nil {
			return nil, err
		}

		res.State = StateUpdating
		inertia := e.inertia()
		shift := e.update(centroids)
		res.Iterations = iter + 1

		switch {
		case shift < cfg.Epsilon:
			res.State = StateConverged
			res.Converged = true
		case res.Iterations == cfg.MaxIter:
			res.State = StateExhausted
		default:
			res.State = StateAssigning
		}

		if cfg.Observer != nil {
			cfg.Observer(Iteration{
				Index:   res.Iterations,
				Inertia: inertia,
				Shift:   shift,
				State:   res.State,
			})
		}

		if res.Converged {
			break
		}
	}

	res.Centroids = centroids
	res.Inertia = Inertia(points, centroids)
	return res, nil
}

// Step runs a single assignment+update from centroids and returns the new
// centroids and the largest displacement. centroids is not modified.
// Input is checked like Fit's.
func Step(points, centroids [][]float64) ([][]float64, float64, error) {
	if err := validate(points, centroids, Config{MaxIter: 1}); err != nil {
		return nil, 0, err
	}
	next := cloneVectors(centroids)
	e := newEngine(points, len(next), len(points[0]), 1)
	if err := e.assign(context.Background(), next); err != nil {
		return nil, 0, err
	}
	return next, e.update(next), nil
}

// Assign returns the index of the centroid nearest to vec.
// Distances are compared squared, which selects the same centroid as the
// Euclidean distance; exact ties resolve to the lowest index.
func Assign(vec []float64, centroids [][]float64) int {
	idx, _ := distance.Nearest(vec, centroids)
	return idx
}

// Inertia returns the sum of squared distances from every point to its
// nearest centroid.
func Inertia(points, centroids [][]float64) float64 {
	var total float64
	for _, p := range points {
		_, d := distance.Nearest(p, centroids)
		total += d
	}
	return total
}

// partial holds one chunk's contribution to an update step.
type partial struct {
	sums    []float64 // k*dim, row-major by centroid
	counts  []int
	inertia float64
}

type engine struct {
	points  [][]float64
	k, dim  int
	workers int
	chunks  []partial
	sums    []float64
	counts  []int
}

func newEngine(points [][]float64, k, dim, workers int) *engine {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	numChunks := (len(points) + chunkSize - 1) / chunkSize
	chunks := make([]partial, numChunks)
	for i := range chunks {
		chunks[i] = partial{
			sums:   make([]float64, k*dim),
			counts: make([]int, k),
		}
	}
	return &engine{
		points:  points,
		k:       k,
		dim:     dim,
		workers: workers,
		chunks:  chunks,
		sums:    make([]float64, k*dim),
		counts:  make([]int, k),
	}
}

// assign fills every chunk's partial against centroids. Centroids are
// read-only here; Wait is the barrier before update.
func (e *engine) assign(ctx context.Context, centroids [][]float64) error {
	if e.workers == 1 || len(e.chunks) == 1 {
		for c := range e.chunks {
			e.assignChunk(c, centroids)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for c := range e.chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			e.assignChunk(c, centroids)
			return nil
		})
	}
	return g.Wait()
}

func (e *engine) assignChunk(c int, centroids [][]float64) {
	p := &e.chunks[c]
	clear(p.sums)
	clear(p.counts)
	p.inertia = 0

	start := c * chunkSize
	end := min(start+chunkSize, len(e.points))
	for _, vec := range e.points[start:end] {
		idx, d := distance.Nearest(vec, centroids)
		floats.Add(p.sums[idx*e.dim:(idx+1)*e.dim], vec)
		p.counts[idx]++
		p.inertia += d
	}
}

func (e *engine) inertia() float64 {
	var total float64
	for i := range e.chunks {
		total += e.chunks[i].inertia
	}
	return total
}

// update reduces the chunk partials in order, moves every non-empty
// centroid to its mean and returns the largest displacement. Empty
// clusters keep their coordinates.
func (e *engine) update(centroids [][]float64) float64 {
	clear(e.sums)
	clear(e.counts)
	for i := range e.chunks {
		floats.Add(e.sums, e.chunks[i].sums)
		for j, n := range e.chunks[i].counts {
			e.counts[j] += n
		}
	}

	var maxShift float64
	next := make([]float64, e.dim)
	for j := range e.k {
		if e.counts[j] == 0 {
			continue
		}
		floats.ScaleTo(next, 1/float64(e.counts[j]), e.sums[j*e.dim:(j+1)*e.dim])
		if shift := distance.Euclidean(centroids[j], next); shift > maxShift || math.IsNaN(shift) {
			maxShift = shift
		}
		copy(centroids[j], next)
	}
	return maxShift
}

func validate(points, initial [][]float64, cfg Config) error {
	if len(points) == 0 {
		return ErrNoPoints
	}
	if len(initial) == 0 {
		return ErrNoCentroids
	}
	dim := len(points[0])
	if dim == 0 {
		return ErrZeroDimension
	}
	for i, p := range points {
		if len(p) != dim {
			return &ErrDimensionMismatch{Kind: "point", Index: i, Expected: dim, Actual: len(p)}
		}
	}
	for i, c := range initial {
		if len(c) != dim {
			return &ErrDimensionMismatch{Kind: "centroid", Index: i, Expected: dim, Actual: len(c)}
		}
	}
	if cfg.MaxIter < 1 {
		return ErrInvalidMaxIter
	}
	if cfg.Epsilon < 0 || math.IsNaN(cfg.Epsilon) {
		return ErrInvalidEpsilon
	}
	return nil
}

func cloneVectors(vecs [][]float64) [][]float64 {
	out := make([][]float64, len(vecs))
	for i, v := range vecs {
		out[i] = slices.Clone(v)
	}
	return out
}
