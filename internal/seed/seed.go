package seed

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"gonum.org/v1/gonum/floats"

	"github.com/hupe1980/kmeanspp/distance"
	"github.com/hupe1980/kmeanspp/pointset"
)

// DefaultSeed is the fixed generator seed used when no generator is injected.
const DefaultSeed int64 = 1234

var (
	// ErrInvalidK is returned when k is outside [1, n].
	ErrInvalidK = errors.New("seed: k out of range")

	// ErrEmptyPointSet is returned when the point set has no points.
	ErrEmptyPointSet = errors.New("seed: empty point set")
)

// Weighting selects how a point's nearest-centroid distance becomes its
// sampling weight.
type Weighting int

const (
	// WeightDistance uses the raw Euclidean distance.
	WeightDistance Weighting = iota
	// WeightSquaredDistance uses the squared distance (canonical k-means++).
	WeightSquaredDistance
)

func (w Weighting) String() string {
	switch w {
	case WeightDistance:
		return "distance"
	case WeightSquaredDistance:
		return "squared"
	default:
		return fmt.Sprintf("Unknown(%d)", w)
	}
}

// ParseWeighting maps "distance" or "squared" to a Weighting.
func ParseWeighting(s string) (Weighting, error) {
	switch s {
	case "", "distance":
		return WeightDistance, nil
	case "squared":
		return WeightSquaredDistance, nil
	default:
		return 0, fmt.Errorf("seed: unknown weighting %q", s)
	}
}

// Option configures a Seeder.
type Option func(*Seeder)

// WithWeighting sets the weighting scheme. Default: WeightDistance.
func WithWeighting(w Weighting) Option {
	return func(s *Seeder) {
		s.weighting = w
	}
}

// WithDistinct excludes already-chosen identifiers from later draws.
func WithDistinct(distinct bool) Option {
	return func(s *Seeder) {
		s.distinct = distinct
	}
}

// Seeder selects initial centroid identifiers.
// A Seeder owns its generator state and is not safe for concurrent use.
type Seeder struct {
	rng       *rand.Rand
	weighting Weighting
	distinct  bool
}

// New creates a Seeder drawing from rng.
// If rng is nil, a generator seeded with DefaultSeed is used.
func New(rng *rand.Rand, opts ...Option) *Seeder {
	if rng == nil {
		rng = rand.New(rand.NewSource(DefaultSeed)) // nolint gosec
	}
	s := &Seeder{rng: rng}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed returns k identifiers from ps in selection order.
func (s *Seeder) Seed(ps *pointset.PointSet, k int) ([]uint64, error) {
	n := ps.Len()
	if n == 0 {
		return nil, ErrEmptyPointSet
	}
	if k < 1 || k > n {
		return nil, fmt.Errorf("%w: k=%d, n=%d", ErrInvalidK, k, n)
	}

	ids := ps.IDs()
	vecs := ps.Vectors()

	first := s.rng.Intn(n)
	chosen := make([]uint64, 0, k)
	chosen = append(chosen, ids[first])
	chosenSet := roaring64.New()
	chosenSet.Add(ids[first])

	nearest := make([]float64, n)
	for i := range nearest {
		nearest[i] = math.Inf(1)
	}
	weights := make([]float64, n)
	last := vecs[first]

	for len(chosen) < k {
		// Only the newest pick can lower a point's nearest distance.
		for i, v := range vecs {
			if d := distance.Euclidean(v, last); d < nearest[i] {
				nearest[i] = d
			}
		}

		for i, d := range nearest {
			if s.distinct && chosenSet.Contains(ids[i]) {
				weights[i] = 0
				continue
			}
			if s.weighting == WeightSquaredDistance {
				d *= d
			}
			weights[i] = d
		}

		idx := s.draw(weights, ids, chosenSet)
		chosen = append(chosen, ids[idx])
		chosenSet.Add(ids[idx])
		last = vecs[idx]
	}

	return chosen, nil
}

// draw picks an index from weights. Zero total weight falls back to a
// uniform draw over every eligible point.
func (s *Seeder) draw(weights []float64, ids []uint64, chosenSet *roaring64.Bitmap) int {
	if !Normalize(weights) {
		eligible := make([]int, 0, len(weights))
		for i, id := range ids {
			if s.distinct && chosenSet.Contains(id) {
				continue
			}
			eligible = append(eligible, i)
		}
		return eligible[s.rng.Intn(len(eligible))]
	}

	u := s.rng.Float64()
	var acc float64
	lastPositive := 0
	for i, w := range weights {
		if w == 0 {
			continue
		}
		acc += w
		lastPositive = i
		if u < acc {
			return i
		}
	}
	// Rounding left acc slightly below 1.
	return lastPositive
}

// Normalize scales weights in place so they sum to 1.
// It returns false, leaving weights untouched, when the sum is zero.
func Normalize(weights []float64) bool {
	total := floats.Sum(weights)
	if total == 0 || math.IsNaN(total) {
		return false
	}
	floats.Scale(1/total, weights)
	return true
}
