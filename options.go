package kmeanspp

import (
	"log/slog"
	"math/rand"

	"github.com/hupe1980/kmeanspp/internal/seed"
	"github.com/hupe1980/kmeanspp/resource"
)

// DefaultSeed is the random seed used when neither WithSeed nor WithRand is given.
const DefaultSeed = seed.DefaultSeed

// Weighting selects how seeding candidates are weighted by their distance
// to the nearest chosen seed.
type Weighting = seed.Weighting

const (
	// WeightDistance weights candidates by the plain Euclidean distance.
	WeightDistance = seed.WeightDistance

	// WeightSquaredDistance weights candidates by the squared distance
	// (the textbook k-means++ D² rule).
	WeightSquaredDistance = seed.WeightSquaredDistance
)

// ParseWeighting parses "distance" or "squared". The empty string selects WeightDistance.
func ParseWeighting(s string) (Weighting, error) { return seed.ParseWeighting(s) }

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	seed             int64
	rng              *rand.Rand
	weighting        Weighting
	distinct         bool
	workers          int
	controller       *resource.Controller
}

// Option configures a Clusterer.
type Option func(*options)

// WithSeed sets the seed of the random source created for each Seed call.
// Two Clusterers built with the same seed select the same seeds.
func WithSeed(s int64) Option {
	return func(o *options) {
		o.seed = s
	}
}

// WithRand injects a random source shared by all Seed calls of the Clusterer.
// The source is not safe for concurrent use; callers sharing a Clusterer
// across goroutines should use WithSeed instead.
//
// If nil is passed, a source seeded from WithSeed is created per call.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rng = r
	}
}

// WithWeighting configures the seeding weight rule. Defaults to WeightDistance.
func WithWeighting(w Weighting) Option {
	return func(o *options) {
		o.weighting = w
	}
}

// WithDistinctSeeds forbids selecting the same point twice during seeding.
// By default a point may be chosen again, matching the classic behavior.
func WithDistinctSeeds(distinct bool) Option {
	return func(o *options) {
		o.distinct = distinct
	}
}

// WithWorkers bounds the goroutines used by the assignment step.
// If workers <= 0, runtime.GOMAXPROCS(0) is used. Results do not depend
// on the worker count.
func WithWorkers(workers int) Option {
	return func(o *options) {
		o.workers = workers
	}
}

// WithResourceController enforces a memory budget on Fit.
// Pass nil to disable enforcement.
//
// Example:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 30})
//	c := kmeanspp.New(kmeanspp.WithResourceController(rc))
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &kmeanspp.BasicMetricsCollector{}
//	c := kmeanspp.New(kmeanspp.WithMetricsCollector(metrics))
//	// ... use c ...
//	stats := metrics.GetStats()
//	fmt.Printf("Fits: %d, Avg latency: %dns\n", stats.FitCount, stats.FitAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := kmeanspp.NewJSONLogger(slog.LevelInfo)
//	c := kmeanspp.New(kmeanspp.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		seed:             DefaultSeed,
		weighting:        WeightDistance,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
