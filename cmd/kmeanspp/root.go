package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/kmeanspp"
	"github.com/hupe1980/kmeanspp/blobstore"
	"github.com/hupe1980/kmeanspp/dataset"
	"github.com/hupe1980/kmeanspp/pointset"
	"github.com/hupe1980/kmeanspp/resource"
)

// Diagnostics printed for invalid arguments.
const (
	MsgInvalidK       = "Invalid number of clusters!"
	MsgInvalidMaxIter = "Invalid maximum iteration!"
	MsgInvalidEpsilon = "Invalid epsilon!"
)

// invocation holds the positional arguments. A field whose ok flag is
// false did not parse.
type invocation struct {
	k         int
	kOK       bool
	maxIter   int
	maxIterOK bool
	epsilon   float64
	epsilonOK bool
	fileA     string
	fileB     string
}

// parseArgs maps `k [iter] epsilon file1 file2` to an invocation.
func parseArgs(args []string) invocation {
	var in invocation

	k, err := strconv.Atoi(args[0])
	in.k, in.kOK = k, err == nil

	rest := args[1:]
	in.maxIter, in.maxIterOK = kmeanspp.DefaultMaxIter, true
	if len(rest) == 4 {
		it, err := strconv.Atoi(rest[0])
		in.maxIter, in.maxIterOK = it, err == nil
		rest = rest[1:]
	}

	eps, err := strconv.ParseFloat(rest[0], 64)
	in.epsilon, in.epsilonOK = eps, err == nil && !math.IsNaN(eps)

	in.fileA, in.fileB = rest[1], rest[2]
	return in
}

// diagnostics returns the message for every invalid argument given n points.
func (in invocation) diagnostics(n int) []string {
	var msgs []string
	err := kmeanspp.Validate(n, in.k, in.maxIter, in.epsilon)
	if !in.kOK || errors.Is(err, kmeanspp.ErrInvalidK) {
		msgs = append(msgs, MsgInvalidK)
	}
	if !in.maxIterOK || errors.Is(err, kmeanspp.ErrInvalidMaxIter) {
		msgs = append(msgs, MsgInvalidMaxIter)
	}
	if !in.epsilonOK || errors.Is(err, kmeanspp.ErrInvalidEpsilon) {
		msgs = append(msgs, MsgInvalidEpsilon)
	}
	return msgs
}

type app struct {
	flags      config
	configPath string

	// openStore is replaced in tests.
	openStore func(ctx context.Context, cfg config) (blobstore.BlobStore, error)
}

func newRootCmd() *cobra.Command {
	a := &app{
		flags:     defaultConfig(),
		openStore: openStore,
	}
	return a.command()
}

func (a *app) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kmeanspp [flags] k [iter] epsilon input_file_1 input_file_2",
		Short: "Cluster the inner join of two CSV tables with k-means++",
		Long: `Cluster points with k-means++ seeding followed by Lloyd's algorithm.

The two input tables are headerless CSV files whose first column is a
non-negative integer id. Rows present in both tables are joined on the id,
sorted by id, and their remaining columns form the point coordinates.
Files ending in .gz, .zst or .lz4 are decompressed.

Output: the ids of the seed points on the first line, then one line per
final centroid with four decimal places.

Flags must precede the positional arguments so a negative epsilon is not
mistaken for a flag.

Examples:
  kmeanspp 3 0.01 a.csv b.csv
  kmeanspp 3 100 0.01 a.csv b.csv
  kmeanspp --store s3 --bucket data --prefix runs/ 3 0.01 a.csv.gz b.csv.gz`,
		Args:         cobra.RangeArgs(4, 5),
		SilenceUsage: true,
		RunE:         a.run,
	}
	registerFlags(cmd, &a.flags, &a.configPath)
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := resolveConfig(cmd, a.flags, a.configPath)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	weighting, err := kmeanspp.ParseWeighting(cfg.Weighting)
	if err != nil {
		return err
	}

	in := parseArgs(args)

	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:   cfg.MemoryLimit,
		MaxConcurrentLoads: cfg.MaxConcurrentLoads,
		IOLimitBytesPerSec: cfg.IOLimit,
	})

	store, err := a.openStore(ctx, cfg)
	if err != nil {
		return err
	}

	metrics := &kmeanspp.BasicMetricsCollector{}
	ps, err := load(ctx, store, in, rc, logger, metrics)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if msgs := in.diagnostics(ps.Len()); len(msgs) > 0 {
		for _, msg := range msgs {
			fmt.Fprintln(out, msg)
		}
		return nil
	}

	c := kmeanspp.New(
		kmeanspp.WithLogger(logger.WithK(in.k).WithDimension(ps.Dim())),
		kmeanspp.WithMetricsCollector(metrics),
		kmeanspp.WithSeed(cfg.Seed),
		kmeanspp.WithWeighting(weighting),
		kmeanspp.WithDistinctSeeds(cfg.Distinct),
		kmeanspp.WithWorkers(cfg.Workers),
		kmeanspp.WithResourceController(rc),
	)
	report, err := c.Run(ctx, ps, in.k, in.maxIter, in.epsilon)
	if err != nil {
		return err
	}

	stats := metrics.GetStats()
	logger.DebugContext(ctx, "run stats",
		"rows", stats.LoadRows,
		"iterations", stats.FitIterations,
		"fit_nanos", stats.FitAvgNanos,
		"seed_nanos", stats.SeedAvgNanos,
	)

	return writeReport(out, report)
}

// load reads and joins both tables. An empty join is not an error here:
// it yields an empty point set, which the k check then rejects.
func load(ctx context.Context, store blobstore.BlobStore, in invocation, rc *resource.Controller,
	logger *kmeanspp.Logger, metrics kmeanspp.MetricsCollector,
) (*pointset.PointSet, error) {
	start := time.Now()
	ps, err := dataset.Load(ctx, store, in.fileA, in.fileB, dataset.WithResourceController(rc))
	if errors.Is(err, dataset.ErrEmptyJoin) {
		ps, err = pointset.New(1), nil
	}

	rows, dim := 0, 0
	if ps != nil {
		rows, dim = ps.Len(), ps.Dim()
	}
	metrics.RecordLoad(rows, time.Since(start), err)
	logger.LogLoad(ctx, rows, dim, err)

	return ps, err
}

// writeReport prints the seed ids, then one centroid per line.
func writeReport(w io.Writer, report *kmeanspp.Report) error {
	ids := make([]string, len(report.SeedIDs))
	for i, id := range report.SeedIDs {
		ids[i] = strconv.FormatUint(id, 10)
	}
	if _, err := fmt.Fprintln(w, strings.Join(ids, ",")); err != nil {
		return err
	}

	for _, centroid := range report.Centroids {
		if _, err := fmt.Fprintln(w, formatVector(centroid)); err != nil {
			return err
		}
	}
	return nil
}

func formatVector(v []float64) string {
	cells := make([]string, len(v))
	for i, x := range v {
		cells[i] = strconv.FormatFloat(x, 'f', 4, 64)
	}
	return strings.Join(cells, ",")
}
