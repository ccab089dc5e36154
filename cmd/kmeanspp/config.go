package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/kmeanspp"
)

const (
	// DefaultStore reads inputs from the local file system.
	DefaultStore = "local"

	// DefaultLogLevel keeps stderr quiet unless something goes wrong.
	DefaultLogLevel = "warn"
)

// config holds every tunable of a run. It can be loaded from a YAML file;
// flags set on the command line take precedence.
type config struct {
	Store     string `yaml:"store"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Insecure  bool   `yaml:"insecure"`

	Seed      int64  `yaml:"seed"`
	Weighting string `yaml:"weighting"`
	Distinct  bool   `yaml:"distinct"`
	Workers   int    `yaml:"workers"`

	MemoryLimit        int64 `yaml:"memory_limit"`
	IOLimit            int64 `yaml:"io_limit"`
	MaxConcurrentLoads int64 `yaml:"max_concurrent_loads"`

	LogLevel string `yaml:"log_level"`
	LogJSON  bool   `yaml:"log_json"`
}

func defaultConfig() config {
	return config{
		Store:     DefaultStore,
		Seed:      kmeanspp.DefaultSeed,
		Weighting: kmeanspp.WeightDistance.String(),
		LogLevel:  DefaultLogLevel,
	}
}

// registerFlags binds the flags of cmd to f.
func registerFlags(cmd *cobra.Command, f *config, configPath *string) {
	flags := cmd.Flags()

	flags.StringVar(configPath, "config", "", "YAML config file (flags override its values)")

	flags.StringVar(&f.Store, "store", f.Store, "Input store: local, s3 or minio")
	flags.StringVar(&f.Bucket, "bucket", f.Bucket, "Bucket holding the input tables (s3, minio)")
	flags.StringVar(&f.Prefix, "prefix", f.Prefix, "Key prefix, or root directory for the local store")
	flags.StringVar(&f.Endpoint, "endpoint", f.Endpoint, "Custom endpoint (s3, minio)")
	flags.StringVar(&f.Region, "region", f.Region, "AWS region override (s3)")
	flags.StringVar(&f.AccessKey, "access-key", f.AccessKey, "Access key (minio)")
	flags.StringVar(&f.SecretKey, "secret-key", f.SecretKey, "Secret key (minio)")
	flags.BoolVar(&f.Insecure, "insecure", f.Insecure, "Use plain HTTP (minio)")

	flags.Int64Var(&f.Seed, "seed", f.Seed, "Random seed for centroid seeding")
	flags.StringVar(&f.Weighting, "weighting", f.Weighting, "Seeding weights: distance or squared")
	flags.BoolVar(&f.Distinct, "distinct", f.Distinct, "Never select the same point twice as a seed")
	flags.IntVarP(&f.Workers, "workers", "w", f.Workers, "Assignment workers (0 = GOMAXPROCS)")

	flags.Int64Var(&f.MemoryLimit, "memory-limit", f.MemoryLimit, "Memory budget for points and centroids in bytes (0 = unlimited)")
	flags.Int64Var(&f.IOLimit, "io-limit", f.IOLimit, "Input read limit in bytes per second (0 = unlimited)")
	flags.Int64Var(&f.MaxConcurrentLoads, "max-concurrent-loads", f.MaxConcurrentLoads, "Tables decoded at once (0 = both)")

	flags.StringVar(&f.LogLevel, "log-level", f.LogLevel, "Log level: debug, info, warn or error")
	flags.BoolVar(&f.LogJSON, "log-json", f.LogJSON, "Log as JSON")
}

// loadConfigFile decodes the YAML file at path over cfg.
func loadConfigFile(path string, cfg *config) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: Path is configurable
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// overlayFlags copies every flag explicitly set on cmd from f into cfg.
func overlayFlags(cmd *cobra.Command, f config, cfg *config) {
	changed := cmd.Flags().Changed

	if changed("store") {
		cfg.Store = f.Store
	}
	if changed("bucket") {
		cfg.Bucket = f.Bucket
	}
	if changed("prefix") {
		cfg.Prefix = f.Prefix
	}
	if changed("endpoint") {
		cfg.Endpoint = f.Endpoint
	}
	if changed("region") {
		cfg.Region = f.Region
	}
	if changed("access-key") {
		cfg.AccessKey = f.AccessKey
	}
	if changed("secret-key") {
		cfg.SecretKey = f.SecretKey
	}
	if changed("insecure") {
		cfg.Insecure = f.Insecure
	}
	if changed("seed") {
		cfg.Seed = f.Seed
	}
	if changed("weighting") {
		cfg.Weighting = f.Weighting
	}
	if changed("distinct") {
		cfg.Distinct = f.Distinct
	}
	if changed("workers") {
		cfg.Workers = f.Workers
	}
	if changed("memory-limit") {
		cfg.MemoryLimit = f.MemoryLimit
	}
	if changed("io-limit") {
		cfg.IOLimit = f.IOLimit
	}
	if changed("max-concurrent-loads") {
		cfg.MaxConcurrentLoads = f.MaxConcurrentLoads
	}
	if changed("log-level") {
		cfg.LogLevel = f.LogLevel
	}
	if changed("log-json") {
		cfg.LogJSON = f.LogJSON
	}
}

// resolveConfig merges defaults, the optional config file and flags.
func resolveConfig(cmd *cobra.Command, f config, configPath string) (config, error) {
	if configPath == "" {
		return f, nil
	}
	cfg := defaultConfig()
	if err := loadConfigFile(configPath, &cfg); err != nil {
		return config{}, err
	}
	overlayFlags(cmd, f, &cfg)
	return cfg, nil
}

// newLogger builds the run logger writing to w.
func newLogger(cfg config, w io.Writer) (*kmeanspp.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogJSON {
		return kmeanspp.NewLogger(slog.NewJSONHandler(w, opts)), nil
	}
	return kmeanspp.NewLogger(slog.NewTextHandler(w, opts)), nil
}
