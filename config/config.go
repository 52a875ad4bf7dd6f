package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/katalvlaran/mgpoisson/benchmark"
	"github.com/katalvlaran/mgpoisson/grid"
	"github.com/katalvlaran/mgpoisson/multigrid"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig indicates a configuration value outside its domain.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Right-hand sides selectable by solver.source.
const (
	SourceManufactured = "manufactured"
	SourceZero         = "zero"
	SourceConstant     = "constant"
)

// Config is the full mgsolve configuration.
type Config struct {
	Solver    SolverConfig    `yaml:"solver"`
	Benchmark BenchmarkConfig `yaml:"benchmark"`
	Output    OutputConfig    `yaml:"output"`
}

// SolverConfig mirrors multigrid.Options plus the fine grid size.
type SolverConfig struct {
	N                   int     `yaml:"n"`
	Levels              int     `yaml:"levels"`
	MaxCycles           int     `yaml:"max_cycles"`
	Tolerance           float64 `yaml:"tolerance"`
	Omega               float64 `yaml:"omega"`
	Sweeps              int     `yaml:"sweeps"`
	DivergenceThreshold float64 `yaml:"divergence_threshold"`
	Coarse              string  `yaml:"coarse"`
	Source              string  `yaml:"source"`
	SourceValue         float64 `yaml:"source_value"` // f for the constant source
}

// BenchmarkConfig selects the benchmarked resolutions.
type BenchmarkConfig struct {
	Sizes       []int `yaml:"sizes"`
	Parallelism int   `yaml:"parallelism"`
}

// OutputConfig names optional artifacts. Empty paths disable them.
type OutputConfig struct {
	Plot        string `yaml:"plot"`
	HTML        string `yaml:"html"`
	CSV         string `yaml:"csv"`
	DB          string `yaml:"db"`
	PlotDir     string `yaml:"plot_dir"`
	MetricsFile string `yaml:"metrics_file"`
	LogLevel    string `yaml:"log_level"`
}

// Default returns the built-in configuration: N=128 with three coarse
// levels, and the multigrid package defaults for everything else.
func Default() *Config {
	return &Config{
		Solver: SolverConfig{
			N:                   128,
			Levels:              3,
			MaxCycles:           multigrid.DefaultMaxCycles,
			Tolerance:           multigrid.DefaultTolerance,
			Omega:               multigrid.DefaultOmega,
			Sweeps:              multigrid.DefaultSweeps,
			DivergenceThreshold: multigrid.DefaultDivergenceThreshold,
			Coarse:              multigrid.DefaultCoarse.String(),
			Source:              SourceManufactured,
			SourceValue:         1,
		},
		Benchmark: BenchmarkConfig{
			Sizes:       slices.Clone(benchmark.DefaultSizes),
			Parallelism: runtime.GOMAXPROCS(0),
		},
		Output: OutputConfig{
			LogLevel: "info",
		},
	}
}

// Load reads path over Default and validates the result. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty document leaves the defaults untouched.
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every invalid value at once, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []string

	s := c.Solver
	if err := multigrid.CheckGridSize(s.N, s.Levels); err != nil {
		errs = append(errs, err.Error())
	}
	if _, err := multigrid.ParseCoarseMethod(s.Coarse); err != nil {
		errs = append(errs, err.Error())
	} else if err = c.solverOptions().Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	switch strings.ToLower(s.Source) {
	case SourceManufactured, SourceZero:
	case SourceConstant:
		if math.IsNaN(s.SourceValue) || math.IsInf(s.SourceValue, 0) {
			errs = append(errs, fmt.Sprintf("solver.source_value %v must be finite", s.SourceValue))
		}
	default:
		errs = append(errs, fmt.Sprintf("solver.source %q is not manufactured|zero|constant", s.Source))
	}

	if len(c.Benchmark.Sizes) == 0 {
		errs = append(errs, "benchmark.sizes must not be empty")
	}
	for _, n := range c.Benchmark.Sizes {
		if n < 1 {
			errs = append(errs, fmt.Sprintf("benchmark size %d must be >= 1", n))
			continue
		}
		// Every size is solved with one coarse level and with MaxLevels.
		for _, lmax := range []int{1, benchmark.MaxLevels(n)} {
			if err := multigrid.CheckGridSize(n, lmax); err != nil {
				errs = append(errs, fmt.Sprintf("benchmark size %d: %v", n, err))
				break
			}
		}
	}
	if c.Benchmark.Parallelism < 1 {
		errs = append(errs, "benchmark.parallelism must be >= 1")
	}

	if c.Output.LogLevel != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(c.Output.LogLevel)); err != nil {
			errs = append(errs, fmt.Sprintf("output.log_level %q is not a level", c.Output.LogLevel))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}

	return nil
}

// SolverOptions converts the solver section to multigrid options. The
// configuration must be valid.
func (c *Config) SolverOptions() []multigrid.Option {
	s := c.Solver
	coarse, _ := multigrid.ParseCoarseMethod(s.Coarse)

	return []multigrid.Option{
		multigrid.WithLevels(s.Levels),
		multigrid.WithMaxCycles(s.MaxCycles),
		multigrid.WithTolerance(s.Tolerance),
		multigrid.WithOmega(s.Omega),
		multigrid.WithSweeps(s.Sweeps),
		multigrid.WithDivergenceThreshold(s.DivergenceThreshold),
		multigrid.WithCoarse(coarse),
		multigrid.WithSource(c.Source()),
	}
}

// Source returns the configured right-hand side. Unknown names fall back to
// the manufactured source.
func (c *Config) Source() grid.Source {
	switch strings.ToLower(c.Solver.Source) {
	case SourceZero:
		return grid.ZeroSource
	case SourceConstant:
		return grid.Constant(c.Solver.SourceValue)
	default:
		return grid.ManufacturedSource
	}
}

// ExactSolution returns the closed-form solution of the configured problem,
// or nil when none is known.
func (c *Config) ExactSolution() grid.Source {
	switch strings.ToLower(c.Solver.Source) {
	case SourceZero:
		return grid.ZeroSource
	case SourceConstant:
		return nil
	default:
		return grid.ManufacturedSolution
	}
}

// solverOptions applies SolverOptions to the package defaults.
func (c *Config) solverOptions() multigrid.Options {
	o := multigrid.DefaultOptions()
	for _, opt := range c.SolverOptions() {
		opt(&o)
	}

	return o
}
