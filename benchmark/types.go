package benchmark

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/katalvlaran/mgpoisson/multigrid"
)

// DefaultSizes are the interior point counts benchmarked when none are given.
var DefaultSizes = []int{16, 32, 64, 128, 256}

// Result is the outcome of one solve.
type Result struct {
	Levels    int // lmax used
	Cycles    int
	Residual  float64 // final residual norm
	Elapsed   time.Duration
	Status    multigrid.Status
	Residuals []float64 // full history, for plotting
}

// Row compares both hierarchies for one N.
type Row struct {
	N        int
	TwoLevel Result
	MaxLevel Result
}

// Option configures Run.
type Option func(*config)

type config struct {
	parallelism int
	solver      []multigrid.Option
	logger      *slog.Logger
}

func defaultConfig() config {
	return config{
		parallelism: runtime.GOMAXPROCS(0),
		logger:      slog.New(slog.DiscardHandler),
	}
}

// WithParallelism bounds the number of concurrent solves.
func WithParallelism(n int) Option { return func(c *config) { c.parallelism = n } }

// WithSolverOptions passes options to every solve. Levels is always
// overridden per run.
func WithSolverOptions(opts ...multigrid.Option) Option {
	return func(c *config) { c.solver = append(c.solver, opts...) }
}

// WithLogger sets the logger for per-run summaries.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
