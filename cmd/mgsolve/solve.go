package main

import (
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/mgpoisson/config"
	"github.com/katalvlaran/mgpoisson/grid"
	"github.com/katalvlaran/mgpoisson/metrics"
	"github.com/katalvlaran/mgpoisson/multigrid"
	"github.com/katalvlaran/mgpoisson/report"
	"github.com/spf13/cobra"
)

// solveFlags are the flag values of the solve command. Only flags set on the
// command line override the configuration.
type solveFlags struct {
	n, levels, maxCycles, sweeps int
	tol, omega, sourceValue      float64
	coarse, source               string
	plot, html, metricsFile      string
}

func newSolveCmd(a *app) *cobra.Command {
	def := config.Default()
	f := &solveFlags{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a Poisson problem and print the residual history",
		Long: `Solves -Δu = f on the unit square and reports the residual after every
V-cycle. The default source is f = 2π² sin(πx) sin(πy), whose exact solution
sin(πx) sin(πy) also yields the maximum nodal error. --source zero and
--source constant select f ≡ 0 and f ≡ --source-value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.apply(cmd, a.cfg)
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			return a.runSolve(cmd.OutOrStdout())
		},
	}

	fl := cmd.Flags()
	fl.IntVarP(&f.n, "n", "n", def.Solver.N, "interior points per dimension")
	fl.IntVar(&f.levels, "levels", def.Solver.Levels, "coarse levels below the finest grid (0 = direct solve)")
	fl.IntVar(&f.maxCycles, "max-cycles", def.Solver.MaxCycles, "maximum number of V-cycles")
	fl.Float64Var(&f.tol, "tol", def.Solver.Tolerance, "residual norm tolerance")
	fl.Float64Var(&f.omega, "omega", def.Solver.Omega, "Jacobi relaxation weight")
	fl.IntVar(&f.sweeps, "sweeps", def.Solver.Sweeps, "smoothing sweeps before and after correction")
	fl.StringVar(&f.coarse, "coarse", def.Solver.Coarse, "coarsest-level solver: cholesky|lu")
	fl.StringVar(&f.source, "source", def.Solver.Source, "right-hand side: manufactured|zero|constant")
	fl.Float64Var(&f.sourceValue, "source-value", def.Solver.SourceValue, "value of the constant source")
	fl.StringVar(&f.plot, "plot", "", "write a semilog residual plot to this file (png, svg, pdf)")
	fl.StringVar(&f.html, "html", "", "write an interactive residual chart to this HTML file")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")

	return cmd
}

// apply copies explicitly set flags into cfg.
func (f *solveFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	s, o := &cfg.Solver, &cfg.Output
	set := map[string]func(){
		"n":            func() { s.N = f.n },
		"levels":       func() { s.Levels = f.levels },
		"max-cycles":   func() { s.MaxCycles = f.maxCycles },
		"tol":          func() { s.Tolerance = f.tol },
		"omega":        func() { s.Omega = f.omega },
		"sweeps":       func() { s.Sweeps = f.sweeps },
		"coarse":       func() { s.Coarse = f.coarse },
		"source":       func() { s.Source = f.source },
		"source-value": func() { s.SourceValue = f.sourceValue },
		"plot":         func() { o.Plot = f.plot },
		"html":         func() { o.HTML = f.html },
		"metrics-file": func() { o.MetricsFile = f.metricsFile },
	}
	for name, fn := range set {
		if cmd.Flags().Changed(name) {
			fn()
		}
	}
}

func (a *app) runSolve(out io.Writer) error {
	cfg := a.cfg
	n := cfg.Solver.N

	opts := append(cfg.SolverOptions(), multigrid.WithLogger(a.logger))
	var collector *metrics.Collector
	if cfg.Output.MetricsFile != "" {
		collector = metrics.NewCollector(a.logger)
		opts = append(opts, multigrid.WithObserver(collector))
	}

	res, err := multigrid.Solve(n, opts...)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "N=%d levels=%d h=%.6g\n", n, res.Levels, grid.Spacing(n))
	for k, r := range res.Residuals {
		fmt.Fprintf(out, "cycle %3d  residual %.6e\n", k+1, r)
	}
	fmt.Fprintf(out, "status: %s after %d cycles, residual %.3e", res.Status, res.Cycles(), res.FinalResidual())
	if exact := cfg.ExactSolution(); exact != nil {
		maxErr, err := grid.MaxError(n, res.X, exact)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, ", max error %.3e", maxErr)
	}
	fmt.Fprintf(out, ", elapsed %s\n", res.Elapsed)

	title := fmt.Sprintf("Multigrid convergence (N=%d, %d levels)", n, res.Levels+1)
	series := report.NewSeries(fmt.Sprintf("lmax=%d", res.Levels), res)
	if p := cfg.Output.Plot; p != "" {
		if err = report.PlotResiduals(p, title, series); err != nil {
			return err
		}
		a.logger.Info("plot written", "path", p)
	}
	if p := cfg.Output.HTML; p != "" {
		if err = writeFile(p, func(w io.Writer) error { return report.RenderHTML(w, title, series) }); err != nil {
			return err
		}
		a.logger.Info("chart written", "path", p)
	}
	if collector != nil {
		if err = collector.WriteTextfile(cfg.Output.MetricsFile); err != nil {
			return err
		}
		a.logger.Info("metrics written", "path", cfg.Output.MetricsFile)
	}

	return nil
}

// writeFile creates path and hands it to write, keeping the first error.
func writeFile(path string, write func(io.Writer) error) (err error) {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := fh.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	return write(fh)
}
