package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/katalvlaran/mgpoisson/benchmark"
	"github.com/katalvlaran/mgpoisson/config"
	"github.com/katalvlaran/mgpoisson/report"
	"github.com/katalvlaran/mgpoisson/store"
	"github.com/spf13/cobra"
)

type benchFlags struct {
	sizes            []int
	parallel         int
	csv, db, plotDir string
}

func newBenchCmd(a *app) *cobra.Command {
	def := config.Default()
	f := &benchFlags{}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare two-level and max-level hierarchies across grid sizes",
		Long: `For every N, solves the manufactured problem with one coarse level and with
as many levels as it takes to reach an 8×8 grid, then tabulates cycles,
final residual and wall time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.apply(cmd, a.cfg)
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			return a.runBench(cmd, cmd.OutOrStdout())
		},
	}

	fl := cmd.Flags()
	fl.IntSliceVar(&f.sizes, "sizes", def.Benchmark.Sizes, "comma-separated interior point counts")
	fl.IntVar(&f.parallel, "parallel", def.Benchmark.Parallelism, "maximum concurrent solves")
	fl.StringVar(&f.csv, "csv", "", "write the results table to this CSV file")
	fl.StringVar(&f.db, "db", "", "append the results to this SQLite database")
	fl.StringVar(&f.plotDir, "plot-dir", "", "write one residual plot per N into this directory")

	return cmd
}

func (f *benchFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	b, o := &cfg.Benchmark, &cfg.Output
	set := map[string]func(){
		"sizes":    func() { b.Sizes = f.sizes },
		"parallel": func() { b.Parallelism = f.parallel },
		"csv":      func() { o.CSV = f.csv },
		"db":       func() { o.DB = f.db },
		"plot-dir": func() { o.PlotDir = f.plotDir },
	}
	for name, fn := range set {
		if cmd.Flags().Changed(name) {
			fn()
		}
	}
}

func (a *app) runBench(cmd *cobra.Command, out io.Writer) error {
	cfg := a.cfg
	rows, err := benchmark.Run(cmd.Context(), cfg.Benchmark.Sizes,
		benchmark.WithParallelism(cfg.Benchmark.Parallelism),
		benchmark.WithSolverOptions(cfg.SolverOptions()...),
		benchmark.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "N\t2L cycles\t2L residual\t2L time\tMaxL levels\tMaxL cycles\tMaxL residual\tMaxL time")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%d\t%.3e\t%s\t%d\t%d\t%.3e\t%s\n",
			r.N,
			r.TwoLevel.Cycles, r.TwoLevel.Residual, r.TwoLevel.Elapsed,
			r.MaxLevel.Levels, r.MaxLevel.Cycles, r.MaxLevel.Residual, r.MaxLevel.Elapsed)
	}
	if err = tw.Flush(); err != nil {
		return err
	}

	if p := cfg.Output.CSV; p != "" {
		if err = writeFile(p, func(w io.Writer) error { return report.WriteCSV(w, rows) }); err != nil {
			return err
		}
		a.logger.Info("csv written", "path", p)
	}

	if dir := cfg.Output.PlotDir; dir != "" {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create plot dir: %w", err)
		}
		for _, r := range rows {
			path := filepath.Join(dir, fmt.Sprintf("mg_convergence_N%d.png", r.N))
			title := fmt.Sprintf("Multigrid convergence, N=%d", r.N)
			if err = report.PlotResiduals(path, title, report.BenchmarkSeries(r)...); err != nil {
				return err
			}
		}
		a.logger.Info("plots written", "dir", dir, "count", len(rows))
	}

	if p := cfg.Output.DB; p != "" {
		db, err := store.Open(p)
		if err != nil {
			return err
		}
		defer db.Close()

		runID := store.NewRunID()
		if err = db.SaveRows(cmd.Context(), runID, rows); err != nil {
			return err
		}
		fmt.Fprintf(out, "run id: %s\n", runID)
		a.logger.Info("results stored", "db", p, "run_id", runID)
	}

	return nil
}
