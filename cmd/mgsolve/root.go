package main

import (
	"log/slog"

	"github.com/katalvlaran/mgpoisson/config"
	"github.com/katalvlaran/mgpoisson/internal/logging"
	"github.com/spf13/cobra"
)

// app holds state shared by all subcommands once the root has run.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "mgsolve",
		Short: "mgsolve solves the 2D Poisson equation with geometric multigrid",
		Long: `mgsolve discretizes -Δu = f on the unit square with the 5-point Laplacian
and solves it with weighted-Jacobi V-cycles over a hierarchy of grids.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	// Persistent flags (available to all commands)
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")

	root.AddCommand(newSolveCmd(a), newBenchCmd(a), newVersionCmd())

	return root
}

// setup loads the configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Output.LogLevel = a.logLevel
	}
	lvl, err := logging.ParseLevel(cfg.Output.LogLevel)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logging.New(cmd.ErrOrStderr(), lvl)

	return nil
}
