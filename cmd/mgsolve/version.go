package main

import (
	"fmt"
	"runtime"

	"github.com/katalvlaran/mgpoisson"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of mgsolve",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mgsolve version %s (%s)\n", mgpoisson.Version, runtime.Version())
		},
	}
}
