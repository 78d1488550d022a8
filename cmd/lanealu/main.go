// Package main provides the lanealu command line tool.
// It evaluates single ALU operations, checks vector files, and runs
// vector assembler programs in functional or timing mode.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"
)

type options struct {
	verbosity int
	log       logr.Logger
}

func newLogger(w io.Writer, verbosity int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{Verbosity: verbosity})
}

func newRootCmd() *cobra.Command {
	opts := &options{log: logr.Discard()}

	root := &cobra.Command{
		Use:           "lanealu",
		Short:         "256-bit lane-partitioned SIMD ALU model",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.log = newLogger(cmd.ErrOrStderr(), opts.verbosity).WithName("lanealu")
		},
	}

	root.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v",
		"Verbose output, repeat for per-instruction logs")

	root.AddCommand(
		newEvalCmd(),
		newCheckCmd(opts),
		newRunCmd(opts),
		newInfoCmd(),
		newBenchCmd(opts),
	)

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
