package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/lanealu/vectors"
)

func newCheckCmd(opts *options) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "check <file.yaml>...",
		Short: "Check ALU test vector files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0

			for _, path := range args {
				cases, err := vectors.Load(path)
				if err != nil {
					return err
				}

				report, err := vectors.Run(cmd.Context(), cases, vectors.Options{
					Workers: workers,
					Log:     opts.log.WithValues("file", path),
				})
				if err != nil {
					return err
				}

				for _, f := range report.Failures {
					fmt.Fprintf(out, "%s\n\n", f)
				}
				fmt.Fprintf(out, "%s: passed=%d failed=%d\n", path, report.Passed, report.Failed)
				failed += report.Failed
			}

			if failed > 0 {
				return fmt.Errorf("%d vectors failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "Parallel evaluations (0 = GOMAXPROCS)")

	return cmd
}
