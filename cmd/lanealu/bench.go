package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/lanealu/benchmarks"
	"github.com/sarchlab/lanealu/timing/latency"
)

func newBenchCmd(opts *options) *cobra.Command {
	var (
		format     string
		noCache    bool
		core       bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the vector core timing microbenchmarks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config := benchmarks.DefaultConfig()
			config.EnableCache = !noCache
			config.Output = cmd.OutOrStdout()
			config.Log = opts.log.WithName("bench")

			if configPath != "" {
				timing, err := latency.LoadConfig(configPath)
				if err != nil {
					return fmt.Errorf("loading timing config: %w", err)
				}
				if err := timing.Validate(); err != nil {
					return err
				}
				config.Timing = timing
			}

			h := benchmarks.NewHarness(config)
			if core {
				h.AddBenchmarks(benchmarks.GetCoreBenchmarks())
			} else {
				h.AddBenchmarks(benchmarks.GetMicrobenchmarks())
			}

			results, err := h.RunAll()
			if err != nil {
				return err
			}

			switch format {
			case "text":
				h.PrintResults(results)
			case "csv":
				h.PrintCSV(results)
			case "json":
				return h.PrintJSON(results)
			default:
				return fmt.Errorf("unknown format %q (want text, csv or json)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, csv or json")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Disable vector cache simulation")
	cmd.Flags().BoolVar(&core, "core", false, "Run only the quick core set")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to timing configuration JSON or YAML file")

	return cmd
}
