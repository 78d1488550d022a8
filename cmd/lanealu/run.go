package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/sarchlab/lanealu/emu"
	"github.com/sarchlab/lanealu/insts"
	"github.com/sarchlab/lanealu/loader"
	"github.com/sarchlab/lanealu/timing/cache"
	"github.com/sarchlab/lanealu/timing/core"
	"github.com/sarchlab/lanealu/timing/latency"
)

type runOptions struct {
	timing          bool
	configPath      string
	entry           uint64
	maxInstructions uint64
	cpuProfile      string
	memProfile      string
}

func newRunCmd(opts *options) *cobra.Command {
	ro := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [--timing] [--config file] <program.s|program.bin>",
		Short: "Run a vector program from assembler or raw words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ro.configPath != "" && !ro.timing {
				return fmt.Errorf("--config only applies with --timing")
			}

			prog, err := loader.Load(args[0])
			if err != nil {
				return err
			}

			opts.log.V(1).Info("loaded", "program", prog.Path, "format", prog.Format.String(),
				"words", len(prog.Words), "entry", fmt.Sprintf("0x%X", ro.entry))

			emulator := emu.NewEmulator(
				emu.WithLogger(opts.log.WithName("emu")),
				emu.WithMaxInstructions(ro.maxInstructions),
			)
			prog.LoadInto(emulator, ro.entry)

			stop, err := startProfiling(ro, opts.log)
			if err != nil {
				return err
			}
			defer stop()

			out := cmd.OutOrStdout()
			if ro.timing {
				return runTiming(out, emulator, ro, opts)
			}

			n, err := emulator.Run()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Instructions executed: %d\n", n)
			printRegisters(out, emulator.RegFile())
			return nil
		},
	}

	cmd.Flags().BoolVar(&ro.timing, "timing", false, "Enable timing simulation mode")
	cmd.Flags().StringVar(&ro.configPath, "config", "", "Path to timing configuration JSON or YAML file")
	cmd.Flags().Uint64Var(&ro.entry, "entry", loader.DefaultEntry, "Load address of the program")
	cmd.Flags().Uint64Var(&ro.maxInstructions, "max-instructions", 1_000_000,
		"Stop after this many instructions (0 = no limit)")
	cmd.Flags().StringVar(&ro.cpuProfile, "cpuprofile", "", "Write a CPU profile to file")
	cmd.Flags().StringVar(&ro.memProfile, "memprofile", "", "Write a heap profile to file on exit")

	return cmd
}

// runTiming runs the program in timing simulation mode.
func runTiming(out io.Writer, emulator *emu.Emulator, ro *runOptions, opts *options) error {
	timingConfig := latency.DefaultTimingConfig()
	if ro.configPath != "" {
		var err error
		timingConfig, err = latency.LoadConfig(ro.configPath)
		if err != nil {
			return fmt.Errorf("loading timing config: %w", err)
		}
	}
	if err := timingConfig.Validate(); err != nil {
		return err
	}

	l1v, err := cache.New(cache.DefaultL1VConfig())
	if err != nil {
		return err
	}

	c := core.NewCore(emulator, latency.NewTableWithConfig(timingConfig),
		core.WithCache(l1v), core.WithLogger(opts.log.WithName("core")))

	stats, err := c.Run()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Total Instructions: %d\n", stats.Instructions)
	fmt.Fprintf(out, "Total Cycles: %d\n", stats.Cycles)
	fmt.Fprintf(out, "CPI: %.2f\n", stats.CPI())
	fmt.Fprintf(out, "Stall cycles: %d\n", stats.Stalls)
	fmt.Fprintf(out, "L1V: hits=%d misses=%d writebacks=%d\n",
		stats.CacheHits, stats.CacheMisses, stats.Writebacks)
	printRegisters(out, emulator.RegFile())
	return nil
}

func printRegisters(out io.Writer, regFile *emu.RegFile) {
	for i := uint8(0); i < insts.NumVectorRegs; i++ {
		v := regFile.ReadV(i)
		if v.IsZero() {
			continue
		}
		fmt.Fprintf(out, "v%-2d = %s\n", i, v)
	}
}

// startProfiling starts the CPU profile if requested. The returned func
// stops it and writes the heap profile.
func startProfiling(ro *runOptions, log logr.Logger) (func(), error) {
	var cpuFile *os.File
	if ro.cpuProfile != "" {
		f, err := os.Create(ro.cpuProfile)
		if err != nil {
			return nil, fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("could not start CPU profile: %w", err)
		}
		cpuFile = f
	}

	return func() {
		if cpuFile != nil {
			pprof.StopCPUProfile()
			_ = cpuFile.Close()
		}
		if ro.memProfile != "" {
			f, err := os.Create(ro.memProfile)
			if err != nil {
				log.Error(err, "could not create heap profile", "path", ro.memProfile)
				return
			}
			defer func() { _ = f.Close() }()
			runtime.GC()
			if err := pprof.WriteHeapProfile(f); err != nil {
				log.Error(err, "could not write heap profile", "path", ro.memProfile)
			}
		}
	}, nil
}
