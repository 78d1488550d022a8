// Package benchmarks provides timing benchmark infrastructure for the vector
// core model.
package benchmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"

	"github.com/sarchlab/lanealu/emu"
	"github.com/sarchlab/lanealu/insts"
	"github.com/sarchlab/lanealu/timing/cache"
	"github.com/sarchlab/lanealu/timing/core"
	"github.com/sarchlab/lanealu/timing/latency"
)

// programAddr is where every benchmark is loaded.
const programAddr = 0x100000

// BenchmarkResult holds the timing results for a single benchmark run.
type BenchmarkResult struct {
	// Name identifies the benchmark
	Name string `json:"name"`

	// Description explains what the benchmark measures
	Description string `json:"description"`

	// SimulatedCycles is the total cycle count from the timing model
	SimulatedCycles uint64 `json:"simulated_cycles"`

	// InstructionsRetired is the number of completed instructions
	InstructionsRetired uint64 `json:"instructions_retired"`

	// CPI is cycles per instruction
	CPI float64 `json:"cpi"`

	// StallCycles is the number of cycles spent waiting on a busy unit
	StallCycles uint64 `json:"stall_cycles"`

	// CacheHits/Misses/Writebacks (if cache enabled)
	CacheHits       uint64 `json:"cache_hits,omitempty"`
	CacheMisses     uint64 `json:"cache_misses,omitempty"`
	CacheWritebacks uint64 `json:"cache_writebacks,omitempty"`

	// WallTime is the actual time taken to run the simulation
	WallTime time.Duration `json:"wall_time_ns"`
}

// Benchmark defines a single benchmark program.
type Benchmark struct {
	// Name identifies the benchmark
	Name string

	// Description explains what the benchmark measures
	Description string

	// Setup prepares the emulator state (e.g., initialize registers, memory)
	Setup func(e *emu.Emulator)

	// Source is the assembler program to execute
	Source string

	// Check validates the final register state, if set
	Check func(regFile *emu.RegFile) error
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// EnableCache enables vector data cache simulation
	EnableCache bool

	// Cache is the cache geometry used when EnableCache is set
	Cache cache.Config

	// Timing holds instruction latencies (default: latency.DefaultTimingConfig)
	Timing *latency.TimingConfig

	// Output is where to write results (default: os.Stdout)
	Output io.Writer

	// Log receives per-benchmark progress (default: discard)
	Log logr.Logger
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		EnableCache: true,
		Cache:       cache.DefaultL1VConfig(),
		Timing:      latency.DefaultTimingConfig(),
		Output:      os.Stdout,
		Log:         logr.Discard(),
	}
}

// Harness runs timing benchmarks and reports results.
type Harness struct {
	config     HarnessConfig
	benchmarks []Benchmark
}

// NewHarness creates a new benchmark harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if config.Timing == nil {
		config.Timing = latency.DefaultTimingConfig()
	}
	if config.Log.GetSink() == nil {
		config.Log = logr.Discard()
	}
	return &Harness{
		config:     config,
		benchmarks: []Benchmark{},
	}
}

// AddBenchmark adds a benchmark to the harness.
func (h *Harness) AddBenchmark(b Benchmark) {
	h.benchmarks = append(h.benchmarks, b)
}

// AddBenchmarks adds multiple benchmarks to the harness.
func (h *Harness) AddBenchmarks(benchmarks []Benchmark) {
	h.benchmarks = append(h.benchmarks, benchmarks...)
}

// RunAll executes all benchmarks and returns results. It stops at the first
// benchmark that fails to assemble, run or check.
func (h *Harness) RunAll() ([]BenchmarkResult, error) {
	results := make([]BenchmarkResult, 0, len(h.benchmarks))

	for _, bench := range h.benchmarks {
		result, err := h.runBenchmark(bench)
		if err != nil {
			return results, fmt.Errorf("benchmark %s: %w", bench.Name, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// runBenchmark executes a single benchmark.
func (h *Harness) runBenchmark(bench Benchmark) (BenchmarkResult, error) {
	words, err := insts.Assemble(bench.Source)
	if err != nil {
		return BenchmarkResult{}, err
	}

	emulator := emu.NewEmulator(emu.WithMaxInstructions(uint64(len(words)) + 1))
	if bench.Setup != nil {
		bench.Setup(emulator)
	}
	emulator.LoadProgram(programAddr, words)

	opts := []core.Option{}
	if h.config.EnableCache {
		l1v, err := cache.New(h.config.Cache)
		if err != nil {
			return BenchmarkResult{}, err
		}
		opts = append(opts, core.WithCache(l1v))
	}

	c := core.NewCore(emulator, latency.NewTableWithConfig(h.config.Timing), opts...)

	start := time.Now()
	stats, err := c.Run()
	wallTime := time.Since(start)
	if err != nil {
		return BenchmarkResult{}, err
	}

	if bench.Check != nil {
		if err := bench.Check(emulator.RegFile()); err != nil {
			return BenchmarkResult{}, err
		}
	}

	h.config.Log.V(1).Info("benchmark done", "name", bench.Name,
		"cycles", stats.Cycles, "cpi", stats.CPI())

	return BenchmarkResult{
		Name:                bench.Name,
		Description:         bench.Description,
		SimulatedCycles:     stats.Cycles,
		InstructionsRetired: stats.Instructions,
		CPI:                 stats.CPI(),
		StallCycles:         stats.Stalls,
		CacheHits:           stats.CacheHits,
		CacheMisses:         stats.CacheMisses,
		CacheWritebacks:     stats.Writebacks,
		WallTime:            wallTime,
	}, nil
}

// PrintResults outputs benchmark results in a human-readable format.
func (h *Harness) PrintResults(results []BenchmarkResult) {
	out := h.config.Output
	_, _ = fmt.Fprintln(out, "=== Vector Core Timing Benchmark Results ===")
	_, _ = fmt.Fprintln(out, "")

	for _, r := range results {
		_, _ = fmt.Fprintf(out, "Benchmark: %s\n", r.Name)
		_, _ = fmt.Fprintf(out, "  Description: %s\n", r.Description)
		_, _ = fmt.Fprintln(out, "  --- Timing ---")
		_, _ = fmt.Fprintf(out, "  Simulated Cycles:     %d\n", r.SimulatedCycles)
		_, _ = fmt.Fprintf(out, "  Instructions Retired: %d\n", r.InstructionsRetired)
		_, _ = fmt.Fprintf(out, "  CPI:                  %.3f\n", r.CPI)
		_, _ = fmt.Fprintf(out, "  Stall Cycles:         %d\n", r.StallCycles)

		if r.CacheHits > 0 || r.CacheMisses > 0 {
			_, _ = fmt.Fprintln(out, "  --- L1V ---")
			_, _ = fmt.Fprintf(out, "  Hits:       %d\n", r.CacheHits)
			_, _ = fmt.Fprintf(out, "  Misses:     %d\n", r.CacheMisses)
			_, _ = fmt.Fprintf(out, "  Writebacks: %d\n", r.CacheWritebacks)
		}

		_, _ = fmt.Fprintf(out, "  Wall Time: %v\n", r.WallTime)
		_, _ = fmt.Fprintln(out, "")
	}
}

// PrintCSV outputs benchmark results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,cycles,instructions,cpi,stalls,cache_hits,cache_misses,cache_writebacks")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%d,%.3f,%d,%d,%d,%d\n",
			r.Name,
			r.SimulatedCycles,
			r.InstructionsRetired,
			r.CPI,
			r.StallCycles,
			r.CacheHits,
			r.CacheMisses,
			r.CacheWritebacks,
		)
	}
}

// BenchmarkReport is the complete output format for benchmark results.
type BenchmarkReport struct {
	// Metadata about the benchmark run
	Metadata ReportMetadata `json:"metadata"`

	// Results is the list of individual benchmark results
	Results []BenchmarkResult `json:"results"`

	// Summary contains aggregate statistics
	Summary ReportSummary `json:"summary"`
}

// ReportMetadata contains information about the benchmark run.
type ReportMetadata struct {
	// Timestamp when the benchmark was run
	Timestamp string `json:"timestamp"`

	// CacheEnabled reports whether the vector cache was simulated
	CacheEnabled bool `json:"cache_enabled"`

	// Timing is the latency configuration used
	Timing latency.TimingConfig `json:"timing"`
}

// ReportSummary contains aggregate statistics across all benchmarks.
type ReportSummary struct {
	// TotalBenchmarks is the number of benchmarks run
	TotalBenchmarks int `json:"total_benchmarks"`

	// TotalCycles is the sum of all simulated cycles
	TotalCycles uint64 `json:"total_cycles"`

	// TotalInstructions is the sum of all instructions retired
	TotalInstructions uint64 `json:"total_instructions"`

	// AverageCPI is total cycles over total instructions
	AverageCPI float64 `json:"average_cpi"`

	// TotalWallTime is the total wall clock time for all benchmarks
	TotalWallTime time.Duration `json:"total_wall_time_ns"`
}

// Summarize aggregates results.
func Summarize(results []BenchmarkResult) ReportSummary {
	summary := ReportSummary{TotalBenchmarks: len(results)}
	for _, r := range results {
		summary.TotalCycles += r.SimulatedCycles
		summary.TotalInstructions += r.InstructionsRetired
		summary.TotalWallTime += r.WallTime
	}
	if summary.TotalInstructions > 0 {
		summary.AverageCPI = float64(summary.TotalCycles) / float64(summary.TotalInstructions)
	}
	return summary
}

// PrintJSON outputs benchmark results in JSON format for automated comparison.
func (h *Harness) PrintJSON(results []BenchmarkResult) error {
	report := BenchmarkReport{
		Metadata: ReportMetadata{
			Timestamp:    time.Now().UTC().Format(time.RFC3339),
			CacheEnabled: h.config.EnableCache,
			Timing:       *h.config.Timing,
		},
		Results: results,
		Summary: Summarize(results),
	}

	encoder := json.NewEncoder(h.config.Output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
