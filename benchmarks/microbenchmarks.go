package benchmarks

import (
	"fmt"
	"strings"

	"github.com/sarchlab/lanealu/emu"
)

// GetMicrobenchmarks returns the standard set of vector microbenchmarks.
// Each benchmark targets one execution unit or cache behaviour.
func GetMicrobenchmarks() []Benchmark {
	return []Benchmark{
		aluSequential(),
		shiftHeavy(),
		compareMix(),
		memoryStream(),
		vectorReuse(),
	}
}

// GetCoreBenchmarks returns a minimal set for quick validation.
func GetCoreBenchmarks() []Benchmark {
	return []Benchmark{
		aluSequential(),
		vectorReuse(),
	}
}

func program(lines ...string) string {
	return strings.Join(lines, "\n") + "\nhalt\n"
}

// 1. ALU Sequential - independent add/sub across every lane width
func aluSequential() Benchmark {
	var lines []string
	widths := []int{8, 16, 32, 64}
	for i := 0; i < 16; i++ {
		op := "vadd"
		if i%2 == 1 {
			op = "vsub"
		}
		lines = append(lines, fmt.Sprintf("%s.%d v%d, v%d, v%d",
			op, widths[i%4], i%8+8, i%8, (i+1)%8))
	}

	return Benchmark{
		Name:        "alu_sequential",
		Description: "16 independent VADD/VSUB at mixed widths - measures adder throughput",
		Source:      program(lines...),
	}
}

// 2. Shift Heavy - alternating left and right shifts
func shiftHeavy() Benchmark {
	lines := []string{"vdup.16 v1, #3"}
	for i := 0; i < 8; i++ {
		op := "vshl"
		if i%2 == 1 {
			op = "vshr"
		}
		lines = append(lines, fmt.Sprintf("%s.16 v0, v0, v1", op))
	}

	return Benchmark{
		Name:        "shift_heavy",
		Description: "8 dependent VSHL/VSHR - measures shifter latency",
		Source:      program(lines...),
	}
}

// 3. Compare Mix - every predicate at every width
func compareMix() Benchmark {
	var lines []string
	for _, w := range []int{8, 16, 32, 64} {
		for _, op := range []string{"vceq", "vcgt", "vclt"} {
			lines = append(lines, fmt.Sprintf("%s.%d v2, v0, v1", op, w))
		}
	}

	return Benchmark{
		Name:        "compare_mix",
		Description: "12 compares across widths - measures comparator throughput",
		Source:      program(lines...),
	}
}

// 4. Memory Stream - stores to distinct lines, then reloads them
func memoryStream() Benchmark {
	lines := []string{"vdup.32 v0, #0x1234"}
	for i := 0; i < 8; i++ {
		lines = append(lines, fmt.Sprintf("vst v0, #0x%X", i*64))
	}
	for i := 0; i < 8; i++ {
		lines = append(lines, fmt.Sprintf("vld v%d, #0x%X", i+1, i*64))
	}

	return Benchmark{
		Name:        "memory_stream",
		Description: "8 VST to distinct lines then 8 VLD - measures miss and hit latency",
		Source:      program(lines...),
	}
}

// 5. Vector Reuse - one store, repeated loads of the same vector
func vectorReuse() Benchmark {
	lines := []string{"vdup.8 v0, #0x5A", "vst v0, #0"}
	for i := 1; i <= 8; i++ {
		lines = append(lines, fmt.Sprintf("vld v%d, #0", i))
	}

	return Benchmark{
		Name:        "vector_reuse",
		Description: "1 VST then 8 VLD of the same vector - measures hit latency",
		Source:      program(lines...),
		Check: func(regFile *emu.RegFile) error {
			for i := uint8(1); i <= 8; i++ {
				if got := regFile.ReadV(i); got != regFile.ReadV(0) {
					return fmt.Errorf("v%d = %s, want %s", i, got, regFile.ReadV(0))
				}
			}
			return nil
		},
	}
}
