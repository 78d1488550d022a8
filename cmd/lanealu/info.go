package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"

	"github.com/sarchlab/lanealu/alu"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print lane configurations and host SIMD support",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Word: %d bits, %d slices\n", alu.WordBits, alu.SliceCount)
			fmt.Fprintf(out, "Lane widths:\n")
			for _, w := range alu.LaneWidths {
				fmt.Fprintf(out, "  code %d  %-6s slices/lane=%d\n", uint8(w), w, w.Slices())
			}
			fmt.Fprintf(out, "Operations:")
			for _, op := range alu.Operations {
				fmt.Fprintf(out, " %s", op)
			}
			fmt.Fprintln(out)

			fmt.Fprintf(out, "Host: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			for _, f := range hostFeatures() {
				fmt.Fprintf(out, "  %-8s %v\n", f.name, f.ok)
			}
		},
	}
}

type feature struct {
	name string
	ok   bool
}

func hostFeatures() []feature {
	switch runtime.GOARCH {
	case "amd64", "386":
		return []feature{
			{"SSE2", cpu.X86.HasSSE2},
			{"AVX", cpu.X86.HasAVX},
			{"AVX2", cpu.X86.HasAVX2},
			{"AVX512F", cpu.X86.HasAVX512F},
		}
	case "arm64":
		return []feature{
			{"ASIMD", cpu.ARM64.HasASIMD},
			{"SVE", cpu.ARM64.HasSVE},
		}
	}
	return nil
}
