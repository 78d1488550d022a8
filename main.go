// Package main provides the entry point for lanealu.
// lanealu models a 256-bit lane-partitioned SIMD ALU and a small vector
// machine built around it.
//
// For the full CLI, use: go run ./cmd/lanealu
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("lanealu - 256-bit lane-partitioned SIMD ALU")
	fmt.Println("")
	fmt.Println("Usage: lanealu <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  eval   Evaluate one ALU operation")
	fmt.Println("  check  Check ALU test vector files")
	fmt.Println("  run    Run a vector program (-timing for the core model)")
	fmt.Println("  bench  Run the timing microbenchmarks")
	fmt.Println("  info   Print lane configurations and host SIMD support")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/lanealu' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/lanealu' instead.")
	}
}
