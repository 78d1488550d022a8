// Package emu provides functional emulation of a vector machine built around
// the lane-partitioned ALU.
package emu

import "github.com/sarchlab/lanealu/alu"

// RegFile represents the vector register file.
// It contains 32 256-bit vector registers (V0-V31) and the program counter.
type RegFile struct {
	// V holds the vector registers.
	V [32]alu.Word

	// PC is the program counter.
	PC uint64
}

// ReadV reads a vector register. Registers >= 32 read as zero.
func (r *RegFile) ReadV(reg uint8) alu.Word {
	if int(reg) >= len(r.V) {
		return alu.Word{}
	}
	return r.V[reg]
}

// WriteV writes a vector register. Writes to registers >= 32 are ignored.
func (r *RegFile) WriteV(reg uint8, value alu.Word) {
	if int(reg) >= len(r.V) {
		return
	}
	r.V[reg] = value
}
