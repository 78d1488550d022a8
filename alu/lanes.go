// Package alu provides a behavioral model of a 256-bit lane-partitioned SIMD ALU.
//
// A Word is always handled as 32 8-bit slices. The selected LaneWidth decides
// which slices fuse into one lane: carry, borrow, comparison state and
// shifted bits propagate between the slices of a lane and never across a
// lane boundary.
//
// Usage:
//
//	a, _ := alu.ParseWord("00_FF_00_FF")
//	b, _ := alu.ParseWord("00_01_00_01")
//	sum := alu.AddSub(a, b, false, alu.Lanes16x16)
//	fmt.Println(sum) // ..._01_00_01_00
package alu

import (
	"errors"
	"fmt"
)

// WordBits is the total width of a Word in bits.
const WordBits = 256

// SliceCount is the number of 8-bit slices in a Word.
const SliceCount = WordBits / 8

// ErrInvalidLaneWidth is returned when a lane width selector is outside the
// four supported configurations.
var ErrInvalidLaneWidth = errors.New("invalid lane width")

// LaneWidth selects how the 256-bit word is partitioned into lanes.
type LaneWidth uint8

// Lane width selectors. The numeric values are the data type codes used in
// the control word.
const (
	Lanes32x8  LaneWidth = 0 // 32 lanes of 8 bits
	Lanes16x16 LaneWidth = 1 // 16 lanes of 16 bits
	Lanes8x32  LaneWidth = 2 // 8 lanes of 32 bits
	Lanes4x64  LaneWidth = 3 // 4 lanes of 64 bits
)

// LaneWidths lists every valid lane width, narrowest first.
var LaneWidths = []LaneWidth{Lanes32x8, Lanes16x16, Lanes8x32, Lanes4x64}

// ParseLaneWidth maps a lane size in bits (8, 16, 32 or 64) to its selector.
func ParseLaneWidth(bits int) (LaneWidth, error) {
	switch bits {
	case 8:
		return Lanes32x8, nil
	case 16:
		return Lanes16x16, nil
	case 32:
		return Lanes8x32, nil
	case 64:
		return Lanes4x64, nil
	}
	return 0, fmt.Errorf("%w: %d-bit lanes", ErrInvalidLaneWidth, bits)
}

// Valid reports whether w is one of the four supported lane widths.
func (w LaneWidth) Valid() bool {
	return w <= Lanes4x64
}

// Slices returns the number of 8-bit slices that make up one lane.
// It panics on an invalid selector; callers that take untrusted input
// should check Valid or go through Execute.
func (w LaneWidth) Slices() int {
	if !w.Valid() {
		panic(fmt.Sprintf("alu: %v", w))
	}
	return 1 << w
}

// Bits returns the lane size in bits.
func (w LaneWidth) Bits() int {
	return w.Slices() * 8
}

// Lanes returns the number of lanes in a Word.
func (w LaneWidth) Lanes() int {
	return SliceCount / w.Slices()
}

// String returns the lane arrangement, e.g. "16x16b".
func (w LaneWidth) String() string {
	if !w.Valid() {
		return fmt.Sprintf("LaneWidth(%d)", uint8(w))
	}
	return fmt.Sprintf("%dx%db", w.Lanes(), w.Bits())
}

// LaneMask returns, for every slice, whether it is a continuation slice:
// true iff the slice is not the most significant slice of its lane, so its
// carry, equality and shift state must flow into the slice above it.
func LaneMask(w LaneWidth) [SliceCount]bool {
	var mask [SliceCount]bool
	n := w.Slices()
	for i := range mask {
		mask[i] = i%n != n-1
	}
	return mask
}

// laneBounds returns the lowest and highest slice index of lane k.
func laneBounds(w LaneWidth, k int) (lo, hi int) {
	n := w.Slices()
	return k * n, k*n + n - 1
}
