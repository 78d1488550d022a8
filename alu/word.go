package alu

import (
	"math/big"
	"math/bits"
)

// Word is a 256-bit unsigned value stored as 32 8-bit slices.
// Slice 0 is the least significant byte.
type Word [SliceCount]uint8

// Ones is the all-ones Word.
var Ones = Splat(Lanes32x8, 0xFF)

// Splat returns a Word with every lane of width w set to v.
// Bits of v above the lane width are dropped.
func Splat(w LaneWidth, v uint64) Word {
	var out Word
	for k := 0; k < w.Lanes(); k++ {
		out = out.SetLane(w, k, v)
	}
	return out
}

// FromLanes builds a Word from lane values, lane 0 first.
// Missing lanes are zero; extra values are ignored.
func FromLanes(w LaneWidth, vals ...uint64) Word {
	var out Word
	for k, v := range vals {
		if k >= w.Lanes() {
			break
		}
		out = out.SetLane(w, k, v)
	}
	return out
}

// FromBig converts a non-negative big.Int to a Word, keeping the low 256 bits.
func FromBig(x *big.Int) Word {
	var out Word
	b := x.Bytes()
	for i := 0; i < len(b) && i < SliceCount; i++ {
		out[i] = b[len(b)-1-i]
	}
	return out
}

// Big returns the Word as a big.Int.
func (v Word) Big() *big.Int {
	var be [SliceCount]byte
	for i := range v {
		be[SliceCount-1-i] = v[i]
	}
	return new(big.Int).SetBytes(be[:])
}

// Lane returns lane k of width w as an unsigned integer.
func (v Word) Lane(w LaneWidth, k int) uint64 {
	lo, hi := laneBounds(w, k)
	var x uint64
	for i := hi; i >= lo; i-- {
		x = x<<8 | uint64(v[i])
	}
	return x
}

// SetLane returns a copy of v with lane k of width w replaced by x.
func (v Word) SetLane(w LaneWidth, k int, x uint64) Word {
	lo, hi := laneBounds(w, k)
	for i := lo; i <= hi; i++ {
		v[i] = uint8(x)
		x >>= 8
	}
	return v
}

// Lanes returns every lane of width w, lane 0 first.
func (v Word) Lanes(w LaneWidth) []uint64 {
	out := make([]uint64, w.Lanes())
	for k := range out {
		out[k] = v.Lane(w, k)
	}
	return out
}

// IsZero reports whether every bit of v is clear.
func (v Word) IsZero() bool {
	return v == Word{}
}

// Equal reports whether v and o hold the same bits.
func (v Word) Equal(o Word) bool {
	return v == o
}

// Not returns the bitwise complement of v.
func (v Word) Not() Word {
	for i := range v {
		v[i] = ^v[i]
	}
	return v
}

// Reverse returns v with the order of all 256 bits reversed.
func (v Word) Reverse() Word {
	var out Word
	for i := range v {
		out[SliceCount-1-i] = bits.Reverse8(v[i])
	}
	return out
}

// reverseLanes returns v with the order of its lanes reversed; the bits
// inside each lane are untouched.
func (v Word) reverseLanes(w LaneWidth) Word {
	var out Word
	n := w.Lanes()
	for k := 0; k < n; k++ {
		out = out.SetLane(w, n-1-k, v.Lane(w, k))
	}
	return out
}
