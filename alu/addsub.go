package alu

// AddSub adds b to a lane by lane, or subtracts b from a when subtract is set.
//
// Subtraction adds the complement of b with a carry of 1 injected into the
// lowest slice of every lane. Each slice produces a 9-bit sum; bit 8 is only
// passed to the next slice when the current slice is a continuation slice of
// the same lane. A slice that starts a lane always takes the injected carry
// instead, so every lane wraps modulo 2^lane-bits on its own.
func AddSub(a, b Word, subtract bool, w LaneWidth) Word {
	mask := LaneMask(w)

	var inject uint16
	if subtract {
		b = b.Not()
		inject = 1
	}

	var out Word
	var carry uint16
	for i := 0; i < SliceCount; i++ {
		carryIn := inject
		if i > 0 && mask[i-1] {
			carryIn = carry
		}

		sum := uint16(a[i]) + uint16(b[i]) + carryIn
		out[i] = uint8(sum)
		carry = sum >> 8
	}

	return out
}
