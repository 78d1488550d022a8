package alu

// Direction selects the shift direction.
type Direction uint8

// Shift directions.
const (
	ShiftLeftDir Direction = iota
	ShiftRightDir
)

// Shift moves the bits of every lane of v by the amount held in the same lane
// of amount. The amount is the lane's full unsigned value; anything at or
// above the lane width clears the lane. Vacated bits are zero and no bit
// leaves its lane.
//
// A right shift is computed as a left shift on the bit-reversed word, with
// the amount lanes mirrored so each lane still uses its own count.
func Shift(v, amount Word, w LaneWidth, d Direction) Word {
	if d == ShiftRightDir {
		return shiftLeft(v.Reverse(), amount.reverseLanes(w), w).Reverse()
	}
	return shiftLeft(v, amount, w)
}

func shiftLeft(v, amount Word, w LaneWidth) Word {
	var out Word
	laneBits := uint64(w.Bits())

	for k := 0; k < w.Lanes(); k++ {
		amt := amount.Lane(w, k)
		if amt >= laneBits {
			continue
		}

		lo, hi := laneBounds(w, k)
		byteShift := int(amt / 8)
		bitShift := uint(amt % 8)

		for i := hi; i >= lo; i-- {
			src := i - byteShift
			if src < lo {
				break
			}

			x := v[src] << bitShift
			if bitShift > 0 && src > lo {
				x |= v[src-1] >> (8 - bitShift)
			}
			out[i] = x
		}
	}

	return out
}
