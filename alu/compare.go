package alu

import "fmt"

// Predicate selects the comparison performed by Compare.
type Predicate uint8

// Comparison predicates.
const (
	PredEqual   Predicate = iota // a == b
	PredGreater                  // a > b, unsigned
	PredLess                     // a < b, unsigned
)

// sliceOrder is the tristate result of comparing two slices.
type sliceOrder int8

const (
	orderLess    sliceOrder = -1
	orderEqual   sliceOrder = 0
	orderGreater sliceOrder = 1
)

func compareSlice(a, b uint8) sliceOrder {
	switch {
	case a > b:
		return orderGreater
	case a < b:
		return orderLess
	}
	return orderEqual
}

// Compare evaluates p on every lane of a and b and returns a predicate mask:
// every slice of a true lane is 0xFF, every slice of a false lane is 0x00.
//
// Lanes are compared as unsigned integers. The fold runs from slice 0 up:
// a slice that differs overrides whatever the slices below it decided, so at
// the top slice of a lane the most significant unequal slice has won.
// Equality is the AND of every slice equality in the lane.
func Compare(a, b Word, w LaneWidth, p Predicate) Word {
	mask := LaneMask(w)

	var order [SliceCount]sliceOrder
	var equal [SliceCount]bool
	for i := 0; i < SliceCount; i++ {
		o := compareSlice(a[i], b[i])
		eq := o == orderEqual

		if i > 0 && mask[i-1] {
			if o == orderEqual {
				o = order[i-1]
			}
			eq = eq && equal[i-1]
		}

		order[i] = o
		equal[i] = eq
	}

	var out Word
	var fill uint8
	for i := SliceCount - 1; i >= 0; i-- {
		if !mask[i] {
			fill = predicateFill(p, order[i], equal[i])
		}
		out[i] = fill
	}

	return out
}

func predicateFill(p Predicate, o sliceOrder, equal bool) uint8 {
	var hit bool
	switch p {
	case PredEqual:
		hit = equal
	case PredGreater:
		hit = o == orderGreater
	case PredLess:
		hit = o == orderLess
	default:
		panic(fmt.Sprintf("alu: unknown predicate %d", p))
	}

	if hit {
		return 0xFF
	}
	return 0x00
}
