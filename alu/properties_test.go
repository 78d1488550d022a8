package alu_test

import (
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/lanealu/alu"
)

const propertyRounds = 200

func randomWord(r *rand.Rand) alu.Word {
	var v alu.Word
	for i := range v {
		v[i] = uint8(r.UintN(256))
	}
	return v
}

// randomShiftAmounts mostly yields in-range counts and sometimes huge ones.
func randomShiftAmounts(r *rand.Rand, w alu.LaneWidth) alu.Word {
	var v alu.Word
	for k := 0; k < w.Lanes(); k++ {
		amt := r.Uint64N(uint64(w.Bits()) + 4)
		if r.IntN(8) == 0 {
			amt = r.Uint64()
		}
		v = v.SetLane(w, k, amt)
	}
	return v
}

func laneMaxValue(w alu.LaneWidth) uint64 {
	if w.Bits() == 64 {
		return ^uint64(0)
	}
	return uint64(1)<<w.Bits() - 1
}

// reference computes one lane of op with plain integer arithmetic.
func reference(op alu.Operation, x, y uint64, w alu.LaneWidth) uint64 {
	m := laneMaxValue(w)
	truth := func(b bool) uint64 {
		if b {
			return m
		}
		return 0
	}

	switch op {
	case alu.OpAdd:
		return (x + y) & m
	case alu.OpSub:
		return (x - y) & m
	case alu.OpEq:
		return truth(x == y)
	case alu.OpGt:
		return truth(x > y)
	case alu.OpLt:
		return truth(x < y)
	case alu.OpShl:
		if y >= uint64(w.Bits()) {
			return 0
		}
		return (x << y) & m
	case alu.OpShr:
		if y >= uint64(w.Bits()) {
			return 0
		}
		return x >> y
	}
	panic("unreachable")
}

var _ = Describe("ALU properties", func() {
	var r *rand.Rand

	BeforeEach(func() {
		r = rand.New(rand.NewPCG(0x5eed, uint64(GinkgoParallelProcess())))
	})

	operands := func(op alu.Operation, w alu.LaneWidth) (alu.Word, alu.Word) {
		a := randomWord(r)
		if op.IsShift() {
			return a, randomShiftAmounts(r, w)
		}
		b := randomWord(r)
		if r.IntN(4) == 0 {
			// force some equal lanes so compare paths are covered
			for k := 0; k < w.Lanes(); k += 2 {
				b = b.SetLane(w, k, a.Lane(w, k))
			}
		}
		return a, b
	}

	It("should match per-lane integer arithmetic", func() {
		for _, w := range alu.LaneWidths {
			for _, op := range alu.Operations {
				for n := 0; n < propertyRounds; n++ {
					a, b := operands(op, w)
					res, err := alu.Execute(op, a, b, w)
					Expect(err).NotTo(HaveOccurred())

					for k := 0; k < w.Lanes(); k++ {
						want := reference(op, a.Lane(w, k), b.Lane(w, k), w)
						Expect(res.Lane(w, k)).To(Equal(want),
							"%v %v lane %d\na=%v\nb=%v", op, w, k, a, b)
					}
				}
			}
		}
	})

	It("should keep lanes isolated", func() {
		for _, w := range alu.LaneWidths {
			for _, op := range alu.Operations {
				for n := 0; n < propertyRounds; n++ {
					a, b := operands(op, w)
					k := r.IntN(w.Lanes())

					a2, b2 := a, b
					if r.IntN(2) == 0 {
						a2 = a2.SetLane(w, k, r.Uint64())
					} else {
						b2 = b2.SetLane(w, k, r.Uint64())
					}

					before, err := alu.Execute(op, a, b, w)
					Expect(err).NotTo(HaveOccurred())
					after, err := alu.Execute(op, a2, b2, w)
					Expect(err).NotTo(HaveOccurred())

					for j := 0; j < w.Lanes(); j++ {
						if j == k {
							continue
						}
						Expect(after.Lane(w, j)).To(Equal(before.Lane(w, j)),
							"%v %v: changing lane %d moved lane %d", op, w, k, j)
					}
				}
			}
		}
	})

	It("should undo a subtraction with an addition", func() {
		for _, w := range alu.LaneWidths {
			for n := 0; n < propertyRounds; n++ {
				a, b := randomWord(r), randomWord(r)
				diff := alu.AddSub(a, b, true, w)
				Expect(alu.AddSub(diff, b, false, w)).To(Equal(a))
			}
		}
	})

	It("should find every word equal to itself", func() {
		for _, w := range alu.LaneWidths {
			for n := 0; n < propertyRounds; n++ {
				a := randomWord(r)
				Expect(alu.Compare(a, a, w, alu.PredEqual)).To(Equal(alu.Ones))
			}
		}
	})

	It("should make exactly one comparison true per lane", func() {
		for _, w := range alu.LaneWidths {
			for n := 0; n < propertyRounds; n++ {
				a, b := operands(alu.OpEq, w)
				eq := alu.Compare(a, b, w, alu.PredEqual)
				gt := alu.Compare(a, b, w, alu.PredGreater)
				lt := alu.Compare(a, b, w, alu.PredLess)

				for i := range eq {
					Expect(eq[i] | gt[i] | lt[i]).To(Equal(uint8(0xFF)))
					Expect(eq[i] & gt[i]).To(BeZero())
					Expect(eq[i] & lt[i]).To(BeZero())
					Expect(gt[i] & lt[i]).To(BeZero())
				}
			}
		}
	})

	It("should clear lanes shifted by at least their width", func() {
		for _, w := range alu.LaneWidths {
			for n := 0; n < propertyRounds; n++ {
				v := randomWord(r)
				var amount alu.Word
				for k := 0; k < w.Lanes(); k++ {
					amount = amount.SetLane(w, k, uint64(w.Bits())+r.Uint64N(16))
				}
				if w.Bits() < 64 {
					amount = amount.SetLane(w, 0, laneMaxValue(w))
				}

				Expect(alu.Shift(v, amount, w, alu.ShiftLeftDir).IsZero()).To(BeTrue())
				Expect(alu.Shift(v, amount, w, alu.ShiftRightDir).IsZero()).To(BeTrue())
			}
		}
	})
})
