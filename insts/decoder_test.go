package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/lanealu/alu"
	"github.com/sarchlab/lanealu/insts"
)

var _ = Describe("Decoder", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	Describe("ALU class", func() {
		// vadd.16 v2, v0, v1 -> 0x00400402
		// class=0, func=ADD, width=1, Vm=1, Vn=0, Vd=2
		It("should decode vadd.16 v2, v0, v1", func() {
			inst, err := decoder.Decode(0x00400402)
			Expect(err).NotTo(HaveOccurred())

			Expect(inst.Op).To(Equal(insts.OpVADD))
			Expect(inst.Width).To(Equal(alu.Lanes16x16))
			Expect(inst.Vd).To(Equal(uint8(2)))
			Expect(inst.Vn).To(Equal(uint8(0)))
			Expect(inst.Vm).To(Equal(uint8(1)))
			Expect(inst.IsALU()).To(BeTrue())
		})

		// vcgt.64 v31, v30, v29 -> 0x05C077DF
		It("should decode vcgt.64 v31, v30, v29", func() {
			inst, err := decoder.Decode(0x05C077DF)
			Expect(err).NotTo(HaveOccurred())

			Expect(inst.Op).To(Equal(insts.OpVCGT))
			Expect(inst.Width).To(Equal(alu.Lanes4x64))
			Expect(inst.Vd).To(Equal(uint8(31)))
			Expect(inst.Vn).To(Equal(uint8(30)))
			Expect(inst.Vm).To(Equal(uint8(29)))

			op, ok := inst.ALUOperation()
			Expect(ok).To(BeTrue())
			Expect(op).To(Equal(alu.OpGt))
		})

		DescribeTable("function codes",
			func(fn insts.FuncCode, op insts.Op, aluOp alu.Operation) {
				inst, err := decoder.Decode(uint32(fn) << 24)
				Expect(err).NotTo(HaveOccurred())
				Expect(inst.Op).To(Equal(op))

				got, ok := inst.ALUOperation()
				Expect(ok).To(BeTrue())
				Expect(got).To(Equal(aluOp))
			},
			Entry("ADD", insts.FuncADD, insts.OpVADD, alu.OpAdd),
			Entry("SUB", insts.FuncSUB, insts.OpVSUB, alu.OpSub),
			Entry("EQ", insts.FuncEQ, insts.OpVCEQ, alu.OpEq),
			Entry("MORE", insts.FuncMORE, insts.OpVCGT, alu.OpGt),
			Entry("LESS", insts.FuncLESS, insts.OpVCLT, alu.OpLt),
			Entry("LSHIFT", insts.FuncLSHIFT, insts.OpVSHL, alu.OpShl),
			Entry("RSHIFT", insts.FuncRSHIFT, insts.OpVSHR, alu.OpShr),
		)

		It("should reject the reserved multiply and divide codes", func() {
			_, err := decoder.Decode(uint32(insts.FuncMUL) << 24)
			Expect(err).To(MatchError(insts.ErrReservedFunction))

			_, err = decoder.Decode(uint32(insts.FuncDIV) << 24)
			Expect(err).To(MatchError(insts.ErrReservedFunction))
		})

		It("should reject unknown function codes", func() {
			_, err := decoder.Decode(0x09000000)
			Expect(err).To(MatchError(insts.ErrUnknownFunction))
		})
	})

	Describe("Memory and control classes", func() {
		// vld v3, #0x40 -> 0x10000043
		It("should decode vld with a 32-byte scaled address", func() {
			inst, err := decoder.Decode(0x10000043)
			Expect(err).NotTo(HaveOccurred())

			Expect(inst.Op).To(Equal(insts.OpVLD))
			Expect(inst.Vd).To(Equal(uint8(3)))
			Expect(inst.Imm).To(Equal(uint16(2)))
			Expect(inst.Address()).To(Equal(uint64(0x40)))
			Expect(inst.IsMemory()).To(BeTrue())
			Expect(inst.IsALU()).To(BeFalse())
		})

		// vdup.8 v1, #0x7F -> 0x30000FE1
		It("should decode vdup", func() {
			inst, err := decoder.Decode(0x30000FE1)
			Expect(err).NotTo(HaveOccurred())

			Expect(inst.Op).To(Equal(insts.OpVDUP))
			Expect(inst.Width).To(Equal(alu.Lanes32x8))
			Expect(inst.Vd).To(Equal(uint8(1)))
			Expect(inst.Imm).To(Equal(uint16(0x7F)))
		})

		It("should decode halt", func() {
			inst, err := decoder.Decode(0xF0000000)
			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Op).To(Equal(insts.OpHALT))
		})

		It("should reject unknown classes", func() {
			_, err := decoder.Decode(0x50000000)
			Expect(err).To(MatchError(insts.ErrUnknownClass))
		})
	})

	Describe("Encode", func() {
		It("should invert Decode", func() {
			for _, word := range []uint32{0x00400402, 0x05C077DF, 0x10000043, 0x30000FE1, 0xF0000000} {
				inst, err := decoder.Decode(word)
				Expect(err).NotTo(HaveOccurred())

				encoded, err := insts.Encode(inst)
				Expect(err).NotTo(HaveOccurred())
				Expect(encoded).To(Equal(word), "%s", inst)
			}
		})

		It("should reject out-of-range registers", func() {
			_, err := insts.Encode(&insts.Instruction{Op: insts.OpVADD, Vd: 32})
			Expect(err).To(MatchError(insts.ErrBadRegister))
		})

		It("should reject unknown opcodes", func() {
			_, err := insts.Encode(&insts.Instruction{Op: insts.OpUnknown})
			Expect(err).To(MatchError(insts.ErrUnencodable))
		})
	})
})
