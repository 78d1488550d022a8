package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/lanealu/alu"
	"github.com/sarchlab/lanealu/insts"
)

var _ = Describe("Assembler", func() {
	It("should assemble a small program", func() {
		src := `
; load two vectors, add them as 16-bit lanes, store the sum
vld     v0, #0x00
vld     v1, #0x20
vadd.16 v2, v0, v1   // sum
vcgt.64 v31, v30, v29
vdup.8  v1, #0x7F
vst     v2, #0x40
halt
`
		words, err := insts.Assemble(src)
		Expect(err).NotTo(HaveOccurred())
		Expect(words).To(Equal([]uint32{
			0x10000000,
			0x10000021,
			0x00400402,
			0x05C077DF,
			0x30000FE1,
			0x20000042,
			0xF0000000,
		}))
	})

	It("should accept tabs and uppercase", func() {
		inst, ok, err := insts.ParseLine("\tVSHR.32\tV4, V5, V6")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(inst.Op).To(Equal(insts.OpVSHR))
		Expect(inst.Width).To(Equal(alu.Lanes8x32))
		Expect(inst.String()).To(Equal("vshr.32 v4, v5, v6"))
	})

	It("should skip blank and comment lines", func() {
		_, ok, err := insts.ParseLine("   ; nothing here")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("should disassemble memory instructions with byte addresses", func() {
		inst, _, err := insts.ParseLine("vst v7, #96")
		Expect(err).NotTo(HaveOccurred())
		Expect(inst.String()).To(Equal("vst v7, #0x60"))
	})

	DescribeTable("syntax errors",
		func(line string, target error) {
			_, _, err := insts.ParseLine(line)
			Expect(err).To(MatchError(target))
		},
		Entry("unknown mnemonic", "vmul.8 v0, v1, v2", insts.ErrSyntax),
		Entry("missing width", "vadd v0, v1, v2", insts.ErrSyntax),
		Entry("width on halt", "halt.8", insts.ErrSyntax),
		Entry("bad width", "vadd.12 v0, v1, v2", alu.ErrInvalidLaneWidth),
		Entry("too few operands", "vsub.8 v0, v1", insts.ErrSyntax),
		Entry("register out of range", "vsub.8 v0, v1, v32", insts.ErrBadRegister),
		Entry("not a register", "vsub.8 x0, v1, v2", insts.ErrSyntax),
		Entry("misaligned address", "vld v0, #0x10", insts.ErrSyntax),
		Entry("address out of range", "vld v0, #0x200000", insts.ErrSyntax),
		Entry("bad immediate", "vdup.16 v0, #zz", insts.ErrSyntax),
	)

	It("should report the failing line number", func() {
		_, err := insts.Assemble("halt\nvadd.8 v0, v1\n")
		Expect(err).To(MatchError(ContainSubstring("line 2")))
	})
})
