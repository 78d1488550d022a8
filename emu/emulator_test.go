package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/lanealu/alu"
	"github.com/sarchlab/lanealu/emu"
	"github.com/sarchlab/lanealu/insts"
)

func assemble(src string) []uint32 {
	words, err := insts.Assemble(src)
	Expect(err).NotTo(HaveOccurred())
	return words
}

var _ = Describe("Emulator", func() {
	var e *emu.Emulator

	BeforeEach(func() {
		e = emu.NewEmulator()
	})

	Describe("NewEmulator", func() {
		It("should create an emulator with initialized components", func() {
			Expect(e.RegFile()).NotTo(BeNil())
			Expect(e.Memory()).NotTo(BeNil())
			Expect(e.Stats().Instructions).To(BeZero())
		})

		It("should use a provided memory", func() {
			memory := emu.NewMemory()
			memory.Write8(0x10, 0xAB)
			e = emu.NewEmulator(emu.WithMemory(memory))
			Expect(e.Memory()).To(BeIdenticalTo(memory))
		})
	})

	Describe("LoadProgram", func() {
		It("should set the PC and store words little-endian", func() {
			e.LoadProgram(0x1000, []uint32{0xF0000000})

			Expect(e.RegFile().PC).To(Equal(uint64(0x1000)))
			Expect(e.Memory().Read8(0x1003)).To(Equal(byte(0xF0)))
			Expect(e.Memory().Read32(0x1000)).To(Equal(uint32(0xF0000000)))
		})
	})

	Describe("Step", func() {
		It("should execute an ALU instruction and advance the PC", func() {
			e.RegFile().WriteV(0, alu.Splat(alu.Lanes16x16, 0x00FF))
			e.RegFile().WriteV(1, alu.Splat(alu.Lanes16x16, 0x0001))
			e.LoadProgram(0x1000, assemble("vadd.16 v2, v0, v1"))

			result := e.Step()

			Expect(result.Err).NotTo(HaveOccurred())
			Expect(result.Halted).To(BeFalse())
			Expect(result.Inst.Op).To(Equal(insts.OpVADD))
			Expect(result.PC).To(Equal(uint64(0x1000)))
			Expect(e.RegFile().ReadV(2)).To(Equal(alu.Splat(alu.Lanes16x16, 0x0100)))
			Expect(e.RegFile().PC).To(Equal(uint64(0x1004)))
		})

		It("should broadcast an immediate with vdup", func() {
			e.LoadProgram(0x1000, assemble("vdup.32 v5, #0x1234"))

			Expect(e.Step().Err).NotTo(HaveOccurred())
			Expect(e.RegFile().ReadV(5)).To(Equal(alu.Splat(alu.Lanes8x32, 0x1234)))
		})

		It("should report undecodable words", func() {
			e.LoadProgram(0x1000, []uint32{0x02000000})

			result := e.Step()
			Expect(result.Err).To(MatchError(insts.ErrReservedFunction))
			Expect(e.RegFile().PC).To(Equal(uint64(0x1000)))
		})

		It("should reject an invalid lane width on a hand-built instruction", func() {
			result := e.Execute(&insts.Instruction{Op: insts.OpVADD, Width: alu.LaneWidth(5)})
			Expect(result.Err).To(MatchError(alu.ErrInvalidLaneWidth))
		})

		It("should reject an invalid lane width on a hand-built VDUP", func() {
			var result emu.StepResult
			Expect(func() {
				result = e.Execute(&insts.Instruction{Op: insts.OpVDUP, Vd: 1, Imm: 7, Width: alu.LaneWidth(5)})
			}).NotTo(Panic())

			Expect(result.Err).To(MatchError(alu.ErrInvalidLaneWidth))
			Expect(e.RegFile().ReadV(1).IsZero()).To(BeTrue())
			Expect(e.RegFile().PC).To(BeZero())
			Expect(e.Stats().Instructions).To(BeZero())
		})
	})

	Describe("Run", func() {
		It("should load, compute and store vectors", func() {
			a := alu.FromLanes(alu.Lanes8x32, 10, 20, 30, 40)
			b := alu.FromLanes(alu.Lanes8x32, 1, 2, 3, 4)
			e.Memory().WriteWord(0x0, a)
			e.Memory().WriteWord(0x20, b)

			e.LoadProgram(0x1000, assemble(`
				vld     v0, #0x00
				vld     v1, #0x20
				vsub.32 v2, v0, v1
				vcgt.32 v3, v0, v1
				vst     v2, #0x40
				vst     v3, #0x60
				halt
			`))

			count, err := e.Run()
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(uint64(7)))

			Expect(e.Memory().ReadWord(0x40).Lanes(alu.Lanes8x32)[:4]).
				To(Equal([]uint64{9, 18, 27, 36}))
			gt := e.Memory().ReadWord(0x60).Lanes(alu.Lanes8x32)
			Expect(gt[:4]).To(HaveEach(uint64(0xFFFFFFFF)))
			Expect(gt[4:]).To(HaveEach(uint64(0)))

			stats := e.Stats()
			Expect(stats.ByOp[insts.OpVLD]).To(Equal(uint64(2)))
			Expect(stats.ByOp[insts.OpHALT]).To(Equal(uint64(1)))
		})

		It("should stop at the instruction limit", func() {
			e = emu.NewEmulator(emu.WithMaxInstructions(2))
			e.LoadProgram(0x0, assemble("vdup.8 v0, #1\nvdup.8 v1, #2\nvdup.8 v2, #3\nhalt"))

			count, err := e.Run()
			Expect(err).To(MatchError(emu.ErrInstructionLimit))
			Expect(count).To(Equal(uint64(2)))
		})
	})
})

var _ = Describe("Memory", func() {
	It("should read unwritten bytes as zero", func() {
		m := emu.NewMemory()
		Expect(m.Read8(0xDEAD_BEEF)).To(BeZero())
		Expect(m.ReadWord(0x1000).IsZero()).To(BeTrue())
	})

	It("should store vectors across a page boundary", func() {
		m := emu.NewMemory()
		v := alu.MustParseWord("01_02_03_04_05_06_07_08_09_0A_0B_0C_0D_0E_0F_10_11_12_13_14_15_16_17_18_19_1A_1B_1C_1D_1E_1F_20")

		m.WriteWord(4096-16, v)

		Expect(m.ReadWord(4096 - 16)).To(Equal(v))
		Expect(m.Read8(4096 - 16)).To(Equal(byte(0x20)))
		Expect(m.Read8(4096 + 15)).To(Equal(byte(0x01)))
	})
})

var _ = Describe("RegFile", func() {
	It("should ignore out-of-range registers", func() {
		r := &emu.RegFile{}
		r.WriteV(40, alu.Ones)
		Expect(r.ReadV(40).IsZero()).To(BeTrue())
	})
})
