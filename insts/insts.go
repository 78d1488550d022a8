// Package insts provides the control-word instruction set that drives the
// lane-partitioned ALU.
//
// Every instruction is one 32-bit word:
//
//	31..28 class    0 ALU, 1 VLD, 2 VST, 3 VDUP, 0xF HALT
//	27..24 function ALU function code (see FuncCode)
//	23..22 width    lane width code (alu.LaneWidth)
//	20..5  imm16    VLD/VST vector address, VDUP value
//	14..10 Vm
//	 9..5  Vn
//	 4..0  Vd
//
// Usage:
//
//	words, err := insts.Assemble("vadd.16 v2, v0, v1\nhalt\n")
//	inst, err := insts.NewDecoder().Decode(words[0])
package insts

import (
	"fmt"

	"github.com/sarchlab/lanealu/alu"
)

// VectorBytes is the size of one vector register in memory.
const VectorBytes = alu.SliceCount

// NumVectorRegs is the number of addressable vector registers.
const NumVectorRegs = 32

// Class is the top-level instruction class held in bits [31:28].
type Class uint8

// Instruction classes.
const (
	ClassALU   Class = 0x0
	ClassLoad  Class = 0x1
	ClassStore Class = 0x2
	ClassDup   Class = 0x3
	ClassHalt  Class = 0xF
)

// FuncCode is the 4-bit ALU function field. MUL and DIV are reserved codes
// and never decode.
type FuncCode uint8

// ALU function codes.
const (
	FuncADD    FuncCode = 0x0
	FuncSUB    FuncCode = 0x1
	FuncMUL    FuncCode = 0x2 // reserved
	FuncDIV    FuncCode = 0x3 // reserved
	FuncEQ     FuncCode = 0x4
	FuncMORE   FuncCode = 0x5
	FuncLSHIFT FuncCode = 0x6
	FuncRSHIFT FuncCode = 0x7
	FuncLESS   FuncCode = 0x8
)

// Op represents a decoded opcode.
type Op uint16

// Opcodes.
const (
	OpUnknown Op = iota
	OpVADD
	OpVSUB
	OpVCEQ
	OpVCGT
	OpVCLT
	OpVSHL
	OpVSHR
	OpVLD
	OpVST
	OpVDUP
	OpHALT
)

var opMnemonics = map[Op]string{
	OpVADD: "vadd",
	OpVSUB: "vsub",
	OpVCEQ: "vceq",
	OpVCGT: "vcgt",
	OpVCLT: "vclt",
	OpVSHL: "vshl",
	OpVSHR: "vshr",
	OpVLD:  "vld",
	OpVST:  "vst",
	OpVDUP: "vdup",
	OpHALT: "halt",
}

// String returns the assembler mnemonic of op.
func (op Op) String() string {
	if s, ok := opMnemonics[op]; ok {
		return s
	}
	return fmt.Sprintf("Op(%d)", uint16(op))
}

// aluOps pairs each ALU opcode with its function code and ALU operation.
var aluOps = []struct {
	op    Op
	fn    FuncCode
	aluOp alu.Operation
}{
	{OpVADD, FuncADD, alu.OpAdd},
	{OpVSUB, FuncSUB, alu.OpSub},
	{OpVCEQ, FuncEQ, alu.OpEq},
	{OpVCGT, FuncMORE, alu.OpGt},
	{OpVCLT, FuncLESS, alu.OpLt},
	{OpVSHL, FuncLSHIFT, alu.OpShl},
	{OpVSHR, FuncRSHIFT, alu.OpShr},
}

// Instruction represents a decoded instruction.
type Instruction struct {
	Op    Op
	Width alu.LaneWidth // lane width for ALU and VDUP

	Vd uint8 // destination register, or source register for VST
	Vn uint8 // first source register
	Vm uint8 // second source register

	Imm uint16 // VLD/VST vector index, VDUP value
}

// IsALU reports whether the instruction is executed by the ALU.
func (inst *Instruction) IsALU() bool {
	_, ok := inst.ALUOperation()
	return ok
}

// IsMemory reports whether the instruction accesses memory.
func (inst *Instruction) IsMemory() bool {
	return inst.Op == OpVLD || inst.Op == OpVST
}

// ALUOperation maps an ALU opcode to the operation it performs.
func (inst *Instruction) ALUOperation() (alu.Operation, bool) {
	for _, e := range aluOps {
		if e.op == inst.Op {
			return e.aluOp, true
		}
	}
	return 0, false
}

// Address returns the byte address accessed by VLD or VST.
func (inst *Instruction) Address() uint64 {
	return uint64(inst.Imm) * VectorBytes
}

// String disassembles the instruction.
func (inst *Instruction) String() string {
	switch {
	case inst.IsALU():
		return fmt.Sprintf("%s.%d v%d, v%d, v%d",
			inst.Op, inst.Width.Bits(), inst.Vd, inst.Vn, inst.Vm)
	case inst.IsMemory():
		return fmt.Sprintf("%s v%d, #0x%X", inst.Op, inst.Vd, inst.Address())
	case inst.Op == OpVDUP:
		return fmt.Sprintf("vdup.%d v%d, #%d", inst.Width.Bits(), inst.Vd, inst.Imm)
	case inst.Op == OpHALT:
		return "halt"
	}
	return inst.Op.String()
}
