package insts

import (
	"errors"
	"fmt"

	"github.com/sarchlab/lanealu/alu"
)

// Decoding and encoding errors.
var (
	ErrUnknownClass     = errors.New("unknown instruction class")
	ErrUnknownFunction  = errors.New("unknown ALU function code")
	ErrReservedFunction = errors.New("reserved ALU function code")
	ErrBadRegister      = errors.New("vector register out of range")
	ErrUnencodable      = errors.New("instruction cannot be encoded")
)

// Decoder decodes control words into instructions.
type Decoder struct{}

// NewDecoder creates a new instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit control word. Unknown classes and function codes
// are rejected rather than decoded as a default operation.
func (d *Decoder) Decode(word uint32) (*Instruction, error) {
	class := Class((word >> 28) & 0xF) // bits [31:28]
	fn := FuncCode((word >> 24) & 0xF) // bits [27:24]
	width := alu.LaneWidth((word >> 22) & 0x3)
	imm := uint16((word >> 5) & 0xFFFF) // bits [20:5]
	vm := uint8((word >> 10) & 0x1F)    // bits [14:10]
	vn := uint8((word >> 5) & 0x1F)     // bits [9:5]
	vd := uint8(word & 0x1F)            // bits [4:0]

	inst := &Instruction{Op: OpUnknown, Vd: vd}

	switch class {
	case ClassALU:
		op, err := d.decodeFunction(fn)
		if err != nil {
			return nil, fmt.Errorf("word 0x%08X: %w", word, err)
		}
		inst.Op = op
		inst.Width = width
		inst.Vn = vn
		inst.Vm = vm
	case ClassLoad:
		inst.Op = OpVLD
		inst.Imm = imm
	case ClassStore:
		inst.Op = OpVST
		inst.Imm = imm
	case ClassDup:
		inst.Op = OpVDUP
		inst.Width = width
		inst.Imm = imm
	case ClassHalt:
		inst.Op = OpHALT
		inst.Vd = 0
	default:
		return nil, fmt.Errorf("word 0x%08X: %w %d", word, ErrUnknownClass, class)
	}

	return inst, nil
}

func (d *Decoder) decodeFunction(fn FuncCode) (Op, error) {
	if fn == FuncMUL || fn == FuncDIV {
		return OpUnknown, fmt.Errorf("%w %d", ErrReservedFunction, fn)
	}
	for _, e := range aluOps {
		if e.fn == fn {
			return e.op, nil
		}
	}
	return OpUnknown, fmt.Errorf("%w %d", ErrUnknownFunction, fn)
}

// Encode packs an instruction into its control word. It is the inverse of
// Decode for every instruction Decode can produce.
func Encode(inst *Instruction) (uint32, error) {
	if inst.Vd >= NumVectorRegs || inst.Vn >= NumVectorRegs || inst.Vm >= NumVectorRegs {
		return 0, fmt.Errorf("%w: %s", ErrBadRegister, inst)
	}
	if !inst.Width.Valid() {
		return 0, fmt.Errorf("%w: %v", alu.ErrInvalidLaneWidth, inst.Width)
	}

	width := uint32(inst.Width) << 22
	vd := uint32(inst.Vd)
	imm := uint32(inst.Imm) << 5

	switch inst.Op {
	case OpVLD:
		return uint32(ClassLoad)<<28 | imm | vd, nil
	case OpVST:
		return uint32(ClassStore)<<28 | imm | vd, nil
	case OpVDUP:
		return uint32(ClassDup)<<28 | width | imm | vd, nil
	case OpHALT:
		return uint32(ClassHalt) << 28, nil
	}

	for _, e := range aluOps {
		if e.op == inst.Op {
			return uint32(ClassALU)<<28 | uint32(e.fn)<<24 | width |
				uint32(inst.Vm)<<10 | uint32(inst.Vn)<<5 | vd, nil
		}
	}

	return 0, fmt.Errorf("%w: %v", ErrUnencodable, inst.Op)
}
