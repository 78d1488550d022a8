package emu

import (
	"fmt"

	"github.com/sarchlab/lanealu/alu"
	"github.com/sarchlab/lanealu/insts"
)

// VectorUnit executes ALU and broadcast instructions on the vector register
// file.
type VectorUnit struct {
	regFile *RegFile
}

// NewVectorUnit creates a vector unit connected to the given register file.
func NewVectorUnit(regFile *RegFile) *VectorUnit {
	return &VectorUnit{regFile: regFile}
}

// Execute performs an ALU instruction: Vd = op(Vn, Vm) with the instruction's
// lane width.
func (u *VectorUnit) Execute(inst *insts.Instruction) error {
	op, ok := inst.ALUOperation()
	if !ok {
		return fmt.Errorf("%v is not an ALU instruction", inst.Op)
	}

	a := u.regFile.ReadV(inst.Vn)
	b := u.regFile.ReadV(inst.Vm)

	result, err := alu.Execute(op, a, b, inst.Width)
	if err != nil {
		return err
	}

	u.regFile.WriteV(inst.Vd, result)
	return nil
}

// DUP broadcasts imm into every lane of Vd.
func (u *VectorUnit) DUP(vd uint8, imm uint16, width alu.LaneWidth) error {
	if !width.Valid() {
		return fmt.Errorf("%w: %d", alu.ErrInvalidLaneWidth, uint8(width))
	}
	u.regFile.WriteV(vd, alu.Splat(width, uint64(imm)))
	return nil
}
