package emu

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/sarchlab/lanealu/insts"
)

// ErrInstructionLimit is returned when the configured instruction limit is
// reached before the program halts.
var ErrInstructionLimit = errors.New("max instructions reached")

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Halted is true if the instruction was HALT.
	Halted bool

	// Inst is the instruction that was executed, nil if decoding failed.
	Inst *insts.Instruction

	// PC is the address the instruction was fetched from.
	PC uint64

	// Err is set if an error occurred during fetch, decode or execution.
	Err error
}

// Stats holds execution statistics.
type Stats struct {
	Instructions uint64
	ByOp         map[insts.Op]uint64
}

// Emulator executes vector machine programs functionally.
type Emulator struct {
	regFile *RegFile
	memory  *Memory
	decoder *insts.Decoder
	log     logr.Logger

	// Execution units
	vector *VectorUnit
	lsu    *LoadStoreUnit

	stats           Stats
	maxInstructions uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithLogger sets the logger. Every executed instruction is logged at V(1).
func WithLogger(log logr.Logger) EmulatorOption {
	return func(e *Emulator) {
		e.log = log
	}
}

// WithMemory makes the emulator use an existing memory.
func WithMemory(memory *Memory) EmulatorOption {
	return func(e *Emulator) {
		e.memory = memory
	}
}

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(limit uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = limit
	}
}

// NewEmulator creates a new emulator.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		regFile: &RegFile{},
		memory:  NewMemory(),
		decoder: insts.NewDecoder(),
		log:     logr.Discard(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.vector = NewVectorUnit(e.regFile)
	e.lsu = NewLoadStoreUnit(e.regFile, e.memory)
	e.stats.ByOp = make(map[insts.Op]uint64)

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// Stats returns a copy of the execution statistics.
func (e *Emulator) Stats() Stats {
	byOp := make(map[insts.Op]uint64, len(e.stats.ByOp))
	for op, n := range e.stats.ByOp {
		byOp[op] = n
	}
	return Stats{Instructions: e.stats.Instructions, ByOp: byOp}
}

// LoadProgram writes the program words at entry and sets the PC there.
func (e *Emulator) LoadProgram(entry uint64, program []uint32) {
	for i, word := range program {
		e.memory.Write32(entry+uint64(i)*4, word)
	}
	e.regFile.PC = entry
}

// Step fetches, decodes and executes a single instruction.
func (e *Emulator) Step() StepResult {
	pc := e.regFile.PC

	if e.maxInstructions > 0 && e.stats.Instructions >= e.maxInstructions {
		return StepResult{PC: pc, Err: ErrInstructionLimit}
	}

	word := e.memory.Read32(pc)
	inst, err := e.decoder.Decode(word)
	if err != nil {
		return StepResult{PC: pc, Err: fmt.Errorf("PC=0x%X: %w", pc, err)}
	}

	result := e.Execute(inst)
	result.PC = pc
	return result
}

// Execute executes an already decoded instruction at the current PC and
// advances the PC unless the instruction halts.
func (e *Emulator) Execute(inst *insts.Instruction) StepResult {
	pc := e.regFile.PC
	result := StepResult{Inst: inst, PC: pc}

	switch {
	case inst.IsALU():
		if err := e.vector.Execute(inst); err != nil {
			result.Err = fmt.Errorf("PC=0x%X: %w", pc, err)
			return result
		}
	case inst.Op == insts.OpVDUP:
		if err := e.vector.DUP(inst.Vd, inst.Imm, inst.Width); err != nil {
			result.Err = fmt.Errorf("PC=0x%X: %w", pc, err)
			return result
		}
	case inst.Op == insts.OpVLD:
		e.lsu.VLD(inst.Vd, inst.Address())
	case inst.Op == insts.OpVST:
		e.lsu.VST(inst.Vd, inst.Address())
	case inst.Op == insts.OpHALT:
		result.Halted = true
	default:
		result.Err = fmt.Errorf("unimplemented instruction %v at PC=0x%X", inst.Op, pc)
		return result
	}

	e.stats.Instructions++
	e.stats.ByOp[inst.Op]++
	e.log.V(1).Info("exec", "pc", fmt.Sprintf("0x%X", pc), "inst", inst.String())

	if !result.Halted {
		e.regFile.PC += 4
	}

	return result
}

// Run executes instructions until HALT or an error, and returns the number of
// instructions executed.
func (e *Emulator) Run() (uint64, error) {
	for {
		result := e.Step()
		if result.Err != nil {
			e.log.Error(result.Err, "emulation stopped", "pc", fmt.Sprintf("0x%X", result.PC))
			return e.stats.Instructions, result.Err
		}
		if result.Halted {
			return e.stats.Instructions, nil
		}
	}
}
