// Package latency provides instruction timing models for the vector machine.
//
// The latency values can be configured via TimingConfig.
package latency

import (
	"github.com/sarchlab/lanealu/insts"
)

// Table provides instruction latency lookups.
type Table struct {
	config *TimingConfig
}

// NewTable creates a new latency table with default timing values.
func NewTable() *Table {
	return &Table{
		config: DefaultTimingConfig(),
	}
}

// NewTableWithConfig creates a new latency table with custom timing configuration.
func NewTableWithConfig(config *TimingConfig) *Table {
	return &Table{
		config: config,
	}
}

// GetLatency returns the execution latency in cycles for the given
// instruction. Memory latency beyond the base load/store cost is charged by
// the cache model.
func (t *Table) GetLatency(inst *insts.Instruction) uint64 {
	if inst == nil {
		return 1
	}

	switch inst.Op {
	case insts.OpVADD, insts.OpVSUB:
		return t.config.AddSubLatency

	case insts.OpVCEQ, insts.OpVCGT, insts.OpVCLT:
		return t.config.CompareLatency

	case insts.OpVSHL, insts.OpVSHR:
		return t.config.ShiftLatency

	case insts.OpVDUP:
		return t.config.DupLatency

	case insts.OpVLD:
		return t.config.LoadLatency

	case insts.OpVST:
		return t.config.StoreLatency

	case insts.OpHALT:
		return t.config.HaltLatency

	default:
		return 1
	}
}

// IsLoadOp returns true if the instruction is a vector load.
func (t *Table) IsLoadOp(inst *insts.Instruction) bool {
	return inst != nil && inst.Op == insts.OpVLD
}

// IsStoreOp returns true if the instruction is a vector store.
func (t *Table) IsStoreOp(inst *insts.Instruction) bool {
	return inst != nil && inst.Op == insts.OpVST
}

// Config returns the current timing configuration.
func (t *Table) Config() *TimingConfig {
	return t.config
}
