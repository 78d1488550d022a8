package emu

// LoadStoreUnit moves vectors between the register file and memory.
type LoadStoreUnit struct {
	regFile *RegFile
	memory  *Memory
}

// NewLoadStoreUnit creates a new LoadStoreUnit.
func NewLoadStoreUnit(regFile *RegFile, memory *Memory) *LoadStoreUnit {
	return &LoadStoreUnit{regFile: regFile, memory: memory}
}

// VLD loads the 32 bytes at addr into Vd.
func (lsu *LoadStoreUnit) VLD(vd uint8, addr uint64) {
	lsu.regFile.WriteV(vd, lsu.memory.ReadWord(addr))
}

// VST stores Vt to the 32 bytes at addr.
func (lsu *LoadStoreUnit) VST(vt uint8, addr uint64) {
	lsu.memory.WriteWord(addr, lsu.regFile.ReadV(vt))
}
