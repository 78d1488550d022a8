package emu

import (
	"encoding/binary"

	"github.com/sarchlab/lanealu/alu"
)

const pageSize = 4096

// Memory is a sparse, byte-addressable little-endian memory. Unwritten bytes
// read as zero.
type Memory struct {
	pages map[uint64]*[pageSize]byte
}

// NewMemory creates an empty memory.
func NewMemory() *Memory {
	return &Memory{pages: make(map[uint64]*[pageSize]byte)}
}

func (m *Memory) page(addr uint64, create bool) *[pageSize]byte {
	key := addr / pageSize
	p, ok := m.pages[key]
	if !ok && create {
		p = new([pageSize]byte)
		m.pages[key] = p
	}
	return p
}

// Read8 reads one byte.
func (m *Memory) Read8(addr uint64) byte {
	p := m.page(addr, false)
	if p == nil {
		return 0
	}
	return p[addr%pageSize]
}

// Write8 writes one byte.
func (m *Memory) Write8(addr uint64, value byte) {
	m.page(addr, true)[addr%pageSize] = value
}

// ReadBytes reads n consecutive bytes starting at addr.
func (m *Memory) ReadBytes(addr uint64, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = m.Read8(addr + uint64(i))
	}
	return out
}

// WriteBytes writes data starting at addr.
func (m *Memory) WriteBytes(addr uint64, data []byte) {
	for i, b := range data {
		m.Write8(addr+uint64(i), b)
	}
}

// Read32 reads a little-endian 32-bit value.
func (m *Memory) Read32(addr uint64) uint32 {
	return binary.LittleEndian.Uint32(m.ReadBytes(addr, 4))
}

// Write32 writes a little-endian 32-bit value.
func (m *Memory) Write32(addr uint64, value uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], value)
	m.WriteBytes(addr, buf[:])
}

// ReadWord reads a 256-bit vector. Slice 0 is at the lowest address.
func (m *Memory) ReadWord(addr uint64) alu.Word {
	var v alu.Word
	copy(v[:], m.ReadBytes(addr, alu.SliceCount))
	return v
}

// WriteWord writes a 256-bit vector. Slice 0 goes to the lowest address.
func (m *Memory) WriteWord(addr uint64, value alu.Word) {
	m.WriteBytes(addr, value[:])
}
