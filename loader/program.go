// Package loader reads vector machine programs from disk.
//
// Two formats are understood, picked by file extension: assembler text
// (.s, .asm) and raw little-endian control words (anything else).
package loader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sarchlab/lanealu/emu"
	"github.com/sarchlab/lanealu/insts"
)

// ErrTruncated is returned for a binary program whose size is not a whole
// number of control words.
var ErrTruncated = errors.New("program is not a whole number of words")

// DefaultEntry is the default load address, clear of the low data region
// that VLD/VST immediates reach first.
const DefaultEntry = 0x100000

// Format identifies how a program file is encoded.
type Format int

// Program formats.
const (
	FormatBinary Format = iota
	FormatAssembly
)

// String returns the format name.
func (f Format) String() string {
	if f == FormatAssembly {
		return "assembly"
	}
	return "binary"
}

// Program represents a loaded program ready for execution.
type Program struct {
	// Path is the file the program came from.
	Path string
	// Format is the encoding the file was read as.
	Format Format
	// Words holds the control words in execution order.
	Words []uint32
}

// FormatOf returns the format implied by the file extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".s", ".asm":
		return FormatAssembly
	}
	return FormatBinary
}

// Load reads a program file.
func Load(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}

	prog, err := Parse(FormatOf(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	prog.Path = path

	return prog, nil
}

// Parse decodes program bytes in the given format.
func Parse(format Format, data []byte) (*Program, error) {
	prog := &Program{Format: format}

	if format == FormatAssembly {
		words, err := insts.Assemble(string(data))
		if err != nil {
			return nil, err
		}
		prog.Words = words
		return prog, nil
	}

	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncated, len(data))
	}
	prog.Words = make([]uint32, len(data)/4)
	for i := range prog.Words {
		prog.Words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}

	return prog, nil
}

// Bytes encodes the program as raw little-endian words.
func (p *Program) Bytes() []byte {
	out := make([]byte, 0, len(p.Words)*4)
	for _, w := range p.Words {
		out = binary.LittleEndian.AppendUint32(out, w)
	}
	return out
}

// LoadInto writes the program into the emulator at entry and points the PC
// at it.
func (p *Program) LoadInto(e *emu.Emulator, entry uint64) {
	e.LoadProgram(entry, p.Words)
}
