package insts

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sarchlab/lanealu/alu"
)

// ErrSyntax is returned for assembler input that does not parse.
var ErrSyntax = errors.New("syntax error")

var mnemonicOps = map[string]Op{}

func init() {
	for op, name := range opMnemonics {
		mnemonicOps[name] = op
	}
}

// Assemble translates assembler source into control words. Errors carry the
// 1-based line number of the offending line.
func Assemble(src string) ([]uint32, error) {
	var words []uint32

	for n, line := range strings.Split(src, "\n") {
		inst, ok, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		if !ok {
			continue
		}

		word, err := Encode(inst)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		words = append(words, word)
	}

	return words, nil
}

// ParseLine parses a single line of assembler. It returns ok == false for
// blank and comment-only lines.
//
// Syntax:
//
//	vadd.16 v2, v0, v1   ; also vsub vceq vcgt vclt vshl vshr
//	vdup.8  v3, #0x7F
//	vld     v0, #0x40    ; byte address, multiple of 32
//	vst     v0, #64
//	halt
func ParseLine(line string) (*Instruction, bool, error) {
	line = stripComment(line)
	if line == "" {
		return nil, false, nil
	}

	mnemonic, rest := line, ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		mnemonic, rest = line[:i], line[i+1:]
	}
	name, suffix, hasSuffix := strings.Cut(strings.ToLower(mnemonic), ".")

	op, ok := mnemonicOps[name]
	if !ok {
		return nil, false, fmt.Errorf("%w: unknown mnemonic %q", ErrSyntax, mnemonic)
	}

	inst := &Instruction{Op: op}
	needsWidth := op == OpVDUP || isALUOp(op)
	switch {
	case needsWidth && !hasSuffix:
		return nil, false, fmt.Errorf("%w: %s needs a lane width suffix", ErrSyntax, name)
	case !needsWidth && hasSuffix:
		return nil, false, fmt.Errorf("%w: %s takes no lane width", ErrSyntax, name)
	case needsWidth:
		bits, err := strconv.Atoi(suffix)
		if err != nil {
			return nil, false, fmt.Errorf("%w: lane width %q", ErrSyntax, suffix)
		}
		if inst.Width, err = alu.ParseLaneWidth(bits); err != nil {
			return nil, false, err
		}
	}

	operands := splitOperands(rest)

	var err error
	switch {
	case op == OpHALT:
		err = expectOperands(operands, 0)
	case isALUOp(op):
		if err = expectOperands(operands, 3); err == nil {
			inst.Vd, inst.Vn, inst.Vm, err = parseRegs3(operands)
		}
	case op == OpVDUP:
		if err = expectOperands(operands, 2); err == nil {
			inst.Vd, inst.Imm, err = parseRegImm(operands, 0xFFFF)
		}
	case op == OpVLD || op == OpVST:
		if err = expectOperands(operands, 2); err == nil {
			inst.Vd, inst.Imm, err = parseRegImm(operands, 0)
		}
	}
	if err != nil {
		return nil, false, err
	}

	return inst, true, nil
}

func isALUOp(op Op) bool {
	for _, e := range aluOps {
		if e.op == op {
			return true
		}
	}
	return false
}

func stripComment(line string) string {
	if i := strings.Index(line, ";"); i >= 0 {
		line = line[:i]
	}
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

func splitOperands(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func expectOperands(operands []string, n int) error {
	if len(operands) != n {
		return fmt.Errorf("%w: want %d operands, got %d", ErrSyntax, n, len(operands))
	}
	return nil
}

func parseRegs3(operands []string) (vd, vn, vm uint8, err error) {
	if vd, err = parseReg(operands[0]); err != nil {
		return
	}
	if vn, err = parseReg(operands[1]); err != nil {
		return
	}
	vm, err = parseReg(operands[2])
	return
}

func parseReg(s string) (uint8, error) {
	s = strings.ToLower(s)
	if !strings.HasPrefix(s, "v") {
		return 0, fmt.Errorf("%w: register %q", ErrSyntax, s)
	}
	n, err := strconv.ParseUint(s[1:], 10, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: register %q", ErrSyntax, s)
	}
	if n >= NumVectorRegs {
		return 0, fmt.Errorf("%w: v%d", ErrBadRegister, n)
	}
	return uint8(n), nil
}

// parseRegImm parses "vN, #imm". A limit of 0 means the immediate is a vector
// byte address and is returned in 32-byte units.
func parseRegImm(operands []string, limit uint64) (uint8, uint16, error) {
	reg, err := parseReg(operands[0])
	if err != nil {
		return 0, 0, err
	}

	text := strings.TrimPrefix(operands[1], "#")
	v, err := strconv.ParseUint(text, 0, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: immediate %q", ErrSyntax, operands[1])
	}

	if limit == 0 {
		if v%VectorBytes != 0 {
			return 0, 0, fmt.Errorf("%w: address 0x%X is not %d-byte aligned",
				ErrSyntax, v, VectorBytes)
		}
		v /= VectorBytes
		limit = 0xFFFF
	}
	if v > limit {
		return 0, 0, fmt.Errorf("%w: immediate %q out of range", ErrSyntax, operands[1])
	}

	return reg, uint16(v), nil
}
