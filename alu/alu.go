package alu

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidOperation is returned when an operation selector is not one of
// the seven supported operations.
var ErrInvalidOperation = errors.New("invalid operation")

// Operation selects what the ALU computes.
type Operation uint8

// ALU operations.
const (
	OpAdd Operation = iota
	OpSub
	OpEq
	OpGt
	OpLt
	OpShl
	OpShr
)

// Operations lists every valid operation.
var Operations = []Operation{OpAdd, OpSub, OpEq, OpGt, OpLt, OpShl, OpShr}

var opNames = [...]string{
	OpAdd: "add",
	OpSub: "sub",
	OpEq:  "eq",
	OpGt:  "gt",
	OpLt:  "lt",
	OpShl: "shl",
	OpShr: "shr",
}

var opAliases = map[string]Operation{
	"add":      OpAdd,
	"sub":      OpSub,
	"subtract": OpSub,
	"eq":       OpEq,
	"equal":    OpEq,
	"gt":       OpGt,
	"greater":  OpGt,
	"more":     OpGt,
	"lt":       OpLt,
	"less":     OpLt,
	"shl":      OpShl,
	"lshift":   OpShl,
	"shr":      OpShr,
	"rshift":   OpShr,
}

// ParseOperation maps a mnemonic such as "add" or "rshift" to its Operation.
// Matching is case-insensitive.
func ParseOperation(name string) (Operation, error) {
	op, ok := opAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOperation, name)
	}
	return op, nil
}

// Valid reports whether op is a supported operation.
func (op Operation) Valid() bool {
	return op <= OpShr
}

// String returns the short mnemonic of op.
func (op Operation) String() string {
	if !op.Valid() {
		return fmt.Sprintf("Operation(%d)", uint8(op))
	}
	return opNames[op]
}

// IsCompare reports whether op produces a predicate mask.
func (op Operation) IsCompare() bool {
	return op == OpEq || op == OpGt || op == OpLt
}

// IsShift reports whether op is a logical shift.
func (op Operation) IsShift() bool {
	return op == OpShl || op == OpShr
}

// Execute evaluates op on a and b with lane width w. It is the checked entry
// point: an invalid operation or lane width is rejected instead of being
// mapped to a default.
func Execute(op Operation, a, b Word, w LaneWidth) (Word, error) {
	if !w.Valid() {
		return Word{}, fmt.Errorf("%w: %d", ErrInvalidLaneWidth, uint8(w))
	}

	switch op {
	case OpAdd:
		return AddSub(a, b, false, w), nil
	case OpSub:
		return AddSub(a, b, true, w), nil
	case OpEq:
		return Compare(a, b, w, PredEqual), nil
	case OpGt:
		return Compare(a, b, w, PredGreater), nil
	case OpLt:
		return Compare(a, b, w, PredLess), nil
	case OpShl:
		return Shift(a, b, w, ShiftLeftDir), nil
	case OpShr:
		return Shift(a, b, w, ShiftRightDir), nil
	}

	return Word{}, fmt.Errorf("%w: %d", ErrInvalidOperation, uint8(op))
}
