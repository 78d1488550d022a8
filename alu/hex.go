package alu

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedWord is returned when text cannot be parsed as a Word.
var ErrMalformedWord = errors.New("malformed word")

const hexDigits = "0123456789ABCDEF"

// Format renders v as 64 uppercase hex digits, most significant byte first,
// with a single underscore between byte pairs: "00_FF_AB_...".
func Format(v Word) string {
	var sb strings.Builder
	sb.Grow(SliceCount*3 - 1)
	for i := SliceCount - 1; i >= 0; i-- {
		sb.WriteByte(hexDigits[v[i]>>4])
		sb.WriteByte(hexDigits[v[i]&0xF])
		if i > 0 {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// String implements fmt.Stringer using Format.
func (v Word) String() string {
	return Format(v)
}

// ParseWord parses hexadecimal text into a Word. An optional 0x prefix and
// underscores anywhere are accepted, case is ignored, and short input is
// zero-extended, so "1" is the Word with only bit 0 set.
func ParseWord(s string) (Word, error) {
	var v Word

	digits := strings.TrimSpace(s)
	digits = strings.TrimPrefix(strings.TrimPrefix(digits, "0x"), "0X")
	digits = strings.ReplaceAll(digits, "_", "")

	if digits == "" {
		return v, fmt.Errorf("%w: %q has no digits", ErrMalformedWord, s)
	}
	if len(digits) > SliceCount*2 {
		return v, fmt.Errorf("%w: %q has %d digits, max %d",
			ErrMalformedWord, s, len(digits), SliceCount*2)
	}

	for i := 0; i < len(digits); i++ {
		nibble, ok := hexValue(digits[len(digits)-1-i])
		if !ok {
			return Word{}, fmt.Errorf("%w: %q contains %q",
				ErrMalformedWord, s, digits[len(digits)-1-i])
		}
		v[i/2] |= nibble << (4 * (i % 2))
	}

	return v, nil
}

// MustParseWord is like ParseWord but panics on error.
// It is meant for constants in tests and tables.
func MustParseWord(s string) Word {
	v, err := ParseWord(s)
	if err != nil {
		panic(err)
	}
	return v
}

func hexValue(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
