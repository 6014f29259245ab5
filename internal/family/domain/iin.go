// Package domain holds the value objects shared by the family lookup pipeline.
//
// Domain purity: no I/O and no context.Context here.
package domain

import (
	"errors"
)

// IINLength is the fixed length of an individual identification number.
const IINLength = 12

// ErrInvalidIIN indicates the IIN failed validation.
var ErrInvalidIIN = errors.New("invalid IIN: must be exactly 12 decimal digits")

// IIN is a validated individual identification number.
//
// Invariants:
//   - exactly 12 bytes
//   - every byte is an ASCII decimal digit
type IIN struct {
	value string
}

// ParseIIN validates raw input. No trimming is performed: surrounding spaces
// make the value invalid.
func ParseIIN(raw string) (IIN, error) {
	if !IsValidIIN(raw) {
		return IIN{}, ErrInvalidIIN
	}
	return IIN{value: raw}, nil
}

// MustIIN parses an IIN, panicking if invalid. Use only in tests and fixtures.
func MustIIN(raw string) IIN {
	iin, err := ParseIIN(raw)
	if err != nil {
		panic(err)
	}
	return iin
}

// IsValidIIN reports whether raw is exactly twelve decimal digits.
func IsValidIIN(raw string) bool {
	if len(raw) != IINLength {
		return false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return false
		}
	}
	return true
}

func (i IIN) String() string {
	return i.value
}

// IsZero returns true for the uninitialized value.
func (i IIN) IsZero() bool {
	return i.value == ""
}
