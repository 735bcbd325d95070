package wire

import (
	"errors"
	"fmt"
)

// ErrLineTooShort indicates the line ended before the operation byte.
var ErrLineTooShort = errors.New("line too short")

// BadDigitError indicates a character is not a digit in the requested base.
type BadDigitError struct {
	Char byte
	Base int
}

// Error implements error.
func (e *BadDigitError) Error() string {
	return fmt.Sprintf("invalid base-%d digit %q", e.Base, e.Char)
}

// BadIndexError indicates the index byte is not a decimal digit.
type BadIndexError struct {
	Char byte
}

// Error implements error.
func (e *BadIndexError) Error() string {
	return fmt.Sprintf("malformed index %q", e.Char)
}

// UnknownOpError indicates an unrecognized operation selector byte.
type UnknownOpError struct {
	Op byte
}

// Error implements error.
func (e *UnknownOpError) Error() string {
	return fmt.Sprintf("unrecognized operation %q", e.Op)
}

// UnknownModeError indicates an unrecognized set-mode operand byte.
type UnknownModeError struct {
	Mode byte
}

// Error implements error.
func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("unknown mode %q", e.Mode)
}
