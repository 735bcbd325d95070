package host

import (
	"fmt"
	"strconv"
)

// FormatLevel formats a logic level operand.
func FormatLevel(on bool) string {
	if on {
		return "H"
	}
	return "L"
}

// FormatValue formats a numeric set-value operand: an optional '-'
// followed by the magnitude in lowercase hex.
func FormatValue(value int) string {
	if value < 0 {
		return "-" + strconv.FormatInt(int64(-value), 16)
	}
	return strconv.FormatInt(int64(value), 16)
}

// ValueLimit is the exclusive upper bound of pin values.
const ValueLimit = 256

// ValidValue indicates value can be written to a pin.
func ValidValue(value int) bool {
	return value >= 0 && value < ValueLimit
}

// BadValueError indicates a value outside the writable range.
type BadValueError struct {
	Value int
}

// Error implements error.
func (e *BadValueError) Error() string {
	return fmt.Sprintf("unacceptable value %d", e.Value)
}
