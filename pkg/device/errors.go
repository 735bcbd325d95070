package device

import (
	"errors"
	"fmt"

	"github.com/robotalks/pinio.go/pkg/wire"
)

// ErrReadUnsupported indicates a read on a class that cannot be sampled.
var ErrReadUnsupported = errors.New("read not supported")

// OutOfRangeError indicates an index beyond the addressing table.
type OutOfRangeError struct {
	Class wire.Class
	Index int
	Size  int
}

// Error implements error.
func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s%d out of range, %d addressable", e.Class, e.Index, e.Size)
}

// BadModeError indicates a mode not applicable to the device class.
type BadModeError struct {
	Class wire.Class
	Mode  wire.Mode
}

// Error implements error.
func (e *BadModeError) Error() string {
	return fmt.Sprintf("mode %s not applicable to class %s", e.Mode, e.Class)
}
