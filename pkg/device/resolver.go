package device

import (
	"github.com/robotalks/pinio.go/pkg/wire"
)

// DefaultAnalogPins maps analog indices A0-A5 to the platform pin
// identifiers of the reference board.
var DefaultAnalogPins = []int{14, 15, 16, 17, 18, 19}

// Address is a resolved device address.
type Address struct {
	Class wire.Class
	// Pin is the platform pin for digital and analog classes.
	Pin int
	// Slot is the handle table slot for motor and stepper classes.
	Slot int
}

// Resolver maps a (class, index) pair to an addressable resource.
type Resolver struct {
	// AnalogPins is the analog index to platform pin table.
	AnalogPins []int
	// Motors and Steppers are the handle table sizes.
	Motors   int
	Steppers int
}

// Resolve maps class and index to an Address. Digital indices are the
// pin number itself. Analog indices are looked up in AnalogPins. Motor
// and stepper indices address the handle tables directly.
func (r *Resolver) Resolve(class wire.Class, index int) (Address, error) {
	addr := Address{Class: class}
	switch class {
	case wire.ClassDigital:
		addr.Pin = index
	case wire.ClassAnalog:
		if index < 0 || index >= len(r.AnalogPins) {
			return addr, &OutOfRangeError{Class: class, Index: index, Size: len(r.AnalogPins)}
		}
		addr.Pin = r.AnalogPins[index]
	case wire.ClassMotor:
		if index < 0 || index >= r.Motors {
			return addr, &OutOfRangeError{Class: class, Index: index, Size: r.Motors}
		}
		addr.Slot = index
	case wire.ClassStepper:
		if index < 0 || index >= r.Steppers {
			return addr, &OutOfRangeError{Class: class, Index: index, Size: r.Steppers}
		}
		addr.Slot = index
	}
	return addr, nil
}
