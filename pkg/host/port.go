// Package host provides the host side of the pin command protocol.
package host

import (
	"fmt"

	"github.com/robotalks/pinio.go/pkg/wire"
)

// Addressing limits of the reference firmware.
const (
	DigitalPinMax  = 19
	AnalogPortMax  = 5
	MotorSlotMax   = 3
	StepperSlotMax = 1
)

// Port addresses one device on the firmware.
type Port struct {
	Class wire.Class
	Index int
}

// Digital addresses a digital pin.
func Digital(pin int) Port {
	return Port{Class: wire.ClassDigital, Index: pin}
}

// Analog addresses an analog port (A0-A5).
func Analog(index int) Port {
	return Port{Class: wire.ClassAnalog, Index: index}
}

// MotorSlot addresses a DC motor slot (M0-M3).
func MotorSlot(slot int) Port {
	return Port{Class: wire.ClassMotor, Index: slot}
}

// StepperSlot addresses a stepper slot (S0-S1).
func StepperSlot(slot int) Port {
	return Port{Class: wire.ClassStepper, Index: slot}
}

// ParsePort parses a port spec: a pin number, or a class letter
// followed by one digit ("A0", "M1", "S0", "13").
func ParsePort(s string) (Port, error) {
	var port Port
	if len(s) == 2 {
		switch s[0] {
		case 'A':
			port.Class = wire.ClassAnalog
		case 'M':
			port.Class = wire.ClassMotor
		case 'S':
			port.Class = wire.ClassStepper
		}
	}
	if port.Class != wire.ClassDigital {
		if s[1] < '0' || s[1] > '9' {
			return port, &BadPortError{Spec: s}
		}
		port.Index = int(s[1] - '0')
	} else {
		if _, err := fmt.Sscanf(s, "%d", &port.Index); err != nil {
			return port, &BadPortError{Spec: s}
		}
	}
	if !port.Valid() {
		return port, &BadPortError{Spec: s}
	}
	return port, nil
}

// Valid indicates the port is addressable on the reference firmware.
func (p Port) Valid() bool {
	switch p.Class {
	case wire.ClassDigital:
		return p.Index >= 0 && p.Index <= DigitalPinMax
	case wire.ClassAnalog:
		return p.Index >= 0 && p.Index <= AnalogPortMax
	case wire.ClassMotor:
		return p.Index >= 0 && p.Index <= MotorSlotMax
	case wire.ClassStepper:
		return p.Index >= 0 && p.Index <= StepperSlotMax
	}
	return false
}

// String formats the port as sent on the wire. Digital pins are always
// two characters: pins below 10 get a leading '0', pins 10-19 start
// with '1' which the firmware folds into the index.
func (p Port) String() string {
	if p.Class == wire.ClassDigital {
		return fmt.Sprintf("%02d", p.Index)
	}
	return fmt.Sprintf("%s%d", p.Class, p.Index)
}

// BadPortError indicates an unknown port spec.
type BadPortError struct {
	Spec string
}

// Error implements error.
func (e *BadPortError) Error() string {
	return fmt.Sprintf("unknown port %q", e.Spec)
}
