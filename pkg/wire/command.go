package wire

import "fmt"

// Class identifies the kind of addressable I/O a command targets.
type Class int

// Device classes.
const (
	ClassDigital Class = iota
	ClassAnalog
	ClassMotor
	ClassStepper
)

// String returns the class selector used on the wire.
func (c Class) String() string {
	switch c {
	case ClassAnalog:
		return "A"
	case ClassMotor:
		return "M"
	case ClassStepper:
		return "S"
	}
	return "D"
}

// Op identifies the operation of a command.
type Op int

// Operations.
const (
	OpSetValue Op = iota
	OpSetMode
	OpRead
)

// String returns the operation selector used on the wire.
func (o Op) String() string {
	switch o {
	case OpSetMode:
		return "-"
	case OpRead:
		return "?"
	}
	return ":"
}

// Canonical logic levels for set-value operands 'H' and 'L'.
const (
	Low  = 0
	High = 1
)

// Mode is the operand of a set-mode operation. It is either one of the
// named modes below or a raw platform mode code wrapped by RawMode.
type Mode int

// Named modes.
const (
	ModeInput Mode = iota + 1
	ModeOutput
	ModeBrake
	ModeRelease
	ModeForward
	ModeBackward
)

const rawModeBase Mode = 0x100

// RawMode wraps a raw platform mode code.
func RawMode(code int) Mode {
	return rawModeBase + Mode(code)
}

// IsRaw indicates the mode is a raw platform mode code.
func (m Mode) IsRaw() bool {
	return m >= rawModeBase
}

// RawCode unwraps the raw platform mode code.
func (m Mode) RawCode() int {
	return int(m - rawModeBase)
}

// String returns the mode operand used on the wire.
func (m Mode) String() string {
	if m.IsRaw() {
		return fmt.Sprintf("%d", m.RawCode())
	}
	switch m {
	case ModeInput:
		return "I"
	case ModeOutput:
		return "O"
	case ModeBrake:
		return "S"
	case ModeRelease:
		return "R"
	case ModeForward:
		return "F"
	case ModeBackward:
		return "B"
	}
	return "?"
}

// Command is one decoded command line. It is constructed by Decode from
// a completed frame and consumed immediately by the dispatcher.
type Command struct {
	Class Class
	Index int
	Op    Op
	// Value is the operand of OpSetValue.
	Value int
	// Mode is the operand of OpSetMode.
	Mode Mode
}

// String formats the command for diagnostics.
func (c Command) String() string {
	switch c.Op {
	case OpSetValue:
		return fmt.Sprintf("%s%d:%d", c.Class, c.Index, c.Value)
	case OpSetMode:
		return fmt.Sprintf("%s%d-%s", c.Class, c.Index, c.Mode)
	}
	return fmt.Sprintf("%s%d?", c.Class, c.Index)
}
