// Package device defines the external device collaborators and the
// Controller dispatching decoded commands to them.
package device

// Raw platform pin mode codes.
const (
	PinInput  = 0
	PinOutput = 1
)

// PinIO provides the raw pin I/O primitives of the platform.
type PinIO interface {
	PinMode(pin, mode int)
	DigitalWrite(pin, value int)
	AnalogWrite(pin, value int)
	AnalogRead(pin int) int
}

// RunMode is the running mode of a DC motor.
type RunMode int

// Motor run modes. Values match the conventional motor shield codes.
const (
	RunForward RunMode = iota + 1
	RunBackward
	RunBrake
	RunRelease
)

// Direction of stepper movement.
type Direction int

// Stepper directions.
const (
	DirForward Direction = iota
	DirBackward
)

// StepStyle is the stepping style of a stepper motor.
type StepStyle int

// Stepping styles. Values match the conventional motor shield codes.
const (
	StyleSingle StepStyle = iota + 1
	StyleDouble
	StyleInterleave
	StyleMicrostep
)

// Motor is a handle to one DC motor of the driver board.
type Motor interface {
	SetSpeed(speed uint)
	Run(mode RunMode)
}

// Stepper is a handle to one stepper motor of the driver board.
type Stepper interface {
	SetSpeed(rpm uint)
	Step(count uint, dir Direction, style StepStyle)
}
