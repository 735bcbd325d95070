// Package sim provides simulated device backends for the interpreter.
package sim

import (
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/pinio.go/pkg/device"
)

// Pins simulates the raw pin I/O primitives, recording pin modes and
// values. AnalogRead returns the last value written to the pin.
type Pins struct {
	lock   sync.Mutex
	modes  map[int]int
	values map[int]int
}

// NewPins creates simulated pins.
func NewPins() *Pins {
	return &Pins{
		modes:  make(map[int]int),
		values: make(map[int]int),
	}
}

// PinMode implements PinIO.
func (p *Pins) PinMode(pin, mode int) {
	p.lock.Lock()
	p.modes[pin] = mode
	p.lock.Unlock()
	glog.V(3).Infof("sim: pinMode(%d, %d)", pin, mode)
}

// DigitalWrite implements PinIO.
func (p *Pins) DigitalWrite(pin, value int) {
	p.lock.Lock()
	p.values[pin] = value
	p.lock.Unlock()
	glog.V(3).Infof("sim: digitalWrite(%d, %d)", pin, value)
}

// AnalogWrite implements PinIO.
func (p *Pins) AnalogWrite(pin, value int) {
	p.lock.Lock()
	p.values[pin] = value
	p.lock.Unlock()
	glog.V(3).Infof("sim: analogWrite(%d, %d)", pin, value)
}

// AnalogRead implements PinIO.
func (p *Pins) AnalogRead(pin int) int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.values[pin]
}

// Set injects a pin value, e.g. to simulate a sensor.
func (p *Pins) Set(pin, value int) {
	p.lock.Lock()
	p.values[pin] = value
	p.lock.Unlock()
}

// ModeOf reports the last mode set on a pin.
func (p *Pins) ModeOf(pin int) (int, bool) {
	p.lock.Lock()
	defer p.lock.Unlock()
	mode, ok := p.modes[pin]
	return mode, ok
}

// ValueOf reports the last value written to a pin.
func (p *Pins) ValueOf(pin int) int {
	return p.AnalogRead(pin)
}

// Motor simulates one DC motor slot.
type Motor struct {
	lock  sync.Mutex
	speed uint
	mode  device.RunMode
}

// NewMotor creates a simulated motor.
func NewMotor() *Motor {
	return &Motor{mode: device.RunRelease}
}

// SetSpeed implements device.Motor.
func (m *Motor) SetSpeed(speed uint) {
	m.lock.Lock()
	m.speed = speed
	m.lock.Unlock()
}

// Run implements device.Motor.
func (m *Motor) Run(mode device.RunMode) {
	m.lock.Lock()
	m.mode = mode
	m.lock.Unlock()
}

// Speed reports the last speed set.
func (m *Motor) Speed() uint {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.speed
}

// Mode reports the last run mode set.
func (m *Motor) Mode() device.RunMode {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.mode
}

// Stepper simulates one stepper motor slot, accumulating a position.
type Stepper struct {
	lock      sync.Mutex
	rpm       uint
	position  int
	lastStyle device.StepStyle
}

// NewStepper creates a simulated stepper.
func NewStepper() *Stepper {
	return &Stepper{}
}

// SetSpeed implements device.Stepper.
func (s *Stepper) SetSpeed(rpm uint) {
	s.lock.Lock()
	s.rpm = rpm
	s.lock.Unlock()
}

// Step implements device.Stepper.
func (s *Stepper) Step(count uint, dir device.Direction, style device.StepStyle) {
	s.lock.Lock()
	if dir == device.DirBackward {
		s.position -= int(count)
	} else {
		s.position += int(count)
	}
	s.lastStyle = style
	s.lock.Unlock()
	glog.V(3).Infof("sim: step(%d, %d, %d)", count, dir, style)
}

// Position reports the accumulated step position.
func (s *Stepper) Position() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.position
}

// RPM reports the last speed set.
func (s *Stepper) RPM() uint {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.rpm
}

// LastStyle reports the style of the last step command.
func (s *Stepper) LastStyle() device.StepStyle {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.lastStyle
}
