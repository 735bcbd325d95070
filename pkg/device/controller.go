package device

import (
	"fmt"
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/pinio.go/pkg/wire"
)

// Tracer receives a diagnostic trace for every executed set command.
type Tracer interface {
	Trace(cmd wire.Command)
}

// TraceFunc is the func form of Tracer.
type TraceFunc func(cmd wire.Command)

// Trace implements Tracer.
func (f TraceFunc) Trace(cmd wire.Command) {
	f(cmd)
}

// Config defines the device tables owned by a Controller.
type Config struct {
	Pins     PinIO
	Motors   []Motor
	Steppers []Stepper

	// AnalogPins overrides the analog index table.
	// DefaultAnalogPins when empty.
	AnalogPins []int

	// MotorSignDirection treats the sign of a motor set-value as the
	// running direction instead of forwarding the magnitude only.
	MotorSignDirection bool
}

// Controller owns the device handle tables and the per-slot stepper
// mode state, and dispatches decoded commands to the devices.
type Controller struct {
	Tracer Tracer

	conf     Config
	resolver Resolver
	styles   []StepStyle

	lock sync.Mutex
}

// NewController creates a Controller from config. Missing device
// handles are a construction failure, not a runtime error.
func NewController(conf Config) (*Controller, error) {
	if conf.Pins == nil {
		return nil, fmt.Errorf("pin I/O is required")
	}
	for i, m := range conf.Motors {
		if m == nil {
			return nil, fmt.Errorf("motor M%d handle is missing", i)
		}
	}
	for i, s := range conf.Steppers {
		if s == nil {
			return nil, fmt.Errorf("stepper S%d handle is missing", i)
		}
	}
	if len(conf.AnalogPins) == 0 {
		conf.AnalogPins = DefaultAnalogPins
	}
	c := &Controller{
		conf: conf,
		resolver: Resolver{
			AnalogPins: conf.AnalogPins,
			Motors:     len(conf.Motors),
			Steppers:   len(conf.Steppers),
		},
		styles: make([]StepStyle, len(conf.Steppers)),
	}
	for i := range c.styles {
		c.styles[i] = StyleSingle
	}
	return c, nil
}

// Resolver exposes the address resolver of the controller.
func (c *Controller) Resolver() *Resolver {
	return &c.resolver
}

// Dispatch executes one decoded command. The result value is only
// meaningful when hasResult is true (read operations). Dispatch
// serializes concurrent callers so at most one command is in flight.
func (c *Controller) Dispatch(cmd wire.Command) (result int, hasResult bool, err error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	addr, err := c.resolver.Resolve(cmd.Class, cmd.Index)
	if err != nil {
		return 0, false, err
	}
	switch cmd.Op {
	case wire.OpSetValue:
		err = c.setValue(addr, cmd.Value)
	case wire.OpSetMode:
		err = c.setMode(addr, cmd.Mode)
	case wire.OpRead:
		return c.read(addr)
	}
	if err == nil {
		c.trace(cmd)
	}
	return 0, false, err
}

func (c *Controller) setValue(addr Address, value int) error {
	switch addr.Class {
	case wire.ClassDigital:
		c.conf.Pins.DigitalWrite(addr.Pin, value)
	case wire.ClassAnalog:
		c.conf.Pins.AnalogWrite(addr.Pin, value)
	case wire.ClassMotor:
		motor := c.conf.Motors[addr.Slot]
		speed := value
		if speed < 0 {
			speed = -speed
		}
		if c.conf.MotorSignDirection {
			if value < 0 {
				motor.Run(RunBackward)
			} else {
				motor.Run(RunForward)
			}
		}
		motor.SetSpeed(uint(speed))
	case wire.ClassStepper:
		count, dir := value, DirForward
		if count < 0 {
			count, dir = -count, DirBackward
		}
		c.conf.Steppers[addr.Slot].Step(uint(count), dir, c.styles[addr.Slot])
	}
	return nil
}

func (c *Controller) setMode(addr Address, mode wire.Mode) error {
	switch addr.Class {
	case wire.ClassDigital, wire.ClassAnalog:
		switch {
		case mode == wire.ModeInput:
			c.conf.Pins.PinMode(addr.Pin, PinInput)
		case mode == wire.ModeOutput:
			c.conf.Pins.PinMode(addr.Pin, PinOutput)
		case mode.IsRaw():
			c.conf.Pins.PinMode(addr.Pin, mode.RawCode())
		default:
			return &BadModeError{Class: addr.Class, Mode: mode}
		}
	case wire.ClassMotor:
		var run RunMode
		switch mode {
		case wire.ModeForward:
			run = RunForward
		case wire.ModeBackward:
			run = RunBackward
		case wire.ModeBrake:
			run = RunBrake
		case wire.ModeRelease:
			run = RunRelease
		default:
			return &BadModeError{Class: addr.Class, Mode: mode}
		}
		c.conf.Motors[addr.Slot].Run(run)
	case wire.ClassStepper:
		// numeric mode selects the stepping style for the slot,
		// applied by every following step command.
		if !mode.IsRaw() {
			return &BadModeError{Class: addr.Class, Mode: mode}
		}
		style := StepStyle(mode.RawCode())
		if style < StyleSingle || style > StyleMicrostep {
			return &BadModeError{Class: addr.Class, Mode: mode}
		}
		c.styles[addr.Slot] = style
	}
	return nil
}

func (c *Controller) read(addr Address) (int, bool, error) {
	switch addr.Class {
	case wire.ClassDigital, wire.ClassAnalog:
		return c.conf.Pins.AnalogRead(addr.Pin), true, nil
	}
	return 0, false, ErrReadUnsupported
}

func (c *Controller) trace(cmd wire.Command) {
	if glog.V(2) {
		glog.Infof("EXEC %s", cmd)
	}
	if t := c.Tracer; t != nil {
		t.Trace(cmd)
	}
}

// StepStyleOf reports the current stepping style of a stepper slot.
func (c *Controller) StepStyleOf(slot int) StepStyle {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.styles[slot]
}
