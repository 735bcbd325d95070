package device_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/pinio.go/pkg/device"
	"github.com/robotalks/pinio.go/pkg/sim"
	"github.com/robotalks/pinio.go/pkg/wire"
)

type testRig struct {
	pins     *sim.Pins
	motors   []*sim.Motor
	steppers []*sim.Stepper
	ctl      *device.Controller
}

func newTestRig(t *testing.T, conf device.Config) *testRig {
	rig := &testRig{
		pins:     sim.NewPins(),
		motors:   []*sim.Motor{sim.NewMotor(), sim.NewMotor()},
		steppers: []*sim.Stepper{sim.NewStepper(), sim.NewStepper()},
	}
	conf.Pins = rig.pins
	for _, m := range rig.motors {
		conf.Motors = append(conf.Motors, m)
	}
	for _, s := range rig.steppers {
		conf.Steppers = append(conf.Steppers, s)
	}
	ctl, err := device.NewController(conf)
	require.NoError(t, err)
	rig.ctl = ctl
	return rig
}

func (r *testRig) dispatch(t *testing.T, line string) (int, bool) {
	cmd, err := wire.Decode([]byte(line))
	require.NoError(t, err)
	result, hasResult, err := r.ctl.Dispatch(cmd)
	require.NoError(t, err)
	return result, hasResult
}

func TestControllerDigital(t *testing.T) {
	rig := newTestRig(t, device.Config{})

	rig.dispatch(t, "13-O\r")
	mode, ok := rig.pins.ModeOf(13)
	require.True(t, ok)
	require.Equal(t, device.PinOutput, mode)

	rig.dispatch(t, "13:H\r")
	require.Equal(t, wire.High, rig.pins.ValueOf(13))

	rig.dispatch(t, "13:L\r")
	require.Equal(t, wire.Low, rig.pins.ValueOf(13))

	rig.dispatch(t, "07-I\r")
	mode, ok = rig.pins.ModeOf(7)
	require.True(t, ok)
	require.Equal(t, device.PinInput, mode)

	// raw platform mode code passes through unchanged.
	rig.dispatch(t, "05-2\r")
	mode, _ = rig.pins.ModeOf(5)
	require.Equal(t, 2, mode)
}

func TestControllerAnalog(t *testing.T) {
	rig := newTestRig(t, device.Config{AnalogPins: []int{7}})

	rig.dispatch(t, "A0:ff\r")
	require.Equal(t, 255, rig.pins.ValueOf(7))

	rig.pins.Set(7, 42)
	result, hasResult := rig.dispatch(t, "A0?\r")
	require.True(t, hasResult)
	require.Equal(t, 42, result)
}

func TestControllerRead(t *testing.T) {
	rig := newTestRig(t, device.Config{})
	rig.pins.Set(3, 128)
	result, hasResult := rig.dispatch(t, "03?\r")
	require.True(t, hasResult)
	require.Equal(t, 128, result)
}

func TestControllerMotor(t *testing.T) {
	rig := newTestRig(t, device.Config{})

	rig.dispatch(t, "M1:H\r")
	require.Equal(t, uint(wire.High), rig.motors[1].Speed())

	rig.dispatch(t, "M1:L\r")
	require.Equal(t, uint(wire.Low), rig.motors[1].Speed())

	rig.dispatch(t, "M0:c8\r")
	require.Equal(t, uint(200), rig.motors[0].Speed())

	rig.dispatch(t, "M0-F\r")
	require.Equal(t, device.RunForward, rig.motors[0].Mode())
	rig.dispatch(t, "M0-S\r")
	require.Equal(t, device.RunBrake, rig.motors[0].Mode())
	rig.dispatch(t, "M0-R\r")
	require.Equal(t, device.RunRelease, rig.motors[0].Mode())
	rig.dispatch(t, "M0-B\r")
	require.Equal(t, device.RunBackward, rig.motors[0].Mode())
}

func TestControllerMotorSign(t *testing.T) {
	// by default the sign only contributes the magnitude.
	rig := newTestRig(t, device.Config{})
	rig.dispatch(t, "M0-F\r")
	rig.dispatch(t, "M0:-64\r")
	require.Equal(t, uint(100), rig.motors[0].Speed())
	require.Equal(t, device.RunForward, rig.motors[0].Mode())

	// with MotorSignDirection the sign selects the running direction.
	rig = newTestRig(t, device.Config{MotorSignDirection: true})
	rig.dispatch(t, "M0:-64\r")
	require.Equal(t, uint(100), rig.motors[0].Speed())
	require.Equal(t, device.RunBackward, rig.motors[0].Mode())
	rig.dispatch(t, "M0:64\r")
	require.Equal(t, device.RunForward, rig.motors[0].Mode())
}

func TestControllerStepper(t *testing.T) {
	rig := newTestRig(t, device.Config{})

	// default stepping style is single.
	rig.dispatch(t, "S0:c8\r")
	require.Equal(t, 200, rig.steppers[0].Position())
	require.Equal(t, device.StyleSingle, rig.steppers[0].LastStyle())

	rig.dispatch(t, "S0:-c8\r")
	require.Equal(t, 0, rig.steppers[0].Position())

	// numeric mode selects the style for following steps on the slot.
	rig.dispatch(t, "S0-3\r")
	require.Equal(t, device.StyleInterleave, rig.ctl.StepStyleOf(0))
	rig.dispatch(t, "S0:10\r")
	require.Equal(t, device.StyleInterleave, rig.steppers[0].LastStyle())
	require.Equal(t, 16, rig.steppers[0].Position())

	// style is per slot.
	require.Equal(t, device.StyleSingle, rig.ctl.StepStyleOf(1))
}

func TestControllerDispatchErrors(t *testing.T) {
	rig := newTestRig(t, device.Config{})
	testCases := []struct {
		name   string
		line   string
		expect error
	}{
		{"motor out of range", "M2:H\r", &device.OutOfRangeError{Class: wire.ClassMotor, Index: 2, Size: 2}},
		{"stepper out of range", "S2:H\r", &device.OutOfRangeError{Class: wire.ClassStepper, Index: 2, Size: 2}},
		{"analog out of range", "A6?\r", &device.OutOfRangeError{Class: wire.ClassAnalog, Index: 6, Size: 6}},
		{"read motor", "M0?\r", device.ErrReadUnsupported},
		{"read stepper", "S0?\r", device.ErrReadUnsupported},
		{"motor pin mode", "M0-I\r", &device.BadModeError{Class: wire.ClassMotor, Mode: wire.ModeInput}},
		{"pin motor mode", "03-F\r", &device.BadModeError{Class: wire.ClassDigital, Mode: wire.ModeForward}},
		{"stepper named mode", "S0-F\r", &device.BadModeError{Class: wire.ClassStepper, Mode: wire.ModeForward}},
		{"stepper bad style", "S0-9\r", &device.BadModeError{Class: wire.ClassStepper, Mode: wire.RawMode(9)}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := wire.Decode([]byte(tc.line))
			require.NoError(t, err)
			_, _, err = rig.ctl.Dispatch(cmd)
			require.Equal(t, tc.expect, err)
		})
	}
}

func TestControllerTracer(t *testing.T) {
	rig := newTestRig(t, device.Config{})
	var traced []string
	rig.ctl.Tracer = device.TraceFunc(func(cmd wire.Command) {
		traced = append(traced, cmd.String())
	})
	rig.dispatch(t, "13:H\r")
	rig.dispatch(t, "M0-F\r")
	rig.dispatch(t, "03?\r")
	require.Equal(t, []string{"D13:1", "M0-F"}, traced)
}

func TestNewControllerMissingHandles(t *testing.T) {
	_, err := device.NewController(device.Config{})
	require.Error(t, err)

	_, err = device.NewController(device.Config{
		Pins:   sim.NewPins(),
		Motors: []device.Motor{sim.NewMotor(), nil},
	})
	require.Error(t, err)

	_, err = device.NewController(device.Config{
		Pins:     sim.NewPins(),
		Steppers: []device.Stepper{nil},
	})
	require.Error(t, err)
}
