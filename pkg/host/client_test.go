package host_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/pinio.go/pkg/device"
	"github.com/robotalks/pinio.go/pkg/host"
	"github.com/robotalks/pinio.go/pkg/interp"
	"github.com/robotalks/pinio.go/pkg/sim"
	"github.com/robotalks/pinio.go/pkg/wire"
)

type clientRig struct {
	pins    *sim.Pins
	motor   *sim.Motor
	stepper *sim.Stepper
	client  *host.Client
	conn    net.Conn
	cancel  func()
	doneCh  chan error
}

func newClientRig(t *testing.T) *clientRig {
	rig := &clientRig{
		pins:    sim.NewPins(),
		motor:   sim.NewMotor(),
		stepper: sim.NewStepper(),
		doneCh:  make(chan error, 1),
	}
	ctl, err := device.NewController(device.Config{
		Pins:     rig.pins,
		Motors:   []device.Motor{rig.motor},
		Steppers: []device.Stepper{rig.stepper},
	})
	require.NoError(t, err)

	hostEnd, fwEnd := net.Pipe()
	session := interp.New(fwEnd, ctl)
	ctx, cancel := context.WithCancel(context.Background())
	rig.conn = hostEnd
	rig.cancel = cancel
	go func() {
		rig.doneCh <- session.Run(ctx)
	}()
	rig.client = host.NewClient(hostEnd)
	return rig
}

func (r *clientRig) close() {
	r.cancel()
	// unblock any pending pipe I/O in the session.
	r.conn.Close()
	<-r.doneCh
}

func TestClientSession(t *testing.T) {
	rig := newClientRig(t)
	defer rig.close()

	banner, err := rig.client.WaitReady()
	require.NoError(t, err)
	require.Equal(t, interp.Banner, banner)

	// reads are synchronous, so each write sequence is followed by one
	// before the simulated device state is asserted.
	require.NoError(t, rig.client.SetMode(host.Digital(13), wire.ModeOutput))
	require.NoError(t, rig.client.SetLevel(host.Digital(13), true))
	v, err := rig.client.Read(host.Digital(13))
	require.NoError(t, err)
	require.Equal(t, wire.High, v)
	require.NoError(t, rig.client.SetLevel(host.Digital(13), false))
	v, err = rig.client.Read(host.Digital(13))
	require.NoError(t, err)
	require.Equal(t, wire.Low, v)

	require.NoError(t, rig.client.SetValue(host.Analog(2), 200))
	v, err = rig.client.Read(host.Analog(2))
	require.NoError(t, err)
	require.Equal(t, 200, v)
	require.Equal(t, 200, rig.pins.ValueOf(16))

	rig.pins.Set(14, 99)
	v, err = rig.client.Read(host.Analog(0))
	require.NoError(t, err)
	require.Equal(t, 99, v)

	require.NoError(t, rig.client.SetMode(host.MotorSlot(0), wire.ModeForward))
	require.NoError(t, rig.client.SetValue(host.MotorSlot(0), 255))
	_, err = rig.client.Read(host.Digital(2))
	require.NoError(t, err)
	require.Equal(t, device.RunForward, rig.motor.Mode())
	require.Equal(t, uint(255), rig.motor.Speed())

	require.NoError(t, rig.client.SetMode(host.StepperSlot(0), wire.RawMode(int(device.StyleDouble))))
	require.NoError(t, rig.client.Step(host.StepperSlot(0), -200))
	_, err = rig.client.Read(host.Digital(2))
	require.NoError(t, err)
	require.Equal(t, -200, rig.stepper.Position())
	require.Equal(t, device.StyleDouble, rig.stepper.LastStyle())
}

func TestClientRemoteError(t *testing.T) {
	rig := newClientRig(t)
	defer rig.close()

	_, err := rig.client.WaitReady()
	require.NoError(t, err)

	_, err = rig.client.Read(host.MotorSlot(0))
	require.Error(t, err)
	remote, ok := err.(*host.RemoteError)
	require.True(t, ok)
	require.Contains(t, remote.Message, "read not supported")
}

func TestClientLocalValidation(t *testing.T) {
	rig := newClientRig(t)
	defer rig.close()

	// rejected locally, nothing is sent.
	require.Error(t, rig.client.SetValue(host.Digital(20), 1))
	require.Error(t, rig.client.SetValue(host.Digital(3), 256))
	require.Error(t, rig.client.SetValue(host.Digital(3), -1))
	require.Error(t, rig.client.Step(host.Digital(3), 10))
	_, err := rig.client.Read(host.Analog(6))
	require.Error(t, err)
}
