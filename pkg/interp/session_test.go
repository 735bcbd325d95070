package interp

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/pinio.go/pkg/device"
	"github.com/robotalks/pinio.go/pkg/sim"
	"github.com/robotalks/pinio.go/pkg/wire"
)

type testStream struct {
	in  *strings.Reader
	out bytes.Buffer
}

func (s *testStream) Read(p []byte) (int, error) {
	// one byte at a time, like a serial port.
	if len(p) > 1 {
		p = p[:1]
	}
	return s.in.Read(p)
}

func (s *testStream) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

type sessionRig struct {
	stream   *testStream
	pins     *sim.Pins
	steppers []*sim.Stepper
	session  *Session
}

func newSessionRig(t *testing.T, input string) *sessionRig {
	rig := &sessionRig{
		stream:   &testStream{in: strings.NewReader(input)},
		pins:     sim.NewPins(),
		steppers: []*sim.Stepper{sim.NewStepper(), sim.NewStepper()},
	}
	conf := device.Config{
		Pins:     rig.pins,
		Motors:   []device.Motor{sim.NewMotor()},
		Steppers: []device.Stepper{rig.steppers[0], rig.steppers[1]},
	}
	ctl, err := device.NewController(conf)
	require.NoError(t, err)
	rig.session = New(rig.stream, ctl)
	return rig
}

// run processes the whole input and returns the output lines after the
// banner.
func (r *sessionRig) run(t *testing.T) []string {
	err := r.session.Run(context.Background())
	require.NoError(t, err)
	out := r.stream.out.String()
	require.True(t, strings.HasPrefix(out, Banner+"\n"))
	out = out[len(Banner)+1:]
	if out == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(out, "\n"), "\n")
}

func TestSessionRead(t *testing.T) {
	rig := newSessionRig(t, "A0?\r")
	rig.pins.Set(14, 42)
	require.Equal(t, []string{"42"}, rig.run(t))
}

func TestSessionCommands(t *testing.T) {
	rig := newSessionRig(t, "13-O\r13:H\rS0-2\rS0:-c8\r13?\r")
	lines := rig.run(t)
	require.Equal(t, []string{"1"}, lines)
	mode, ok := rig.pins.ModeOf(13)
	require.True(t, ok)
	require.Equal(t, device.PinOutput, mode)
	require.Equal(t, -200, rig.steppers[0].Position())
	require.Equal(t, device.StyleDouble, rig.steppers[0].LastStyle())
}

func TestSessionErrorLines(t *testing.T) {
	rig := newSessionRig(t, "A0!\rM0?\rM9:H\r03?\r")
	lines := rig.run(t)
	require.Len(t, lines, 4)
	require.Contains(t, lines[0], "ERR ")
	require.Contains(t, lines[0], "unrecognized operation")
	require.Contains(t, lines[1], "ERR ")
	require.Contains(t, lines[1], "read not supported")
	require.Contains(t, lines[2], "ERR ")
	require.Contains(t, lines[2], "out of range")
	// the loop keeps serving commands after errors.
	require.Equal(t, "0", lines[3])
}

func TestSessionOverflowRecovery(t *testing.T) {
	junk := strings.Repeat("x", wire.LineCap+16)
	rig := newSessionRig(t, junk+"\r13:H\r")
	lines := rig.run(t)
	// the oversized line is discarded without a reply; the tail of the
	// junk up to its terminator still decodes (and fails) as a short
	// junk line, then the next command executes normally.
	for _, line := range lines {
		require.True(t, strings.HasPrefix(line, "ERR "))
	}
	require.Equal(t, wire.High, rig.pins.ValueOf(13))
}

func TestSessionNoBanner(t *testing.T) {
	rig := newSessionRig(t, "")
	rig.session.NoBanner = true
	err := rig.session.Run(context.Background())
	require.NoError(t, err)
	require.Empty(t, rig.stream.out.String())
}

func TestSessionCancel(t *testing.T) {
	blockCh := make(chan byte)
	rw := &blockingStream{ch: blockCh}
	ctl, err := device.NewController(device.Config{Pins: sim.NewPins()})
	require.NoError(t, err)
	session := New(rw, ctl)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- session.Run(ctx)
	}()
	cancel()
	require.Equal(t, context.Canceled, <-errCh)
}

type blockingStream struct {
	ch  chan byte
	out bytes.Buffer
}

func (s *blockingStream) Read(p []byte) (int, error) {
	b, ok := <-s.ch
	if !ok {
		return 0, context.Canceled
	}
	p[0] = b
	return 1, nil
}

func (s *blockingStream) Write(p []byte) (int, error) {
	return s.out.Write(p)
}
