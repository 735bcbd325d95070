package daemon

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	"github.com/robotalks/pinio.go/pkg/device"
	fx "github.com/robotalks/pinio.go/pkg/framework"
	"github.com/robotalks/pinio.go/pkg/host/serialport"
	"github.com/robotalks/pinio.go/pkg/interp"
	"github.com/robotalks/pinio.go/pkg/sim"
	"github.com/robotalks/pinio.go/pkg/telemetry"
)

// Daemon serves the command interpreter on the configured transports
// over one shared Controller backed by simulated devices.
type Daemon struct {
	Config     *Config
	Controller *device.Controller

	announcer *telemetry.Announcer
	runners   []fx.Runnable
}

// NewDaemon builds the device tables and transports from config.
func (c *Config) NewDaemon() (*Daemon, error) {
	conf := device.Config{
		Pins:               sim.NewPins(),
		MotorSignDirection: c.MotorSignDirection,
	}
	for i := 0; i < c.Motors; i++ {
		conf.Motors = append(conf.Motors, sim.NewMotor())
	}
	for i := 0; i < c.Steppers; i++ {
		stepper := sim.NewStepper()
		stepper.SetSpeed(uint(c.StepperRPM))
		conf.Steppers = append(conf.Steppers, stepper)
	}
	ctl, err := device.NewController(conf)
	if err != nil {
		return nil, err
	}
	d := &Daemon{Config: c, Controller: ctl}
	if err = d.setupTransports(); err != nil {
		return nil, err
	}
	if c.MQTTBrokerURL != "" {
		if err = d.setupTelemetry(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// MustNewDaemon creates the Daemon and fails on error.
func (c *Config) MustNewDaemon() *Daemon {
	d, err := c.NewDaemon()
	if err != nil {
		glog.Exitf("setup: %v", err)
	}
	return d
}

func (d *Daemon) setupTransports() error {
	c := d.Config
	if c.SerialDevice != "" {
		conf := &serialport.Config{Device: c.SerialDevice, Baud: c.SerialBaud}
		port, err := conf.Open()
		if err != nil {
			return fmt.Errorf("open %s: %v", c.SerialDevice, err)
		}
		d.runners = append(d.runners, fx.NamedRun("serial", d.sessionRunner(port, port)))
	}
	if c.ListenAddr != "" {
		listener, err := net.Listen("tcp", c.ListenAddr)
		if err != nil {
			return err
		}
		d.runners = append(d.runners, fx.NamedRun("tcp", &listenRunner{daemon: d, listener: listener}))
	}
	if c.ListenWSAddr != "" {
		listener, err := net.Listen("tcp", c.ListenWSAddr)
		if err != nil {
			return err
		}
		d.runners = append(d.runners, fx.NamedRun("ws", &wsRunner{daemon: d, listener: listener}))
	}
	if c.Stdio || len(d.runners) == 0 {
		rw := &stdio{Reader: os.Stdin, Writer: os.Stdout}
		d.runners = append(d.runners, fx.NamedRun("stdio", interp.New(rw, d.Controller)))
	}
	return nil
}

func (d *Daemon) setupTelemetry() error {
	c := d.Config
	announcer, err := telemetry.NewAnnouncer(c.MQTTBrokerURL, c.ID)
	if err != nil {
		return fmt.Errorf("mqtt: %v", err)
	}
	err = announcer.Announce(telemetry.Meta{
		Description: "pin I/O interpreter",
		Motors:      c.Motors,
		Steppers:    c.Steppers,
	})
	if err != nil {
		return fmt.Errorf("announce: %v", err)
	}
	d.Controller.Tracer = announcer
	d.announcer = announcer
	return nil
}

// RunOrFail runs all transports until a signal stops them.
func (d *Daemon) RunOrFail() {
	runner := fx.NewRunner().HandleSignals()
	runner.Go(d.runners...)
	err := runner.Wait()
	if d.announcer != nil {
		d.announcer.Close()
	}
	if err != nil {
		glog.Exit(err)
	}
}

// sessionRunner runs one session and closes the stream when done.
func (d *Daemon) sessionRunner(rw io.ReadWriter, closer io.Closer) fx.Runnable {
	return fx.RunFunc(func(ctx context.Context) error {
		session := interp.New(rw, d.Controller)
		return fx.RunWithContextCloser(ctx, closer, func() error {
			return session.Run(ctx)
		})
	})
}

type stdio struct {
	io.Reader
	io.Writer
}

// listenRunner serves one session per TCP connection.
type listenRunner struct {
	daemon   *Daemon
	listener net.Listener
}

func (r *listenRunner) Run(ctx context.Context) error {
	glog.Infof("listening on %s", r.listener.Addr())
	return fx.RunWithContextCloser(ctx, r.listener, func() error {
		for {
			conn, err := r.listener.Accept()
			if err != nil {
				return err
			}
			go func(conn net.Conn) {
				glog.V(1).Infof("session from %s", conn.RemoteAddr())
				if err := r.daemon.sessionRunner(conn, conn).Run(ctx); err != nil && err != context.Canceled {
					glog.Warningf("session %s: %v", conn.RemoteAddr(), err)
				}
			}(conn)
		}
	})
}

// wsRunner serves one session per websocket connection. The protocol
// bytes are carried in websocket frames unchanged.
type wsRunner struct {
	daemon   *Daemon
	listener net.Listener
}

func (r *wsRunner) Run(ctx context.Context) error {
	glog.Infof("websocket on %s", r.listener.Addr())
	server := &http.Server{
		Handler: websocket.Handler(func(conn *websocket.Conn) {
			if err := interp.New(conn, r.daemon.Controller).Run(ctx); err != nil && err != context.Canceled {
				glog.Warningf("ws session: %v", err)
			}
		}),
	}
	return fx.RunWithContextCloser(ctx, r.listener, func() error {
		return server.Serve(r.listener)
	})
}
