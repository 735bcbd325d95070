package sh

import (
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/pinio.go/pkg/host"
	"github.com/robotalks/pinio.go/pkg/wire"
)

var namedModes = map[string]wire.Mode{
	"in":       wire.ModeInput,
	"out":      wire.ModeOutput,
	"brake":    wire.ModeBrake,
	"release":  wire.ModeRelease,
	"forward":  wire.ModeForward,
	"backward": wire.ModeBackward,
}

func argPort(c *ishell.Context, n int) (host.Port, bool) {
	if len(c.Args) <= n {
		c.Err(fmt.Errorf("PORT required"))
		return host.Port{}, false
	}
	port, err := host.ParsePort(c.Args[n])
	if err != nil {
		c.Err(err)
		return port, false
	}
	return port, true
}

func argInt(c *ishell.Context, n int, name string) (int, bool) {
	if len(c.Args) <= n {
		c.Err(fmt.Errorf("%s required", name))
		return 0, false
	}
	val, err := strconv.Atoi(c.Args[n])
	if err != nil {
		c.Err(fmt.Errorf("invalid %s: %v", name, err))
		return 0, false
	}
	return val, true
}

var (
	// GetCmd reads the value of a port.
	GetCmd = ishell.Cmd{
		Name:    "get",
		Aliases: []string{"?"},
		Help:    "PORT",
		Func: MustBeConnected(func(c *ishell.Context) {
			port, ok := argPort(c, 0)
			if !ok {
				return
			}
			val, err := ShellFrom(c).Client.Read(port)
			if err != nil {
				c.Err(err)
				return
			}
			c.Println(val)
		}),
	}

	// SetCmd sets the value of a port.
	SetCmd = ishell.Cmd{
		Name: "set",
		Help: "PORT VALUE(number, 'on' or 'off')",
		Func: MustBeConnected(func(c *ishell.Context) {
			port, ok := argPort(c, 0)
			if !ok {
				return
			}
			client := ShellFrom(c).Client
			if len(c.Args) > 1 {
				switch c.Args[1] {
				case "on":
					if err := client.SetLevel(port, true); err != nil {
						c.Err(err)
					}
					return
				case "off":
					if err := client.SetLevel(port, false); err != nil {
						c.Err(err)
					}
					return
				}
			}
			val, ok := argInt(c, 1, "VALUE")
			if !ok {
				return
			}
			if err := client.SetValue(port, val); err != nil {
				c.Err(err)
			}
		}),
	}

	// ModeCmd sets the operating mode of a port.
	ModeCmd = ishell.Cmd{
		Name: "mode",
		Help: "PORT MODE(in|out|brake|release|forward|backward or a number)",
		Func: MustBeConnected(func(c *ishell.Context) {
			port, ok := argPort(c, 0)
			if !ok {
				return
			}
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("MODE required"))
				return
			}
			mode, ok := namedModes[c.Args[1]]
			if !ok {
				code, err := strconv.Atoi(c.Args[1])
				if err != nil {
					c.Err(fmt.Errorf("unknown mode %q", c.Args[1]))
					return
				}
				mode = wire.RawMode(code)
			}
			if err := ShellFrom(c).Client.SetMode(port, mode); err != nil {
				c.Err(err)
			}
		}),
	}

	// StepCmd moves a stepper.
	StepCmd = ishell.Cmd{
		Name: "step",
		Help: "SLOT(S0|S1) COUNT(negative for backward)",
		Func: MustBeConnected(func(c *ishell.Context) {
			port, ok := argPort(c, 0)
			if !ok {
				return
			}
			count, ok := argInt(c, 1, "COUNT")
			if !ok {
				return
			}
			if err := ShellFrom(c).Client.Step(port, count); err != nil {
				c.Err(err)
			}
		}),
	}
)

func init() {
	AddCmds(
		&GetCmd,
		&SetCmd,
		&ModeCmd,
		&StepCmd,
	)
}
