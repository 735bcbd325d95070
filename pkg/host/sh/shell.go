// Package sh provides the interactive host shell for the pin firmware.
package sh

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/pinio.go/pkg/host"
	"github.com/robotalks/pinio.go/pkg/host/serialport"
)

// Shell provides an ishell backed interactive shell around a Client.
type Shell struct {
	Interactive bool

	Shell  *ishell.Shell
	Client *host.Client

	conn io.Closer
}

const (
	shellKey           = "$shell"
	disconnectedPrompt = "[none] > "
)

var (
	// flags

	evalOnly  bool
	serialDev string
	baudRate  int
	tcpAddr   string
	waitReady bool

	// commands
	commands []*ishell.Cmd
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.StringVar(&serialDev, "serial", serialDev, "Serial device of the firmware.")
	flag.IntVar(&baudRate, "baud", serialport.DefaultBaud, "Serial baud rate.")
	flag.StringVar(&tcpAddr, "connect", tcpAddr, "TCP address of a firmware daemon.")
	flag.BoolVar(&waitReady, "wait-ready", true, "Wait for the firmware banner after connecting.")
}

// AddCmds is used by command providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New() *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		Shell:       ishell.New(),
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(disconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeConnected wraps a command func requiring a connection.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Client == nil {
			c.Err(fmt.Errorf("not connected"))
			return
		}
		fn(c)
	}
}

// Connect attaches the shell to a firmware byte stream.
func (s *Shell) Connect(rw io.ReadWriter, name string) error {
	s.Client = host.NewClient(rw)
	if closer, ok := rw.(io.Closer); ok {
		s.conn = closer
	}
	if waitReady {
		if _, err := s.Client.WaitReady(); err != nil {
			return err
		}
	}
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", name))
	return nil
}

// ConnectFromFlags connects using the -serial or -connect flags.
func (s *Shell) ConnectFromFlags() error {
	if serialDev != "" {
		conf := &serialport.Config{Device: serialDev, Baud: baudRate}
		port, err := conf.Open()
		if err != nil {
			return err
		}
		return s.Connect(port, serialDev)
	}
	if tcpAddr != "" {
		conn, err := net.Dial("tcp", tcpAddr)
		if err != nil {
			return err
		}
		return s.Connect(conn, tcpAddr)
	}
	return fmt.Errorf("either -serial or -connect is required")
}

// Close releases the connection.
func (s *Shell) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// Main is the shared main func of the shell binaries.
func Main() {
	flag.Parse()
	s := New()
	if err := s.ConnectFromFlags(); err != nil {
		log.Fatalln(err)
	}
	defer s.Close()
	s.Run(flag.Args()...)
}
