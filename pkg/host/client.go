package host

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/robotalks/pinio.go/pkg/wire"
)

// RemoteError is an error marker line reported by the firmware.
type RemoteError struct {
	Message string
}

// Error implements error.
func (e *RemoteError) Error() string {
	return "remote: " + e.Message
}

// Client talks the command protocol to the firmware over a byte
// stream. Methods are not safe for concurrent use: the protocol has no
// command pipelining.
type Client struct {
	rw io.ReadWriter
	r  *bufio.Reader
}

// NewClient creates a Client over a byte stream.
func NewClient(rw io.ReadWriter) *Client {
	return &Client{rw: rw, r: bufio.NewReader(rw)}
}

// WaitReady blocks until the firmware emits its startup banner line
// and returns it. Useful right after opening a serial port, while the
// device resets.
func (c *Client) WaitReady() (string, error) {
	line, err := c.readLine()
	if err != nil {
		return "", err
	}
	glog.V(1).Infof("firmware ready: %q", line)
	return line, nil
}

// SetLevel sets a port to a logic level.
func (c *Client) SetLevel(port Port, on bool) error {
	if !port.Valid() {
		return &BadPortError{Spec: port.String()}
	}
	return c.send("%s:%s", port, FormatLevel(on))
}

// SetValue sets a port to a numeric value. Pin values are limited to
// 0-255; motor and stepper values carry a sign.
func (c *Client) SetValue(port Port, value int) error {
	if !port.Valid() {
		return &BadPortError{Spec: port.String()}
	}
	switch port.Class {
	case wire.ClassDigital, wire.ClassAnalog:
		if !ValidValue(value) {
			return &BadValueError{Value: value}
		}
	}
	return c.send("%s:%s", port, FormatValue(value))
}

// SetMode sets the operating mode of a port.
func (c *Client) SetMode(port Port, mode wire.Mode) error {
	if !port.Valid() {
		return &BadPortError{Spec: port.String()}
	}
	return c.send("%s-%s", port, mode)
}

// Step moves a stepper by count steps, negative for backward.
func (c *Client) Step(port Port, count int) error {
	if port.Class != wire.ClassStepper {
		return &BadPortError{Spec: port.String()}
	}
	return c.SetValue(port, count)
}

// Read samples the current value of a port.
func (c *Client) Read(port Port) (int, error) {
	if !port.Valid() {
		return 0, &BadPortError{Spec: port.String()}
	}
	if err := c.send("%s?", port); err != nil {
		return 0, err
	}
	line, err := c.readLine()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(line)
}

func (c *Client) send(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	glog.V(2).Infof("SND %q", msg)
	_, err := fmt.Fprintf(c.rw, "%s%c", msg, wire.Terminator)
	return err
}

func (c *Client) readLine() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	glog.V(2).Infof("RCV %q", line)
	if strings.HasPrefix(line, "ERR ") {
		return "", &RemoteError{Message: line[4:]}
	}
	return line, nil
}
