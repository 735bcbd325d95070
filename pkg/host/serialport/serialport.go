// Package serialport opens serial ports for the command protocol.
package serialport

import (
	"io"

	"github.com/tarm/serial"
)

// DefaultBaud is the symbol rate of the reference firmware.
const DefaultBaud = 115200

// Config describes a serial port.
type Config struct {
	// Device is the port path, e.g. /dev/ttyACM0 or COM3.
	Device string
	// Baud is the symbol rate, DefaultBaud when 0.
	Baud int
}

// Open opens the serial port as a byte stream.
func (c *Config) Open() (io.ReadWriteCloser, error) {
	baud := c.Baud
	if baud == 0 {
		baud = DefaultBaud
	}
	return serial.OpenPort(&serial.Config{Name: c.Device, Baud: baud})
}
