// Package daemon assembles the interpreter daemon from config.
package daemon

import (
	"flag"
	"os"

	"github.com/robotalks/pinio.go/pkg/host/serialport"
	"github.com/robotalks/pinio.go/pkg/telemetry"
)

// Config defines the daemon setup.
type Config struct {
	// SerialDevice binds the interpreter to a serial port.
	SerialDevice string
	SerialBaud   int
	// ListenAddr serves the interpreter on a TCP listener.
	ListenAddr string
	// ListenWSAddr serves the interpreter over websocket.
	ListenWSAddr string
	// Stdio binds the interpreter to stdin/stdout. Used by default
	// when no other transport is configured.
	Stdio bool

	// MQTTBrokerURL enables presence and command traces.
	// e.g. mqtt://host:port/topic-prefix
	MQTTBrokerURL string
	// ID is the device identity for telemetry, machine ID by default.
	ID string

	// Simulated device tables.
	Motors     int
	Steppers   int
	StepperRPM int

	// MotorSignDirection treats negative motor values as backward.
	MotorSignDirection bool
}

var defaultConfig = Config{
	SerialBaud: serialport.DefaultBaud,
	Motors:     4,
	Steppers:   2,
	StepperRPM: 60,
}

func init() {
	if val := os.Getenv("PINIO_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
	defaultConfig.ID = telemetry.MachineID()
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.SerialDevice, "serial", defaultConfig.SerialDevice, "Serial device to serve the interpreter on.")
	flag.IntVar(&defaultConfig.SerialBaud, "baud", defaultConfig.SerialBaud, "Serial baud rate.")
	flag.StringVar(&defaultConfig.ListenAddr, "listen", defaultConfig.ListenAddr, "TCP listen address, e.g. :9550.")
	flag.StringVar(&defaultConfig.ListenWSAddr, "listen-ws", defaultConfig.ListenWSAddr, "Websocket listen address, e.g. :9551.")
	flag.BoolVar(&defaultConfig.Stdio, "stdio", defaultConfig.Stdio, "Serve the interpreter on stdin/stdout.")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL for presence/traces.")
	flag.StringVar(&defaultConfig.ID, "id", defaultConfig.ID, "Device ID.")
	flag.IntVar(&defaultConfig.Motors, "motors", defaultConfig.Motors, "Number of simulated DC motor slots.")
	flag.IntVar(&defaultConfig.Steppers, "steppers", defaultConfig.Steppers, "Number of simulated stepper slots.")
	flag.IntVar(&defaultConfig.StepperRPM, "stepper-rpm", defaultConfig.StepperRPM, "Startup speed of stepper slots.")
	flag.BoolVar(&defaultConfig.MotorSignDirection, "motor-sign-direction", defaultConfig.MotorSignDirection, "Treat the sign of a motor value as running direction.")
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}
