// Package wire implements the serial command line protocol.
package wire

// The protocol is communicated between a host and the pin I/O firmware
// over a byte-oriented channel (e.g. serial port). Commands are short
// ASCII lines with a fixed-position grammar and a carriage-return
// terminator:
//
//	<ClassByte><IndexDigit><OpByte><Operand...>\r
//
// ClassByte selects the device class ('A' analog, 'M' motor, 'S'
// stepper, anything else digital). OpByte selects the operation
// (':' set value, '-' set mode, '?' read). There is no checksum and no
// acknowledgement; framing is byte-at-a-time with a bounded line buffer.
//
// Producer: host controller
// Consumer: pin I/O firmware
