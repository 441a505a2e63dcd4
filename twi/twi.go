// Package twi defines the two-wire bus primitives the sfp driver is built
// on. Implementations drive the physical bus: package bitbang provides one
// over two GPIO lines, and package twitest provides a simulated bus for
// tests.
package twi

import "errors"

// ErrNACK is returned by WriteByte when the addressed device does not
// acknowledge the byte.
var ErrNACK = errors.New("twi: no acknowledge received")

// Bus is a single two-wire bus instance. Calls are blocking and must not be
// interleaved: the driver issues one select+transaction sequence at a time
// and assumes nothing else touches the bus in between.
type Bus interface {
	// Start issues a start condition and claims the bus.
	Start() error
	// Restart issues a repeated start without releasing the bus.
	Restart() error
	// Stop issues a stop condition and releases the bus.
	Stop() error
	// WriteByte sends one byte. It returns ErrNACK if the byte is not
	// acknowledged.
	WriteByte(b byte) error
	// ReadByte receives one byte. It acknowledges the byte if ack is
	// true; the final byte of a read must be answered with a
	// no-acknowledge.
	ReadByte(ack bool) (byte, error)
	// SwitchSelect writes mask to the bus-switch register of the switch
	// chip at the 7-bit address addr, gating which downstream devices
	// are connected. Device addresses passed to WriteByte are 8-bit
	// (read bit in the LSB); switch chip addresses are not shifted.
	SwitchSelect(addr, mask byte) error
}
