// Package twitest provides a simulated two-wire bus for driver tests: a
// bank of two bus-switch chips and a set of EEPROM devices with
// auto-incrementing register pointers, reachable only while their switch
// bit is selected.
package twitest

import (
	"errors"
	"fmt"

	"github.com/cgxeiji/sfp/twi"
)

// EEPROM is one simulated 256 byte device.
type EEPROM struct {
	// Port is the switch bit (0-15) that must be selected for the
	// device to answer.
	Port int
	// Mem is the device memory. Tests preload it and may rewrite it
	// between transactions.
	Mem [256]byte

	ptr byte
}

// Bus is a simulated twi.Bus. The zero value is not usable; use New.
type Bus struct {
	// Devices maps 8-bit write addresses to simulated EEPROMs.
	Devices map[byte]*EEPROM
	// Switches holds the last mask written to each switch chip.
	Switches map[byte]byte
	// SwitchLow and SwitchHigh are the chips whose registers form the
	// 16 bit selection; they default to 0x70 and 0x71.
	SwitchLow, SwitchHigh byte
	// Absent addresses refuse to acknowledge even when selected.
	Absent map[byte]bool

	// FailSwitch makes SwitchSelect fail with twi.ErrNACK.
	FailSwitch bool
	// ReadErr, when set, is returned by every ReadByte.
	ReadErr error

	// Ops is a transcript of primitive calls, for asserting exact wire
	// sequences.
	Ops []string

	started bool
	awaited bool // next write is an address byte
	cur     *EEPROM
	reading bool
	ptrSet  bool // register pointer written in this transfer
}

// New returns an empty simulated bus.
func New() *Bus {
	return &Bus{
		Devices:    make(map[byte]*EEPROM),
		Switches:   make(map[byte]byte),
		Absent:     make(map[byte]bool),
		SwitchLow:  0x70,
		SwitchHigh: 0x71,
	}
}

// AddEEPROM registers a device at the given 8-bit write address behind the
// given switch bit and returns it for preloading.
func (b *Bus) AddEEPROM(addr byte, port int) *EEPROM {
	e := &EEPROM{Port: port}
	b.Devices[addr&0xFE] = e
	return e
}

// SelectedMask returns the combined 16 bit selection across both switch
// chips, low chip in the low byte.
func (b *Bus) SelectedMask() uint16 {
	return uint16(b.Switches[b.SwitchHigh])<<8 | uint16(b.Switches[b.SwitchLow])
}

func (b *Bus) op(format string, args ...interface{}) {
	b.Ops = append(b.Ops, fmt.Sprintf(format, args...))
}

// Start implements twi.Bus.
func (b *Bus) Start() error {
	b.op("START")
	b.started = true
	b.awaited = true
	b.cur = nil
	b.reading = false
	return nil
}

// Restart implements twi.Bus.
func (b *Bus) Restart() error {
	if !b.started {
		return errors.New("twitest: restart without start")
	}
	b.op("RESTART")
	b.awaited = true
	b.reading = false
	return nil
}

// Stop implements twi.Bus.
func (b *Bus) Stop() error {
	b.op("STOP")
	b.started = false
	b.awaited = false
	b.cur = nil
	b.reading = false
	return nil
}

// WriteByte implements twi.Bus. The first byte after a start or restart
// addresses a device; an unselected, absent or unknown address is not
// acknowledged. Later bytes set the register pointer, then write through
// it.
func (b *Bus) WriteByte(v byte) error {
	if !b.started {
		return errors.New("twitest: write without start")
	}
	b.op("WRITE %02x", v)
	if b.awaited {
		b.awaited = false
		base := v &^ 1
		e, ok := b.Devices[base]
		if !ok || b.Absent[base] || b.SelectedMask()&(1<<uint(e.Port)) == 0 {
			b.cur = nil
			return twi.ErrNACK
		}
		b.cur = e
		b.reading = v&1 != 0
		b.ptrSet = false
		return nil
	}
	if b.cur == nil {
		return twi.ErrNACK
	}
	if b.reading {
		return errors.New("twitest: write during read transfer")
	}
	if !b.ptrSet {
		b.cur.ptr = v
		b.ptrSet = true
		return nil
	}
	b.cur.Mem[b.cur.ptr] = v
	b.cur.ptr++
	return nil
}

// ReadByte implements twi.Bus. Bytes come from the addressed device's
// memory at its register pointer, which increments and wraps within the
// page.
func (b *Bus) ReadByte(ack bool) (byte, error) {
	if !b.started || b.cur == nil || !b.reading {
		return 0, errors.New("twitest: read without addressed device")
	}
	if ack {
		b.op("READ ACK")
	} else {
		b.op("READ NACK")
	}
	if b.ReadErr != nil {
		return 0, b.ReadErr
	}
	v := b.cur.Mem[b.cur.ptr]
	b.cur.ptr++
	return v, nil
}

// SwitchSelect implements twi.Bus.
func (b *Bus) SwitchSelect(addr, mask byte) error {
	b.op("SELECT %02x=%02x", addr, mask)
	if b.FailSwitch {
		return twi.ErrNACK
	}
	b.Switches[addr] = mask
	return nil
}

var _ twi.Bus = (*Bus)(nil)
