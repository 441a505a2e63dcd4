// Package bitbang implements twi.Bus over two GPIO lines through
// periph.io. Lines are driven open-drain style: low by driving the pin,
// high by releasing it to the pull-up. The clock line honors slave clock
// stretching with a bounded wait.
package bitbang

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/host"

	"github.com/cgxeiji/sfp/twi"
)

// ErrStuckClock is thrown when the clock line stays low past the stretch
// budget, usually a hung slave or a missing pull-up.
var ErrStuckClock = errors.New("bitbang: clock line stuck low")

// Bus is a software two-wire master on two GPIO lines.
type Bus struct {
	sda, scl gpio.PinIO

	// half is the half-period of the clock; the default gives roughly a
	// 100 kHz bus.
	half time.Duration
	// stretch bounds the wait for a slave holding the clock low.
	stretch time.Duration
}

// New initializes the periph host and opens a bus on the named pins (e.g.
// "GPIO2", "GPIO3").
func New(sdaName, sclName string) (*Bus, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("bitbang: could not initialize host: %w", err)
	}
	sda := gpioreg.ByName(sdaName)
	if sda == nil {
		return nil, fmt.Errorf("bitbang: no pin named %q", sdaName)
	}
	scl := gpioreg.ByName(sclName)
	if scl == nil {
		return nil, fmt.Errorf("bitbang: no pin named %q", sclName)
	}
	return NewPins(sda, scl)
}

// NewPins opens a bus on the given pins and releases both lines.
func NewPins(sda, scl gpio.PinIO) (*Bus, error) {
	b := &Bus{
		sda:     sda,
		scl:     scl,
		half:    5 * time.Microsecond,
		stretch: 10 * time.Millisecond,
	}
	if err := release(b.sda); err != nil {
		return nil, fmt.Errorf("bitbang: could not release SDA: %w", err)
	}
	if err := release(b.scl); err != nil {
		return nil, fmt.Errorf("bitbang: could not release SCL: %w", err)
	}
	return b, nil
}

func drive(p gpio.PinIO) error { return p.Out(gpio.Low) }

func release(p gpio.PinIO) error { return p.In(gpio.PullUp, gpio.NoEdge) }

func (b *Bus) wait() { time.Sleep(b.half) }

// clockHigh releases the clock and waits for it to actually rise, honoring
// clock stretching.
func (b *Bus) clockHigh() error {
	if err := release(b.scl); err != nil {
		return err
	}
	deadline := time.Now().Add(b.stretch)
	for b.scl.Read() == gpio.Low {
		if time.Now().After(deadline) {
			return ErrStuckClock
		}
	}
	return nil
}

// Start implements twi.Bus: data falls while the clock is high. It also
// serves as the first half of a repeated start, so it works from both the
// idle and the clock-low state.
func (b *Bus) Start() error {
	if err := release(b.sda); err != nil {
		return err
	}
	if err := b.clockHigh(); err != nil {
		return err
	}
	b.wait()
	if err := drive(b.sda); err != nil {
		return err
	}
	b.wait()
	if err := drive(b.scl); err != nil {
		return err
	}
	b.wait()
	return nil
}

// Restart implements twi.Bus.
func (b *Bus) Restart() error { return b.Start() }

// Stop implements twi.Bus: data rises while the clock is high.
func (b *Bus) Stop() error {
	if err := drive(b.sda); err != nil {
		return err
	}
	b.wait()
	if err := b.clockHigh(); err != nil {
		return err
	}
	b.wait()
	if err := release(b.sda); err != nil {
		return err
	}
	b.wait()
	return nil
}

func (b *Bus) writeBit(v bool) error {
	var err error
	if v {
		err = release(b.sda)
	} else {
		err = drive(b.sda)
	}
	if err != nil {
		return err
	}
	b.wait()
	if err := b.clockHigh(); err != nil {
		return err
	}
	b.wait()
	return drive(b.scl)
}

func (b *Bus) readBit() (bool, error) {
	if err := release(b.sda); err != nil {
		return false, err
	}
	b.wait()
	if err := b.clockHigh(); err != nil {
		return false, err
	}
	v := b.sda.Read() == gpio.High
	b.wait()
	return v, drive(b.scl)
}

// WriteByte implements twi.Bus, most significant bit first, and samples the
// acknowledge bit.
func (b *Bus) WriteByte(v byte) error {
	for i := 7; i >= 0; i-- {
		if err := b.writeBit(v>>uint(i)&1 != 0); err != nil {
			return err
		}
	}
	nack, err := b.readBit()
	if err != nil {
		return err
	}
	if nack {
		return twi.ErrNACK
	}
	return nil
}

// ReadByte implements twi.Bus, most significant bit first, answering with
// an acknowledge bit driven low when ack is true.
func (b *Bus) ReadByte(ack bool) (byte, error) {
	var v byte
	for i := 7; i >= 0; i-- {
		bit, err := b.readBit()
		if err != nil {
			return 0, err
		}
		if bit {
			v |= 1 << uint(i)
		}
	}
	return v, b.writeBit(!ack)
}

// SwitchSelect implements twi.Bus with a plain two byte write transaction
// to the switch chip.
func (b *Bus) SwitchSelect(addr, mask byte) error {
	if err := b.Start(); err != nil {
		return err
	}
	err := b.WriteByte(addr << 1)
	if err == nil {
		err = b.WriteByte(mask)
	}
	if err != nil {
		b.Stop()
		return err
	}
	return b.Stop()
}

var _ twi.Bus = (*Bus)(nil)
