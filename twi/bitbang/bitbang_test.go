package bitbang

import (
	"errors"
	"testing"
	"time"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpiotest"

	"github.com/cgxeiji/sfp/twi"
)

// pullupPin behaves like a line with a pull-up resistor: releasing it to
// input raises the level. gpiotest.Pin alone keeps the last driven level,
// which reads as a permanently stuck bus.
type pullupPin struct {
	gpiotest.Pin

	// held simulates an external device holding the line low.
	held bool
}

func (p *pullupPin) In(pull gpio.Pull, edge gpio.Edge) error {
	if err := p.Pin.In(pull, edge); err != nil {
		return err
	}
	if pull == gpio.PullUp && !p.held {
		p.L = gpio.High
	}
	return nil
}

func testPins() (*pullupPin, *pullupPin) {
	return &pullupPin{Pin: gpiotest.Pin{N: "SDA", Num: 2}},
		&pullupPin{Pin: gpiotest.Pin{N: "SCL", Num: 3}}
}

func fastBus(t *testing.T) (*Bus, *pullupPin, *pullupPin) {
	t.Helper()
	sda, scl := testPins()
	b, err := NewPins(sda, scl)
	if err != nil {
		t.Fatalf("NewPins: %v", err)
	}
	b.half = 0
	b.stretch = time.Millisecond
	return b, sda, scl
}

func TestStartStop(t *testing.T) {
	b, sda, scl := fastBus(t)

	if err := b.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if sda.L != gpio.Low || scl.L != gpio.Low {
		t.Errorf("after start: SDA=%v SCL=%v, expected both low", sda.L, scl.L)
	}

	if err := b.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if sda.L != gpio.High || scl.L != gpio.High {
		t.Errorf("after stop: SDA=%v SCL=%v, expected both released", sda.L, scl.L)
	}
}

func TestWriteByteNACK(t *testing.T) {
	b, _, _ := fastBus(t)

	if err := b.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	// Nothing pulls SDA low during the acknowledge bit on an empty bus.
	if err := b.WriteByte(0xA0); !errors.Is(err, twi.ErrNACK) {
		t.Errorf("WriteByte on empty bus: %v, expected twi.ErrNACK", err)
	}
}

func TestReadByteIdleBus(t *testing.T) {
	b, _, _ := fastBus(t)

	if err := b.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	// A released data line reads all ones.
	v, err := b.ReadByte(false)
	if err != nil {
		t.Fatalf("ReadByte: %v", err)
	}
	if v != 0xFF {
		t.Errorf("ReadByte on idle bus = %#02x, expected 0xFF", v)
	}
}

func TestSwitchSelectNACK(t *testing.T) {
	b, _, _ := fastBus(t)

	if err := b.SwitchSelect(0x70, 0x01); !errors.Is(err, twi.ErrNACK) {
		t.Errorf("SwitchSelect on empty bus: %v, expected twi.ErrNACK", err)
	}
}

func TestStuckClock(t *testing.T) {
	sda, scl := testPins()
	b, err := NewPins(sda, scl)
	if err != nil {
		t.Fatalf("NewPins: %v", err)
	}
	b.half = 0
	b.stretch = time.Millisecond

	// Hold the clock low from the outside, as a stretching slave would.
	scl.held = true
	scl.L = gpio.Low

	if err := b.Start(); !errors.Is(err, ErrStuckClock) {
		t.Errorf("Start with held clock: %v, expected ErrStuckClock", err)
	}
}
