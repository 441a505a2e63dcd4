package sfp

import (
	"errors"
	"strings"
	"testing"

	"github.com/cgxeiji/sfp/twi"
)

func TestProbeSequence(t *testing.T) {
	bus, _, _ := testBus(9)

	if _, err := New(bus, 1); err != nil {
		t.Fatalf("New: %v", err)
	}

	expected := []string{
		"SELECT 70=00",
		"SELECT 71=02",
		"START",
		"WRITE a0",
		"STOP",
	}
	for i, op := range expected {
		if bus.Ops[i] != op {
			t.Fatalf("probe operation %d = %q, expected %q\nfull transcript: %v",
				i, bus.Ops[i], op, bus.Ops[:len(expected)])
		}
	}
}

func TestInfoReadSequence(t *testing.T) {
	bus, _, _ := testBus(9)

	dev, err := New(bus, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	bus.Ops = nil
	if _, err := dev.DumpInfo(92, 2); err != nil {
		t.Fatalf("DumpInfo: %v", err)
	}

	expected := []string{
		"SELECT 70=00",
		"SELECT 71=02",
		"START",
		"WRITE a0",
		"WRITE 5c",
		"RESTART",
		"WRITE a1",
		"READ ACK",
		"READ NACK",
		"STOP",
	}
	if len(bus.Ops) != len(expected) {
		t.Fatalf("transcript length %d, expected %d:\n%v", len(bus.Ops), len(expected), bus.Ops)
	}
	for i, op := range expected {
		if bus.Ops[i] != op {
			t.Errorf("operation %d = %q, expected %q", i, bus.Ops[i], op)
		}
	}
}

// The diagnostic device answers at base+2 for both the register pointer
// write and the data read. Early firmware used base+1 for the read phase;
// that variant must not come back.
func TestDiagAddress(t *testing.T) {
	bus, _, _ := testBus(9)

	if _, err := New(bus, 1); err != nil {
		t.Fatalf("New: %v", err)
	}

	var sawPointer, sawRead bool
	for _, op := range bus.Ops {
		switch op {
		case "WRITE a2":
			sawPointer = true
		case "WRITE a3":
			sawRead = true
		case "WRITE a1":
			t.Fatalf("read phase addressed base+1:\n%v", bus.Ops)
		}
	}
	if !sawPointer || !sawRead {
		t.Errorf("diagnostic fetch did not use base+2 for both phases:\n%v", bus.Ops)
	}
}

func TestFinalByteNACK(t *testing.T) {
	bus, _, _ := testBus(9)

	if _, err := New(bus, 1); err != nil {
		t.Fatalf("New: %v", err)
	}

	// Every read transaction must end READ NACK, STOP; every other read
	// acknowledges.
	for i, op := range bus.Ops {
		if op == "READ NACK" && bus.Ops[i+1] != "STOP" {
			t.Fatalf("no-acknowledge not on the final byte: op %d followed by %q", i, bus.Ops[i+1])
		}
		if op == "STOP" && i > 0 && strings.HasPrefix(bus.Ops[i-1], "READ") && bus.Ops[i-1] != "READ NACK" {
			t.Fatalf("read transaction ended without a no-acknowledge: %q before STOP", bus.Ops[i-1])
		}
	}
}

func TestSelectFailure(t *testing.T) {
	bus, _, _ := testBus(9)
	bus.FailSwitch = true

	_, err := New(bus, 1)
	var berr *BusError
	if !errors.As(err, &berr) {
		t.Fatalf("New with failing switch: %v, expected BusError", err)
	}
	if berr.Phase != PhaseSelect {
		t.Errorf("phase = %v, expected %v", berr.Phase, PhaseSelect)
	}
	if !errors.Is(err, twi.ErrNACK) {
		t.Errorf("BusError does not unwrap to twi.ErrNACK: %v", err)
	}

	// A failed select only sees the one switch write.
	if len(bus.Ops) != 1 {
		t.Errorf("bus saw %d operations after failed select, expected 1:\n%v",
			len(bus.Ops), bus.Ops)
	}
}

func TestReadFailure(t *testing.T) {
	bus, _, _ := testBus(9)

	dev, err := New(bus, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	bus.ReadErr = errors.New("arbitration lost")
	err = dev.Refresh()
	var berr *BusError
	if !errors.As(err, &berr) {
		t.Fatalf("Refresh with failing reads: %v, expected BusError", err)
	}
	if berr.Phase != PhaseRead {
		t.Errorf("phase = %v, expected %v", berr.Phase, PhaseRead)
	}

	// The aborted transaction still releases the bus.
	if bus.Ops[len(bus.Ops)-1] != "STOP" {
		t.Errorf("transcript does not end with STOP:\n%v",
			bus.Ops[len(bus.Ops)-5:])
	}
}

func TestPhaseStrings(t *testing.T) {
	for p := PhaseSelect; p <= PhaseStop; p++ {
		if p.String() == "unknown" {
			t.Errorf("Phase(%d) has no name", int(p))
		}
	}
	if Phase(42).String() != "unknown" {
		t.Errorf("Phase(42) = %q", Phase(42).String())
	}
}
