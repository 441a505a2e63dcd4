package sfp

import "fmt"

// Phase identifies the step of a bus transaction that failed.
type Phase int

const (
	PhaseSelect Phase = iota
	PhaseStart
	PhaseAddress
	PhaseRegister
	PhaseRestart
	PhaseRead
	PhaseStop
)

func (p Phase) String() string {
	var t = [...]string{
		PhaseSelect:   "switch select",
		PhaseStart:    "start",
		PhaseAddress:  "address write",
		PhaseRegister: "register write",
		PhaseRestart:  "restart",
		PhaseRead:     "data read",
		PhaseStop:     "stop",
	}
	if int(p) < len(t) {
		return t[p]
	}
	return "unknown"
}

// BusError is a bus primitive failure during a transaction. The transaction
// is aborted where it failed; no retry is attempted at this layer.
type BusError struct {
	Phase Phase
	Err   error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("bus fault during %s: %v", e.Phase, e.Err)
}

func (e *BusError) Unwrap() error { return e.Err }

// selectPort activates this module's bit on the two cascaded bus switches
// and clears every other bit. The bus is shared, so this runs before every
// transaction: a previous selection cannot be assumed to persist.
func (d *Device) selectPort() error {
	mask := uint16(1) << d.port
	if err := d.bus.SwitchSelect(d.switchLow, byte(mask)); err != nil {
		return &BusError{PhaseSelect, err}
	}
	if err := d.bus.SwitchSelect(d.switchHigh, byte(mask>>8)); err != nil {
		return &BusError{PhaseSelect, err}
	}
	return nil
}

// probe checks for a responding device at the module address without
// reading data: select, start, address write, stop.
func (d *Device) probe() error {
	if err := d.selectPort(); err != nil {
		return err
	}
	if err := d.bus.Start(); err != nil {
		return &BusError{PhaseStart, err}
	}
	werr := d.bus.WriteByte(d.addr)
	if err := d.bus.Stop(); err != nil && werr == nil {
		return &BusError{PhaseStop, err}
	}
	if werr != nil {
		return &BusError{PhaseAddress, werr}
	}
	return nil
}

// readInfo reads from the module information EEPROM at the base address.
func (d *Device) readInfo(reg byte, buf []byte) error {
	return d.read(d.addr, reg, buf)
}

// readDiag reads from the diagnostic monitoring EEPROM. The diagnostic
// device sits at base+2 and that address is used for both the register
// pointer write and the data read.
func (d *Device) readDiag(reg byte, buf []byte) error {
	return d.read(d.addr+2, reg, buf)
}

// read runs one full read transaction: select, start, address, register
// pointer, repeated start, read address, data bytes with a no-acknowledge
// on the final byte, stop. On failure the bus is released with a
// best-effort stop and the first error is reported.
func (d *Device) read(addr, reg byte, buf []byte) error {
	if err := d.selectPort(); err != nil {
		return err
	}
	if err := d.bus.Start(); err != nil {
		return &BusError{PhaseStart, err}
	}
	if err := d.transfer(addr, reg, buf); err != nil {
		d.bus.Stop()
		return err
	}
	if err := d.bus.Stop(); err != nil {
		return &BusError{PhaseStop, err}
	}
	return nil
}

func (d *Device) transfer(addr, reg byte, buf []byte) error {
	if err := d.bus.WriteByte(addr); err != nil {
		return &BusError{PhaseAddress, err}
	}
	if err := d.bus.WriteByte(reg); err != nil {
		return &BusError{PhaseRegister, err}
	}
	if err := d.bus.Restart(); err != nil {
		return &BusError{PhaseRestart, err}
	}
	if err := d.bus.WriteByte(addr | 1); err != nil {
		return &BusError{PhaseAddress, err}
	}
	for i := range buf {
		b, err := d.bus.ReadByte(i < len(buf)-1)
		if err != nil {
			return &BusError{PhaseRead, err}
		}
		buf[i] = b
	}
	return nil
}
