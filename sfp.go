// Package sfp reads identification and diagnostic monitoring data from SFP
// transceiver modules sharing a multiplexed two-wire bus. Each module sits
// behind one bit of two cascaded bus switches; the driver selects that bit
// before every transaction, reads the fixed 256 byte information and
// diagnostic pages, and decodes them through package sff8472.
package sfp

import (
	"errors"
	"fmt"

	"github.com/cgxeiji/sfp/sff8472"
	"github.com/cgxeiji/sfp/twi"
)

var (
	// ErrNoModule is thrown when no module acknowledges its address
	// during the construction probe. No handle is produced.
	ErrNoModule = errors.New("no module present")
	// ErrNoDiagnostics is thrown when diagnostic data is requested from
	// a module that does not implement accessible diagnostic monitoring.
	// It is an expected outcome for such modules, not a bus fault.
	ErrNoDiagnostics = errors.New("diagnostic monitoring not available")
	// ErrBadPort is thrown when the port index does not map to a bit of
	// the two cascaded bus switches.
	ErrBadPort = errors.New("port index out of range")
)

// Device is one transceiver slot on a multiplexed two-wire bus. It owns the
// cached copies of both memory pages; queries decode the cache and only
// Refresh and RefreshReadings touch the bus again.
//
// A Device is not safe for concurrent use: every operation is one
// select+transaction critical section on the shared bus.
type Device struct {
	bus        twi.Bus
	index      int
	port       uint
	portOffset int
	addr       byte
	switchLow  byte
	switchHigh byte
	log        Logger

	info    sff8472.InfoPage
	diag    sff8472.DiagPage
	hasDiag bool
}

// New probes the module at the given port index and returns a handle to it.
// The information page is fetched unconditionally; the diagnostic page only
// when the module declares accessible diagnostic monitoring. New returns
// ErrNoModule if nothing acknowledges the probe.
func New(bus twi.Bus, index int, options ...Option) (*Device, error) {
	d := &Device{
		bus:        bus,
		index:      index,
		portOffset: defaultPortOffset,
		addr:       defaultAddr,
		switchLow:  defaultSwitchLow,
		switchHigh: defaultSwitchHigh,
		log:        nopLogger{},
	}

	for _, opt := range options {
		opt(d)
	}

	if index < 0 || d.portOffset+index > 15 {
		return nil, fmt.Errorf("sfp: port %d: %w", index, ErrBadPort)
	}
	d.port = uint(d.portOffset + index)

	d.log.Debugf("sfp: probing port %d (switch bit %d, address %#02x)", index, d.port, d.addr)
	if err := d.probe(); err != nil {
		var berr *BusError
		if errors.As(err, &berr) && berr.Phase == PhaseAddress && errors.Is(err, twi.ErrNACK) {
			return nil, fmt.Errorf("sfp: port %d: %w", index, ErrNoModule)
		}
		return nil, fmt.Errorf("sfp: could not probe port %d: %w", index, err)
	}

	if err := d.discover(); err != nil {
		return nil, err
	}

	return d, nil
}

// discover fetches the information page, evaluates the diagnostics
// capability gate and conditionally fetches the diagnostic page.
func (d *Device) discover() error {
	if err := d.readInfo(0, d.info[:]); err != nil {
		return fmt.Errorf("sfp: could not read information page: %w", err)
	}
	d.log.Infof("sfp: port %d: %s %s (s/n %s)", d.index,
		d.info.VendorName(), d.info.PartNumber(), d.info.SerialNumber())

	d.hasDiag = d.info.DiagnosticsSupported()
	if !d.hasDiag {
		d.log.Infof("sfp: port %d: no diagnostic monitoring", d.index)
		return nil
	}
	if err := d.readDiag(0, d.diag[:]); err != nil {
		return fmt.Errorf("sfp: could not read diagnostic page: %w", err)
	}
	return nil
}

// Refresh re-runs discovery: both pages are re-fetched wholesale and the
// diagnostics capability is re-evaluated.
func (d *Device) Refresh() error {
	return d.discover()
}

// RefreshReadings re-fetches only the live measurement block of the
// diagnostic page, leaving the cached thresholds untouched.
func (d *Device) RefreshReadings() error {
	if !d.hasDiag {
		return fmt.Errorf("sfp: port %d: %w", d.index, ErrNoDiagnostics)
	}
	const off, n = sff8472.ReadingsOffset, sff8472.ReadingsLength
	if err := d.readDiag(off, d.diag[off:off+n]); err != nil {
		return fmt.Errorf("sfp: could not refresh readings: %w", err)
	}
	return nil
}

// Info returns a copy of the cached information page.
func (d *Device) Info() sff8472.InfoPage { return d.info }

// HasDiagnostics reports whether the module passed the diagnostics
// capability gate at the last discovery.
func (d *Device) HasDiagnostics() bool { return d.hasDiag }

// Diagnostics returns the live readings decoded from the cached diagnostic
// page, or ErrNoDiagnostics if the module has none.
func (d *Device) Diagnostics() (sff8472.Readings, error) {
	if !d.hasDiag {
		return sff8472.Readings{}, fmt.Errorf("sfp: port %d: %w", d.index, ErrNoDiagnostics)
	}
	return d.diag.Readings(), nil
}

// Thresholds returns the alarm and warning limits decoded from the cached
// diagnostic page, or ErrNoDiagnostics if the module has none.
func (d *Device) Thresholds() (sff8472.Thresholds, error) {
	if !d.hasDiag {
		return sff8472.Thresholds{}, fmt.Errorf("sfp: port %d: %w", d.index, ErrNoDiagnostics)
	}
	return d.diag.Thresholds(), nil
}

// Status returns a copy of the cached diagnostic page for status and flag
// queries, or ErrNoDiagnostics if the module has none.
func (d *Device) Status() (sff8472.DiagPage, error) {
	if !d.hasDiag {
		return sff8472.DiagPage{}, fmt.Errorf("sfp: port %d: %w", d.index, ErrNoDiagnostics)
	}
	return d.diag, nil
}

// Alerts returns the priority-ordered list of raised alarm and warning
// conditions from the cached diagnostic page. Raised conditions are also
// reported to the logger.
func (d *Device) Alerts() ([]sff8472.Alert, error) {
	if !d.hasDiag {
		return nil, fmt.Errorf("sfp: port %d: %w", d.index, ErrNoDiagnostics)
	}
	alerts := d.diag.Alerts()
	for _, a := range alerts {
		if a.Severity == sff8472.SeverityAlarm {
			d.log.Errorf("sfp: port %d: %s", d.index, a)
		} else {
			d.log.Warnf("sfp: port %d: %s", d.index, a)
		}
	}
	return alerts, nil
}

// DumpInfo reads n raw bytes from the information EEPROM starting at
// offset, bypassing the cache.
func (d *Device) DumpInfo(offset, n int) ([]byte, error) {
	return d.dump(d.readInfo, offset, n)
}

// DumpDiag reads n raw bytes from the diagnostic EEPROM starting at
// offset, bypassing the cache.
func (d *Device) DumpDiag(offset, n int) ([]byte, error) {
	if !d.hasDiag {
		return nil, fmt.Errorf("sfp: port %d: %w", d.index, ErrNoDiagnostics)
	}
	return d.dump(d.readDiag, offset, n)
}

func (d *Device) dump(read func(byte, []byte) error, offset, n int) ([]byte, error) {
	if offset < 0 || n < 0 || offset+n > pageSize {
		return nil, fmt.Errorf("sfp: dump range %d+%d exceeds page", offset, n)
	}
	buf := make([]byte, n)
	if err := read(byte(offset), buf); err != nil {
		return nil, fmt.Errorf("sfp: could not dump page: %w", err)
	}
	return buf, nil
}

// String renders the cached module identity.
func (d *Device) String() string {
	e := &d.info
	s := fmt.Sprintf("Id: %v", e.Identifier())
	s += fmt.Sprintf("\n  Vendor: %s, Part Number %s, Revision %s, Serial %s, Date %s",
		e.VendorName(), e.PartNumber(), e.Revision(), e.SerialNumber(), e.DateCode())
	s += fmt.Sprintf("\n  Connector Type: %v", e.Connector())
	if w := e.Wavelength(); w != 0 {
		s += fmt.Sprintf("\n  Wavelength: %d nm", w)
	}
	if r := e.NominalRate(); r != 0 {
		s += fmt.Sprintf("\n  Nominal Rate: %d Mb/s", r)
	}
	s += fmt.Sprintf("\n  Compliance: %v", e.Compliance())
	if !d.hasDiag {
		s += "\n  Diagnostics: not available"
	}
	return s
}
