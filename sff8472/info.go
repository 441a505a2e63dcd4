// Package sff8472 decodes the fixed-layout memory pages of SFP transceiver
// modules: the module information page at device address A0h and the
// diagnostic monitoring page at A2h. Pages are plain 256 byte arrays;
// accessors interpret sub-ranges in place and never allocate beyond the
// strings they return.
package sff8472

import (
	"strings"
)

// InfoPage is the 256 byte module information page (A0h).
type InfoPage [256]byte

// Identifier returns the module device type.
func (p *InfoPage) Identifier() Identifier { return Identifier(p[offIdentifier]) }

// Connector returns the connector type.
func (p *InfoPage) Connector() Connector { return Connector(p[offConnector]) }

// Compliance returns the SFF-8472 revision compliance code.
func (p *InfoPage) Compliance() Compliance { return Compliance(p[offCompliance]) }

// NominalRate returns the nominal signalling rate in Mb/s.
func (p *InfoPage) NominalRate() int { return int(p[offNominalRate]) * 100 }

// Wavelength returns the nominal laser wavelength in nm.
func (p *InfoPage) Wavelength() int {
	return int(p[offWavelength])<<8 | int(p[offWavelength+1])
}

// VendorName returns the vendor name field.
func (p *InfoPage) VendorName() string { return trim(p[offVendorName : offVendorName+16]) }

// VendorOUI returns the vendor IEEE company identifier.
func (p *InfoPage) VendorOUI() [3]byte {
	var oui [3]byte
	copy(oui[:], p[offVendorOUI:offVendorOUI+3])
	return oui
}

// PartNumber returns the vendor part number field.
func (p *InfoPage) PartNumber() string { return trim(p[offPartNumber : offPartNumber+16]) }

// Revision returns the vendor revision field.
func (p *InfoPage) Revision() string { return trim(p[offRevision : offRevision+4]) }

// SerialNumber returns the vendor serial number field.
func (p *InfoPage) SerialNumber() string { return trim(p[offSerialNumber : offSerialNumber+16]) }

// DateCode returns the vendor manufacturing date code field.
func (p *InfoPage) DateCode() string { return trim(p[offDateCode : offDateCode+8]) }

// LinkLengths holds the supported link length fields, converted to meters.
// A zero field means the length is not supported or not applicable.
type LinkLengths struct {
	SMF    int // single mode fiber
	OM1    int // 62.5 um multimode
	OM2    int // 50 um multimode
	OM3    int // 50 um multimode, 850 nm optimized
	Copper int
}

// LinkLengths returns the supported link lengths in meters. Single mode
// length prefers the km field when it is set.
func (p *InfoPage) LinkLengths() LinkLengths {
	smf := int(p[offLengthSMF]) * 100
	if p[offLengthSMFKm] != 0 {
		smf = int(p[offLengthSMFKm]) * 1000
	}
	return LinkLengths{
		SMF:    smf,
		OM1:    int(p[offLengthOM1]) * 10,
		OM2:    int(p[offLengthOM2]) * 10,
		OM3:    int(p[offLengthOM3]) * 10,
		Copper: int(p[offLengthCopper]),
	}
}

// AddressChangeRequired reports whether reading the diagnostic page needs
// an address change sequence. Modules requiring one are treated as having
// no accessible diagnostics.
func (p *InfoPage) AddressChangeRequired() bool { return p[offMonitoringType]&mtAddressChange != 0 }

// HasDiagnostics reports whether the module declares digital diagnostic
// monitoring in the monitoring type byte.
func (p *InfoPage) HasDiagnostics() bool { return p[offMonitoringType]&mtImplemented != 0 }

// InternallyCalibrated reports whether diagnostic values are internally
// calibrated, i.e. convert with the fixed scale factors.
func (p *InfoPage) InternallyCalibrated() bool { return p[offMonitoringType]&mtInternalCal != 0 }

// ExternallyCalibrated reports whether diagnostic values need external
// calibration coefficients.
func (p *InfoPage) ExternallyCalibrated() bool { return p[offMonitoringType]&mtExternalCal != 0 }

// DiagnosticsSupported reports whether the diagnostic page may be fetched:
// no address change sequence is required, and either the monitoring type
// byte declares diagnostics or the compliance byte is non-zero.
func (p *InfoPage) DiagnosticsSupported() bool {
	if p.AddressChangeRequired() {
		return false
	}
	return p.HasDiagnostics() || p[offCompliance] != 0
}

// trim decodes a fixed-width ASCII field: stop at the first NUL, strip
// surrounding padding.
func trim(b []byte) string {
	for i := 0; i < len(b); i++ {
		if b[i] == 0 {
			b = b[:i]
			break
		}
	}
	return strings.TrimSpace(string(b))
}
