package sff8472

import "testing"

func TestDiagnosticsSupported(t *testing.T) {
	testCases := []struct {
		name       string
		monitoring byte
		compliance byte
		expected   bool
	}{
		{"diagnostics implemented", 0b0100_0000, 0x00, true},
		{"address change required", 0b0000_0100, 0x00, false},
		{"address change wins over diagnostics", 0b0100_0100, 0x05, false},
		{"compliance byte only", 0b0000_0000, 0x05, true},
		{"nothing declared", 0b0000_0000, 0x00, false},
		{"internal calibration", 0b0110_0000, 0x05, true},
	}

	for _, tc := range testCases {
		var p InfoPage
		p[offMonitoringType] = tc.monitoring
		p[offCompliance] = tc.compliance
		if got := p.DiagnosticsSupported(); got != tc.expected {
			t.Errorf("%s: DiagnosticsSupported() = %v, expected %v",
				tc.name, got, tc.expected)
		}
	}
}

func TestMonitoringType(t *testing.T) {
	var p InfoPage
	p[offMonitoringType] = 0b0111_0100
	if !p.HasDiagnostics() || !p.InternallyCalibrated() || !p.ExternallyCalibrated() || !p.AddressChangeRequired() {
		t.Errorf("monitoring type %#08b not fully decoded", p[offMonitoringType])
	}
}

func TestTextFields(t *testing.T) {
	var p InfoPage
	copy(p[offVendorName:], "ACME PHOTONICS  ")
	copy(p[offPartNumber:], []byte("SFP-10G-LR\x00\x00\x00\x00\x00\x00"))
	copy(p[offRevision:], "A1  ")
	copy(p[offSerialNumber:], "PX1935001234    ")
	copy(p[offDateCode:], "190523  ")

	checks := []struct {
		name     string
		got      string
		expected string
	}{
		{"vendor name", p.VendorName(), "ACME PHOTONICS"},
		{"part number", p.PartNumber(), "SFP-10G-LR"},
		{"revision", p.Revision(), "A1"},
		{"serial number", p.SerialNumber(), "PX1935001234"},
		{"date code", p.DateCode(), "190523"},
	}
	for _, c := range checks {
		if c.got != c.expected {
			t.Errorf("%s = %q, expected %q", c.name, c.got, c.expected)
		}
	}
}

func TestScalarFields(t *testing.T) {
	var p InfoPage
	p[offIdentifier] = 0x03
	p[offConnector] = 0x07
	p[offNominalRate] = 103
	p[offWavelength] = 0x05
	p[offWavelength+1] = 0x1E // 1310 nm

	if got := p.Identifier(); got != IdSFP {
		t.Errorf("Identifier() = %v, expected %v", got, IdSFP)
	}
	if got := p.Connector(); got != ConnectorLC {
		t.Errorf("Connector() = %v, expected %v", got, ConnectorLC)
	}
	if got := p.NominalRate(); got != 10300 {
		t.Errorf("NominalRate() = %d, expected 10300", got)
	}
	if got := p.Wavelength(); got != 1310 {
		t.Errorf("Wavelength() = %d, expected 1310", got)
	}
}

func TestLinkLengths(t *testing.T) {
	var p InfoPage
	p[offLengthSMFKm] = 10
	p[offLengthSMF] = 255
	p[offLengthOM3] = 30

	l := p.LinkLengths()
	if l.SMF != 10000 {
		t.Errorf("SMF = %d, expected 10000 (km field wins)", l.SMF)
	}
	if l.OM3 != 300 {
		t.Errorf("OM3 = %d, expected 300", l.OM3)
	}
	if l.Copper != 0 || l.OM1 != 0 || l.OM2 != 0 {
		t.Errorf("unsupported lengths should be zero, got %+v", l)
	}
}

func TestStringers(t *testing.T) {
	if got := Identifier(0x03).String(); got != "SFP/SFP+/SFP28" {
		t.Errorf("Identifier(0x03) = %q", got)
	}
	if got := Identifier(0xEE).String(); got != "unknown (0xee)" {
		t.Errorf("Identifier(0xEE) = %q", got)
	}
	if got := Connector(0x22).String(); got != "RJ45 (Registered Jack)" {
		t.Errorf("Connector(0x22) = %q", got)
	}
	if got := Compliance(0x05).String(); got != "SFF-8472 rev 11.0" {
		t.Errorf("Compliance(0x05) = %q", got)
	}
}
