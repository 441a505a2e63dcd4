package sff8472

import "fmt"

// Identifier is the module device type from byte 0 of the information page.
type Identifier byte

const (
	IdUnknown Identifier = iota
	IdGBIC
	IdOnMotherboard
	IdSFP
	IdXBI
	IdXENPAK
	IdXFP
	IdXFF
	IdXFPE
	IdXPAK
	IdX2
	IdDWDMSFP
	IdQSFP
	IdQSFPPlus
)

func (i Identifier) String() string {
	var t = [...]string{
		0x00: "Unknown or unspecified",
		0x01: "GBIC",
		0x02: "Module/connector soldered to motherboard",
		0x03: "SFP/SFP+/SFP28",
		0x04: "300 pin XBI",
		0x05: "XENPAK",
		0x06: "XFP",
		0x07: "XFF",
		0x08: "XFP-E",
		0x09: "XPAK",
		0x0A: "X2",
		0x0B: "DWDM-SFP/SFP+",
		0x0C: "QSFP",
		0x0D: "QSFP+",
	}
	return lookup(t[:], int(i))
}

// Connector is the connector type from byte 2 of the information page.
type Connector byte

const (
	ConnectorUnknown Connector = iota
	ConnectorSC
	ConnectorFCStyle1
	ConnectorFCStyle2
	ConnectorBNCTNC
	ConnectorFCCoax
	ConnectorFiberJack
	ConnectorLC
	ConnectorMTRJ
	ConnectorMU
	ConnectorSG
	ConnectorOpticalPigtail
	ConnectorMPO1x12
	ConnectorMPO2x16
	ConnectorHSSDC2        Connector = 0x20
	ConnectorCopperPigtail Connector = 0x21
	ConnectorRJ45          Connector = 0x22
	ConnectorNoSeparable   Connector = 0x23
	ConnectorMXC2x16       Connector = 0x24
)

func (c Connector) String() string {
	var t = [...]string{
		0x00: "Unknown or unspecified",
		0x01: "SC (Subscriber Connector)",
		0x02: "Fibre Channel Style 1 copper connector",
		0x03: "Fibre Channel Style 2 copper connector",
		0x04: "BNC/TNC (Bayonet/Threaded Neill-Concelman)",
		0x05: "Fibre Channel coax headers",
		0x06: "Fiber Jack",
		0x07: "LC (Lucent Connector)",
		0x08: "MT-RJ (Mechanical Transfer - Registered Jack)",
		0x09: "MU (Multiple Optical)",
		0x0A: "SG",
		0x0B: "Optical Pigtail",
		0x0C: "MPO 1x12 (Multifiber Parallel Optic)",
		0x0D: "MPO 2x16",
		0x20: "HSSDC II (High Speed Serial Data Connector)",
		0x21: "Copper pigtail",
		0x22: "RJ45 (Registered Jack)",
		0x23: "No separable connector",
		0x24: "MXC 2x16",
	}
	return lookup(t[:], int(c))
}

// Compliance is the SFF-8472 revision compliance code from byte 94 of the
// information page. A non-zero value declares digital diagnostic support
// even when the monitoring type byte does not.
type Compliance byte

func (c Compliance) String() string {
	var t = [...]string{
		0x00: "not specified",
		0x01: "SFF-8472 rev 9.3",
		0x02: "SFF-8472 rev 9.5",
		0x03: "SFF-8472 rev 10.2",
		0x04: "SFF-8472 rev 10.4",
		0x05: "SFF-8472 rev 11.0",
		0x06: "SFF-8472 rev 11.3",
		0x07: "SFF-8472 rev 11.4",
		0x08: "SFF-8472 rev 12.3",
		0x09: "SFF-8472 rev 12.4",
	}
	return lookup(t[:], int(c))
}

func lookup(t []string, i int) string {
	if i < len(t) && t[i] != "" {
		return t[i]
	}
	return fmt.Sprintf("unknown (%#02x)", i)
}
