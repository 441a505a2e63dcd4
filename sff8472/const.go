package sff8472

// Module information page (A0h) byte offsets.
const (
	offIdentifier     = 0
	offExtIdentifier  = 1
	offConnector      = 2
	offTransceiver    = 3 // 8 bytes of compliance codes
	offEncoding       = 11
	offNominalRate    = 12 // units of 100 Mb/s
	offLengthSMFKm    = 14
	offLengthSMF      = 15 // units of 100 m
	offLengthOM2      = 16 // units of 10 m
	offLengthOM1      = 17 // units of 10 m
	offLengthCopper   = 18 // units of 1 m
	offLengthOM3      = 19 // units of 10 m
	offVendorName     = 20 // 16 bytes ASCII
	offVendorOUI      = 37 // 3 bytes
	offPartNumber     = 40 // 16 bytes ASCII
	offRevision       = 56 // 4 bytes ASCII
	offWavelength     = 60 // 2 bytes, nm
	offOptions        = 64 // 2 bytes
	offRateMax        = 66 // upper bit rate margin, %
	offRateMin        = 67 // lower bit rate margin, %
	offSerialNumber   = 68 // 16 bytes ASCII
	offDateCode       = 84 // 8 bytes ASCII
	offMonitoringType = 92
	offEnhancedOpts   = 93
	offCompliance     = 94
)

// Diagnostic monitoring type flags (info page byte 92).
const (
	mtAddressChange byte = 1 << 2
	mtExternalCal   byte = 1 << 4
	mtInternalCal   byte = 1 << 5
	mtImplemented   byte = 1 << 6
)

// Diagnostic page (A2h) byte offsets. Thresholds occupy bytes 0-39 in the
// channel order temperature, voltage, bias, tx power, rx power; each channel
// holds high alarm, low alarm, high warning, low warning as big-endian 16
// bit fields.
const (
	offThresholds    = 0
	offStatusControl = 110
	offAlarmFlags    = 112
	offWarningFlags  = 116
)

// Live measurement block of the diagnostic page. ReadingsOffset and
// ReadingsLength delimit the byte range a partial refresh replaces: the five
// measurement fields plus the status and alarm/warning flag bytes.
const (
	ReadingsOffset = 96
	ReadingsLength = 22
)

// Status/control byte (diagnostic page byte 110) flags.
const (
	scDataReadyBar byte = 1 << 0
	scRxLOS        byte = 1 << 1
	scTxFault      byte = 1 << 2
	scTxDisable    byte = 1 << 7
)
