package sfp

const (
	// Module information EEPROM base address; the diagnostic EEPROM
	// answers at base+2.
	defaultAddr byte = 0xA0

	// Bus switch chips gating the module slots. The low chip carries
	// switch bits 0-7, the high chip bits 8-15.
	defaultSwitchLow  byte = 0x70
	defaultSwitchHigh byte = 0x71

	// Module ports start at switch bit 8 on the reference carrier.
	defaultPortOffset = 8

	pageSize = 256
)
