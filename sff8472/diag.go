package sff8472

// DiagPage is the 256 byte diagnostic monitoring page (A2h).
type DiagPage [256]byte

// Internal calibration conversions to °C, V, mA and mW. The high byte of a
// temperature field is signed; everything else is a plain big-endian uint16
// under a fixed scale.
func temperature(hi, lo byte) float64 { return float64(int8(hi)) + float64(lo)/256 }
func voltage(v uint16) float64        { return float64(v) / 10000 }
func biasCurrent(v uint16) float64    { return float64(v) / 500 }
func power(v uint16) float64          { return float64(v) / 10000 }

func (p *DiagPage) u16(off int) uint16 {
	return uint16(p[off])<<8 | uint16(p[off+1])
}

// Readings are the five live diagnostic channels converted to physical
// units: degrees Celsius, volts, milliamperes and milliwatts.
type Readings struct {
	Temperature float64
	Voltage     float64
	BiasCurrent float64
	TxPower     float64
	RxPower     float64
}

// Readings converts the live measurement block.
func (p *DiagPage) Readings() Readings {
	return Readings{
		Temperature: p.Temperature(),
		Voltage:     p.Voltage(),
		BiasCurrent: p.BiasCurrent(),
		TxPower:     p.TxPower(),
		RxPower:     p.RxPower(),
	}
}

// Temperature returns the module temperature in degrees Celsius.
func (p *DiagPage) Temperature() float64 {
	return temperature(p[ReadingsOffset], p[ReadingsOffset+1])
}

// Voltage returns the supply voltage in volts.
func (p *DiagPage) Voltage() float64 { return voltage(p.u16(ReadingsOffset + 2)) }

// BiasCurrent returns the transmitter bias current in mA.
func (p *DiagPage) BiasCurrent() float64 { return biasCurrent(p.u16(ReadingsOffset + 4)) }

// TxPower returns the transmitted optical power in mW.
func (p *DiagPage) TxPower() float64 { return power(p.u16(ReadingsOffset + 6)) }

// RxPower returns the received optical power in mW.
func (p *DiagPage) RxPower() float64 { return power(p.u16(ReadingsOffset + 8)) }

// Threshold is one channel's alarm and warning limits.
type Threshold struct {
	Alarm, Warning struct{ High, Low float64 }
}

// Thresholds are the calibrated limits for all five channels, in the same
// units as Readings.
type Thresholds struct {
	Temperature Threshold
	Voltage     Threshold
	BiasCurrent Threshold
	TxPower     Threshold
	RxPower     Threshold
}

// Thresholds converts the threshold block at the start of the page.
func (p *DiagPage) Thresholds() Thresholds {
	signed := func(off int) float64 { return temperature(p[off], p[off+1]) }
	scaled := func(conv func(uint16) float64) func(int) float64 {
		return func(off int) float64 { return conv(p.u16(off)) }
	}
	return Thresholds{
		Temperature: p.threshold(offThresholds, signed),
		Voltage:     p.threshold(offThresholds+8, scaled(voltage)),
		BiasCurrent: p.threshold(offThresholds+16, scaled(biasCurrent)),
		TxPower:     p.threshold(offThresholds+24, scaled(power)),
		RxPower:     p.threshold(offThresholds+32, scaled(power)),
	}
}

// threshold decodes one channel's four limits: high alarm, low alarm, high
// warning, low warning, two bytes each.
func (p *DiagPage) threshold(off int, conv func(int) float64) Threshold {
	var t Threshold
	t.Alarm.High = conv(off)
	t.Alarm.Low = conv(off + 2)
	t.Warning.High = conv(off + 4)
	t.Warning.Low = conv(off + 6)
	return t
}

// DataReady reports whether the module has finished power up and the
// measurement fields are valid.
func (p *DiagPage) DataReady() bool { return p[offStatusControl]&scDataReadyBar == 0 }

// RxLOS reports the received loss-of-signal state.
func (p *DiagPage) RxLOS() bool { return p[offStatusControl]&scRxLOS != 0 }

// TxFault reports the transmitter fault state.
func (p *DiagPage) TxFault() bool { return p[offStatusControl]&scTxFault != 0 }

// TxDisabled reports the transmitter disable state.
func (p *DiagPage) TxDisabled() bool { return p[offStatusControl]&scTxDisable != 0 }
