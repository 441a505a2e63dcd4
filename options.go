package sfp

// An Option configures a device.
type Option func(d *Device) Option

// OnAddr can be used to specify an alternative module base address. By
// default, the address is 0xA0.
func OnAddr(addr byte) Option {
	return func(d *Device) Option {
		old := d.addr
		d.addr = addr
		return OnAddr(old)
	}
}

// WithPortOffset can be used to shift the switch bit the port index maps
// to. By default, port 0 maps to switch bit 8.
func WithPortOffset(offset int) Option {
	return func(d *Device) Option {
		old := d.portOffset
		d.portOffset = offset
		return WithPortOffset(old)
	}
}

// WithSwitchAddrs can be used to specify the addresses of the two cascaded
// bus switch chips. By default, the low and high chips answer at 0x70 and
// 0x71.
func WithSwitchAddrs(low, high byte) Option {
	return func(d *Device) Option {
		oldLow, oldHigh := d.switchLow, d.switchHigh
		d.switchLow = low
		d.switchHigh = high
		return WithSwitchAddrs(oldLow, oldHigh)
	}
}

// WithLogger can be used to receive leveled diagnostic and alarm text from
// the driver. By default, output is discarded.
func WithLogger(log Logger) Option {
	return func(d *Device) Option {
		old := d.log
		if log == nil {
			log = nopLogger{}
		}
		d.log = log
		return WithLogger(old)
	}
}
