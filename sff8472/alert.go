package sff8472

// Condition enumerates the ten alarm/warning conditions in their flag bit
// order: condition i lives in bit 7-(i%8) of flag byte i/8.
type Condition int

const (
	TemperatureHigh Condition = iota
	TemperatureLow
	VoltageHigh
	VoltageLow
	BiasHigh
	BiasLow
	TxPowerHigh
	TxPowerLow
	RxPowerHigh
	RxPowerLow
	nConditions
)

func (c Condition) String() string {
	var t = [...]string{
		TemperatureHigh: "temperature high",
		TemperatureLow:  "temperature low",
		VoltageHigh:     "voltage high",
		VoltageLow:      "voltage low",
		BiasHigh:        "tx bias high",
		BiasLow:         "tx bias low",
		TxPowerHigh:     "tx power high",
		TxPowerLow:      "tx power low",
		RxPowerHigh:     "rx power high",
		RxPowerLow:      "rx power low",
	}
	return lookup(t[:], int(c))
}

// Severity distinguishes a warning from an alarm.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityAlarm
)

func (s Severity) String() string {
	if s == SeverityAlarm {
		return "alarm"
	}
	return "warning"
}

// Alert is one raised condition with its severity.
type Alert struct {
	Condition Condition
	Severity  Severity
}

func (a Alert) String() string { return a.Condition.String() + " " + a.Severity.String() }

func (p *DiagPage) flag(base int, c Condition) bool {
	return p[base+int(c)/8]&(1<<uint(7-int(c)%8)) != 0
}

// AlarmSet reports whether the alarm flag for c is raised.
func (p *DiagPage) AlarmSet(c Condition) bool { return p.flag(offAlarmFlags, c) }

// WarningSet reports whether the warning flag for c is raised.
func (p *DiagPage) WarningSet(c Condition) bool { return p.flag(offWarningFlags, c) }

// Alarms returns the raised alarm conditions in flag order.
func (p *DiagPage) Alarms() []Condition {
	var out []Condition
	for c := Condition(0); c < nConditions; c++ {
		if p.AlarmSet(c) {
			out = append(out, c)
		}
	}
	return out
}

// Warnings returns the raised warning conditions in flag order, including
// ones whose alarm is also raised.
func (p *DiagPage) Warnings() []Condition {
	var out []Condition
	for c := Condition(0); c < nConditions; c++ {
		if p.WarningSet(c) {
			out = append(out, c)
		}
	}
	return out
}

// Alerts returns a flat priority-ordered list of raised conditions: alarms
// first, then warnings whose condition is not already alarming. Callers
// needing both states of the same condition should use Alarms and Warnings.
func (p *DiagPage) Alerts() []Alert {
	var out []Alert
	for c := Condition(0); c < nConditions; c++ {
		if p.AlarmSet(c) {
			out = append(out, Alert{c, SeverityAlarm})
		}
	}
	for c := Condition(0); c < nConditions; c++ {
		if p.WarningSet(c) && !p.AlarmSet(c) {
			out = append(out, Alert{c, SeverityWarning})
		}
	}
	return out
}
