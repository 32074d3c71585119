// internal/driver/lss/types.go
package lss

import "strings"

// LedColor is the color of the RGB LED on the servo
type LedColor int32

const (
	LedOff LedColor = iota
	LedRed
	LedGreen
	LedBlue
	LedYellow
	LedCyan
	LedMagenta
	LedWhite
)

// LedColorFromWire decodes the wire integer into a LedColor.
// Any value outside the known set is rejected with a PacketParsingError.
func LedColorFromWire(value int32) (LedColor, error) {
	switch value {
	case 0:
		return LedOff, nil
	case 1:
		return LedRed, nil
	case 2:
		return LedGreen, nil
	case 3:
		return LedBlue, nil
	case 4:
		return LedYellow, nil
	case 5:
		return LedCyan, nil
	case 6:
		return LedMagenta, nil
	case 7:
		return LedWhite, nil
	default:
		return LedOff, newParseError("", "failed parsing LedColor from %d", value)
	}
}

// WireValue returns the integer the servo uses for this color
func (c LedColor) WireValue() int32 { return int32(c) }

func (c LedColor) String() string {
	switch c {
	case LedOff:
		return "off"
	case LedRed:
		return "red"
	case LedGreen:
		return "green"
	case LedBlue:
		return "blue"
	case LedYellow:
		return "yellow"
	case LedCyan:
		return "cyan"
	case LedMagenta:
		return "magenta"
	case LedWhite:
		return "white"
	default:
		return "unknown"
	}
}

// MotorStatus is the motion state reported by the status query.
// If the status is StatusSafeMode, QuerySafetyStatus gives the reason.
type MotorStatus int32

const (
	StatusUnknown MotorStatus = iota
	StatusLimp
	StatusFreeMoving
	StatusAccelerating
	StatusTraveling
	StatusDecelerating
	StatusHolding
	StatusOutsideLimits
	StatusStuck
	StatusBlocked
	StatusSafeMode
)

// MotorStatusFromWire decodes the wire integer into a MotorStatus.
// Any value outside the known set is rejected with a PacketParsingError.
func MotorStatusFromWire(value int32) (MotorStatus, error) {
	if value < int32(StatusUnknown) || value > int32(StatusSafeMode) {
		return StatusUnknown, newParseError("", "failed parsing MotorStatus from %d", value)
	}
	return MotorStatus(value), nil
}

// WireValue returns the integer the servo uses for this status
func (s MotorStatus) WireValue() int32 { return int32(s) }

func (s MotorStatus) String() string {
	names := [...]string{
		"unknown", "limp", "free_moving", "accelerating", "traveling",
		"decelerating", "holding", "outside_limits", "stuck", "blocked", "safe_mode",
	}
	if s < 0 || int(s) >= len(names) {
		return "unknown"
	}
	return names[s]
}

// SafeModeStatus is the reason safety mode is engaged.
// When the motor is not in safety mode this is SafetyNoLimits.
type SafeModeStatus int32

const (
	SafetyNoLimits SafeModeStatus = iota
	// SafetyCurrentLimit usually means the motor was overloaded
	SafetyCurrentLimit
	// SafetyVoltageOutOfRange means input voltage is too high or too low
	SafetyVoltageOutOfRange
	SafetyTemperatureLimit
)

// SafeModeStatusFromWire decodes the wire integer into a SafeModeStatus.
// Any value outside the known set is rejected with a PacketParsingError.
func SafeModeStatusFromWire(value int32) (SafeModeStatus, error) {
	if value < int32(SafetyNoLimits) || value > int32(SafetyTemperatureLimit) {
		return SafetyNoLimits, newParseError("", "failed parsing SafeModeStatus from %d", value)
	}
	return SafeModeStatus(value), nil
}

// WireValue returns the integer the servo uses for this safety status
func (s SafeModeStatus) WireValue() int32 { return int32(s) }

func (s SafeModeStatus) String() string {
	names := [...]string{"no_limits", "current_limit", "voltage_out_of_range", "temperature_limit"}
	if s < 0 || int(s) >= len(names) {
		return "unknown"
	}
	return names[s]
}

// ModelKind identifies a known servo product line
type ModelKind int

const (
	// ModelST1 is the standard model
	ModelST1 ModelKind = iota
	// ModelHS1 is the high speed model
	ModelHS1
	// ModelHT1 is the high torque model
	ModelHT1
	// ModelOther is any identifier this library does not know about.
	// Model strings are free text in the protocol, so unknown models are
	// allowed; unknown status codes are not.
	ModelOther
)

// Model is the product identifier reported by the model query
type Model struct {
	Kind ModelKind
	// Raw carries the identifier exactly as received
	Raw string
}

// ParseModel is total: unrecognized strings map to ModelOther instead of failing
func ParseModel(text string) Model {
	switch text {
	case "LSS-ST1":
		return Model{Kind: ModelST1, Raw: text}
	case "LSS-HS1":
		return Model{Kind: ModelHS1, Raw: text}
	case "LSS-HT1":
		return Model{Kind: ModelHT1, Raw: text}
	default:
		return Model{Kind: ModelOther, Raw: text}
	}
}

func (m Model) String() string { return m.Raw }

// LedBlink selects which motor states should blink the LED.
// Values combine as a bitmask.
type LedBlink int32

const (
	BlinkNone         LedBlink = 0
	BlinkLimp         LedBlink = 1
	BlinkHolding      LedBlink = 2
	BlinkAccelerating LedBlink = 4
	BlinkDecelerating LedBlink = 8
	BlinkFree         LedBlink = 16
	BlinkTraveling    LedBlink = 32
	BlinkAlways       LedBlink = 63
)

// CombineBlink ORs a list of blink conditions into one wire value
func CombineBlink(conditions []LedBlink) LedBlink {
	var combined LedBlink
	for _, c := range conditions {
		combined |= c
	}
	return combined
}

func (b LedBlink) String() string {
	if b == BlinkNone {
		return "none"
	}
	if b == BlinkAlways {
		return "always"
	}
	var parts []string
	for _, entry := range []struct {
		bit  LedBlink
		name string
	}{
		{BlinkLimp, "limp"},
		{BlinkHolding, "holding"},
		{BlinkAccelerating, "accelerating"},
		{BlinkDecelerating, "decelerating"},
		{BlinkFree, "free"},
		{BlinkTraveling, "traveling"},
	} {
		if b&entry.bit != 0 {
			parts = append(parts, entry.name)
		}
	}
	return strings.Join(parts, "|")
}
