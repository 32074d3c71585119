// internal/driver/lss/modifier.go
package lss

import (
	"strconv"
	"strings"
	"time"
)

// CommandModifier is a wire-format suffix refining how the servo executes a
// command. Modifiers are appended in caller-supplied order; the order is
// significant to the servo and is preserved exactly.
type CommandModifier struct {
	tag   string
	value int64
	empty bool
}

// Speed sets motion speed in microseconds per second. Only meaningful on P commands.
func Speed(speed uint32) CommandModifier {
	return CommandModifier{tag: "S", value: int64(speed)}
}

// SpeedDegrees sets motion speed in degrees per second. Meaningful on D and MD commands.
func SpeedDegrees(speed uint32) CommandModifier {
	return CommandModifier{tag: "SD", value: int64(speed)}
}

// Timed makes the move take the given number of milliseconds
func Timed(ms uint32) CommandModifier {
	return CommandModifier{tag: "T", value: int64(ms)}
}

// TimedDuration is Timed with a time.Duration, rounded down to milliseconds
func TimedDuration(d time.Duration) CommandModifier {
	return CommandModifier{tag: "T", value: d.Milliseconds()}
}

// CurrentHold makes the servo halt and hold when the given current (mA) is reached
func CurrentHold(ma uint32) CommandModifier {
	return CommandModifier{tag: "CH", value: int64(ma)}
}

// CurrentLimp makes the servo go limp when the given current (mA) is reached
func CurrentLimp(ma uint32) CommandModifier {
	return CommandModifier{tag: "CL", value: int64(ma)}
}

// NoModifier encodes to nothing. It lets callers pass a modifier slot without
// changing the frame.
func NoModifier() CommandModifier {
	return CommandModifier{empty: true}
}

// Custom is an escape hatch for modifiers this library does not model yet.
// The tag is emitted verbatim with no validation; the caller is responsible
// for producing something the firmware understands.
func Custom(tag string, value int32) CommandModifier {
	return CommandModifier{tag: tag, value: int64(value)}
}

// Encode returns the exact wire suffix for this modifier
func (m CommandModifier) Encode() string {
	if m.empty {
		return ""
	}
	return m.tag + strconv.FormatInt(m.value, 10)
}

// EncodeModifiers concatenates modifier suffixes with no separator,
// preserving input order
func EncodeModifiers(modifiers []CommandModifier) string {
	var sb strings.Builder
	for _, m := range modifiers {
		sb.WriteString(m.Encode())
	}
	return sb.String()
}
