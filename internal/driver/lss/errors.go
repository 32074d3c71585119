// internal/driver/lss/errors.go
package lss

import (
	"errors"
	"fmt"
)

// Transport-level failures. These are sentinel values so callers can use errors.Is
// to decide on retry policy; the driver never retries on its own.
var (
	// ErrTimeout is returned when no frame delimiter arrives within the configured deadline
	ErrTimeout = errors.New("operation timed out")

	// ErrFailedOpeningSerialPort is returned when the serial port cannot be acquired
	ErrFailedOpeningSerialPort = errors.New("failed to open serial port")

	// ErrSending is returned when writing a frame to the port fails. The session
	// should be considered suspect after this error.
	ErrSending = errors.New("failed to write to serial port")
)

// PacketParsingError reports bytes that do not match the protocol grammar,
// or a wire integer outside a closed enumeration. The offending raw text is
// kept for diagnostics.
type PacketParsingError struct {
	Raw    string
	Reason string
}

func (e *PacketParsingError) Error() string {
	if e.Raw == "" {
		return fmt.Sprintf("failed to parse packet: %s", e.Reason)
	}
	return fmt.Sprintf("failed to parse packet: %s (raw %q)", e.Reason, e.Raw)
}

// newParseError creates a PacketParsingError with a formatted reason
func newParseError(raw string, format string, args ...interface{}) error {
	return &PacketParsingError{Raw: raw, Reason: fmt.Sprintf(format, args...)}
}

// InvalidAddressError reports a device id outside the addressable range.
// It is detected before any bytes touch the wire.
type InvalidAddressError struct {
	ID int
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("device id %d outside valid range 0-%d", e.ID, BroadcastID)
}

// InvalidCommandUsageError reports a command built with arguments its catalogue
// entry does not allow. It is detected before any bytes touch the wire.
type InvalidCommandUsageError struct {
	Code   string
	Reason string
}

func (e *InvalidCommandUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s: %s", e.Code, e.Reason)
}
