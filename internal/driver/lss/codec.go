// internal/driver/lss/codec.go
package lss

import (
	"strconv"
	"strings"
)

// Wire framing. Requests open with '#', replies with '*', both end with '\r'.
// There is no checksum; framing relies solely on the delimiter. This mirrors
// the hardware protocol and is not open for revision.
const (
	requestMarker  = '#'
	replyMarker    = '*'
	FrameDelimiter = '\r'
)

// Frame is one outgoing command: device id, catalogue entry, optional value
// and ordered modifier suffixes. Frames are built fresh per call and have no
// identity beyond a single exchange.
type Frame struct {
	ID        DeviceID
	Command   Command
	Value     *int32
	Modifiers []CommandModifier
}

// WithValue is a convenience constructor for value-carrying frames
func WithValue(id DeviceID, cmd Command, value int32, modifiers ...CommandModifier) Frame {
	return Frame{ID: id, Command: cmd, Value: &value, Modifiers: modifiers}
}

// Plain is a convenience constructor for frames without a value
func Plain(id DeviceID, cmd Command) Frame {
	return Frame{ID: id, Command: cmd}
}

// expectsReply reports whether an exchange for this frame should await a
// response. Broadcast suppresses the reply regardless of the catalogue entry.
func (f Frame) expectsReply() bool {
	return f.Command.ExpectsReply() && f.ID != BroadcastID
}

// Encode serializes the frame into wire bytes:
//
//	'#' + decimal id + opcode + optional signed value + modifier suffixes + '\r'
//
// Encode is pure and deterministic; identical frames always produce identical
// bytes. Caller-side misuse (bad address, value mismatch, modifiers on a
// non-modifiable command) is rejected before any I/O happens.
func (f Frame) Encode() ([]byte, error) {
	if !f.ID.Valid() {
		return nil, &InvalidAddressError{ID: int(f.ID)}
	}
	if f.Command.TakesValue() && f.Value == nil {
		return nil, &InvalidCommandUsageError{Code: f.Command.Code(), Reason: "command requires a value"}
	}
	if !f.Command.TakesValue() && f.Value != nil {
		return nil, &InvalidCommandUsageError{Code: f.Command.Code(), Reason: "command does not carry a value"}
	}
	if !f.Command.Modifiable() {
		for _, m := range f.Modifiers {
			if m.Encode() != "" {
				return nil, &InvalidCommandUsageError{Code: f.Command.Code(), Reason: "command does not accept modifiers"}
			}
		}
	}

	var sb strings.Builder
	sb.WriteByte(requestMarker)
	sb.WriteString(strconv.Itoa(int(f.ID)))
	sb.WriteString(f.Command.Code())
	if f.Value != nil {
		sb.WriteString(strconv.FormatInt(int64(*f.Value), 10))
	}
	sb.WriteString(EncodeModifiers(f.Modifiers))
	sb.WriteByte(FrameDelimiter)
	return []byte(sb.String()), nil
}

// Reply is a parsed response frame. The payload is kept raw; numeric
// interpretation happens at access time because some queries (model string)
// answer with text rather than a decimal.
type Reply struct {
	ID      DeviceID
	Command Command
	payload string
	raw     string
}

// ParseReply decodes a response frame for the given command. Replies echo the
// device id and opcode of the request, so the expected catalogue entry is part
// of the contract. Parsing is strict: any grammar violation yields a
// PacketParsingError carrying the raw text, never a partial result.
// Resynchronization on a noisy line is the session's job, not the codec's.
func ParseReply(data []byte, cmd Command) (*Reply, error) {
	raw := string(data)
	if len(raw) == 0 {
		return nil, newParseError(raw, "empty frame")
	}
	if raw[len(raw)-1] != FrameDelimiter {
		return nil, newParseError(raw, "missing frame delimiter")
	}
	body := raw[:len(raw)-1]
	if len(body) == 0 || body[0] != replyMarker {
		return nil, newParseError(raw, "missing reply marker")
	}
	rest := body[1:]

	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return nil, newParseError(raw, "non-numeric device id")
	}
	id, err := strconv.Atoi(rest[:digits])
	if err != nil || id > int(BroadcastID) {
		return nil, newParseError(raw, "device id out of range")
	}

	rest = rest[digits:]
	if !strings.HasPrefix(rest, cmd.Code()) {
		return nil, newParseError(raw, "unexpected command code, want %s", cmd.Code())
	}

	return &Reply{
		ID:      DeviceID(id),
		Command: cmd,
		payload: rest[len(cmd.Code()):],
		raw:     raw,
	}, nil
}

// IntValue interprets the payload as a signed decimal. A non-numeric or empty
// payload is a parse error, never a silent zero.
func (r *Reply) IntValue() (int32, error) {
	value, err := strconv.ParseInt(r.payload, 10, 32)
	if err != nil {
		return 0, newParseError(r.raw, "non-numeric value %q", r.payload)
	}
	return int32(value), nil
}

// TextValue returns the payload verbatim, for queries that answer with text
func (r *Reply) TextValue() string {
	return r.payload
}
