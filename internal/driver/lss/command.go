// internal/driver/lss/command.go
package lss

// DeviceID is the address of a single servo on the shared line, or the
// broadcast address.
type DeviceID int

// BroadcastID addresses every servo on the line. Broadcast frames never
// produce a response.
const BroadcastID DeviceID = 254

// Valid reports whether the id can be encoded into a frame
func (id DeviceID) Valid() bool {
	return id >= 0 && id <= BroadcastID
}

// Command is one entry of the protocol's opcode catalogue. Each entry records
// whether the command carries a value, whether modifier suffixes are allowed,
// and whether the servo answers with a reply frame.
//
// The catalogue is append-only: new opcodes may be added, existing ones are
// never redefined. That keeps wire compatibility with deployed firmware.
type Command struct {
	code       string
	takesValue bool
	modifiable bool
	replies    bool
}

// Code returns the opcode text as it appears on the wire
func (c Command) Code() string { return c.code }

// TakesValue reports whether the command carries a decimal value
func (c Command) TakesValue() bool { return c.takesValue }

// Modifiable reports whether modifier suffixes are allowed
func (c Command) Modifiable() bool { return c.modifiable }

// ExpectsReply reports whether the servo answers this command
func (c Command) ExpectsReply() bool { return c.replies }

// The command catalogue, following the LSS communication protocol.
var (
	// Queries. All reply, none carry a value in the request.
	QueryStatus              = Command{code: "Q", replies: true}
	QuerySafetyStatus        = Command{code: "Q1", replies: true}
	QueryPositionDegrees     = Command{code: "QD", replies: true}
	QueryVoltage             = Command{code: "QV", replies: true}
	QueryTemperature         = Command{code: "QT", replies: true}
	QueryCurrent             = Command{code: "QC", replies: true}
	QueryLedColor            = Command{code: "QLED", replies: true}
	QueryModelString         = Command{code: "QMS", replies: true}
	QueryMotionProfile       = Command{code: "QEM", replies: true}
	QueryAngularStiffness    = Command{code: "QAS", replies: true}
	QueryAngularHolding      = Command{code: "QAH", replies: true}
	QueryFilterPositionCount = Command{code: "QFPC", replies: true}

	// Actuation. Pure actions; the servo stays silent.
	MoveDegrees         = Command{code: "D", takesValue: true, modifiable: true}
	MoveDegreesRelative = Command{code: "MD", takesValue: true, modifiable: true}
	WheelModeDegrees    = Command{code: "WD", takesValue: true, modifiable: true}
	WheelModeRPM        = Command{code: "WR", takesValue: true, modifiable: true}
	Limp                = Command{code: "L"}
	HaltHold            = Command{code: "H"}
	Reset               = Command{code: "RESET"}

	// Session configuration. Applied immediately, no reply.
	SetLedColor            = Command{code: "LED", takesValue: true}
	SetMotionProfile       = Command{code: "EM", takesValue: true}
	SetAngularStiffness    = Command{code: "AS", takesValue: true}
	SetAngularHolding      = Command{code: "AH", takesValue: true}
	SetFilterPositionCount = Command{code: "FPC", takesValue: true}
	SetLedBlinking         = Command{code: "CLB", takesValue: true}
)
