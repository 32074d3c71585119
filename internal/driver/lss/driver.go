// internal/driver/lss/driver.go
package lss

import (
	"context"
	"math"

	"go.uber.org/zap"
)

// Driver exposes the typed, intent-level operations of the servo protocol.
// All unit scaling lives here; the codec below it deals in raw wire integers
// only. The driver performs no retries of its own.
type Driver struct {
	session *Session
	logger  *zap.Logger
}

// NewDriver creates a driver over an existing session
func NewDriver(session *Session, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		session: session,
		logger:  logger.With(zap.String("component", "lss_driver")),
	}
}

// act sends a command that carries no value and expects no reply
func (d *Driver) act(ctx context.Context, id DeviceID, cmd Command) error {
	_, err := d.session.Exchange(ctx, Plain(id, cmd))
	return err
}

// set sends a value-carrying command that expects no reply
func (d *Driver) set(ctx context.Context, id DeviceID, cmd Command, value int32, modifiers ...CommandModifier) error {
	_, err := d.session.Exchange(ctx, WithValue(id, cmd, value, modifiers...))
	return err
}

// queryInt runs a query and interprets the reply payload as a decimal
func (d *Driver) queryInt(ctx context.Context, id DeviceID, cmd Command) (int32, error) {
	reply, err := d.session.Exchange(ctx, Plain(id, cmd))
	if err != nil {
		return 0, err
	}
	return reply.IntValue()
}

// SetColor sets the color of the servo LED
func (d *Driver) SetColor(ctx context.Context, id DeviceID, color LedColor) error {
	return d.set(ctx, id, SetLedColor, color.WireValue())
}

// QueryColor reads the current LED color
func (d *Driver) QueryColor(ctx context.Context, id DeviceID) (LedColor, error) {
	value, err := d.queryInt(ctx, id, QueryLedColor)
	if err != nil {
		return LedOff, err
	}
	return LedColorFromWire(value)
}

// SetLedBlinking selects which motor states blink the LED
func (d *Driver) SetLedBlinking(ctx context.Context, id DeviceID, conditions []LedBlink) error {
	return d.set(ctx, id, SetLedBlinking, int32(CombineBlink(conditions)))
}

// MoveToPosition moves the servo to an absolute position in degrees.
// The wire carries tenths of a degree.
func (d *Driver) MoveToPosition(ctx context.Context, id DeviceID, degrees float32) error {
	return d.MoveToPositionWithModifiers(ctx, id, degrees)
}

// MoveToPositionWithModifiers moves to an absolute position with modifier
// suffixes such as SpeedDegrees or Timed, applied in the given order
func (d *Driver) MoveToPositionWithModifiers(ctx context.Context, id DeviceID, degrees float32, modifiers ...CommandModifier) error {
	return d.set(ctx, id, MoveDegrees, tenths(degrees), modifiers...)
}

// MoveRelative moves the servo by an angle relative to its current position
func (d *Driver) MoveRelative(ctx context.Context, id DeviceID, degrees float32, modifiers ...CommandModifier) error {
	return d.set(ctx, id, MoveDegreesRelative, tenths(degrees), modifiers...)
}

// QueryPosition reads the current position in degrees
func (d *Driver) QueryPosition(ctx context.Context, id DeviceID) (float32, error) {
	value, err := d.queryInt(ctx, id, QueryPositionDegrees)
	if err != nil {
		return 0, err
	}
	return float32(value) / 10.0, nil
}

// SetRotationSpeedDegrees switches the servo to wheel mode at the given
// speed in degrees per second
func (d *Driver) SetRotationSpeedDegrees(ctx context.Context, id DeviceID, speed float32, modifiers ...CommandModifier) error {
	return d.set(ctx, id, WheelModeDegrees, tenths(speed), modifiers...)
}

// SetRotationSpeedRPM switches the servo to wheel mode at the given speed in RPM
func (d *Driver) SetRotationSpeedRPM(ctx context.Context, id DeviceID, rpm int32, modifiers ...CommandModifier) error {
	return d.set(ctx, id, WheelModeRPM, rpm, modifiers...)
}

// QueryVoltage reads the input voltage in volts. The wire carries millivolts.
func (d *Driver) QueryVoltage(ctx context.Context, id DeviceID) (float32, error) {
	value, err := d.queryInt(ctx, id, QueryVoltage)
	if err != nil {
		return 0, err
	}
	return float32(value) / 1000.0, nil
}

// QueryTemperature reads the temperature in degrees Celsius.
// The wire carries tenths of a degree.
func (d *Driver) QueryTemperature(ctx context.Context, id DeviceID) (float32, error) {
	value, err := d.queryInt(ctx, id, QueryTemperature)
	if err != nil {
		return 0, err
	}
	return float32(value) / 10.0, nil
}

// QueryCurrent reads the motor current in amps. The wire carries milliamps.
func (d *Driver) QueryCurrent(ctx context.Context, id DeviceID) (float32, error) {
	value, err := d.queryInt(ctx, id, QueryCurrent)
	if err != nil {
		return 0, err
	}
	return float32(value) / 1000.0, nil
}

// QueryStatus reads the motion status of the motor
func (d *Driver) QueryStatus(ctx context.Context, id DeviceID) (MotorStatus, error) {
	value, err := d.queryInt(ctx, id, QueryStatus)
	if err != nil {
		return StatusUnknown, err
	}
	return MotorStatusFromWire(value)
}

// QuerySafetyStatus reads why safety mode is engaged. When QueryStatus does
// not report StatusSafeMode this is SafetyNoLimits.
func (d *Driver) QuerySafetyStatus(ctx context.Context, id DeviceID) (SafeModeStatus, error) {
	value, err := d.queryInt(ctx, id, QuerySafetyStatus)
	if err != nil {
		return SafetyNoLimits, err
	}
	return SafeModeStatusFromWire(value)
}

// QueryModel reads the product identifier. Unknown identifiers come back as
// ModelOther rather than an error.
func (d *Driver) QueryModel(ctx context.Context, id DeviceID) (Model, error) {
	reply, err := d.session.Exchange(ctx, Plain(id, QueryModelString))
	if err != nil {
		return Model{}, err
	}
	return ParseModel(reply.TextValue()), nil
}

// Limp makes the servo go limp. It will not resist external movement.
func (d *Driver) Limp(ctx context.Context, id DeviceID) error {
	return d.act(ctx, id, Limp)
}

// HaltHold stops the servo and holds the current position
func (d *Driver) HaltHold(ctx context.Context, id DeviceID) error {
	return d.act(ctx, id, HaltHold)
}

// ResetServo soft-resets the servo. The servo drops off the line while it
// reboots, so follow-up commands should allow for that.
func (d *Driver) ResetServo(ctx context.Context, id DeviceID) error {
	return d.act(ctx, id, Reset)
}

// SetMotionProfile enables or disables the trapezoidal motion profile.
// With the profile off, filter position count smooths motion instead.
func (d *Driver) SetMotionProfile(ctx context.Context, id DeviceID, enabled bool) error {
	var value int32
	if enabled {
		value = 1
	}
	return d.set(ctx, id, SetMotionProfile, value)
}

// QueryMotionProfile reads whether the motion profile is enabled
func (d *Driver) QueryMotionProfile(ctx context.Context, id DeviceID) (bool, error) {
	value, err := d.queryInt(ctx, id, QueryMotionProfile)
	if err != nil {
		return false, err
	}
	return value != 0, nil
}

// SetAngularStiffness sets the angular stiffness, -10 to 10
func (d *Driver) SetAngularStiffness(ctx context.Context, id DeviceID, stiffness int32) error {
	return d.set(ctx, id, SetAngularStiffness, stiffness)
}

// QueryAngularStiffness reads the angular stiffness
func (d *Driver) QueryAngularStiffness(ctx context.Context, id DeviceID) (int32, error) {
	return d.queryInt(ctx, id, QueryAngularStiffness)
}

// SetAngularHoldingStiffness sets how strongly the servo holds position, -10 to 10
func (d *Driver) SetAngularHoldingStiffness(ctx context.Context, id DeviceID, stiffness int32) error {
	return d.set(ctx, id, SetAngularHolding, stiffness)
}

// QueryAngularHoldingStiffness reads the angular holding stiffness
func (d *Driver) QueryAngularHoldingStiffness(ctx context.Context, id DeviceID) (int32, error) {
	return d.queryInt(ctx, id, QueryAngularHolding)
}

// SetFilterPositionCount sets how many position samples are averaged when the
// motion profile is disabled
func (d *Driver) SetFilterPositionCount(ctx context.Context, id DeviceID, count int32) error {
	return d.set(ctx, id, SetFilterPositionCount, count)
}

// QueryFilterPositionCount reads the filter position count
func (d *Driver) QueryFilterPositionCount(ctx context.Context, id DeviceID) (int32, error) {
	return d.queryInt(ctx, id, QueryFilterPositionCount)
}

// Close releases the session and its port
func (d *Driver) Close() error {
	return d.session.Close()
}

func tenths(degrees float32) int32 {
	return int32(math.Round(float64(degrees) * 10))
}
