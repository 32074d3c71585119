// pkg/driver/interfaces.go
package driver

import (
	"context"

	"servo-service/internal/driver/lss"
)

// ServoController is the contract boundary between the protocol driver and
// the surrounding tooling. The service layer and handlers talk to this
// interface only; *lss.Driver is the production implementation.
type ServoController interface {
	// Actuation
	MoveToPositionWithModifiers(ctx context.Context, id lss.DeviceID, degrees float32, modifiers ...lss.CommandModifier) error
	MoveRelative(ctx context.Context, id lss.DeviceID, degrees float32, modifiers ...lss.CommandModifier) error
	SetRotationSpeedDegrees(ctx context.Context, id lss.DeviceID, speed float32, modifiers ...lss.CommandModifier) error
	SetRotationSpeedRPM(ctx context.Context, id lss.DeviceID, rpm int32, modifiers ...lss.CommandModifier) error
	Limp(ctx context.Context, id lss.DeviceID) error
	HaltHold(ctx context.Context, id lss.DeviceID) error
	ResetServo(ctx context.Context, id lss.DeviceID) error

	// LED
	SetColor(ctx context.Context, id lss.DeviceID, color lss.LedColor) error
	QueryColor(ctx context.Context, id lss.DeviceID) (lss.LedColor, error)
	SetLedBlinking(ctx context.Context, id lss.DeviceID, conditions []lss.LedBlink) error

	// Telemetry queries
	QueryPosition(ctx context.Context, id lss.DeviceID) (float32, error)
	QueryVoltage(ctx context.Context, id lss.DeviceID) (float32, error)
	QueryTemperature(ctx context.Context, id lss.DeviceID) (float32, error)
	QueryCurrent(ctx context.Context, id lss.DeviceID) (float32, error)
	QueryStatus(ctx context.Context, id lss.DeviceID) (lss.MotorStatus, error)
	QuerySafetyStatus(ctx context.Context, id lss.DeviceID) (lss.SafeModeStatus, error)
	QueryModel(ctx context.Context, id lss.DeviceID) (lss.Model, error)

	// Session configuration
	SetMotionProfile(ctx context.Context, id lss.DeviceID, enabled bool) error
	QueryMotionProfile(ctx context.Context, id lss.DeviceID) (bool, error)
	SetAngularStiffness(ctx context.Context, id lss.DeviceID, stiffness int32) error
	SetAngularHoldingStiffness(ctx context.Context, id lss.DeviceID, stiffness int32) error
	SetFilterPositionCount(ctx context.Context, id lss.DeviceID, count int32) error

	Close() error
}
