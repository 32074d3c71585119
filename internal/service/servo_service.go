// internal/service/servo_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"servo-service/internal/driver/lss"
	"servo-service/internal/utils"
	"servo-service/pkg/driver"
)

// ServoService orchestrates driver operations for the HTTP and WebSocket
// surfaces. It owns no protocol state; serialization of the shared line is
// the session's job. Every operation gets a uuid for log correlation.
type ServoService struct {
	controller driver.ServoController
	logger     *zap.Logger
}

// NewServoService creates a new servo service
func NewServoService(controller driver.ServoController, logger *zap.Logger) *ServoService {
	return &ServoService{
		controller: controller,
		logger:     logger.With(zap.String("service", "servo")),
	}
}

// MoveRequest describes one positional move. Optional fields become command
// modifiers, applied in the order speed, time, current hold, current limp.
type MoveRequest struct {
	Degrees       float32 `json:"degrees" binding:"required"`
	Relative      bool    `json:"relative"`
	SpeedDegrees  *uint32 `json:"speed_dps,omitempty"`
	TimeMS        *uint32 `json:"time_ms,omitempty"`
	CurrentHoldMA *uint32 `json:"current_hold_ma,omitempty"`
	CurrentLimpMA *uint32 `json:"current_limp_ma,omitempty"`
}

func (r MoveRequest) modifiers() []lss.CommandModifier {
	var mods []lss.CommandModifier
	if r.SpeedDegrees != nil {
		mods = append(mods, lss.SpeedDegrees(*r.SpeedDegrees))
	}
	if r.TimeMS != nil {
		mods = append(mods, lss.Timed(*r.TimeMS))
	}
	if r.CurrentHoldMA != nil {
		mods = append(mods, lss.CurrentHold(*r.CurrentHoldMA))
	}
	if r.CurrentLimpMA != nil {
		mods = append(mods, lss.CurrentLimp(*r.CurrentLimpMA))
	}
	return mods
}

// ConfigRequest updates session configuration of one servo.
// Only the supplied fields are written.
type ConfigRequest struct {
	MotionProfile           *bool    `json:"motion_profile,omitempty"`
	AngularStiffness        *int32   `json:"angular_stiffness,omitempty"`
	AngularHoldingStiffness *int32   `json:"angular_holding_stiffness,omitempty"`
	FilterPositionCount     *int32   `json:"filter_position_count,omitempty"`
	LedBlinking             []string `json:"led_blinking,omitempty"`
}

// Move moves a servo to a position, absolute or relative
func (s *ServoService) Move(ctx context.Context, id int, req MoveRequest) (*driver.OperationResult, error) {
	return s.run(ctx, "move", id, func(ctx context.Context) error {
		if req.Relative {
			return s.controller.MoveRelative(ctx, lss.DeviceID(id), req.Degrees, req.modifiers()...)
		}
		return s.controller.MoveToPositionWithModifiers(ctx, lss.DeviceID(id), req.Degrees, req.modifiers()...)
	})
}

// SetLed sets the LED color by name
func (s *ServoService) SetLed(ctx context.Context, id int, colorName string) (*driver.OperationResult, error) {
	color, err := ParseLedColorName(colorName)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, "set_led", id, func(ctx context.Context) error {
		return s.controller.SetColor(ctx, lss.DeviceID(id), color)
	})
}

// Limp makes the servo go limp
func (s *ServoService) Limp(ctx context.Context, id int) (*driver.OperationResult, error) {
	return s.run(ctx, "limp", id, func(ctx context.Context) error {
		return s.controller.Limp(ctx, lss.DeviceID(id))
	})
}

// Hold stops the servo and holds the current position
func (s *ServoService) Hold(ctx context.Context, id int) (*driver.OperationResult, error) {
	return s.run(ctx, "hold", id, func(ctx context.Context) error {
		return s.controller.HaltHold(ctx, lss.DeviceID(id))
	})
}

// Reset soft-resets the servo
func (s *ServoService) Reset(ctx context.Context, id int) (*driver.OperationResult, error) {
	return s.run(ctx, "reset", id, func(ctx context.Context) error {
		return s.controller.ResetServo(ctx, lss.DeviceID(id))
	})
}

// Configure applies the supplied configuration fields one by one.
// The first failing write aborts the rest; no rollback is attempted since
// servo configuration is not transactional.
func (s *ServoService) Configure(ctx context.Context, id int, req ConfigRequest) (*driver.OperationResult, error) {
	blink, err := parseBlinkNames(req.LedBlinking)
	if err != nil {
		return nil, err
	}

	return s.run(ctx, "configure", id, func(ctx context.Context) error {
		servoID := lss.DeviceID(id)
		if req.MotionProfile != nil {
			if err := s.controller.SetMotionProfile(ctx, servoID, *req.MotionProfile); err != nil {
				return err
			}
		}
		if req.AngularStiffness != nil {
			if err := s.controller.SetAngularStiffness(ctx, servoID, *req.AngularStiffness); err != nil {
				return err
			}
		}
		if req.AngularHoldingStiffness != nil {
			if err := s.controller.SetAngularHoldingStiffness(ctx, servoID, *req.AngularHoldingStiffness); err != nil {
				return err
			}
		}
		if req.FilterPositionCount != nil {
			if err := s.controller.SetFilterPositionCount(ctx, servoID, *req.FilterPositionCount); err != nil {
				return err
			}
		}
		if req.LedBlinking != nil {
			if err := s.controller.SetLedBlinking(ctx, servoID, blink); err != nil {
				return err
			}
		}
		return nil
	})
}

// Telemetry reads a full telemetry snapshot. The queries run back to back on
// the shared line; the session serializes them against other callers.
func (s *ServoService) Telemetry(ctx context.Context, id int) (*driver.Telemetry, error) {
	servoID := lss.DeviceID(id)

	voltage, err := s.controller.QueryVoltage(ctx, servoID)
	if err != nil {
		return nil, err
	}
	temperature, err := s.controller.QueryTemperature(ctx, servoID)
	if err != nil {
		return nil, err
	}
	current, err := s.controller.QueryCurrent(ctx, servoID)
	if err != nil {
		return nil, err
	}
	position, err := s.controller.QueryPosition(ctx, servoID)
	if err != nil {
		return nil, err
	}

	return &driver.Telemetry{
		ServoID:     id,
		Voltage:     voltage,
		Temperature: temperature,
		Current:     current,
		Position:    position,
		Timestamp:   time.Now(),
	}, nil
}

// Status reads the motion and safety state
func (s *ServoService) Status(ctx context.Context, id int) (*driver.ServoStatus, error) {
	servoID := lss.DeviceID(id)

	status, err := s.controller.QueryStatus(ctx, servoID)
	if err != nil {
		return nil, err
	}
	safety, err := s.controller.QuerySafetyStatus(ctx, servoID)
	if err != nil {
		return nil, err
	}

	return &driver.ServoStatus{
		ServoID: id,
		Status:  status.String(),
		Safety:  safety.String(),
	}, nil
}

// Info reads the model identifier
func (s *ServoService) Info(ctx context.Context, id int) (*driver.ServoInfo, error) {
	model, err := s.controller.QueryModel(ctx, lss.DeviceID(id))
	if err != nil {
		return nil, err
	}
	return &driver.ServoInfo{ServoID: id, Model: model.String()}, nil
}

// Position reads the current position in degrees
func (s *ServoService) Position(ctx context.Context, id int) (float32, error) {
	return s.controller.QueryPosition(ctx, lss.DeviceID(id))
}

// run executes one actuation operation with operation-scoped logging
func (s *ServoService) run(ctx context.Context, operationType string, id int, op func(context.Context) error) (*driver.OperationResult, error) {
	operationID := uuid.NewString()
	opLogger := utils.NewOperationLogger(s.logger, operationType, operationID)
	opLogger.Start(zap.Int("servo_id", id))

	start := time.Now()
	if err := op(ctx); err != nil {
		opLogger.Error(err)
		return nil, err
	}

	opLogger.Success()
	return &driver.OperationResult{
		OperationID: operationID,
		Success:     true,
		Duration:    time.Since(start),
		Timestamp:   time.Now(),
	}, nil
}

// ParseLedColorName maps a color name to its protocol value
func ParseLedColorName(name string) (lss.LedColor, error) {
	colors := map[string]lss.LedColor{
		"off":     lss.LedOff,
		"red":     lss.LedRed,
		"green":   lss.LedGreen,
		"blue":    lss.LedBlue,
		"yellow":  lss.LedYellow,
		"cyan":    lss.LedCyan,
		"magenta": lss.LedMagenta,
		"white":   lss.LedWhite,
	}
	color, ok := colors[name]
	if !ok {
		return lss.LedOff, fmt.Errorf("unknown led color %q", name)
	}
	return color, nil
}

func parseBlinkNames(names []string) ([]lss.LedBlink, error) {
	conditions := map[string]lss.LedBlink{
		"none":         lss.BlinkNone,
		"limp":         lss.BlinkLimp,
		"holding":      lss.BlinkHolding,
		"accelerating": lss.BlinkAccelerating,
		"decelerating": lss.BlinkDecelerating,
		"free":         lss.BlinkFree,
		"traveling":    lss.BlinkTraveling,
		"always":       lss.BlinkAlways,
	}

	var result []lss.LedBlink
	for _, name := range names {
		condition, ok := conditions[name]
		if !ok {
			return nil, fmt.Errorf("unknown blink condition %q", name)
		}
		result = append(result, condition)
	}
	return result, nil
}
