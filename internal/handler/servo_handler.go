// internal/handler/servo_handler.go
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"servo-service/internal/driver/lss"
	"servo-service/internal/service"
	"servo-service/internal/utils"
	"servo-service/pkg/driver"
)

// ServoHandler exposes the driver facade over HTTP
type ServoHandler struct {
	servoService *service.ServoService
	logger       *zap.Logger
}

// NewServoHandler creates a new servo handler
func NewServoHandler(servoService *service.ServoService, logger *zap.Logger) *ServoHandler {
	return &ServoHandler{
		servoService: servoService,
		logger:       logger.With(zap.String("handler", "servo")),
	}
}

// LedRequest selects a color by name
type LedRequest struct {
	Color string `json:"color" binding:"required"`
}

// Move handles POST /servos/:servo_id/move
func (h *ServoHandler) Move(c *gin.Context) {
	id, ok := h.servoID(c)
	if !ok {
		return
	}

	var req service.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid move request", err)
		return
	}

	result, err := h.servoService.Move(c.Request.Context(), id, req)
	if err != nil {
		h.respondDriverError(c, "Move failed", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Move accepted", result)
}

// SetLed handles POST /servos/:servo_id/led
func (h *ServoHandler) SetLed(c *gin.Context) {
	id, ok := h.servoID(c)
	if !ok {
		return
	}

	var req LedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid led request", err)
		return
	}

	result, err := h.servoService.SetLed(c.Request.Context(), id, req.Color)
	if err != nil {
		h.respondDriverError(c, "Setting led color failed", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Led color set", result)
}

// Limp handles POST /servos/:servo_id/limp
func (h *ServoHandler) Limp(c *gin.Context) {
	h.action(c, "Limp", h.servoService.Limp)
}

// Hold handles POST /servos/:servo_id/hold
func (h *ServoHandler) Hold(c *gin.Context) {
	h.action(c, "Hold", h.servoService.Hold)
}

// Reset handles POST /servos/:servo_id/reset
func (h *ServoHandler) Reset(c *gin.Context) {
	h.action(c, "Reset", h.servoService.Reset)
}

// Configure handles PUT /servos/:servo_id/config
func (h *ServoHandler) Configure(c *gin.Context) {
	id, ok := h.servoID(c)
	if !ok {
		return
	}

	var req service.ConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid config request", err)
		return
	}

	result, err := h.servoService.Configure(c.Request.Context(), id, req)
	if err != nil {
		h.respondDriverError(c, "Configure failed", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Configuration applied", result)
}

// Telemetry handles GET /servos/:servo_id/telemetry
func (h *ServoHandler) Telemetry(c *gin.Context) {
	id, ok := h.servoID(c)
	if !ok {
		return
	}

	telemetry, err := h.servoService.Telemetry(c.Request.Context(), id)
	if err != nil {
		h.respondDriverError(c, "Telemetry read failed", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Telemetry read", telemetry)
}

// Status handles GET /servos/:servo_id/status
func (h *ServoHandler) Status(c *gin.Context) {
	id, ok := h.servoID(c)
	if !ok {
		return
	}

	status, err := h.servoService.Status(c.Request.Context(), id)
	if err != nil {
		h.respondDriverError(c, "Status read failed", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Status read", status)
}

// Info handles GET /servos/:servo_id/info
func (h *ServoHandler) Info(c *gin.Context) {
	id, ok := h.servoID(c)
	if !ok {
		return
	}

	info, err := h.servoService.Info(c.Request.Context(), id)
	if err != nil {
		h.respondDriverError(c, "Model read failed", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Model read", info)
}

// Position handles GET /servos/:servo_id/position
func (h *ServoHandler) Position(c *gin.Context) {
	id, ok := h.servoID(c)
	if !ok {
		return
	}

	position, err := h.servoService.Position(c.Request.Context(), id)
	if err != nil {
		h.respondDriverError(c, "Position read failed", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Position read", gin.H{
		"servo_id":     id,
		"position_deg": position,
	})
}

// action runs one bodyless actuation endpoint
func (h *ServoHandler) action(c *gin.Context, name string, op func(ctx context.Context, id int) (*driver.OperationResult, error)) {
	id, ok := h.servoID(c)
	if !ok {
		return
	}

	result, err := op(c.Request.Context(), id)
	if err != nil {
		h.respondDriverError(c, name+" failed", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, name+" accepted", result)
}

// servoID parses the :servo_id path parameter. Range errors surface from the
// codec as InvalidAddressError before any bytes are written.
func (h *ServoHandler) servoID(c *gin.Context) (int, bool) {
	id, err := servoIDParam(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid servo id", err)
		return 0, false
	}
	return id, true
}

func servoIDParam(c *gin.Context) (int, error) {
	return strconv.Atoi(c.Param("servo_id"))
}

// respondDriverError maps the driver error taxonomy onto HTTP statuses
func (h *ServoHandler) respondDriverError(c *gin.Context, message string, err error) {
	var addrErr *lss.InvalidAddressError
	var usageErr *lss.InvalidCommandUsageError
	var parseErr *lss.PacketParsingError

	switch {
	case errors.As(err, &addrErr), errors.As(err, &usageErr):
		utils.ErrorResponse(c, http.StatusBadRequest, message, err)
	case errors.Is(err, lss.ErrTimeout):
		utils.ErrorResponse(c, http.StatusGatewayTimeout, message, err)
	case errors.As(err, &parseErr):
		utils.ErrorResponse(c, http.StatusBadGateway, message, err)
	case errors.Is(err, lss.ErrSending):
		utils.ErrorResponse(c, http.StatusServiceUnavailable, message, err)
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, message, err)
	}

	h.logger.Warn("Servo request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
}
