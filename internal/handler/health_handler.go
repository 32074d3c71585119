// internal/handler/health_handler.go
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"servo-service/internal/config"
	"servo-service/internal/utils"
)

// BusProbe reports whether the serial line behind the service is open
type BusProbe interface {
	IsOpen() bool
}

// HealthHandler serves liveness and readiness endpoints
type HealthHandler struct {
	config    *config.Config
	bus       BusProbe
	logger    *zap.Logger
	startTime time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(cfg *config.Config, bus BusProbe, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		config:    cfg,
		bus:       bus,
		logger:    logger.With(zap.String("handler", "health")),
		startTime: time.Now(),
	}
}

// HealthCheck handles GET /health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Service healthy", gin.H{
		"service":     h.config.App.Name,
		"version":     h.config.App.Version,
		"environment": h.config.App.Environment,
		"uptime":      time.Since(h.startTime).String(),
		"serial_open": h.bus.IsOpen(),
	})
}

// LivenessCheck handles GET /live
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Alive", nil)
}

// ReadinessCheck handles GET /ready. The service is ready when the serial
// line is open; servo-level reachability is left to per-servo status reads.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	if !h.bus.IsOpen() {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "Serial port not open", nil)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Ready", nil)
}
