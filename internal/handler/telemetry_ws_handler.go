// internal/handler/telemetry_ws_handler.go
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"servo-service/internal/service"
	"servo-service/internal/utils"
)

// TelemetryWSHandler streams periodic telemetry snapshots over WebSocket.
// Each connected client gets its own polling loop; the session below
// serializes the resulting queries on the shared line.
type TelemetryWSHandler struct {
	servoService *service.ServoService
	interval     time.Duration
	logger       *zap.Logger
	upgrader     websocket.Upgrader
}

// TelemetryMessage is one frame pushed to the client
type TelemetryMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewTelemetryWSHandler creates a new telemetry WebSocket handler
func NewTelemetryWSHandler(servoService *service.ServoService, interval time.Duration, logger *zap.Logger) *TelemetryWSHandler {
	if interval <= 0 {
		interval = time.Second
	}
	return &TelemetryWSHandler{
		servoService: servoService,
		interval:     interval,
		logger:       logger.With(zap.String("handler", "telemetry_ws")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// CORS policy is enforced by the HTTP middleware
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleServoTelemetry handles GET /ws/servos/:servo_id/telemetry
func (h *TelemetryWSHandler) HandleServoTelemetry(c *gin.Context) {
	id, err := servoIDParam(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid servo id", err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	logger := utils.NewServoLogger(h.logger, id)
	logger.Info("Telemetry stream opened",
		zap.String("client", conn.RemoteAddr().String()),
	)

	// reader goroutine: detect client close
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			logger.Info("Telemetry stream closed by client")
			return
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
			message := h.snapshot(c, id)
			if err := conn.WriteJSON(message); err != nil {
				logger.Debug("Telemetry write failed, closing stream", zap.Error(err))
				return
			}
		}
	}
}

// snapshot polls the servo once. Read failures are reported in-band so a
// transient timeout does not tear down the stream.
func (h *TelemetryWSHandler) snapshot(c *gin.Context, id int) TelemetryMessage {
	telemetry, err := h.servoService.Telemetry(c.Request.Context(), id)
	if err != nil {
		return TelemetryMessage{
			Type:      "error",
			Error:     err.Error(),
			Timestamp: time.Now(),
		}
	}
	return TelemetryMessage{
		Type:      "telemetry",
		Data:      telemetry,
		Timestamp: time.Now(),
	}
}
