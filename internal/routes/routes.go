// internal/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"servo-service/internal/config"
	"servo-service/internal/handler"
	"servo-service/internal/middleware"
	"servo-service/internal/service"
	"servo-service/internal/utils"
)

// Router holds all dependencies for routing
type Router struct {
	config       *config.Config
	logger       *zap.Logger
	servoService *service.ServoService
	bus          handler.BusProbe
}

// NewRouter creates a new router instance
func NewRouter(
	config *config.Config,
	logger *zap.Logger,
	servoService *service.ServoService,
	bus handler.BusProbe,
) *Router {
	return &Router{
		config:       config,
		logger:       logger,
		servoService: servoService,
		bus:          bus,
	}
}

// SetupRouter creates and configures the Gin router
func (r *Router) SetupRouter() *gin.Engine {
	if r.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	r.addMiddleware(router)
	r.addRoutes(router)

	return router
}

// addMiddleware adds middleware to the router
func (r *Router) addMiddleware(router *gin.Engine) {
	router.Use(middleware.RecoveryMiddleware(r.logger))
	router.Use(middleware.RequestIDMiddleware())

	serviceLogger := utils.NewServiceLogger(r.logger, "http-server")
	router.Use(middleware.LoggingMiddleware(serviceLogger))

	router.Use(middleware.CORSMiddleware(&r.config.Security))

	r.logger.Info("Middleware configured")
}

// addRoutes sets up all application routes
func (r *Router) addRoutes(router *gin.Engine) {
	healthHandler := handler.NewHealthHandler(r.config, r.bus, r.logger)
	servoHandler := handler.NewServoHandler(r.servoService, r.logger)
	telemetryHandler := handler.NewTelemetryWSHandler(r.servoService, r.config.Servo.TelemetryInterval, r.logger)

	// Health check routes
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/live", healthHandler.LivenessCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	r.addServoRoutes(apiV1, servoHandler)

	// WebSocket routes
	ws := router.Group("/ws")
	{
		ws.GET("/servos/:servo_id/telemetry", telemetryHandler.HandleServoTelemetry)
	}

	r.logger.Info("All routes configured successfully")
}

// addServoRoutes sets up servo control routes
func (r *Router) addServoRoutes(api *gin.RouterGroup, servoHandler *handler.ServoHandler) {
	servos := api.Group("/servos")
	{
		servo := servos.Group("/:servo_id")
		{
			// Actuation
			servo.POST("/move", servoHandler.Move)
			servo.POST("/limp", servoHandler.Limp)
			servo.POST("/hold", servoHandler.Hold)
			servo.POST("/reset", servoHandler.Reset)

			// LED and configuration
			servo.POST("/led", servoHandler.SetLed)
			servo.PUT("/config", servoHandler.Configure)

			// Queries
			servo.GET("/telemetry", servoHandler.Telemetry)
			servo.GET("/status", servoHandler.Status)
			servo.GET("/position", servoHandler.Position)
			servo.GET("/info", servoHandler.Info)
		}
	}
}
