package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/smarttodo/tasks-api/docs"
	"github.com/smarttodo/tasks-api/internal/api/handler"
	"github.com/smarttodo/tasks-api/internal/api/middleware"
	"github.com/smarttodo/tasks-api/internal/core/domain"
	"github.com/smarttodo/tasks-api/internal/core/ports"
)

// Dependencies bundles what the router needs from the composition root.
type Dependencies struct {
	AuthService      ports.AuthService
	UserService      ports.UserService
	TaskService      ports.TaskService
	AnalyticsService ports.AnalyticsService
	Store            handler.StorePinger
	JWTSecret        string
	Logger           zerolog.Logger

	// Registerer and Gatherer back the HTTP request metrics. Nil means the
	// Prometheus default registry, where the store and task metrics live.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "smarttodo",
		Registerer: deps.Registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	userHandler := handler.NewUserHandler(deps.AuthService, deps.UserService)
	taskHandler := handler.NewTaskHandler(deps.TaskService)
	adminHandler := handler.NewAdminHandler(deps.AnalyticsService)
	healthHandler := handler.NewHealthHandler(deps.Store)

	requireAuth := middleware.Auth(deps.JWTSecret)
	requireAdmin := middleware.RBAC(domain.RoleAdmin)

	// --- Health probes and tooling (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – is the store reachable?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Auth and account routes ---
	api.POST("/auth/login", authHandler.Login)

	users := api.Group("/users")
	users.POST("/signup", userHandler.Signup)
	users.POST("/reset-password", userHandler.ResetPassword)
	users.GET("/profile", userHandler.Profile, requireAuth)
	users.PUT("/profile", userHandler.UpdateProfile, requireAuth)

	// --- Task routes (scoped to the caller) ---
	tasks := api.Group("/tasks", requireAuth)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.PUT("/subtasks/:subtaskId", taskHandler.UpdateSubtask)
	tasks.DELETE("/subtasks/:subtaskId", taskHandler.DeleteSubtask)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)
	tasks.POST("/:id/subtasks", taskHandler.AddSubtask)

	// --- Admin routes ---
	admin := api.Group("/admin", requireAuth, requireAdmin)
	admin.GET("/users", adminHandler.Users)
	admin.GET("/users/:id/activity", adminHandler.UserActivity)
	admin.GET("/analytics", adminHandler.Analytics)

	return e
}

// requestLogger logs one line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil || v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
