package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/homehub/household-api/docs"
	"github.com/homehub/household-api/internal/api/handler"
	"github.com/homehub/household-api/internal/api/middleware"
	"github.com/homehub/household-api/internal/core/domain"
	"github.com/homehub/household-api/internal/core/ports"
	"github.com/homehub/household-api/internal/core/service"
	"github.com/homehub/household-api/internal/infrastructure/config"
	mongodb "github.com/homehub/household-api/internal/infrastructure/db/mongo"
	redisdb "github.com/homehub/household-api/internal/infrastructure/db/redis"
	"github.com/homehub/household-api/internal/infrastructure/http/handlers"
	"github.com/homehub/household-api/internal/infrastructure/monitoring"
	"github.com/homehub/household-api/internal/infrastructure/queue"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Background workers started here stop when ctx is cancelled.
func NewRouter(ctx context.Context, db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("household"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL, cfg.JWTRefreshTTL)
	authService := service.NewAuthService(userRepo, tokenService)

	var notifier ports.MonitoringNotifier
	if cfg.MonitoringURL != "" {
		dispatcher := queue.NewDispatcher(0, monitoring.NewClient(cfg.MonitoringURL), log)
		dispatcher.Start(ctx)
		notifier = dispatcher
	}
	resetGuard := redisdb.NewResetCodeGuard(rdb)
	userService := service.NewUserService(userRepo, notifier, resetGuard, cfg.ResetCode, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	authenticate := middleware.Authenticate(authService)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	ownerOrAdmin := middleware.RequireOwnershipOrAdmin()

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout, authenticate)

	// --- Internal verification routes ---
	internal := e.Group("/api/internal")
	internal.GET("/verify", authHandler.Verify, authenticate)
	internal.GET("/verify-admin", authHandler.Verify, authenticate, adminOnly)

	// --- Household user routes ---
	users := e.Group("/api/household-users", authenticate)
	users.GET("", userHandler.List, adminOnly)
	users.POST("", userHandler.Create, adminOnly)
	users.GET("/:id", userHandler.Get, ownerOrAdmin)
	users.PUT("/:id/username", userHandler.UpdateUsername, ownerOrAdmin)
	users.PUT("/:id/password", userHandler.UpdatePassword, ownerOrAdmin)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Admin routes (reset-code guarded, no token required) ---
	e.POST("/api/admin/reset-password", userHandler.ResetAdminPassword)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability / docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
