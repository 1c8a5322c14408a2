package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/userhub/account-api/internal/api/handler"
	"github.com/userhub/account-api/internal/api/middleware"
	"github.com/userhub/account-api/internal/core/domain"
	"github.com/userhub/account-api/internal/core/service"
	mongodb "github.com/userhub/account-api/internal/infrastructure/db/mongo"
	redisdb "github.com/userhub/account-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(mgr *mongodb.Manager, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(mgr)
	throttle := redisdb.NewLoginThrottle(rdb)

	userService := service.NewUserService(userRepo, log)
	authService := service.NewAuthService(userRepo, throttle, jwtSecret, 24*time.Hour, log)

	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService)
	requireAuth := middleware.Auth(jwtSecret)
	requireAdmin := middleware.RBAC(string(domain.RoleAdmin))

	// --- User routes ---
	e.POST("/users", userHandler.Create)
	e.GET("/users", userHandler.List, requireAuth, requireAdmin)
	e.GET("/users/health", userHandler.Health)
	e.GET("/users/email/:email", userHandler.GetByEmail)
	e.GET("/users/:user_id", userHandler.Get)
	e.PUT("/users/:user_id/change-password", userHandler.ChangePassword)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(mgr, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
