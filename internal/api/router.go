package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	_ "github.com/wophi/wophi-api/docs"
	"github.com/wophi/wophi-api/internal/api/handler"
	"github.com/wophi/wophi-api/internal/api/middleware"
	"github.com/wophi/wophi-api/internal/core/ports"
	"github.com/wophi/wophi-api/internal/core/service"
	"github.com/wophi/wophi-api/internal/infrastructure/db/postgres"
	wophiredis "github.com/wophi/wophi-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Collaborators are constructed here once and passed down explicitly; there
// is no ambient registry.
func NewRouter(db *gorm.DB, rdb *goredis.Client, almaClient ports.AlmaClient, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("wophi"))
	e.Use(echomiddleware.RateLimiter(echomiddleware.NewRateLimiterMemoryStore(rate.Limit(20))))

	// --- Dependencies ---
	userStore := postgres.NewUserRepository(db)
	taskStore := postgres.NewTaskRepository(db)

	var guard service.SignupGuard
	if rdb != nil {
		guard = wophiredis.NewSignupGuard(rdb)
	}

	userService := service.NewUserService(almaClient, userStore, guard, log)
	taskService := service.NewTaskService(taskStore, log)

	userHandler := handler.NewUserHandler(userService)
	taskHandler := handler.NewTaskHandler(taskService)
	authMiddleware := middleware.Auth(jwtSecret)

	// --- Public routes ---
	e.POST("/v1/users", userHandler.Register)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", authMiddleware)
	v1.GET("/users/me", userHandler.Me)
	v1.PATCH("/users/me", userHandler.Update)
	v1.DELETE("/users/me", userHandler.Delete)
	v1.POST("/tasks", taskHandler.Create)
	v1.GET("/tasks", taskHandler.List)

	// --- Ops endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
