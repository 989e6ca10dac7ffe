package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/credilinea/intake-system/docs"
	"github.com/credilinea/intake-system/internal/api/handler"
	"github.com/credilinea/intake-system/internal/api/middleware"
	"github.com/credilinea/intake-system/internal/core/domain"
	"github.com/credilinea/intake-system/internal/core/ports"
	"github.com/credilinea/intake-system/internal/core/service"
	"github.com/credilinea/intake-system/internal/infrastructure/config"
	mongodb "github.com/credilinea/intake-system/internal/infrastructure/db/mongo"
	redisdb "github.com/credilinea/intake-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit recorder is passed in because its worker pool is lifecycle-managed
// by the caller.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditRecorder, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("intake"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	denylist := redisdb.NewDenylist(rdb)

	authService := service.NewAuthService(userRepo, denylist, cfg.JWTSecret, cfg.AdminEmail, cfg.TokenTTL, log)
	clientService := service.NewClientService(clientRepo, audit, log)
	userService := service.NewUserService(userRepo, audit, cfg.AdminEmail, log)

	authHandler := handler.NewAuthHandler(authService)
	clientHandler := handler.NewClientHandler(clientService)
	userHandler := handler.NewUserHandler(userService)
	auditHandler := handler.NewAuditHandler(auditRepo)

	authMiddleware := middleware.Auth(cfg.JWTSecret, denylist)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)

	// --- Client intake (agents and admins) ---
	clients := e.Group("/clients", authMiddleware, middleware.RBAC(domain.RoleAgent, domain.RoleAdmin))
	clients.POST("", clientHandler.Create)
	clients.GET("", clientHandler.List)
	clients.DELETE("/:id", clientHandler.Delete, middleware.RBAC(domain.RoleAdmin))

	// --- Administration ---
	admin := e.Group("", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", userHandler.List)
	admin.PUT("/users/:id/role", userHandler.SetRole)
	admin.GET("/audit", auditHandler.List)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
