package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/VenkateshW22/teamflow-api/docs"
	"github.com/VenkateshW22/teamflow-api/internal/api/handler"
	"github.com/VenkateshW22/teamflow-api/internal/api/middleware"
	"github.com/VenkateshW22/teamflow-api/internal/core/ports"
	"github.com/VenkateshW22/teamflow-api/internal/core/service"
	"github.com/VenkateshW22/teamflow-api/internal/core/token"
	mongodb "github.com/VenkateshW22/teamflow-api/internal/infrastructure/db/mongo"
	redisdb "github.com/VenkateshW22/teamflow-api/internal/infrastructure/db/redis"
	"github.com/VenkateshW22/teamflow-api/internal/infrastructure/http/handlers"
)

// RouterConfig carries the knobs the router needs beyond its collaborators.
type RouterConfig struct {
	Codec    *token.Codec
	Policy   []middleware.Rule
	Throttle *redisdb.SignInThrottle
}

// NewRouter builds and returns the Echo instance with all routes registered.
//
// Middleware order matters: the authentication filter must populate the
// identity context before the authorization policy inspects it, and both run
// before any handler.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg RouterConfig, audit ports.AuditRecorder, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("teamflow"))
	e.Use(middleware.Authenticate(cfg.Codec, log))

	policy := cfg.Policy
	if policy == nil {
		policy = middleware.DefaultPolicy()
	}
	e.Use(middleware.Authorize(policy))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	var throttle service.SignInThrottle
	if cfg.Throttle != nil {
		throttle = cfg.Throttle
	}
	authService := service.NewAuthService(userRepo, cfg.Codec, throttle, audit, log)
	authHandler := handler.NewAuthHandler(authService)

	// --- Auth routes ---
	e.POST("/api/auth/signin", authHandler.SignIn)
	e.POST("/api/auth/signup", authHandler.SignUp)
	e.GET("/api/auth/me", authHandler.Me)

	// --- Health probes (public per policy) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/api/health", healthHandler.Liveness)        // legacy alias kept for the frontend
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
