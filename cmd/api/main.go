// TeamFlow auth API entrypoint. Wires configuration, storage, the audit
// pipeline, and the HTTP router, then serves until interrupted.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VenkateshW22/teamflow-api/internal/api"
	"github.com/VenkateshW22/teamflow-api/internal/api/middleware"
	"github.com/VenkateshW22/teamflow-api/internal/core/service"
	"github.com/VenkateshW22/teamflow-api/internal/core/token"
	"github.com/VenkateshW22/teamflow-api/internal/infrastructure/config"
	mongodb "github.com/VenkateshW22/teamflow-api/internal/infrastructure/db/mongo"
	redisdb "github.com/VenkateshW22/teamflow-api/internal/infrastructure/db/redis"
	"github.com/VenkateshW22/teamflow-api/internal/infrastructure/queue"
	"github.com/VenkateshW22/teamflow-api/pkg/logger"
)

// @title        TeamFlow Auth API
// @version      1.0
// @description  Stateless JWT authentication service for TeamFlow.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Serving traffic without a signing secret would accept forged
		// tokens, so configuration failures are fatal.
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("configuration failed")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongodb index setup failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// Audit pipeline: sharded workers persisting auth events to Mongo.
	auditService := service.NewAuditService(mongodb.NewAuditRepository(db), logger.For("audit"))
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, logger.For("audit"))
	dispatcher.Start(ctx)

	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL, cfg.TokenLeeway)
	throttle := redisdb.NewSignInThrottle(rdb, cfg.SignInMaxFailures, cfg.SignInWindow)

	e := api.NewRouter(db, rdb, api.RouterConfig{
		Codec:    codec,
		Policy:   middleware.DefaultPolicy(),
		Throttle: throttle,
	}, dispatcher, logger.For("http"))

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
