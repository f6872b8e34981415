package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"minitweet/internal/config"
	"minitweet/internal/handler"
	"minitweet/internal/httpserver"
	"minitweet/internal/repository"
	"minitweet/internal/service/auth"
	"minitweet/internal/service/social"
	"minitweet/internal/service/timeline"
	"minitweet/internal/service/tweet"
	"minitweet/pkg/circuitbreaker"
	pkgconfig "minitweet/pkg/config"
	"minitweet/pkg/db"
	"minitweet/pkg/logger"
	"minitweet/pkg/mq"
	redisclient "minitweet/pkg/redis"
	"minitweet/pkg/util"
)

func main() {
	log := logger.NewLogger(pkgconfig.GetEnv("LOG_LEVEL", "info"))
	defer log.Sync()

	// Load config
	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	ctx := context.Background()

	// Init DB
	dbConn, err := db.NewConnection(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	// Init Repositories
	userRepo := repository.NewUserRepository(dbConn)
	tweetRepo := repository.NewTweetRepository(dbConn)
	followRepo := repository.NewFollowRepository(dbConn)

	// Init Services
	authService := auth.NewService(userRepo, util.BcryptHasher{Cost: util.DefaultBcryptCost}, cfg.JWT.Secret, cfg.JWT.TTL, log)
	tweetService := tweet.NewService(tweetRepo, cfg.Tweet.MaxLength, log)
	socialService := social.NewService(followRepo, log)
	timelineService := timeline.NewService(tweetRepo)

	// Redis (optional): enables logout
	if cfg.Redis.Addr != "" {
		rdb, err := redisclient.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Redis initialization failed", zap.Error(err))
		}
		defer rdb.Close()
		authService.WithRevocation(redisclient.NewTokenDenylist(rdb))
		log.Info("Token revocation enabled", zap.String("redis_addr", cfg.Redis.Addr))
	}

	// RabbitMQ (optional): domain events
	if cfg.MQ.URL != "" {
		publisher, err := mq.NewPublisher(cfg.MQ.URL)
		if err != nil {
			log.Fatal("Failed to init MQ publisher", zap.Error(err))
		}
		defer publisher.Close()

		events := mq.NewGuardedPublisher(publisher, circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig()), log)
		authService.WithEvents(events)
		tweetService.WithEvents(events)
		socialService.WithEvents(events)
		log.Info("Event publishing enabled", zap.String("exchange", mq.ExchangeName))
	}

	// Init Handlers
	authHandler := handler.NewAuthHandler(authService, log)
	tweetHandler := handler.NewTweetHandler(tweetService, timelineService, log)
	followHandler := handler.NewFollowHandler(socialService, log)
	healthHandler := handler.NewHealthHandler(dbConn)

	// Router
	router := httpserver.NewRouter(authHandler, tweetHandler, followHandler, healthHandler, authService, log)
	srv := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: router.Engine,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}
}
