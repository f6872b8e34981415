package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"minitweet/internal/config"
	"minitweet/migrations"
	pkgconfig "minitweet/pkg/config"
	"minitweet/pkg/db"
	"minitweet/pkg/logger"
)

func main() {
	log := logger.NewLogger(pkgconfig.GetEnv("LOG_LEVEL", "info"))
	defer log.Sync()

	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	dbConn, err := db.NewConnection(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	if err := db.Migrate(ctx, dbConn, migrations.FS, log); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	log.Info("Migrations applied")
}
