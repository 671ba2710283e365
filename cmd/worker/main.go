package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/joshu-sajeev/staybook/internal/config"
	"github.com/joshu-sajeev/staybook/internal/logger"
	"github.com/joshu-sajeev/staybook/internal/storage/postgres"
	"github.com/joshu-sajeev/staybook/internal/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.New(logger.Options{Service: "staybook-worker"})
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "staybook-worker",
	})
	ctx = log.WithContext(ctx)

	dbCfg, err := postgres.LoadConfigFromEnv(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load database config")
	}

	db, err := postgres.ConnectDB(ctx, dbCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("connection failed")
	}

	sweeper := worker.NewSweeper(postgres.NewPaymentMethodRepository(db), cfg.PendingMethodTTL, cfg.SweepInterval)
	sweeper.Start(ctx)
	log.Info().
		Dur("ttl", cfg.PendingMethodTTL).
		Dur("interval", cfg.SweepInterval).
		Msg("sweeper active")

	<-ctx.Done()

	sweeper.Stop()
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("shutdown complete")
}
