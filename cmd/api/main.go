package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"

	"github.com/joshu-sajeev/staybook/internal/config"
	"github.com/joshu-sajeev/staybook/internal/logger"
	"github.com/joshu-sajeev/staybook/internal/payment"
	"github.com/joshu-sajeev/staybook/internal/pipeline"
	"github.com/joshu-sajeev/staybook/internal/review"
	"github.com/joshu-sajeev/staybook/internal/router"
	"github.com/joshu-sajeev/staybook/internal/storage/postgres"
	"github.com/joshu-sajeev/staybook/internal/storage/redisstore"
	"github.com/joshu-sajeev/staybook/internal/webhook"
	"github.com/joshu-sajeev/staybook/middleware"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.New(logger.Options{Service: "staybook-api"})
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "staybook-api",
	})
	ctx = log.WithContext(ctx)

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("api stopped")
	}
	log.Info().Msg("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	dbCfg, err := postgres.LoadConfigFromEnv(ctx)
	if err != nil {
		return err
	}

	db, err := postgres.ConnectDB(ctx, dbCfg)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}

	var guard webhook.Guard = webhook.NoopGuard{}
	if cfg.RedisAddr != "" {
		client, err := redisstore.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer client.Close()
		guard = redisstore.NewGuard(client, cfg.WebhookEventTTL)
	} else {
		log.Warn().Msg("REDIS_ADDR not set, webhook deliveries are not deduplicated")
	}

	pipe := pipeline.New(middleware.NewValidator(postgres.NewExistenceChecker(db)))
	methods := postgres.NewPaymentMethodRepository(db)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	handler := router.New(log, router.Handlers{
		Review:  review.NewReviewHandler(review.NewReviewService(postgres.NewReviewRepository(db)), pipe),
		Payment: payment.NewPaymentHandler(payment.NewPaymentService(methods), pipe),
		Webhook: webhook.NewWebhookHandler(
			webhook.NewWebhookService(methods, postgres.NewBookingRepository(db), guard),
			pipe,
			cfg.WebhookMaxBody,
		),
		Health: sqlDB.PingContext,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
