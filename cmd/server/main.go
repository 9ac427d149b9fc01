package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	docs "trade_analytics/docs"
	"trade_analytics/internal/config"
	"trade_analytics/internal/domain"
	"trade_analytics/internal/infra/db"
	"trade_analytics/internal/infra/httpclient"
	applogger "trade_analytics/internal/infra/logger"
	"trade_analytics/internal/infra/notify"
	"trade_analytics/internal/infra/repository"
	"trade_analytics/internal/scheduler"
	httptransport "trade_analytics/internal/transport/http"
	"trade_analytics/internal/usecase"
)

// @title Trade Analytics API
// @version 1.0
// @description Order heartbeat tracking and periodic trade statistics.
// @BasePath /api/v1

func main() {
	rootCtx := context.Background()

	applogger.Init("info", "console")
	logger := applogger.Logger

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	applogger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger = applogger.Logger
	logger.Info().Str("level", cfg.Logging.Level).Msg("logger initialized")

	docs.SwaggerInfo.BasePath = "/api/v1"

	logger.Info().Str("dsn", maskDSN(cfg.Database.DSN)).Msg("connecting to database")
	gormDB, err := db.Connect(rootCtx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("underlying sql db")
	}
	defer sqlDB.Close()

	if err := db.ApplyMigrations(rootCtx, gormDB); err != nil {
		logger.Fatal().Err(err).Msg("apply migrations")
	}
	logger.Info().Msg("migrations applied successfully")

	orderRepo, err := repository.NewGormOrderRepository(gormDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("init order repository")
	}
	tradeRepo, err := repository.NewGormTradeRepository(gormDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("init trade repository")
	}

	tracker, err := usecase.NewHeartbeatTracker(orderRepo, cfg.Heartbeat.MaxFails)
	if err != nil {
		logger.Fatal().Err(err).Msg("init heartbeat tracker")
	}
	if err := tracker.Seed(rootCtx); err != nil {
		logger.Fatal().Err(err).Msg("seed heartbeats")
	}

	orderService, err := usecase.NewOrderService(orderRepo, tracker)
	if err != nil {
		logger.Fatal().Err(err).Msg("init order service")
	}

	notifier := buildNotifier(rootCtx, cfg)

	calculator, err := usecase.NewStatisticsCalculator(
		usecase.NewTradeCalculator(cfg.Portfolio.BaseCurrency, cfg.Portfolio.Rates),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("init statistics calculator")
	}
	pool := usecase.NewWorkerPool(cfg.Statistics.Workers, cfg.Statistics.QueueSize)
	statisticsService, err := usecase.NewStatisticsService(tradeRepo, calculator, usecase.NewStatisticsCache(), pool, notifier)
	if err != nil {
		logger.Fatal().Err(err).Msg("init statistics service")
	}

	logger.Info().Msg("all services initialized")

	router := httptransport.New(statisticsService, tracker, orderService)

	logger.Info().Dur("interval", cfg.Heartbeat.Interval).Msg("initializing scheduler")
	heartbeats, err := scheduler.NewHeartbeatScheduler(tracker, cfg.Heartbeat.Interval)
	if err != nil {
		logger.Fatal().Err(err).Msg("init scheduler")
	}
	if err := heartbeats.Start(); err != nil {
		logger.Fatal().Err(err).Msg("start scheduler")
	}
	defer func() {
		if err := heartbeats.Shutdown(); err != nil {
			logger.Error().Err(err).Msg("scheduler shutdown error")
		}
	}()
	logger.Info().Strs("accounts", heartbeats.Accounts()).Msg("scheduler started")

	serverErr := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info().Str("addr", addr).Msg("server listening")
		serverErr <- router.App().Listen(addr)
	}()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error().Err(err).Msg("fiber server error")
		}
	case sig := <-signalCh:
		logger.Info().Str("signal", sig.String()).Msg("received signal, shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := router.App().ShutdownWithContext(ctx); err != nil {
			logger.Error().Err(err).Msg("server shutdown error")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := pool.Close(ctx); err != nil {
		logger.Error().Err(err).Msg("statistics workers did not drain")
	}
	logger.Info().Msg("server shutdown complete")
}

func buildNotifier(ctx context.Context, cfg *config.AppConfig) domain.Notifier {
	logger := applogger.Logger
	sinks := []domain.Notifier{notify.Log{}}

	if cfg.Notify.RedisAddr != "" {
		client, err := notify.NewRedisClient(ctx, cfg.Notify.RedisAddr, cfg.Notify.RedisPassword, cfg.Notify.RedisDB)
		if err != nil {
			logger.Error().Err(err).Msg("redis notifier disabled")
		} else {
			redisNotifier, err := notify.NewRedis(client, cfg.Notify.ChannelPrefix)
			if err != nil {
				logger.Fatal().Err(err).Msg("init redis notifier")
			}
			sinks = append(sinks, redisNotifier)
			logger.Info().Str("channel", redisNotifier.Channel(domain.TopicReport)).Msg("redis notifier enabled")
		}
	}

	if cfg.Notify.WebhookURL != "" {
		webhook, err := httpclient.NewWebhookNotifier(cfg.Notify.WebhookURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("init webhook notifier")
		}
		sinks = append(sinks, webhook)
		logger.Info().Msg("webhook notifier enabled")
	}

	return notify.NewMulti(sinks...)
}

func maskDSN(dsn string) string {
	if len(dsn) > 20 {
		return dsn[:10] + "***" + dsn[len(dsn)-10:]
	}
	return "***"
}
