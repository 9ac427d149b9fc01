package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Driver string
	DSN    string
}

type LoggingConfig struct {
	Level  string
	Format string
}

type HeartbeatConfig struct {
	Interval time.Duration
	MaxFails int
}

type StatisticsConfig struct {
	Workers   int
	QueueSize int
}

type NotifyConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	ChannelPrefix string
	WebhookURL    string
}

type PortfolioConfig struct {
	BaseCurrency string
	// Rates maps a currency to base-currency units per one unit of it.
	Rates map[string]decimal.Decimal
}

type AppConfig struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Logging    LoggingConfig
	Heartbeat  HeartbeatConfig
	Statistics StatisticsConfig
	Notify     NotifyConfig
	Portfolio  PortfolioConfig
}

func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("DATABASE_DRIVER", "")
	v.SetDefault("DATABASE_DSN", "data/analytics.db")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("HEARTBEAT_INTERVAL", "1m")
	v.SetDefault("HEARTBEAT_MAX_FAILS", 5)
	v.SetDefault("STATISTICS_WORKERS", 4)
	v.SetDefault("STATISTICS_QUEUE_SIZE", 64)
	v.SetDefault("NOTIFY_REDIS_ADDR", "")
	v.SetDefault("NOTIFY_REDIS_PASSWORD", "")
	v.SetDefault("NOTIFY_REDIS_DB", 0)
	v.SetDefault("NOTIFY_CHANNEL_PREFIX", "trade_analytics:")
	v.SetDefault("NOTIFY_WEBHOOK_URL", "")
	v.SetDefault("PORTFOLIO_BASE_CURRENCY", "EUR")
	v.SetDefault("PORTFOLIO_RATES", "")

	interval, err := time.ParseDuration(v.GetString("HEARTBEAT_INTERVAL"))
	if err != nil {
		return nil, fmt.Errorf("invalid heartbeat interval: %w", err)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("heartbeat interval must be positive, got %s", interval)
	}

	rates, err := parseRates(v.GetString("PORTFOLIO_RATES"))
	if err != nil {
		return nil, err
	}

	cfg := &AppConfig{
		Server: ServerConfig{
			Port: v.GetString("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Driver: v.GetString("DATABASE_DRIVER"),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Heartbeat: HeartbeatConfig{
			Interval: interval,
			MaxFails: v.GetInt("HEARTBEAT_MAX_FAILS"),
		},
		Statistics: StatisticsConfig{
			Workers:   v.GetInt("STATISTICS_WORKERS"),
			QueueSize: v.GetInt("STATISTICS_QUEUE_SIZE"),
		},
		Notify: NotifyConfig{
			RedisAddr:     v.GetString("NOTIFY_REDIS_ADDR"),
			RedisPassword: v.GetString("NOTIFY_REDIS_PASSWORD"),
			RedisDB:       v.GetInt("NOTIFY_REDIS_DB"),
			ChannelPrefix: v.GetString("NOTIFY_CHANNEL_PREFIX"),
			WebhookURL:    v.GetString("NOTIFY_WEBHOOK_URL"),
		},
		Portfolio: PortfolioConfig{
			BaseCurrency: strings.ToUpper(v.GetString("PORTFOLIO_BASE_CURRENCY")),
			Rates:        rates,
		},
	}

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required")
	}
	if cfg.Heartbeat.MaxFails <= 0 {
		return nil, fmt.Errorf("HEARTBEAT_MAX_FAILS must be positive, got %d", cfg.Heartbeat.MaxFails)
	}

	return cfg, nil
}

// parseRates reads "USD:0.92,GBP:1.17".
func parseRates(raw string) (map[string]decimal.Decimal, error) {
	rates := make(map[string]decimal.Decimal)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		currency, value, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("invalid portfolio rate %q", part)
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid portfolio rate %q: %w", part, err)
		}
		rates[strings.ToUpper(strings.TrimSpace(currency))] = rate
	}
	return rates, nil
}
