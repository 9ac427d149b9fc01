package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applogger "trade_analytics/internal/infra/logger"
)

// zerologWriter adapts zerolog.Logger to gorm logger.Writer interface
type zerologWriter struct {
	logger zerolog.Logger
}

func (w *zerologWriter) Printf(format string, v ...interface{}) {
	w.logger.Warn().Msg(fmt.Sprintf(format, v...))
}

// ConnectPostgres opens a pooled postgres connection whose gorm logging goes through zerolog.
func ConnectPostgres(ctx context.Context, dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn required")
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("underlying db: %w", err)
	}

	configurePostgresPool(sqlDB)

	if err := pingWithRetry(ctx, sqlDB, 3); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return gormDB, nil
}

func pingWithRetry(ctx context.Context, sqlDB *sql.DB, attempts int) error {
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var err error
	for i := 0; i < attempts; i++ {
		if err = sqlDB.PingContext(pingCtx); err == nil {
			return nil
		}
		select {
		case <-pingCtx.Done():
			return fmt.Errorf("ping database: %w", pingCtx.Err())
		case <-time.After(time.Duration(i+1) * 500 * time.Millisecond):
		}
	}
	return fmt.Errorf("ping database after %d attempts: %w", attempts, err)
}

func newGormLogger() logger.Interface {
	gormLogger := applogger.Logger.With().Str("component", "gorm").Logger()
	return logger.New(
		&zerologWriter{logger: gormLogger},
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

func configurePostgresPool(db *sql.DB) {
	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(time.Hour)
}
