package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"trade_analytics/internal/infra/repository"
)

func ApplyMigrations(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&repository.AccountModel{},
		&repository.OrderModel{},
		&repository.OrderEventModel{},
		&repository.ExecutionModel{},
		&repository.TradeModel{},
		&repository.SplitExecutionModel{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return nil
}
