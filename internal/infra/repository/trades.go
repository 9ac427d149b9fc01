package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"trade_analytics/internal/domain"
)

type GormTradeRepository struct {
	db *gorm.DB
}

func NewGormTradeRepository(db *gorm.DB) (*GormTradeRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormTradeRepository{db: db}, nil
}

// LoadTrades returns the report's trades with their split executions. Nil filter selectors do
// not restrict the query.
func (r *GormTradeRepository) LoadTrades(ctx context.Context, reportID int64, filter domain.TradeFilter) ([]domain.Trade, error) {
	query := r.db.WithContext(ctx).
		Preload("SplitExecutions", func(db *gorm.DB) *gorm.DB {
			return db.Order("fill_date ASC, id ASC")
		}).
		Preload("SplitExecutions.Execution").
		Where("report_id = ?", reportID)

	if filter.TradeType != nil {
		query = query.Where("trade_type = ?", *filter.TradeType)
	}
	if filter.SecType != nil {
		query = query.Where("sec_type = ?", *filter.SecType)
	}
	if filter.Currency != nil {
		query = query.Where("currency = ?", *filter.Currency)
	}
	if filter.Underlying != nil {
		query = query.Where("underlying = ?", *filter.Underlying)
	}

	var models []TradeModel
	if err := query.Order("open_date ASC, id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("load trades for report %d: %w", reportID, err)
	}

	trades := make([]domain.Trade, len(models))
	for i, model := range models {
		trades[i] = model.toDomain()
	}
	return trades, nil
}
