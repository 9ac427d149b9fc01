package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"trade_analytics/internal/domain"
)

// UpsertAccount creates the account or refreshes it. An empty name or metadata keeps the stored
// value.
func (r *GormOrderRepository) UpsertAccount(ctx context.Context, account domain.Account) error {
	if account.AccountID == "" {
		return fmt.Errorf("account id required")
	}
	model := toAccountModel(account)

	updates := map[string]interface{}{
		"name":       gorm.Expr("COALESCE(EXCLUDED.name, accounts.name)"),
		"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
	}
	if len(account.Metadata) > 0 {
		updates["metadata"] = gorm.Expr("EXCLUDED.metadata")
	}
	assignments := clause.Assignments(updates)

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}},
			DoUpdates: assignments,
		}).
		Create(&model).Error
}

func (r *GormOrderRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	var models []AccountModel
	if err := r.db.WithContext(ctx).Order("account_id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	accounts := make([]domain.Account, len(models))
	for i, model := range models {
		accounts[i] = model.toDomain()
	}
	return accounts, nil
}
