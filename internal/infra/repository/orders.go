package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"trade_analytics/internal/domain"
)

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) (*GormOrderRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormOrderRepository{db: db}, nil
}

func orderedEvents(db *gorm.DB) *gorm.DB {
	return db.Order("event_date ASC, id ASC")
}

func (r *GormOrderRepository) FindOrdersOpenFor(ctx context.Context, accountID string) ([]domain.Order, error) {
	var models []OrderModel
	err := r.db.WithContext(ctx).
		Preload("Events", orderedEvents).
		Where("account_id = ? AND status IN ?", accountID, []string{
			string(domain.OrderStatusSubmitted),
			string(domain.OrderStatusUpdated),
		}).
		Order("submit_date ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("open orders: %w", err)
	}

	orders := make([]domain.Order, len(models))
	for i, model := range models {
		orders[i] = model.toDomain()
	}
	return orders, nil
}

func (r *GormOrderRepository) GetOrder(ctx context.Context, key domain.OrderKey) (domain.Order, error) {
	var model OrderModel
	err := r.db.WithContext(ctx).
		Preload("Events", orderedEvents).
		Where("account_id = ? AND perm_id = ?", key.AccountID, key.PermID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, key)
		}
		return domain.Order{}, err
	}
	return model.toDomain(), nil
}

// ListOrders returns one page of the account's orders, newest first, with the total count.
func (r *GormOrderRepository) ListOrders(ctx context.Context, accountID string, start, limit int) ([]domain.Order, int64, error) {
	base := r.db.WithContext(ctx).Model(&OrderModel{}).Where("account_id = ?", accountID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	var models []OrderModel
	err := r.db.WithContext(ctx).
		Preload("Events", orderedEvents).
		Where("account_id = ?", accountID).
		Order("submit_date DESC, id DESC").
		Offset(start).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}

	orders := make([]domain.Order, len(models))
	for i, model := range models {
		orders[i] = model.toDomain()
	}
	return orders, total, nil
}

// SaveOrder inserts the order with its full history, or refreshes a stored one. A refresh
// that changes the status appends exactly one event for the new status.
func (r *GormOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	model := toOrderModel(order)

	assignments := clause.Assignments(map[string]interface{}{
		"symbol":      gorm.Expr("EXCLUDED.symbol"),
		"sec_type":    gorm.Expr("EXCLUDED.sec_type"),
		"action":      gorm.Expr("EXCLUDED.action"),
		"quantity":    gorm.Expr("EXCLUDED.quantity"),
		"order_type":  gorm.Expr("EXCLUDED.order_type"),
		"status":      gorm.Expr("EXCLUDED.status"),
		"status_date": gorm.Expr("EXCLUDED.status_date"),
		"fill_price":  gorm.Expr("COALESCE(EXCLUDED.fill_price, orders.fill_price)"),
		"metadata":    gorm.Expr("EXCLUDED.metadata"),
		"updated_at":  gorm.Expr("CURRENT_TIMESTAMP"),
	})

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored []OrderModel
		err := tx.Select("id", "status").
			Where("account_id = ? AND perm_id = ?", order.AccountID, order.PermID).
			Limit(1).
			Find(&stored).Error
		if err != nil {
			return fmt.Errorf("load stored order: %w", err)
		}

		err = tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "account_id"}, {Name: "perm_id"}},
				DoUpdates: assignments,
			}).
			Create(&model).Error
		if err != nil {
			return fmt.Errorf("upsert order: %w", err)
		}

		orderID, err := r.orderID(tx, order.Key())
		if err != nil {
			return err
		}

		if len(stored) == 0 {
			return insertEvents(tx, orderID, order.Events)
		}
		if domain.OrderStatus(stored[0].Status) == order.Status {
			return nil
		}
		return insertEvents(tx, orderID, []domain.OrderEvent{currentEvent(order)})
	})
}

// AppendOrderEvent makes the event the order's current status and adds it to the history in
// one transaction. It returns only once the change is durable.
func (r *GormOrderRepository) AppendOrderEvent(ctx context.Context, key domain.OrderKey, event domain.OrderEvent) error {
	if event.EventDate.IsZero() {
		event.EventDate = time.Now().UTC()
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orderID, err := r.orderID(tx, key)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"status":      string(event.Status),
			"status_date": event.EventDate,
			"updated_at":  gorm.Expr("CURRENT_TIMESTAMP"),
		}
		if event.Status == domain.OrderStatusFilled && event.Price != nil {
			updates["fill_price"] = *event.Price
		}
		err = tx.Model(&OrderModel{}).Where("id = ?", orderID).Updates(updates).Error
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}

		return insertEvents(tx, orderID, []domain.OrderEvent{event})
	})
}

func (r *GormOrderRepository) orderID(tx *gorm.DB, key domain.OrderKey) (int64, error) {
	var stored OrderModel
	err := tx.Select("id").
		Where("account_id = ? AND perm_id = ?", key.AccountID, key.PermID).
		First(&stored).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, key)
		}
		return 0, err
	}
	return stored.ID, nil
}

// currentEvent is the history entry for the order's current status: the last event when it
// matches, otherwise one built from the status fields.
func currentEvent(order domain.Order) domain.OrderEvent {
	if n := len(order.Events); n > 0 && order.Events[n-1].Status == order.Status {
		return order.Events[n-1]
	}
	at := order.StatusDate
	if at.IsZero() {
		at = time.Now().UTC()
	}
	ev := domain.OrderEvent{EventDate: at, Status: order.Status}
	if order.Status == domain.OrderStatusFilled {
		ev.Price = order.FillPrice
	}
	return ev
}

func insertEvents(tx *gorm.DB, orderID int64, events []domain.OrderEvent) error {
	if len(events) == 0 {
		return nil
	}
	models := make([]OrderEventModel, len(events))
	for i, ev := range events {
		models[i] = toOrderEventModel(orderID, ev)
	}
	if err := tx.Create(&models).Error; err != nil {
		return fmt.Errorf("insert order events: %w", err)
	}
	return nil
}
