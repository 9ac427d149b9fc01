package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trade_analytics/internal/domain"
	applogger "trade_analytics/internal/infra/logger"
)

const (
	DefaultOrderPageSize = 50
	MaxOrderPageSize     = 500
)

// TrackedOrder is a stored order with its remaining heartbeat budget, nil when not tracked.
type TrackedOrder struct {
	domain.Order
	HeartbeatCount *int
}

type OrderPage struct {
	Items []TrackedOrder
	Total int64
}

// OrderService ingests broker order events and keeps the heartbeat tracker in step with them.
type OrderService struct {
	orderRepo domain.OrderRepository
	tracker   *HeartbeatTracker
}

func NewOrderService(orderRepo domain.OrderRepository, tracker *HeartbeatTracker) (*OrderService, error) {
	if orderRepo == nil {
		return nil, errors.New("order repository required")
	}
	if tracker == nil {
		return nil, errors.New("heartbeat tracker required")
	}
	return &OrderService{
		orderRepo: orderRepo,
		tracker:   tracker,
	}, nil
}

func (s *OrderService) RecordOrder(ctx context.Context, order domain.Order) error {
	if order.AccountID == "" {
		return errors.New("account id required")
	}
	if order.PermID == 0 {
		return errors.New("perm id required")
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusSubmitted
	}
	if order.SubmitDate.IsZero() {
		order.SubmitDate = time.Now().UTC()
	}
	if len(order.Events) == 0 {
		order.AddEvent(order.Status, order.FillPrice, order.SubmitDate)
	}

	if err := s.orderRepo.UpsertAccount(ctx, domain.Account{AccountID: order.AccountID}); err != nil {
		return fmt.Errorf("ensure account: %w", err)
	}
	if err := s.orderRepo.SaveOrder(ctx, order); err != nil {
		return fmt.Errorf("save order %s: %w", order.Key(), err)
	}

	s.track(order)
	return nil
}

// ApplyStatus records a broker status report for an existing order. A repeated report of the
// current status still counts as a confirmation and refreshes the heartbeat budget.
func (s *OrderService) ApplyStatus(ctx context.Context, key domain.OrderKey, status domain.OrderStatus, price *float64) (domain.Order, error) {
	order, err := s.orderRepo.GetOrder(ctx, key)
	if err != nil {
		return domain.Order{}, err
	}

	if order.Status != status {
		order.AddEvent(status, price, time.Now().UTC())
		if err := s.orderRepo.AppendOrderEvent(ctx, key, order.Events[len(order.Events)-1]); err != nil {
			return domain.Order{}, fmt.Errorf("update order %s: %w", key, err)
		}
	}

	s.track(order)
	return order, nil
}

func (s *OrderService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.orderRepo.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// UpdateAccount stores the account name and metadata, creating the account when missing.
func (s *OrderService) UpdateAccount(ctx context.Context, account domain.Account) error {
	if account.AccountID == "" {
		return errors.New("account id required")
	}
	if err := s.orderRepo.UpsertAccount(ctx, account); err != nil {
		return fmt.Errorf("update account %s: %w", account.AccountID, err)
	}
	s.tracker.RegisterAccount(account.AccountID)
	return nil
}

// ListOrders returns a page of the account's orders, newest first, each joined with its
// heartbeat budget. A non-positive limit selects the default page size.
func (s *OrderService) ListOrders(ctx context.Context, accountID string, start, limit int) (OrderPage, error) {
	if accountID == "" {
		return OrderPage{}, errors.New("account id required")
	}
	if start < 0 {
		start = 0
	}
	if limit <= 0 {
		limit = DefaultOrderPageSize
	}
	if limit > MaxOrderPageSize {
		limit = MaxOrderPageSize
	}

	orders, total, err := s.orderRepo.ListOrders(ctx, accountID, start, limit)
	if err != nil {
		return OrderPage{}, fmt.Errorf("list orders of %s: %w", accountID, err)
	}

	items := make([]TrackedOrder, len(orders))
	for i, order := range orders {
		items[i] = TrackedOrder{Order: order}
		if count, ok := s.tracker.HeartbeatCount(order.Key()); ok {
			items[i].HeartbeatCount = &count
		}
	}
	return OrderPage{Items: items, Total: total}, nil
}

func (s *OrderService) track(order domain.Order) {
	if order.Status.Trackable() {
		s.tracker.InitHeartbeat(order)
		return
	}
	s.tracker.RemoveHeartbeat(order)
	applogger.Logger.Debug().
		Str("account", order.AccountID).
		Int64("perm_id", order.PermID).
		Str("status", string(order.Status)).
		Msg("order no longer tracked")
}
