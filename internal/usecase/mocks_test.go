package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"trade_analytics/internal/domain"
)

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *mockOrderRepository) UpsertAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *mockOrderRepository) FindOrdersOpenFor(ctx context.Context, accountID string) ([]domain.Order, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *mockOrderRepository) GetOrder(ctx context.Context, key domain.OrderKey) (domain.Order, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *mockOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepository) ListOrders(ctx context.Context, accountID string, start, limit int) ([]domain.Order, int64, error) {
	args := m.Called(ctx, accountID, start, limit)
	return args.Get(0).([]domain.Order), args.Get(1).(int64), args.Error(2)
}

func (m *mockOrderRepository) AppendOrderEvent(ctx context.Context, key domain.OrderKey, event domain.OrderEvent) error {
	return m.Called(ctx, key, event).Error(0)
}

type mockTradeRepository struct {
	mock.Mock
}

func (m *mockTradeRepository) LoadTrades(ctx context.Context, reportID int64, filter domain.TradeFilter) ([]domain.Trade, error) {
	args := m.Called(ctx, reportID, filter)
	return args.Get(0).([]domain.Trade), args.Error(1)
}

// stubPL returns a fixed profit/loss per trade id.
type stubPL map[int64]decimal.Decimal

func (s stubPL) PortfolioBasePL(trade domain.Trade) (decimal.Decimal, error) {
	pl, ok := s[trade.ID]
	if !ok {
		return decimal.Zero, fmt.Errorf("no pl for trade %d", trade.ID)
	}
	return pl, nil
}

type channelNotifier chan domain.Notification

func (c channelNotifier) Notify(_ context.Context, n domain.Notification) error {
	c <- n
	return nil
}

func newOrder(account string, permID int64) domain.Order {
	return domain.Order{
		AccountID: account,
		PermID:    permID,
		Symbol:    "AAPL",
		Action:    domain.ActionBuy,
		Quantity:  10,
		Status:    domain.OrderStatusSubmitted,
	}
}
