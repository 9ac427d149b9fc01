package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderRepository persists accounts, orders and their status history.
type OrderRepository interface {
	ListAccounts(ctx context.Context) ([]Account, error)
	UpsertAccount(ctx context.Context, account Account) error
	FindOrdersOpenFor(ctx context.Context, accountID string) ([]Order, error)
	ListOrders(ctx context.Context, accountID string, start, limit int) ([]Order, int64, error)
	GetOrder(ctx context.Context, key OrderKey) (Order, error)
	// SaveOrder inserts a new order with its history. For a stored order it refreshes the
	// fields and appends one event when the status changed.
	SaveOrder(ctx context.Context, order Order) error
	// AppendOrderEvent makes event the current status and adds it to the history. It returns
	// only once the change is durable.
	AppendOrderEvent(ctx context.Context, key OrderKey, event OrderEvent) error
}

type TradeRepository interface {
	LoadTrades(ctx context.Context, reportID int64, filter TradeFilter) ([]Trade, error)
}

// PLCalculator computes the realized profit/loss of a closed trade in portfolio base currency.
type PLCalculator interface {
	PortfolioBasePL(trade Trade) (decimal.Decimal, error)
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
