package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"trade_analytics/internal/domain"
)

type AccountModel struct {
	AccountID string         `gorm:"column:account_id;primaryKey"`
	Name      *string        `gorm:"column:name"`
	Metadata  datatypes.JSON `gorm:"column:metadata;type:jsonb"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (AccountModel) TableName() string {
	return "accounts"
}

func toAccountModel(account domain.Account) AccountModel {
	return AccountModel{
		AccountID: account.AccountID,
		Name:      stringPointerOrNil(account.Name),
		Metadata:  jsonOrEmpty(account.Metadata),
	}
}

func (m AccountModel) toDomain() domain.Account {
	return domain.Account{
		AccountID: m.AccountID,
		Name:      stringValueOrEmpty(m.Name),
		Metadata:  copyJSON(m.Metadata),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type OrderModel struct {
	ID         int64             `gorm:"column:id"`
	AccountID  string            `gorm:"column:account_id;not null;uniqueIndex:idx_orders_account_perm"`
	PermID     int64             `gorm:"column:perm_id;not null;uniqueIndex:idx_orders_account_perm"`
	Symbol     *string           `gorm:"column:symbol"`
	SecType    *string           `gorm:"column:sec_type"`
	Action     *string           `gorm:"column:action"`
	Quantity   int64             `gorm:"column:quantity"`
	OrderType  *string           `gorm:"column:order_type"`
	Status     string            `gorm:"column:status;not null;index"`
	SubmitDate time.Time         `gorm:"column:submit_date"`
	StatusDate time.Time         `gorm:"column:status_date"`
	FillPrice  *float64          `gorm:"column:fill_price"`
	Metadata   datatypes.JSON    `gorm:"column:metadata;type:jsonb"`
	Events     []OrderEventModel `gorm:"foreignKey:OrderID"`
	CreatedAt  time.Time         `gorm:"column:created_at"`
	UpdatedAt  time.Time         `gorm:"column:updated_at"`
}

func (OrderModel) TableName() string {
	return "orders"
}

func toOrderModel(order domain.Order) OrderModel {
	return OrderModel{
		AccountID:  order.AccountID,
		PermID:     order.PermID,
		Symbol:     stringPointerOrNil(order.Symbol),
		SecType:    stringPointerOrNil(order.SecType),
		Action:     stringPointerOrNil(string(order.Action)),
		Quantity:   order.Quantity,
		OrderType:  stringPointerOrNil(order.OrderType),
		Status:     string(order.Status),
		SubmitDate: order.SubmitDate,
		StatusDate: order.StatusDate,
		FillPrice:  order.FillPrice,
		Metadata:   jsonOrEmpty(order.Metadata),
	}
}

func (m OrderModel) toDomain() domain.Order {
	events := make([]domain.OrderEvent, len(m.Events))
	for i, ev := range m.Events {
		events[i] = ev.toDomain()
	}
	return domain.Order{
		ID:         m.ID,
		AccountID:  m.AccountID,
		PermID:     m.PermID,
		Symbol:     stringValueOrEmpty(m.Symbol),
		SecType:    stringValueOrEmpty(m.SecType),
		Action:     domain.OrderAction(stringValueOrEmpty(m.Action)),
		Quantity:   m.Quantity,
		OrderType:  stringValueOrEmpty(m.OrderType),
		Status:     domain.OrderStatus(m.Status),
		SubmitDate: m.SubmitDate.UTC(),
		StatusDate: m.StatusDate.UTC(),
		FillPrice:  m.FillPrice,
		Events:     events,
		Metadata:   copyJSON(m.Metadata),
	}
}

type OrderEventModel struct {
	ID        int64     `gorm:"column:id"`
	OrderID   int64     `gorm:"column:order_id;not null;index"`
	EventDate time.Time `gorm:"column:event_date;not null"`
	Status    string    `gorm:"column:status;not null"`
	Price     *float64  `gorm:"column:price"`
}

func (OrderEventModel) TableName() string {
	return "order_events"
}

func toOrderEventModel(orderID int64, ev domain.OrderEvent) OrderEventModel {
	return OrderEventModel{
		OrderID:   orderID,
		EventDate: ev.EventDate,
		Status:    string(ev.Status),
		Price:     ev.Price,
	}
}

func (m OrderEventModel) toDomain() domain.OrderEvent {
	return domain.OrderEvent{
		ID:        m.ID,
		EventDate: m.EventDate.UTC(),
		Status:    domain.OrderStatus(m.Status),
		Price:     m.Price,
	}
}

type ExecutionModel struct {
	ID        int64           `gorm:"column:id"`
	ReportID  int64           `gorm:"column:report_id;not null;index"`
	Symbol    string          `gorm:"column:symbol;not null"`
	Action    string          `gorm:"column:action;not null"`
	Quantity  decimal.Decimal `gorm:"column:quantity;type:decimal(20,8)"`
	FillDate  time.Time       `gorm:"column:fill_date;not null"`
	FillPrice decimal.Decimal `gorm:"column:fill_price;type:decimal(20,8)"`
	Currency  string          `gorm:"column:currency"`
	CreatedAt time.Time       `gorm:"column:created_at"`
}

func (ExecutionModel) TableName() string {
	return "executions"
}

func (m ExecutionModel) toDomain() domain.Execution {
	return domain.Execution{
		ID:        m.ID,
		ReportID:  m.ReportID,
		Symbol:    m.Symbol,
		Action:    domain.OrderAction(m.Action),
		Quantity:  m.Quantity,
		FillDate:  m.FillDate.UTC(),
		FillPrice: m.FillPrice,
		Currency:  m.Currency,
	}
}

type SplitExecutionModel struct {
	ID            int64           `gorm:"column:id"`
	TradeID       int64           `gorm:"column:trade_id;not null;index"`
	ExecutionID   int64           `gorm:"column:execution_id;not null;index"`
	SplitQuantity decimal.Decimal `gorm:"column:split_quantity;type:decimal(20,8)"`
	FillDate      time.Time       `gorm:"column:fill_date"`
	Execution     ExecutionModel  `gorm:"foreignKey:ExecutionID"`
}

func (SplitExecutionModel) TableName() string {
	return "split_executions"
}

func (m SplitExecutionModel) toDomain() domain.SplitExecution {
	return domain.SplitExecution{
		ID:            m.ID,
		SplitQuantity: m.SplitQuantity,
		FillDate:      m.FillDate.UTC(),
		Execution:     m.Execution.toDomain(),
	}
}

type TradeModel struct {
	ID              int64                 `gorm:"column:id"`
	ReportID        int64                 `gorm:"column:report_id;not null;index"`
	TradeType       string                `gorm:"column:trade_type;not null"`
	SecType         string                `gorm:"column:sec_type;not null"`
	Currency        string                `gorm:"column:currency;not null"`
	Underlying      string                `gorm:"column:underlying;not null"`
	Symbol          string                `gorm:"column:symbol;not null"`
	Multiplier      decimal.Decimal       `gorm:"column:multiplier;type:decimal(20,8)"`
	OpenDate        time.Time             `gorm:"column:open_date;not null"`
	CloseDate       *time.Time            `gorm:"column:close_date"`
	SplitExecutions []SplitExecutionModel `gorm:"foreignKey:TradeID"`
	CreatedAt       time.Time             `gorm:"column:created_at"`
	UpdatedAt       time.Time             `gorm:"column:updated_at"`
}

func (TradeModel) TableName() string {
	return "trades"
}

func (m TradeModel) toDomain() domain.Trade {
	splits := make([]domain.SplitExecution, len(m.SplitExecutions))
	for i, se := range m.SplitExecutions {
		splits[i] = se.toDomain()
	}

	var closeDate *time.Time
	if m.CloseDate != nil {
		c := m.CloseDate.UTC()
		closeDate = &c
	}

	return domain.Trade{
		ID:              m.ID,
		ReportID:        m.ReportID,
		TradeType:       domain.TradeType(m.TradeType),
		SecType:         m.SecType,
		Currency:        m.Currency,
		Underlying:      m.Underlying,
		Symbol:          m.Symbol,
		Multiplier:      m.Multiplier,
		OpenDate:        m.OpenDate.UTC(),
		CloseDate:       closeDate,
		SplitExecutions: splits,
	}
}

func stringPointerOrNil(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func stringValueOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func jsonOrEmpty(data []byte) datatypes.JSON {
	if len(data) == 0 {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(append([]byte(nil), data...))
}

func copyJSON(data datatypes.JSON) []byte {
	if len(data) == 0 {
		return nil
	}
	cpy := make([]byte, len(data))
	copy(cpy, data)
	return cpy
}
