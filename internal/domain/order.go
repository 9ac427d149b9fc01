package domain

import (
	"fmt"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusSubmitted OrderStatus = "submitted"
	OrderStatusUpdated   OrderStatus = "updated"
	OrderStatusFilled    OrderStatus = "filled"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusUnknown   OrderStatus = "unknown"
)

// ParseOrderStatus accepts any casing of a known status.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch status {
	case OrderStatusSubmitted, OrderStatusUpdated, OrderStatusFilled, OrderStatusCancelled, OrderStatusUnknown:
		return status, nil
	}
	return "", fmt.Errorf("invalid order status %q", raw)
}

// Trackable reports whether an order in this status is still waiting for broker confirmation.
func (s OrderStatus) Trackable() bool {
	return s == OrderStatusSubmitted || s == OrderStatusUpdated
}

type OrderAction string

const (
	ActionBuy  OrderAction = "BUY"
	ActionSell OrderAction = "SELL"
)

// OrderKey is the durable identity of a broker order. Mutable order fields never take part in it.
type OrderKey struct {
	AccountID string
	PermID    int64
}

func (k OrderKey) String() string {
	return fmt.Sprintf("%s/%d", k.AccountID, k.PermID)
}

type Account struct {
	AccountID string
	Name      string
	Metadata  []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderEvent struct {
	ID        int64
	EventDate time.Time
	Status    OrderStatus
	Price     *float64
}

type Order struct {
	ID         int64
	AccountID  string
	PermID     int64
	Symbol     string
	SecType    string
	Action     OrderAction
	Quantity   int64
	OrderType  string
	Status     OrderStatus
	SubmitDate time.Time
	StatusDate time.Time
	FillPrice  *float64
	Events     []OrderEvent
	Metadata   []byte
}

func (o Order) Key() OrderKey {
	return OrderKey{AccountID: o.AccountID, PermID: o.PermID}
}

// AddEvent appends a status change to the order history and makes it the current status.
func (o *Order) AddEvent(status OrderStatus, price *float64, at time.Time) {
	if at.IsZero() {
		at = time.Now().UTC()
	}
	o.Events = append(o.Events, OrderEvent{
		EventDate: at,
		Status:    status,
		Price:     price,
	})
	o.Status = status
	o.StatusDate = at
	if status == OrderStatusFilled && price != nil {
		p := *price
		o.FillPrice = &p
	}
}

// Clone returns a copy that shares no slices with the receiver.
func (o Order) Clone() Order {
	out := o
	if o.Events != nil {
		out.Events = append([]OrderEvent(nil), o.Events...)
	}
	if o.Metadata != nil {
		out.Metadata = append([]byte(nil), o.Metadata...)
	}
	if o.FillPrice != nil {
		p := *o.FillPrice
		out.FillPrice = &p
	}
	return out
}
