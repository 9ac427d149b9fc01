package domain

import (
	"testing"
	"time"
)

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus(" Filled ")
	if err != nil {
		t.Fatalf("parse filled: %v", err)
	}
	if status != OrderStatusFilled {
		t.Fatalf("expected filled, got %s", status)
	}

	if _, err := ParseOrderStatus("pending"); err == nil {
		t.Fatalf("expected an error for pending")
	}
}

func TestOrderStatusTrackable(t *testing.T) {
	want := map[OrderStatus]bool{
		OrderStatusSubmitted: true,
		OrderStatusUpdated:   true,
		OrderStatusFilled:    false,
		OrderStatusCancelled: false,
		OrderStatusUnknown:   false,
	}
	for status, trackable := range want {
		if status.Trackable() != trackable {
			t.Fatalf("%s trackable = %v, want %v", status, status.Trackable(), trackable)
		}
	}
}

func TestOrderAddEvent(t *testing.T) {
	order := Order{AccountID: "DU1", PermID: 42, Status: OrderStatusSubmitted}
	at := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	price := 101.5

	order.AddEvent(OrderStatusUpdated, nil, at)
	order.AddEvent(OrderStatusFilled, &price, at.Add(time.Minute))

	if len(order.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(order.Events))
	}
	if order.Status != OrderStatusFilled {
		t.Fatalf("expected filled, got %s", order.Status)
	}
	if !order.StatusDate.Equal(at.Add(time.Minute)) {
		t.Fatalf("unexpected status date %s", order.StatusDate)
	}
	if order.FillPrice == nil || *order.FillPrice != 101.5 {
		t.Fatalf("unexpected fill price %v", order.FillPrice)
	}

	price = 0
	if *order.FillPrice != 101.5 {
		t.Fatalf("fill price aliases the caller's value")
	}
}

func TestOrderKeyIgnoresMutableFields(t *testing.T) {
	order := Order{AccountID: "DU1", PermID: 42, Status: OrderStatusSubmitted}
	key := order.Key()

	order.AddEvent(OrderStatusUpdated, nil, time.Now())
	order.Symbol = "AAPL"

	if order.Key() != key {
		t.Fatalf("key changed from %s to %s", key, order.Key())
	}
	if key.String() != "DU1/42" {
		t.Fatalf("unexpected key string %q", key.String())
	}
}

func TestOrderClone(t *testing.T) {
	price := 10.0
	order := Order{AccountID: "DU1", PermID: 1, FillPrice: &price, Metadata: []byte(`{"a":1}`)}
	order.AddEvent(OrderStatusSubmitted, nil, time.Now())

	cp := order.Clone()
	cp.Events[0].Status = OrderStatusCancelled
	cp.Metadata[0] = '['
	*cp.FillPrice = 20

	if order.Events[0].Status != OrderStatusSubmitted {
		t.Fatalf("clone shares events")
	}
	if order.Metadata[0] != '{' {
		t.Fatalf("clone shares metadata")
	}
	if *order.FillPrice != 10.0 {
		t.Fatalf("clone shares fill price")
	}
}
