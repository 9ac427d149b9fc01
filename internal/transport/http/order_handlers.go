package http

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"trade_analytics/internal/domain"
)

type OrderRequest struct {
	PermID     int64           `json:"permId" validate:"required,gt=0"`
	Symbol     string          `json:"symbol" validate:"required"`
	SecType    string          `json:"secType"`
	Action     string          `json:"action" validate:"required,oneof=BUY SELL buy sell"`
	Quantity   int64           `json:"quantity" validate:"gte=0"`
	OrderType  string          `json:"orderType"`
	Status     string          `json:"status"`
	SubmitDate string          `json:"submitDate"`
	FillPrice  *float64        `json:"fillPrice"`
	Metadata   json.RawMessage `json:"metadata" swaggertype:"object"`
}

type OrderEventRequest struct {
	Status string   `json:"status" validate:"required"`
	Price  *float64 `json:"price"`
}

type HeartbeatResponse struct {
	AccountID      string `json:"accountId"`
	PermID         int64  `json:"permId"`
	HeartbeatCount int    `json:"heartbeatCount"`
}

// listHeartbeats godoc
// @Summary List tracked orders of an account
// @Description Maps perm id to the remaining heartbeat budget.
// @Tags heartbeats
// @Produce json
// @Param account_id path string true "Account ID"
// @Success 200 {object} map[string]int
// @Router /accounts/{account_id}/heartbeats [get]
func (r *Router) listHeartbeats(c *fiber.Ctx) error {
	if r.heartbeats == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "heartbeat tracker unavailable")
	}

	accountID := c.Params("account_id")
	if accountID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "account_id required")
	}

	return c.JSON(r.heartbeats.Heartbeats(accountID))
}

// getHeartbeat godoc
// @Summary Remaining heartbeat budget of an order
// @Tags heartbeats
// @Produce json
// @Param account_id path string true "Account ID"
// @Param perm_id path int true "Broker permanent order id"
// @Success 200 {object} HeartbeatResponse
// @Failure 404 {object} map[string]string
// @Router /accounts/{account_id}/orders/{perm_id}/heartbeat [get]
func (r *Router) getHeartbeat(c *fiber.Ctx) error {
	if r.heartbeats == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "heartbeat tracker unavailable")
	}

	key, err := orderKey(c)
	if err != nil {
		return err
	}

	count, ok := r.heartbeats.HeartbeatCount(key)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "order "+key.String()+" not tracked")
	}

	return c.JSON(HeartbeatResponse{
		AccountID:      key.AccountID,
		PermID:         key.PermID,
		HeartbeatCount: count,
	})
}

// recordOrder godoc
// @Summary Record a new broker order
// @Tags orders
// @Accept json
// @Produce json
// @Param account_id path string true "Account ID"
// @Param request body OrderRequest true "Order payload"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /accounts/{account_id}/orders [post]
func (r *Router) recordOrder(c *fiber.Ctx) error {
	if r.orderService == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "order service unavailable")
	}

	accountID := c.Params("account_id")
	if accountID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "account_id required")
	}

	var req OrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := r.validateStruct(req); err != nil {
		return err
	}

	order, err := req.toDomain(accountID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	if err := r.orderService.RecordOrder(ctx, order); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "recorded",
		"key":    order.Key().String(),
	})
}

// applyOrderEvent godoc
// @Summary Apply a broker status report to an order
// @Description A report of a submitted or updated status resets the heartbeat budget.
// @Tags orders
// @Accept json
// @Produce json
// @Param account_id path string true "Account ID"
// @Param perm_id path int true "Broker permanent order id"
// @Param request body OrderEventRequest true "Status payload"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /accounts/{account_id}/orders/{perm_id}/events [post]
func (r *Router) applyOrderEvent(c *fiber.Ctx) error {
	if r.orderService == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "order service unavailable")
	}

	key, err := orderKey(c)
	if err != nil {
		return err
	}

	var req OrderEventRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := r.validateStruct(req); err != nil {
		return err
	}
	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	order, err := r.orderService.ApplyStatus(ctx, key, status, req.Price)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"key":    key.String(),
		"status": string(order.Status),
	})
}

func orderKey(c *fiber.Ctx) (domain.OrderKey, error) {
	accountID := c.Params("account_id")
	if accountID == "" {
		return domain.OrderKey{}, fiber.NewError(fiber.StatusBadRequest, "account_id required")
	}
	permID, err := strconv.ParseInt(c.Params("perm_id"), 10, 64)
	if err != nil || permID <= 0 {
		return domain.OrderKey{}, fiber.NewError(fiber.StatusBadRequest, "invalid perm_id")
	}
	return domain.OrderKey{AccountID: accountID, PermID: permID}, nil
}

func (req OrderRequest) toDomain(accountID string) (domain.Order, error) {
	order := domain.Order{
		AccountID: accountID,
		PermID:    req.PermID,
		Symbol:    strings.ToUpper(strings.TrimSpace(req.Symbol)),
		SecType:   strings.ToUpper(strings.TrimSpace(req.SecType)),
		Action:    domain.OrderAction(strings.ToUpper(req.Action)),
		Quantity:  req.Quantity,
		OrderType: strings.ToUpper(strings.TrimSpace(req.OrderType)),
		FillPrice: req.FillPrice,
	}
	if len(req.Metadata) > 0 {
		order.Metadata = append([]byte(nil), req.Metadata...)
	}

	if req.Status != "" {
		status, err := domain.ParseOrderStatus(req.Status)
		if err != nil {
			return domain.Order{}, err
		}
		order.Status = status
	}

	if req.SubmitDate != "" {
		submitted := parseTime(req.SubmitDate, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05")
		if submitted.IsZero() {
			return domain.Order{}, errors.New("invalid submitDate")
		}
		order.SubmitDate = submitted
	}

	return order, nil
}
