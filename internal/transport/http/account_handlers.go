package http

import (
	"context"
	"encoding/json"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"trade_analytics/internal/domain"
	"trade_analytics/internal/usecase"
)

type AccountRequest struct {
	Name     string          `json:"name" validate:"max=128"`
	Metadata json.RawMessage `json:"metadata" swaggertype:"object"`
}

type AccountResponse struct {
	AccountID string          `json:"accountId"`
	Name      string          `json:"name,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type OrderPageRequest struct {
	Start int `query:"start" validate:"min=0"`
	Limit int `query:"limit" validate:"min=0,max=500"`
}

type OrderEventResponse struct {
	EventDate time.Time `json:"eventDate"`
	Status    string    `json:"status"`
	Price     *float64  `json:"price,omitempty"`
}

type OrderResponse struct {
	AccountID      string               `json:"accountId"`
	PermID         int64                `json:"permId"`
	Symbol         string               `json:"symbol"`
	SecType        string               `json:"secType,omitempty"`
	Action         string               `json:"action"`
	Quantity       int64                `json:"quantity"`
	OrderType      string               `json:"orderType,omitempty"`
	Status         string               `json:"status"`
	SubmitDate     time.Time            `json:"submitDate"`
	StatusDate     time.Time            `json:"statusDate"`
	FillPrice      *float64             `json:"fillPrice,omitempty"`
	HeartbeatCount *int                 `json:"heartbeatCount,omitempty"`
	Events         []OrderEventResponse `json:"events"`
}

type OrderPageResponse struct {
	Items []OrderResponse `json:"items"`
	Total int64           `json:"total"`
	Start int             `json:"start"`
	Limit int             `json:"limit"`
}

// listAccounts godoc
// @Summary List broker accounts
// @Tags accounts
// @Produce json
// @Success 200 {array} AccountResponse
// @Failure 500 {object} map[string]string
// @Router /accounts [get]
func (r *Router) listAccounts(c *fiber.Ctx) error {
	if r.orderService == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "order service unavailable")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	accounts, err := r.orderService.ListAccounts(ctx)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out := make([]AccountResponse, len(accounts))
	for i, account := range accounts {
		out[i] = toAccountResponse(account)
	}
	return c.JSON(out)
}

// updateAccount godoc
// @Summary Create or update a broker account
// @Description An empty name or metadata keeps the stored value.
// @Tags accounts
// @Accept json
// @Produce json
// @Param account_id path string true "Account ID"
// @Param request body AccountRequest true "Account payload"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /accounts/{account_id} [put]
func (r *Router) updateAccount(c *fiber.Ctx) error {
	if r.orderService == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "order service unavailable")
	}

	accountID := c.Params("account_id")
	if accountID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "account_id required")
	}

	var req AccountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := r.validateStruct(req); err != nil {
		return err
	}

	account := domain.Account{AccountID: accountID, Name: req.Name}
	if len(req.Metadata) > 0 && string(req.Metadata) != "null" {
		account.Metadata = append([]byte(nil), req.Metadata...)
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	if err := r.orderService.UpdateAccount(ctx, account); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"status":    "updated",
		"accountId": accountID,
	})
}

// listOrders godoc
// @Summary Page through the orders of an account
// @Description Newest first. Orders still awaiting confirmation carry their heartbeat budget.
// @Tags orders
// @Produce json
// @Param account_id path string true "Account ID"
// @Param start query int false "Offset of the first order"
// @Param limit query int false "Page size, 0 for the default"
// @Success 200 {object} OrderPageResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /accounts/{account_id}/orders [get]
func (r *Router) listOrders(c *fiber.Ctx) error {
	if r.orderService == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "order service unavailable")
	}

	accountID := c.Params("account_id")
	if accountID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "account_id required")
	}

	var req OrderPageRequest
	if err := c.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query")
	}
	if err := r.validateStruct(req); err != nil {
		return err
	}
	if req.Limit == 0 {
		req.Limit = usecase.DefaultOrderPageSize
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	page, err := r.orderService.ListOrders(ctx, accountID, req.Start, req.Limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	resp := OrderPageResponse{
		Items: make([]OrderResponse, len(page.Items)),
		Total: page.Total,
		Start: req.Start,
		Limit: req.Limit,
	}
	for i, item := range page.Items {
		resp.Items[i] = toOrderResponse(item)
	}
	return c.JSON(resp)
}

func toAccountResponse(account domain.Account) AccountResponse {
	resp := AccountResponse{
		AccountID: account.AccountID,
		Name:      account.Name,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
	if len(account.Metadata) > 0 {
		resp.Metadata = json.RawMessage(account.Metadata)
	}
	return resp
}

func toOrderResponse(item usecase.TrackedOrder) OrderResponse {
	events := make([]OrderEventResponse, len(item.Events))
	for i, ev := range item.Events {
		events[i] = OrderEventResponse{
			EventDate: ev.EventDate,
			Status:    string(ev.Status),
			Price:     ev.Price,
		}
	}
	return OrderResponse{
		AccountID:      item.AccountID,
		PermID:         item.PermID,
		Symbol:         item.Symbol,
		SecType:        item.SecType,
		Action:         string(item.Action),
		Quantity:       item.Quantity,
		OrderType:      item.OrderType,
		Status:         string(item.Status),
		SubmitDate:     item.SubmitDate,
		StatusDate:     item.StatusDate,
		FillPrice:      item.FillPrice,
		HeartbeatCount: item.HeartbeatCount,
		Events:         events,
	}
}
