package http

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	fiber "github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	swagger "github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trade_analytics/internal/domain"
	"trade_analytics/internal/usecase"
)

type StatisticsService interface {
	Query(key domain.StatisticsKey, maxPoints int) []domain.Statistics
	Recompute(ctx context.Context, key domain.StatisticsKey) error
	Invalidate(reportID int64) int
}

type HeartbeatReader interface {
	Heartbeats(accountID string) map[int64]int
	HeartbeatCount(key domain.OrderKey) (int, bool)
}

type OrderService interface {
	RecordOrder(ctx context.Context, order domain.Order) error
	ApplyStatus(ctx context.Context, key domain.OrderKey, status domain.OrderStatus, price *float64) (domain.Order, error)
	ListOrders(ctx context.Context, accountID string, start, limit int) (usecase.OrderPage, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) error
}

type Router struct {
	app               *fiber.App
	validate          *validator.Validate
	statisticsService StatisticsService
	heartbeats        HeartbeatReader
	orderService      OrderService
}

func New(statistics StatisticsService, heartbeats HeartbeatReader, orders OrderService) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	r := &Router{
		app:               app,
		validate:          validator.New(),
		statisticsService: statistics,
		heartbeats:        heartbeats,
		orderService:      orders,
	}

	api := app.Group("/api")
	v1 := api.Group("/v1")

	v1.Get("/reports/:report_id/statistics/:interval", r.getStatistics)
	v1.Post("/reports/:report_id/statistics/:interval", r.recomputeStatistics)
	v1.Delete("/reports/:report_id/statistics", r.invalidateStatistics)

	v1.Get("/accounts", r.listAccounts)
	v1.Put("/accounts/:account_id", r.updateAccount)
	v1.Get("/accounts/:account_id/heartbeats", r.listHeartbeats)
	v1.Get("/accounts/:account_id/orders", r.listOrders)
	v1.Get("/accounts/:account_id/orders/:perm_id/heartbeat", r.getHeartbeat)
	v1.Post("/accounts/:account_id/orders", r.recordOrder)
	v1.Post("/accounts/:account_id/orders/:perm_id/events", r.applyOrderEvent)

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return r
}

func (r *Router) App() *fiber.App {
	return r.app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func (r *Router) validateStruct(v any) error {
	if err := r.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fiber.NewError(fiber.StatusBadRequest, "invalid "+fe.Field()+": failed "+fe.Tag())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

func parseTime(raw string, layouts ...string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
