package http

import (
	"context"
	"errors"
	"strconv"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"trade_analytics/internal/domain"
	"trade_analytics/internal/usecase"
)

// StatisticsRequest selects one statistics series. Empty or malformed filter values mean ALL.
type StatisticsRequest struct {
	TradeType  string `json:"tradeType" query:"tradeType" validate:"max=16"`
	SecType    string `json:"secType" query:"secType" validate:"max=16"`
	Currency   string `json:"currency" query:"currency" validate:"max=16"`
	Underlying string `json:"underlying" query:"underlying" validate:"max=64"`
	MaxPoints  int    `json:"maxPoints" query:"maxPoints" validate:"min=-1"`
}

type RecomputeResponse struct {
	Key    string `json:"key"`
	Status string `json:"status"`
}

// getStatistics godoc
// @Summary Read cached statistics
// @Description Returns the last computed series; empty until a recompute has finished.
// @Tags statistics
// @Produce json
// @Param report_id path int true "Report ID"
// @Param interval path string true "DAY, MONTH or YEAR"
// @Param tradeType query string false "LONG, SHORT or ALL"
// @Param secType query string false "Security type such as STK, OPT or FUT, or ALL"
// @Param currency query string false "ISO currency or ALL"
// @Param underlying query string false "Underlying symbol or ALL"
// @Param maxPoints query int false "Trailing periods to return, -1 for all"
// @Success 200 {array} domain.Statistics
// @Failure 400 {object} map[string]string
// @Router /reports/{report_id}/statistics/{interval} [get]
func (r *Router) getStatistics(c *fiber.Ctx) error {
	if r.statisticsService == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "statistics service unavailable")
	}

	reportID, interval, err := statisticsPath(c)
	if err != nil {
		return err
	}

	req := StatisticsRequest{MaxPoints: usecase.AllPoints}
	if err := c.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query")
	}
	if err := r.validateStruct(req); err != nil {
		return err
	}

	key := domain.NewStatisticsKey(reportID, interval, req.TradeType, req.SecType, req.Currency, req.Underlying)
	return c.JSON(r.statisticsService.Query(key, req.MaxPoints))
}

// recomputeStatistics godoc
// @Summary Schedule a statistics recompute
// @Description Returns immediately; completion is published on the report notification topic.
// @Tags statistics
// @Accept json
// @Produce json
// @Param report_id path int true "Report ID"
// @Param interval path string true "DAY, MONTH or YEAR"
// @Param request body StatisticsRequest false "Filters, alternatively given as query parameters"
// @Success 202 {object} RecomputeResponse
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /reports/{report_id}/statistics/{interval} [post]
func (r *Router) recomputeStatistics(c *fiber.Ctx) error {
	if r.statisticsService == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "statistics service unavailable")
	}

	reportID, interval, err := statisticsPath(c)
	if err != nil {
		return err
	}

	req := StatisticsRequest{MaxPoints: usecase.AllPoints}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
	} else if err := c.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query")
	}
	if err := r.validateStruct(req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	key := domain.NewStatisticsKey(reportID, interval, req.TradeType, req.SecType, req.Currency, req.Underlying)
	if err := r.statisticsService.Recompute(ctx, key); err != nil {
		if errors.Is(err, usecase.ErrRecomputeQueueFull) || errors.Is(err, usecase.ErrPoolClosed) {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusAccepted).JSON(RecomputeResponse{
		Key:    key.String(),
		Status: "scheduled",
	})
}

// invalidateStatistics godoc
// @Summary Drop cached statistics of a report
// @Tags statistics
// @Produce json
// @Param report_id path int true "Report ID"
// @Success 200 {object} map[string]int
// @Failure 400 {object} map[string]string
// @Router /reports/{report_id}/statistics [delete]
func (r *Router) invalidateStatistics(c *fiber.Ctx) error {
	if r.statisticsService == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "statistics service unavailable")
	}

	reportID, err := strconv.ParseInt(c.Params("report_id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid report_id")
	}

	return c.JSON(fiber.Map{
		"removed": r.statisticsService.Invalidate(reportID),
	})
}

func statisticsPath(c *fiber.Ctx) (int64, domain.StatisticsInterval, error) {
	reportID, err := strconv.ParseInt(c.Params("report_id"), 10, 64)
	if err != nil {
		return 0, "", fiber.NewError(fiber.StatusBadRequest, "invalid report_id")
	}
	interval, err := domain.ParseInterval(c.Params("interval"))
	if err != nil {
		return 0, "", fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return reportID, interval, nil
}
