package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade_analytics/internal/domain"
	"trade_analytics/internal/usecase"
)

type fakeStatistics struct {
	queried      domain.StatisticsKey
	maxPoints    int
	recomputed   []domain.StatisticsKey
	recomputeErr error
	invalidated  int64
	series       []domain.Statistics
}

func (f *fakeStatistics) Query(key domain.StatisticsKey, maxPoints int) []domain.Statistics {
	f.queried = key
	f.maxPoints = maxPoints
	return f.series
}

func (f *fakeStatistics) Recompute(_ context.Context, key domain.StatisticsKey) error {
	f.recomputed = append(f.recomputed, key)
	return f.recomputeErr
}

func (f *fakeStatistics) Invalidate(reportID int64) int {
	f.invalidated = reportID
	return 3
}

type fakeHeartbeats map[domain.OrderKey]int

func (f fakeHeartbeats) Heartbeats(accountID string) map[int64]int {
	out := make(map[int64]int)
	for key, n := range f {
		if key.AccountID == accountID {
			out[key.PermID] = n
		}
	}
	return out
}

func (f fakeHeartbeats) HeartbeatCount(key domain.OrderKey) (int, bool) {
	n, ok := f[key]
	return n, ok
}

type fakeOrders struct {
	recorded  []domain.Order
	applied   []domain.OrderStatus
	accounts  []domain.Account
	updated   []domain.Account
	page      usecase.OrderPage
	pageStart int
	pageLimit int
	err       error
}

func (f *fakeOrders) ListOrders(_ context.Context, _ string, start, limit int) (usecase.OrderPage, error) {
	f.pageStart, f.pageLimit = start, limit
	return f.page, f.err
}

func (f *fakeOrders) ListAccounts(_ context.Context) ([]domain.Account, error) {
	return f.accounts, f.err
}

func (f *fakeOrders) UpdateAccount(_ context.Context, account domain.Account) error {
	f.updated = append(f.updated, account)
	return f.err
}

func (f *fakeOrders) RecordOrder(_ context.Context, order domain.Order) error {
	f.recorded = append(f.recorded, order)
	return f.err
}

func (f *fakeOrders) ApplyStatus(_ context.Context, key domain.OrderKey, status domain.OrderStatus, _ *float64) (domain.Order, error) {
	if f.err != nil {
		return domain.Order{}, f.err
	}
	f.applied = append(f.applied, status)
	return domain.Order{AccountID: key.AccountID, PermID: key.PermID, Status: status}, nil
}

type routerFixture struct {
	router     *Router
	statistics *fakeStatistics
	orders     *fakeOrders
}

func newRouterFixture() *routerFixture {
	f := &routerFixture{
		statistics: &fakeStatistics{series: []domain.Statistics{{ID: 1}, {ID: 2}}},
		orders:     &fakeOrders{},
	}
	heartbeats := fakeHeartbeats{
		{AccountID: "DU1", PermID: 10}: 4,
		{AccountID: "DU1", PermID: 11}: 0,
	}
	f.router = New(f.statistics, heartbeats, f.orders)
	return f
}

func (f *routerFixture) do(t *testing.T, method, target, body string) (*http.Response, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := f.router.App().Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func TestHealth(t *testing.T) {
	f := newRouterFixture()
	resp, body := f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newRouterFixture()
	resp, body := f.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "go_goroutines")
}

func TestGetStatistics(t *testing.T) {
	f := newRouterFixture()

	resp, body := f.do(t, http.MethodGet, "/api/v1/reports/5/statistics/month?tradeType=long&currency=usd&underlying=&maxPoints=1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	var got []domain.Statistics
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Len(t, got, 2)

	assert.Equal(t, domain.NewStatisticsKey(5, domain.IntervalMonth, "LONG", "", "USD", ""), f.statistics.queried)
	assert.Equal(t, 1, f.statistics.maxPoints)
}

func TestGetStatisticsDefaultsToAllPoints(t *testing.T) {
	f := newRouterFixture()
	resp, _ := f.do(t, http.MethodGet, "/api/v1/reports/5/statistics/DAY", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, usecase.AllPoints, f.statistics.maxPoints)
	assert.Equal(t, "5_DAY_ALL_ALL_ALL_ALL", f.statistics.queried.String())
}

func TestGetStatisticsBadRequests(t *testing.T) {
	f := newRouterFixture()
	for _, target := range []string{
		"/api/v1/reports/abc/statistics/DAY",
		"/api/v1/reports/5/statistics/WEEK",
		"/api/v1/reports/5/statistics/DAY?maxPoints=-5",
	} {
		resp, body := f.do(t, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, target)
		assert.Contains(t, body, "error")
	}
}

func TestRecomputeStatistics(t *testing.T) {
	f := newRouterFixture()

	resp, body := f.do(t, http.MethodPost, "/api/v1/reports/8/statistics/year", `{"secType":"opt","underlying":"spx"}`)
	require.Equal(t, http.StatusAccepted, resp.StatusCode, body)
	assert.JSONEq(t, `{"key":"8_YEAR_ALL_OPT_ALL_SPX","status":"scheduled"}`, body)

	resp, _ = f.do(t, http.MethodPost, "/api/v1/reports/8/statistics/day?tradeType=SHORT", "")
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	require.Len(t, f.statistics.recomputed, 2)
	assert.Equal(t, "SHORT", f.statistics.recomputed[1].TradeType)
}

func TestRecomputeStatisticsQueueFull(t *testing.T) {
	f := newRouterFixture()
	f.statistics.recomputeErr = fmt.Errorf("schedule: %w", usecase.ErrRecomputeQueueFull)

	resp, _ := f.do(t, http.MethodPost, "/api/v1/reports/8/statistics/DAY", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestInvalidateStatistics(t *testing.T) {
	f := newRouterFixture()
	resp, body := f.do(t, http.MethodDelete, "/api/v1/reports/42/statistics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"removed":3}`, body)
	assert.Equal(t, int64(42), f.statistics.invalidated)
}

func TestHeartbeatEndpoints(t *testing.T) {
	f := newRouterFixture()

	resp, body := f.do(t, http.MethodGet, "/api/v1/accounts/DU1/heartbeats", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"10":4,"11":0}`, body)

	resp, body = f.do(t, http.MethodGet, "/api/v1/accounts/DU1/orders/11/heartbeat", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"accountId":"DU1","permId":11,"heartbeatCount":0}`, body)

	resp, _ = f.do(t, http.MethodGet, "/api/v1/accounts/DU1/orders/99/heartbeat", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = f.do(t, http.MethodGet, "/api/v1/accounts/DU1/orders/x/heartbeat", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecordOrder(t *testing.T) {
	f := newRouterFixture()

	payload := `{"permId":77,"symbol":"aapl","secType":"stk","action":"buy","quantity":10,"orderType":"lmt","submitDate":"2024-05-01T13:30:00Z","metadata":{"tif":"GTC"}}`
	resp, body := f.do(t, http.MethodPost, "/api/v1/accounts/DU1/orders", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	require.Len(t, f.orders.recorded, 1)
	order := f.orders.recorded[0]
	assert.Equal(t, domain.OrderKey{AccountID: "DU1", PermID: 77}, order.Key())
	assert.Equal(t, "AAPL", order.Symbol)
	assert.Equal(t, domain.ActionBuy, order.Action)
	assert.Equal(t, 2024, order.SubmitDate.Year())
	assert.JSONEq(t, `{"tif":"GTC"}`, string(order.Metadata))
}

func TestRecordOrderValidation(t *testing.T) {
	f := newRouterFixture()
	for _, payload := range []string{
		`{"symbol":"AAPL","action":"BUY"}`,
		`{"permId":1,"action":"BUY"}`,
		`{"permId":1,"symbol":"AAPL","action":"HOLD"}`,
		`{"permId":1,"symbol":"AAPL","action":"BUY","status":"pending"}`,
		`{"permId":1,"symbol":"AAPL","action":"BUY","submitDate":"yesterday"}`,
		`not json`,
	} {
		resp, _ := f.do(t, http.MethodPost, "/api/v1/accounts/DU1/orders", payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, payload)
	}
	assert.Empty(t, f.orders.recorded)
}

func TestApplyOrderEvent(t *testing.T) {
	f := newRouterFixture()

	resp, body := f.do(t, http.MethodPost, "/api/v1/accounts/DU1/orders/10/events", `{"status":"Filled","price":12.5}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.JSONEq(t, `{"key":"DU1/10","status":"filled"}`, body)

	resp, _ = f.do(t, http.MethodPost, "/api/v1/accounts/DU1/orders/10/events", `{"status":"lost"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	f.orders.err = fmt.Errorf("%w: DU1/10", domain.ErrOrderNotFound)
	resp, _ = f.do(t, http.MethodPost, "/api/v1/accounts/DU1/orders/10/events", `{"status":"cancelled"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListAccounts(t *testing.T) {
	f := newRouterFixture()
	f.orders.accounts = []domain.Account{
		{AccountID: "DU1", Name: "Live", Metadata: []byte(`{"desk":"a"}`)},
		{AccountID: "DU2"},
	}

	resp, body := f.do(t, http.MethodGet, "/api/v1/accounts", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	var got []AccountResponse
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Live", got[0].Name)
	assert.JSONEq(t, `{"desk":"a"}`, string(got[0].Metadata))
	assert.Equal(t, "DU2", got[1].AccountID)
}

func TestUpdateAccount(t *testing.T) {
	f := newRouterFixture()

	resp, body := f.do(t, http.MethodPut, "/api/v1/accounts/DU7", `{"name":"Paper","metadata":{"desk":"b"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	require.Len(t, f.orders.updated, 1)
	assert.Equal(t, "DU7", f.orders.updated[0].AccountID)
	assert.Equal(t, "Paper", f.orders.updated[0].Name)
	assert.JSONEq(t, `{"desk":"b"}`, string(f.orders.updated[0].Metadata))

	resp, _ = f.do(t, http.MethodPut, "/api/v1/accounts/DU7", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListOrdersCarriesHeartbeatCount(t *testing.T) {
	f := newRouterFixture()
	budget := 3
	f.orders.page = usecase.OrderPage{
		Total: 12,
		Items: []usecase.TrackedOrder{
			{Order: domain.Order{AccountID: "DU1", PermID: 10, Symbol: "AAPL", Status: domain.OrderStatusSubmitted,
				Events: []domain.OrderEvent{{Status: domain.OrderStatusSubmitted}}}, HeartbeatCount: &budget},
			{Order: domain.Order{AccountID: "DU1", PermID: 9, Symbol: "MSFT", Status: domain.OrderStatusFilled}},
		},
	}

	resp, body := f.do(t, http.MethodGet, "/api/v1/accounts/DU1/orders?start=10&limit=2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, 10, f.orders.pageStart)
	assert.Equal(t, 2, f.orders.pageLimit)

	var got OrderPageResponse
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, int64(12), got.Total)
	require.Len(t, got.Items, 2)
	require.NotNil(t, got.Items[0].HeartbeatCount)
	assert.Equal(t, 3, *got.Items[0].HeartbeatCount)
	assert.Len(t, got.Items[0].Events, 1)
	assert.Nil(t, got.Items[1].HeartbeatCount)
	assert.NotContains(t, strings.SplitN(body, `"permId":9`, 2)[1], "heartbeatCount")
}

func TestListOrdersDefaultsAndValidation(t *testing.T) {
	f := newRouterFixture()

	resp, body := f.do(t, http.MethodGet, "/api/v1/accounts/DU1/orders", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, 0, f.orders.pageStart)
	assert.Equal(t, usecase.DefaultOrderPageSize, f.orders.pageLimit)
	assert.JSONEq(t, fmt.Sprintf(`{"items":[],"total":0,"start":0,"limit":%d}`, usecase.DefaultOrderPageSize), body)

	resp, _ = f.do(t, http.MethodGet, "/api/v1/accounts/DU1/orders?start=-1", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = f.do(t, http.MethodGet, "/api/v1/accounts/DU1/orders?limit=501", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
