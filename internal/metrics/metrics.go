package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	trackedOrders = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trade_analytics_heartbeat_tracked_orders",
			Help: "Number of orders awaiting broker confirmation",
		},
		[]string{"account"},
	)

	heartbeatPromotions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trade_analytics_heartbeat_promotions_total",
			Help: "Orders promoted to unknown after exhausting their heartbeat budget",
		},
		[]string{"account", "result"},
	)

	heartbeatTicks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trade_analytics_heartbeat_ticks_total",
			Help: "Heartbeat ticks processed",
		},
		[]string{"account"},
	)

	recomputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trade_analytics_statistics_recompute_seconds",
			Help:    "Statistics recompute duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0},
		},
		[]string{"interval", "result"},
	)

	recomputeRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trade_analytics_statistics_recompute_rejected_total",
			Help: "Recompute requests rejected because the worker queue was full",
		},
	)

	cachedSeries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "trade_analytics_statistics_cached_series",
			Help: "Number of statistics series held in the cache",
		},
	)
)

func SetTrackedOrders(account string, n int) {
	trackedOrders.WithLabelValues(account).Set(float64(n))
}

func RecordHeartbeatTick(account string) {
	heartbeatTicks.WithLabelValues(account).Inc()
}

func RecordPromotion(account string, err error) {
	heartbeatPromotions.WithLabelValues(account, result(err)).Inc()
}

func ObserveRecompute(interval string, started time.Time, err error) {
	recomputeDuration.WithLabelValues(interval, result(err)).Observe(time.Since(started).Seconds())
}

func RecordRecomputeRejected() {
	recomputeRejected.Inc()
}

func SetCachedSeries(n int) {
	cachedSeries.Set(float64(n))
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
