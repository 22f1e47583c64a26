package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks request latency by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "path", "status"},
	)

	// OrdersTotal counts orders submitted via /trade, by book and side.
	OrdersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ladderbook_orders_total",
			Help: "Total number of orders submitted, by book and side",
		},
		[]string{"book", "side"},
	)

	// TradesTotal counts trades produced by the match loop, by book.
	TradesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ladderbook_trades_total",
			Help: "Total number of trades executed, by book",
		},
		[]string{"book"},
	)

	// CancelsTotal counts cancel requests, by book and outcome.
	CancelsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ladderbook_cancels_total",
			Help: "Total number of cancel requests, by book and outcome",
		},
		[]string{"book", "outcome"},
	)

	// RestingOrders tracks the number of resting orders per book.
	RestingOrders = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ladderbook_resting_orders",
			Help: "Current number of resting orders, by book",
		},
		[]string{"book"},
	)
)

// PrometheusMiddleware records request latency, labeled by method, route
// template, and final status code.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start).Seconds()

		HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(c.Writer.Status()),
		).Observe(duration)
	}
}
