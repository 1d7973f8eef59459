// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// 在庫の増減（kind: equipment|consumable, direction: in|out）
	StockAdjustments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sarpras",
		Name:      "stock_adjustments_total",
		Help:      "Ledger adjustments written inside a transaction (rolled-back ones included).",
	}, []string{"kind", "direction"})

	StockRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sarpras",
		Name:      "stock_rejections_total",
		Help:      "Withdrawals rejected because the balance would go negative.",
	}, []string{"kind"})

	ImportRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sarpras",
		Name:      "import_rows_total",
		Help:      "Bulk import rows by kind and result (ok|ng).",
	}, []string{"kind", "result"})

	LockTimeouts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sarpras",
		Name:      "lock_timeouts_total",
		Help:      "Requests aborted because a row lock could not be acquired in time.",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sarpras",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
)

// Handler serves the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// Middleware counts requests by matched route, so path params don't explode cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		if c.Writer.Status() == 503 {
			LockTimeouts.Inc()
		}
	}
}
