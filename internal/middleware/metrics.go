package middleware

import (
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// Request and error totals. Best-effort telemetry: increments are atomic
// but no cross-counter consistency is guaranteed under load.
var (
	requestCount atomic.Int64
	errorCount   atomic.Int64
)

// Metrics counts every request, and every response with status >= 400
// as an error.
func Metrics() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestCount.Add(1)

		ctx.Next()

		if ctx.Writer.Status() >= 400 {
			errorCount.Add(1)
		}
	}
}

func MetricsSnapshot() (requests, errors int64) {
	return requestCount.Load(), errorCount.Load()
}

// ResetMetrics zeroes the counters; tests only.
func ResetMetrics() {
	requestCount.Store(0)
	errorCount.Store(0)
}
