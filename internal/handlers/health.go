package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lexio-dev/lexio/db"
	"github.com/lexio-dev/lexio/internal/middleware"
)

func HealthCheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Ready touches the schema. A failing store downgrades to "not ready"
// instead of surfacing the raw fault.
func Ready(ctx *gin.Context) {
	if err := db.Ping(); err != nil {
		log.Printf("Readiness probe failed: %v", err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func Metrics(ctx *gin.Context) {
	requests, errors := middleware.MetricsSnapshot()

	ctx.JSON(http.StatusOK, gin.H{
		"requests": requests,
		"errors":   errors,
	})
}
