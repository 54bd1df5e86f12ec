package handlers

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	env       string
	startedAt time.Time
	requests  atomic.Int64
	userCount func() int
}

func NewStatsHandler(env string, userCount func() int) *StatsHandler {
	return &StatsHandler{
		env:       env,
		startedAt: time.Now().UTC(),
		userCount: userCount,
	}
}

// CountRequests tallies every request routed through the service, including
// the stats call itself.
func (h *StatsHandler) CountRequests() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		h.requests.Add(1)

		ctx.Next()
	}
}

func (h *StatsHandler) GetStats(ctx *gin.Context) {
	now := time.Now().UTC()

	ctx.JSON(http.StatusOK, gin.H{
		"total_users":    h.userCount(),
		"request_count":  h.requests.Load(),
		"started_at":     h.startedAt.Format(time.RFC3339),
		"uptime_seconds": int64(now.Sub(h.startedAt).Seconds()),
		"service_info": gin.H{
			"name":        ServiceName,
			"version":     ServiceVersion,
			"environment": h.env,
		},
		"timestamp": now.Format(time.RFC3339),
	})
}
