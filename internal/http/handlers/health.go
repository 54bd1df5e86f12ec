package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	ServiceName    = "backend-user-service"
	ServiceVersion = "1.0.0"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   ServiceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   ServiceVersion,
	})
}
