package dashboard

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/gin-gonic/gin"
)

const (
	ServiceName    = "frontend-dashboard"
	ServiceVersion = "1.0.0"
)

type Handler struct {
	client *Client
	env    string
}

func NewHandler(client *Client, env string) *Handler {
	return &Handler{client: client, env: env}
}

type dashboardView struct {
	Users          []user.User
	Stats          *BackendStats
	BackendStatus  string
	FrontendStatus string
	BackendURL     string
	Version        string
	Timestamp      string
	Message        string
	MessageType    string
}

func (h *Handler) Dashboard(ctx *gin.Context) {
	rctx := ctx.Request.Context()

	users, err := h.client.ListUsers(rctx)

	if err != nil {
		users = nil
	}

	var stats *BackendStats

	if s, err := h.client.Stats(rctx); err == nil {
		stats = &s
	}

	backendStatus := "\U0001F534 Offline"

	if h.client.Healthy(rctx) {
		backendStatus = "\U0001F7E2 Online"
	}

	messageType := ctx.Query("type")

	if messageType == "" {
		messageType = "success"
	}

	ctx.HTML(http.StatusOK, "dashboard.html", dashboardView{
		Users:          users,
		Stats:          stats,
		BackendStatus:  backendStatus,
		FrontendStatus: "\U0001F7E2 Online",
		BackendURL:     h.client.BaseURL(),
		Version:        ServiceVersion,
		Timestamp:      time.Now().UTC().Format("2006-01-02 15:04:05"),
		Message:        ctx.Query("message"),
		MessageType:    messageType,
	})
}

func (h *Handler) AddUser(ctx *gin.Context) {
	req := user.CreateUserRequest{
		Name:  ctx.PostForm("name"),
		Email: ctx.PostForm("email"),
		Role:  ctx.PostForm("role"),
	}

	err := h.client.CreateUser(ctx.Request.Context(), req)

	if err != nil {
		redirectWithFlash(ctx, "Failed to add user: "+err.Error(), "danger")
		return
	}

	redirectWithFlash(ctx, "User '"+req.Name+"' added successfully!", "success")
}

func (h *Handler) DeleteUser(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)

	if err != nil {
		redirectWithFlash(ctx, "Invalid user id", "danger")
		return
	}

	if err := h.client.DeleteUser(ctx.Request.Context(), id); err != nil {
		redirectWithFlash(ctx, "Failed to delete user: "+err.Error(), "danger")
		return
	}

	redirectWithFlash(ctx, "User deleted successfully!", "success")
}

func (h *Handler) Health(ctx *gin.Context) {
	backendStatus := "unhealthy"

	if h.client.Healthy(ctx.Request.Context()) {
		backendStatus = "healthy"
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"service":        ServiceName,
		"backend_status": backendStatus,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"version":        ServiceVersion,
	})
}

func (h *Handler) FrontendStats(ctx *gin.Context) {
	rctx := ctx.Request.Context()

	backendStatus := "offline"

	var backendStats *BackendStats

	if s, err := h.client.Stats(rctx); err == nil {
		backendStatus = "online"
		backendStats = &s
	}

	ctx.JSON(http.StatusOK, gin.H{
		"frontend_service": gin.H{
			"name":        ServiceName,
			"version":     ServiceVersion,
			"environment": h.env,
			"backend_url": h.client.BaseURL(),
		},
		"backend_status": backendStatus,
		"backend_stats":  backendStats,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}

func redirectWithFlash(ctx *gin.Context, message, messageType string) {
	q := url.Values{}
	q.Set("message", message)
	q.Set("type", messageType)

	ctx.Redirect(http.StatusSeeOther, "/?"+q.Encode())
}
