package http

import (
	"log/slog"
	"time"

	"github.com/geocoder89/userhub/internal/cache"
	"github.com/geocoder89/userhub/internal/config"
	"github.com/geocoder89/userhub/internal/http/handlers"
	"github.com/geocoder89/userhub/internal/http/middlewares"
	"github.com/geocoder89/userhub/internal/observability"
	"github.com/geocoder89/userhub/internal/repo/instrumented"
	"github.com/geocoder89/userhub/internal/repo/memory"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxBodyBytes = 1 << 20 // 1 MiB

func NewRouter(log *slog.Logger, cfg config.Config, store *memory.UsersRepo) *gin.Engine {
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// each router instance carries its own metrics registry
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	prom := observability.NewProm(reg)
	observability.RegisterUserCount(reg, store.Count)

	stats := handlers.NewStatsHandler(cfg.Env, store.Count)

	// middleware

	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(handlers.ServiceName))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))
	r.Use(middlewares.RequireJSON())
	r.Use(prom.GinHandleMiddleware())
	r.Use(stats.CountRequests())

	if cfg.RateLimit > 0 {
		rl := middlewares.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		r.Use(rl.Middleware())
	}

	// wire up the store and handlers

	usersStore := instrumented.NewUsersStore(store, prom)
	listCache := cache.New(30 * time.Second)
	usersHandler := handlers.NewUsersHandlerWithCache(usersStore, listCache)

	health := handlers.NewHealthHandler()
	r.GET("/health", health.Health)

	api := r.Group("/api")
	{
		api.GET("/users", usersHandler.ListUsers)
		api.POST("/users", usersHandler.CreateUser)
		api.GET("/users/:id", usersHandler.GetUserById)
		api.PUT("/users/:id", usersHandler.UpdateUser)
		api.DELETE("/users/:id", usersHandler.DeleteUser)
		api.GET("/stats", stats.GetStats)
	}

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// unmatched routes still answer with the JSON error shape
	r.NoRoute(func(ctx *gin.Context) {
		handlers.RespondNotFound(ctx, "Endpoint not found")
	})

	return r
}
