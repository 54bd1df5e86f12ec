package dashboard

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/geocoder89/userhub/internal/config"
	"github.com/geocoder89/userhub/internal/http/middlewares"
	"github.com/geocoder89/userhub/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

//go:embed templates/*.html
var templatesFS embed.FS

func NewRouter(log *slog.Logger, cfg config.Config) *gin.Engine {
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(ServiceName))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(prom.GinHandleMiddleware())

	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	h := NewHandler(NewClient(cfg.BackendURL), cfg.Env)

	r.GET("/", h.Dashboard)
	r.POST("/add_user", h.AddUser)
	r.GET("/delete_user/:id", h.DeleteUser)
	r.GET("/health", h.Health)
	r.GET("/api/frontend-stats", h.FrontendStats)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	r.NoRoute(func(ctx *gin.Context) {
		ctx.HTML(http.StatusNotFound, "notfound.html", nil)
	})

	return r
}
