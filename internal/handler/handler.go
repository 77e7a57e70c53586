package handler

import (
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/installment-console/internal/metrics"
	"github.com/maxviazov/installment-console/internal/service"
	"github.com/rs/zerolog"
)

// Deps is everything the console routes need.
type Deps struct {
	Backend     Pinger
	Views       service.ViewService
	Actions     service.ActionService
	Templates   *template.Template
	Metrics     *metrics.Registry // nil disables instrumentation and /metrics
	MetricsPath string
	PerPage     int
	FlashMaxAge int
	Log         zerolog.Logger
}

// NewRouter builds the engine with the middleware chain and all routes.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(d.Log), AccessLog(d.Log), Recovery(d.Log))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
	}
	if d.Templates != nil {
		r.SetHTMLTemplate(d.Templates)
	}
	Register(r, d)
	return r
}

// Register mounts all public routes on the given engine.
func Register(r *gin.Engine, d Deps) {
	h := NewHealthHandler(d.Backend)
	f := flash{maxAge: d.FlashMaxAge}

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	// Docs endpoints (root-level)
	RegisterDocs(r)

	if d.Metrics != nil {
		path := d.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(d.Metrics.Handler()))
	}

	NewPageHandler(d.Views, d.PerPage, f, d.Log).Register(r)
	actions := NewActionHandler(d.Actions, f, d.Log)
	actions.RegisterForms(r)

	ui := r.Group(UIPrefix)
	{
		health := ui.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewUIHandler(d.Views, d.PerPage).Register(ui)
		actions.RegisterJSON(ui)
	}
}
