package handler

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/reporting-dashboard/internal/service"
	"github.com/maxviazov/reporting-dashboard/internal/view"
	"github.com/maxviazov/reporting-dashboard/internal/view/assets"
)

// NewRouter builds the engine with recovery, request ids, request logging and every route.
func NewRouter(db Pinger, reports service.ReportService, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(logger))
	Register(r, db, reports, logger)
	return r
}

// Register mounts all public routes on the given engine.
func Register(r *gin.Engine, db Pinger, reports service.ReportService, logger zerolog.Logger) {
	h := NewHealthHandler(db)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	if static, err := fs.Sub(assets.StaticFS(), "static"); err == nil {
		r.StaticFS(view.StaticPrefix, http.FS(static))
	}

	rh := NewReportHandler(reports, logger)
	rh.RegisterPages(r)

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		rh.RegisterAPI(api)
	}
}
