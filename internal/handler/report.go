package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"maragu.dev/gomponents"

	"github.com/maxviazov/reporting-dashboard/internal/model"
	"github.com/maxviazov/reporting-dashboard/internal/report"
	"github.com/maxviazov/reporting-dashboard/internal/service"
	"github.com/maxviazov/reporting-dashboard/internal/view"
	"github.com/maxviazov/reporting-dashboard/pkg/response"
)

type ReportHandler struct {
	svc service.ReportService
	log zerolog.Logger
}

func NewReportHandler(svc service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{svc: svc, log: logger.With().Str("module", "handler").Str("component", "report").Logger()}
}

// RegisterPages mounts the HTML pages.
func (h *ReportHandler) RegisterPages(r gin.IRoutes) {
	r.GET("/", h.index)
	r.GET("/reports/:slug", h.page)
}

// RegisterAPI mounts the JSON endpoints.
func (h *ReportHandler) RegisterAPI(r *gin.RouterGroup) {
	g := r.Group("/reports")
	{
		g.GET("", h.list)
		g.GET("/:slug", h.get)
	}
}

func (h *ReportHandler) index(c *gin.Context) {
	renderHTML(c, http.StatusOK, view.IndexPage(h.svc.Reports()))
}

func (h *ReportHandler) page(c *gin.Context) {
	slug := c.Param("slug")
	page, err := h.svc.Fetch(c.Request.Context(), slug, c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		status, _ := response.MapError(err)
		reports := h.svc.Reports()
		if errors.Is(err, service.ErrReportNotFound) {
			renderHTML(c, status, view.ErrorPage(reports, nil, "Report not found", "There is no report called \""+slug+"\"."))
			return
		}
		var def *report.Definition
		if d, derr := h.svc.Report(slug); derr == nil {
			def = &d
		}
		renderHTML(c, status, view.ErrorPage(reports, def, "Report unavailable", "The report could not be loaded right now. Please try again later."))
		return
	}
	renderHTML(c, http.StatusOK, view.ReportPage(h.svc.Reports(), page))
}

type filterPayload struct {
	Param   string   `json:"param"`
	Label   string   `json:"label"`
	Kind    string   `json:"kind"`
	Allowed []string `json:"allowed,omitempty"`
	Default string   `json:"default,omitempty"`
}

type reportMeta struct {
	Slug        string          `json:"slug"`
	Number      int             `json:"number"`
	Domain      string          `json:"domain"`
	Category    string          `json:"category"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Layout      report.Layout   `json:"layout"`
	Paginated   bool            `json:"paginated"`
	Href        string          `json:"href"`
	Filters     []filterPayload `json:"filters"`
}

type pagePayload struct {
	Report   reportMeta         `json:"report"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
	Total    *int               `json:"total"`
	HasNext  bool               `json:"has_next"`
	HasPrev  bool               `json:"has_prev"`
	Filters  service.Params     `json:"filters"`
	Rows     []model.DisplayRow `json:"rows"`
}

func toMeta(d report.Definition) reportMeta {
	filters := make([]filterPayload, 0, len(d.Filters))
	for _, f := range d.Filters {
		kind := "text"
		if f.Kind == report.Enum {
			kind = "enum"
		}
		filters = append(filters, filterPayload{Param: f.Param, Label: f.Label, Kind: kind, Allowed: f.Allowed, Default: f.Default})
	}
	return reportMeta{
		Slug:        d.Slug,
		Number:      d.Number,
		Domain:      d.Domain,
		Category:    d.Category,
		Title:       d.Title,
		Description: d.Description,
		Layout:      d.Layout,
		Paginated:   d.Paginated,
		Href:        view.ReportHref(d.Slug),
		Filters:     filters,
	}
}

func (h *ReportHandler) list(c *gin.Context) {
	defs := h.svc.Reports()
	out := make([]reportMeta, 0, len(defs))
	for _, d := range defs {
		out = append(out, toMeta(d))
	}
	response.WriteData(c, http.StatusOK, gin.H{"reports": out})
}

func (h *ReportHandler) get(c *gin.Context) {
	page, err := h.svc.Fetch(c.Request.Context(), c.Param("slug"), c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		response.WriteError(c, err)
		return
	}
	rows := page.Rows
	if rows == nil {
		rows = []model.DisplayRow{}
	}
	filters := page.Params
	if filters == nil {
		filters = service.Params{}
	}
	response.WriteData(c, http.StatusOK, pagePayload{
		Report:   toMeta(page.Report),
		Page:     page.Result.Page,
		PageSize: page.Result.PageSize,
		Total:    page.Result.Total,
		HasNext:  page.Result.HasNext(),
		HasPrev:  page.Result.HasPrev(),
		Filters:  filters,
		Rows:     rows,
	})
}

func renderHTML(c *gin.Context, status int, node gomponents.Node) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := view.Render(c.Writer, node); err != nil {
		_ = c.Error(err)
	}
}
