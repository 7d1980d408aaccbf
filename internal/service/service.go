// Package service coordinates report use cases between handlers and the view repository.
// It stays lean: parameter normalization, query fan-out and display mapping.
package service

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/maxviazov/reporting-dashboard/internal/model"
	"github.com/maxviazov/reporting-dashboard/internal/report"
)

// ErrReportNotFound is returned for a slug that is not in the catalog (maps to HTTP 404).
var ErrReportNotFound = errors.New("report not found")

// Params holds the normalized filter values of a request, keyed by query parameter.
// Only filters that produced a value are present.
type Params map[string]string

// Get returns the normalized value of a parameter, or "".
func (p Params) Get(param string) string { return p[param] }

// Values returns the parameters as url.Values, with page set when it is greater than 1.
func (p Params) Values(page int) url.Values {
	v := make(url.Values, len(p)+1)
	for k, val := range p {
		v.Set(k, val)
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	return v
}

// Encode renders the query string for a given page.
func (p Params) Encode(page int) string { return p.Values(page).Encode() }

// Page is everything a report page needs to render.
type Page struct {
	Report report.Definition
	Query  model.ReportQuery
	Params Params
	Result model.ReportPage
	Rows   []model.DisplayRow
}

// ReportService defines report-oriented use cases.
type ReportService interface {
	Reports() []report.Definition
	Report(slug string) (report.Definition, error)
	Fetch(ctx context.Context, slug string, params url.Values) (Page, error)
}
