package repository

import (
	"context"

	"github.com/maxviazov/reporting-dashboard/internal/model"
)

// Pinger is a minimal readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ViewRepository reads precomputed views. It never writes.
// Rows and Count must apply identical predicates so a page and its total agree.
type ViewRepository interface {
	// Rows runs the query and returns at most q.PageSize rows when q.Paginated is set.
	Rows(ctx context.Context, q model.ReportQuery) ([]model.Row, error)
	// Count returns how many rows of the view match the predicates, ignoring the page window.
	Count(ctx context.Context, view string, predicates []model.Predicate) (int, error)
}
