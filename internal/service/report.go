package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/maxviazov/reporting-dashboard/internal/display"
	"github.com/maxviazov/reporting-dashboard/internal/model"
	"github.com/maxviazov/reporting-dashboard/internal/report"
	"github.com/maxviazov/reporting-dashboard/internal/repository"
)

// Options are the report settings injected from configuration.
type Options struct {
	PageSize     int
	QueryTimeout time.Duration
}

type reportService struct {
	catalog *report.Catalog
	views   repository.ViewRepository
	mapper  *display.Mapper
	opts    Options
	log     zerolog.Logger
}

func NewReportService(catalog *report.Catalog, views repository.ViewRepository, mapper *display.Mapper, opts Options, logger zerolog.Logger) ReportService {
	l := logger.With().Str("module", "service").Str("component", "report").Logger()
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	return &reportService{catalog: catalog, views: views, mapper: mapper, opts: opts, log: l}
}

func (s *reportService) Reports() []report.Definition { return s.catalog.All() }

func (s *reportService) Report(slug string) (report.Definition, error) {
	def, ok := s.catalog.Get(slug)
	if !ok {
		return report.Definition{}, fmt.Errorf("%w: %q", ErrReportNotFound, slug)
	}
	return def, nil
}

// Fetch loads one page of a report. For paginated reports the rows and the exact total are
// queried concurrently; the page fails if either query fails.
func (s *reportService) Fetch(ctx context.Context, slug string, params url.Values) (Page, error) {
	def, err := s.Report(slug)
	if err != nil {
		return Page{}, err
	}
	start := time.Now()
	q, norm := Normalize(def, params, s.opts.PageSize)

	if s.opts.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.QueryTimeout)
		defer cancel()
	}

	var (
		rows  []model.Row
		total *int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.views.Rows(gctx, q)
		if err != nil {
			return fmt.Errorf("rows: %w", err)
		}
		rows = r
		return nil
	})
	if def.Paginated {
		g.Go(func() error {
			n, err := s.views.Count(gctx, q.View, q.Predicates)
			if err != nil {
				return fmt.Errorf("count: %w", err)
			}
			total = &n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Str("report", slug).Str("view", q.View).Int("page", q.Page).Msg("report query failed")
		return Page{}, fmt.Errorf("report %s: %w", slug, err)
	}

	result := model.ReportPage{Rows: rows, Total: total, Page: q.Page, PageSize: q.PageSize}
	if !def.Paginated {
		// the whole view is one page
		n := len(rows)
		result.Total, result.PageSize = &n, n
	}

	ev := s.log.Debug().Str("report", slug).Int("page", q.Page).Int("rows", len(rows)).Dur("took", time.Since(start))
	if total != nil {
		ev = ev.Int("total", *total)
	}
	ev.Msg("report page loaded")

	return Page{
		Report: def,
		Query:  q,
		Params: norm,
		Result: result,
		Rows:   s.mapper.MapAll(def, rows),
	}, nil
}
